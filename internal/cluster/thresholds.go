package cluster

import (
	"os"
	"strconv"
)

// Thresholds names every tunable in the clustering engine. The defaults are
// heuristic rather than derived from a calibrated model; keeping them in one
// table makes that explicit and lets operators override them per deployment.
type Thresholds struct {
	// RadiusKm is the maximum seed distance for group membership.
	RadiusKm float64

	// PaddingDeg widens the bounding box on every side.
	PaddingDeg float64

	// HighAvgRisk flags a group whose mean risk exceeds it.
	HighAvgRisk float64

	// ConcentrationEntities / ConcentrationMaxAddresses flag a group with
	// more than ConcentrationEntities entities across at most
	// ConcentrationMaxAddresses addresses.
	ConcentrationEntities     int
	ConcentrationMaxAddresses int

	// ShellSignals flags a group once more than this many entities look like
	// shells: name contains a shell/nominee marker or individual risk above
	// ShellRiskScore.
	ShellSignals   int
	ShellRiskScore float64

	// HighRiskAddress counts an address as high/critical in the stats.
	HighRiskAddress float64
}

// DefaultThresholds returns the standard threshold table.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RadiusKm:                  1.0,
		PaddingDeg:                0.1,
		HighAvgRisk:               70,
		ConcentrationEntities:     10,
		ConcentrationMaxAddresses: 2,
		ShellSignals:              2,
		ShellRiskScore:            80,
		HighRiskAddress:           70,
	}
}

// ThresholdsFromEnv returns the defaults with any environment overrides
// applied.
func ThresholdsFromEnv() Thresholds {
	t := DefaultThresholds()
	overrideFloat("KYNTEL_CLUSTER_RADIUS_KM", &t.RadiusKm)
	overrideFloat("KYNTEL_CLUSTER_HIGH_AVG_RISK", &t.HighAvgRisk)
	overrideFloat("KYNTEL_CLUSTER_SHELL_RISK_SCORE", &t.ShellRiskScore)
	overrideInt("KYNTEL_CLUSTER_SHELL_SIGNALS", &t.ShellSignals)
	overrideInt("KYNTEL_CLUSTER_CONCENTRATION_ENTITIES", &t.ConcentrationEntities)
	return t
}

func overrideFloat(key string, dst *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func overrideInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
