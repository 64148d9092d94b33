package risk

import (
	"os"
	"strconv"
	"time"
)

// Weights names every scoring delta in one table. The values are heuristic
// rather than the output of a calibrated model; naming them here keeps that
// visible and overridable per deployment.
type Weights struct {
	Baseline float64

	ActiveStatus    float64
	DissolvedStatus float64

	AccountsOverdue     float64
	AccountsCurrent     float64
	ConfirmationOverdue float64
	ConfirmationCurrent float64

	Liquidated float64
	Charges    float64
	Insolvency float64

	Established          float64
	RecentlyIncorporated float64

	StableManagement float64
	OfficerTurnover  float64

	// EstablishedAge / RecentAge bound the company-age deltas.
	EstablishedAge time.Duration
	RecentAge      time.Duration

	// TurnoverWindow / TurnoverThreshold define "high officer turnover":
	// strictly more than TurnoverThreshold resignations inside the window.
	TurnoverWindow    time.Duration
	TurnoverThreshold int

	// MaxFactors caps the factor list at the first N evaluated.
	MaxFactors int
}

const day = 24 * time.Hour

// DefaultWeights returns the standard scoring table.
func DefaultWeights() Weights {
	return Weights{
		Baseline: 5,

		ActiveStatus:    -1,
		DissolvedStatus: 3,

		AccountsOverdue:     2,
		AccountsCurrent:     -0.5,
		ConfirmationOverdue: 1,
		ConfirmationCurrent: -0.5,

		Liquidated: 3,
		Charges:    1,
		Insolvency: 2,

		Established:          -1,
		RecentlyIncorporated: 1,

		StableManagement: -0.5,
		OfficerTurnover:  1,

		EstablishedAge: 5 * 365 * day,
		RecentAge:      365 * day,

		TurnoverWindow:    182 * day,
		TurnoverThreshold: 2,

		MaxFactors: 6,
	}
}

// WeightsFromEnv returns the defaults with any environment overrides applied.
func WeightsFromEnv() Weights {
	w := DefaultWeights()
	overrideWeight("KYNTEL_RISK_W_DISSOLVED", &w.DissolvedStatus)
	overrideWeight("KYNTEL_RISK_W_ACCOUNTS_OVERDUE", &w.AccountsOverdue)
	overrideWeight("KYNTEL_RISK_W_LIQUIDATED", &w.Liquidated)
	overrideWeight("KYNTEL_RISK_W_CHARGES", &w.Charges)
	overrideWeight("KYNTEL_RISK_W_INSOLVENCY", &w.Insolvency)
	overrideWeight("KYNTEL_RISK_W_TURNOVER", &w.OfficerTurnover)
	return w
}

func overrideWeight(key string, dst *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
