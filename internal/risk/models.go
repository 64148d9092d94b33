package risk

import "time"

// Level buckets a score into the four presentation tiers.
type Level string

const (
	LevelLow      Level = "Low"
	LevelMedium   Level = "Medium"
	LevelHigh     Level = "High"
	LevelCritical Level = "Critical"
)

// LevelFor maps a final 1-10 score onto its level.
func LevelFor(score int) Level {
	switch {
	case score <= 3:
		return LevelLow
	case score <= 6:
		return LevelMedium
	case score <= 8:
		return LevelHigh
	default:
		return LevelCritical
	}
}

// summaries are the canned narrative paragraphs, keyed only by level. They
// are intentionally not parameterized further.
var summaries = map[Level]string{
	LevelLow: "This company presents a low risk profile. Its filings are current, " +
		"its status is in good standing, and its management record shows no " +
		"instability. Routine monitoring is sufficient.",
	LevelMedium: "This company presents a moderate risk profile. Some signals warrant " +
		"attention, but nothing in the available registry data indicates acute " +
		"distress. Periodic review of filings and officer changes is recommended.",
	LevelHigh: "This company presents an elevated risk profile. Multiple adverse " +
		"signals are present in its registry record, such as overdue filings, " +
		"registered charges, or officer instability. Enhanced due diligence is " +
		"recommended before entering into material commitments.",
	LevelCritical: "This company presents a critical risk profile. Its registry record " +
		"shows severe adverse signals such as dissolution, liquidation, or " +
		"insolvency history. Any engagement should be preceded by thorough " +
		"independent verification.",
}

// SummaryFor returns the canned narrative for a level.
func SummaryFor(level Level) string { return summaries[level] }

// Factor is a single scoring signal that fired: its label and its signed
// contribution. Positive deltas increase risk.
type Factor struct {
	Label string  `json:"label"`
	Delta float64 `json:"delta"`
}

// Assessment is the self-contained risk result for one company.
type Assessment struct {
	CompanyID  string    `json:"companyId"`
	RiskScore  int       `json:"riskScore"`
	RiskLevel  Level     `json:"riskLevel"`
	Summary    string    `json:"summary"`
	Factors    []Factor  `json:"factors"`
	AssessedAt time.Time `json:"assessedAt"`
}
