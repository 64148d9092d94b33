package risk

import (
	"math"
	"strings"
	"time"

	"kyntel/internal/domain"
)

// rosterView is what the scorer needs to know about officers. Known is false
// when the officer fetch failed; officer signals are then skipped entirely
// rather than scored against an empty roster.
type rosterView struct {
	Known    bool
	Officers []domain.Officer
}

// score applies the weighted signals to a profile and roster. Signals are
// evaluated in a fixed order; each one that fires appends a factor, and the
// factor list is capped at the first Weights.MaxFactors evaluated — not the
// most impactful. Callers rely on that ordering staying stable.
func score(profile *domain.CompanyProfile, roster rosterView, now time.Time, w Weights) (int, []Factor) {
	raw := w.Baseline
	var factors []Factor

	apply := func(delta float64, label string) {
		raw += delta
		factors = append(factors, Factor{Label: label, Delta: delta})
	}

	switch strings.ToLower(profile.Status) {
	case "active":
		apply(w.ActiveStatus, "active company status")
	case "dissolved":
		apply(w.DissolvedStatus, "dissolved")
	}

	if profile.AccountsNextDue != nil {
		if profile.AccountsNextDue.Before(now) {
			apply(w.AccountsOverdue, "accounts overdue")
		} else {
			apply(w.AccountsCurrent, "accounts up to date")
		}
	}

	if profile.ConfirmationNextDue != nil {
		if profile.ConfirmationNextDue.Before(now) {
			apply(w.ConfirmationOverdue, "confirmation statement overdue")
		} else {
			apply(w.ConfirmationCurrent, "confirmation statement up to date")
		}
	}

	if profile.HasBeenLiquidated {
		apply(w.Liquidated, "has been liquidated")
	}

	if profile.HasCharges {
		apply(w.Charges, "registered charges")
	} else {
		// Neutral factor: recorded for the narrative, no score change.
		apply(0, "no registered charges")
	}

	if profile.HasInsolvencyRecord {
		apply(w.Insolvency, "insolvency history")
	}

	if profile.IncorporatedOn != nil {
		age := now.Sub(*profile.IncorporatedOn)
		if age > w.EstablishedAge {
			apply(w.Established, "established")
		} else if age < w.RecentAge {
			apply(w.RecentlyIncorporated, "recently incorporated")
		}
	}

	if roster.Known {
		active := 0
		recentResignations := 0
		cutoff := now.Add(-w.TurnoverWindow)
		for _, o := range roster.Officers {
			if !o.Resigned() {
				active++
			} else if o.ResignedOn.After(cutoff) {
				recentResignations++
			}
		}
		if active >= 1 {
			apply(w.StableManagement, "stable management")
		}
		if recentResignations > w.TurnoverThreshold {
			apply(w.OfficerTurnover, "high officer turnover")
		}
	}

	if len(factors) > w.MaxFactors {
		factors = factors[:w.MaxFactors]
	}

	return clampScore(raw), factors
}

// clampScore rounds the raw total into the integer 1-10 band.
func clampScore(raw float64) int {
	clamped := math.Min(math.Max(raw, 1), 10)
	return int(math.Round(clamped))
}
