package timeline

import (
	"fmt"
	"strings"

	"kyntel/internal/domain"
)

// Event constructors. Each emits an event only when the relevant date is
// present and inside the range; a nil date is skipped silently.

func incorporationEvents(companyID string, profile *domain.CompanyProfile, r DateRange) []Event {
	if profile.IncorporatedOn == nil || !r.Contains(*profile.IncorporatedOn) {
		return nil
	}
	return []Event{{
		EntityID:    companyID,
		Timestamp:   *profile.IncorporatedOn,
		Type:        EventStatusChange,
		Impact:      ImpactHigh,
		Title:       "Company incorporated",
		Description: fmt.Sprintf("%s was incorporated", profile.Name),
	}}
}

func officerEvents(companyID string, officers []domain.Officer, r DateRange) []Event {
	var events []Event
	for _, o := range officers {
		impact := officerImpact(o.Role)
		if o.AppointedOn != nil && r.Contains(*o.AppointedOn) {
			events = append(events, Event{
				EntityID:    companyID,
				Timestamp:   *o.AppointedOn,
				Type:        EventAppointment,
				Impact:      impact,
				Title:       fmt.Sprintf("Officer appointed: %s", o.Name),
				Description: o.Role,
			})
		}
		if o.ResignedOn != nil && r.Contains(*o.ResignedOn) {
			events = append(events, Event{
				EntityID:    companyID,
				Timestamp:   *o.ResignedOn,
				Type:        EventResignation,
				Impact:      impact,
				Title:       fmt.Sprintf("Officer resigned: %s", o.Name),
				Description: o.Role,
			})
		}
	}
	return events
}

func shareholdingEvents(companyID string, holdings []domain.Shareholding, r DateRange) []Event {
	var events []Event
	for _, h := range holdings {
		if h.NotifiedOn == nil || !r.Contains(*h.NotifiedOn) {
			continue
		}
		impact := ImpactMedium
		if h.PercentHeld > significantShareholdingPct {
			impact = ImpactHigh
		}
		events = append(events, Event{
			EntityID:    companyID,
			Timestamp:   *h.NotifiedOn,
			Type:        EventShareholdingChange,
			Impact:      impact,
			Title:       fmt.Sprintf("Shareholding notified: %s", h.HolderName),
			Description: fmt.Sprintf("%.1f%% held", h.PercentHeld),
			Metadata: map[string]any{
				"percentHeld": h.PercentHeld,
				"holderKind":  string(h.HolderKind),
			},
		})
	}
	return events
}

func filingEvents(companyID string, filings []domain.Filing, r DateRange) []Event {
	var events []Event
	for _, f := range filings {
		if f.FiledOn == nil || !r.Contains(*f.FiledOn) {
			continue
		}
		events = append(events, Event{
			EntityID:    companyID,
			Timestamp:   *f.FiledOn,
			Type:        EventFiling,
			Impact:      ImpactLow,
			Title:       fmt.Sprintf("Filing: %s", f.Kind),
			Description: f.Description,
		})
	}
	return events
}

func appointmentEvents(personID string, appts []domain.Appointment, r DateRange) []Event {
	var events []Event
	for _, a := range appts {
		impact := officerImpact(a.Role)
		if a.AppointedOn != nil && r.Contains(*a.AppointedOn) {
			events = append(events, Event{
				EntityID:    personID,
				Timestamp:   *a.AppointedOn,
				Type:        EventAppointment,
				Impact:      impact,
				Title:       fmt.Sprintf("Appointed at %s", a.CompanyName),
				Description: a.Role,
				Metadata:    map[string]any{"companyId": a.CompanyID},
			})
		}
		if a.ResignedOn != nil && r.Contains(*a.ResignedOn) {
			events = append(events, Event{
				EntityID:    personID,
				Timestamp:   *a.ResignedOn,
				Type:        EventResignation,
				Impact:      impact,
				Title:       fmt.Sprintf("Resigned from %s", a.CompanyName),
				Description: a.Role,
				Metadata:    map[string]any{"companyId": a.CompanyID},
			})
		}
	}
	return events
}

// officerImpact tiers an officer event by role: chief-level roles are high
// impact, everything else medium.
func officerImpact(role string) Impact {
	if strings.Contains(strings.ToLower(role), "chief") {
		return ImpactHigh
	}
	return ImpactMedium
}
