package timeline

import "time"

// EventType classifies a timeline event.
type EventType string

const (
	EventAppointment        EventType = "appointment"
	EventResignation        EventType = "resignation"
	EventFiling             EventType = "filing"
	EventShareholdingChange EventType = "shareholding_change"
	EventStatusChange       EventType = "status_change"
)

// Impact is the presentation tier of an event.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// Event is a single timeline entry. Events are immutable once constructed;
// the aggregator only filters, orders, and summarizes them.
type Event struct {
	EntityID    string         `json:"entityId"`
	Timestamp   time.Time      `json:"timestamp"`
	Type        EventType      `json:"type"`
	Impact      Impact         `json:"impact"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// DateRange is the inclusive window a timeline covers.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether t lies inside the inclusive range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// Stats summarizes an assembled timeline.
type Stats struct {
	TotalEvents       int               `json:"totalEvents"`
	EventsByType      map[EventType]int `json:"eventsByType"`
	ActiveYears       int               `json:"activeYears"`
	SignificantEvents int               `json:"significantEvents"`
}

// Timeline is the self-contained aggregation result, sorted by timestamp
// descending.
type Timeline struct {
	Events    []Event   `json:"events"`
	DateRange DateRange `json:"dateRange"`
	Stats     Stats     `json:"stats"`
}
