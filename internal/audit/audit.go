// Package audit defines the append-only audit trail for intelligence
// computations. Every assessment, clustering run, graph computation, and
// timeline build emits one event so downstream compliance tooling can
// reconstruct what was computed, for whom, and when.
package audit

import (
	"context"
	"time"
)

// Action identifies the computation that produced an event.
type Action string

const (
	ActionClustersAnalyzed Action = "clusters.analyzed"
	ActionRiskAssessed     Action = "risk.assessed"
	ActionGraphComputed    Action = "graph.computed"
	ActionTimelineBuilt    Action = "timeline.built"
)

// Event is a single audit record. Events are immutable once published.
type Event struct {
	ID        string    `json:"id"`
	Action    Action    `json:"action"`
	EntityID  string    `json:"entity_id,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher emits audit events. Publishing is fire-and-forget: an audit
// failure must never fail the computation it describes, so implementations
// log and swallow their own errors.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}
