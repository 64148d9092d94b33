package handler

import (
	"net/http"
	"strings"
	"time"

	"kyntel/internal/domain"
	"kyntel/internal/timeline"
	dErrors "kyntel/pkg/domain-errors"
)

// parseQuery validates and parses the timeline query parameters.
func parseQuery(r *http.Request) (timeline.Query, error) {
	q := r.URL.Query()

	kind, ok := domain.ParseEntityKind(strings.TrimSpace(q.Get("entity_kind")))
	if !ok {
		return timeline.Query{}, dErrors.New(dErrors.CodeValidation, "entity_kind must be company or person")
	}

	entityID := strings.TrimSpace(q.Get("entity_id"))
	if entityID == "" {
		return timeline.Query{}, dErrors.New(dErrors.CodeValidation, "entity_id is required")
	}

	query := timeline.Query{EntityKind: kind, EntityID: entityID}

	var err error
	if query.From, err = parseDate(q.Get("from"), "from"); err != nil {
		return timeline.Query{}, err
	}
	if query.To, err = parseDate(q.Get("to"), "to"); err != nil {
		return timeline.Query{}, err
	}
	if query.From != nil && query.To != nil && query.From.After(*query.To) {
		return timeline.Query{}, dErrors.New(dErrors.CodeValidation, "from must not be after to")
	}

	return query, nil
}

// parseDate accepts RFC 3339 timestamps and bare dates.
func parseDate(raw, name string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return &t, nil
	}
	return nil, dErrors.Newf(dErrors.CodeValidation, "%s must be an RFC 3339 timestamp or YYYY-MM-DD date", name)
}
