// Package timeline merges heterogeneous registry events for one entity into
// a single chronologically ordered, summarized sequence.
package timeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"kyntel/internal/audit"
	"kyntel/internal/domain"
	"kyntel/internal/registry"
	"kyntel/internal/timeline/metrics"
	"kyntel/pkg/requestcontext"
)

// defaultLookbackYears is the window applied when the caller supplies no
// range.
const defaultLookbackYears = 10

// significantShareholdingPct marks a shareholding notification as high
// impact.
const significantShareholdingPct = 25.0

// Query identifies the entity and the inclusive date window. Nil From/To
// fall back to the default lookback ending now.
type Query struct {
	EntityKind domain.EntityKind
	EntityID   string
	From       *time.Time
	To         *time.Time
}

// Service assembles timelines from the per-category registry sources.
type Service struct {
	profiles      registry.ProfileSource
	officers      registry.OfficerSource
	shareholdings registry.ShareholdingSource
	filings       registry.FilingSource
	fetchTimeout  time.Duration
	logger        *slog.Logger
	metrics       *metrics.Metrics
	audit         audit.Publisher
}

// New constructs the timeline service.
func New(
	source registry.Source,
	fetchTimeout time.Duration,
	logger *slog.Logger,
	m *metrics.Metrics,
	auditor audit.Publisher,
) *Service {
	return &Service{
		profiles:      source,
		officers:      source,
		shareholdings: source,
		filings:       source,
		fetchTimeout:  fetchTimeout,
		logger:        logger,
		metrics:       m,
		audit:         auditor,
	}
}

// Build assembles the timeline for the queried entity. Categories are
// fetched concurrently and degrade independently: a failed category
// contributes zero events while the others proceed, so a partial timeline is
// always preferred over a total failure.
func (s *Service) Build(ctx context.Context, query Query) (*Timeline, error) {
	start := time.Now()

	now := requestcontext.Now(ctx)
	dateRange := resolveRange(query, now)

	var events []Event
	switch query.EntityKind {
	case domain.EntityKindCompany:
		events = s.companyEvents(ctx, query.EntityID, dateRange)
	case domain.EntityKindPerson:
		events = s.personEvents(ctx, query.EntityID, dateRange)
	}

	// Descending by timestamp; stable so same-day events keep their
	// category construction order and reruns stay byte-identical.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})

	timeline := &Timeline{
		Events:    events,
		DateRange: dateRange,
		Stats:     summarize(events),
	}

	s.metrics.ObserveBuildLatency(time.Since(start))
	s.metrics.ObserveEventCount(len(events))

	if s.audit != nil {
		s.audit.Publish(ctx, audit.Event{
			Action:    audit.ActionTimelineBuilt,
			EntityID:  query.EntityID,
			RequestID: requestcontext.RequestID(ctx),
			Subject:   requestcontext.Subject(ctx),
			Detail:    fmt.Sprintf("%d events (%s)", len(events), query.EntityKind),
		})
	}

	return timeline, nil
}

// companyEvents fetches the four company categories in parallel. Each
// goroutine writes only its own slice; assembly afterwards follows a fixed
// category order so output is deterministic.
func (s *Service) companyEvents(ctx context.Context, companyID string, dateRange DateRange) []Event {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	var (
		profile  *domain.CompanyProfile
		officers []domain.Officer
		holdings []domain.Shareholding
		filings  []domain.Filing
	)

	g.Go(func() error {
		p, err := s.profiles.CompanyProfile(gctx, companyID)
		if err != nil {
			s.degrade(gctx, "profile", companyID, err)
			return nil
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		o, err := s.officers.Officers(gctx, companyID)
		if err != nil {
			s.degrade(gctx, "officers", companyID, err)
			return nil
		}
		officers = o
		return nil
	})
	g.Go(func() error {
		h, err := s.shareholdings.Shareholdings(gctx, companyID)
		if err != nil {
			s.degrade(gctx, "shareholdings", companyID, err)
			return nil
		}
		holdings = h
		return nil
	})
	g.Go(func() error {
		f, err := s.filings.Filings(gctx, companyID)
		if err != nil {
			s.degrade(gctx, "filings", companyID, err)
			return nil
		}
		filings = f
		return nil
	})

	// Category errors are swallowed above; Wait only synchronizes.
	_ = g.Wait()

	var events []Event
	if profile != nil {
		events = append(events, incorporationEvents(companyID, profile, dateRange)...)
	}
	events = append(events, officerEvents(companyID, officers, dateRange)...)
	events = append(events, shareholdingEvents(companyID, holdings, dateRange)...)
	events = append(events, filingEvents(companyID, filings, dateRange)...)
	return events
}

// personEvents builds the single-category person view: the union of the
// person's appointments across companies.
func (s *Service) personEvents(ctx context.Context, personID string, dateRange DateRange) []Event {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	appts, err := s.officers.Appointments(ctx, personID)
	if err != nil {
		s.degrade(ctx, "appointments", personID, err)
		return nil
	}
	return appointmentEvents(personID, appts, dateRange)
}

func (s *Service) degrade(ctx context.Context, category, entityID string, err error) {
	s.logger.WarnContext(ctx, "timeline category fetch failed",
		"category", category,
		"entity_id", entityID,
		"error", err,
	)
	s.metrics.IncrementCategoryFailure(category)
}

func resolveRange(query Query, now time.Time) DateRange {
	dateRange := DateRange{
		From: now.AddDate(-defaultLookbackYears, 0, 0),
		To:   now,
	}
	if query.From != nil {
		dateRange.From = *query.From
	}
	if query.To != nil {
		dateRange.To = *query.To
	}
	return dateRange
}

func summarize(events []Event) Stats {
	stats := Stats{
		TotalEvents:  len(events),
		EventsByType: make(map[EventType]int),
	}
	years := make(map[int]bool)
	for _, e := range events {
		stats.EventsByType[e.Type]++
		years[e.Timestamp.Year()] = true
		if e.Impact == ImpactHigh {
			stats.SignificantEvents++
		}
	}
	stats.ActiveYears = len(years)
	return stats
}
