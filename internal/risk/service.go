// Package risk computes the composite risk assessment for a single company
// from its registry profile and officer roster.
package risk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"kyntel/internal/audit"
	"kyntel/internal/domain"
	"kyntel/internal/registry"
	"kyntel/internal/risk/metrics"
	"kyntel/pkg/platform/sentinel"
	"kyntel/pkg/requestcontext"
)

// AssessmentStore caches completed assessments. Implementations return
// sentinel.ErrNotFound on miss.
type AssessmentStore interface {
	Find(ctx context.Context, companyID string) (*Assessment, error)
	Save(ctx context.Context, assessment *Assessment) error
}

// Service orchestrates evidence fetching and scoring. Scoring itself is a
// pure function; the service adds caching, concurrency, and degradation.
type Service struct {
	profiles     registry.ProfileSource
	officers     registry.OfficerSource
	cache        AssessmentStore
	weights      Weights
	fetchTimeout time.Duration
	logger       *slog.Logger
	metrics      *metrics.Metrics
	audit        audit.Publisher
}

// New constructs the risk service. cache and auditor may be nil.
func New(
	profiles registry.ProfileSource,
	officers registry.OfficerSource,
	cache AssessmentStore,
	weights Weights,
	fetchTimeout time.Duration,
	logger *slog.Logger,
	m *metrics.Metrics,
	auditor audit.Publisher,
) (*Service, error) {
	if profiles == nil {
		return nil, errors.New("profile source is required")
	}
	if officers == nil {
		return nil, errors.New("officer source is required")
	}
	return &Service{
		profiles:     profiles,
		officers:     officers,
		cache:        cache,
		weights:      weights,
		fetchTimeout: fetchTimeout,
		logger:       logger,
		metrics:      m,
		audit:        auditor,
	}, nil
}

// Assess returns the composite assessment for companyID, from cache when a
// fresh one exists. A missing or failed profile fetch short-circuits to the
// deterministic insufficient-data default; a failed officer fetch only
// degrades the officer signals.
func (s *Service) Assess(ctx context.Context, companyID string) (*Assessment, error) {
	start := time.Now()

	if s.cache != nil {
		cached, err := s.cache.Find(ctx, companyID)
		if err == nil {
			s.metrics.IncrementCache("hit")
			return cached, nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			// Cache trouble is not a reason to fail an assessment.
			s.logger.WarnContext(ctx, "assessment cache lookup failed",
				"company_id", companyID,
				"error", err,
			)
		}
		s.metrics.IncrementCache("miss")
	}

	profile, roster := s.gatherEvidence(ctx, companyID)

	now := requestcontext.Now(ctx)
	var assessment *Assessment
	if profile == nil {
		assessment = insufficientData(companyID, now)
	} else {
		finalScore, factors := score(profile, roster, now, s.weights)
		level := LevelFor(finalScore)
		assessment = &Assessment{
			CompanyID:  companyID,
			RiskScore:  finalScore,
			RiskLevel:  level,
			Summary:    SummaryFor(level),
			Factors:    factors,
			AssessedAt: now,
		}

		// Only fully-computed assessments are worth caching; defaults would
		// mask upstream recovery for a whole TTL.
		if s.cache != nil {
			if err := s.cache.Save(ctx, assessment); err != nil {
				s.logger.WarnContext(ctx, "assessment cache save failed",
					"company_id", companyID,
					"error", err,
				)
			}
		}
	}

	s.metrics.ObserveAssessLatency(time.Since(start))
	s.metrics.IncrementLevel(string(assessment.RiskLevel))

	if s.audit != nil {
		s.audit.Publish(ctx, audit.Event{
			Action:    audit.ActionRiskAssessed,
			EntityID:  companyID,
			RequestID: requestcontext.RequestID(ctx),
			Subject:   requestcontext.Subject(ctx),
			Detail:    fmt.Sprintf("score %d (%s)", assessment.RiskScore, assessment.RiskLevel),
		})
	}

	return assessment, nil
}

// gatherEvidence fetches profile and roster in parallel under a shared
// timeout. Each fetch degrades independently: errors are swallowed here and
// expressed as a nil profile or an unknown roster.
func (s *Service) gatherEvidence(ctx context.Context, companyID string) (*domain.CompanyProfile, rosterView) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	var profile *domain.CompanyProfile
	roster := rosterView{Known: true}

	g.Go(func() error {
		p, err := s.profiles.CompanyProfile(gctx, companyID)
		if err != nil {
			s.logger.WarnContext(gctx, "profile fetch failed",
				"company_id", companyID,
				"error", err,
			)
			return nil
		}
		profile = p
		return nil
	})

	g.Go(func() error {
		officers, err := s.officers.Officers(gctx, companyID)
		if err != nil {
			s.logger.WarnContext(gctx, "officer fetch failed",
				"company_id", companyID,
				"error", err,
			)
			roster.Known = false
			return nil
		}
		roster.Officers = officers
		return nil
	})

	// Errors never propagate out of the group; Wait only synchronizes.
	_ = g.Wait()

	return profile, roster
}

// insufficientData is the fixed default returned when the profile lookup
// failed. It carries a single explanatory factor and is never cached.
func insufficientData(companyID string, now time.Time) *Assessment {
	return &Assessment{
		CompanyID:  companyID,
		RiskScore:  6,
		RiskLevel:  LevelMedium,
		Summary:    SummaryFor(LevelMedium),
		Factors:    []Factor{{Label: "insufficient data", Delta: 0}},
		AssessedAt: now,
	}
}
