package risk_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"kyntel/internal/audit/publisher"
	"kyntel/internal/domain"
	registryStore "kyntel/internal/registry/store"
	"kyntel/internal/risk"
	riskStore "kyntel/internal/risk/store"
	"kyntel/pkg/requestcontext"
)

// =============================================================================
// Risk Service Test Suite
// =============================================================================
// The service layer adds caching, parallel evidence fetching, and degradation
// on top of the pure scorer; those orchestration behaviors are what these
// tests pin down.

type RiskServiceSuite struct {
	suite.Suite
	ctx      context.Context
	now      time.Time
	registry *registryStore.Memory
	cache    *riskStore.Memory
	audit    *publisher.Memory
	service  *risk.Service
}

func TestRiskServiceSuite(t *testing.T) {
	suite.Run(t, new(RiskServiceSuite))
}

func (s *RiskServiceSuite) SetupTest() {
	s.now = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.registry = registryStore.NewMemory()
	s.cache = riskStore.NewMemory(time.Minute)
	s.audit = publisher.NewMemory()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var err error
	s.service, err = risk.New(s.registry, s.registry, s.cache, risk.DefaultWeights(), time.Second, logger, nil, s.audit)
	s.Require().NoError(err)
}

func (s *RiskServiceSuite) seedCompany(companyID string, profile domain.CompanyProfile) {
	profile.CompanyID = companyID
	s.registry.SeedProfile(profile)
}

func (s *RiskServiceSuite) TestNew() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.Run("nil profile source returns error", func() {
		_, err := risk.New(nil, s.registry, nil, risk.DefaultWeights(), time.Second, logger, nil, nil)
		s.Error(err)
	})

	s.Run("nil officer source returns error", func() {
		_, err := risk.New(s.registry, nil, nil, risk.DefaultWeights(), time.Second, logger, nil, nil)
		s.Error(err)
	})

	s.Run("nil cache and auditor are allowed", func() {
		svc, err := risk.New(s.registry, s.registry, nil, risk.DefaultWeights(), time.Second, logger, nil, nil)
		s.NoError(err)
		s.NotNil(svc)
	})
}

func (s *RiskServiceSuite) TestAssess() {
	s.Run("scores a seeded company", func() {
		incorporated := s.now.AddDate(-8, 0, 0)
		due := s.now.AddDate(0, 2, 0)
		s.seedCompany("co-1", domain.CompanyProfile{
			Name:            "Steady Trading Ltd",
			Status:          "active",
			IncorporatedOn:  &incorporated,
			AccountsNextDue: &due,
		})

		assessment, err := s.service.Assess(s.ctx, "co-1")
		s.Require().NoError(err)
		s.Equal("co-1", assessment.CompanyID)
		s.Equal(3, assessment.RiskScore)
		s.Equal(risk.LevelLow, assessment.RiskLevel)
		s.Equal(risk.SummaryFor(risk.LevelLow), assessment.Summary)
		s.Equal(s.now, assessment.AssessedAt)
	})

	s.Run("distressed company reads critical", func() {
		overdue := s.now.AddDate(0, -3, 0)
		s.seedCompany("co-2", domain.CompanyProfile{
			Name:                "Gone Under Ltd",
			Status:              "dissolved",
			AccountsNextDue:     &overdue,
			HasBeenLiquidated:   true,
			HasInsolvencyRecord: true,
		})

		assessment, err := s.service.Assess(s.ctx, "co-2")
		s.Require().NoError(err)
		s.Equal(10, assessment.RiskScore)
		s.Equal(risk.LevelCritical, assessment.RiskLevel)
	})

	s.Run("unknown company falls back to the insufficient-data default", func() {
		assessment, err := s.service.Assess(s.ctx, "nope")
		s.Require().NoError(err)
		s.Equal(6, assessment.RiskScore)
		s.Equal(risk.LevelMedium, assessment.RiskLevel)
		s.Require().Len(assessment.Factors, 1)
		s.Equal("insufficient data", assessment.Factors[0].Label)
	})

	s.Run("publishes an audit event", func() {
		s.seedCompany("co-3", domain.CompanyProfile{Status: "active"})

		_, err := s.service.Assess(s.ctx, "co-3")
		s.Require().NoError(err)

		events := s.audit.Events()
		s.Require().NotEmpty(events)
		last := events[len(events)-1]
		s.Equal("risk.assessed", string(last.Action))
		s.Equal("co-3", last.EntityID)
	})
}

func (s *RiskServiceSuite) TestAssessCaching() {
	s.Run("second assessment is served from cache", func() {
		s.seedCompany("co-1", domain.CompanyProfile{Status: "active"})

		first, err := s.service.Assess(s.ctx, "co-1")
		s.Require().NoError(err)

		// Change the underlying profile; a cached result must not notice.
		s.seedCompany("co-1", domain.CompanyProfile{Status: "dissolved", HasBeenLiquidated: true})

		second, err := s.service.Assess(s.ctx, "co-1")
		s.Require().NoError(err)
		s.Equal(first.RiskScore, second.RiskScore)

		s.cache.Clear()
		third, err := s.service.Assess(s.ctx, "co-1")
		s.Require().NoError(err)
		s.Greater(third.RiskScore, first.RiskScore)
	})

	s.Run("insufficient-data default is never cached", func() {
		_, err := s.service.Assess(s.ctx, "late-arrival")
		s.Require().NoError(err)

		// The company shows up between requests; the default must not mask it.
		s.seedCompany("late-arrival", domain.CompanyProfile{Status: "dissolved", HasBeenLiquidated: true, HasInsolvencyRecord: true})

		assessment, err := s.service.Assess(s.ctx, "late-arrival")
		s.Require().NoError(err)
		s.Equal(risk.LevelCritical, assessment.RiskLevel)
	})
}

func (s *RiskServiceSuite) TestAssessDegradation() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.Run("failed officer fetch only drops officer signals", func() {
		incorporated := s.now.AddDate(-8, 0, 0)
		profile := domain.CompanyProfile{CompanyID: "co-1", Status: "active", IncorporatedOn: &incorporated}
		s.registry.SeedProfile(profile)

		svc, err := risk.New(s.registry, failingOfficers{}, nil, risk.DefaultWeights(), time.Second, logger, nil, nil)
		s.Require().NoError(err)

		assessment, err := svc.Assess(s.ctx, "co-1")
		s.Require().NoError(err)
		// 5 -1 active -1 established = 3; no stable-management credit.
		s.Equal(3, assessment.RiskScore)
		for _, f := range assessment.Factors {
			s.NotEqual("stable management", f.Label)
		}
	})

	s.Run("failed profile fetch yields the default", func() {
		svc, err := risk.New(failingProfiles{}, s.registry, nil, risk.DefaultWeights(), time.Second, logger, nil, nil)
		s.Require().NoError(err)

		assessment, err := svc.Assess(s.ctx, "co-1")
		s.Require().NoError(err)
		s.Equal(risk.LevelMedium, assessment.RiskLevel)
		s.Equal(6, assessment.RiskScore)
	})
}

type failingOfficers struct{}

func (failingOfficers) Officers(context.Context, string) ([]domain.Officer, error) {
	return nil, errors.New("registry unavailable")
}

func (failingOfficers) Appointments(context.Context, string) ([]domain.Appointment, error) {
	return nil, errors.New("registry unavailable")
}

type failingProfiles struct{}

func (failingProfiles) CompanyProfile(context.Context, string) (*domain.CompanyProfile, error) {
	return nil, errors.New("registry unavailable")
}
