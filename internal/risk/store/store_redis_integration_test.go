//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"kyntel/internal/risk"
	"kyntel/internal/risk/store"
	"kyntel/pkg/platform/sentinel"
	"kyntel/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *store.Redis
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.cache = store.NewRedis(s.redis.Client, time.Minute)
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestSaveAndFind() {
	ctx := context.Background()
	assessment := &risk.Assessment{
		CompanyID:  "co-1",
		RiskScore:  7,
		RiskLevel:  risk.LevelHigh,
		Summary:    risk.SummaryFor(risk.LevelHigh),
		Factors:    []risk.Factor{{Label: "accounts overdue", Delta: 2}},
		AssessedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	s.Require().NoError(s.cache.Save(ctx, assessment))

	found, err := s.cache.Find(ctx, "co-1")
	s.Require().NoError(err)
	s.Equal(assessment.CompanyID, found.CompanyID)
	s.Equal(assessment.RiskScore, found.RiskScore)
	s.Equal(assessment.RiskLevel, found.RiskLevel)
	s.Equal(assessment.Factors, found.Factors)
	s.True(assessment.AssessedAt.Equal(found.AssessedAt))
}

func (s *RedisCacheSuite) TestFindMiss() {
	_, err := s.cache.Find(context.Background(), "nope")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisCacheSuite) TestSaveOverwrites() {
	ctx := context.Background()
	first := &risk.Assessment{CompanyID: "co-1", RiskScore: 4, RiskLevel: risk.LevelMedium}
	second := &risk.Assessment{CompanyID: "co-1", RiskScore: 9, RiskLevel: risk.LevelCritical}

	s.Require().NoError(s.cache.Save(ctx, first))
	s.Require().NoError(s.cache.Save(ctx, second))

	found, err := s.cache.Find(ctx, "co-1")
	s.Require().NoError(err)
	s.Equal(9, found.RiskScore)
}

func (s *RedisCacheSuite) TestEntriesExpire() {
	ctx := context.Background()
	shortLived := store.NewRedis(s.redis.Client, 50*time.Millisecond)

	s.Require().NoError(shortLived.Save(ctx, &risk.Assessment{CompanyID: "co-1", RiskScore: 5}))
	time.Sleep(150 * time.Millisecond)

	_, err := shortLived.Find(ctx, "co-1")
	s.ErrorIs(err, sentinel.ErrNotFound)
}
