package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kyntel/internal/risk"
	"kyntel/pkg/platform/sentinel"
)

func TestMemoryAssessmentCache(t *testing.T) {
	ctx := context.Background()

	t.Run("save then find round-trips", func(t *testing.T) {
		m := NewMemory(time.Minute)
		require.NoError(t, m.Save(ctx, &risk.Assessment{CompanyID: "co-1", RiskScore: 7, RiskLevel: risk.LevelHigh}))

		found, err := m.Find(ctx, "co-1")
		require.NoError(t, err)
		assert.Equal(t, 7, found.RiskScore)
	})

	t.Run("miss is not found", func(t *testing.T) {
		m := NewMemory(time.Minute)
		_, err := m.Find(ctx, "nope")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("entries expire after the TTL", func(t *testing.T) {
		m := NewMemory(time.Millisecond)
		require.NoError(t, m.Save(ctx, &risk.Assessment{CompanyID: "co-1"}))
		time.Sleep(5 * time.Millisecond)

		_, err := m.Find(ctx, "co-1")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("clear drops everything", func(t *testing.T) {
		m := NewMemory(time.Minute)
		require.NoError(t, m.Save(ctx, &risk.Assessment{CompanyID: "co-1"}))
		m.Clear()

		_, err := m.Find(ctx, "co-1")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
