package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kyntel/internal/domain"
	"kyntel/pkg/platform/sentinel"
)

func TestMemoryCompanyProfile(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	incorporated := time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC)
	m.SeedProfile(domain.CompanyProfile{CompanyID: "co-1", Name: "Acme Ltd", Status: "active", IncorporatedOn: &incorporated})

	t.Run("seeded profile is returned by value", func(t *testing.T) {
		p, err := m.CompanyProfile(ctx, "co-1")
		require.NoError(t, err)
		assert.Equal(t, "Acme Ltd", p.Name)

		p.Name = "mutated"
		again, err := m.CompanyProfile(ctx, "co-1")
		require.NoError(t, err)
		assert.Equal(t, "Acme Ltd", again.Name)
	})

	t.Run("missing profile is not found", func(t *testing.T) {
		_, err := m.CompanyProfile(ctx, "nope")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestMemoryRosters(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	appointed := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	m.SeedOfficers("co-1", []domain.Officer{{Name: "J Smith", Role: "director", AppointedOn: &appointed}})
	m.SeedFilings("co-1", []domain.Filing{{Kind: "AA", FiledOn: &appointed}})

	t.Run("seeded rosters are returned", func(t *testing.T) {
		officers, err := m.Officers(ctx, "co-1")
		require.NoError(t, err)
		require.Len(t, officers, 1)
		assert.Equal(t, "J Smith", officers[0].Name)
	})

	t.Run("unknown company yields empty rosters, not errors", func(t *testing.T) {
		officers, err := m.Officers(ctx, "nope")
		require.NoError(t, err)
		assert.Empty(t, officers)

		holdings, err := m.Shareholdings(ctx, "nope")
		require.NoError(t, err)
		assert.Empty(t, holdings)

		filings, err := m.Filings(ctx, "nope")
		require.NoError(t, err)
		assert.Empty(t, filings)

		appts, err := m.Appointments(ctx, "nope")
		require.NoError(t, err)
		assert.Empty(t, appts)
	})
}
