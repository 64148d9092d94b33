//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"kyntel/internal/registry/store"
	"kyntel/pkg/platform/sentinel"
	"kyntel/pkg/testutil/containers"
)

const registrySchema = `
CREATE TABLE IF NOT EXISTS company_profiles (
	company_id            TEXT PRIMARY KEY,
	name                  TEXT NOT NULL,
	status                TEXT NOT NULL DEFAULT '',
	incorporated_on       TIMESTAMPTZ,
	accounts_next_due     TIMESTAMPTZ,
	confirmation_next_due TIMESTAMPTZ,
	has_been_liquidated   BOOLEAN NOT NULL DEFAULT FALSE,
	has_charges           BOOLEAN NOT NULL DEFAULT FALSE,
	has_insolvency_record BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS company_sic_codes (
	company_id TEXT NOT NULL,
	code       TEXT NOT NULL,
	PRIMARY KEY (company_id, code)
);

CREATE TABLE IF NOT EXISTS officers (
	id           SERIAL PRIMARY KEY,
	company_id   TEXT NOT NULL,
	person_id    TEXT NOT NULL DEFAULT '',
	name         TEXT NOT NULL,
	role         TEXT NOT NULL DEFAULT '',
	appointed_on TIMESTAMPTZ,
	resigned_on  TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS shareholdings (
	id           SERIAL PRIMARY KEY,
	company_id   TEXT NOT NULL,
	holder_name  TEXT NOT NULL,
	holder_kind  TEXT NOT NULL DEFAULT 'company',
	percent_held DOUBLE PRECISION NOT NULL,
	notified_on  TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS filings (
	id          SERIAL PRIMARY KEY,
	company_id  TEXT NOT NULL,
	kind        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	filed_on    TIMESTAMPTZ
);
`

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.Require().NoError(s.postgres.ExecSchema(context.Background(), registrySchema))
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(),
		"company_profiles", "company_sic_codes", "officers", "shareholdings", "filings")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) seedProfile(companyID, name, status string) {
	_, err := s.postgres.DB.Exec(
		`INSERT INTO company_profiles (company_id, name, status, incorporated_on, has_charges)
		 VALUES ($1, $2, $3, $4, TRUE)`,
		companyID, name, status, time.Date(2018, 4, 1, 0, 0, 0, 0, time.UTC),
	)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestCompanyProfile() {
	ctx := context.Background()
	s.seedProfile("co-1", "Acme Ltd", "active")
	_, err := s.postgres.DB.Exec(
		`INSERT INTO company_sic_codes (company_id, code) VALUES ('co-1', '62020'), ('co-1', '62012')`)
	s.Require().NoError(err)

	profile, err := s.store.CompanyProfile(ctx, "co-1")
	s.Require().NoError(err)
	s.Equal("co-1", profile.CompanyID)
	s.Equal("Acme Ltd", profile.Name)
	s.Equal("active", profile.Status)
	s.True(profile.HasCharges)
	s.Require().NotNil(profile.IncorporatedOn)
	s.Equal(2018, profile.IncorporatedOn.Year())
	s.Equal([]string{"62012", "62020"}, profile.SICCodes)
}

func (s *PostgresStoreSuite) TestCompanyProfileNotFound() {
	_, err := s.store.CompanyProfile(context.Background(), "nope")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestOfficers() {
	ctx := context.Background()
	s.seedProfile("co-1", "Acme Ltd", "active")
	appointed := time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)
	resigned := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := s.postgres.DB.Exec(
		`INSERT INTO officers (company_id, person_id, name, role, appointed_on, resigned_on) VALUES
		 ('co-1', 'p-1', 'J Smith', 'director', $1, NULL),
		 ('co-1', 'p-2', 'K Patel', 'secretary', $1, $2)`,
		appointed, resigned,
	)
	s.Require().NoError(err)

	officers, err := s.store.Officers(ctx, "co-1")
	s.Require().NoError(err)
	s.Require().Len(officers, 2)
	s.Equal("J Smith", officers[0].Name)
	s.False(officers[0].Resigned())
	s.True(officers[1].Resigned())
}

func (s *PostgresStoreSuite) TestOfficersEmpty() {
	officers, err := s.store.Officers(context.Background(), "co-none")
	s.Require().NoError(err)
	s.Empty(officers)
}

func (s *PostgresStoreSuite) TestAppointments() {
	ctx := context.Background()
	s.seedProfile("co-1", "Acme Ltd", "active")
	s.seedProfile("co-2", "Beta Ltd", "active")
	appointed := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := s.postgres.DB.Exec(
		`INSERT INTO officers (company_id, person_id, name, role, appointed_on) VALUES
		 ('co-1', 'p-1', 'J Smith', 'director', $1),
		 ('co-2', 'p-1', 'J Smith', 'chief executive officer', $1),
		 ('co-2', 'p-9', 'Q Other', 'director', $1)`,
		appointed,
	)
	s.Require().NoError(err)

	appts, err := s.store.Appointments(ctx, "p-1")
	s.Require().NoError(err)
	s.Require().Len(appts, 2)
	s.Equal("Acme Ltd", appts[0].CompanyName)
	s.Equal("Beta Ltd", appts[1].CompanyName)
	s.Equal("p-1", appts[0].PersonID)
}

func (s *PostgresStoreSuite) TestShareholdings() {
	ctx := context.Background()
	notified := time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err := s.postgres.DB.Exec(
		`INSERT INTO shareholdings (company_id, holder_name, holder_kind, percent_held, notified_on)
		 VALUES ('co-1', 'Parent Holdings', 'company', 60.5, $1)`,
		notified,
	)
	s.Require().NoError(err)

	holdings, err := s.store.Shareholdings(ctx, "co-1")
	s.Require().NoError(err)
	s.Require().Len(holdings, 1)
	s.Equal("Parent Holdings", holdings[0].HolderName)
	s.InDelta(60.5, holdings[0].PercentHeld, 1e-9)
}

func (s *PostgresStoreSuite) TestFilingsOrderedNewestFirst() {
	ctx := context.Background()
	older := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := s.postgres.DB.Exec(
		`INSERT INTO filings (company_id, kind, description, filed_on) VALUES
		 ('co-1', 'AA', 'annual accounts', $1),
		 ('co-1', 'CS01', 'confirmation statement', $2)`,
		older, newer,
	)
	s.Require().NoError(err)

	filings, err := s.store.Filings(ctx, "co-1")
	s.Require().NoError(err)
	s.Require().Len(filings, 2)
	s.Equal("CS01", filings[0].Kind)
	s.Equal("AA", filings[1].Kind)
}
