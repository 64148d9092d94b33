package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kyntel/internal/domain"
	"kyntel/pkg/platform/sentinel"
)

// Postgres reads registry snapshot rows materialized by the ingestion
// pipeline. This engine never writes these tables.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed registry source.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// CompanyProfile returns the profile row for companyID.
func (s *Postgres) CompanyProfile(ctx context.Context, companyID string) (*domain.CompanyProfile, error) {
	query := `
		SELECT company_id, name, status, incorporated_on,
		       accounts_next_due, confirmation_next_due,
		       has_been_liquidated, has_charges, has_insolvency_record
		FROM company_profiles
		WHERE company_id = $1
	`
	var p domain.CompanyProfile
	err := s.db.QueryRowContext(ctx, query, companyID).Scan(
		&p.CompanyID,
		&p.Name,
		&p.Status,
		&p.IncorporatedOn,
		&p.AccountsNextDue,
		&p.ConfirmationNextDue,
		&p.HasBeenLiquidated,
		&p.HasCharges,
		&p.HasInsolvencyRecord,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("query company profile: %w", err)
	}

	sicQuery := `SELECT code FROM company_sic_codes WHERE company_id = $1 ORDER BY code`
	rows, err := s.db.QueryContext(ctx, sicQuery, companyID)
	if err != nil {
		return nil, fmt.Errorf("query sic codes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan sic code: %w", err)
		}
		p.SICCodes = append(p.SICCodes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sic codes: %w", err)
	}

	return &p, nil
}

// Officers returns the roster rows for companyID in appointment order.
func (s *Postgres) Officers(ctx context.Context, companyID string) ([]domain.Officer, error) {
	query := `
		SELECT name, role, appointed_on, resigned_on
		FROM officers
		WHERE company_id = $1
		ORDER BY appointed_on NULLS LAST, name
	`
	rows, err := s.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("query officers: %w", err)
	}
	defer rows.Close()

	var officers []domain.Officer
	for rows.Next() {
		var o domain.Officer
		if err := rows.Scan(&o.Name, &o.Role, &o.AppointedOn, &o.ResignedOn); err != nil {
			return nil, fmt.Errorf("scan officer: %w", err)
		}
		officers = append(officers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate officers: %w", err)
	}
	return officers, nil
}

// Appointments returns the per-person appointment view for personID.
func (s *Postgres) Appointments(ctx context.Context, personID string) ([]domain.Appointment, error) {
	query := `
		SELECT o.person_id, o.company_id, p.name, o.role, o.appointed_on, o.resigned_on
		FROM officers o
		JOIN company_profiles p ON p.company_id = o.company_id
		WHERE o.person_id = $1
		ORDER BY o.appointed_on NULLS LAST, o.company_id
	`
	rows, err := s.db.QueryContext(ctx, query, personID)
	if err != nil {
		return nil, fmt.Errorf("query appointments: %w", err)
	}
	defer rows.Close()

	var appts []domain.Appointment
	for rows.Next() {
		var a domain.Appointment
		if err := rows.Scan(&a.PersonID, &a.CompanyID, &a.CompanyName, &a.Role, &a.AppointedOn, &a.ResignedOn); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appts = append(appts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}
	return appts, nil
}

// Shareholdings returns the ownership rows for companyID.
func (s *Postgres) Shareholdings(ctx context.Context, companyID string) ([]domain.Shareholding, error) {
	query := `
		SELECT holder_name, holder_kind, percent_held, notified_on
		FROM shareholdings
		WHERE company_id = $1
		ORDER BY notified_on NULLS LAST, holder_name
	`
	rows, err := s.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("query shareholdings: %w", err)
	}
	defer rows.Close()

	var holdings []domain.Shareholding
	for rows.Next() {
		var h domain.Shareholding
		var kind string
		if err := rows.Scan(&h.HolderName, &kind, &h.PercentHeld, &h.NotifiedOn); err != nil {
			return nil, fmt.Errorf("scan shareholding: %w", err)
		}
		h.HolderKind = domain.EntityKind(kind)
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shareholdings: %w", err)
	}
	return holdings, nil
}

// Filings returns the filing rows for companyID.
func (s *Postgres) Filings(ctx context.Context, companyID string) ([]domain.Filing, error) {
	query := `
		SELECT kind, description, filed_on
		FROM filings
		WHERE company_id = $1
		ORDER BY filed_on DESC NULLS LAST
	`
	rows, err := s.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("query filings: %w", err)
	}
	defer rows.Close()

	var filings []domain.Filing
	for rows.Next() {
		var f domain.Filing
		if err := rows.Scan(&f.Kind, &f.Description, &f.FiledOn); err != nil {
			return nil, fmt.Errorf("scan filing: %w", err)
		}
		filings = append(filings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate filings: %w", err)
	}
	return filings, nil
}
