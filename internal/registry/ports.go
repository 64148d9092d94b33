// Package registry defines the ports through which the intelligence services
// read already-fetched business-registry records. Data acquisition itself is
// an external collaborator; implementations here only read what the
// persistence layer has materialized.
package registry

import (
	"context"

	"kyntel/internal/domain"
)

// ProfileSource supplies company profile records.
type ProfileSource interface {
	CompanyProfile(ctx context.Context, companyID string) (*domain.CompanyProfile, error)
}

// OfficerSource supplies officer rosters and per-person appointment views.
type OfficerSource interface {
	Officers(ctx context.Context, companyID string) ([]domain.Officer, error)
	Appointments(ctx context.Context, personID string) ([]domain.Appointment, error)
}

// ShareholdingSource supplies ownership records for a company.
type ShareholdingSource interface {
	Shareholdings(ctx context.Context, companyID string) ([]domain.Shareholding, error)
}

// FilingSource supplies filing history for a company.
type FilingSource interface {
	Filings(ctx context.Context, companyID string) ([]domain.Filing, error)
}

// Source aggregates all registry read ports. Both stores implement it.
type Source interface {
	ProfileSource
	OfficerSource
	ShareholdingSource
	FilingSource
}
