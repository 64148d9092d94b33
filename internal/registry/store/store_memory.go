package store

import (
	"context"
	"sync"

	"kyntel/internal/domain"
	"kyntel/pkg/platform/sentinel"
)

// Memory is an in-process registry snapshot used in tests and local
// development. Seed it, then hand it to the services as their Source.
type Memory struct {
	mu            sync.RWMutex
	profiles      map[string]domain.CompanyProfile
	officers      map[string][]domain.Officer
	appointments  map[string][]domain.Appointment
	shareholdings map[string][]domain.Shareholding
	filings       map[string][]domain.Filing
}

// NewMemory constructs an empty in-memory registry store.
func NewMemory() *Memory {
	return &Memory{
		profiles:      make(map[string]domain.CompanyProfile),
		officers:      make(map[string][]domain.Officer),
		appointments:  make(map[string][]domain.Appointment),
		shareholdings: make(map[string][]domain.Shareholding),
		filings:       make(map[string][]domain.Filing),
	}
}

// SeedProfile stores a company profile.
func (m *Memory) SeedProfile(p domain.CompanyProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.CompanyID] = p
}

// SeedOfficers stores a company's officer roster.
func (m *Memory) SeedOfficers(companyID string, officers []domain.Officer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.officers[companyID] = append([]domain.Officer(nil), officers...)
}

// SeedAppointments stores a person's appointments across companies.
func (m *Memory) SeedAppointments(personID string, appts []domain.Appointment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appointments[personID] = append([]domain.Appointment(nil), appts...)
}

// SeedShareholdings stores a company's ownership records.
func (m *Memory) SeedShareholdings(companyID string, holdings []domain.Shareholding) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shareholdings[companyID] = append([]domain.Shareholding(nil), holdings...)
}

// SeedFilings stores a company's filing history.
func (m *Memory) SeedFilings(companyID string, filings []domain.Filing) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filings[companyID] = append([]domain.Filing(nil), filings...)
}

// CompanyProfile returns the profile for companyID or sentinel.ErrNotFound.
func (m *Memory) CompanyProfile(_ context.Context, companyID string) (*domain.CompanyProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[companyID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := p
	return &copied, nil
}

// Officers returns the roster for companyID. An unknown company has an empty
// roster, not an error.
func (m *Memory) Officers(_ context.Context, companyID string) ([]domain.Officer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Officer(nil), m.officers[companyID]...), nil
}

// Appointments returns the appointment view for personID.
func (m *Memory) Appointments(_ context.Context, personID string) ([]domain.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Appointment(nil), m.appointments[personID]...), nil
}

// Shareholdings returns the ownership records for companyID.
func (m *Memory) Shareholdings(_ context.Context, companyID string) ([]domain.Shareholding, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Shareholding(nil), m.shareholdings[companyID]...), nil
}

// Filings returns the filing history for companyID.
func (m *Memory) Filings(_ context.Context, companyID string) ([]domain.Filing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Filing(nil), m.filings[companyID]...), nil
}
