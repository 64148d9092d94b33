package store

import (
	"context"
	"sync"
	"time"

	"kyntel/internal/risk"
	"kyntel/pkg/platform/sentinel"
)

type memoryEntry struct {
	assessment risk.Assessment
	expiresAt  time.Time
}

// Memory is the in-process assessment cache for tests and local development.
type Memory struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

// NewMemory constructs an empty in-memory assessment cache.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

// Find returns a cached assessment or sentinel.ErrNotFound when missing or
// past its TTL.
func (m *Memory) Find(_ context.Context, companyID string) (*risk.Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[companyID]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, sentinel.ErrNotFound
	}
	copied := entry.assessment
	return &copied, nil
}

// Save stores an assessment with the configured TTL.
func (m *Memory) Save(_ context.Context, assessment *risk.Assessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[assessment.CompanyID] = memoryEntry{
		assessment: *assessment,
		expiresAt:  time.Now().Add(m.ttl),
	}
	return nil
}

// Clear drops all cached assessments.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]memoryEntry)
}
