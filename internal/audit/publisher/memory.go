package publisher

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"kyntel/internal/audit"
)

// Memory buffers audit events in process. Used in tests and whenever no
// Kafka brokers are configured.
type Memory struct {
	mu     sync.RWMutex
	events []audit.Event
}

// NewMemory constructs an empty in-memory publisher.
func NewMemory() *Memory {
	return &Memory{}
}

// Publish appends the event to the buffer.
func (m *Memory) Publish(_ context.Context, event audit.Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns a copy of everything published so far.
func (m *Memory) Events() []audit.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]audit.Event(nil), m.events...)
}
