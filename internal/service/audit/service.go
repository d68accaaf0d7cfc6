package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxEntries bounds the trail when no capacity is configured.
const DefaultMaxEntries = 1000

// Entry is one recorded domain mutation.
type Entry struct {
	ID         uuid.UUID `json:"id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityKey  string    `json:"entity_key"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Service keeps an in-memory, capacity-bounded trail of domain mutations.
// Once capacity is reached the oldest entries are dropped first.
type Service struct {
	mu         sync.Mutex
	entries    []*Entry
	maxEntries int
}

func NewService(maxEntries int) *Service {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Service{maxEntries: maxEntries}
}

// Log records an audit entry.
func (s *Service) Log(ctx context.Context, action, entityType, entityKey, detail string) {
	entry := &Entry{
		ID:         uuid.New(),
		Action:     action,
		EntityType: entityType,
		EntityKey:  entityKey,
		Detail:     detail,
		CreatedAt:  time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	if overflow := len(s.entries) - s.maxEntries; overflow > 0 {
		s.entries = append([]*Entry(nil), s.entries[overflow:]...)
	}
}

// List returns a copy of the trail, oldest first.
func (s *Service) List(ctx context.Context) []*Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
