// Package approvalStore holds gathered speech outcomes between the webhook
// that receives them and the reconciler that polls for them.
package approvalStore

import (
	"sync"
	"time"

	"golang.org/x/net/context"

	"ProjectAdvisor/internal/entity"
)

// PendingStore is keyed by provider call identifier. Put keeps the first
// write for a key and ignores later ones, so duplicate webhook deliveries
// cannot flip a decision.
type PendingStore interface {
	// Put records the outcome unless one already exists for the call.
	// Returns true when this call stored the outcome.
	Put(ctx context.Context, callID string, outcome entity.SpeechOutcome) (bool, error)
	// Get returns the outcome and whether one exists. A store error is
	// distinct from not-found.
	Get(ctx context.Context, callID string) (entity.SpeechOutcome, bool, error)
	// Remove drops the outcome after the reconciler consumed it. Removing
	// a missing key is not an error.
	Remove(ctx context.Context, callID string) error
}

// memoryEntryTTL bounds entries whose reconciler already gave up, so a
// late callback cannot pin memory for the process lifetime. Matches the
// redis implementation's eviction window.
const memoryEntryTTL = 15 * time.Minute

type memoryEntry struct {
	outcome  entity.SpeechOutcome
	storedAt time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore() PendingStore {
	return &memoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     memoryEntryTTL,
		now:     time.Now,
	}
}

func (s *memoryStore) Put(_ context.Context, callID string, outcome entity.SpeechOutcome) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	if _, exists := s.entries[callID]; exists {
		return false, nil
	}

	s.entries[callID] = memoryEntry{outcome: outcome, storedAt: now}
	return true, nil
}

func (s *memoryStore) Get(_ context.Context, callID string) (entity.SpeechOutcome, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, found := s.entries[callID]
	if !found {
		return entity.SpeechOutcome{}, false, nil
	}
	if s.expired(entry, s.now()) {
		delete(s.entries, callID)
		return entity.SpeechOutcome{}, false, nil
	}

	return entry.outcome, true, nil
}

func (s *memoryStore) Remove(_ context.Context, callID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, callID)
	return nil
}

func (s *memoryStore) expired(entry memoryEntry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(entry.storedAt) >= s.ttl
}

func (s *memoryStore) sweepLocked(now time.Time) {
	for callID, entry := range s.entries {
		if s.expired(entry, now) {
			delete(s.entries, callID)
		}
	}
}
