package approvalStore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ProjectAdvisor/internal/entity"
)

func TestMemoryStore_FirstWriterWins(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := entity.SpeechOutcome{
		CallID:     "CA123",
		Transcript: "yes go ahead",
		Decision:   entity.DecisionApproved,
		ReceivedAt: time.Now(),
	}
	second := entity.SpeechOutcome{
		CallID:     "CA123",
		Transcript: "no",
		Decision:   entity.DecisionRejected,
		ReceivedAt: time.Now(),
	}

	stored, err := store.Put(ctx, "CA123", first)
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = store.Put(ctx, "CA123", second)
	require.NoError(t, err)
	assert.False(t, stored, "duplicate delivery must be ignored")

	outcome, found, err := store.Get(ctx, "CA123")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "yes go ahead", outcome.Transcript)
	assert.Equal(t, entity.DecisionApproved, outcome.Decision)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, found, err := store.Get(context.Background(), "CA404")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_Remove(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Put(ctx, "CA1", entity.SpeechOutcome{CallID: "CA1"})
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, "CA1"))

	_, found, err := store.Get(ctx, "CA1")
	require.NoError(t, err)
	assert.False(t, found)

	// removing again is not an error
	assert.NoError(t, store.Remove(ctx, "CA1"))
}

func TestMemoryStore_ConcurrentKeys(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			callID := fmt.Sprintf("CA%d", n)
			_, err := store.Put(ctx, callID, entity.SpeechOutcome{CallID: callID})
			assert.NoError(t, err)

			_, found, err := store.Get(ctx, callID)
			assert.NoError(t, err)
			assert.True(t, found)
		}(i)
	}
	wg.Wait()
}

func TestMemoryStore_ExpiresStaleEntries(t *testing.T) {
	current := time.Unix(1700000000, 0)
	store := &memoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     time.Minute,
		now:     func() time.Time { return current },
	}
	ctx := context.Background()

	stored, err := store.Put(ctx, "CA1", entity.SpeechOutcome{CallID: "CA1"})
	require.NoError(t, err)
	require.True(t, stored)

	// still fresh just under the window
	current = current.Add(59 * time.Second)
	_, found, err := store.Get(ctx, "CA1")
	require.NoError(t, err)
	assert.True(t, found)

	current = current.Add(2 * time.Second)
	_, found, err = store.Get(ctx, "CA1")
	require.NoError(t, err)
	assert.False(t, found)

	// the slot is reusable once the stale entry aged out
	stored, err = store.Put(ctx, "CA1", entity.SpeechOutcome{CallID: "CA1", Transcript: "yes"})
	require.NoError(t, err)
	assert.True(t, stored)
}

func TestMemoryStore_PutSweepsExpired(t *testing.T) {
	current := time.Unix(1700000000, 0)
	store := &memoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     time.Minute,
		now:     func() time.Time { return current },
	}
	ctx := context.Background()

	_, err := store.Put(ctx, "CA1", entity.SpeechOutcome{CallID: "CA1"})
	require.NoError(t, err)

	current = current.Add(2 * time.Minute)
	_, err = store.Put(ctx, "CA2", entity.SpeechOutcome{CallID: "CA2"})
	require.NoError(t, err)

	store.mu.Lock()
	_, stale := store.entries["CA1"]
	store.mu.Unlock()
	assert.False(t, stale)
}
