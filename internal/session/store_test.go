package session

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_IssueAndValidate(t *testing.T) {
	store := NewStore()
	donorID := uuid.New()

	token := store.Issue(donorID)
	require.NotEmpty(t, token)

	got, ok := store.Validate(token)
	assert.True(t, ok)
	assert.Equal(t, donorID, got)

	// Tokens are reusable until expiry, not single-use.
	got, ok = store.Validate(token)
	assert.True(t, ok)
	assert.Equal(t, donorID, got)
}

func TestStore_ValidateUnknownToken(t *testing.T) {
	store := NewStore()

	got, ok := store.Validate("not-a-token")
	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, got)
}

func TestStore_IndependentTokensPerDonor(t *testing.T) {
	store := NewStore()
	donorID := uuid.New()

	first := store.Issue(donorID)
	second := store.Issue(donorID)
	require.NotEqual(t, first, second)

	_, ok := store.Validate(first)
	assert.True(t, ok)
	_, ok = store.Validate(second)
	assert.True(t, ok)
}

func TestStore_ExpiryIsLazyAndIdempotent(t *testing.T) {
	store := NewStoreWithTTL(time.Hour)
	current := time.Now()
	store.now = func() time.Time { return current }

	token := store.Issue(uuid.New())

	_, ok := store.Validate(token)
	require.True(t, ok)
	assert.Equal(t, 1, store.Len())

	current = current.Add(2 * time.Hour)

	_, ok = store.Validate(token)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len(), "expired entry should be deleted on lookup")

	// A second validation after expiry still reports invalid.
	_, ok = store.Validate(token)
	assert.False(t, ok)
}

func TestStore_ConcurrentIssueAndValidate(t *testing.T) {
	store := NewStore()
	donorID := uuid.New()

	const workers = 50
	tokens := make([]string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i] = store.Issue(donorID)
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{}, workers)
	for _, token := range tokens {
		seen[token] = struct{}{}
	}
	assert.Len(t, seen, workers, "every issued token should be unique")

	wg = sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, ok := store.Validate(tokens[i])
			assert.True(t, ok)
			assert.Equal(t, donorID, got)
		}(i)
	}
	wg.Wait()
}
