package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/liber/internal/models"
)

func TestResolve_CreatesStoreWhenNoIDGiven(t *testing.T) {
	svc := newFakeRetrieval()
	resolver := NewStoreResolver(svc, arbor.NewLogger())

	store, err := resolver.Resolve(context.Background(), "", "My Books Store")

	require.NoError(t, err)
	assert.Equal(t, "My Books Store", store.DisplayName)
	assert.NotEmpty(t, store.ID)
	assert.Equal(t, []string{"My Books Store"}, svc.createCalls)
}

func TestResolve_FetchesExistingStore(t *testing.T) {
	svc := newFakeRetrieval()
	svc.stores["fileSearchStores/existing"] = &models.Store{
		ID:          "fileSearchStores/existing",
		DisplayName: "Existing",
	}
	resolver := NewStoreResolver(svc, arbor.NewLogger())

	store, err := resolver.Resolve(context.Background(), "fileSearchStores/existing", "ignored")

	require.NoError(t, err)
	assert.Equal(t, "fileSearchStores/existing", store.ID)
	assert.Empty(t, svc.createCalls, "existing ID must not trigger a create")
}

func TestResolve_UnknownIDReturnsNotFound(t *testing.T) {
	svc := newFakeRetrieval()
	resolver := NewStoreResolver(svc, arbor.NewLogger())

	_, err := resolver.Resolve(context.Background(), "fileSearchStores/missing", "ignored")

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.Empty(t, svc.createCalls, "a failed fetch must make no mutation")
}
