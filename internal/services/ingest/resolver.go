package ingest

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/liber/internal/interfaces"
	"github.com/ternarybob/liber/internal/models"
)

// StoreResolver is the single source of truth for which file search store a
// session writes into and queries against.
type StoreResolver struct {
	svc    interfaces.RetrievalService
	logger arbor.ILogger
}

// NewStoreResolver creates a new store resolver
func NewStoreResolver(svc interfaces.RetrievalService, logger arbor.ILogger) *StoreResolver {
	return &StoreResolver{svc: svc, logger: logger}
}

// Resolve returns the store to use for the remainder of the session. A
// non-empty existingID is fetched as-is; models.ErrNotFound propagates when
// the service reports no such store. An empty existingID provisions a new
// store with the given display name. Exactly one remote call either way.
func (r *StoreResolver) Resolve(ctx context.Context, existingID, displayName string) (*models.Store, error) {
	if existingID != "" {
		store, err := r.svc.GetStore(ctx, existingID)
		if err != nil {
			return nil, fmt.Errorf("resolve store %s: %w", existingID, err)
		}
		r.logger.Info().Str("store", store.ID).Msg("Using existing file search store")
		return store, nil
	}

	store, err := r.svc.CreateStore(ctx, displayName)
	if err != nil {
		return nil, fmt.Errorf("create store %q: %w", displayName, err)
	}
	r.logger.Info().Str("store", store.ID).Str("display_name", displayName).Msg("Created new file search store")
	return store, nil
}
