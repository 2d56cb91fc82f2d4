package interfaces

import (
	"context"

	"github.com/ternarybob/liber/internal/models"
)

// RetrievalService defines the interface to the hosted document retrieval
// service (Gemini File Search). Chunking, embedding, indexing, ranking and
// grounding are owned by the remote service; this interface exposes only the
// orchestration surface the application needs. Implementations map remote
// failures onto the models error taxonomy (ErrNotFound, ErrAuth, ErrTransient).
type RetrievalService interface {
	// GetStore fetches an existing store by its full identifier
	// (fileSearchStores/...). Returns models.ErrNotFound (wrapped) when the
	// service reports no such store.
	GetStore(ctx context.Context, id string) (*models.Store, error)

	// CreateStore provisions a new store with the given display name. The
	// service assigns the identifier.
	CreateStore(ctx context.Context, displayName string) (*models.Store, error)

	// UploadFile uploads the raw file at path under the requested resource
	// name with the given display name, returning the opaque file identifier
	// used for import submission.
	UploadFile(ctx context.Context, path, resourceName, displayName string) (string, error)

	// ImportFile submits an asynchronous import of an uploaded file into the
	// store, attaching the given metadata entries, and returns the operation
	// handle to poll.
	ImportFile(ctx context.Context, storeID, fileID string, metadata []models.MetadataEntry) (*models.ImportOperation, error)

	// RefreshOperation fetches the current state of an import operation.
	RefreshOperation(ctx context.Context, op *models.ImportOperation) (*models.ImportOperation, error)

	// GenerateGrounded issues a single grounded generation request against
	// the named stores. metadataFilter is a single equality predicate such as
	// `source_type="book"`; empty means unrestricted search.
	GenerateGrounded(ctx context.Context, prompt string, storeIDs []string, metadataFilter string) (*models.GenerationResponse, error)
}
