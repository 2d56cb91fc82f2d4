package ingest

import (
	"context"
	"fmt"

	"github.com/ternarybob/liber/internal/interfaces"
	"github.com/ternarybob/liber/internal/models"
)

// fakeRetrieval is an in-memory RetrievalService recording every call.
type fakeRetrieval struct {
	stores map[string]*models.Store

	createCalls  []string // display names passed to CreateStore
	uploadCalls  []uploadCall
	importCalls  []importCall
	refreshCalls int

	// refreshScript holds the operation states returned by successive
	// RefreshOperation calls; when exhausted, operations refresh as done.
	refreshScript []*models.ImportOperation

	createErr  error
	uploadErr  error
	importErr  error
	refreshErr error

	// failUploadAt fails the Nth upload (0-based); -1 disables.
	failUploadAt int
}

type uploadCall struct {
	path         string
	resourceName string
	displayName  string
}

type importCall struct {
	storeID  string
	fileID   string
	metadata []models.MetadataEntry
}

var _ interfaces.RetrievalService = (*fakeRetrieval)(nil)

func newFakeRetrieval() *fakeRetrieval {
	return &fakeRetrieval{
		stores:       make(map[string]*models.Store),
		failUploadAt: -1,
	}
}

func (f *fakeRetrieval) GetStore(_ context.Context, id string) (*models.Store, error) {
	if store, ok := f.stores[id]; ok {
		return store, nil
	}
	return nil, fmt.Errorf("store %s: %w", id, models.ErrNotFound)
}

func (f *fakeRetrieval) CreateStore(_ context.Context, displayName string) (*models.Store, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createCalls = append(f.createCalls, displayName)
	store := &models.Store{
		ID:          fmt.Sprintf("fileSearchStores/created-%d", len(f.createCalls)),
		DisplayName: displayName,
	}
	f.stores[store.ID] = store
	return store, nil
}

func (f *fakeRetrieval) UploadFile(_ context.Context, path, resourceName, displayName string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	if f.failUploadAt == len(f.uploadCalls) {
		return "", fmt.Errorf("upload rejected: %w", models.ErrTransient)
	}
	f.uploadCalls = append(f.uploadCalls, uploadCall{path: path, resourceName: resourceName, displayName: displayName})
	return fmt.Sprintf("files/upload-%d", len(f.uploadCalls)), nil
}

func (f *fakeRetrieval) ImportFile(_ context.Context, storeID, fileID string, metadata []models.MetadataEntry) (*models.ImportOperation, error) {
	if f.importErr != nil {
		return nil, f.importErr
	}
	f.importCalls = append(f.importCalls, importCall{storeID: storeID, fileID: fileID, metadata: metadata})
	return &models.ImportOperation{Name: fmt.Sprintf("operations/import-%d", len(f.importCalls))}, nil
}

func (f *fakeRetrieval) RefreshOperation(_ context.Context, op *models.ImportOperation) (*models.ImportOperation, error) {
	f.refreshCalls++
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	if len(f.refreshScript) > 0 {
		next := f.refreshScript[0]
		f.refreshScript = f.refreshScript[1:]
		return next, nil
	}
	return &models.ImportOperation{Name: op.Name, Done: true}, nil
}

func (f *fakeRetrieval) GenerateGrounded(_ context.Context, _ string, _ []string, _ string) (*models.GenerationResponse, error) {
	return &models.GenerationResponse{}, nil
}

// fakeInspector accepts every file with a fixed page count, except names
// listed in reject.
type fakeInspector struct {
	reject map[string]bool
}

var _ interfaces.PDFInspector = (*fakeInspector)(nil)

func (f *fakeInspector) Inspect(path string) (*interfaces.PDFInfo, error) {
	if f.reject[path] {
		return nil, fmt.Errorf("unreadable PDF: %w", models.ErrValidation)
	}
	return &interfaces.PDFInfo{PageCount: 1}, nil
}
