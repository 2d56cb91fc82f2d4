package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/liber/internal/models"
)

func newTestOrchestrator(svc *fakeRetrieval, inspector *fakeInspector) *Orchestrator {
	logger := arbor.NewLogger()
	waiter := NewOperationWaiter(svc, time.Second, logger)
	waiter.sleep = func(context.Context, time.Duration) error { return nil }
	return NewOrchestrator(svc, inspector, NewStoreResolver(svc, logger), waiter, logger)
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF-stub"), 0644))
	}
}

func TestIngest_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	svc := newFakeRetrieval()
	orch := newTestOrchestrator(svc, &fakeInspector{})

	count, storeID, err := orch.Ingest(context.Background(), dir, "", "My Books Store")

	require.NoError(t, err)
	assert.Zero(t, count)
	assert.NotEmpty(t, storeID, "store creation with no PDFs is a valid outcome")
	assert.Empty(t, svc.uploadCalls)
	assert.Empty(t, svc.importCalls)
}

func TestIngest_BatchOfPDFs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "Alpha Book.pdf", "Beta Book.PDF", "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))
	writeFiles(t, filepath.Join(dir, "nested"), "Hidden.pdf")

	svc := newFakeRetrieval()
	orch := newTestOrchestrator(svc, &fakeInspector{})

	count, storeID, err := orch.Ingest(context.Background(), dir, "", "My Books Store")

	require.NoError(t, err)
	assert.Equal(t, 2, count, "only top-level PDFs count; txt and nested files are skipped")
	require.Len(t, svc.uploadCalls, 2)
	require.Len(t, svc.importCalls, 2)

	assert.Equal(t, "Alpha Book", svc.uploadCalls[0].displayName)
	assert.Equal(t, "Beta Book", svc.uploadCalls[1].displayName)

	namePattern := regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)
	for _, call := range svc.uploadCalls {
		assert.Regexp(t, namePattern, call.resourceName)
		assert.LessOrEqual(t, len(call.resourceName), 40)
	}

	for _, call := range svc.importCalls {
		assert.Equal(t, storeID, call.storeID, "all imports share the resolved store")
		require.Len(t, call.metadata, 2)
		assert.Equal(t, models.MetaKeySourceType, call.metadata[0].Key)
		assert.Equal(t, models.SourceTypeBook, call.metadata[0].StringValue)
		assert.Equal(t, models.MetaKeyBookTitle, call.metadata[1].Key)
	}
	assert.Equal(t, "Alpha Book", svc.importCalls[0].metadata[1].StringValue)
	assert.Equal(t, "Beta Book", svc.importCalls[1].metadata[1].StringValue)

	assert.Equal(t, 2, svc.refreshCalls, "one wait cycle per import")
}

func TestIngest_UsesExistingStore(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "Alpha.pdf")

	svc := newFakeRetrieval()
	svc.stores["fileSearchStores/existing"] = &models.Store{ID: "fileSearchStores/existing", DisplayName: "Existing"}
	orch := newTestOrchestrator(svc, &fakeInspector{})

	count, storeID, err := orch.Ingest(context.Background(), dir, "fileSearchStores/existing", "ignored")

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "fileSearchStores/existing", storeID)
	assert.Empty(t, svc.createCalls)
}

func TestIngest_AbortsBatchOnUploadFailure(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.pdf", "b.pdf", "c.pdf")

	svc := newFakeRetrieval()
	svc.failUploadAt = 1 // second file fails
	orch := newTestOrchestrator(svc, &fakeInspector{})

	count, storeID, err := orch.Ingest(context.Background(), dir, "", "My Books Store")

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrTransient))
	assert.Equal(t, 1, count, "files processed before the failure remain indexed")
	assert.NotEmpty(t, storeID)
	assert.Len(t, svc.uploadCalls, 1)
	assert.Len(t, svc.importCalls, 1, "no import is submitted for the failed upload")
}

func TestIngest_AbortsBatchOnFailedOperation(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.pdf", "b.pdf")

	svc := newFakeRetrieval()
	svc.refreshScript = []*models.ImportOperation{
		{Name: "operations/import-1", Done: true, Failed: true, FailureMessage: "quota exceeded"},
	}
	orch := newTestOrchestrator(svc, &fakeInspector{})

	count, _, err := orch.Ingest(context.Background(), dir, "", "My Books Store")

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrTransient))
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Zero(t, count)
	assert.Len(t, svc.uploadCalls, 1, "batch stops at the first failed import")
}

func TestIngest_AbortsOnUnreadablePDF(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "bad.pdf", "good.pdf")

	svc := newFakeRetrieval()
	inspector := &fakeInspector{reject: map[string]bool{filepath.Join(dir, "bad.pdf"): true}}
	orch := newTestOrchestrator(svc, inspector)

	count, _, err := orch.Ingest(context.Background(), dir, "", "My Books Store")

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidation))
	assert.Zero(t, count)
	assert.Empty(t, svc.uploadCalls, "nothing is uploaded for a file that fails pre-flight")
}

func TestIngest_MissingDirectory(t *testing.T) {
	svc := newFakeRetrieval()
	orch := newTestOrchestrator(svc, &fakeInspector{})

	_, _, err := orch.Ingest(context.Background(), filepath.Join(t.TempDir(), "absent"), "", "My Books Store")

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestTitleFromPath(t *testing.T) {
	assert.Equal(t, "Man's Search for Meaning", titleFromPath("/books/Man's Search for Meaning.pdf"))
	assert.Equal(t, "archive.tar", titleFromPath("/books/archive.tar.pdf"))
	assert.Equal(t, "noext", titleFromPath("/books/noext"))
}
