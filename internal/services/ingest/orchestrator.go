// -----------------------------------------------------------------------
// Ingestion Orchestrator - uploads a folder of PDFs into a file search
// store and waits for each import to be indexed
// -----------------------------------------------------------------------

package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/liber/internal/interfaces"
	"github.com/ternarybob/liber/internal/models"
	"github.com/ternarybob/liber/internal/services/naming"
)

// Orchestrator turns a folder of PDF files into indexed documents in a file
// search store. Imports are serialized by design: one upload, one import
// submission, and one wait at a time keeps remote quota usage predictable and
// progress reporting deterministic.
type Orchestrator struct {
	svc       interfaces.RetrievalService
	inspector interfaces.PDFInspector
	resolver  *StoreResolver
	waiter    *OperationWaiter
	logger    arbor.ILogger
}

// NewOrchestrator creates a new ingestion orchestrator
func NewOrchestrator(svc interfaces.RetrievalService, inspector interfaces.PDFInspector, resolver *StoreResolver, waiter *OperationWaiter, logger arbor.ILogger) *Orchestrator {
	return &Orchestrator{
		svc:       svc,
		inspector: inspector,
		resolver:  resolver,
		waiter:    waiter,
		logger:    logger,
	}
}

// Ingest resolves the target store once, then processes every PDF found
// directly inside sourceDir (non-recursive) one after another: pre-flight
// inspection, upload, import submission with source_type/book_title metadata,
// and a blocking wait for the import to finish. The first failure aborts the
// batch; files already indexed stay indexed. A directory with no PDFs returns
// a zero count (the store may still have been created, which is a valid
// outcome). Returns the number of files indexed and the resolved store ID.
func (o *Orchestrator) Ingest(ctx context.Context, sourceDir, existingStoreID, displayName string) (int, string, error) {
	store, err := o.resolver.Resolve(ctx, existingStoreID, displayName)
	if err != nil {
		return 0, "", err
	}

	files, err := listPDFs(sourceDir)
	if err != nil {
		return 0, store.ID, err
	}
	if len(files) == 0 {
		o.logger.Warn().Str("dir", sourceDir).Msg("No PDF files found to ingest")
		return 0, store.ID, nil
	}

	for idx, path := range files {
		title := titleFromPath(path)

		info, err := o.inspector.Inspect(path)
		if err != nil {
			return idx, store.ID, err
		}

		o.logger.Info().
			Int("file", idx+1).
			Int("total", len(files)).
			Str("name", filepath.Base(path)).
			Int("pages", info.PageCount).
			Msg("Uploading PDF")

		fileID, err := o.svc.UploadFile(ctx, path, naming.ResourceName(title), title)
		if err != nil {
			return idx, store.ID, fmt.Errorf("upload %s: %w", filepath.Base(path), err)
		}

		op, err := o.svc.ImportFile(ctx, store.ID, fileID, models.BookMetadata(title))
		if err != nil {
			return idx, store.ID, fmt.Errorf("import %s: %w", filepath.Base(path), err)
		}

		if _, err := o.waiter.Wait(ctx, op); err != nil {
			return idx, store.ID, fmt.Errorf("index %s: %w", filepath.Base(path), err)
		}

		o.logger.Info().
			Int("file", idx+1).
			Int("total", len(files)).
			Str("name", filepath.Base(path)).
			Msg("PDF indexed")
	}

	return len(files), store.ID, nil
}

// listPDFs returns the PDF files directly inside dir, in directory order.
// Subdirectories are not descended into; extension matching ignores case.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source directory %s: %v: %w", dir, err, models.ErrValidation)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// titleFromPath derives the document title from the filename, extension
// stripped. The title doubles as display name and book_title metadata.
func titleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
