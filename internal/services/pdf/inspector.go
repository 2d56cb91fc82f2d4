// -----------------------------------------------------------------------
// PDF Inspector Service - pre-flight validation of source files
// Uses pdfcpu for Go-native PDF processing
// -----------------------------------------------------------------------

package pdf

import (
	"fmt"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/liber/internal/interfaces"
	"github.com/ternarybob/liber/internal/models"
)

// Inspector implements the PDFInspector interface using pdfcpu
type Inspector struct {
	logger arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.PDFInspector = (*Inspector)(nil)

// NewInspector creates a new PDF inspector service
func NewInspector(logger arbor.ILogger) *Inspector {
	return &Inspector{logger: logger}
}

// Inspect parses the PDF at path and returns its page count. Files that
// cannot be parsed as PDF are rejected before any remote call is made.
func (i *Inspector) Inspect(path string) (*interfaces.PDFInfo, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		i.logger.Warn().
			Str("file", filepath.Base(path)).
			Err(err).
			Msg("File failed PDF pre-flight inspection")
		return nil, fmt.Errorf("%s is not a readable PDF (%v): %w", filepath.Base(path), err, models.ErrValidation)
	}

	return &interfaces.PDFInfo{PageCount: ctx.PageCount}, nil
}
