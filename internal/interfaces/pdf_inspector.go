package interfaces

// PDFInfo holds the result of a pre-flight PDF inspection.
type PDFInfo struct {
	// PageCount is the number of pages in the document.
	PageCount int
}

// PDFInspector validates that a local file is a readable PDF before any
// remote call is made for it. Failures map to models.ErrValidation.
type PDFInspector interface {
	// Inspect parses the file at path and returns basic document info.
	Inspect(path string) (*PDFInfo, error)
}
