package models

// Metadata keys attached to every imported document. Each import carries
// exactly these two entries.
const (
	MetaKeySourceType = "source_type"
	MetaKeyBookTitle  = "book_title"

	// SourceTypeBook is the only supported source classification.
	SourceTypeBook = "book"
)

// Store represents a named, durable remote file search collection.
// The ID (fileSearchStores/...) is assigned by the service, is stable, and is
// the single value used for all queries and imports once resolved.
type Store struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// MetadataEntry is one key/value pair attached to a document at import time.
type MetadataEntry struct {
	Key         string `json:"key"`
	StringValue string `json:"string_value"`
}

// BookMetadata returns the metadata entries attached to an imported document:
// the fixed source classification plus the document's human title.
func BookMetadata(title string) []MetadataEntry {
	return []MetadataEntry{
		{Key: MetaKeySourceType, StringValue: SourceTypeBook},
		{Key: MetaKeyBookTitle, StringValue: title},
	}
}

// ImportOperation is a handle to an asynchronous remote import job. It
// transitions only from incomplete to terminal; a terminal operation may have
// failed, in which case Failed is set and FailureMessage carries the service's
// error text. Handles are refreshed via the retrieval service and discarded
// once terminal.
type ImportOperation struct {
	Name           string `json:"name"`
	Done           bool   `json:"done"`
	Failed         bool   `json:"failed"`
	FailureMessage string `json:"failure_message,omitempty"`
}
