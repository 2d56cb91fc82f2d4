package models

import "strings"

const (
	// SnippetMaxLen caps the length of a citation snippet in runes.
	SnippetMaxLen = 400

	// SnippetEllipsis is appended to a snippet when truncation occurred.
	SnippetEllipsis = "..."

	// UnknownSourceTitle is the sentinel title for a grounding chunk whose
	// retrieved context carries no source title.
	UnknownSourceTitle = "Unknown Source"
)

// RetrievedContext is the optional evidence payload of a grounding chunk:
// the source document title and the retrieved text, either of which may be
// absent in the service response.
type RetrievedContext struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text,omitempty"`
}

// GroundingChunk is one unit of retrieved evidence attached to a generated
// answer. Chunks without a retrieved context are skipped during citation
// extraction, not treated as errors.
type GroundingChunk struct {
	RetrievedContext *RetrievedContext `json:"retrieved_context,omitempty"`
}

// GenerationResponse is the shaped result of one grounded generation call.
// Text may be empty; Chunks may be empty. Explicit optional structure keeps
// core logic independent of SDK response types.
type GenerationResponse struct {
	Text   string           `json:"text"`
	Chunks []GroundingChunk `json:"chunks,omitempty"`
}

// Citation is the normalized presentation of one grounding chunk: source
// title (sentinel when absent) and a bounded, newline-free text snippet.
type Citation struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// QueryResult is the transient outcome of one grounded query: the answer text
// (possibly empty) and the citations in response order. Not persisted.
type QueryResult struct {
	Answer    string     `json:"answer"`
	Citations []Citation `json:"citations"`
}

// NewCitation builds a Citation from a retrieved context. The title falls
// back to UnknownSourceTitle when absent. Newlines in the text are replaced
// with spaces, and the result is capped at SnippetMaxLen runes with
// SnippetEllipsis appended when truncation occurred.
func NewCitation(ctx *RetrievedContext) Citation {
	title := ctx.Title
	if title == "" {
		title = UnknownSourceTitle
	}

	text := strings.ReplaceAll(ctx.Text, "\n", " ")
	runes := []rune(text)
	snippet := text
	if len(runes) > SnippetMaxLen {
		snippet = string(runes[:SnippetMaxLen]) + SnippetEllipsis
	}

	return Citation{Title: title, Snippet: snippet}
}
