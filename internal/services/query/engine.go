// -----------------------------------------------------------------------
// Query Engine - grounded question answering against a file search store
// with deterministic citation extraction
// -----------------------------------------------------------------------

package query

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/liber/internal/interfaces"
	"github.com/ternarybob/liber/internal/models"
)

// Engine issues grounded queries against a resolved file search store and
// shapes the response into answer text plus normalized citations. It holds no
// state beyond its collaborators; the store identifier is supplied per call.
type Engine struct {
	svc    interfaces.RetrievalService
	logger arbor.ILogger
}

// NewEngine creates a new query engine
func NewEngine(svc interfaces.RetrievalService, logger arbor.ILogger) *Engine {
	return &Engine{svc: svc, logger: logger}
}

// BuildMetadataFilter returns the metadata filter expression scoping a query
// to documents whose source_type equals the given value. An empty sourceType
// yields an empty filter, meaning unrestricted search.
func BuildMetadataFilter(sourceType string) string {
	if sourceType == "" {
		return ""
	}
	return fmt.Sprintf("%s=%q", models.MetaKeySourceType, sourceType)
}

// Ask issues a single grounded generation request for the question against
// the store, optionally scoped by source type. An empty answer is not an
// error. Citations are extracted from grounding chunks carrying a retrieved
// context; chunks without one are skipped.
func (e *Engine) Ask(ctx context.Context, question, storeID, sourceType string) (*models.QueryResult, error) {
	if storeID == "" {
		return nil, fmt.Errorf("store identifier is required to ask a question: %w", models.ErrValidation)
	}

	filter := BuildMetadataFilter(sourceType)
	e.logger.Debug().
		Str("store", storeID).
		Str("filter", filter).
		Msg("Issuing grounded query")

	resp, err := e.svc.GenerateGrounded(ctx, question, []string{storeID}, filter)
	if err != nil {
		return nil, fmt.Errorf("grounded query: %w", err)
	}

	result := &models.QueryResult{
		Answer:    resp.Text,
		Citations: extractCitations(resp.Chunks),
	}

	e.logger.Info().
		Str("store", storeID).
		Int("citations", len(result.Citations)).
		Int("answer_length", len(result.Answer)).
		Msg("Grounded query completed")

	return result, nil
}

// extractCitations walks the grounding chunks in response order, emitting one
// normalized citation per chunk that carries a retrieved context.
func extractCitations(chunks []models.GroundingChunk) []models.Citation {
	citations := make([]models.Citation, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk.RetrievedContext == nil {
			continue
		}
		citations = append(citations, models.NewCitation(chunk.RetrievedContext))
	}
	return citations
}
