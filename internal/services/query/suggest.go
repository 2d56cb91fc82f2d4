package query

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/ternarybob/liber/internal/models"
)

const (
	// defaultSuggestionCount is used when the caller asks for zero or fewer.
	defaultSuggestionCount = 3

	// minSuggestionLen drops trimmed lines at or below this rune count;
	// anything that short is markup residue, not a question.
	minSuggestionLen = 10
)

// Suggest asks the service to propose exploratory questions grounded in the
// store's documents and parses the free-text response into at most count
// discrete questions. Best-effort: there is no guarantee every returned line
// is a well-formed question.
func (e *Engine) Suggest(ctx context.Context, storeID, sourceType string, count int) ([]string, error) {
	if storeID == "" {
		return nil, fmt.Errorf("store identifier is required to fetch suggestions: %w", models.ErrValidation)
	}
	if count <= 0 {
		count = defaultSuggestionCount
	}

	prompt := fmt.Sprintf(
		"You are a helpful tutor. Propose %d specific, thought-provoking questions "+
			"someone should explore after studying the uploaded PDFs. Each question must "+
			"be grounded in the documents and include enough context to understand what "+
			"to look for.", count)

	resp, err := e.svc.GenerateGrounded(ctx, prompt, []string{storeID}, BuildMetadataFilter(sourceType))
	if err != nil {
		return nil, fmt.Errorf("suggest questions: %w", err)
	}

	suggestions := ParseSuggestions(resp.Text, count)
	e.logger.Info().
		Str("store", storeID).
		Int("suggestions", len(suggestions)).
		Msg("Generated question suggestions")

	return suggestions, nil
}

// ParseSuggestions splits free-form model output into discrete questions:
// one per line, bullet and enumeration markup stripped, lines of 10 or fewer
// characters discarded, original order kept, truncated to limit.
func ParseSuggestions(text string, limit int) []string {
	if limit <= 0 {
		limit = defaultSuggestionCount
	}

	suggestions := make([]string, 0, limit)
	for _, line := range strings.Split(text, "\n") {
		s := trimMarkup(line)
		if len([]rune(s)) <= minSuggestionLen {
			continue
		}
		suggestions = append(suggestions, s)
		if len(suggestions) == limit {
			break
		}
	}
	return suggestions
}

// trimMarkup strips surrounding whitespace, bullet characters, and leading
// list enumerators ("1.", "2)", "#", ">") from a line.
func trimMarkup(line string) string {
	s := strings.Trim(line, " \t\r-*")

	// Leading enumerators: digits followed by '.' or ')'
	trimmed := strings.TrimLeftFunc(s, unicode.IsDigit)
	if trimmed != s && len(trimmed) > 0 && (trimmed[0] == '.' || trimmed[0] == ')') {
		s = trimmed[1:]
	}

	s = strings.TrimLeft(s, "#> ")
	return strings.TrimSpace(s)
}
