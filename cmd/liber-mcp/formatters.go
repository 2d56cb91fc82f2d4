package main

import (
	"fmt"
	"strings"

	"github.com/ternarybob/liber/internal/models"
)

// formatAnswer renders a query result as markdown
func formatAnswer(question string, result *models.QueryResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Answer\n\n")
	if result.Answer == "" {
		b.WriteString("_No answer returned._\n")
	} else {
		b.WriteString(result.Answer)
		b.WriteString("\n")
	}

	b.WriteString("\n## Citations\n\n")
	if len(result.Citations) == 0 {
		b.WriteString("_No citations returned._\n")
		return b.String()
	}

	for i, citation := range result.Citations {
		fmt.Fprintf(&b, "%d. **%s**: %s\n", i+1, citation.Title, citation.Snippet)
	}

	return b.String()
}

// formatSuggestions renders suggested questions as a markdown list
func formatSuggestions(suggestions []string) string {
	if len(suggestions) == 0 {
		return "No suggestions returned. Try again after ingesting more PDFs."
	}

	var b strings.Builder
	b.WriteString("## Suggested questions\n\n")
	for i, s := range suggestions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return b.String()
}

// formatIngestResult renders the outcome of a folder ingestion
func formatIngestResult(count int, storeID string) string {
	if count == 0 {
		return fmt.Sprintf("No PDF files found to ingest. Store: `%s`", storeID)
	}
	return fmt.Sprintf("Ingested %d PDF(s) into store `%s`.", count, storeID)
}
