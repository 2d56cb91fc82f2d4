package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/liber/internal/common"
	"github.com/ternarybob/liber/internal/services/ingest"
	"github.com/ternarybob/liber/internal/services/query"
)

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// handleAskDocuments implements the ask_documents tool
func handleAskDocuments(engine *query.Engine, config *common.Config, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		question, err := request.RequireString("question")
		if err != nil || question == "" {
			return textResult("Error: question parameter is required"), nil
		}

		if config.Store.Name == "" {
			return textResult("Error: no File Search store configured; set store.name in liber.toml or run ingest_folder first"), nil
		}

		sourceType := request.GetString("source_type", "")

		result, err := engine.Ask(ctx, question, config.Store.Name, sourceType)
		if err != nil {
			logger.Error().Err(err).Msg("Grounded query failed")
			return textResult(fmt.Sprintf("Query error: %v", err)), nil
		}

		return textResult(formatAnswer(question, result)), nil
	}
}

// handleSuggestQuestions implements the suggest_questions tool
func handleSuggestQuestions(engine *query.Engine, config *common.Config, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if config.Store.Name == "" {
			return textResult("Error: no File Search store configured; set store.name in liber.toml or run ingest_folder first"), nil
		}

		count := request.GetInt("count", 3)
		if count > 10 {
			count = 10
		}
		sourceType := request.GetString("source_type", "")

		suggestions, err := engine.Suggest(ctx, config.Store.Name, sourceType, count)
		if err != nil {
			logger.Error().Err(err).Msg("Question suggestion failed")
			return textResult(fmt.Sprintf("Suggestion error: %v", err)), nil
		}

		return textResult(formatSuggestions(suggestions)), nil
	}
}

// handleIngestFolder implements the ingest_folder tool
func handleIngestFolder(orchestrator *ingest.Orchestrator, config *common.Config, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		folder, err := request.RequireString("folder")
		if err != nil || folder == "" {
			return textResult("Error: folder parameter is required"), nil
		}

		displayName := request.GetString("display_name", config.Store.DisplayName)

		count, storeID, err := orchestrator.Ingest(ctx, folder, config.Store.Name, displayName)
		if err != nil {
			logger.Error().Err(err).Int("indexed", count).Msg("Ingestion failed")
			return textResult(fmt.Sprintf("Ingestion error after %d file(s): %v", count, err)), nil
		}

		// Later ask/suggest calls in this session target the resolved store
		config.Store.Name = storeID

		return textResult(formatIngestResult(count, storeID)), nil
	}
}
