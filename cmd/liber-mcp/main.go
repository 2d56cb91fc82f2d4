// liber-mcp exposes the PDF knowledge base over the Model Context Protocol:
// grounded question answering, question suggestions, and folder ingestion as
// stdio tools.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"

	"github.com/ternarybob/liber/internal/common"
	"github.com/ternarybob/liber/internal/services/gemini"
	"github.com/ternarybob/liber/internal/services/ingest"
	"github.com/ternarybob/liber/internal/services/pdf"
	"github.com/ternarybob/liber/internal/services/query"
)

func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("LIBER_CONFIG")
	if configPath == "" {
		configPath = "liber.toml"
	}
	if _, err := os.Stat(configPath); err != nil {
		// Config file is optional when the environment carries the settings
		configPath = ""
	}

	config, err := common.LoadFromFiles(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Minimal logging to avoid cluttering MCP stdio
	logger := arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString("warn")

	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	client, err := gemini.NewClient(context.Background(), config, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize Gemini client: %v\n", err)
		os.Exit(1)
	}

	engine := query.NewEngine(client, logger)
	orchestrator := ingest.NewOrchestrator(
		client,
		pdf.NewInspector(logger),
		ingest.NewStoreResolver(client, logger),
		ingest.NewOperationWaiter(client, config.PollInterval(), logger),
		logger,
	)

	mcpServer := server.NewMCPServer(
		"liber",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(createAskDocumentsTool(), handleAskDocuments(engine, config, logger))
	mcpServer.AddTool(createSuggestQuestionsTool(), handleSuggestQuestions(engine, config, logger))
	mcpServer.AddTool(createIngestFolderTool(), handleIngestFolder(orchestrator, config, logger))

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
