package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createAskDocumentsTool returns the ask_documents tool definition
func createAskDocumentsTool() mcp.Tool {
	return mcp.NewTool("ask_documents",
		mcp.WithDescription("Ask a natural-language question answered with citations from the ingested PDF documents (Gemini File Search)"),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("The question to answer from the documents"),
		),
		mcp.WithString("source_type",
			mcp.Description(`Filter by source_type metadata (currently only "book"); omit to search all sources`),
		),
	)
}

// createSuggestQuestionsTool returns the suggest_questions tool definition
func createSuggestQuestionsTool() mcp.Tool {
	return mcp.NewTool("suggest_questions",
		mcp.WithDescription("Propose exploratory questions grounded in the ingested PDF documents"),
		mcp.WithNumber("count",
			mcp.Description("Number of questions to propose (default: 3)"),
		),
		mcp.WithString("source_type",
			mcp.Description(`Filter by source_type metadata (currently only "book")`),
		),
	)
}

// createIngestFolderTool returns the ingest_folder tool definition
func createIngestFolderTool() mcp.Tool {
	return mcp.NewTool("ingest_folder",
		mcp.WithDescription("Upload every PDF in a local folder into the File Search store and wait for indexing to finish"),
		mcp.WithString("folder",
			mcp.Required(),
			mcp.Description("Local folder containing PDF files (non-recursive)"),
		),
		mcp.WithString("display_name",
			mcp.Description("Display name when a new store must be created (default from config)"),
		),
	)
}
