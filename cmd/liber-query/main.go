// liber-query asks grounded questions against a Gemini File Search store and
// prints the answer with its citations, or proposes new questions to explore.
//
// Usage:
//
//	liber-query [-config liber.toml] -store fileSearchStores/... [-source-type book] "QUESTION"
//	liber-query -store fileSearchStores/... -suggest 3
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/liber/internal/common"
	"github.com/ternarybob/liber/internal/models"
	"github.com/ternarybob/liber/internal/services/gemini"
	"github.com/ternarybob/liber/internal/services/query"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles  configPaths
	storeID      = flag.String("store", "", "File Search store to query (fileSearchStores/...)")
	sourceType   = flag.String("source-type", "", `Filter by source_type metadata (currently only "book")`)
	suggestCount = flag.Int("suggest", 0, "Instead of answering, propose N questions to explore")
	showVersion  = flag.Bool("version", false, "Print version information")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	_ = godotenv.Load()

	flag.Parse()

	if *showVersion {
		fmt.Printf("liber-query version %s\n", common.GetVersion())
		os.Exit(0)
	}

	if len(configFiles) == 0 {
		if _, err := os.Stat("liber.toml"); err == nil {
			configFiles = append(configFiles, "liber.toml")
		}
	}

	config, err := common.LoadFromFiles(configFiles...)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	if *storeID != "" {
		config.Store.Name = *storeID
	}

	logger := common.InitLogger(config)

	if err := config.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
		os.Exit(1)
	}

	question := ""
	if *suggestCount <= 0 {
		if flag.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "Usage: liber-query [flags] \"QUESTION\"")
			flag.PrintDefaults()
			os.Exit(2)
		}
		question = flag.Arg(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := gemini.NewClient(ctx, config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize Gemini client")
		os.Exit(1)
	}

	engine := query.NewEngine(client, logger)

	if *suggestCount > 0 {
		suggestions, err := engine.Suggest(ctx, config.Store.Name, *sourceType, *suggestCount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(suggestions) == 0 {
			fmt.Println("No suggestions returned. Try again after adding more PDFs.")
			return
		}
		fmt.Println("Suggested questions:")
		for i, s := range suggestions {
			fmt.Printf("%d. %s\n", i+1, s)
		}
		return
	}

	result, err := engine.Ask(ctx, question, config.Store.Name, *sourceType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printResult(result)
}

func printResult(result *models.QueryResult) {
	fmt.Println("\n=== Answer ===")
	fmt.Println()
	if result.Answer == "" {
		fmt.Println("(No answer returned.)")
	} else {
		fmt.Println(result.Answer)
	}

	if len(result.Citations) == 0 {
		fmt.Println("\n(No citations returned.)")
		return
	}

	fmt.Println("\n=== Citations ===")
	for i, citation := range result.Citations {
		fmt.Printf("\nCitation %d:\n", i+1)
		fmt.Printf("Source title: %s\n", citation.Title)
		fmt.Printf("Text: %s\n", citation.Snippet)
	}
}
