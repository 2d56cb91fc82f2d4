// liber-ingest uploads a folder of PDF books into a Gemini File Search store
// and waits for each import to be indexed.
//
// Usage:
//
//	liber-ingest [-config liber.toml] [-store fileSearchStores/...] [-display-name NAME] FOLDER
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
	"github.com/ternarybob/liber/internal/services/gemini"
	"github.com/ternarybob/liber/internal/services/ingest"
	"github.com/ternarybob/liber/internal/services/pdf"
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
	storeID      = flag.String("store", "", "Existing File Search store (fileSearchStores/...); omit to create a new one")
	displayName  = flag.String("display-name", "", "Display name when creating a new store (overrides config)")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	// .env is optional; real environment wins either way
	_ = godotenv.Load()

	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("liber-ingest version %s\n", common.GetVersion())
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: liber-ingest [flags] FOLDER")
		flag.PrintDefaults()
		os.Exit(2)
	}
	sourceDir := flag.Arg(0)

	// Auto-discover config file if not specified
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

	// Command-line flag overrides (highest priority)
	if *storeID != "" {
		config.Store.Name = *storeID
	}
	if *displayName != "" {
		config.Store.DisplayName = *displayName
	}

	logger := common.InitLogger(config)
	common.PrintBanner(common.GetVersion())

	if err := config.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := gemini.NewClient(ctx, config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize Gemini client")
		os.Exit(1)
	}

	orchestrator := ingest.NewOrchestrator(
		client,
		pdf.NewInspector(logger),
		ingest.NewStoreResolver(client, logger),
		ingest.NewOperationWaiter(client, config.PollInterval(), logger),
		logger,
	)

	count, resolvedStore, err := orchestrator.Ingest(ctx, sourceDir, config.Store.Name, config.Store.DisplayName)
	if err != nil {
		logger.Error().Err(err).Int("indexed", count).Msg("Ingestion aborted")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Ingested %d PDF(s) into store %s\n", count, resolvedStore)
	fmt.Printf("Use this store with liber-query: -store %s\n", resolvedStore)
}
