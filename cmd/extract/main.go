// Command extract runs the privacy-policy extraction pipeline over an
// input artifact and writes the nested and flattened JSON results.
//
// Table input (one policy per row):
//
//	go run ./cmd/extract --input ./data/policies.xlsx --out-dir ./results
//
// Single document input:
//
//	go run ./cmd/extract --input ./docs/policy.pdf \
//	  --provider deepseek --model deepseek-chat
//
// With persistence and change detection:
//
//	go run ./cmd/extract --input ./data/policies.xlsx \
//	  --db ./results/extraction.db --skip-unchanged
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/orange24122/extraction"
)

func main() {
	var (
		inputPath   = flag.String("input", "", "Path to input: .xlsx policy table, or a .txt/.md/.pdf document")
		configPath  = flag.String("config", "", "Path to YAML config file (flags override it)")
		outDir      = flag.String("out-dir", "", "Directory for JSON outputs (default: results)")
		provider    = flag.String("provider", "", "Model provider: deepseek, openai, openrouter, ollama, custom")
		model       = flag.String("model", "", "Model name")
		baseURL     = flag.String("base-url", "", "Provider base URL override")
		apiKey      = flag.String("api-key", "", "Provider API key (default: from env)")
		schemaPath  = flag.String("taxonomy", "", "Path to YAML taxonomy override (default: built-in)")
		dbPath      = flag.String("db", "", "Path to SQLite database (empty disables persistence)")
		skip        = flag.Bool("skip-unchanged", false, "Skip policies whose text hash matches the database")
		concurrency = flag.Int("concurrency", 0, "Max paragraphs annotated in parallel")
		verbose     = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Local development convenience; a missing .env is not an error.
	if err := godotenv.Load(); err == nil {
		slog.Debug("extract: loaded .env")
	}

	if *inputPath == "" {
		log.Fatal("--input flag is required")
	}

	cfg := extraction.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = extraction.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}

	if *provider != "" {
		cfg.Oracle.Provider = *provider
	}
	if *model != "" {
		cfg.Oracle.Model = *model
	}
	if *baseURL != "" {
		cfg.Oracle.BaseURL = *baseURL
	}
	if *apiKey != "" {
		cfg.Oracle.APIKey = *apiKey
	}
	if *outDir != "" {
		cfg.OutDir = *outDir
	}
	if *schemaPath != "" {
		cfg.SchemaPath = *schemaPath
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *skip {
		cfg.SkipUnchanged = true
	}
	if *concurrency > 0 {
		cfg.Concurrency = *concurrency
	}

	// Resolve the API key from well-known env vars when not set.
	if cfg.Oracle.APIKey == "" {
		switch cfg.Oracle.Provider {
		case "deepseek":
			cfg.Oracle.APIKey = os.Getenv("DEEPSEEK_API_KEY")
		case "openai":
			cfg.Oracle.APIKey = os.Getenv("OPENAI_API_KEY")
		case "openrouter":
			cfg.Oracle.APIKey = os.Getenv("OPENROUTER_API_KEY")
		}
		if cfg.Oracle.APIKey == "" {
			cfg.Oracle.APIKey = os.Getenv("LLM_API_KEY")
		}
	}
	if cfg.Oracle.APIKey == "" && cfg.Oracle.Provider != "ollama" {
		log.Fatalf("API key required for provider %q: set --api-key or the appropriate env var", cfg.Oracle.Provider)
	}

	engine, err := extraction.New(cfg)
	if err != nil {
		log.Fatalf("creating engine: %v", err)
	}
	defer engine.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := engine.Run(ctx, *inputPath); err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Warn("extract: interrupted, partial results written")
			return
		}
		log.Fatalf("run failed: %v", err)
	}
}
