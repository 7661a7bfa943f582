package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/pipeline"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/summarizer"
	pkgai "github.com/johnquangdev/meeting-minutes/pkg/ai"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// Command line tool that turns a transcript file into meeting minutes
// without the API server, database or cache. Summarization uses the same
// provider chain as the server and degrades to the deterministic fallback
// when no provider is configured.
func main() {
	var (
		input        = flag.String("input", "", "path to the transcript file (required)")
		title        = flag.String("title", "Meeting Minutes", "meeting title for the report header")
		format       = flag.String("format", "", "output format: markdown, html or text (default from config)")
		output       = flag.String("out", "", "output file (default stdout)")
		groupByOwner = flag.Bool("group-by-owner", false, "group action items by owner in the report")
	)
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *format == "" {
		*format = cfg.Pipeline.OutputFormat
	}
	if *groupByOwner {
		cfg.Pipeline.GroupActionsByOwner = true
	}

	raw, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("Failed to read transcript: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	var providers []summarizer.Summarizer
	groqClient := pkgai.NewGroqClient(&cfg.AI)
	if groqClient.Configured() {
		providers = append(providers, summarizer.NewGroq(groqClient))
	}
	geminiClient := pkgai.NewGeminiClient(&cfg.AI)
	if geminiClient.Configured() {
		providers = append(providers, summarizer.NewGemini(geminiClient))
	}
	var chain summarizer.Summarizer
	if len(providers) > 0 {
		chain = summarizer.NewChain(cfg.AI.RequestTimeout, logger, providers...)
	}

	// Ctrl-C returns the partial minutes of whatever chunks finished
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	svc := pipeline.NewService(&cfg.Pipeline, chain, logger)
	result, err := svc.ProcessTranscript(ctx, *title, string(raw))
	if err != nil {
		if result == nil {
			log.Fatalf("Failed to process transcript: %v", err)
		}
		log.Printf("⚠️  Processing interrupted, writing partial minutes: %v", err)
	}

	report, err := presenter.NewReport(cfg.Pipeline.GroupActionsByOwner).Render(result.Minutes, *format)
	if err != nil {
		log.Fatalf("Failed to render report: %v", err)
	}

	if *output == "" {
		fmt.Print(report)
	} else {
		if err := os.WriteFile(*output, []byte(report), 0o644); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		log.Printf("✅ Report written to %s", *output)
	}

	log.Printf("📝 %d chunks, %d words, %d action items, model=%s, elapsed=%s",
		result.ChunkCount,
		result.Stats.TotalWords,
		len(result.Minutes.ActionItems),
		result.ModelUsed,
		result.ProcessingTime,
	)
}
