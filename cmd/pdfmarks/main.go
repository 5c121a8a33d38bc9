package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/pdfmarks/pdfmarks/internal/bibliography"
	"github.com/pdfmarks/pdfmarks/internal/config"
	"github.com/pdfmarks/pdfmarks/internal/export"
	"github.com/pdfmarks/pdfmarks/internal/mcp"
	"github.com/pdfmarks/pdfmarks/internal/notify"
	"github.com/pdfmarks/pdfmarks/internal/pipeline"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures slog according to the configured level. Logs
// always go to stderr so MCP stdio framing and the stdout summary stay
// clean.
func setupLogging(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// buildExporters maps the configured format names to exporters.
func buildExporters(formats []string) []export.Exporter {
	exporters := make([]export.Exporter, 0, len(formats))
	for _, format := range formats {
		switch format {
		case "json":
			exporters = append(exporters, export.NewJSONExporter())
		case "csv":
			exporters = append(exporters, export.NewCSVExporter())
		case "xlsx":
			exporters = append(exporters, export.NewXLSXExporter())
		case "markdown":
			exporters = append(exporters, export.NewMarkdownExporter())
		}
	}
	return exporters
}

// runPipeline executes the one-shot mode and returns the process exit code.
func runPipeline(cfg *config.Config, orchestrator *pipeline.Orchestrator, logger *slog.Logger) int {
	var summary pipeline.Summary
	if cfg.InputDir != "" {
		batchSummary, err := orchestrator.ProcessBatch(cfg.InputDir)
		if err != nil {
			logger.Error("batch processing failed", "dir", cfg.InputDir, "error", err)
			return 1
		}
		summary = batchSummary
	} else {
		summary = orchestrator.Process([]string{cfg.InputFile})
	}

	notifier := notify.NewNotifier(os.Stdout, cfg.Notify, logger)
	notifier.Summarize(summary)

	if summary.HasFailures() {
		return 1
	}
	return 0
}

// runMCPMode serves the pipeline over MCP stdio.
func runMCPMode(cfg *config.Config, orchestrator *pipeline.Orchestrator, logger *slog.Logger) int {
	server, err := mcp.NewServer(cfg, orchestrator)
	if err != nil {
		logger.Error("failed to create MCP server", "error", err)
		return 1
	}

	if err := server.Run(context.Background()); err != nil {
		logger.Error("MCP server error", "error", err)
		return 1
	}
	return 0
}

func run() int {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return 0
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	logger := setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		logger.Debug("starting", "config", cfg.String())
	}

	// The bibliography is loaded once and shared read-only across the run.
	loader := bibliography.NewLoader(logger)
	records, err := loader.LoadFile(cfg.BibtexPath)
	if err != nil {
		logger.Error("failed to load bibliography", "path", cfg.BibtexPath, "error", err)
		return 1
	}

	resolver := bibliography.NewResolver(records, nil, logger)
	orchestrator := pipeline.NewOrchestrator(resolver, buildExporters(cfg.Formats), cfg.OutputDir, logger)

	if cfg.IsMCPMode() {
		return runMCPMode(cfg, orchestrator, logger)
	}
	return runPipeline(cfg, orchestrator, logger)
}

func main() {
	os.Exit(run())
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("pdfmarks\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
