package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"skyaudit/internal/audit"
	"skyaudit/internal/config"
	"skyaudit/internal/dataset"
)

const usage = "Usage: skyaudit dataset [output.csv]"

func initLogger(cfg *config.Config) {
	var logLevel slog.Level
	switch cfg.Log.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	// Diagnostics go to stderr; stdout is reserved for the count summary.
	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

func main() {
	configPath := flag.String("config", "", "Path to config file (YAML)")
	flag.Parse()

	if *configPath != "" {
		os.Setenv("SKYAUDIT_CONFIG_PATH", *configPath)
	}

	args := flag.Args()
	if len(args) < 1 || len(args) > 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	dir := args[0]
	output := ""
	if len(args) == 2 {
		output = args[1]
		if !strings.HasSuffix(output, ".csv") && !strings.HasSuffix(output, ".CSV") {
			fmt.Println(usage)
			os.Exit(1)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		// Use basic logging for config errors since logger isn't initialized yet
		basicLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		basicLogger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	slog.Info("Loading dataset", "directory", dir)
	ds, err := dataset.Load(dir, cfg.Files)
	if err != nil {
		slog.Error("Failed to load dataset", "error", err)
		os.Exit(1)
	}
	slog.Info("Dataset loaded",
		"lessons", len(ds.Lessons),
		"students", len(ds.Pilots),
		"instructors", len(ds.Instructors),
		"fleet", len(ds.Fleet),
		"repairs", len(ds.Repairs),
		"observations", len(ds.Weather),
	)

	auditor, err := audit.New(ds)
	if err != nil {
		slog.Error("Failed to build auditor", "error", err)
		os.Exit(1)
	}

	report, err := auditor.Run()
	if err != nil {
		slog.Error("Audit failed", "error", err)
		os.Exit(1)
	}

	if output != "" {
		// The report lives next to the dataset it audits.
		outPath := filepath.Join(dir, output)
		if err := dataset.WriteReport(outPath, report.All()); err != nil {
			slog.Error("Failed to write report", "error", err)
			os.Exit(1)
		}
		slog.Info("Report written", "path", outPath)
	}

	fmt.Println(report.Summary())
}
