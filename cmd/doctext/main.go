// Package main is the doctext entry point. It takes no arguments: it extracts the
// configured document and workbook into text files and prints one line per file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hyperjump/doctext/internal/config"
	"github.com/hyperjump/doctext/internal/extract"
	"github.com/hyperjump/doctext/internal/runner"
	"github.com/hyperjump/doctext/pkg/utils"
	"go.uber.org/zap"
)

// loadConfig loads doctext.yaml from dir when present, otherwise the built-in jobs.
// Returns the config and the path that was loaded ("" for defaults).
func loadConfig(dir string) (*config.Config, string, error) {
	path := filepath.Join(dir, config.FileName)
	cfg, loaded, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, "", err
	}
	if !loaded {
		path = ""
	}
	return cfg, path, nil
}

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get working directory: %v\n", err)
		os.Exit(1)
	}
	cfg, configPath, err := loadConfig(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, _, err := utils.NewRunLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Debug("config loaded",
		zap.String("config_path", configPath),
		zap.String("base_dir", cfg.BaseDir),
		zap.Int("jobs", len(cfg.Jobs)),
	)

	n, err := run(context.Background(), cfg, logger, os.Stdout)
	if err != nil {
		logger.Fatal("Extraction failed", zap.Error(err))
	}
	logger.Debug("run finished", zap.Int("processed", n))
}

// run executes every configured job, printing confirmations to stdout.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, stdout io.Writer) (int, error) {
	extOpts := []extract.ExtractorOption{}
	runOpts := []runner.RunnerOption{runner.WithStdout(stdout)}
	if cfg.Debug && logger != nil {
		extOpts = append(extOpts, extract.WithLogger(logger))
		runOpts = append(runOpts, runner.WithLogger(logger))
	}
	r := runner.NewRunner(extract.NewExtractor(extOpts...), runOpts...)
	return r.Run(ctx, cfg.Jobs)
}
