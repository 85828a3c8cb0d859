package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"enroll340b/internal/config"
	"enroll340b/internal/exporter"
	"enroll340b/internal/infrastructure"
	"enroll340b/internal/loader"
	"enroll340b/internal/pipeline"
	"enroll340b/internal/validation"
)

// options carries the parsed command line
type options struct {
	inputDir       string
	output         string
	keepAllColumns bool
	prefixes       string
	keepFirst      bool
	includeExpired bool
	today          string
	reference      string
	logLevel       string
}

func main() {
	var opts options
	flag.StringVar(&opts.inputDir, "input-dir", "", "directory containing .xlsx source files (required)")
	flag.StringVar(&opts.output, "output", "", "path to write the cleaned Excel file (required)")
	flag.BoolVar(&opts.keepAllColumns, "keep-all-columns", false, "keep all original columns instead of the curated set")
	flag.StringVar(&opts.prefixes, "prefixes", "", "comma-separated ID prefixes to keep (default DSH,PED)")
	flag.BoolVar(&opts.keepFirst, "keep-first", false, "dedup by load order instead of latest BeginDate")
	flag.BoolVar(&opts.includeExpired, "include-expired", false, "keep contracts whose term date has passed")
	flag.StringVar(&opts.today, "today", "", "override the run date (YYYY-MM-DD) for reproducible runs")
	flag.StringVar(&opts.reference, "reference", "", "reference xlsx to diff the output's RootID set against")
	flag.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flag.Parse()

	if opts.inputDir == "" || opts.output == "" {
		fmt.Fprintln(os.Stderr, "both --input-dir and --output are required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		slog.Error("run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyFlags(cfg, opts)

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithRunID(context.Background(), infrastructure.NewRunID())

	runDate, err := resolveRunDate(opts.today)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "Starting 340B consolidation",
		slog.String("input_dir", opts.inputDir),
		slog.String("output", opts.output),
		slog.String("run_date", runDate.Format("2006-01-02")),
		slog.Any("prefixes", cfg.Pipeline.Prefixes),
		slog.String("dedup_policy", cfg.Pipeline.DedupPolicy))

	outPath := config.MonthStampedOutput(opts.output, runDate)

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputDirectory(opts.inputDir); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(filepath.Dir(outPath)); err != nil {
		return err
	}

	l := loader.New(cfg.Pipeline, logger)
	dataset, skipped, err := l.Load(ctx, opts.inputDir)
	if err != nil {
		return err
	}
	discovered, err := l.Discovered(opts.inputDir)
	if err != nil {
		return err
	}

	p := pipeline.New(cfg.Pipeline, logger)
	result := p.Run(ctx, dataset, runDate)
	result.Summary.FilesDiscovered = discovered
	result.Summary.FilesLoaded = discovered - len(skipped)
	result.Summary.FilesSkipped = skipped

	dw := exporter.NewDatasetWriter(logger)
	if err := dw.Write(outPath, result.Projection.Headers, result.Projection.Records); err != nil {
		return err
	}

	cw := exporter.NewCSVWriter(logger)
	if err := cw.WriteSummary(config.SummaryPath(outPath), result.Summary); err != nil {
		return err
	}

	if opts.reference != "" {
		refIDs, err := exporter.LoadReferenceRootIDs(opts.reference, cfg.Pipeline)
		if err != nil {
			return fmt.Errorf("loading reference dataset: %w", err)
		}
		diff := exporter.BuildDiff(refIDs, result.RootIDs())
		if err := cw.WriteDiff(config.DiffPath(outPath), diff); err != nil {
			return err
		}
		logger.InfoContext(ctx, "Wrote reference diff",
			slog.Int("only_in_reference", len(diff.OnlyInReference)),
			slog.Int("only_in_output", len(diff.OnlyInOutput)))
	}

	logger.InfoContext(ctx, "Wrote cleaned dataset",
		slog.String("path", outPath),
		slog.Int("rows", result.Summary.FinalRows),
		slog.Int("columns", len(result.Projection.Headers)))

	return nil
}

// applyFlags overlays explicit command-line choices onto the loaded config
func applyFlags(cfg *config.Config, opts options) {
	if opts.prefixes != "" {
		var prefixes []string
		for _, p := range strings.Split(opts.prefixes, ",") {
			if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
				prefixes = append(prefixes, p)
			}
		}
		if len(prefixes) > 0 {
			cfg.Pipeline.Prefixes = prefixes
		}
	}
	if opts.keepFirst {
		cfg.Pipeline.DedupPolicy = "keep-first"
	}
	if opts.keepAllColumns {
		cfg.Pipeline.KeepAllColumns = true
	}
	if opts.includeExpired {
		cfg.Pipeline.IncludeExpired = true
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
}

// resolveRunDate captures the single "today" value the whole run is judged
// against
func resolveRunDate(override string) (time.Time, error) {
	if override == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", override)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --today value %q: %w", override, err)
	}
	return t, nil
}
