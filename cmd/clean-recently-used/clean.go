package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lucaswerkmeister/clean-recently-used/internal/config"
	"github.com/lucaswerkmeister/clean-recently-used/internal/journal"
	"github.com/lucaswerkmeister/clean-recently-used/internal/log"
	"github.com/lucaswerkmeister/clean-recently-used/internal/model"
	"github.com/lucaswerkmeister/clean-recently-used/internal/purge"
	"github.com/lucaswerkmeister/clean-recently-used/internal/registry"
	"github.com/lucaswerkmeister/clean-recently-used/internal/report"
)

// runCleanCmd executes the root command.
func runCleanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Patterns are compiled before the registry is touched
	filter, err := purge.NewFilter(cfg.Prefixes, purge.Options{
		Patterns:         cfg.Patterns,
		NormalizeUnicode: cfg.NormalizeUnicode,
	})
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewPrivateLogger(cmd.ErrOrStderr(), cfg.Verbose)
	return runClean(cmd.Context(), cfg, filter, cmd.OutOrStdout(), logger)
}

// buildConfig creates a Config from cobra command flags and the
// configuration file. Relative directory arguments are rejected before the
// configuration file is read.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	prefixes, err := purge.NormalizePrefixes(args)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	cfg := config.NewConfig()
	cfg.Prefixes = prefixes
	cfg.Verbose = getVerboseFlag(cmd)

	cfg.DryRun, err = cmd.Flags().GetBool("dry-run")
	if err != nil {
		return nil, err
	}

	cfg.Patterns, err = cmd.Flags().GetStringArray("pattern")
	if err != nil {
		return nil, err
	}

	cfg.Journal, err = cmd.Flags().GetBool("journal")
	if err != nil {
		return nil, err
	}

	cfg.Report, err = cmd.Flags().GetBool("report")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	if err := loadConfigFile(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// runClean loads the registry, removes matching entries and writes it back
// when anything was removed.
func runClean(ctx context.Context, cfg *config.Config, filter *purge.Filter, out io.Writer, logger *slog.Logger) error {
	path := cfg.RegistryPath
	if path == "" {
		path = registry.DefaultPath()
	}

	logger.Debug("loading registry",
		"path", path,
		"prefixes", filter.Prefixes(),
		"patterns", filter.Patterns(),
	)

	reg, err := registry.Load(path)
	if err != nil {
		return err
	}
	if !reg.Exists {
		logger.Debug("registry does not exist, nothing to do", "path", path)
	}

	summary := model.NewSummary(path, filter.Prefixes(), filter.Patterns())
	summary.Existed = reg.Exists
	summary.DryRun = cfg.DryRun

	before := reg.Content
	result := filter.Apply(reg.Document)
	summary.Removed = result.Removed
	summary.Kept = result.Kept

	for _, e := range summary.Removed {
		logger.Debug("matched entry", "href", e.Href, "rule", e.Rule)
	}

	switch {
	case !summary.HasRemovals():
		logger.Debug("no matching entries, registry left untouched")
	case cfg.DryRun:
		logger.Debug("dry run, registry left untouched", "matched", summary.RemovedCount())
	default:
		if err := reg.Save(); err != nil {
			return err
		}
		summary.Written = true
		logger.Debug("registry rewritten", "removed", summary.RemovedCount(), "kept", summary.Kept)
	}

	if cfg.WantsReport() {
		if _, err := newWriter(cfg, out).Write(summary); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	if cfg.Journal {
		recordRun(ctx, cfg, summary, before, reg.Content, logger)
	}

	return nil
}

// newWriter returns the report writer selected by the configuration.
func newWriter(cfg *config.Config, out io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.New(report.FormatJSON, out)
	case cfg.MarkdownReport:
		return report.New(report.FormatMarkdown, out)
	default:
		return report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose))
	}
}

// recordRun stores the run in the journal. The registry is already in its
// final state, so journal failures are logged and do not fail the run.
func recordRun(ctx context.Context, cfg *config.Config, summary *model.Summary, before, after []byte, logger *slog.Logger) {
	j, err := journal.Open(cfg.JournalDir, journal.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open journal", "dir", cfg.JournalDir, "error", err)
		return
	}
	defer j.Close()

	id, err := j.Record(ctx, summary, before, after)
	if err != nil {
		logger.Warn("failed to record run", "journal", j.Path(), "error", err)
		return
	}
	logger.Debug("run recorded", "journal", j.Path(), "run", id)
}
