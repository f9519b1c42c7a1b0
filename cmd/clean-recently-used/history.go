package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucaswerkmeister/clean-recently-used/internal/config"
	"github.com/lucaswerkmeister/clean-recently-used/internal/journal"
	"github.com/lucaswerkmeister/clean-recently-used/internal/model"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded in the journal",
		Long: `History lists purge runs recorded in the journal, newest first.

Runs are recorded when the journal is enabled with --journal or with
"journal: true" in the configuration file.

Examples:
  # Show the last 20 runs
  clean-recently-used history

  # Show the entries removed by run 42
  clean-recently-used history --run 42

  # Export the whole history as JSON
  clean-recently-used history --limit 0 --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", config.DefaultHistoryLimit,
		"Maximum number of runs to show (0 for all)")
	cmd.Flags().Int64("run", 0,
		"Show the entries removed by this run")
	cmd.Flags().StringP("config", "c", "",
		"Path to configuration file (default: $XDG_CONFIG_HOME/clean-recently-used/config.yaml)")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output in Markdown format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	runID, err := cmd.Flags().GetInt64("run")
	if err != nil {
		return err
	}
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return err
	}
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	if cfg.JSONReport && cfg.MarkdownReport {
		return fmt.Errorf("configuration error: %w", config.ErrConflictingReportFormats)
	}

	if err := loadConfigFile(cfg); err != nil {
		return err
	}

	writer := newWriter(cfg, cmd.OutOrStdout())

	j, err := journal.Open(cfg.JournalDir, journal.Options{CreateIfNotExists: false})
	if errors.Is(err, journal.ErrNotFound) {
		if runID != 0 {
			return fmt.Errorf("run %d not found", runID)
		}
		_, err = writer.WriteRuns(nil)
		return err
	}
	if err != nil {
		return err
	}
	defer j.Close()

	ctx := cmd.Context()

	if runID == 0 {
		runs, err := j.Runs(ctx, limit)
		if err != nil {
			return err
		}
		_, err = writer.WriteRuns(runs)
		return err
	}

	runs, err := j.Runs(ctx, 0)
	if err != nil {
		return err
	}
	for _, r := range runs {
		if r.ID != runID {
			continue
		}
		entries, err := j.Removed(ctx, runID)
		if err != nil {
			return err
		}
		_, err = writer.Write(runSummary(r, entries))
		return err
	}
	return fmt.Errorf("run %d not found", runID)
}

// runSummary rebuilds the summary of a recorded run.
func runSummary(r model.Run, entries []model.RemovedEntry) *model.Summary {
	s := model.NewSummary(r.RegistryPath, r.Prefixes, r.Patterns)
	s.Time = r.Time
	s.Removed = entries
	s.Kept = r.Kept
	s.DryRun = r.DryRun
	s.Written = r.Written
	s.Existed = r.DigestBefore != ""
	return s
}
