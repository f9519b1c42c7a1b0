package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lucaswerkmeister/clean-recently-used/internal/config"
)

// NewRootCmd creates the root command for clean-recently-used.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean-recently-used [flags] DIRECTORY...",
		Short: "Remove entries under given directories from the recently used files list",
		Long: `clean-recently-used removes entries from the desktop's recently used files
registry ($XDG_DATA_HOME/recently-used.xbel) whose file:// paths lie under
one of the given directories.

Directories must be absolute. /tmp matches /tmp and /tmp/a.txt but not
/tmp2/b.txt. Entries with other URI schemes are never removed. The rest of
the registry is kept byte for byte, and the file is written atomically and
only when something was removed.

Examples:
  # Forget everything opened from temporary directories
  clean-recently-used /tmp /var/tmp

  # Show what would be removed
  clean-recently-used --dry-run ~/Downloads

  # Also drop partial downloads anywhere
  clean-recently-used -p '*.part' -p '*.crdownload' /tmp`,
		Version:       getVersion(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCleanCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.Flags().BoolP("dry-run", "n", false,
		"Report matching entries without modifying the registry")
	cmd.Flags().StringArrayP("pattern", "p", nil,
		"Also remove entries whose path matches this gitignore-style pattern (repeatable)")
	cmd.Flags().StringP("config", "c", "",
		"Path to configuration file (default: $XDG_CONFIG_HOME/clean-recently-used/config.yaml)")
	cmd.Flags().Bool("journal", false,
		"Record this run in the journal")
	cmd.Flags().BoolP("report", "r", false,
		"Print a summary of the run")
	cmd.Flags().BoolP("json", "j", false,
		"Print the summary in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Print the summary in Markdown format")

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// loadConfigFile merges the configuration file into cfg.
// If the user explicitly specified a path, a missing file is an error.
// Otherwise the XDG config file is optional.
func loadConfigFile(cfg *config.Config) error {
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath == "" {
		if explicitConfigPath {
			return fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
		}
		return nil
	}

	file, err := config.LoadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}
	cfg.Merge(file)
	return nil
}
