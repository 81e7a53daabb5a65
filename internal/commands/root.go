package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duebook-dev/duebook/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "duebook",
		Short:   "Track recurring bills and payment reminders",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigFile, "path to duebook.yaml")

	rootCmd.AddCommand(newInitCommand(&configPath))
	rootCmd.AddCommand(newAddCommand(&configPath))
	rootCmd.AddCommand(newListCommand(&configPath))
	rootCmd.AddCommand(newUpcomingCommand(&configPath))
	rootCmd.AddCommand(newOverdueCommand(&configPath))
	rootCmd.AddCommand(newPaidCommand(&configPath))
	rootCmd.AddCommand(newSkipCommand(&configPath))
	rootCmd.AddCommand(newEditCommand(&configPath))
	rootCmd.AddCommand(newSplitCommand(&configPath))
	rootCmd.AddCommand(newRemoveCommand(&configPath))
	rootCmd.AddCommand(newExportCommand(&configPath))
	rootCmd.AddCommand(newHistoryCommand(&configPath))

	return rootCmd
}
