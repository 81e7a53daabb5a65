package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/duebook-dev/duebook/internal/config"
	"github.com/duebook-dev/duebook/internal/store"
)

func newInitCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new duebook project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir)
		},
	}
}

func runInit(dir string) error {
	cfg := config.Default(filepath.Join(dir, "data", "duebook.db"))

	// Opening the store creates the data dir and schema.
	st, err := store.Open(cfg.Data.Path)
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	defer st.Close()

	cfgPath := filepath.Join(dir, defaultConfigFile)
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Initialized duebook project at %s\n", dir)
	return nil
}
