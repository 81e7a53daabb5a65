package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duebook-dev/duebook/internal/activitylog"
)

func newHistoryCommand(configPath *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent changes to reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := activitylog.Read(a.dataDir())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No history yet")
				return nil
			}

			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}

			for _, e := range entries {
				line := fmt.Sprintf("%s  %-8s %s", e.Timestamp.Format("2006-01-02 15:04"), e.Action, e.SeriesID)
				if e.Date != "" {
					line += "  " + e.Date
				}
				if e.Details != "" {
					line += "  " + e.Details
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "show only the most recent N entries")

	return cmd
}
