package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duebook-dev/duebook/internal/cli"
	"github.com/duebook-dev/duebook/internal/dateutil"
)

func newListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored reminder series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			all, err := a.series.List()
			if err != nil {
				return err
			}
			if len(all) == 0 {
				fmt.Println("No reminders yet. Add one with `duebook add`.")
				return nil
			}

			for _, ser := range all {
				paid := ""
				if ser.Paid {
					paid = "  [paid]"
				}
				fmt.Printf("%s  %s  %s  %s  from %s%s\n",
					ser.ID,
					ser.Title,
					cli.FormatAmount(ser.Amount),
					cli.FormatRule(ser.Rule),
					dateutil.DayKey(ser.AnchorDate),
					paid,
				)
				if n := len(ser.Exceptions); n > 0 {
					fmt.Printf("    %d occurrence override(s)\n", n)
				}
			}
			return nil
		},
	}
}
