package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duebook-dev/duebook/internal/dateutil"
	"github.com/duebook-dev/duebook/internal/model"
)

func newSkipCommand(configPath *string) *cobra.Command {
	var restore bool

	cmd := &cobra.Command{
		Use:   "skip <series-id> <date>",
		Short: "Skip a single occurrence",
		Long: `Skip a single occurrence without touching the rest of the series.
With --restore, undoes a previous skip or edit of that occurrence.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := today()

			date, err := parseDateArg(args[1])
			if err != nil {
				return err
			}

			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if restore {
				ser, err := a.series.RemoveException(args[0], date, now)
				if err != nil {
					return err
				}
				a.logActivity(now, "restore", ser.ID, dateutil.DayKey(date), "")
				fmt.Printf("Restored %s on %s\n", ser.Title, dateutil.DayKey(date))
				return nil
			}

			ser, err := a.series.ApplyException(args[0], date, model.Exception{Action: model.ExceptionDeleted}, now)
			if err != nil {
				return err
			}

			a.logActivity(now, "skip", ser.ID, dateutil.DayKey(date), "")
			fmt.Printf("Skipped %s on %s\n", ser.Title, dateutil.DayKey(date))
			return nil
		},
	}

	cmd.Flags().BoolVar(&restore, "restore", false, "undo a skip or edit for this occurrence")

	return cmd
}
