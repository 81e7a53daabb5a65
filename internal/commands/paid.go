package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duebook-dev/duebook/internal/dateutil"
)

func newPaidCommand(configPath *string) *cobra.Command {
	var txnID string

	cmd := &cobra.Command{
		Use:   "paid <series-id> [date]",
		Short: "Mark an occurrence as paid",
		Long: `Mark an occurrence as paid. With no date, settles the series' first
occurrence; with a date, settles that occurrence via an override.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := today()

			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			ser, err := a.series.Get(args[0])
			if err != nil {
				return err
			}

			date := ser.AnchorDate
			if len(args) > 1 {
				if date, err = parseDateArg(args[1]); err != nil {
					return err
				}
			}

			if _, err := a.series.MarkPaid(ser.ID, date, txnID, now); err != nil {
				return err
			}

			a.logActivity(now, "paid", ser.ID, dateutil.DayKey(date), txnID)
			fmt.Printf("Marked %s on %s as paid\n", ser.Title, dateutil.DayKey(date))
			return nil
		},
	}

	cmd.Flags().StringVar(&txnID, "txn", "", "opaque reference to the settling transaction")

	return cmd
}
