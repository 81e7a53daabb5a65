package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/duebook-dev/duebook/internal/dateutil"
	"github.com/duebook-dev/duebook/internal/model"
)

func newEditCommand(configPath *string) *cobra.Command {
	var title string
	var amountStr string
	var moveTo string

	cmd := &cobra.Command{
		Use:   "edit <series-id> <date>",
		Short: "Override a single occurrence",
		Long: `Override a single occurrence without touching the rest of the series.
The date argument is the occurrence's scheduled date under the base rule;
--move relocates just that instance.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := today()

			date, err := parseDateArg(args[1])
			if err != nil {
				return err
			}

			exc := model.Exception{Action: model.ExceptionModified}
			if cmd.Flags().Changed("title") {
				exc.Title = &title
			}
			if cmd.Flags().Changed("amount") {
				amount, err := decimal.NewFromString(amountStr)
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", amountStr, err)
				}
				exc.Amount = &amount
			}
			if cmd.Flags().Changed("move") {
				moved, err := parseDateArg(moveTo)
				if err != nil {
					return err
				}
				exc.Date = &moved
			}
			if exc.Title == nil && exc.Amount == nil && exc.Date == nil {
				return fmt.Errorf("nothing to change: pass --title, --amount or --move")
			}

			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			ser, err := a.series.ApplyException(args[0], date, exc, now)
			if err != nil {
				return err
			}

			a.logActivity(now, "edit", ser.ID, dateutil.DayKey(date), "")
			fmt.Printf("Updated %s on %s\n", ser.Title, dateutil.DayKey(date))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "override the title for this occurrence")
	cmd.Flags().StringVar(&amountStr, "amount", "", "override the amount for this occurrence")
	cmd.Flags().StringVar(&moveTo, "move", "", "move this occurrence to another date (YYYY-MM-DD)")

	return cmd
}
