package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/duebook-dev/duebook/internal/cli"
	"github.com/duebook-dev/duebook/internal/dateutil"
	"github.com/duebook-dev/duebook/internal/series"
)

func newSplitCommand(configPath *string) *cobra.Command {
	var title string
	var amountStr string
	rf := &ruleFlags{}

	cmd := &cobra.Command{
		Use:   "split <series-id> <date>",
		Short: "Change a series from a date forward",
		Long: `Change a series from a date forward ("this and all following"): the
original series ends just before the date and a new series starts there.
Flags reconfigure the new series; without them it inherits the original.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := today()

			splitDate, err := parseDateArg(args[1])
			if err != nil {
				return err
			}

			params := series.SplitParams{}
			if cmd.Flags().Changed("title") {
				params.Title = &title
			}
			if cmd.Flags().Changed("amount") {
				amount, err := decimal.NewFromString(amountStr)
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", amountStr, err)
				}
				params.Amount = &amount
			}
			if rf.changed(cmd) {
				rule, err := rf.build()
				if err != nil {
					return err
				}
				params.Rule = &rule
			}

			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.series.Split(args[0], splitDate, params, now)
			if err != nil {
				return err
			}

			a.logActivity(now, "split", res.Terminated.ID, dateutil.DayKey(splitDate), "continued as "+res.Created.ID)
			fmt.Printf("Split %s at %s\n", res.Terminated.Title, dateutil.DayKey(splitDate))
			fmt.Printf("  new series %s (%s)\n", res.Created.ID, cli.FormatRule(res.Created.Rule))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "title for the new series")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount for the new series")
	rf.register(cmd)

	return cmd
}
