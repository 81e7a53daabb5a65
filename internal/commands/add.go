package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/duebook-dev/duebook/internal/cli"
	"github.com/duebook-dev/duebook/internal/dateutil"
	"github.com/duebook-dev/duebook/internal/series"
)

func newAddCommand(configPath *string) *cobra.Command {
	var title string
	var amountStr string
	var dateStr string
	var templateID string
	rf := &ruleFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a reminder series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := today()

			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amountStr, err)
			}

			anchor := now
			if dateStr != "" {
				if anchor, err = parseDateArg(dateStr); err != nil {
					return err
				}
			}

			rule, err := rf.build()
			if err != nil {
				return err
			}

			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			ser, err := a.series.Create(series.CreateParams{
				Title:      title,
				Amount:     amount,
				AnchorDate: anchor,
				Rule:       rule,
				TemplateID: templateID,
			}, now)
			if err != nil {
				return err
			}

			a.logActivity(now, "add", ser.ID, dateutil.DayKey(anchor), title)
			fmt.Printf("Added %s (%s, %s) as %s\n", ser.Title, cli.FormatAmount(ser.Amount), cli.FormatRule(ser.Rule), ser.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "what the obligation is (required)")
	_ = cmd.MarkFlagRequired("title")
	cmd.Flags().StringVar(&amountStr, "amount", "", "signed amount, e.g. -1200.00 (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&dateStr, "date", "", "first occurrence (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&templateID, "template", "", "opaque linked template reference")
	rf.register(cmd)

	return cmd
}
