package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duebook-dev/duebook/internal/cli"
	"github.com/duebook-dev/duebook/internal/model"
	"github.com/duebook-dev/duebook/internal/recur"
	"github.com/duebook-dev/duebook/internal/timeline"
)

func newUpcomingCommand(configPath *string) *cobra.Command {
	var monthsBack, monthsAhead int

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "Show the obligation timeline by month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := today()

			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if !cmd.Flags().Changed("months-back") {
				monthsBack = a.cfg.Timeline.MonthsBack
			}
			if !cmd.Flags().Changed("months-ahead") {
				monthsAhead = a.cfg.Timeline.MonthsAhead
			}

			all, err := a.series.List()
			if err != nil {
				return err
			}

			var occs []model.Occurrence
			for _, ser := range all {
				occs = append(occs, recur.Occurrences(ser, now, a.cfg.Horizon.LookaheadMonths)...)
			}

			fmt.Println(cli.RenderOverdueBanner(timeline.CountOverdue(occs, now)))
			fmt.Println()
			buckets := timeline.GroupByMonth(occs, now, monthsBack, monthsAhead)
			fmt.Print(cli.RenderTimeline(buckets, now))
			return nil
		},
	}

	cmd.Flags().IntVar(&monthsBack, "months-back", 0, "months of history to show (default from config)")
	cmd.Flags().IntVar(&monthsAhead, "months-ahead", 0, "months ahead to show (default from config)")

	return cmd
}
