package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/duebook-dev/duebook/internal/cli"
	"github.com/duebook-dev/duebook/internal/model"
	"github.com/duebook-dev/duebook/internal/recur"
	"github.com/duebook-dev/duebook/internal/timeline"
)

func newOverdueCommand(configPath *string) *cobra.Command {
	var countOnly bool

	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "Show unpaid obligations past their date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := today()

			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			all, err := a.series.List()
			if err != nil {
				return err
			}

			var overdue []model.Occurrence
			for _, ser := range all {
				for _, occ := range recur.Occurrences(ser, now, a.cfg.Horizon.LookaheadMonths) {
					if timeline.Classify(occ, now) == model.StatusOverdue {
						overdue = append(overdue, occ)
					}
				}
			}

			if countOnly {
				fmt.Println(len(overdue))
				return nil
			}

			fmt.Println(cli.RenderOverdueBanner(len(overdue)))
			sort.Slice(overdue, func(i, j int) bool {
				return overdue[i].ScheduledDate.Before(overdue[j].ScheduledDate)
			})
			for _, occ := range overdue {
				fmt.Printf("  %s  %-28s %12s  %s\n",
					cli.FormatDate(occ.ScheduledDate),
					occ.Title,
					cli.FormatAmount(occ.Amount),
					occ.SeriesID,
				)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&countOnly, "count", false, "print only the number of overdue obligations")

	return cmd
}
