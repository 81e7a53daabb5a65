package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/duebook-dev/duebook/internal/model"
	"github.com/duebook-dev/duebook/internal/recur"
	"github.com/duebook-dev/duebook/internal/timeline"
)

func newExportCommand(configPath *string) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export projected occurrences as CSV",
		Long: `Export every projected occurrence within the lookahead horizon as CSV,
one row per occurrence, ordered by date. Writes to stdout unless --out
is given.`,
		Args: cobra.NoArgs,
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

			var occs []model.Occurrence
			for _, ser := range all {
				occs = append(occs, recur.Occurrences(ser, now, a.cfg.Horizon.LookaheadMonths)...)
			}
			sort.Slice(occs, func(i, j int) bool {
				return occs[i].ScheduledDate.Before(occs[j].ScheduledDate)
			})

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating %s: %w", outPath, err)
				}
				defer f.Close()
				out = f
			}

			if err := timeline.WriteOccurrences(out, occs, now); err != nil {
				return err
			}
			if outPath != "" {
				fmt.Printf("Wrote %d occurrences to %s\n", len(occs), outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "write CSV to a file instead of stdout")

	return cmd
}
