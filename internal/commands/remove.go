package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <series-id>",
		Short: "Delete a series and all its overrides",
		Args:  cobra.ExactArgs(1),
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

			if err := a.series.Delete(ser.ID); err != nil {
				return err
			}

			a.logActivity(now, "remove", ser.ID, "", ser.Title)
			fmt.Printf("Removed %s\n", ser.Title)
			return nil
		},
	}

	return cmd
}
