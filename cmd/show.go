package cmd

import (
	"fmt"

	"cinema-seating/tui"

	"github.com/spf13/cobra"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var hideLabels bool

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the seat map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(opts)
			if err != nil {
				return fmt.Errorf("failed to load seating plan: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderSeatMap(ws.Matrix, tui.RenderOptions{ShowLabels: !hideLabels}))
			return nil
		},
	}
	showCmd.Flags().BoolVar(&hideLabels, "no-labels", false, "draw free seats as [] instead of their column")
	return showCmd
}
