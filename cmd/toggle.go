package cmd

import (
	"fmt"
	"strconv"

	"cinema-seating/seating"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newToggleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ROW SEAT GROUP",
		Short: "Assign or release one seat (a sofa toggles as a whole) and save",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid row %q", args[0])
			}
			col, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid seat %q", args[1])
			}
			group, err := seating.ParseGroupID(args[2])
			if err != nil {
				return fmt.Errorf("invalid group %q: %w", args[2], err)
			}

			ws, err := openWorkspace(opts)
			if err != nil {
				return fmt.Errorf("failed to load seating plan: %w", err)
			}
			seat, outcome, err := seating.ToggleAt(ws.Matrix, row, col, group)
			if err != nil {
				return err
			}

			if outcome == seating.Unchanged {
				return fmt.Errorf("%s is held by another group, nothing changed", seat.Label())
			}
			if err := savePlan(opts.planPath, ws.Matrix); err != nil {
				return fmt.Errorf("failed to save seating plan: %w", err)
			}

			out := cmd.OutOrStdout()
			if outcome == seating.Assigned {
				fmt.Fprintf(out, "%s %s to group %d\n", seat.Label(), color.New(color.FgGreen).Sprint(outcome), group)
			} else {
				fmt.Fprintf(out, "%s %s from group %d\n", seat.Label(), color.New(color.FgYellow).Sprint(outcome), group)
			}
			return nil
		},
	}
}
