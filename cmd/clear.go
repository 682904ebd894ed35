package cmd

import (
	"errors"
	"fmt"

	"cinema-seating/seating"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func newClearCmd(opts *rootOptions) *cobra.Command {
	var yes bool

	clearCmd := &cobra.Command{
		Use:   "clear [GROUP]",
		Short: "Release every seat of a group, or of all groups, and save",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			group := 0
			target := "all groups"
			if len(args) == 1 {
				id, err := seating.ParseGroupID(args[0])
				if err != nil {
					return fmt.Errorf("invalid group %q: %w", args[0], err)
				}
				group = id
				target = fmt.Sprintf("group %d", id)
			}

			if !yes {
				prompt := promptui.Prompt{
					Label:     fmt.Sprintf("Release the seats of %s", target),
					IsConfirm: true,
				}
				if _, err := prompt.Run(); err != nil {
					if errors.Is(err, promptui.ErrAbort) {
						fmt.Fprintln(cmd.OutOrStdout(), "Nothing changed.")
						return nil
					}
					return err
				}
			}

			ws, err := openWorkspace(opts)
			if err != nil {
				return fmt.Errorf("failed to load seating plan: %w", err)
			}
			cleared, err := seating.Release(ws.Matrix, group)
			if err != nil {
				return err
			}
			if cleared == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No seats to release for %s.\n", target)
				return nil
			}
			if err := savePlan(opts.planPath, ws.Matrix); err != nil {
				return fmt.Errorf("failed to save seating plan: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Released %d place(s) of %s.\n", cleared, target)
			return nil
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return clearCmd
}
