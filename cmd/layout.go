package cmd

import (
	"fmt"
	"os"

	"cinema-seating/seating"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout FILE",
		Short: "Check a seat layout file and print it normalised",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			m, problems, err := seating.ParseLayoutLenient(f)
			if err != nil {
				return err
			}
			warn := color.New(color.FgYellow)
			for _, problem := range problems {
				warn.Fprintln(cmd.ErrOrStderr(), problem)
			}
			if err := seating.FormatLayout(cmd.OutOrStdout(), m); err != nil {
				return err
			}
			if len(problems) > 0 {
				return fmt.Errorf("%s: %d malformed line(s) skipped", args[0], len(problems))
			}
			return nil
		},
	}
}
