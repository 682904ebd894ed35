package cmd

import (
	"fmt"
	"strings"

	"cinema-seating/model"
	"cinema-seating/seating"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
)

func newGroupsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List groups and the seats they hold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(opts)
			if err != nil {
				return fmt.Errorf("failed to load seating plan: %w", err)
			}

			groups := seating.Groups(ws.Matrix)
			out := cmd.OutOrStdout()
			if len(groups) == 0 {
				fmt.Fprintln(out, "No groups have been assigned yet.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Group", "Color", "Seats", "Places"})
			t.SetColumnConfigs([]table.ColumnConfig{
				{Number: 3, WidthMax: 60},
			})
			for _, group := range groups {
				t.AppendRow(table.Row{
					colorizeGroup(group),
					group.Color,
					seatLabels(group.Seats),
					places(group.Seats),
				})
			}
			summary := seating.Summarize(ws.Matrix)
			t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d empty", summary.Empty), summary.Assigned})
			t.Render()
			return nil
		},
	}
}

// colorizeGroup paints the group id with its derived color.
func colorizeGroup(group model.Group) string {
	label := fmt.Sprintf(" G%d ", group.ID)
	bg, err := colorful.Hex(group.Color)
	if err != nil {
		return label
	}
	fg, _ := colorful.Hex(seating.ContrastColor(group.Color))
	br, bgG, bb := bg.RGB255()
	fr, fgG, fb := fg.RGB255()
	return color.RGB(int(fr), int(fgG), int(fb)).AddBgRGB(int(br), int(bgG), int(bb)).Sprint(label)
}

func seatLabels(seats []model.SeatSpec) string {
	labels := make([]string, 0, len(seats))
	for _, seat := range seats {
		labels = append(labels, seat.Label())
	}
	return strings.Join(labels, ", ")
}

// places counts columns, so a two-seat sofa counts as two.
func places(seats []model.SeatSpec) int {
	total := 0
	for _, seat := range seats {
		total += seat.Span()
	}
	return total
}
