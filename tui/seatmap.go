package tui

import (
	"fmt"
	"strings"

	"cinema-seating/model"
	"cinema-seating/seating"

	"github.com/charmbracelet/lipgloss"
)

const minCellWidth = 4

// RenderOptions carries the view state that is not part of the seating matrix.
type RenderOptions struct {
	Cursor     *model.SeatSpec
	Group      int
	ShowLabels bool
}

var (
	seatStyleEmpty   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	seatStyleMixed   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	seatStyleBlocked = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderSeatMap draws the matrix. Every cell is derived from the slot values, so
// the map is redrawn from scratch after each change.
func RenderSeatMap(m *model.SeatingMatrix, opts RenderOptions) string {
	ids := m.RowIDs()
	if len(ids) == 0 {
		return "No seat map data."
	}

	width := m.Width()
	cell := cellWidthFor(m)
	rowWidth := 2
	for _, id := range ids {
		rowWidth = max(rowWidth, len(rowLabel(id)))
	}

	var b strings.Builder
	for _, id := range ids {
		row := m.Rows[id]
		label := rowLabel(id)
		b.WriteString(fmt.Sprintf("%*s ", rowWidth, label))

		starts := make(map[int]model.SeatSpec, len(row.Seats))
		for _, seat := range row.Seats {
			starts[seat.Start] = seat
		}

		var cells []string
		for col := 1; col <= width; {
			if seat, ok := starts[col]; ok {
				cells = append(cells, renderSeat(row, seat, cell, opts))
				col = seat.End + 1
				continue
			}
			text := padCell("", cell)
			if col <= len(row.Slots) && row.Slots[col-1].IsBlocked() {
				text = seatStyleBlocked.Render(padCell("·", cell))
			}
			cells = append(cells, text)
			col++
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteString(fmt.Sprintf(" %-*s\n", rowWidth, label))
	}

	gridWidth := width*(cell+1) - 1
	screenStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214"))
	screenBorderStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Background(lipgloss.Color("236"))
	screenBar := screenBarBlock(gridWidth, "SCREEN")

	indent := strings.Repeat(" ", rowWidth+1)
	b.WriteString("\n")
	b.WriteString(indent + screenBorderStyle.Render(screenBar.top) + "\n")
	b.WriteString(indent + screenStyle.Render(screenBar.mid) + "\n")
	b.WriteString(indent + screenBorderStyle.Render(screenBar.bot) + "\n\n")

	legend := "Legend: [] empty • G<n> group • · no seat • ?? split between groups"
	if opts.ShowLabels {
		legend = "Legend: numbers are free seat columns • G<n> group • · no seat"
	}
	summary := seating.Summarize(m)
	percent := float64(summary.Assigned) / float64(max(1, summary.Assigned+summary.Empty)) * 100
	counts := fmt.Sprintf("Empty: %d • Assigned: %d • Groups: %d • Blocked: %d • %.0f%% assigned",
		summary.Empty, summary.Assigned, summary.Groups, summary.Blocked, percent)
	return b.String() + hint(legend) + "\n" + hint(counts)
}

func renderSeat(row *model.Row, seat model.SeatSpec, cell int, opts RenderOptions) string {
	width := seat.Span()*cell + seat.Span() - 1
	owner, mixed := seatOwner(row, seat)

	var text string
	var style lipgloss.Style
	switch {
	case mixed:
		text = "??"
		style = seatStyleMixed
	case owner > 0:
		text = groupLabel(owner)
		bg := seating.GroupColor(owner)
		style = lipgloss.NewStyle().
			Background(lipgloss.Color(bg)).
			Foreground(lipgloss.Color(seating.ContrastColor(bg)))
		if owner == opts.Group {
			style = style.Bold(true)
		}
	default:
		text = "[]"
		if opts.ShowLabels {
			text = seatColumnLabel(seat)
		}
		style = seatStyleEmpty
	}

	if opts.Cursor != nil && *opts.Cursor == seat {
		style = style.Reverse(true).Underline(true)
	}
	return style.Render(padCell(text, width))
}

// seatOwner reports the group holding every column of the seat; mixed is set when
// a loaded plan split the seat.
func seatOwner(row *model.Row, seat model.SeatSpec) (int, bool) {
	owner := -1
	for _, c := range seat.Columns() {
		if c < 1 || c > len(row.Slots) {
			continue
		}
		g := row.Slots[c-1].Group()
		if owner == -1 {
			owner = g
			continue
		}
		if g != owner {
			return 0, true
		}
	}
	return max(owner, 0), false
}

// cellWidthFor widens every cell so the largest group label fits whole.
func cellWidthFor(m *model.SeatingMatrix) int {
	width := minCellWidth
	for _, row := range m.Rows {
		for _, slot := range row.Slots {
			width = max(width, lipgloss.Width(groupLabel(slot.Group())))
		}
	}
	return width
}

func groupLabel(id int) string {
	return fmt.Sprintf("G%d", id)
}

func seatColumnLabel(seat model.SeatSpec) string {
	if seat.IsSofa() {
		return fmt.Sprintf("%d-%d", seat.Start, seat.End)
	}
	return fmt.Sprintf("%d", seat.Start)
}

func rowLabel(id int) string {
	return fmt.Sprintf("R%d", id)
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if lipgloss.Width(text) >= width {
		return text
	}
	padding := width - lipgloss.Width(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

type screenBlock struct {
	top string
	mid string
	bot string
}

func screenBarBlock(width int, label string) screenBlock {
	if width < len(label)+4 {
		width = len(label) + 4
	}
	if width < 10 {
		width = 10
	}

	border := "╭" + strings.Repeat("─", width-2) + "╮"
	bottom := "╰" + strings.Repeat("─", width-2) + "╯"

	labelText := " " + label + " "
	padding := width - len(labelText) - 2
	left := padding / 2
	right := padding - left
	mid := "│" + strings.Repeat(" ", left) + labelText + strings.Repeat(" ", right) + "│"
	return screenBlock{top: border, mid: mid, bot: bottom}
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}
