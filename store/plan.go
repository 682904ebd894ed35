package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cinema-seating/model"
)

const (
	DefaultRows = 10
	DefaultCols = 10
)

var ErrPlanMismatch = errors.New("saved plan does not match the layout")

// PlanError reports an unreadable token in a saved plan.
type PlanError struct {
	Line  int
	Token string
}

func (e *PlanError) Error() string {
	if e == nil {
		return "invalid seating plan"
	}
	return fmt.Sprintf("seating plan line %d: invalid slot %q", e.Line, e.Token)
}

// DefaultMatrix builds an all-empty grid of single seats, at least 1x1.
func DefaultMatrix(rows int, cols int) *model.SeatingMatrix {
	rows = max(rows, 1)
	cols = max(cols, 1)
	m := model.NewSeatingMatrix()
	for r := 1; r <= rows; r++ {
		row := &model.Row{ID: r, Slots: make([]model.Slot, cols)}
		for c := 1; c <= cols; c++ {
			row.Seats = append(row.Seats, model.SeatSpec{Row: r, Start: c, End: c})
		}
		m.Rows[r] = row
	}
	return m
}

// SavePlan writes one line per row id from 1 to the highest row, slots separated
// by single spaces. Missing rows become empty lines so line N stays row N.
func SavePlan(path string, m *model.SeatingMatrix) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	if err := WritePlan(w, m); err != nil {
		tmp.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func WritePlan(w io.Writer, m *model.SeatingMatrix) error {
	ids := m.RowIDs()
	if len(ids) == 0 {
		return nil
	}
	last := ids[len(ids)-1]
	for id := 1; id <= last; id++ {
		var line string
		if row, ok := m.Row(id); ok {
			tokens := make([]string, len(row.Slots))
			for i, slot := range row.Slots {
				tokens[i] = slot.String()
			}
			line = strings.Join(tokens, " ")
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// LoadPlan reads a plan written by SavePlan. A missing file yields def and
// found=false. Seats are single-column; use ApplyPlan to keep sofas from a layout.
func LoadPlan(path string, def *model.SeatingMatrix) (*model.SeatingMatrix, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return def, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	m, err := ReadPlan(f)
	if err != nil {
		return nil, false, err
	}
	return m, true, nil
}

func ReadPlan(r io.Reader) (*model.SeatingMatrix, error) {
	m := model.NewSeatingMatrix()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		row := &model.Row{ID: lineNo, Slots: make([]model.Slot, 0, len(tokens))}
		for i, token := range tokens {
			slot, err := parseSlot(token)
			if err != nil {
				return nil, &PlanError{Line: lineNo, Token: token}
			}
			row.Slots = append(row.Slots, slot)
			if !slot.IsBlocked() {
				row.Seats = append(row.Seats, model.SeatSpec{Row: lineNo, Start: i + 1, End: i + 1})
			}
		}
		m.Rows[lineNo] = row
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseSlot(token string) (model.Slot, error) {
	if token == "x" {
		return model.SlotBlocked, nil
	}
	value, err := strconv.Atoi(token)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, errors.New("negative slot")
	}
	return model.Slot(value), nil
}

// ApplyPlan copies the slot values of plan onto a clone of layout, keeping the
// layout's sofa grouping. Rows must agree on width and blocked positions.
func ApplyPlan(layout *model.SeatingMatrix, plan *model.SeatingMatrix) (*model.SeatingMatrix, error) {
	if len(layout.Rows) != len(plan.Rows) {
		return nil, fmt.Errorf("%w: %d rows in layout, %d in plan", ErrPlanMismatch, len(layout.Rows), len(plan.Rows))
	}
	out := layout.Clone()
	for _, id := range out.RowIDs() {
		row := out.Rows[id]
		saved, ok := plan.Row(id)
		if !ok {
			return nil, fmt.Errorf("%w: row %d missing", ErrPlanMismatch, id)
		}
		if len(saved.Slots) != len(row.Slots) {
			return nil, fmt.Errorf("%w: row %d has %d slots, expected %d", ErrPlanMismatch, id, len(saved.Slots), len(row.Slots))
		}
		for i, slot := range saved.Slots {
			if slot.IsBlocked() != row.Slots[i].IsBlocked() {
				return nil, fmt.Errorf("%w: row %d column %d", ErrPlanMismatch, id, i+1)
			}
			row.Slots[i] = slot
		}
	}
	return out, nil
}
