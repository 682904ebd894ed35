package seating

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cinema-seating/model"
)

var (
	ErrInvalidGroup     = errors.New("group id must be a positive number")
	ErrUnknownRow       = errors.New("row does not exist")
	ErrColumnOutOfRange = errors.New("column is outside the row")
	ErrSeatBlocked      = errors.New("seat does not exist")
	ErrNoColumns        = errors.New("no columns selected")
)

// Outcome reports what a toggle did to the targeted slots.
type Outcome int

const (
	Unchanged Outcome = iota
	Assigned
	Unassigned
)

func (o Outcome) String() string {
	switch o {
	case Assigned:
		return "assigned"
	case Unassigned:
		return "unassigned"
	default:
		return "unchanged"
	}
}

// Toggle assigns the columns to group when they are all empty, clears them when
// they all belong to group, and otherwise leaves the row untouched. Columns are
// 1-based. On error nothing is modified.
func Toggle(m *model.SeatingMatrix, row int, cols []int, group int) (Outcome, error) {
	if group <= 0 {
		return Unchanged, ErrInvalidGroup
	}
	if len(cols) == 0 {
		return Unchanged, ErrNoColumns
	}
	r, ok := m.Row(row)
	if !ok {
		return Unchanged, fmt.Errorf("row %d: %w", row, ErrUnknownRow)
	}

	allEmpty, allOwned := true, true
	for _, c := range cols {
		if c < 1 || c > len(r.Slots) {
			return Unchanged, fmt.Errorf("row %d column %d: %w", row, c, ErrColumnOutOfRange)
		}
		slot := r.Slots[c-1]
		if slot.IsBlocked() {
			return Unchanged, fmt.Errorf("row %d column %d: %w", row, c, ErrSeatBlocked)
		}
		if !slot.IsEmpty() {
			allEmpty = false
		}
		if slot.Group() != group {
			allOwned = false
		}
	}

	switch {
	case allEmpty:
		for _, c := range cols {
			r.Slots[c-1] = model.Slot(group)
		}
		return Assigned, nil
	case allOwned:
		for _, c := range cols {
			r.Slots[c-1] = model.SlotEmpty
		}
		return Unassigned, nil
	default:
		return Unchanged, nil
	}
}

// ToggleSeat toggles every column of a seat unit together.
func ToggleSeat(m *model.SeatingMatrix, seat model.SeatSpec, group int) (Outcome, error) {
	return Toggle(m, seat.Row, seat.Columns(), group)
}

// ToggleAt toggles the seat unit covering (row, col), so any column of a sofa
// selects the whole sofa.
func ToggleAt(m *model.SeatingMatrix, row int, col int, group int) (model.SeatSpec, Outcome, error) {
	if _, ok := m.Row(row); !ok {
		return model.SeatSpec{}, Unchanged, fmt.Errorf("row %d: %w", row, ErrUnknownRow)
	}
	seat, ok := m.SeatAt(row, col)
	if !ok {
		if slot, inRange := m.SlotAt(row, col); inRange && slot.IsBlocked() {
			return model.SeatSpec{}, Unchanged, fmt.Errorf("row %d column %d: %w", row, col, ErrSeatBlocked)
		}
		return model.SeatSpec{}, Unchanged, fmt.Errorf("row %d column %d: %w", row, col, ErrColumnOutOfRange)
	}
	outcome, err := ToggleSeat(m, seat, group)
	return seat, outcome, err
}

// ParseGroupID validates operator input for the active group.
func ParseGroupID(text string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || value <= 0 {
		return 0, ErrInvalidGroup
	}
	return value, nil
}

// Release empties every slot held by group, or every assigned slot when group
// is 0. It returns the number of slots it cleared.
func Release(m *model.SeatingMatrix, group int) (int, error) {
	if group < 0 {
		return 0, ErrInvalidGroup
	}
	cleared := 0
	for _, id := range m.RowIDs() {
		r := m.Rows[id]
		for i, slot := range r.Slots {
			if slot.Group() == 0 {
				continue
			}
			if group == 0 || slot.Group() == group {
				r.Slots[i] = model.SlotEmpty
				cleared++
			}
		}
	}
	return cleared, nil
}
