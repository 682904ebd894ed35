package model

import (
	"fmt"
	"sort"
)

// Slot is one addressable position in a row: SlotEmpty, SlotBlocked or a group id.
type Slot int

const (
	SlotEmpty   Slot = 0
	SlotBlocked Slot = -1
)

func (s Slot) IsBlocked() bool { return s == SlotBlocked }
func (s Slot) IsEmpty() bool   { return s == SlotEmpty }

// Group returns the occupying group id, or 0 when the slot is empty or blocked.
func (s Slot) Group() int {
	if s > 0 {
		return int(s)
	}
	return 0
}

func (s Slot) String() string {
	if s == SlotBlocked {
		return "x"
	}
	return fmt.Sprintf("%d", int(s))
}

// SeatSpec is one physical seat: a single column, or an inclusive column range for a sofa.
type SeatSpec struct {
	Row   int `json:"row"`
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s SeatSpec) Span() int    { return s.End - s.Start + 1 }
func (s SeatSpec) IsSofa() bool { return s.End > s.Start }

// Label renders R<row>S<col> or R<row>S<start>-<end>.
func (s SeatSpec) Label() string {
	if s.IsSofa() {
		return fmt.Sprintf("R%dS%d-%d", s.Row, s.Start, s.End)
	}
	return fmt.Sprintf("R%dS%d", s.Row, s.Start)
}

// Columns lists the 1-based columns covered by the seat.
func (s SeatSpec) Columns() []int {
	cols := make([]int, 0, s.Span())
	for c := s.Start; c <= s.End; c++ {
		cols = append(cols, c)
	}
	return cols
}

func (s SeatSpec) Contains(col int) bool {
	return col >= s.Start && col <= s.End
}

type Row struct {
	ID    int
	Slots []Slot
	Seats []SeatSpec
}

// Width is the number of slots in the row, blocked ones included.
func (r *Row) Width() int { return len(r.Slots) }

// SeatingMatrix maps row ids to their slots. Columns are 1-based.
type SeatingMatrix struct {
	Rows map[int]*Row
}

type Group struct {
	ID    int        `json:"id"`
	Color string     `json:"color"`
	Seats []SeatSpec `json:"seats"`
}

func NewSeatingMatrix() *SeatingMatrix {
	return &SeatingMatrix{Rows: map[int]*Row{}}
}

func (m *SeatingMatrix) Row(id int) (*Row, bool) {
	if m == nil {
		return nil, false
	}
	row, ok := m.Rows[id]
	return row, ok
}

func (m *SeatingMatrix) RowIDs() []int {
	if m == nil {
		return nil
	}
	ids := make([]int, 0, len(m.Rows))
	for id := range m.Rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (m *SeatingMatrix) SlotAt(row int, col int) (Slot, bool) {
	r, ok := m.Row(row)
	if !ok || col < 1 || col > len(r.Slots) {
		return SlotBlocked, false
	}
	return r.Slots[col-1], true
}

// SeatAt returns the seat unit covering col, so a sofa is found from any of its columns.
func (m *SeatingMatrix) SeatAt(row int, col int) (SeatSpec, bool) {
	r, ok := m.Row(row)
	if !ok {
		return SeatSpec{}, false
	}
	for _, seat := range r.Seats {
		if seat.Contains(col) {
			return seat, true
		}
	}
	return SeatSpec{}, false
}

func (m *SeatingMatrix) Width() int {
	width := 0
	if m == nil {
		return width
	}
	for _, r := range m.Rows {
		width = max(width, len(r.Slots))
	}
	return width
}

// Capacity counts the slots that are not blocked.
func (m *SeatingMatrix) Capacity() int {
	total := 0
	if m == nil {
		return total
	}
	for _, r := range m.Rows {
		for _, slot := range r.Slots {
			if !slot.IsBlocked() {
				total++
			}
		}
	}
	return total
}

func (m *SeatingMatrix) Clone() *SeatingMatrix {
	out := NewSeatingMatrix()
	if m == nil {
		return out
	}
	for id, r := range m.Rows {
		out.Rows[id] = &Row{
			ID:    r.ID,
			Slots: append([]Slot(nil), r.Slots...),
			Seats: append([]SeatSpec(nil), r.Seats...),
		}
	}
	return out
}

// Equal compares row ids and slot values. Seat grouping is not compared because a
// saved plan does not carry it.
func (m *SeatingMatrix) Equal(other *SeatingMatrix) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.Rows) != len(other.Rows) {
		return false
	}
	for id, r := range m.Rows {
		o, ok := other.Rows[id]
		if !ok || len(o.Slots) != len(r.Slots) {
			return false
		}
		for i := range r.Slots {
			if r.Slots[i] != o.Slots[i] {
				return false
			}
		}
	}
	return true
}
