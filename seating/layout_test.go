package seating

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"cinema-seating/model"
)

func TestParseLayout_SofaRange(t *testing.T) {
	m, err := ParseLayout(strings.NewReader("1,1 2 3&4\n"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	row, ok := m.Row(1)
	if !ok {
		t.Fatal("expected row 1 to exist")
	}
	if len(row.Slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(row.Slots))
	}
	for i, slot := range row.Slots {
		if slot != model.SlotEmpty {
			t.Fatalf("expected slot %d to be empty, got %v", i+1, slot)
		}
	}
	if len(row.Seats) != 3 {
		t.Fatalf("expected 3 seat units, got %d", len(row.Seats))
	}
	sofa := row.Seats[2]
	if !sofa.IsSofa() || sofa.Start != 3 || sofa.End != 4 {
		t.Fatalf("expected sofa spanning 3-4, got %+v", sofa)
	}
	if sofa.Label() != "R1S3-4" {
		t.Fatalf("expected label %q, got %q", "R1S3-4", sofa.Label())
	}
}

func TestParseLayout_GapsAreBlocked(t *testing.T) {
	m, err := ParseLayout(strings.NewReader("2,2 3 5&6"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	row, _ := m.Row(2)
	want := []model.Slot{model.SlotBlocked, 0, 0, model.SlotBlocked, 0, 0}
	if len(row.Slots) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(row.Slots))
	}
	for i := range want {
		if row.Slots[i] != want[i] {
			t.Fatalf("slot %d: expected %v, got %v", i+1, want[i], row.Slots[i])
		}
	}
	if m.Capacity() != 4 {
		t.Fatalf("expected capacity 4, got %d", m.Capacity())
	}
}

func TestParseLayout_RepeatedRowExtends(t *testing.T) {
	input := "# hall 3\n1,1 2\n\n1,3&4\n2,1\n"
	m, err := ParseLayout(strings.NewReader(input))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	row, _ := m.Row(1)
	if len(row.Slots) != 4 || len(row.Seats) != 3 {
		t.Fatalf("expected 4 slots in 3 seats, got %d slots in %d seats", len(row.Slots), len(row.Seats))
	}
	if got := m.RowIDs(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("expected rows [1 2], got %v", got)
	}
}

func TestParseLayout_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing comma", "1 1 2 3"},
		{"non numeric row", "A,1 2"},
		{"non numeric seat", "1,1 two"},
		{"zero column", "1,0 1"},
		{"reversed sofa", "1,4&3"},
		{"half sofa", "1,3&"},
		{"empty row", "1,"},
		{"overlap", "1,1 2&3 3"},
		{"overlap across lines", "1,1 2\n1,2"},
		{"column above limit", "1,2000000000"},
		{"sofa above limit", "1,998&1000"},
		{"row above limit", "1000,1"},
		{"column overflows int", "1,99999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLayout(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if perr.Line == 0 {
				t.Fatalf("expected line number, got %+v", perr)
			}
		})
	}
}

func TestParseLayout_AcceptsLimits(t *testing.T) {
	m, err := ParseLayout(strings.NewReader(fmt.Sprintf("%d,%d", MaxRows, MaxColumns)))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got := m.Width(); got != MaxColumns {
		t.Fatalf("expected width %d, got %d", MaxColumns, got)
	}
}

func TestParseLayoutLenient_SkipsBadLines(t *testing.T) {
	m, problems, err := ParseLayoutLenient(strings.NewReader("1,1 2\n2;1 2\n3,1&2\n"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(problems) != 1 || problems[0].Line != 2 {
		t.Fatalf("expected one problem on line 2, got %+v", problems)
	}
	if len(m.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(m.Rows))
	}
	if _, ok := m.Row(2); ok {
		t.Fatal("expected malformed row 2 to be skipped")
	}
}

func TestFormatLayout_Normalises(t *testing.T) {
	m, err := ParseLayout(strings.NewReader("2, 5&6 1\n1,3 1 2"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	var buf bytes.Buffer
	if err := FormatLayout(&buf, m); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	want := "1,1 2 3\n2,1 5&6\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestSingleSeats(t *testing.T) {
	m := model.NewSeatingMatrix()
	m.Rows[1] = &model.Row{ID: 1, Slots: []model.Slot{0, model.SlotBlocked, 3}}
	SingleSeats(m)

	seats := m.Rows[1].Seats
	if len(seats) != 2 || seats[0].Start != 1 || seats[1].Start != 3 {
		t.Fatalf("expected seats at columns 1 and 3, got %+v", seats)
	}
}
