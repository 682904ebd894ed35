package store

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"cinema-seating/model"
	"cinema-seating/seating"
)

func TestSavePlan_RoundTrip(t *testing.T) {
	layout, err := seating.ParseLayout(strings.NewReader("1,1 2 3&4\n2,2 3 5&6\n4,1"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := seating.Toggle(layout, 1, []int{3, 4}, 2); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := seating.Toggle(layout, 2, []int{2}, 11); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "seating_plan.txt")
	if err := SavePlan(path, layout); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	want := "0 0 2 2\nx 11 0 x 0 0\n\n0\n"
	if string(data) != want {
		t.Fatalf("expected %q, got %q", want, string(data))
	}

	loaded, found, err := LoadPlan(path, nil)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !found {
		t.Fatal("expected plan to be found")
	}
	if !loaded.Equal(layout) {
		t.Fatalf("expected loaded plan to match saved matrix")
	}
	if _, ok := loaded.Row(3); ok {
		t.Fatal("expected row 3 to stay absent")
	}
}

func TestLoadPlan_MissingFileReturnsDefault(t *testing.T) {
	def := DefaultMatrix(DefaultRows, DefaultCols)
	m, found, err := LoadPlan(filepath.Join(t.TempDir(), "missing.txt"), def)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if found {
		t.Fatal("expected found to be false")
	}
	if len(m.Rows) != 10 || m.Width() != 10 || m.Capacity() != 100 {
		t.Fatalf("expected empty 10x10 matrix, got %d rows of width %d", len(m.Rows), m.Width())
	}
	for _, id := range m.RowIDs() {
		for _, slot := range m.Rows[id].Slots {
			if slot != model.SlotEmpty {
				t.Fatalf("expected empty slot, got %v", slot)
			}
		}
	}
}

func TestDefaultMatrix_ClampsToOneSeat(t *testing.T) {
	for _, size := range [][2]int{{10, -1}, {0, 10}, {0, 0}} {
		m := DefaultMatrix(size[0], size[1])
		if len(m.Rows) < 1 || m.Width() < 1 {
			t.Fatalf("expected at least a 1x1 grid for %v, got %d rows of width %d", size, len(m.Rows), m.Width())
		}
	}
	m := DefaultMatrix(3, 0)
	if len(m.Rows) != 3 || m.Width() != 1 {
		t.Fatalf("expected 3 rows of width 1, got %d rows of width %d", len(m.Rows), m.Width())
	}
}

func TestSavePlan_FileIsWorldReadable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	path := filepath.Join(t.TempDir(), "seating_plan.txt")
	if err := SavePlan(path, DefaultMatrix(1, 2)); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o644 {
		t.Fatalf("expected mode 0644, got %o", perm)
	}
}

func TestReadPlan_InvalidToken(t *testing.T) {
	for _, input := range []string{"0 0 y", "0 -1", "0 1.5"} {
		_, err := ReadPlan(strings.NewReader(input))
		var perr *PlanError
		if !errors.As(err, &perr) {
			t.Fatalf("expected *PlanError for %q, got %v", input, err)
		}
	}
}

func TestReadPlan_NormalisesWhitespace(t *testing.T) {
	m, err := ReadPlan(strings.NewReader("  0   3\tx \n"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	row, _ := m.Row(1)
	if len(row.Slots) != 3 || row.Slots[1] != 3 || !row.Slots[2].IsBlocked() {
		t.Fatalf("unexpected slots %v", row.Slots)
	}
	if len(row.Seats) != 2 {
		t.Fatalf("expected 2 seats, got %d", len(row.Seats))
	}
}

func TestSavePlan_FailureKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.txt")
	if err := SavePlan(path, DefaultMatrix(1, 2)); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	blocked := filepath.Join(path, "nested.txt")
	if err := SavePlan(blocked, DefaultMatrix(1, 2)); err == nil {
		t.Fatal("expected error when parent is a file")
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "0 0\n" {
		t.Fatalf("expected previous plan intact, got %q (%v)", string(data), err)
	}
}

func TestApplyPlan_KeepsSofas(t *testing.T) {
	layout, err := seating.ParseLayout(strings.NewReader("1,1 3&4"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	plan, err := ReadPlan(strings.NewReader("5 x 6 6\n"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	merged, err := ApplyPlan(layout, plan)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	row, _ := merged.Row(1)
	if len(row.Seats) != 2 || !row.Seats[1].IsSofa() {
		t.Fatalf("expected sofa kept, got %+v", row.Seats)
	}
	if row.Slots[2] != 6 || row.Slots[3] != 6 {
		t.Fatalf("expected sofa to hold group 6, got %v", row.Slots)
	}
	if layout.Rows[1].Slots[0] != model.SlotEmpty {
		t.Fatal("expected layout to be left untouched")
	}
}

func TestApplyPlan_Mismatch(t *testing.T) {
	layout, err := seating.ParseLayout(strings.NewReader("1,1 3&4"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	for _, input := range []string{"0 0 0 0\n", "0 x 0\n", "0 x 0 0\n0\n"} {
		plan, err := ReadPlan(strings.NewReader(input))
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if _, err := ApplyPlan(layout, plan); !errors.Is(err, ErrPlanMismatch) {
			t.Fatalf("expected %v for %q, got %v", ErrPlanMismatch, input, err)
		}
	}
}
