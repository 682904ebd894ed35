package store

import (
	"fmt"
	"os"
	"strings"

	"cinema-seating/model"
	"cinema-seating/seating"
)

// Workspace is what the operator works on: the seat layout, if any, and the
// assignment matrix built from it.
type Workspace struct {
	Layout    *model.SeatingMatrix
	Matrix    *model.SeatingMatrix
	PlanFound bool
}

// LoadLayout parses a layout file.
func LoadLayout(path string) (*model.SeatingMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := seating.ParseLayout(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Open loads the layout (when layoutPath is set) and overlays the saved plan.
// Without a saved plan the matrix starts empty: the layout when there is one,
// otherwise a rows x cols grid.
func Open(layoutPath string, planPath string, rows int, cols int) (Workspace, error) {
	var ws Workspace
	if strings.TrimSpace(layoutPath) != "" {
		layout, err := LoadLayout(layoutPath)
		if err != nil {
			return ws, err
		}
		ws.Layout = layout
	}

	var def *model.SeatingMatrix
	if ws.Layout != nil {
		def = ws.Layout.Clone()
	} else {
		def = DefaultMatrix(rows, cols)
	}

	plan, found, err := LoadPlan(planPath, def)
	if err != nil {
		return ws, err
	}
	ws.PlanFound = found
	if found && ws.Layout != nil {
		plan, err = ApplyPlan(ws.Layout, plan)
		if err != nil {
			return ws, err
		}
	}
	ws.Matrix = plan
	return ws, nil
}
