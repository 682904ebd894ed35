package seating

import (
	"sort"

	"cinema-seating/model"
)

// Groups derives every group present in the matrix, ordered by id, with its seats
// in row then column order. A sofa shows up once as its whole unit.
func Groups(m *model.SeatingMatrix) []model.Group {
	byID := map[int]*model.Group{}
	for _, rowID := range m.RowIDs() {
		row := m.Rows[rowID]
		for _, seat := range row.Seats {
			// A loaded plan may split a sofa between groups; list it under each.
			owners := map[int]bool{}
			for _, c := range seat.Columns() {
				slot, ok := m.SlotAt(rowID, c)
				id := slot.Group()
				if !ok || id == 0 || owners[id] {
					continue
				}
				owners[id] = true
				group, ok := byID[id]
				if !ok {
					group = &model.Group{ID: id, Color: GroupColor(id)}
					byID[id] = group
				}
				group.Seats = append(group.Seats, seat)
			}
		}
	}

	groups := make([]model.Group, 0, len(byID))
	for _, group := range byID {
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups
}

// Summary counts slots by state.
type Summary struct {
	Empty    int
	Assigned int
	Blocked  int
	Groups   int
}

func Summarize(m *model.SeatingMatrix) Summary {
	var s Summary
	seen := map[int]bool{}
	for _, row := range m.Rows {
		for _, slot := range row.Slots {
			switch {
			case slot.IsBlocked():
				s.Blocked++
			case slot.IsEmpty():
				s.Empty++
			default:
				s.Assigned++
				seen[slot.Group()] = true
			}
		}
	}
	s.Groups = len(seen)
	return s
}
