package seating

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"cinema-seating/model"
)

// Row and column numbers above these limits are rejected.
const (
	MaxRows    = 999
	MaxColumns = 999
)

// ParseError describes a layout line that could not be read.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	if e == nil {
		return "layout parse error"
	}
	if e.Line > 0 {
		return fmt.Sprintf("layout line %d: %s: %q", e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("layout: %s: %q", e.Reason, e.Text)
}

// ParseLayout reads a layout in the form "<row>,<seat> <seat> ..." where a seat is
// either a column number or an inclusive sofa range "<start>&<end>". The first
// malformed line aborts the parse.
func ParseLayout(r io.Reader) (*model.SeatingMatrix, error) {
	m, errs, err := parseLayout(r, true)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return m, nil
}

// ParseLayoutLenient skips malformed lines and returns them next to the matrix
// built from the lines that did parse.
func ParseLayoutLenient(r io.Reader) (*model.SeatingMatrix, []*ParseError, error) {
	return parseLayout(r, false)
}

func parseLayout(r io.Reader, strict bool) (*model.SeatingMatrix, []*ParseError, error) {
	seatsByRow := map[int][]model.SeatSpec{}
	var problems []*ParseError

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		row, seats, err := ParseLayoutLine(text)
		if err == nil {
			err = checkOverlap(row, seatsByRow[row], seats)
		}
		if err != nil {
			var perr *ParseError
			if !errors.As(err, &perr) {
				perr = &ParseError{Reason: err.Error()}
			}
			perr.Line = lineNo
			perr.Text = text
			problems = append(problems, perr)
			if strict {
				return nil, problems, nil
			}
			continue
		}
		seatsByRow[row] = append(seatsByRow[row], seats...)
	}
	if err := scanner.Err(); err != nil {
		return nil, problems, err
	}

	m := model.NewSeatingMatrix()
	for id, seats := range seatsByRow {
		m.Rows[id] = buildRow(id, seats)
	}
	return m, problems, nil
}

// ParseLayoutLine parses one "<row>,<seat> <seat> ..." line.
func ParseLayoutLine(line string) (int, []model.SeatSpec, error) {
	text := strings.TrimSpace(line)
	rowPart, seatPart, ok := strings.Cut(text, ",")
	if !ok {
		return 0, nil, &ParseError{Text: text, Reason: "missing comma after row"}
	}

	row, err := positiveInt(rowPart)
	if err != nil {
		return 0, nil, &ParseError{Text: text, Reason: "invalid row: " + err.Error()}
	}
	if row > MaxRows {
		return 0, nil, &ParseError{Text: text, Reason: fmt.Sprintf("row %d is above the limit of %d", row, MaxRows)}
	}

	tokens := strings.Fields(seatPart)
	if len(tokens) == 0 {
		return 0, nil, &ParseError{Text: text, Reason: "row has no seats"}
	}

	seats := make([]model.SeatSpec, 0, len(tokens))
	for _, token := range tokens {
		seat, err := parseSeatToken(row, token)
		if err != nil {
			return 0, nil, &ParseError{Text: text, Reason: err.Error()}
		}
		seats = append(seats, seat)
	}
	return row, seats, nil
}

func parseSeatToken(row int, token string) (model.SeatSpec, error) {
	startPart, endPart, isSofa := strings.Cut(token, "&")
	start, err := positiveInt(startPart)
	if err != nil {
		return model.SeatSpec{}, fmt.Errorf("invalid seat %q: %v", token, err)
	}
	end := start
	if isSofa {
		end, err = positiveInt(endPart)
		if err != nil {
			return model.SeatSpec{}, fmt.Errorf("invalid seat %q: %v", token, err)
		}
		if end < start {
			return model.SeatSpec{}, fmt.Errorf("invalid seat %q: range ends before it starts", token)
		}
	}
	if end > MaxColumns {
		return model.SeatSpec{}, fmt.Errorf("invalid seat %q: column %d is above the limit of %d", token, end, MaxColumns)
	}
	return model.SeatSpec{Row: row, Start: start, End: end}, nil
}

func positiveInt(text string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", strings.TrimSpace(text))
	}
	if value <= 0 {
		return 0, fmt.Errorf("%d is not positive", value)
	}
	return value, nil
}

func checkOverlap(row int, existing []model.SeatSpec, added []model.SeatSpec) error {
	taken := map[int]bool{}
	for _, seat := range existing {
		for _, c := range seat.Columns() {
			taken[c] = true
		}
	}
	for _, seat := range added {
		for _, c := range seat.Columns() {
			if taken[c] {
				return &ParseError{Reason: fmt.Sprintf("column %d declared twice in row %d", c, row)}
			}
			taken[c] = true
		}
	}
	return nil
}

func buildRow(id int, seats []model.SeatSpec) *model.Row {
	sorted := append([]model.SeatSpec(nil), seats...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	width := 0
	for _, seat := range sorted {
		width = max(width, seat.End)
	}
	slots := make([]model.Slot, width)
	for i := range slots {
		slots[i] = model.SlotBlocked
	}
	for _, seat := range sorted {
		for c := seat.Start; c <= seat.End; c++ {
			slots[c-1] = model.SlotEmpty
		}
	}
	return &model.Row{ID: id, Slots: slots, Seats: sorted}
}

// FormatLayout writes the matrix back in layout notation, one line per row.
func FormatLayout(w io.Writer, m *model.SeatingMatrix) error {
	for _, id := range m.RowIDs() {
		row := m.Rows[id]
		tokens := make([]string, 0, len(row.Seats))
		for _, seat := range row.Seats {
			tokens = append(tokens, seatToken(seat))
		}
		if _, err := fmt.Fprintf(w, "%d,%s\n", id, strings.Join(tokens, " ")); err != nil {
			return err
		}
	}
	return nil
}

func seatToken(seat model.SeatSpec) string {
	if seat.IsSofa() {
		return fmt.Sprintf("%d&%d", seat.Start, seat.End)
	}
	return strconv.Itoa(seat.Start)
}

// SingleSeats derives one single seat per non-blocked slot, for matrices that
// were loaded without a layout.
func SingleSeats(m *model.SeatingMatrix) {
	for _, id := range m.RowIDs() {
		row := m.Rows[id]
		row.Seats = row.Seats[:0]
		for i, slot := range row.Slots {
			if slot.IsBlocked() {
				continue
			}
			row.Seats = append(row.Seats, model.SeatSpec{Row: id, Start: i + 1, End: i + 1})
		}
	}
}
