package tui

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"cinema-seating/model"
	"cinema-seating/seating"
	"cinema-seating/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type appState int

const (
	stateLoading appState = iota
	stateSeatMap
	stateGroupInput
	stateGroupList
)

// Options configures where the program reads and writes its files.
type Options struct {
	LayoutPath string
	PlanPath   string
	Rows       int
	Cols       int
	Group      int
	ShowLabels bool
}

type appModel struct {
	opts  Options
	state appState

	width  int
	height int

	layout *model.SeatingMatrix
	matrix *model.SeatingMatrix

	// cursor indexes into matrix.RowIDs() and that row's Seats.
	cursorRow  int
	cursorSeat int

	group      int
	showLabels bool
	dirty      bool
	// reloadArmed is set after an r press that would discard unsaved changes.
	reloadArmed bool

	groupInput textinput.Model
	groupList  list.Model
	spinner    spinner.Model

	notice      string
	noticeIsErr bool
}

type errMsg struct {
	err error
}

type loadedMsg struct {
	workspace store.Workspace
	err       error
}

type savedMsg struct {
	path string
	err  error
}

func New(opts Options) tea.Model {
	if opts.Group <= 0 {
		opts.Group = 1
	}
	if opts.Rows <= 0 {
		opts.Rows = store.DefaultRows
	}
	if opts.Cols <= 0 {
		opts.Cols = store.DefaultCols
	}

	m := appModel{
		opts:       opts,
		state:      stateLoading,
		group:      opts.Group,
		showLabels: opts.ShowLabels,
	}

	input := textinput.New()
	input.Placeholder = "group id"
	input.CharLimit = 6
	input.Width = 8
	input.Prompt = "Group: "
	m.groupInput = input

	m.groupList = newList("Groups")

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.state == stateGroupList && m.handleFilterInput(msg) {
			return m, nil
		}
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}
		m = next
		// fallthrough to component update

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.state == stateLoading {
			return m, cmd
		}
		return m, nil

	case errMsg:
		m.setError(msg.err)
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			log.Printf("load failed: %v", msg.err)
			if m.matrix == nil {
				// Nothing loaded yet: fall back to the empty default grid.
				m.matrix = store.DefaultMatrix(m.opts.Rows, m.opts.Cols)
			}
			m.state = stateSeatMap
			m.setError(msg.err)
			return m, nil
		}
		m.layout = msg.workspace.Layout
		m.matrix = msg.workspace.Matrix
		m.dirty = false
		m.cursorRow, m.cursorSeat = 0, 0
		if m.layout != nil {
			if err := store.RememberLayout(m.opts.LayoutPath); err != nil {
				log.Printf("remember layout: %v", err)
			}
		}
		if msg.workspace.PlanFound {
			m.setInfo(fmt.Sprintf("Loaded %s.", m.opts.PlanPath))
		} else {
			m.setInfo("No saved seating plan found, using default.")
		}
		m.state = stateSeatMap
		return m, nil

	case savedMsg:
		if msg.err != nil {
			log.Printf("save failed: %v", msg.err)
			m.setError(fmt.Errorf("failed to save seating plan: %w", msg.err))
			return m, nil
		}
		m.dirty = false
		m.setInfo(fmt.Sprintf("Seating plan saved to %s.", msg.path))
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateGroupInput:
		m.groupInput, cmd = m.groupInput.Update(msg)
	case stateGroupList:
		m.groupList, cmd = m.groupList.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateLoading:
		return header + "\n\n" + fmt.Sprintf("%s Loading seating plan\n\n%s", m.spinner.View(), hint("Reading files..."))
	case stateSeatMap:
		return header + "\n\n" + m.seatMapView() + m.noticeView()
	case stateGroupInput:
		return header + "\n\n" + m.seatMapView() + "\n\n" + m.groupInput.View() + m.noticeView()
	case stateGroupList:
		if len(m.groupList.Items()) == 0 {
			return header + "\n\n" + "No groups have been assigned yet." + m.noticeView()
		}
		return header + "\n\n" + m.groupList.View() + m.noticeView()
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Cinema Seating")
	sub := []string{}
	if m.opts.LayoutPath != "" {
		sub = append(sub, fmt.Sprintf("Layout: %s", m.opts.LayoutPath))
	}
	if m.opts.PlanPath != "" {
		sub = append(sub, fmt.Sprintf("Plan: %s", m.opts.PlanPath))
	}
	color := seating.GroupColor(m.group)
	swatch := lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color(seating.ContrastColor(color))).
		Render(fmt.Sprintf(" G%d ", m.group))
	sub = append(sub, "Group: "+swatch)
	if m.dirty {
		sub = append(sub, "unsaved changes")
	}
	meta := "\n" + lipgloss.NewStyle().Faint(true).Render(strings.Join(sub, " • "))

	hints := "q quit • arrows move • enter toggle • g set group • +/- change group • tab groups • s save • r load • n toggle numbers"
	switch m.state {
	case stateGroupInput:
		hints = "enter set group • esc cancel"
	case stateGroupList:
		hints = "esc back • type to filter • enter jump to group"
	case stateLoading:
		hints = "ctrl+c quit"
	}
	filterLine := ""
	if m.state == stateGroupList {
		if filter := m.groupList.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + filterLine + "\n" + hint(hints)
}

func (m appModel) seatMapView() string {
	if m.matrix == nil {
		return "No seat map data."
	}
	opts := RenderOptions{Group: m.group, ShowLabels: m.showLabels}
	if seat, ok := m.currentSeat(); ok {
		opts.Cursor = &seat
	}
	return RenderSeatMap(m.matrix, opts)
}

func (m appModel) noticeView() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeIsErr {
		return "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.notice)
	}
	return "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render(m.notice)
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		m.persistSettings()
		return m, tea.Quit, true
	}

	switch m.state {
	case stateLoading:
		return m, nil, false
	case stateGroupInput:
		return m.handleGroupInputKey(msg)
	case stateGroupList:
		return m.handleGroupListKey(msg)
	}

	armed := m.reloadArmed
	m.reloadArmed = false
	switch msg.String() {
	case "q":
		m.persistSettings()
		return m, tea.Quit, true
	case "up", "k":
		m.moveRow(-1)
	case "down", "j":
		m.moveRow(1)
	case "left", "h":
		m.moveSeat(-1)
	case "right", "l":
		m.moveSeat(1)
	case "enter", " ":
		m.toggleCurrent()
	case "g":
		m.state = stateGroupInput
		m.groupInput.SetValue(fmt.Sprintf("%d", m.group))
		m.groupInput.CursorEnd()
		cmd := m.groupInput.Focus()
		return m, cmd, true
	case "+", "=":
		m.group++
		m.setInfo(fmt.Sprintf("Active group is now %d.", m.group))
	case "-":
		if m.group > 1 {
			m.group--
		}
		m.setInfo(fmt.Sprintf("Active group is now %d.", m.group))
	case "tab":
		m.openGroupList()
	case "n":
		m.showLabels = !m.showLabels
	case "s":
		return m, m.saveCmd(), true
	case "r":
		if m.dirty && !armed {
			m.reloadArmed = true
			m.notice = "Unsaved changes will be lost. Press r again to reload or s to save."
			m.noticeIsErr = true
			return m, nil, true
		}
		return m, m.loadCmd(), true
	case "esc":
		m.notice = ""
	default:
		return m, nil, false
	}
	return m, nil, true
}

func (m appModel) handleGroupInputKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyEsc:
		m.groupInput.Blur()
		m.state = stateSeatMap
		return m, nil, true
	case tea.KeyEnter:
		group, err := seating.ParseGroupID(m.groupInput.Value())
		if err != nil {
			m.setError(fmt.Errorf("invalid group id %q: %w", m.groupInput.Value(), err))
			return m, nil, true
		}
		m.group = group
		m.groupInput.Blur()
		m.state = stateSeatMap
		m.setInfo(fmt.Sprintf("Active group is now %d.", m.group))
		return m, nil, true
	}
	return m, nil, false
}

func (m appModel) handleGroupListKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "esc", "tab":
		if m.groupList.IsFiltered() || m.groupList.FilterValue() != "" {
			m.groupList.ResetFilter()
			return m, nil, true
		}
		m.state = stateSeatMap
		return m, nil, true
	case "q":
		m.state = stateSeatMap
		return m, nil, true
	case "enter":
		item, ok := m.groupList.SelectedItem().(groupItem)
		if !ok {
			return m, nil, true
		}
		m.group = item.group.ID
		if len(item.group.Seats) > 0 {
			m.jumpTo(item.group.Seats[0])
		}
		m.state = stateSeatMap
		m.setInfo(fmt.Sprintf("Active group is now %d.", m.group))
		return m, nil, true
	}
	return m, nil, false
}

// toggleCurrent applies the all-or-nothing toggle to the seat under the cursor.
func (m *appModel) toggleCurrent() {
	seat, ok := m.currentSeat()
	if !ok {
		return
	}
	outcome, err := seating.ToggleSeat(m.matrix, seat, m.group)
	if err != nil {
		m.setError(err)
		return
	}
	switch outcome {
	case seating.Assigned:
		m.dirty = true
		m.setInfo(fmt.Sprintf("%s assigned to group %d.", seat.Label(), m.group))
	case seating.Unassigned:
		m.dirty = true
		m.setInfo(fmt.Sprintf("%s released from group %d.", seat.Label(), m.group))
	default:
		m.setError(fmt.Errorf("%s is held by another group", seat.Label()))
	}
}

func (m appModel) currentSeat() (model.SeatSpec, bool) {
	row, ok := m.currentRow()
	if !ok || len(row.Seats) == 0 {
		return model.SeatSpec{}, false
	}
	idx := min(max(m.cursorSeat, 0), len(row.Seats)-1)
	return row.Seats[idx], true
}

func (m appModel) currentRow() (*model.Row, bool) {
	ids := m.matrix.RowIDs()
	if len(ids) == 0 || m.cursorRow < 0 || m.cursorRow >= len(ids) {
		return nil, false
	}
	return m.matrix.Row(ids[m.cursorRow])
}

func (m *appModel) moveRow(delta int) {
	ids := m.matrix.RowIDs()
	if len(ids) == 0 {
		return
	}
	col := 1
	if seat, ok := m.currentSeat(); ok {
		col = seat.Start
	}
	m.cursorRow = min(max(m.cursorRow+delta, 0), len(ids)-1)
	row, _ := m.currentRow()
	m.cursorSeat = nearestSeat(row, col)
}

func (m *appModel) moveSeat(delta int) {
	row, ok := m.currentRow()
	if !ok || len(row.Seats) == 0 {
		return
	}
	m.cursorSeat = min(max(m.cursorSeat+delta, 0), len(row.Seats)-1)
}

func (m *appModel) jumpTo(seat model.SeatSpec) {
	for i, id := range m.matrix.RowIDs() {
		if id != seat.Row {
			continue
		}
		m.cursorRow = i
		row, _ := m.matrix.Row(id)
		m.cursorSeat = nearestSeat(row, seat.Start)
		return
	}
}

// nearestSeat returns the index of the seat covering col, or the closest one.
func nearestSeat(row *model.Row, col int) int {
	if row == nil {
		return 0
	}
	best, bestDist := 0, -1
	for i, seat := range row.Seats {
		if seat.Contains(col) {
			return i
		}
		dist := min(abs(seat.Start-col), abs(seat.End-col))
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (m *appModel) openGroupList() {
	m.groupList.ResetFilter()
	m.groupList.SetItems(buildGroupItems(seating.Groups(m.matrix)))
	for i, item := range m.groupList.Items() {
		if g, ok := item.(groupItem); ok && g.group.ID == m.group {
			m.groupList.Select(i)
			break
		}
	}
	m.state = stateGroupList
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	if !m.groupList.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 || string(msg.Runes) == "q" {
			return false
		}
		m.appendFilter(string(msg.Runes))
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if m.groupList.FilterValue() == "" {
			return false
		}
		m.popFilter()
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(value string) {
	if value == "" {
		return
	}
	m.groupList.SetFilterText(m.groupList.FilterValue() + value)
}

func (m *appModel) popFilter() {
	value := trimLastRune(m.groupList.FilterValue())
	if value == "" {
		m.groupList.ResetFilter()
		return
	}
	m.groupList.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m *appModel) setError(err error) {
	if err == nil {
		return
	}
	m.notice = err.Error()
	m.noticeIsErr = true
}

func (m *appModel) setInfo(text string) {
	m.notice = text
	m.noticeIsErr = false
}

func (m appModel) persistSettings() {
	if err := store.SaveSettings(store.Settings{
		LayoutPath: m.opts.LayoutPath,
		PlanPath:   m.opts.PlanPath,
		Group:      m.group,
		ShowLabels: m.showLabels,
	}); err != nil {
		log.Printf("save settings: %v", err)
	}
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.groupList.SetSize(m.width, h)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

// loadCmd reads the layout and saved plan off the update loop. The current
// matrix is only replaced once loading succeeded.
func (m appModel) loadCmd() tea.Cmd {
	opts := m.opts
	return func() tea.Msg {
		ws, err := store.Open(opts.LayoutPath, opts.PlanPath, opts.Rows, opts.Cols)
		if err != nil {
			return loadedMsg{err: fmt.Errorf("failed to load seating plan: %w", err)}
		}
		return loadedMsg{workspace: ws}
	}
}

// saveCmd writes a snapshot so later toggles cannot race the write.
func (m appModel) saveCmd() tea.Cmd {
	if m.matrix == nil {
		return errCmd(errors.New("nothing to save"))
	}
	path := m.opts.PlanPath
	snapshot := m.matrix.Clone()
	m.persistSettings()
	return func() tea.Msg {
		return savedMsg{path: path, err: store.SavePlan(path, snapshot)}
	}
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err}
	}
}

type groupItem struct {
	group model.Group
}

func (g groupItem) Title() string {
	swatch := lipgloss.NewStyle().Background(lipgloss.Color(g.group.Color)).Render("  ")
	return fmt.Sprintf("%s Group %d", swatch, g.group.ID)
}

func (g groupItem) Description() string {
	labels := make([]string, 0, len(g.group.Seats))
	for _, seat := range g.group.Seats {
		labels = append(labels, seat.Label())
	}
	return strings.Join(labels, ", ")
}

func (g groupItem) FilterValue() string {
	return fmt.Sprintf("group %d %s", g.group.ID, strings.ToLower(g.Description()))
}

func buildGroupItems(groups []model.Group) []list.Item {
	items := make([]list.Item, 0, len(groups))
	for _, group := range groups {
		items = append(items, groupItem{group: group})
	}
	return items
}
