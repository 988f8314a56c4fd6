package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/saga/pkg/app"
	"tableflip.dev/saga/pkg/entry"
	"tableflip.dev/saga/pkg/index"
	"tableflip.dev/saga/pkg/markup"
	"tableflip.dev/saga/pkg/runner/tui/internal/calendar"
	"tableflip.dev/saga/pkg/store"
	"tableflip.dev/saga/pkg/viewmode"
)

// searchDebounce is how long typing in the search box may rest before
// the term is applied to the journal.
const searchDebounce = 500 * time.Millisecond

// Model states
type mode int

const (
	modeNormal mode = iota
	modeEdit
	modeSearch
	modeCommand
	modeHelp
)

var filterCycle = []string{
	index.FilterAll,
	string(entry.Reflective),
	string(entry.Daily),
	string(entry.Creative),
	string(entry.Freeform),
}

var promptTypeCycle = []entry.PromptType{
	entry.Daily,
	entry.Reflective,
	entry.Creative,
	entry.Freeform,
}

var highlightCycle = []string{"yellow", "green", "blue", "pink"}

// Model contains UI state
type Model struct {
	svc  *app.Service
	ctx  context.Context
	mode mode

	coord *viewmode.Coordinator

	title   textinput.Model
	content textarea.Model
	input   textinput.Model

	// editor state not held by the inputs
	editID         string
	editDate       entry.Timestamp
	editPrompt     string
	editPromptType entry.PromptType
	editorFocus    int // 0: title, 1: content
	highlightIdx   int

	searchSeq int
	saving    bool

	events <-chan store.Event

	status string

	awaitingDD bool
	lastDTime  time.Time

	termWidth  int
	termHeight int
}

// New creates a new UI model backed by the Service. The events channel
// may be nil when no store watch is available.
func New(ctx context.Context, svc *app.Service, events <-chan store.Event) Model {
	ti := textinput.New()
	ti.Placeholder = "Title (optional)"
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Styles.Cursor.Color = lipgloss.Color("218")
	ti.Styles.Cursor.Shape = tea.CursorUnderline

	ta := textarea.New()
	ta.Placeholder = "Write your entry..."
	ta.CharLimit = 0
	ta.SetWidth(72)
	ta.SetHeight(10)

	in := textinput.New()
	in.CharLimit = 256
	in.Prompt = ""

	return Model{
		svc:            svc,
		ctx:            ctx,
		mode:           modeNormal,
		title:          ti,
		content:        ta,
		input:          in,
		editPromptType: entry.Daily,
		events:         events,
		status:         "NORMAL: tab view, h/l day, j/k move, o new, i edit, dd delete, / search, f filter, ? help",
	}
}

// Init loads initial data
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadEntries(), m.waitForEvent())
}

func (m *Model) loadEntries() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.svc.List(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return entriesLoadedMsg{entries}
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	ch := m.events
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return watchClosedMsg{}
		}
		return storeEventMsg{ev}
	}
}

// messages
type errMsg struct{ err error }
type entriesLoadedMsg struct{ entries []*entry.Entry }
type savedMsg struct {
	saved   *entry.Entry
	entries []*entry.Entry
}
type deletedMsg struct {
	id      string
	entries []*entry.Entry
}
type promptMsg struct{ text string }
type searchDebouncedMsg struct {
	seq  int
	term string
}
type storeEventMsg struct{ event store.Event }
type watchClosedMsg struct{}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case errMsg:
		m.saving = false
		m.status = "ERR: " + msg.err.Error()
	case entriesLoadedMsg:
		if m.coord == nil {
			m.coord = viewmode.New(msg.entries)
			if m.coord.Selection().Creating() {
				m.openEditor(nil)
			}
		} else {
			m.coord.Refresh(msg.entries)
		}
	case savedMsg:
		m.saving = false
		m.coord.Saved(msg.entries, msg.saved)
		m.mode = modeNormal
		m.closeEditor()
		m.status = "Saved"
	case deletedMsg:
		m.coord.Deleted(msg.id, msg.entries)
		if m.coord.Selection().Creating() {
			m.openEditor(nil)
		}
		m.status = "Deleted"
	case promptMsg:
		m.editPrompt = msg.text
		m.status = "Prompt ready"
	case searchDebouncedMsg:
		if msg.seq == m.searchSeq && m.coord != nil {
			m.coord.SetSearch(msg.term)
		}
	case storeEventMsg:
		cmds = append(cmds, m.loadEntries(), m.waitForEvent())
	case watchClosedMsg:
		// store watch went away; manual refresh still works
	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKey(msg)...)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) []tea.Cmd {
	var cmds []tea.Cmd
	if m.coord == nil {
		return nil
	}

	switch m.mode {
	case modeHelp:
		if key := msg.String(); key == "q" || key == "esc" || key == "?" {
			m.mode = modeNormal
		}
	case modeEdit:
		m.handleEditKey(msg, &cmds)
	case modeSearch:
		m.handleSearchKey(msg, &cmds)
	case modeCommand:
		switch msg.String() {
		case "enter":
			input := strings.TrimSpace(m.input.Value())
			switch input {
			case "q", "quit", "exit":
				cmds = append(cmds, tea.Quit)
			case "":
				// nothing
			default:
				m.status = fmt.Sprintf("Unknown command: %s", input)
			}
			m.mode = modeNormal
			m.input.Reset()
			m.input.Blur()
		case "esc":
			m.mode = modeNormal
			m.input.Reset()
			m.input.Blur()
			m.status = "Command cancelled"
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	case modeNormal:
		m.handleNormalKey(msg, &cmds)
	}
	return cmds
}

func (m *Model) handleNormalKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case ":":
		m.mode = modeCommand
		m.input.Reset()
		m.input.Placeholder = "command"
		if cmd := m.input.Focus(); cmd != nil {
			*cmds = append(*cmds, cmd)
		}
		*cmds = append(*cmds, textinput.Blink)
		m.status = "COMMAND: type :q or :exit to quit"

	// view switching
	case "tab":
		if m.coord.Mode() == viewmode.Calendar {
			m.coord.SetMode(viewmode.List)
		} else {
			m.coord.SetMode(viewmode.Calendar)
		}

	// day navigation (calendar mode)
	case "h", "left":
		m.coord.FocusDay(m.coord.FocusedDay().AddDate(0, 0, -1))
	case "l", "right":
		m.coord.FocusDay(m.coord.FocusedDay().AddDate(0, 0, 1))
	case "[":
		m.coord.FocusDay(m.coord.FocusedDay().AddDate(0, -1, 0))
	case "]":
		m.coord.FocusDay(m.coord.FocusedDay().AddDate(0, 1, 0))
	case "t":
		m.coord.FocusDay(time.Now())

	// entry movement
	case "j", "down":
		m.moveSelection(1)
	case "k", "up":
		m.moveSelection(-1)
	case "g":
		if displayed := m.coord.Displayed(); len(displayed) > 0 {
			m.coord.SelectEntry(displayed[0].ID)
		}
	case "G":
		if displayed := m.coord.Displayed(); len(displayed) > 0 {
			m.coord.SelectEntry(displayed[len(displayed)-1].ID)
		}

	// add
	case "o", "O":
		m.coord.StartNewEntry()
		m.openEditor(nil)
		*cmds = append(*cmds, textinput.Blink)

	// edit
	case "i", "enter":
		if e := m.coord.SelectedEntry(); e != nil {
			m.coord.StartEditSelected()
			m.openEditor(e)
			*cmds = append(*cmds, textinput.Blink)
		}

	// delete: double-d like vim
	case "d":
		if e := m.coord.SelectedEntry(); e != nil {
			if m.awaitingDD && time.Since(m.lastDTime) < 600*time.Millisecond {
				m.awaitingDD = false
				*cmds = append(*cmds, m.deleteEntry(e.ID))
			} else {
				m.awaitingDD = true
				m.lastDTime = time.Now()
			}
		}

	// search
	case "/":
		m.mode = modeSearch
		m.input.Reset()
		m.input.Placeholder = "search"
		m.input.SetValue(m.coord.SearchTerm())
		m.input.CursorEnd()
		if cmd := m.input.Focus(); cmd != nil {
			*cmds = append(*cmds, cmd)
		}
		*cmds = append(*cmds, textinput.Blink)
		m.status = "SEARCH: enter apply, esc clear"

	// filter
	case "f":
		m.coord.SetFilter(nextInCycle(filterCycle, m.coord.Filter()))
		m.status = "Filter: " + m.coord.Filter()

	case "r":
		*cmds = append(*cmds, m.loadEntries())
	case "?":
		m.mode = modeHelp
	case "q":
		m.status = "Use :q or :exit to quit"
	}
}

func (m *Model) handleSearchKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchSeq++
		m.coord.SetSearch(strings.TrimSpace(m.input.Value()))
		m.mode = modeNormal
		m.input.Blur()
		m.status = "Search applied"
	case "esc":
		m.searchSeq++
		m.coord.SetSearch("")
		m.mode = modeNormal
		m.input.Reset()
		m.input.Blur()
		m.status = "Search cleared"
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		*cmds = append(*cmds, cmd)
		m.searchSeq++
		seq := m.searchSeq
		term := strings.TrimSpace(m.input.Value())
		*cmds = append(*cmds, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return searchDebouncedMsg{seq: seq, term: term}
		}))
	}
}

func (m *Model) handleEditKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		if m.saving {
			m.status = "Save already in progress"
			return
		}
		m.saving = true
		*cmds = append(*cmds, m.saveEntry())
	case "esc":
		m.coord.CancelEdit()
		m.mode = modeNormal
		m.closeEditor()
		if m.coord.Selection().Creating() {
			// journal is empty; reopen a blank editor
			m.openEditor(nil)
			return
		}
		m.status = "Edit cancelled"
	case "tab":
		if m.editorFocus == 0 {
			m.editorFocus = 1
			m.title.Blur()
			if cmd := m.content.Focus(); cmd != nil {
				*cmds = append(*cmds, cmd)
			}
		} else {
			m.editorFocus = 0
			m.content.Blur()
			if cmd := m.title.Focus(); cmd != nil {
				*cmds = append(*cmds, cmd)
			}
		}

	// inline markup on the content line under the cursor
	case "ctrl+b":
		m.applyLineStyle(markup.Bold)
	case "ctrl+u":
		m.applyLineStyle(markup.Underline)
	case "ctrl+e":
		m.applyLineStyle(markup.Italic)
	case "ctrl+l":
		color := highlightCycle[m.highlightIdx%len(highlightCycle)]
		m.highlightIdx++
		m.applyLineStyle(markup.Highlight(color))

	case "ctrl+t":
		m.editPromptType = nextPromptType(m.editPromptType)
		m.status = "Prompt type: " + m.editPromptType.Label()
	case "ctrl+p":
		typ := m.editPromptType
		theme := strings.TrimSpace(m.title.Value())
		*cmds = append(*cmds, func() tea.Msg {
			text, err := m.svc.GeneratePrompt(m.ctx, typ, theme)
			if err != nil {
				return errMsg{err}
			}
			return promptMsg{text}
		})
		m.status = "Generating prompt..."

	default:
		var cmd tea.Cmd
		if m.editorFocus == 0 {
			m.title, cmd = m.title.Update(msg)
		} else {
			m.content, cmd = m.content.Update(msg)
		}
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) moveSelection(delta int) {
	displayed := m.coord.Displayed()
	if len(displayed) == 0 {
		return
	}
	id, ok := m.coord.Selection().SelectedID()
	if !ok {
		m.coord.SelectEntry(displayed[0].ID)
		return
	}
	for i, e := range displayed {
		if e.ID == id {
			next := i + delta
			if next >= 0 && next < len(displayed) {
				m.coord.SelectEntry(displayed[next].ID)
			}
			return
		}
	}
	m.coord.SelectEntry(displayed[0].ID)
}

func (m *Model) openEditor(e *entry.Entry) {
	m.mode = modeEdit
	m.editorFocus = 1
	m.title.Reset()
	m.content.Reset()
	m.editID = ""
	m.editDate = entry.Timestamp{}
	m.editPrompt = ""
	m.editPromptType = entry.Daily
	if e != nil {
		m.editID = e.ID
		m.editDate = e.Date
		m.editPrompt = e.Prompt
		m.editPromptType = e.PromptType.Normalize()
		m.title.SetValue(e.Title)
		m.content.SetValue(e.Content)
	}
	m.title.Blur()
	m.content.Focus()
}

func (m *Model) closeEditor() {
	m.title.Reset()
	m.title.Blur()
	m.content.Reset()
	m.content.Blur()
	m.editID = ""
	m.editDate = entry.Timestamp{}
	m.editPrompt = ""
}

func (m *Model) saveEntry() tea.Cmd {
	req := app.SaveRequest{
		ID:         m.editID,
		Date:       m.editDate,
		Title:      m.title.Value(),
		Content:    m.content.Value(),
		Summary:    firstLine(m.content.Value()),
		PromptType: m.editPromptType,
		Prompt:     m.editPrompt,
	}
	return func() tea.Msg {
		saved, err := m.svc.Save(m.ctx, req)
		if err != nil {
			return errMsg{err}
		}
		entries, err := m.svc.List(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return savedMsg{saved: saved, entries: entries}
	}
}

func (m *Model) deleteEntry(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.Delete(m.ctx, id); err != nil {
			return errMsg{err}
		}
		entries, err := m.svc.List(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return deletedMsg{id: id, entries: entries}
	}
}

// applyLineStyle wraps the content line under the cursor in the given
// markup style.
func (m *Model) applyLineStyle(style markup.Style) {
	val := m.content.Value()
	if strings.TrimSpace(val) == "" {
		return
	}
	lines := strings.Split(val, "\n")
	row := m.content.Line()
	if row < 0 || row >= len(lines) {
		row = len(lines) - 1
	}
	start := 0
	for i := 0; i < row; i++ {
		start += len(lines[i]) + 1
	}
	end := start + len(lines[row])
	styled, _ := markup.ApplyStyle(val, start, end, style)
	m.content.SetValue(styled)
}

func nextInCycle(cycle []string, current string) string {
	for i, v := range cycle {
		if v == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

func nextPromptType(current entry.PromptType) entry.PromptType {
	for i, v := range promptTypeCycle {
		if v == current {
			return promptTypeCycle[(i+1)%len(promptTypeCycle)]
		}
	}
	return promptTypeCycle[0]
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 120 {
		s = s[:120]
	}
	return s
}

// View renders the calendar or list body plus overlays.
func (m Model) View() string {
	if m.coord == nil {
		return "Loading journal..."
	}

	var body string
	switch {
	case m.mode == modeEdit:
		body = m.editorView()
	case m.mode == modeHelp:
		body = m.helpView()
	case m.coord.Mode() == viewmode.Calendar:
		body = m.calendarView()
	default:
		body = m.listView()
	}

	if m.mode == modeSearch {
		body += "\n\n/" + m.input.View()
	}
	if m.mode == modeCommand {
		body += "\n\n:" + m.input.View()
	}

	return body + "\n\n" + m.statusLine()
}

func (m Model) statusLine() string {
	modeStr := map[mode]string{
		modeNormal:  "NORMAL",
		modeEdit:    "EDIT",
		modeSearch:  "SEARCH",
		modeCommand: "CMD",
		modeHelp:    "HELP",
	}[m.mode]
	extra := ""
	if m.coord.Filter() != index.FilterAll {
		extra += " filter:" + m.coord.Filter()
	}
	if m.coord.SearchTerm() != "" {
		extra += " search:" + m.coord.SearchTerm()
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return style.Render(fmt.Sprintf("[%s]%s %s", modeStr, extra, m.status))
}

func (m Model) calendarView() string {
	focused := m.coord.FocusedDay()
	now := time.Now()

	counts := map[int]int{}
	for _, e := range m.coord.Visible() {
		d := e.Date.Local()
		if d.Year() == focused.Year() && d.Month() == focused.Month() {
			counts[d.Day()]++
		}
	}
	days := make([]calendar.Day, 0, len(counts))
	for day, n := range counts {
		days = append(days, calendar.Day{Day: day, Entries: n})
	}
	days = appendDayFlags(days, focused, now)

	left := calendar.Render(focused, days, calendar.DefaultOptions())
	left += "\n\n" + m.dayListView()

	right := m.detailView()

	gap := lipgloss.NewStyle().Padding(0, 2).Render(" ")
	return lipgloss.JoinHorizontal(lipgloss.Top, left, gap, right)
}

// appendDayFlags folds today/focused markers into the day cells,
// creating cells for days that have no entries.
func appendDayFlags(days []calendar.Day, focused, now time.Time) []calendar.Day {
	flag := func(day int, mark func(*calendar.Day)) []calendar.Day {
		for i := range days {
			if days[i].Day == day {
				mark(&days[i])
				return days
			}
		}
		d := calendar.Day{Day: day}
		mark(&d)
		return append(days, d)
	}
	if now.Year() == focused.Year() && now.Month() == focused.Month() {
		days = flag(now.Day(), func(d *calendar.Day) { d.IsToday = true })
	}
	days = flag(focused.Day(), func(d *calendar.Day) { d.IsFocused = true })
	return days
}

func (m Model) dayListView() string {
	focused := m.coord.FocusedDay()
	header := lipgloss.NewStyle().Bold(true).Render(focused.Format("January 2, 2006"))

	onDay := m.coord.DayEntries()
	if len(onDay) == 0 {
		empty := lipgloss.NewStyle().Faint(true).Italic(true).Render("no entries")
		return header + "\n" + empty
	}

	lines := []string{header}
	for _, e := range onDay {
		lines = append(lines, m.entryLine(e))
	}
	return strings.Join(lines, "\n")
}

func (m Model) listView() string {
	buckets := m.coord.Buckets()
	if len(buckets) == 0 {
		return lipgloss.NewStyle().Faint(true).Italic(true).Render("no entries")
	}

	dayStyle := lipgloss.NewStyle().Bold(true)
	var lines []string
	for _, b := range buckets {
		lines = append(lines, dayStyle.Render(b.Day.Format("January 2, 2006")))
		for _, e := range b.Entries {
			lines = append(lines, m.entryLine(e))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) entryLine(e *entry.Entry) string {
	cursor := "  "
	if id, ok := m.coord.Selection().SelectedID(); ok && id == e.ID {
		cursor = "> "
	}
	faint := lipgloss.NewStyle().Faint(true)
	return fmt.Sprintf("%s%s  %s  %s",
		cursor,
		faint.Render(e.Date.Local().Format("15:04")),
		faint.Render(e.PromptType.Label()),
		markup.RenderTerminal(e.DisplayTitle()))
}

func (m Model) detailView() string {
	e := m.coord.SelectedEntry()
	if e == nil {
		return lipgloss.NewStyle().Faint(true).Italic(true).Render("nothing selected")
	}

	titleStyle := lipgloss.NewStyle().Bold(true)
	faint := lipgloss.NewStyle().Faint(true)

	lines := []string{
		titleStyle.Render(markup.RenderTerminal(e.DisplayTitle())),
		faint.Render(e.Date.Local().Format("Monday, January 2, 2006 15:04") + "  " + e.PromptType.Label()),
	}
	if e.Prompt != "" {
		lines = append(lines, "", lipgloss.NewStyle().Italic(true).Render(e.Prompt))
	}
	lines = append(lines, "", markup.RenderTerminal(e.Content))
	return strings.Join(lines, "\n")
}

func (m Model) editorView() string {
	faint := lipgloss.NewStyle().Faint(true)

	header := "New entry"
	if m.editID != "" {
		header = "Edit entry"
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(header),
		"",
		faint.Render("Title: ") + m.title.View(),
	}
	if m.editPrompt != "" {
		lines = append(lines, "", lipgloss.NewStyle().Italic(true).Render(m.editPrompt))
	}
	lines = append(lines,
		"",
		m.content.View(),
		"",
		faint.Render(fmt.Sprintf("type: %s  ctrl+s save  esc cancel  ctrl+b/u/e/l style line  ctrl+t type  ctrl+p prompt", m.editPromptType.Label())),
	)
	if m.saving {
		lines = append(lines, faint.Render("saving..."))
	}
	return strings.Join(lines, "\n")
}

func (m Model) helpView() string {
	help := `Keys:
  tab        switch calendar/list view
  h/l  [ ]   previous/next day, previous/next month
  t          jump to today
  j/k        move between entries
  g/G        first/last entry
  o          new entry
  i / enter  edit selected entry
  dd         delete selected entry
  /          search (applied after a pause in typing)
  f          cycle prompt-type filter
  r          refresh from disk
  :q         quit`
	return lipgloss.NewStyle().Italic(true).Render(help)
}

// applySizes recalculates pane sizes from the terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	w := m.termWidth - 8
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	h := m.termHeight - 12
	if h < 5 {
		h = 5
	}
	m.content.SetWidth(w)
	m.content.SetHeight(h)
}
