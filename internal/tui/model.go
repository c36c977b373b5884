package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diegomarinho/jabref/internal/filter"
	"github.com/diegomarinho/jabref/internal/integrity"
	"github.com/diegomarinho/jabref/internal/model"
)

var (
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	editorBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Bold(true)

	focusedFieldStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("232")).
				Background(lipgloss.Color("208")).
				Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	emptyTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Align(lipgloss.Center)

	popupStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Background(lipgloss.Color("235")).
			Padding(1, 4)

	filterActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	dimStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type statusMsg string

// focusFieldMsg carries the deferred focus request issued by the
// navigation dispatcher. Delivering it as a message guarantees it runs on
// a later event-loop turn, after the select/show mutations of the turn
// that produced it.
type focusFieldMsg struct {
	run func()
}

// closeDialogMsg asks the dialog to dismiss itself. It is always sequenced
// after the deferred focus of the same activation.
type closeDialogMsg struct{}

// clearStatusMsg resets the status line to its default once the timed
// message it belongs to (seq) is still the current one.
type clearStatusMsg struct {
	seq int
}

// editorPane is the dialog's built-in entry editor: it renders the selected
// entry's fields and highlights the focused one. It implements EntryView so
// the navigation dispatcher can drive it like the external editor it stands
// in for.
type editorPane struct {
	entry   *model.Entry
	visible bool
	focused model.Field
}

func (p *editorPane) SelectEntry(e *model.Entry) {
	if p.entry != e {
		p.entry = e
		p.focused = ""
	}
}

func (p *editorPane) SetEditorVisible(visible bool) {
	p.visible = visible
}

// FocusField is best effort: focusing a field the entry does not carry is
// a silent no-op.
func (p *editorPane) FocusField(f model.Field) {
	if p.entry == nil {
		return
	}
	if _, ok := p.entry.GetField(f); !ok && f != model.FieldKey {
		return
	}
	p.focused = f
}

// filterMenu is the open state of one column's value checklist.
type filterMenu struct {
	column filter.Column
	cursor int
}

// Model is the integrity results dialog: a filterable three-column table
// of messages over an entry editor pane.
type Model struct {
	table    table.Model
	viewport viewport.Model

	vm         *ViewModel
	engine     *filter.Engine
	dispatcher *Dispatcher
	pane       *editorPane
	view       EntryView
	external   bool // true when the entry editor is the host's, not the pane

	// visibleRows maps table row index -> view-model index under the
	// current filter state.
	visibleRows []int

	libraryPath string

	ready    bool
	quitting bool
	closed   bool
	width    int
	height   int

	statusMessage string
	statusSeq     int

	menu           *filterMenu
	showHelp       bool
	showExportMenu bool

	// now is injectable so activation timing is testable.
	now func() time.Time
}

// NewModel builds the dialog with its built-in entry editor pane.
func NewModel(messages []integrity.Message, libraryPath string) Model {
	return NewModelWithView(messages, libraryPath, nil, 0)
}

// NewModelWithView builds the dialog against an injected entry view, for
// hosts that own their editor. A nil view selects the built-in pane; a
// threshold of 0 selects DefaultDoubleActivation.
func NewModelWithView(messages []integrity.Message, libraryPath string, view EntryView, threshold time.Duration) Model {
	columns := []table.Column{
		{Title: filter.ColumnKey.Title(), Width: 18},
		{Title: filter.ColumnField.Title(), Width: 18},
		{Title: filter.ColumnMessage.Title(), Width: 50},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Padding(0, 1).
		Align(lipgloss.Left)
	s.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("232")).
		Background(lipgloss.Color("208")).
		Bold(true).
		Padding(0, 1)
	s.Cell = lipgloss.NewStyle().
		Padding(0, 1)
	t.SetStyles(s)

	pane := &editorPane{}
	m := Model{
		table:       t,
		vm:          NewViewModel(messages),
		pane:        pane,
		libraryPath: libraryPath,
		now:         time.Now,
	}
	m.engine = filter.NewEngine(m.vm.Messages())
	if view == nil {
		m.view = pane
	} else {
		m.view = view
		m.external = true
	}
	m.dispatcher = NewDispatcher(m.view, threshold)
	m.rebuildRows()

	if m.vm.Len() == 0 {
		m.statusMessage = "q: close | no problems found"
	} else {
		m.statusMessage = "q: close | ?: help | enter: jump to entry | 1/2/3: filter columns"
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// ResetAllFilters clears every column filter, restoring the unfiltered
// default. Exposed so the host can reset programmatically, e.g. when
// reopening the dialog.
func (m *Model) ResetAllFilters() {
	m.engine.Reset()
	m.rebuildRows()
}

// Closed reports whether the dialog was dismissed by a double activation
// rather than quit directly.
func (m Model) Closed() bool { return m.closed }

// ShowEditor makes the entry editor pane visible before any activation.
func (m *Model) ShowEditor() {
	m.view.SetEditorVisible(true)
	m.updateEditorContent()
}

// rebuildRows re-evaluates the filter predicate over the full message
// sequence and rebinds the table to the visible subset. The view-model
// itself is never reordered or trimmed.
func (m *Model) rebuildRows() {
	msgs := m.vm.Messages()
	rows := make([]table.Row, 0, len(msgs))
	indices := make([]int, 0, len(msgs))
	for i, msg := range msgs {
		if !m.engine.Visible(msg) {
			continue
		}
		rows = append(rows, table.Row{
			filter.ColumnKey.Value(msg),
			filter.ColumnField.Value(msg),
			filter.ColumnMessage.Value(msg),
		})
		indices = append(indices, i)
	}
	m.visibleRows = indices
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
	m.updateEditorContent()
}

// selectedMessage returns the message bound to the table's cursor row, or
// nil when nothing is visible.
func (m *Model) selectedMessage() *integrity.Message {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visibleRows) {
		return nil
	}
	msg := m.vm.At(m.visibleRows[idx])
	return &msg
}

// activateRow performs primary activation of the cursor row: navigation
// now, focus on a later turn, and for a double activation a close that is
// sequenced strictly after the focus.
func (m *Model) activateRow() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visibleRows) {
		return nil
	}
	msg := m.vm.At(m.visibleRows[idx])
	focus, closeDialog := m.dispatcher.Activate(msg, m.visibleRows[idx], m.now())
	m.updateEditorContent()

	focusCmd := func() tea.Msg { return focusFieldMsg{run: focus} }
	if closeDialog {
		return tea.Sequence(focusCmd, func() tea.Msg { return closeDialogMsg{} })
	}
	return focusCmd
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.statusMessage = text
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m *Model) defaultStatus() string {
	if m.vm.Len() == 0 {
		return "q: close | no problems found"
	}
	return "q: close | ?: help | enter: jump to entry | 1/2/3: filter columns"
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.showExportMenu {
			return m.updateExportMenu(msg)
		}
		if m.menu != nil {
			return m.updateFilterMenu(msg)
		}

		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if len(m.visibleRows) > 0 {
				return m, m.activateRow()
			}
		case "1":
			return m.openFilterMenu(filter.ColumnKey)
		case "2":
			return m.openFilterMenu(filter.ColumnField)
		case "3":
			return m.openFilterMenu(filter.ColumnMessage)
		case "esc":
			if m.anyFilterActive() {
				m.ResetAllFilters()
				return m, m.setStatus("Filters cleared")
			}
		case "tab":
			if !m.external {
				m.view.SetEditorVisible(!m.pane.visible)
				m.updateEditorContent()
			}
			return m, nil
		case "o":
			if sel := m.selectedMessage(); sel != nil {
				return m, m.openEditor(sel.Entry)
			}
		case "y":
			if sel := m.selectedMessage(); sel != nil {
				return m, m.copyKeyToClipboard(*sel)
			}
		case "Y":
			if sel := m.selectedMessage(); sel != nil {
				return m, m.copyMessageToClipboard(*sel)
			}
		case "e":
			if len(m.visibleRows) > 0 {
				m.showExportMenu = true
				return m, nil
			}
		case "?":
			m.showHelp = true
			return m, nil
		case "down", "j", "up", "k":
			m.table, cmd = m.table.Update(msg)
			m.updateEditorContent()
			return m, cmd
		case "g", "home":
			m.table.GotoTop()
			m.updateEditorContent()
			return m, nil
		case "G", "end":
			m.table.GotoBottom()
			m.updateEditorContent()
			return m, nil
		}

	case tea.MouseMsg:
		// Only the primary button navigates; secondary and middle clicks
		// are ignored entirely.
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if row, ok := m.rowAt(msg.Y); ok {
				m.table.SetCursor(row)
				return m, m.activateRow()
			}
		}
		return m, nil

	case focusFieldMsg:
		msg.run()
		m.updateEditorContent()
		return m, nil

	case closeDialogMsg:
		m.closed = true
		m.quitting = true
		return m, tea.Quit

	case statusMsg:
		return m, m.setStatus(string(msg))

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = m.defaultStatus()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	if !m.quitting {
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

func (m Model) openFilterMenu(c filter.Column) (tea.Model, tea.Cmd) {
	if len(m.engine.Options(c)) == 0 {
		return m, m.setStatus("No values to filter in this column")
	}
	m.menu = &filterMenu{column: c}
	return m, nil
}

func (m Model) updateFilterMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	menu := m.menu
	opts := m.engine.Options(menu.column)
	switch msg.String() {
	case "esc", "q", "enter":
		m.menu = nil
	case "down", "j":
		if menu.cursor < len(opts)-1 {
			menu.cursor++
		}
	case "up", "k":
		if menu.cursor > 0 {
			menu.cursor--
		}
	case " ", "x":
		if menu.cursor < len(opts) {
			m.engine.Toggle(menu.column, opts[menu.cursor].Value)
			m.rebuildRows()
		}
	case "a":
		// Reselect every value of this column.
		for _, o := range opts {
			if !o.Selected {
				m.engine.Toggle(menu.column, o.Value)
			}
		}
		m.rebuildRows()
	}
	return m, nil
}

func (m Model) updateExportMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1", "j":
		m.showExportMenu = false
		return m, m.exportMessages("json")
	case "2", "c":
		m.showExportMenu = false
		return m, m.exportMessages("csv")
	case "esc", "q", "e":
		m.showExportMenu = false
	}
	return m, nil
}

func (m *Model) anyFilterActive() bool {
	for _, c := range filter.Columns {
		if m.engine.Active(c) {
			return true
		}
	}
	return false
}

// rowAt maps a terminal Y coordinate to a visible table row, accounting
// for the stats header, table border and column header.
func (m *Model) rowAt(y int) (int, bool) {
	top := 3 // stats line, top border, header row
	row := y - top + m.tableOffset()
	if row < 0 || row >= len(m.visibleRows) {
		return 0, false
	}
	return row, true
}

// tableOffset returns the index of the first row in view.
func (m *Model) tableOffset() int {
	off := m.table.Cursor() - m.table.Height() + 1
	if off < 0 {
		return 0
	}
	return off
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true

	usable := width - 8
	keyWidth := 18
	fieldWidth := 18
	msgWidth := usable - keyWidth - fieldWidth
	if msgWidth < 30 {
		msgWidth = 30
	}
	cols := m.table.Columns()
	cols[0].Width = keyWidth
	cols[1].Width = fieldWidth
	cols[2].Width = msgWidth
	m.table.SetColumns(cols)

	available := height - 3 // stats header, status bar, spare line
	tableHeight := available / 2
	if tableHeight < 4 {
		tableHeight = 4
	}
	editorHeight := available - tableHeight - editorBorderStyle.GetVerticalFrameSize()
	if editorHeight < 3 {
		editorHeight = 3
	}

	m.table.SetWidth(width)
	m.table.SetHeight(tableHeight)

	if m.viewport.Height == 0 {
		m.viewport = viewport.New(width, editorHeight)
	} else {
		m.viewport.Width = width
		m.viewport.Height = editorHeight
	}
	m.updateEditorContent()
	statusStyle = statusStyle.Width(width)
}

func formatCount(n int, singular string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %ss", n, singular)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	statsContent := m.statsLine()
	statsHeader := lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 2).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("237")).
		Render(statsContent)

	tableRender := tableBorderStyle.
		Width(m.width).
		Height(m.table.Height()).
		Render(m.table.View())

	var editorContent string
	if len(m.visibleRows) == 0 {
		var emptyMsg string
		if m.vm.Len() == 0 {
			emptyMsg = "No integrity problems found."
		} else {
			emptyMsg = "No messages match the filters.\n\nPress 'Esc' to clear all filters"
		}
		editorContent = lipgloss.Place(
			m.width,
			m.viewport.Height,
			lipgloss.Center,
			lipgloss.Center,
			emptyTextStyle.Render(emptyMsg),
		)
	} else {
		editorContent = m.viewport.View()
	}
	editorRender := editorBorderStyle.
		Width(m.width).
		Height(m.viewport.Height).
		Render(editorContent)

	statusRender := statusStyle.
		Width(m.width).
		Padding(0, 2).
		Render(m.statusMessage)

	mainView := lipgloss.JoinVertical(lipgloss.Left,
		statsHeader,
		tableRender,
		editorRender,
		statusRender,
	)

	if m.showHelp {
		return m.helpView()
	}
	if m.showExportMenu {
		return m.exportMenuView()
	}
	if m.menu != nil {
		return m.filterMenuView()
	}
	return mainView
}

func (m Model) statsLine() string {
	total := m.vm.Len()
	if total == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("[OK] No problems found")
	}

	var active []string
	for _, c := range filter.Columns {
		if m.engine.Active(c) {
			active = append(active, c.Title())
		}
	}

	base := fmt.Sprintf("%s in %s", formatCount(total, "problem"), m.libraryPath)
	if len(active) > 0 {
		return fmt.Sprintf("%s  |  Showing: %d/%d%s",
			base,
			len(m.visibleRows),
			total,
			filterActiveStyle.Render(fmt.Sprintf("  [FILTER: %s]", strings.Join(active, ", "))),
		)
	}
	return base
}

func (m Model) filterMenuView() string {
	menu := m.menu
	opts := m.engine.Options(menu.column)

	var lines []string
	header := fmt.Sprintf("Filter: %s", menu.column.Title())
	if m.engine.Active(menu.column) {
		header += filterActiveStyle.Render(" *")
	}
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Render(header))
	lines = append(lines, "")

	for i, o := range opts {
		mark := "[x]"
		if !o.Selected {
			mark = "[ ]"
		}
		value := o.Value
		if value == "" {
			value = dimStyle.Render("(empty)")
		}
		line := fmt.Sprintf("%s %s", mark, value)
		if i == menu.cursor {
			line = focusedFieldStyle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "")
	lines = append(lines, dimStyle.Italic(true).Render("space: toggle | a: select all | esc: close"))

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	box := popupStyle.Width(56).Padding(1, 3).Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) exportMenuView() string {
	keyColor := lipgloss.Color("10")
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Render("Export Messages"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("  %s  JSON",
		lipgloss.NewStyle().Foreground(keyColor).Bold(true).Render("1/j")))
	lines = append(lines, fmt.Sprintf("  %s  CSV",
		lipgloss.NewStyle().Foreground(keyColor).Bold(true).Render("2/c")))
	lines = append(lines, "")
	lines = append(lines, dimStyle.Italic(true).Render(
		fmt.Sprintf("Exporting %d visible messages | Esc to cancel", len(m.visibleRows))))

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	box := popupStyle.Width(44).Padding(1, 3).Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) helpView() string {
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	keyColor := lipgloss.Color("10")
	descColor := lipgloss.Color("250")

	formatRow := func(key, desc string) string {
		keyStyled := lipgloss.NewStyle().Foreground(keyColor).Render(key)
		descStyled := lipgloss.NewStyle().Foreground(descColor).Render(desc)
		padding := 12 - len(key)
		if padding < 1 {
			padding = 1
		}
		return "  " + keyStyled + strings.Repeat(" ", padding) + descStyled
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Render("Keyboard Shortcuts"))
	lines = append(lines, "")
	lines = append(lines, sectionStyle.Render("Navigation"))
	lines = append(lines, formatRow("j / k", "Move down / up"))
	lines = append(lines, formatRow("g / G", "First / last row"))
	lines = append(lines, formatRow("Enter", "Jump to entry (twice to close)"))
	lines = append(lines, formatRow("Tab", "Show / hide entry editor"))
	lines = append(lines, "")
	lines = append(lines, sectionStyle.Render("Filters"))
	lines = append(lines, formatRow("1 / 2 / 3", "Filter key / field / message column"))
	lines = append(lines, formatRow("Esc", "Clear all filters"))
	lines = append(lines, "")
	lines = append(lines, sectionStyle.Render("Actions"))
	lines = append(lines, formatRow("o", "Open entry in $EDITOR"))
	lines = append(lines, formatRow("y / Y", "Copy citation key / message"))
	lines = append(lines, formatRow("e", "Export visible messages"))
	lines = append(lines, "")
	lines = append(lines, formatRow("?", "Toggle help"))
	lines = append(lines, formatRow("q", "Close dialog"))
	lines = append(lines, "")
	lines = append(lines, dimStyle.Italic(true).Render("Press any key to close"))

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	box := popupStyle.Width(48).Padding(1, 3).Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
