// internal/tui/tui.go
// Package tui provides the interactive terminal leaderboard.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/matboard/internal/discovery"
	"github.com/mwiater/matboard/internal/leaderboard"
	"github.com/mwiater/matboard/internal/logging"
	"github.com/mwiater/matboard/internal/modelschema"
	"github.com/mwiater/matboard/internal/util"
)

// viewState represents the current screen of the application.
type viewState int

const (
	// viewLeaderboard shows the ranked table.
	viewLeaderboard viewState = iota
	// viewColumns is the column picker.
	viewColumns
	// viewDetail inspects a single record.
	viewDetail
)

const maxColumnWidth = 28

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	setStyle      = lipgloss.NewStyle().Background(lipgloss.Color("0")).Foreground(lipgloss.Color("244")).Padding(0, 1).MarginLeft(1)
	activeSet     = lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("0")).Padding(0, 1).MarginLeft(1)
	bestStyle     = lipgloss.NewStyle().Background(lipgloss.Color("0")).Foreground(lipgloss.Color("40")).Padding(0, 1)
	noBestStyle   = lipgloss.NewStyle().Background(lipgloss.Color("0")).Foreground(lipgloss.Color("244")).Padding(0, 1)
	toggleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).MarginLeft(1)
	issueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle    = lipgloss.NewStyle().Bold(true).Width(24)
	problemsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// model is the Bubble Tea model for the leaderboard.
type model struct {
	session       *leaderboard.Session
	view          leaderboard.View
	state         viewState
	table         table.Model
	columnList    list.Model
	detail        viewport.Model
	selected      modelschema.ModelRecord
	problems      int
	width, height int
}

// columnItem is one entry of the column picker.
type columnItem struct {
	id      string
	label   string
	visible bool
}

func (i columnItem) Title() string {
	mark := "[ ]"
	if i.visible {
		mark = "[x]"
	}
	return fmt.Sprintf("%s %s", mark, i.label)
}

func (i columnItem) Description() string { return i.id }

func (i columnItem) FilterValue() string { return i.label }

// initialModel creates the model over a prepared session. problems is the number of
// records rejected at load time, shown in the footer.
func initialModel(session *leaderboard.Session, problems int) *model {
	t := table.New(table.WithFocused(true), table.WithHeight(10))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	columnList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	columnList.Title = "Columns (enter to toggle, esc to go back)"
	columnList.SetFilteringEnabled(false)

	m := &model{
		session:    session,
		state:      viewLeaderboard,
		table:      t,
		columnList: columnList,
		detail:     viewport.New(80, 20),
		problems:   problems,
	}
	m.refresh()
	return m
}

// refresh recomputes the session view and pushes it into the table.
func (m *model) refresh() {
	m.view = m.session.View()

	headers := m.view.Headers()
	cells := m.view.Cells()
	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		width := lipgloss.Width(h)
		for _, row := range cells {
			if w := lipgloss.Width(row[i]); w > width {
				width = w
			}
		}
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if i < len(m.view.Columns) && m.view.Columns[i].SortKey == m.view.SortKey {
			h += sortArrow(m.view.Descending)
			width = max(width, lipgloss.Width(h))
		}
		cols[i] = table.Column{Title: h, Width: width}
	}
	rows := make([]table.Row, len(cells))
	for i, c := range cells {
		row := make(table.Row, len(c))
		for j, cell := range c {
			row[j] = util.FitCell(cell, cols[j].Width)
		}
		rows[i] = row
	}

	// Rows first, so the table never renders old rows against new columns.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *model) refreshColumnList() {
	index := m.columnList.Index()
	var items []list.Item
	for _, c := range leaderboard.Catalog() {
		items = append(items, columnItem{id: c.ID, label: c.Label, visible: m.session.ColumnVisible(c.ID)})
	}
	m.columnList.SetItems(items)
	m.columnList.Select(index)
}

func sortArrow(descending bool) string {
	if descending {
		return " ↓"
	}
	return " ↑"
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return nil
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		headerHeight := 4
		footerHeight := 4 + min(len(m.view.Issues), 3)
		m.table.SetHeight(max(msg.Height-headerHeight-footerHeight, 3))
		m.table.SetWidth(msg.Width)
		m.columnList.SetSize(msg.Width-2, msg.Height-2)
		m.detail.Width = msg.Width
		m.detail.Height = msg.Height - 3
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state {
		case viewLeaderboard:
			return m.updateLeaderboard(msg)
		case viewColumns:
			return m.updateColumns(msg)
		case viewDetail:
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "esc", "backspace":
				m.state = viewLeaderboard
				return m, nil
			}
		}
	}

	switch m.state {
	case viewLeaderboard:
		m.table, cmd = m.table.Update(msg)
	case viewColumns:
		m.columnList, cmd = m.columnList.Update(msg)
	case viewDetail:
		m.detail, cmd = m.detail.Update(msg)
	}
	return m, cmd
}

func (m *model) updateLeaderboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "1", "2", "3":
		set := discovery.All()[int(key[0]-'1')]
		if err := m.session.SelectSet(set); err != nil {
			logging.LogEvent("[TUI] select set %s: %v", set, err)
		}
		m.refresh()
		return m, nil
	case "d":
		m.session.NextSet()
		m.refresh()
		return m, nil
	case "n":
		m.session.ToggleNonCompliant()
		m.refresh()
		return m, nil
	case "s":
		m.session.CycleSort()
		m.refresh()
		return m, nil
	case "r":
		m.session.ReverseSort()
		m.refresh()
		return m, nil
	case "c":
		m.refreshColumnList()
		m.state = viewColumns
		return m, nil
	case "enter":
		cursor := m.table.Cursor()
		if cursor < 0 || cursor >= len(m.view.Rows) {
			return m, nil
		}
		m.selected = m.view.Rows[cursor].Record
		m.detail.SetContent(detailContent(m.selected, m.detail.Width))
		m.detail.GotoTop()
		m.state = viewDetail
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *model) updateColumns(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "c":
		m.state = viewLeaderboard
		return m, nil
	case "enter", " ":
		if it, ok := m.columnList.SelectedItem().(columnItem); ok {
			m.session.ToggleColumn(it.id)
			m.refresh()
			m.refreshColumnList()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.columnList, cmd = m.columnList.Update(msg)
	return m, cmd
}

// View renders the UI for the current state.
func (m *model) View() string {
	switch m.state {
	case viewColumns:
		return lipgloss.NewStyle().Margin(1, 2).Render(m.columnList.View())
	case viewDetail:
		header := titleStyle.Render(m.selected.ModelName) + helpStyle.Render("  (esc to go back, q to quit)")
		return header + "\n\n" + m.detail.View()
	default:
		return m.leaderboardView()
	}
}

func (m *model) leaderboardView() string {
	var b strings.Builder

	sets := []string{titleStyle.Render("Matbench Discovery")}
	for i, set := range discovery.All() {
		label := fmt.Sprintf("%d %s", i+1, set.Label())
		if set == m.view.ActiveSet {
			sets = append(sets, activeSet.Render(label))
		} else {
			sets = append(sets, setStyle.Render(label))
		}
	}
	compliance := "compliant only"
	if m.view.IncludeNonCompliant {
		compliance = "incl. non-compliant" + leaderboard.NonCompliantMark
	}
	sets = append(sets, toggleStyle.Render(fmt.Sprintf("[%s, %d/%d models]", compliance, len(m.view.Rows), m.view.TotalRecords)))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sets...) + "\n")

	if m.view.HasBest {
		b.WriteString(bestStyle.Render(m.view.BestSummary()))
	} else {
		b.WriteString(noBestStyle.Render(m.view.BestSummary()))
	}
	b.WriteString("\n\n")

	b.WriteString(m.table.View() + "\n")

	for i, issue := range m.view.Issues {
		if i == 3 {
			b.WriteString(issueStyle.Render(fmt.Sprintf("  ... %d more data-quality issues", len(m.view.Issues)-3)) + "\n")
			break
		}
		b.WriteString(issueStyle.Render("  ! "+issue.String()) + "\n")
	}
	if m.problems > 0 {
		b.WriteString(problemsStyle.Render(fmt.Sprintf("  %d model files failed validation (see log)", m.problems)) + "\n")
	}
	b.WriteString(helpStyle.Render("1/2/3/d set • n non-compliant • c columns • s sort • r reverse • enter inspect • q quit"))
	return b.String()
}

func detailContent(r modelschema.ModelRecord, width int) string {
	indent := labelStyle.GetWidth() + 1
	var b strings.Builder
	for _, d := range leaderboard.Describe(r) {
		b.WriteString(labelStyle.Render(d.Label) + " " + util.Hanging(d.Value, indent, width) + "\n")
	}
	return b.String()
}

// Run starts the interactive leaderboard and blocks until the user quits.
func Run(session *leaderboard.Session, problems int) error {
	m := initialModel(session, problems)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run leaderboard UI: %w", err)
	}
	return nil
}
