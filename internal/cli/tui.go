package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// MenuModel - Interactive action selection
// =============================================================================

// menuAction identifies a main menu entry.
type menuAction int

const (
	actionNone menuAction = iota
	actionFastest
	actionRestricted
	actionEco
	actionBatch
	actionExit
)

type menuItem struct {
	action menuAction
	title  string
	desc   string
}

var menuItems = []menuItem{
	{actionFastest, "Fastest route", "best driving route and an alternative"},
	{actionRestricted, "Restricted route", "avoid locations or roads, pass through a stop"},
	{actionEco, "Eco-friendly route", "drive, park and walk the rest"},
	{actionBatch, "Batch file", "answer every request in an input file"},
	{actionExit, "Exit", ""},
}

// field identifies one answer collected after an action is chosen.
type field int

const (
	fieldSource field = iota
	fieldDestination
	fieldAvoidNodes
	fieldAvoidSegments
	fieldInclude
	fieldMaxWalk
	fieldInput
	fieldOutput
)

type prompt struct {
	field field
	label string
}

// promptsFor lists the questions asked for action, in order.
func promptsFor(action menuAction) []prompt {
	endpoints := []prompt{
		{fieldSource, "Source"},
		{fieldDestination, "Destination"},
	}
	avoid := []prompt{
		{fieldAvoidNodes, "Avoid locations, e.g. 1,2 (blank for none)"},
		{fieldAvoidSegments, "Avoid segments, e.g. (1,2),(3,4) (blank for none)"},
	}
	switch action {
	case actionFastest:
		return endpoints
	case actionRestricted:
		return append(append(endpoints, avoid...), prompt{fieldInclude, "Include location (blank for none)"})
	case actionEco:
		return append(append(endpoints, avoid...), prompt{fieldMaxWalk, "Maximum walking time in minutes (blank for unbounded)"})
	case actionBatch:
		return []prompt{
			{fieldInput, "Input file"},
			{fieldOutput, "Output file (blank for screen)"},
		}
	}
	return nil
}

// MenuModel is the bubbletea model for the main menu. Choosing an action
// switches it to asking that action's questions; it quits once every answer
// is in, or when the user backs out.
type MenuModel struct {
	Cursor   int
	Selected menuAction
	Status   string

	// Answers holds what was typed for each prompt of the selected action.
	Answers   map[field]string
	Cancelled bool

	prompts []prompt
	current int
	input   []rune
}

// NewMenuModel creates a menu model. status is shown under the title, e.g.
// the dataset that is loaded.
func NewMenuModel(status string) MenuModel {
	return MenuModel{Status: status}
}

// Done reports whether an action was chosen and all its questions answered.
func (m MenuModel) Done() bool {
	return m.Selected != actionNone && m.Selected != actionExit &&
		!m.Cancelled && m.current == len(m.prompts)
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.Selected != actionNone {
		return m.updatePrompt(key)
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.Selected = actionExit
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(menuItems)-1 {
			m.Cursor++
		}
	case "1", "2", "3", "4", "5":
		m.Cursor = int(key.Runes[0] - '1')
		return m.choose()
	case "enter":
		return m.choose()
	}
	return m, nil
}

func (m MenuModel) choose() (tea.Model, tea.Cmd) {
	m.Selected = menuItems[m.Cursor].action
	if m.Selected == actionExit {
		return m, tea.Quit
	}
	m.prompts = promptsFor(m.Selected)
	m.Answers = make(map[field]string, len(m.prompts))
	return m, nil
}

func (m MenuModel) updatePrompt(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyCtrlC:
		m.Selected = actionExit
		return m, tea.Quit
	case tea.KeyEsc:
		m.Cancelled = true
		return m, tea.Quit
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, key.Runes...)
	case tea.KeyEnter:
		m.Answers[m.prompts[m.current].field] = strings.TrimSpace(string(m.input))
		m.input = nil
		m.current++
		if m.current == len(m.prompts) {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.Selected != actionNone && m.Selected != actionExit {
		return m.promptView()
	}

	var b strings.Builder

	b.WriteString(StyleTitle.Render("Route Planner"))
	b.WriteString("\n")
	if m.Status != "" {
		b.WriteString(listDimStyle.Render(m.Status))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(menuItems))
	for i, item := range menuItems {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, string(rune('1' + i)), item.title, item.desc})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case col == 3:
				return listDimStyle
			case row == m.Cursor:
				return listSelectedStyle
			default:
				return listNormalStyle
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

func (m MenuModel) promptView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(menuItems[m.Cursor].title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("⏎ next  esc back to menu"))
	b.WriteString("\n\n")

	for i, p := range m.prompts {
		switch {
		case i < m.current:
			b.WriteString(listDimStyle.Render(p.label + ": " + m.Answers[p.field]))
		case i == m.current:
			b.WriteString(StyleHighlight.Render(p.label + ": "))
			b.WriteString(listSelectedStyle.Render(string(m.input) + "█"))
		default:
			continue
		}
		b.WriteString("\n")
	}
	return b.String()
}
