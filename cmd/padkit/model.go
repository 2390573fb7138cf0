package main

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-padkit/trigger"
)

// keyboard is the part of a dispatcher the terminal can drive. Terminals
// report key presses only, so releases come from the dispatcher's timers.
type keyboard interface {
	KeyDown(key string)
	KeyUp(key string)
}

type redrawMsg struct{}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cellStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Align(lipgloss.Center)
	activeStyle = cellStyle.
			BorderForeground(lipgloss.Color("42")).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("42"))
)

// cell is one rendered pad or key.
type cell struct {
	el    trigger.Element
	label string
	key   string
}

type model struct {
	title string
	cells []cell
	surf  *surface
	kb    keyboard
	post  func(func())
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case redrawMsg:
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			return m, tea.Quit
		}
		key := msg.String()
		m.post(func() { m.kb.KeyDown(key) })
	}
	return m, nil
}

func (m model) View() string {
	cells := make([]string, len(m.cells))
	for i, c := range m.cells {
		style := cellStyle
		if m.surf.isActive(c.el) {
			style = activeStyle
		}
		cells[i] = style.Render(c.label + "\n" + strings.ToUpper(c.key))
	}
	var rows []string
	const perRow = 13
	for start := 0; start < len(cells); start += perRow {
		end := start + perRow
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[start:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.title),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		helpStyle.Render("press the key shown under a pad to play it  [ ESC: Quit ]"),
	) + "\n"
}

// keyLabels inverts a key -> target table so cells can show their binding.
// When several keys share a target the alphabetically first is shown.
func keyLabels(bindings map[string]string) map[string]string {
	keys := make([]string, 0, len(bindings))
	for k := range bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]string, len(bindings))
	for _, k := range keys {
		if _, ok := out[bindings[k]]; !ok {
			out[bindings[k]] = k
		}
	}
	return out
}
