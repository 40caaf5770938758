package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bizplan/internal/core"
)

const defaultWidth = 100

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	missingStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// model is the plan viewer state: a section list on the left and the
// selected section's fields on the right.
type model struct {
	plan        core.PlanResult
	sections    []core.Section
	selectedIdx int
	width       int
	height      int
	quitting    bool
}

// NewModel returns a viewer for plan.
func NewModel(plan core.PlanResult) model {
	m := model{plan: plan}
	if plan.Data != nil {
		m.sections = plan.Data.Sections
	}
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model accordingly.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.selectedIdx > 0 {
				m.selectedIdx--
			}
		case "down", "j":
			if m.selectedIdx < len(m.sections)-1 {
				m.selectedIdx++
			}
		case "home", "g":
			m.selectedIdx = 0
		case "end", "G":
			if len(m.sections) > 0 {
				m.selectedIdx = len(m.sections) - 1
			}
		}
	}

	return m, nil
}

// View renders the TUI.
func (m model) View() string {
	if m.quitting {
		return "Bye.\n"
	}

	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	listWidth := width/3 - 4
	detailWidth := width - listWidth - 10

	docStyle := lipgloss.NewStyle().Margin(1, 2)
	listStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(1).Width(listWidth)
	detailStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(1).Width(detailWidth)

	header := titleStyle.Render(m.heading())
	if m.plan.Message != "" {
		header += "\n" + helpStyle.Render(m.plan.Message)
	}

	var list strings.Builder
	if len(m.sections) == 0 {
		list.WriteString("No sections.")
	}
	for i, section := range m.sections {
		cursor := " "
		if i == m.selectedIdx {
			cursor = ">"
		}
		fmt.Fprintf(&list, "%s %d. %s\n", cursor, i+1, section.Title)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		listStyle.Render(list.String()),
		detailStyle.Render(m.detail()),
	)

	help := helpStyle.Render("[↑/k] Up | [↓/j] Down | [g/G] First/Last | [q] Quit")

	return docStyle.Render(header + "\n\n" + body + "\n\n" + help)
}

func (m model) heading() string {
	name := m.plan.BusinessName
	if name == "" {
		name = "Business Plan"
	}
	if m.plan.Industry != "" {
		return name + " (" + m.plan.Industry + ")"
	}
	return name
}

// detail renders the fields of the selected section.
func (m model) detail() string {
	if m.selectedIdx >= len(m.sections) {
		return "Nothing to display."
	}
	section := m.sections[m.selectedIdx]

	var b strings.Builder
	b.WriteString(titleStyle.Render(section.Title))
	for _, f := range section.Fields {
		label := f.Key
		if spec, ok := core.LookupField(section.Key, f.Key); ok && len(spec.Labels) > 0 {
			label = spec.Labels[0]
		}
		b.WriteString("\n\n" + labelStyle.Render(label) + "\n")
		if f.Value == "" || f.Value == core.NotSpecified {
			b.WriteString(missingStyle.Render(core.NotSpecified))
		} else {
			b.WriteString(f.Value)
		}
	}
	return b.String()
}

// Run starts the Bubble Tea viewer for plan.
func Run(plan core.PlanResult) error {
	p := tea.NewProgram(NewModel(plan), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
