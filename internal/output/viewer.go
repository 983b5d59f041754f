package output

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/pareto/internal/pareto"
	"github.com/blackwell-systems/pareto/internal/render"
)

var helpStyle = lipgloss.NewStyle().Faint(true)

const helpText = "↑/↓ scroll · q quit"

// RunViewer shows the terminal chart full-screen until the user quits.
func RunViewer(t pareto.Table, label string, opts render.Options) error {
	program := tea.NewProgram(newViewer(t, label, opts), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

type viewer struct {
	table    pareto.Table
	label    string
	opts     render.Options
	viewport viewport.Model
	ready    bool
}

func newViewer(t pareto.Table, label string, opts render.Options) viewer {
	return viewer{table: t, label: label, opts: opts}
}

func (m viewer) Init() tea.Cmd {
	return nil
}

func (m viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		// One line for the help footer.
		height := max(msg.Height-1, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.viewport.SetContent(RenderParetoChart(m.table, m.label, m.opts, msg.Width))
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m viewer) View() string {
	if !m.ready {
		return "Loading chart..."
	}
	return m.viewport.View() + "\n" + helpStyle.Render(helpText)
}
