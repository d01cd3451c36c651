// Package tui renders a single flow as an interactive terminal form.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hnrobert/envportal/internal/flow"
)

// Model drives one controller. Typing is a field edit, enter is the keyboard
// confirmation and ctrl+s is the explicit submit.
type Model struct {
	theme  Theme
	ctrl   *flow.Controller
	inputs []textinput.Model
	focus  int
}

func NewModel(ctrl *flow.Controller) Model {
	def := ctrl.Definition()
	inputs := make([]textinput.Model, len(def.Fields))
	for i, f := range def.Fields {
		ti := textinput.New()
		ti.Placeholder = f.Placeholder
		ti.Prompt = "› "
		ti.CharLimit = 0
		if f.Secret() {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		inputs[i] = ti
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return Model{theme: DefaultTheme(), ctrl: ctrl, inputs: inputs}
}

// Run blocks until the user quits and returns the last snapshot.
func Run(ctrl *flow.Controller) (flow.Snapshot, error) {
	p := tea.NewProgram(NewModel(ctrl))
	if _, err := p.Run(); err != nil {
		return flow.Snapshot{}, err
	}
	return ctrl.Snapshot(), nil
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down":
			return m, m.moveFocus(1)
		case "shift+tab", "up":
			return m, m.moveFocus(-1)
		case "enter":
			m.ctrl.KeyPress(flow.KeyEvent{KeyCode: flow.EnterKeyCode, Which: flow.EnterKeyCode})
			return m, nil
		case "ctrl+s":
			m.ctrl.Activate()
			return m, nil
		}
	}
	if len(m.inputs) == 0 {
		return m, nil
	}

	in := &m.inputs[m.focus]
	before := in.Value()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	if after := in.Value(); after != before {
		m.ctrl.SetField(m.ctrl.Definition().Fields[m.focus].ID, after)
	}
	return m, cmd
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

func (m Model) View() string {
	def := m.ctrl.Definition()
	snap := m.ctrl.Snapshot()

	var b strings.Builder
	if def.Intro != "" {
		b.WriteString(m.theme.Subtitle.Render(def.Intro))
		b.WriteString("\n\n")
	}
	for i, f := range def.Fields {
		label := f.Label
		if def.IsRequired(f.ID) {
			label += " *"
		}
		b.WriteString(m.theme.Label.Render(label))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}
	if snap.Message != "" {
		style := m.theme.OK
		if snap.IsError {
			style = m.theme.Error
		}
		b.WriteString(style.Render(snap.Message))
		b.WriteString("\n\n")
	}
	if snap.SubmitDisabled {
		b.WriteString(m.theme.Disabled.Render(def.SubmitLabel))
	} else {
		b.WriteString(m.theme.Button.Render(def.SubmitLabel))
	}

	help := m.theme.Help.Render("tab/shift+tab move • enter submit • ctrl+s submit • esc quit")
	return lipgloss.NewStyle().Padding(1, 2).Render(
		m.theme.Header.Render(def.Title) + "\n" + m.theme.Card.Render(b.String()) + "\n" + help,
	)
}
