package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dd0wney/cluso-enigma/pkg/session"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	windowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	rotorNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Align(lipgloss.Center)

	lampOnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#FFFF00")).
			Padding(0, 1)

	lampOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Padding(0, 1)

	tapeStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 1)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type mode int

const (
	settingMode mode = iota
	typingMode
)

type keyMap struct {
	Tab   key.Binding
	Enter key.Binding
	Reset key.Binding
	Clear key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "setting/keyboard"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply setting"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reset rotors"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear tapes"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Reset, k.Clear, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter},
		{k.Reset, k.Clear, k.Quit},
	}
}

type model struct {
	processor    *session.Processor
	settingInput textinput.Model
	help         help.Model
	keys         keyMap
	mode         mode
	width        int
	height       int

	input  []rune
	output []rune
	lamp   rune

	message    string
	messageErr bool
}

func initialModel(p *session.Processor, placeholder string) model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "setting> "
	ti.CharLimit = 200
	ti.Width = 60
	ti.Focus()

	return model{
		processor:    p,
		settingInput: ti,
		help:         help.New(),
		keys:         keys,
		mode:         settingMode,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.toggleMode()
			return m, nil

		case key.Matches(msg, m.keys.Reset):
			m.reset()
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			m.input, m.output, m.lamp = nil, nil, 0
			return m, nil

		case m.mode == settingMode && key.Matches(msg, m.keys.Enter):
			m.applySetting()
			return m, nil

		case m.mode == typingMode:
			if msg.Type == tea.KeyRunes {
				for _, r := range msg.Runes {
					m.press(r)
				}
			}
			return m, nil
		}
	}

	if m.mode == settingMode {
		m.settingInput, cmd = m.settingInput.Update(msg)
	}
	return m, cmd
}

func (m *model) toggleMode() {
	if m.mode == settingMode {
		if _, ok := m.processor.Setting(); !ok {
			m.fail("apply a setting line first")
			return
		}
		m.mode = typingMode
		m.settingInput.Blur()
		return
	}
	m.mode = settingMode
	m.settingInput.Focus()
}

func (m *model) applySetting() {
	line := strings.TrimSpace(m.settingInput.Value())
	if line == "" {
		line = m.settingInput.Placeholder
	}
	s, err := m.processor.Setup(line)
	if err != nil {
		m.fail(err.Error())
		return
	}
	m.input, m.output, m.lamp = nil, nil, 0
	m.message = fmt.Sprintf("Machine set to %s", s.String())
	m.messageErr = false
	m.mode = typingMode
	m.settingInput.Blur()
}

// reset puts the rotors back to the positions of the last setting line.
func (m *model) reset() {
	s, ok := m.processor.Setting()
	if !ok {
		m.fail("no setting to reset to")
		return
	}
	if _, err := m.processor.Setup(s.String()); err != nil {
		m.fail(err.Error())
		return
	}
	m.message = "Rotors reset to " + s.Positions
	m.messageErr = false
}

// press converts one key. Lower-case letters are folded to upper case when
// only the upper-case symbol is in the alphabet.
func (m *model) press(r rune) {
	if unicode.IsSpace(r) {
		return
	}
	a := m.processor.Machine().Alphabet()
	if !a.Contains(r) && a.Contains(unicode.ToUpper(r)) {
		r = unicode.ToUpper(r)
	}
	out, err := m.processor.Convert(string(r))
	if err != nil {
		m.fail(err.Error())
		return
	}
	lamp := []rune(out)[0]
	m.input = append(m.input, r)
	m.output = append(m.output, lamp)
	m.lamp = lamp
	m.message = ""
}

func (m *model) fail(msg string) {
	m.message = msg
	m.messageErr = true
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Enigma - Interactive Rotor Machine"))
	s.WriteString("\n")

	var body strings.Builder
	body.WriteString(m.renderRotors())
	body.WriteString("\n\n")
	body.WriteString(m.renderLamp())
	body.WriteString("\n\n")
	body.WriteString(m.renderTapes())
	body.WriteString("\n\n")
	body.WriteString(m.settingInput.View())
	s.WriteString(contentStyle.Render(body.String()))

	if m.message != "" {
		s.WriteString("\n\n  ")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return s.String()
}

func (m model) renderRotors() string {
	machine := m.processor.Machine()
	if !machine.Configured() {
		return rotorNameStyle.Render("no rotors inserted")
	}

	names := machine.Names()
	positions := []rune(machine.Positions())
	columns := make([]string, 0, len(names))
	for k, name := range names {
		window := "·"
		if k > 0 {
			window = string(positions[k-1])
		}
		col := lipgloss.JoinVertical(lipgloss.Center,
			windowStyle.Render(window),
			rotorNameStyle.Render(name),
		)
		columns = append(columns, col)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m model) renderLamp() string {
	a := m.processor.Machine().Alphabet().String()
	var b strings.Builder
	for _, r := range a {
		if r == m.lamp {
			b.WriteString(lampOnStyle.Render(string(r)))
		} else {
			b.WriteString(lampOffStyle.Render(string(r)))
		}
	}
	return b.String()
}

func (m model) renderTapes() string {
	in := tapeStyle.Render("in  " + session.GroupFive(string(m.input)))
	out := tapeStyle.Render("out " + session.GroupFive(string(m.output)))
	return lipgloss.JoinVertical(lipgloss.Left, in, out)
}
