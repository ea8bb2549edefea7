package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dd0wney/cluso-enigma/pkg/config"
	"github.com/dd0wney/cluso-enigma/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T, preset string) model {
	t.Helper()
	d, err := config.Preset(preset)
	require.NoError(t, err)
	p, err := session.New(d)
	require.NoError(t, err)
	return initialModel(p, placeholders[preset])
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(model)
	require.True(t, ok)
	return nm
}

func typeKeys(t *testing.T, m model, s string) model {
	t.Helper()
	for _, r := range s {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModel_ApplySettingAndType(t *testing.T) {
	m := newModel(t, "m4")
	m.settingInput.SetValue("* B Beta III IV I AXLE (HQ) (EX) (IP) (TR) (BY)")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.messageErr, m.message)
	assert.Equal(t, typingMode, m.mode)
	assert.Contains(t, m.message, "AXLE")

	m = typeKeys(t, m, "from his shoulder")
	assert.Equal(t, "FROMHISSHOULDER", string(m.input))
	assert.Equal(t, "QVPQSOKOILPUBKJ", string(m.output))
	assert.Equal(t, 'J', m.lamp)

	view := m.View()
	assert.Contains(t, view, "QVPQS OKOIL PUBKJ")
	assert.Contains(t, view, "Beta")
}

func TestModel_PlaceholderSetting(t *testing.T) {
	m := newModel(t, "m3")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.messageErr, m.message)

	m = typeKeys(t, m, "AAAAA")
	assert.Equal(t, "BDZGO", string(m.output))
	assert.Equal(t, "AAF", m.processor.Machine().Positions())
}

func TestModel_Reset(t *testing.T) {
	m := newModel(t, "m3")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeKeys(t, m, "AAAAA")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.False(t, m.messageErr, m.message)
	assert.Equal(t, "AAA", m.processor.Machine().Positions())

	m = typeKeys(t, m, "AAAAA")
	assert.Equal(t, "BDZGOBDZGO", string(m.output))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Empty(t, m.output)
	assert.Empty(t, m.input)
}

func TestModel_Errors(t *testing.T) {
	m := newModel(t, "m3")

	// Typing needs a setting first.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.messageErr)
	assert.Equal(t, settingMode, m.mode)

	m.settingInput.SetValue("* B I II IX AAA")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.messageErr)
	assert.Contains(t, m.message, "unknown rotor")
	assert.Equal(t, settingMode, m.mode)

	m.settingInput.SetValue("* B I II III AAA")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeKeys(t, m, "7")
	assert.True(t, m.messageErr)
	assert.Empty(t, m.output)
	assert.Equal(t, "AAA", m.processor.Machine().Positions(), "rejected keys must not step the rotors")
}

func TestModel_ToggleMode(t *testing.T) {
	m := newModel(t, "m3")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, typingMode, m.mode)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, settingMode, m.mode)
	assert.True(t, m.settingInput.Focused())

	// Runes go to the setting input, not the machine.
	m = typeKeys(t, m, "AB")
	assert.Equal(t, "AB", m.settingInput.Value())
	assert.Empty(t, m.output)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, typingMode, m.mode)
}

func TestModel_QuitAndResize(t *testing.T) {
	m := newModel(t, "m4")

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 100, m.width)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
