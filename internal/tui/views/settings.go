package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/battlestats/internal/session"
)

// APIKeySavedMsg is sent after the API key has been persisted.
type APIKeySavedMsg struct {
	Key string
	Err error
}

// SettingsModel is the settings view model.
type SettingsModel struct {
	session   *session.Session
	configDir string
	keyInput  textinput.Model
	saved     bool
	err       error

	width  int
	height int
}

// NewSettingsModel creates a new settings model with the stored key prefilled.
func NewSettingsModel(s *session.Session, configDir, apiKey string) SettingsModel {
	ti := textinput.New()
	ti.Placeholder = "Torn API key"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 64
	ti.Width = 32
	ti.SetValue(apiKey)

	return SettingsModel{
		session:   s,
		configDir: configDir,
		keyInput:  ti,
	}
}

// SetSize updates the view dimensions.
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Focus gives the key field keyboard focus.
func (m *SettingsModel) Focus() tea.Cmd {
	return m.keyInput.Focus()
}

// Blur removes keyboard focus.
func (m *SettingsModel) Blur() {
	m.keyInput.Blur()
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			key := strings.TrimSpace(m.keyInput.Value())
			s := m.session
			return m, func() tea.Msg {
				return APIKeySavedMsg{Key: key, Err: s.SetAPIKey(key)}
			}
		case "ctrl+r":
			// reveal or hide the key
			if m.keyInput.EchoMode == textinput.EchoPassword {
				m.keyInput.EchoMode = textinput.EchoNormal
			} else {
				m.keyInput.EchoMode = textinput.EchoPassword
			}
			return m, nil
		}
		m.saved = false

	case APIKeySavedMsg:
		m.err = msg.Err
		m.saved = msg.Err == nil
		return m, nil
	}

	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return m, cmd
}

// View renders the settings view.
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n")
	b.WriteString(pathStyle.Render("Config: " + m.configDir))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("API key"))
	b.WriteString(m.keyInput.View())
	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.saved:
		b.WriteString(successStyle.Render("API key saved"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(divider(m.width))
	b.WriteString("\n")

	cfg := m.session.Config
	rows := [][2]string{
		{"API", cfg.API.BaseURL},
		{"Profiles", cfg.API.ProfileURL},
		{"Delay", cfg.Lookup.Delay.String()},
		{"Concurrency", limitString(cfg.Lookup.Concurrency)},
		{"Timeout", timeoutString(cfg.Lookup.Timeout.String(), cfg.Lookup.Timeout == 0)},
		{"Export dir", cfg.Export.Dir},
		{"Date layout", cfg.Export.DateLayout},
	}
	for _, r := range rows {
		b.WriteString(labelStyle.Render(r[0]))
		b.WriteString(valueStyle.Render(r[1]))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter: save key • ctrl+r: show/hide key"))
	return b.String()
}

func limitString(n int) string {
	if n <= 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%d", n)
}

func timeoutString(s string, none bool) string {
	if none {
		return "none"
	}
	return s
}
