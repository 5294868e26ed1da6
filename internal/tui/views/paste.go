package views

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/battlestats/internal/clipboard"
	"github.com/f3rmion/battlestats/internal/session"
	"github.com/f3rmion/battlestats/internal/stats"
)

// ParsedMsg carries a freshly parsed and sorted table.
type ParsedMsg struct {
	Table   *stats.Table
	Skipped error // entries that could not be read, if any
	Source  string
}

var errNoClipboard = errors.New("no clipboard tool found (install xclip or xsel)")

type clipboardMsg struct {
	text string
	err  error
}

// PasteModel is the view where spy reports are pasted.
type PasteModel struct {
	session   *session.Session
	input     textarea.Model
	clipboard bool // a clipboard tool is installed
	err       error

	width  int
	height int
}

// NewPasteModel creates a new paste view model.
func NewPasteModel(s *session.Session) PasteModel {
	ta := textarea.New()
	ta.Placeholder = "Paste stat blocks here, e.g. Alice [111] Strength: 1,000 Speed: N/A ..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Focus()

	return PasteModel{
		session:   s,
		input:     ta,
		clipboard: clipboard.Available(),
	}
}

// SetSize updates the view dimensions.
func (m *PasteModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.SetWidth(max(width-4, 20))
	m.input.SetHeight(max(height-10, 5))
}

// Focus gives the text area keyboard focus.
func (m *PasteModel) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur removes keyboard focus.
func (m *PasteModel) Blur() {
	m.input.Blur()
}

// Value returns the pasted text.
func (m PasteModel) Value() string {
	return m.input.Value()
}

// Update handles messages.
func (m PasteModel) Update(msg tea.Msg) (PasteModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			return m, m.parse()
		case "ctrl+l":
			if !m.clipboard {
				m.err = errNoClipboard
				return m, nil
			}
			return m, readClipboard
		case "ctrl+x":
			m.input.Reset()
			m.err = nil
			return m, nil
		}

	case clipboardMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.input.SetValue(msg.text)
		return m, m.parse()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m PasteModel) parse() tea.Cmd {
	text := m.input.Value()
	s := m.session
	return func() tea.Msg {
		table, err := s.Parse(text)
		return ParsedMsg{Table: table, Skipped: err, Source: "pasted text"}
	}
}

func readClipboard() tea.Msg {
	text, err := clipboard.Read()
	return clipboardMsg{text: text, err: err}
}

// View renders the paste view.
func (m PasteModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Paste Stats"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Clipboard: " + m.err.Error()))
		b.WriteString("\n")
	}

	help := "ctrl+s: parse • ctrl+x: clear"
	if m.clipboard {
		help = "ctrl+s: parse • ctrl+l: paste from clipboard • ctrl+x: clear"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}
