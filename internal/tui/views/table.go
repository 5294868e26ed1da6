package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/battlestats/internal/export"
	"github.com/f3rmion/battlestats/internal/session"
	"github.com/f3rmion/battlestats/internal/stats"
)

type exportDoneMsg struct {
	kind string
	path string
	err  error
}

type yataProgressMsg struct {
	done  int
	total int
}

type yataDoneMsg struct {
	path   string
	result export.YATAResult
	err    error
}

// chanProgress forwards export progress into the bubbletea loop.
type chanProgress chan tea.Msg

func (c chanProgress) Reset(total int) {
	c <- yataProgressMsg{done: 0, total: total}
}

func (c chanProgress) Advance(done, total int) {
	c <- yataProgressMsg{done: done, total: total}
}

func waitForYATA(c chanProgress) tea.Cmd {
	return func() tea.Msg {
		return <-c
	}
}

// TableModel shows the parsed table and runs exports.
type TableModel struct {
	session *session.Session
	data    *stats.Table
	source  string
	skipped int
	table   table.Model
	apiKey  string

	// Created on the first YATA export
	progress  *progress.Model
	exporting bool
	done      int
	total     int
	updates   chanProgress

	status string
	err    error

	width  int
	height int
}

// NewTableModel creates a new table view model.
func NewTableModel(s *session.Session) TableModel {
	t := table.New(
		table.WithColumns(columns(24)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(table.DefaultStyles())

	return TableModel{
		session: s,
		table:   t,
	}
}

func columns(nameWidth int) []table.Column {
	cols := make([]table.Column, len(stats.Columns))
	for i, title := range stats.Columns {
		w := 14
		if i == 0 {
			w = nameWidth
		}
		cols[i] = table.Column{Title: title, Width: w}
	}
	return cols
}

// SetTable replaces the table contents.
func (m *TableModel) SetTable(t *stats.Table, source string, skipped error) {
	m.data = t
	m.source = source
	m.skipped = countErrors(skipped)
	m.status = ""
	m.err = nil

	var rows []table.Row
	for _, r := range t.Rows() {
		rows = append(rows, table.Row(r.Cells))
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// SetAPIKey sets the key used for YATA exports.
func (m *TableModel) SetAPIKey(key string) {
	m.apiKey = key
}

// SetSize updates the view dimensions.
func (m *TableModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetColumns(columns(max(width-4-5*14-12, 16)))
	m.table.SetHeight(max(height-12, 3))
}

// Focus gives the table keyboard focus.
func (m *TableModel) Focus() {
	m.table.Focus()
}

// Blur removes keyboard focus.
func (m *TableModel) Blur() {
	m.table.Blur()
}

// Update handles messages.
func (m TableModel) Update(msg tea.Msg) (TableModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			if m.data == nil || m.exporting {
				return m, nil
			}
			m.status = "Exporting CSV..."
			m.err = nil
			return m, m.exportCSV()
		case "y":
			if m.data == nil || m.exporting {
				return m, nil
			}
			if m.apiKey == "" {
				m.err = fmt.Errorf("set an API key in Settings first")
				return m, nil
			}
			return m, m.startYATA()
		}

	case exportDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.status = fmt.Sprintf("%s export saved to %s", msg.kind, msg.path)
		return m, nil

	case yataProgressMsg:
		m.done = msg.done
		m.total = msg.total
		return m, waitForYATA(m.updates)

	case yataDoneMsg:
		m.exporting = false
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.status = fmt.Sprintf("YATA export saved to %s (%d rows)", msg.path, msg.result.Exported)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m TableModel) exportCSV() tea.Cmd {
	s := m.session
	t := m.data
	return func() tea.Msg {
		name, data := s.CSV(t)
		path, err := export.Save(data, "", s.Config.Export.Dir, name, nil)
		return exportDoneMsg{kind: "CSV", path: path, err: err}
	}
}

func (m *TableModel) startYATA() tea.Cmd {
	if m.progress == nil {
		p := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
		m.progress = &p
	}
	m.exporting = true
	m.done = 0
	m.total = m.data.Len()
	m.status = "Looking up profiles..."
	m.err = nil

	// Reset, one update per row and the final result.
	m.updates = make(chanProgress, m.data.Len()+2)

	s := m.session
	t := m.data
	key := m.apiKey
	updates := m.updates
	run := func() tea.Msg {
		res := s.YATA(context.Background(), t, key, updates)
		path, err := export.Save(res.CSV, "", s.Config.Export.Dir, s.FileName(), nil)
		updates <- yataDoneMsg{path: path, result: res, err: err}
		return nil
	}
	return tea.Batch(run, waitForYATA(updates))
}

// View renders the table view.
func (m TableModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Battle Stats"))
	b.WriteString("\n")

	if m.data == nil {
		b.WriteString(mutedStyle.Render("Nothing parsed yet. Paste stats and press ctrl+s, or open a file."))
		return b.String()
	}

	summary := fmt.Sprintf("%d rows from %s", m.data.Len(), m.source)
	if m.skipped > 0 {
		summary += fmt.Sprintf(" (%d skipped)", m.skipped)
	}
	b.WriteString(pathStyle.Render(summary))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if row := m.table.Cursor(); row >= 0 && row < m.data.Len() {
		id := m.data.Records()[row].ID
		b.WriteString(labelStyle.Render("Profile"))
		b.WriteString(linkStyle.Render(stats.ProfileLink(m.session.Config.API.ProfileURL, id)))
		b.WriteString("\n")
	}

	if m.progress != nil && (m.exporting || m.total > 0) {
		pct := 0.0
		if m.total > 0 {
			pct = float64(m.done) / float64(m.total)
		}
		b.WriteString(labelStyle.Render("Progress"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%d / %d ", m.done, m.total)))
		b.WriteString(m.progress.ViewAs(pct))
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	case m.exporting:
		b.WriteString(loadingStyle.Render(m.status))
	case m.status != "":
		b.WriteString(successStyle.Render(m.status))
	}
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("j/k: move • c: export CSV • y: export YATA"))
	return b.String()
}

func countErrors(err error) int {
	if err == nil {
		return 0
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return len(joined.Unwrap())
	}
	return 1
}
