package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/battlestats/internal/session"
	"github.com/f3rmion/battlestats/internal/tui/views"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewPaste ViewType = iota
	ViewTable
	ViewFilePicker
	ViewSettings
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	View     ViewType
	Shortcut string
}

type fileLoadErrMsg struct {
	err error
}

// AppModel is the main TUI model
type AppModel struct {
	session *session.Session

	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	// Sub-models (views)
	pasteView      views.PasteModel
	tableView      views.TableModel
	filePickerView views.FilePickerModel
	settingsView   views.SettingsModel

	loadErr error

	// Help overlay
	showHelp bool
}

// NewApp creates the TUI application. apiKey is the stored Torn API key, if
// any, and configDir is shown in the settings view.
func NewApp(s *session.Session, configDir, apiKey string) AppModel {
	menuItems := []MenuItem{
		{Label: "Paste", View: ViewPaste, Shortcut: "1"},
		{Label: "Table", View: ViewTable, Shortcut: "2"},
		{Label: "Open File", View: ViewFilePicker, Shortcut: "3"},
		{Label: "Settings", View: ViewSettings, Shortcut: "4"},
	}

	tableView := views.NewTableModel(s)
	tableView.SetAPIKey(apiKey)

	return AppModel{
		session:      s,
		sidebarWidth: 18,
		currentView:  ViewPaste,
		menuItems:    menuItems,

		pasteView:      views.NewPasteModel(s),
		tableView:      tableView,
		filePickerView: views.NewFilePickerModel(""),
		settingsView:   views.NewSettingsModel(s, configDir, apiKey),
	}
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			return m, m.setSidebarActive(!m.sidebarActive)
		case "esc":
			if m.sidebarActive {
				return m, tea.Quit
			}
			return m, m.setSidebarActive(true)
		}

		// Sidebar navigation when active. Plain keys belong to the
		// content view otherwise, so the paste area can take any text.
		if m.sidebarActive {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
			case "1", "2", "3", "4":
				return m, m.switchView(ViewType(msg.String()[0] - '1'))
			case "j", "down":
				if m.selectedMenu < len(m.menuItems)-1 {
					m.selectedMenu++
				}
			case "k", "up":
				if m.selectedMenu > 0 {
					m.selectedMenu--
				}
			case "enter", "l", "right":
				return m, m.switchView(m.menuItems[m.selectedMenu].View)
			}
			return m, nil
		}

		var cmd tea.Cmd
		switch m.currentView {
		case ViewPaste:
			m.pasteView, cmd = m.pasteView.Update(msg)
		case ViewTable:
			m.tableView, cmd = m.tableView.Update(msg)
		case ViewFilePicker:
			m.filePickerView, cmd = m.filePickerView.Update(msg)
		case ViewSettings:
			m.settingsView, cmd = m.settingsView.Update(msg)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth := m.width - m.sidebarWidth - 4
		contentHeight := m.height - 2

		m.pasteView.SetSize(contentWidth, contentHeight)
		m.tableView.SetSize(contentWidth, contentHeight)
		m.filePickerView.SetSize(contentWidth, contentHeight)
		m.settingsView.SetSize(contentWidth, contentHeight)
		return m, nil

	case views.ParsedMsg:
		m.loadErr = nil
		m.tableView.SetTable(msg.Table, msg.Source, msg.Skipped)
		return m, m.switchView(ViewTable)

	case views.FileSelectedMsg:
		return m, m.loadFile(msg.Path)

	case fileLoadErrMsg:
		m.loadErr = msg.err
		return m, nil

	case views.APIKeySavedMsg:
		if msg.Err == nil {
			m.tableView.SetAPIKey(msg.Key)
		}
		var cmd tea.Cmd
		m.settingsView, cmd = m.settingsView.Update(msg)
		return m, cmd
	}

	// Everything else (cursor blinks, clipboard reads, export progress)
	// goes to every view. Exports keep running while another view is shown.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.pasteView, cmd = m.pasteView.Update(msg)
	cmds = append(cmds, cmd)
	m.tableView, cmd = m.tableView.Update(msg)
	cmds = append(cmds, cmd)
	m.settingsView, cmd = m.settingsView.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *AppModel) switchView(v ViewType) tea.Cmd {
	m.currentView = v
	for i, item := range m.menuItems {
		if item.View == v {
			m.selectedMenu = i
			break
		}
	}
	return m.setSidebarActive(false)
}

// setSidebarActive moves keyboard focus between the sidebar and the
// current view.
func (m *AppModel) setSidebarActive(active bool) tea.Cmd {
	m.sidebarActive = active
	m.pasteView.Blur()
	m.tableView.Blur()
	m.settingsView.Blur()
	if active {
		return nil
	}

	switch m.currentView {
	case ViewPaste:
		return m.pasteView.Focus()
	case ViewTable:
		m.tableView.Focus()
	case ViewSettings:
		return m.settingsView.Focus()
	}
	return nil
}

// loadFile reads a report or CSV export asynchronously
func (m AppModel) loadFile(path string) tea.Cmd {
	s := m.session
	return func() tea.Msg {
		t, err := s.LoadFile(path)
		if t == nil {
			return fileLoadErrMsg{err: err}
		}
		return views.ParsedMsg{Table: t, Skipped: err, Source: path}
	}
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	sidebar := m.renderSidebar()

	var content string
	switch m.currentView {
	case ViewPaste:
		content = m.pasteView.View()
	case ViewTable:
		content = m.tableView.View()
	case ViewFilePicker:
		content = m.filePickerView.View()
	case ViewSettings:
		content = m.settingsView.View()
	}
	if m.loadErr != nil {
		content += "\n" + ErrorStyle.Render("Error: "+m.loadErr.Error())
	}

	contentWidth := m.width - m.sidebarWidth - 4
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainContent)
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	var items []string

	items = append(items, SidebarTitleStyle.Render(" BATTLE STATS "))
	items = append(items, "")

	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Label

		style := SidebarItemStyle
		if i == m.selectedMenu {
			if m.sidebarActive {
				style = SidebarItemActiveStyle
			} else {
				// Current view but not focused
				style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
			}
		}
		items = append(items, style.Render(label))
	}

	usedHeight := len(items) + 4
	for i := 0; i < m.height-usedHeight-2; i++ {
		items = append(items, "")
	}

	help := "tab Menu"
	if m.sidebarActive {
		help = "? Help  q Quit"
	}
	items = append(items, SidebarHelpStyle.Render(help))

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	line := func(key, desc string) string {
		return HelpKeyStyle.Render(key) + HelpDescStyle.Render(desc) + "\n"
	}

	helpText := HelpTitleStyle.Render("Battle Stats") + "\n\n"

	helpText += HelpSectionStyle.Render("Menu") + "\n"
	helpText += line("tab/esc", "Toggle menu focus")
	helpText += line("1-4", "Switch views")
	helpText += line("q", "Quit")
	helpText += line("ctrl+c", "Quit from anywhere")

	helpText += HelpSectionStyle.Render("Paste View") + "\n"
	helpText += line("ctrl+s", "Parse pasted text")
	helpText += line("ctrl+l", "Paste from clipboard and parse")
	helpText += line("ctrl+x", "Clear")

	helpText += HelpSectionStyle.Render("Table View") + "\n"
	helpText += line("j/k ↑/↓", "Move selection")
	helpText += line("c", "Export generic CSV")
	helpText += line("y", "Export YATA CSV")

	helpText += HelpSectionStyle.Render("File Picker") + "\n"
	helpText += line("enter", "Open file/enter dir")
	helpText += line("backspace", "Go to parent dir")
	helpText += line("~", "Go to home dir")

	helpText += HelpSectionStyle.Render("Settings") + "\n"
	helpText += line("enter", "Save API key")
	helpText += line("ctrl+r", "Show/hide API key")

	helpText += "\n" + lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Render("Press any key to close")

	helpBox := HelpBoxStyle.Render(helpText)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpBox)
}
