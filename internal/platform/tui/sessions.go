package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// maxSessions is how many recent sessions the list loads.
const maxSessions = 100

// SessionsKeyMap defines the key bindings for the session list.
type SessionsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SessionsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k SessionsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select}, {k.Delete, k.Quit}}
}

// DefaultSessionsKeyMap returns default key bindings.
func DefaultSessionsKeyMap() SessionsKeyMap {
	return SessionsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SessionsModel lists recorded sessions in a table.
type SessionsModel struct {
	store    *storage.Store
	sessions []storage.SessionSummary
	table    table.Model
	help     help.Model
	keys     SessionsKeyMap
	width    int
	height   int
	selected string
	err      error
	quitting bool
}

// NewSessionsModel creates the list and loads the most recent sessions.
func NewSessionsModel(store *storage.Store, width, height int) SessionsModel {
	m := SessionsModel{
		store:  store,
		help:   help.New(),
		keys:   DefaultSessionsKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *SessionsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Frontend", Width: 8},
		{Title: "Collision", Width: 13},
		{Title: "Jump", Width: 8},
		{Title: "Ticks", Width: 7},
		{Title: "Events", Width: 6},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-6, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *SessionsModel) load() {
	if m.store == nil {
		m.sessions = nil
		m.updateRows()
		return
	}
	m.sessions, m.err = m.store.RecentSessions(maxSessions)
	m.updateRows()
}

func (m *SessionsModel) updateRows() {
	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		rows[i] = SessionRow(s)
	}
	m.table.SetRows(rows)
}

// SessionRow formats a session summary as a table row.
func SessionRow(s storage.SessionSummary) table.Row {
	id := s.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return table.Row{
		id,
		s.Frontend,
		s.Policy,
		s.JumpRule,
		fmt.Sprintf("%d", s.Ticks),
		fmt.Sprintf("%d", s.EventCount),
		s.CreatedAt.Local().Format("Jan 02 15:04"),
	}
}

// Init initializes the model.
func (m SessionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the session list.
func (m SessionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if i := m.table.Cursor(); i >= 0 && i < len(m.sessions) {
				m.selected = m.sessions[i].ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if i := m.table.Cursor(); i >= 0 && i < len(m.sessions) && m.store != nil {
				m.err = m.store.DeleteSession(m.sessions[i].ID)
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.updateRows()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the full id of the session chosen for replay, if any.
func (m SessionsModel) Selected() string {
	return m.selected
}

// View renders the session list.
func (m SessionsModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(fmt.Sprintf("RECORDED SESSIONS (%d)", len(m.sessions))))
	b.WriteString("\n\n")

	if len(m.sessions) == 0 {
		b.WriteString("No sessions recorded yet. Run 'platformer play' first.\n")
	} else {
		tableStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
		b.WriteString(tableStyle.Render(m.table.View()))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// RunSessions shows the session list and returns the id chosen for replay,
// or "" when the user quit.
func RunSessions(store *storage.Store, width, height int) (string, error) {
	p := tea.NewProgram(NewSessionsModel(store, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(SessionsModel); ok {
		return m.Selected(), nil
	}
	return "", nil
}
