package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/aetheria/internal/core"
	"github.com/vovakirdan/aetheria/internal/game"
	"github.com/vovakirdan/aetheria/internal/interaction"
)

// Archive layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the achievements sidebar
	sidebarWidth       = 30
)

// ArchiveKeyMap defines the key bindings for the archive screen.
type ArchiveKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ArchiveKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ArchiveKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultArchiveKeyMap returns default key bindings.
func DefaultArchiveKeyMap() ArchiveKeyMap {
	return ArchiveKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("tab", "esc"),
			key.WithHelp("tab/esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ArchiveModel lists every artifact with its discovery status and distance.
type ArchiveModel struct {
	table        table.Model
	help         help.Model
	keys         ArchiveKeyMap
	rows         int
	width        int
	height       int
	achievements []string
	closed       bool
	quitting     bool
}

// NewArchiveModel creates an archive view sized to width x height.
func NewArchiveModel(width, height int) ArchiveModel {
	h := help.New()
	h.ShowAll = false
	m := ArchiveModel{
		help:   h,
		keys:   DefaultArchiveKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ArchiveModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Artifact", Width: 24},
		{Title: "Status", Width: 11},
		{Title: "Dist", Width: 6},
	}

	tableWidth := m.width - 4
	if m.width >= minWidthForSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if extra := tableWidth - 53; extra > 0 {
		columns[1].Width += min(extra, 16)
	}

	height := m.height - 8
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

// Refresh reloads rows from the world.
func (m *ArchiveModel) Refresh(w *game.World) {
	st := w.State()
	all := w.Catalog().All()
	rows := make([]table.Row, 0, len(all))
	for _, a := range all {
		rows = append(rows, table.Row{
			string(a.ID),
			a.Title,
			artifactStatus(w.ArtifactState(a.ID), w.IsDiscovered(a.ID)),
			fmt.Sprintf("%.1f", core.DistanceXZ(st.Position, a.Position)),
		})
	}
	m.table.SetRows(rows)
	m.rows = len(rows)
	m.achievements = st.Progress.Achievements
	m.closed = false
}

func artifactStatus(state interaction.State, discovered bool) string {
	switch {
	case state == interaction.Open:
		return "OPEN"
	case state == interaction.InRange:
		return "IN RANGE"
	case discovered:
		return "RECOVERED"
	default:
		return "UNKNOWN"
	}
}

// Init initializes the archive model.
func (m ArchiveModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the archive.
func (m ArchiveModel) Update(msg tea.Msg) (ArchiveModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.closed = true
			return m, nil
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		rows := m.table.Rows()
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(rows)
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// View renders the archive.
func (m ArchiveModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
		Render("DATA ARCHIVE")
	b.WriteString(centerText(title, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.width >= minWidthForSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableRendered))
	} else {
		b.WriteString(tableRendered)
	}

	b.WriteString("\n")
	b.WriteString(theme.HUDControls.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ArchiveModel) renderSidebar() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Achievements\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")
	if len(m.achievements) == 0 {
		sb.WriteString(theme.PanelHint.Render("none yet"))
	}
	for _, a := range m.achievements {
		sb.WriteString(theme.MenuItemActive.Render(strings.TrimPrefix(a, "ACHIEVEMENT: ")))
		sb.WriteString("\n")
	}
	return style.Render(sb.String())
}

// renderTableContent renders the table or empty message.
func (m ArchiveModel) renderTableContent() string {
	if m.rows == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("The catalog is empty.")
	}
	return m.table.View()
}

// Closed reports whether the user asked to return to the map.
func (m ArchiveModel) Closed() bool {
	return m.closed
}

// IsQuitting returns true if the user asked to quit.
func (m ArchiveModel) IsQuitting() bool {
	return m.quitting
}
