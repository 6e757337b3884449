package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/aetheria/internal/core"
	"github.com/vovakirdan/aetheria/internal/prefs"
	"github.com/vovakirdan/aetheria/internal/session"
)

// SelectKeyMap defines the key bindings for character selection.
type SelectKeyMap struct {
	PrevAvatar key.Binding
	NextAvatar key.Binding
	PrevColor  key.Binding
	NextColor  key.Binding
	Confirm    key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SelectKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevAvatar, k.NextAvatar, k.PrevColor, k.NextColor, k.Confirm, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k SelectKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.PrevAvatar, k.NextAvatar}, {k.PrevColor, k.NextColor}, {k.Confirm, k.Quit}}
}

// DefaultSelectKeyMap returns default key bindings.
func DefaultSelectKeyMap() SelectKeyMap {
	return SelectKeyMap{
		PrevAvatar: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←", "prev avatar"),
		),
		NextAvatar: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→", "next avatar"),
		),
		PrevColor: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑", "prev color"),
		),
		NextColor: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓", "next color"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "enter the void"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SelectModel is the character selection screen. Confirming persists the
// choice to the preference store.
type SelectModel struct {
	colors       []core.NamedColor
	avatarCursor int
	colorCursor  int
	width        int
	height       int
	store        *prefs.Store
	keys         SelectKeyMap
	help         help.Model
	saveErr      error
	confirmed    bool
	quitting     bool
}

// NewSelectModel creates a selection screen starting at the stored
// preferences. A stored color outside the palette is offered first.
func NewSelectModel(store *prefs.Store, width, height int) SelectModel {
	current := prefs.Defaults()
	if store != nil {
		current = store.Get()
	}

	colors := append([]core.NamedColor(nil), core.Palette...)
	colorCursor := -1
	for i, c := range colors {
		if c.Hex == current.Color {
			colorCursor = i
			break
		}
	}
	if colorCursor < 0 {
		colors = append([]core.NamedColor{{Name: "CUSTOM", Hex: current.Color}}, colors...)
		colorCursor = 0
	}

	avatarCursor := 0
	for i, a := range core.Avatars {
		if a.Kind == current.Avatar {
			avatarCursor = i
			break
		}
	}

	return SelectModel{
		colors:       colors,
		avatarCursor: avatarCursor,
		colorCursor:  colorCursor,
		width:        width,
		height:       height,
		store:        store,
		keys:         DefaultSelectKeyMap(),
		help:         help.New(),
	}
}

// Init initializes the selection model.
func (m SelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the selection screen.
func (m SelectModel) Update(msg tea.Msg) (SelectModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// handleKey processes keyboard input for selection.
func (m SelectModel) handleKey(msg tea.KeyMsg) (SelectModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true

	case key.Matches(msg, m.keys.PrevAvatar):
		m.avatarCursor = wrapIndex(m.avatarCursor-1, len(core.Avatars))

	case key.Matches(msg, m.keys.NextAvatar):
		m.avatarCursor = wrapIndex(m.avatarCursor+1, len(core.Avatars))

	case key.Matches(msg, m.keys.PrevColor):
		m.colorCursor = wrapIndex(m.colorCursor-1, len(m.colors))

	case key.Matches(msg, m.keys.NextColor):
		m.colorCursor = wrapIndex(m.colorCursor+1, len(m.colors))

	case key.Matches(msg, m.keys.Confirm):
		m.saveErr = m.save()
		m.confirmed = true
	}
	return m, nil
}

// save persists the selection. A failed write does not block play.
func (m SelectModel) save() error {
	if m.store == nil {
		return nil
	}
	p := m.Profile()
	if err := m.store.SetAvatar(string(p.Avatar)); err != nil {
		return err
	}
	return m.store.SetColor(string(p.Color))
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// View renders the selection screen.
func (m SelectModel) View() string {
	if m.quitting {
		return ""
	}

	avatar := core.Avatars[m.avatarCursor]
	color := m.colors[m.colorCursor]
	accent := Accent(theme.MenuItemActive, color.Hex)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(Accent(theme.MenuTitle, color.Hex).Render("A E T H E R I A"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(theme.MenuDescription.Render("Select your avatar"), m.width))
	b.WriteString("\n\n")

	// Avatar carousel
	names := make([]string, len(core.Avatars))
	for i, a := range core.Avatars {
		if i == m.avatarCursor {
			names[i] = accent.Render("[ " + a.Name + " ]")
		} else {
			names[i] = theme.MenuItemNormal.Render("  " + a.Name + "  ")
		}
	}
	b.WriteString(centerText("◄ "+strings.Join(names, " ")+" ►", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(theme.MenuDescription.Render(avatar.Description), m.width))
	b.WriteString("\n\n")

	// Palette
	for i, c := range m.colors {
		cursor := "  "
		style := theme.MenuItemNormal
		if i == m.colorCursor {
			cursor = "> "
			style = Accent(theme.MenuItemActive, c.Hex)
		}
		swatch := Accent(lipgloss.NewStyle(), c.Hex).Render("██")
		line := fmt.Sprintf("%s%s %s", cursor, swatch, style.Render(fmt.Sprintf("%-12s %s", c.Name, c.Hex)))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.saveErr != nil {
		b.WriteString("\n")
		b.WriteString(centerText(theme.StatusConnecting.Render("could not save preferences: "+m.saveErr.Error()), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(theme.HUDControls.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Profile returns the profile under the cursors.
func (m SelectModel) Profile() session.Profile {
	return session.Profile{
		Color:  m.colors[m.colorCursor].Hex,
		Avatar: core.Avatars[m.avatarCursor].Kind,
	}
}

// Confirmed reports whether the player confirmed a selection.
func (m SelectModel) Confirmed() bool {
	return m.confirmed
}

// SaveErr returns the error from persisting the selection, if any.
func (m SelectModel) SaveErr() error {
	return m.saveErr
}

// IsQuitting returns true if the user requested to quit.
func (m SelectModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
