package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/aetheria/internal/catalog"
	"github.com/vovakirdan/aetheria/internal/config"
	"github.com/vovakirdan/aetheria/internal/core"
	"github.com/vovakirdan/aetheria/internal/game"
	"github.com/vovakirdan/aetheria/internal/prefs"
	"github.com/vovakirdan/aetheria/internal/session"
)

// maxFrameSeconds caps dt after a stall so the avatar cannot jump.
const maxFrameSeconds = 0.1

// ConnectedMsg reports that the session join attempt has resolved.
type ConnectedMsg struct {
	Result session.Result
}

// roomEventMsg carries a roster change to the game model.
type roomEventMsg struct {
	event session.RoomEvent
}

// roster is implemented by channels that report membership changes.
type roster interface {
	Events() <-chan session.RoomEvent
	Done() <-chan struct{}
}

// waitForRoomEvent returns a command that waits for the next roster event.
func waitForRoomEvent(r roster) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-r.Events():
			return roomEventMsg{event: evt}
		case <-r.Done():
			return nil
		}
	}
}

// connectCmd makes the single join attempt off the update loop.
func connectCmd(w *game.World, j session.Joiner) tea.Cmd {
	return func() tea.Msg {
		return ConnectedMsg{Result: w.Connect(context.Background(), j)}
	}
}

// GameModel is the Bubble Tea model for the explorable world.
type GameModel struct {
	world     *game.World
	joiner    session.Joiner
	logger    *log.Logger
	screen    *core.Screen
	config    core.RuntimeConfig
	keys      GameKeyMap
	keyMapper *KeyMapper
	hud       hud
	archive   ArchiveModel
	status    connStatus
	feed      []string
	now       func() time.Time
	lastTick  time.Time

	showArchive bool
	quitting    bool
}

// NewGameModel creates a game model for w. A nil joiner plays locally.
func NewGameModel(w *game.World, joiner session.Joiner, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	keys := DefaultGameKeyMap()
	status := statusLocal
	if joiner != nil {
		status = statusConnecting
	}
	return GameModel{
		world:     w,
		joiner:    joiner,
		logger:    logger,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		keys:      keys,
		keyMapper: NewKeyMapper(keys),
		hud:       newHUD(),
		archive:   NewArchiveModel(cfg.ScreenW, cfg.ScreenH),
		status:    status,
		now:       time.Now,
	}
}

// Init starts the tick loop and the join attempt.
func (m GameModel) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.joiner != nil {
		cmds = append(cmds, connectCmd(m.world, m.joiner))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.hud.help.Width = msg.Width
		var cmd tea.Cmd
		m.archive, cmd = m.archive.Update(msg)
		return m, cmd

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case ConnectedMsg:
		return m.handleConnected(msg.Result)

	case roomEventMsg:
		switch evt := msg.event.(type) {
		case session.PeerJoinedEvent:
			m.feed = appendFeed(m.feed, fmt.Sprintf("› signal %s entered the void", shortPeer(evt.Peer)))
		case session.PeerLeftEvent:
			m.feed = appendFeed(m.feed, fmt.Sprintf("› signal %s faded", shortPeer(evt.Peer)))
		}
		if ch, ok := m.world.Coordinator().Channel(); ok {
			if r, ok := ch.(roster); ok {
				return m, waitForRoomEvent(r)
			}
		}
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showArchive {
		var cmd tea.Cmd
		m.archive, cmd = m.archive.Update(msg)
		if m.archive.IsQuitting() {
			m.quitting = true
			return m, tea.Quit
		}
		if m.archive.Closed() {
			m.showArchive = false
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Archive):
		m.archive.Refresh(m.world)
		m.showArchive = true
		m.keyMapper.Release()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.hud.help.ShowAll = !m.hud.help.ShowAll
		return m, nil
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.Press(msg, m.now()) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick advances the world by the time since the previous tick.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := m.config.FrameSeconds()
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now
	dt = core.ClampF(dt, 0, maxFrameSeconds)

	frame := core.NewInputFrame()
	if !m.showArchive {
		frame = m.keyMapper.Frame(now)
	}
	res := m.world.Step(frame, dt)

	if m.logger != nil {
		if res.Opened != "" {
			m.logger.Debug("artifact opened", "artifact", res.Opened)
		}
		if res.Notified != nil {
			m.logger.Debug("notification", "title", res.Notified.Title)
		}
	}
	if m.showArchive {
		m.archive.Refresh(m.world)
	}

	return m, tickCmd(m.config.TickRate)
}

// handleConnected records the join outcome and starts the roster feed.
func (m GameModel) handleConnected(res session.Result) (tea.Model, tea.Cmd) {
	if res.Outcome != session.OutcomeReady {
		m.status = statusLocal
		m.feed = appendFeed(m.feed, "› link failed, exploring alone")
		return m, nil
	}

	m.status = statusOnline
	ch, ok := m.world.Coordinator().Channel()
	if !ok {
		return m, nil
	}
	m.feed = appendFeed(m.feed, fmt.Sprintf("› linked as %s", shortPeer(ch.Self())))
	if r, ok := ch.(roster); ok {
		return m, waitForRoomEvent(r)
	}
	return m, nil
}

func appendFeed(feed []string, line string) []string {
	feed = append(feed, line)
	if len(feed) > feedLines {
		feed = feed[len(feed)-feedLines:]
	}
	return feed
}

func shortPeer(id session.PeerID) string {
	s := string(id)
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// saveScreenshot saves the current map to a file.
func (m *GameModel) saveScreenshot() {
	dir := filepath.Join(os.Getenv("HOME"), ".aetheria", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("aetheria_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.showArchive {
		return m.archive.View()
	}

	st := m.world.State()
	width := m.config.ScreenW

	parts := []string{m.hud.header(st, m.status, m.world.Catalog().Len())}
	if n := m.hud.notice(st); n != "" {
		parts = append(parts, centerText(n, width))
	}
	if p := m.hud.prompt(st, m.world.Catalog()); p != "" {
		parts = append(parts, centerText(p, width))
	}
	footer := m.hud.footer(m.feed, m.keys, width)

	used := 0
	for _, p := range parts {
		used += lipgloss.Height(p)
	}
	mapH := m.config.ScreenH - used - lipgloss.Height(footer)

	switch {
	case st.HasActive && width < minWidthForSide:
		parts = append(parts, m.hud.panel(st.Active, width))
	case mapH > 0:
		mapW := width
		var side string
		if st.HasActive {
			side = m.hud.panel(st.Active, panelWidth)
			mapW = width - panelWidth - 1
		}
		m.screen.Resize(mapW, mapH)
		m.screen.Clear()
		drawMap(m.screen, core.NewRect(0, 0, mapW, mapH), m.world, st)
		body := RenderScreen(m.screen)
		if side != "" {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", side)
		}
		parts = append(parts, body)
	}

	parts = append(parts, footer)
	return strings.Join(parts, "\n")
}

// IsQuitting returns true if the user requested to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// World returns the model's world.
func (m GameModel) World() *game.World {
	return m.world
}

// AppOptions configures a full session: character selection, then play.
type AppOptions struct {
	Runtime core.RuntimeConfig
	Game    config.GameConfig
	Catalog *catalog.Catalog
	Prefs   *prefs.Store

	// Joiner connects to the shared room. Nil plays locally.
	Joiner session.Joiner

	// SkipSelect starts play directly with the stored preferences.
	SkipSelect bool

	Logger *log.Logger
}

// AppModel manages the session flow: select -> game.
type AppModel struct {
	opts     AppOptions
	sel      SelectModel
	game     *GameModel
	quitting bool
}

// NewAppModel creates the top-level model.
func NewAppModel(opts AppOptions) AppModel {
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	m := AppModel{
		opts: opts,
		sel:  NewSelectModel(opts.Prefs, opts.Runtime.ScreenW, opts.Runtime.ScreenH),
	}
	if opts.SkipSelect {
		gm := m.newGame(m.sel.Profile())
		m.game = &gm
	}
	return m
}

func (m AppModel) newGame(profile session.Profile) GameModel {
	w := game.NewWorld(game.Options{
		Config:  m.opts.Game,
		Catalog: m.opts.Catalog,
		Profile: profile,
		Logger:  m.opts.Logger,
	})
	return NewGameModel(w, m.opts.Joiner, m.opts.Runtime, m.opts.Logger)
}

// Init initializes the current screen.
func (m AppModel) Init() tea.Cmd {
	if m.game != nil {
		return m.game.Init()
	}
	return m.sel.Init()
}

// Update handles messages for the session.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	if m.game != nil {
		newModel, cmd := m.game.Update(msg)
		if gm, ok := newModel.(GameModel); ok {
			m.game = &gm
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.sel, cmd = m.sel.Update(msg)
	if m.sel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.sel.Confirmed() {
		gm := m.newGame(m.sel.Profile())
		if err := m.sel.SaveErr(); err != nil {
			if m.opts.Logger != nil {
				m.opts.Logger.Warn("could not save preferences", "error", err)
			}
			gm.feed = appendFeed(gm.feed, "› preferences not saved")
		}
		m.game = &gm
		return m, gm.Init()
	}
	return m, cmd
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	if m.game != nil {
		return m.game.View()
	}
	return m.sel.View()
}

// Game returns the game model once play has started.
func (m AppModel) Game() (GameModel, bool) {
	if m.game == nil {
		return GameModel{}, false
	}
	return *m.game, true
}

// Run starts a local Bubble Tea program for opts.
func Run(opts AppOptions) error {
	p := tea.NewProgram(
		NewAppModel(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
