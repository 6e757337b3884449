package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/aetheria/internal/catalog"
	"github.com/vovakirdan/aetheria/internal/config"
	"github.com/vovakirdan/aetheria/internal/core"
	"github.com/vovakirdan/aetheria/internal/prefs"
	"github.com/vovakirdan/aetheria/internal/session"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 120, ScreenH: 40, TickRate: 60}
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected GameModel", next)
	}
	return gm, cmd
}

func TestGameModelInteractThroughKeys(t *testing.T) {
	w := newTestWorld()
	w.Teleport(core.V3(-8, 0, -7))

	t0 := time.Unix(1000, 0)
	m := NewGameModel(w, nil, testRuntime(), nil)
	m.now = func() time.Time { return t0 }

	m, _ = update(t, m, runeKey('e'))
	m, cmd := update(t, m, TickMsg(t0.Add(16*time.Millisecond)))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	st := m.World().State()
	if !st.HasActive || st.Active.ID != "1" {
		t.Fatalf("Active = %q (%v), expected artifact 1 open", st.Active.ID, st.HasActive)
	}
	if st.Progress.XP != 150 {
		t.Errorf("XP = %d, expected 150", st.Progress.XP)
	}

	view := m.View()
	if !strings.Contains(view, "Neon Commerce") {
		t.Error("View() should show the open artifact panel")
	}
}

func TestGameModelMovesWhileHeld(t *testing.T) {
	w := newTestWorld()
	t0 := time.Unix(1000, 0)
	m := NewGameModel(w, nil, testRuntime(), nil)
	m.now = func() time.Time { return t0 }

	m, _ = update(t, m, runeKey('d'))
	m, _ = update(t, m, TickMsg(t0.Add(16*time.Millisecond)))
	m, _ = update(t, m, TickMsg(t0.Add(32*time.Millisecond)))

	if x := m.World().State().Position.X; x <= 0 {
		t.Errorf("Position.X = %v, expected movement toward +X", x)
	}

	// After the hold window the avatar stops.
	m, _ = update(t, m, TickMsg(t0.Add(time.Second)))
	before := m.World().State().Position
	m, _ = update(t, m, TickMsg(t0.Add(time.Second+16*time.Millisecond)))
	if after := m.World().State().Position; after != before {
		t.Errorf("Position moved after release: %v -> %v", before, after)
	}
}

func TestGameModelConnectsToRoom(t *testing.T) {
	room := session.NewMemoryRoom(4)
	defer room.Close()

	w := newTestWorld()
	m := NewGameModel(w, room, testRuntime(), nil)
	if m.status != statusConnecting {
		t.Fatalf("status = %v, expected connecting", m.status)
	}

	m, cmd := update(t, m, connectCmd(w, room)())
	if m.status != statusOnline {
		t.Fatalf("status = %v, expected online", m.status)
	}
	if cmd == nil {
		t.Fatal("expected a roster wait command")
	}
	if !strings.Contains(m.View(), "ONLINE") {
		t.Error("View() should show the online badge")
	}

	other, err := room.JoinMember(context.Background())
	if err != nil {
		t.Fatalf("JoinMember() error = %v", err)
	}
	m, _ = update(t, m, cmd())
	if len(m.feed) == 0 || !strings.Contains(m.feed[len(m.feed)-1], "entered") {
		t.Errorf("feed = %v, expected a join line", m.feed)
	}
	other.Leave()
}

func TestGameModelDegradedConnect(t *testing.T) {
	joiner := session.JoinerFunc(func(context.Context) (session.Channel, error) {
		return nil, errors.New("no route")
	})
	w := newTestWorld()
	m := NewGameModel(w, joiner, testRuntime(), nil)

	m, cmd := update(t, m, connectCmd(w, joiner)())
	if m.status != statusLocal || cmd != nil {
		t.Errorf("status = %v, cmd = %v, expected local play and no roster", m.status, cmd)
	}
	if !w.Coordinator().Ready() {
		t.Error("a failed join still resolves readiness")
	}
	if !strings.Contains(m.View(), "LOCAL") {
		t.Error("View() should show the local badge")
	}
}

func TestGameModelArchiveToggle(t *testing.T) {
	m := NewGameModel(newTestWorld(), nil, testRuntime(), nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.showArchive {
		t.Fatal("tab should open the archive")
	}
	view := m.View()
	if !strings.Contains(view, "DATA ARCHIVE") || !strings.Contains(view, "Aether State") {
		t.Errorf("archive view missing title or rows:\n%s", view)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showArchive {
		t.Error("esc should close the archive")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(newTestWorld(), nil, testRuntime(), nil)
	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestAppModelSelectThenPlay(t *testing.T) {
	store, err := prefs.Load(prefs.NewMemoryBackend())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	app := NewAppModel(AppOptions{
		Runtime: testRuntime(),
		Game:    config.DefaultGameConfig(),
		Catalog: catalog.Default(),
		Prefs:   store,
	})
	if _, ok := app.Game(); ok {
		t.Fatal("game should not start before selection")
	}

	next, _ := app.Update(tea.KeyMsg{Type: tea.KeyRight})
	app = next.(AppModel)
	next, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = next.(AppModel)

	gm, ok := app.Game()
	if !ok {
		t.Fatal("enter should start the game")
	}
	if cmd == nil {
		t.Error("starting the game should return its init command")
	}
	if got := gm.World().State().Profile.Avatar; got != core.AvatarScout {
		t.Errorf("Profile.Avatar = %v, expected scout", got)
	}
	if store.Avatar() != core.AvatarScout {
		t.Errorf("stored avatar = %v, expected scout", store.Avatar())
	}
}

func TestAppModelSkipSelect(t *testing.T) {
	backend := prefs.NewMemoryBackend()
	backend.Set(prefs.KeyColor, "#ccff00")
	store, _ := prefs.Load(backend)

	app := NewAppModel(AppOptions{
		Runtime:    testRuntime(),
		Game:       config.DefaultGameConfig(),
		Catalog:    catalog.Default(),
		Prefs:      store,
		SkipSelect: true,
	})
	gm, ok := app.Game()
	if !ok {
		t.Fatal("SkipSelect should start the game immediately")
	}
	if got := gm.World().State().Profile.Color; got != "#ccff00" {
		t.Errorf("Profile.Color = %q, expected #ccff00", got)
	}
}
