package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/aetheria/internal/core"
)

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	Forward  key.Binding
	Backward key.Binding
	Left     key.Binding
	Right    key.Binding
	Run      key.Binding
	Interact key.Binding
	Close    key.Binding
	Archive  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.Run, k.Interact, k.Archive, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Backward, k.Left, k.Right},
		{k.Run, k.Interact, k.Close},
		{k.Archive, k.Help, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings. Shifted movement keys
// sprint, since terminals do not report a held modifier on its own.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Forward: key.NewBinding(
			key.WithKeys("w", "up", "W", "shift+up"),
			key.WithHelp("w/↑", "forward"),
		),
		Backward: key.NewBinding(
			key.WithKeys("s", "down", "S", "shift+down"),
			key.WithHelp("s/↓", "back"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left", "A", "shift+left"),
			key.WithHelp("a/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right", "D", "shift+right"),
			key.WithHelp("d/→", "right"),
		),
		Run: key.NewBinding(
			key.WithKeys("W", "A", "S", "D", "shift+up", "shift+down", "shift+left", "shift+right"),
			key.WithHelp("shift+move", "sprint"),
		),
		Interact: key.NewBinding(
			key.WithKeys("e", "E", "enter"),
			key.WithHelp("e", "interact"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "x"),
			key.WithHelp("esc", "close panel"),
		),
		Archive: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "archive"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Hold windows. Terminals only send key presses, with autorepeat while a key
// is held, so an action counts as held until no repeat arrives for a while.
const (
	moveHold  = 180 * time.Millisecond
	closeHold = 300 * time.Millisecond
)

// Interact is a tap: each physical press shows up in exactly one frame.
// A press after tapReset of silence is taken at once. A press after a shorter
// gap may be the first autorepeat of a held key, so it waits repeatGap and is
// dropped if more repeats follow.
const (
	repeatGap = 70 * time.Millisecond
	tapReset  = 700 * time.Millisecond
)

type tap struct {
	last    time.Time
	pending time.Time
	waiting bool
	latched bool
}

func (t *tap) press(now time.Time) {
	gap := now.Sub(t.last)
	fresh := t.last.IsZero() || gap >= tapReset
	t.last = now
	switch {
	case fresh:
		t.latched, t.waiting = true, false
	case gap < repeatGap:
		t.waiting = false
	default:
		t.pending, t.waiting = now, true
	}
}

// take reports whether a press lands in the frame at now.
func (t *tap) take(now time.Time) bool {
	if t.waiting && now.Sub(t.pending) >= repeatGap {
		t.latched, t.waiting = true, false
	}
	if !t.latched {
		return false
	}
	t.latched = false
	return true
}

// KeyMapper translates Bubble Tea key messages into held game actions.
type KeyMapper struct {
	keys     GameKeyMap
	lastSeen map[core.Action]time.Time
	holds    map[core.Action]time.Duration
	interact tap
}

// NewKeyMapper creates a key mapper with the given bindings.
func NewKeyMapper(keys GameKeyMap) *KeyMapper {
	return &KeyMapper{
		keys:     keys,
		lastSeen: make(map[core.Action]time.Time),
		holds: map[core.Action]time.Duration{
			core.ActionForward:  moveHold,
			core.ActionBackward: moveHold,
			core.ActionLeft:     moveHold,
			core.ActionRight:    moveHold,
			core.ActionRun:      moveHold,
			core.ActionClose:    closeHold,
		},
	}
}

// Actions returns the game actions bound to msg.
func (km *KeyMapper) Actions(msg tea.KeyMsg) []core.Action {
	var out []core.Action
	bindings := []struct {
		b key.Binding
		a core.Action
	}{
		{km.keys.Forward, core.ActionForward},
		{km.keys.Backward, core.ActionBackward},
		{km.keys.Left, core.ActionLeft},
		{km.keys.Right, core.ActionRight},
		{km.keys.Run, core.ActionRun},
		{km.keys.Interact, core.ActionInteract},
		{km.keys.Close, core.ActionClose},
		{km.keys.Quit, core.ActionQuit},
	}
	for _, kb := range bindings {
		if key.Matches(msg, kb.b) {
			out = append(out, kb.a)
		}
	}
	return out
}

// Press records msg at time now. Returns true if it was a quit request.
func (km *KeyMapper) Press(msg tea.KeyMsg, now time.Time) bool {
	for _, a := range km.Actions(msg) {
		switch a {
		case core.ActionQuit:
			return true
		case core.ActionInteract:
			km.interact.press(now)
			continue
		}
		km.lastSeen[a] = now
	}
	return false
}

// Frame returns the actions held at time now.
func (km *KeyMapper) Frame(now time.Time) core.InputFrame {
	f := core.NewInputFrame()
	for a, seen := range km.lastSeen {
		if now.Sub(seen) < km.holds[a] {
			f.Set(a)
		} else {
			delete(km.lastSeen, a)
		}
	}
	if km.interact.take(now) {
		f.Set(core.ActionInteract)
	}
	// A direction pressed alone cancels sprint from an earlier shifted key.
	if f.Has(core.ActionRun) && km.lastSeen[core.ActionRun].Before(km.latestMove()) {
		delete(f.Actions, core.ActionRun)
	}
	return f
}

// Release forgets every held action.
func (km *KeyMapper) Release() {
	for a := range km.lastSeen {
		delete(km.lastSeen, a)
	}
	km.interact = tap{}
}

func (km *KeyMapper) latestMove() time.Time {
	var latest time.Time
	for _, a := range []core.Action{core.ActionForward, core.ActionBackward, core.ActionLeft, core.ActionRight} {
		if t := km.lastSeen[a]; t.After(latest) {
			latest = t
		}
	}
	return latest
}
