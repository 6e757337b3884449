package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/aetheria/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapperActions(t *testing.T) {
	km := NewKeyMapper(DefaultGameKeyMap())

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected []core.Action
	}{
		{"w", runeKey('w'), []core.Action{core.ActionForward}},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, []core.Action{core.ActionForward}},
		{"shift W", runeKey('W'), []core.Action{core.ActionForward, core.ActionRun}},
		{"d", runeKey('d'), []core.Action{core.ActionRight}},
		{"e", runeKey('e'), []core.Action{core.ActionInteract}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []core.Action{core.ActionInteract}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, []core.Action{core.ActionClose}},
		{"q", runeKey('q'), []core.Action{core.ActionQuit}},
		{"unbound", runeKey('z'), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := km.Actions(tt.msg)
			if len(got) != len(tt.expected) {
				t.Fatalf("Actions() = %v, expected %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Actions()[%d] = %v, expected %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestKeyMapperHoldWindow(t *testing.T) {
	km := NewKeyMapper(DefaultGameKeyMap())
	t0 := time.Unix(100, 0)

	if km.Press(runeKey('w'), t0) {
		t.Fatal("Press(w) reported quit")
	}

	f := km.Frame(t0.Add(100 * time.Millisecond))
	if !f.Has(core.ActionForward) {
		t.Error("Forward should be held within the hold window")
	}
	if f.Has(core.ActionRun) {
		t.Error("plain w must not sprint")
	}

	f = km.Frame(t0.Add(moveHold + time.Millisecond))
	if f.Has(core.ActionForward) {
		t.Error("Forward should be released after the hold window")
	}
}

func TestKeyMapperSprint(t *testing.T) {
	km := NewKeyMapper(DefaultGameKeyMap())
	t0 := time.Unix(100, 0)

	km.Press(runeKey('W'), t0)
	f := km.Frame(t0.Add(10 * time.Millisecond))
	if !f.Has(core.ActionForward) || !f.Has(core.ActionRun) {
		t.Errorf("shift+w frame = %v, expected forward and run", f.Actions)
	}

	// Releasing shift while still holding w: autorepeat sends plain w.
	km.Press(runeKey('w'), t0.Add(50*time.Millisecond))
	f = km.Frame(t0.Add(60 * time.Millisecond))
	if !f.Has(core.ActionForward) {
		t.Error("Forward should still be held")
	}
	if f.Has(core.ActionRun) {
		t.Error("a plain direction key should cancel sprint")
	}
}

func TestKeyMapperInteractSingleEdge(t *testing.T) {
	km := NewKeyMapper(DefaultGameKeyMap())
	edges := core.NewEdgeTracker()
	t0 := time.Unix(100, 0)

	// One physical press held down: first event, autorepeat after 500ms,
	// then repeats every 33ms.
	presses := []time.Duration{0, 500 * time.Millisecond}
	for d := 533 * time.Millisecond; d < time.Second; d += 33 * time.Millisecond {
		presses = append(presses, d)
	}

	rising := 0
	next := 0
	for d := time.Duration(0); d < 2*time.Second; d += 16 * time.Millisecond {
		for next < len(presses) && presses[next] <= d {
			km.Press(runeKey('e'), t0.Add(presses[next]))
			next++
		}
		if edges.Pressed(km.Frame(t0.Add(d)), core.ActionInteract) {
			rising++
		}
	}
	if rising != 1 {
		t.Errorf("rising edges = %d, expected 1 for a single held press", rising)
	}
}

func TestKeyMapperInteractQuickTaps(t *testing.T) {
	tests := []struct {
		name     string
		presses  []time.Duration
		expected int
	}{
		{"open then close", []time.Duration{0, 250 * time.Millisecond}, 2},
		{"three taps", []time.Duration{0, 200 * time.Millisecond, 450 * time.Millisecond}, 3},
		{"tap then held", []time.Duration{0, 300 * time.Millisecond, 800 * time.Millisecond, 833 * time.Millisecond, 866 * time.Millisecond}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km := NewKeyMapper(DefaultGameKeyMap())
			edges := core.NewEdgeTracker()
			t0 := time.Unix(100, 0)

			rising := 0
			next := 0
			for d := time.Duration(0); d < 2*time.Second; d += 16 * time.Millisecond {
				for next < len(tt.presses) && tt.presses[next] <= d {
					km.Press(runeKey('e'), t0.Add(tt.presses[next]))
					next++
				}
				if edges.Pressed(km.Frame(t0.Add(d)), core.ActionInteract) {
					rising++
				}
			}
			if rising != tt.expected {
				t.Errorf("rising edges = %d, expected %d", rising, tt.expected)
			}
		})
	}
}

func TestKeyMapperInteractAfterPause(t *testing.T) {
	km := NewKeyMapper(DefaultGameKeyMap())
	t0 := time.Unix(100, 0)

	km.Press(runeKey('e'), t0)
	if !km.Frame(t0).Has(core.ActionInteract) {
		t.Fatal("first press should land in the next frame")
	}
	if km.Frame(t0.Add(16 * time.Millisecond)).Has(core.ActionInteract) {
		t.Error("a press should land in one frame only")
	}

	later := t0.Add(tapReset)
	km.Press(runeKey('e'), later)
	if !km.Frame(later).Has(core.ActionInteract) {
		t.Error("a press after a pause should land without delay")
	}
}

func TestKeyMapperQuitAndRelease(t *testing.T) {
	km := NewKeyMapper(DefaultGameKeyMap())
	t0 := time.Unix(100, 0)

	if !km.Press(tea.KeyMsg{Type: tea.KeyCtrlC}, t0) {
		t.Error("ctrl+c should request quit")
	}

	km.Press(runeKey('a'), t0)
	km.Release()
	if f := km.Frame(t0); len(f.Actions) != 0 {
		t.Errorf("Frame() after Release = %v, expected empty", f.Actions)
	}
}
