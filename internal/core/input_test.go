package core

import (
	"math"
	"testing"
)

func TestInputFrameSetHasClear(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionInteract) {
		t.Error("new frame should have no actions")
	}

	f.Set(ActionInteract)
	if !f.Has(ActionInteract) {
		t.Error("Has(ActionInteract) = false after Set")
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionInteract) {
		t.Error("Has(ActionInteract) = true after Clear")
	}
	if !clone.Has(ActionInteract) {
		t.Error("Clone should not share storage with the original")
	}

	var zero InputFrame
	if zero.Has(ActionRun) {
		t.Error("zero frame should report nothing held")
	}
	zero.Set(ActionRun)
	if !zero.Has(ActionRun) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestInputFrameDirection(t *testing.T) {
	tests := []struct {
		name    string
		actions []Action
		x, z    float64
	}{
		{"idle", nil, 0, 0},
		{"forward", []Action{ActionForward}, 0, -1},
		{"right", []Action{ActionRight}, 1, 0},
		{"opposites cancel", []Action{ActionLeft, ActionRight}, 0, 0},
		{"diagonal normalized", []Action{ActionBackward, ActionRight}, math.Sqrt2 / 2, math.Sqrt2 / 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := NewInputFrame(tc.actions...).Direction()
			if math.Abs(d.X-tc.x) > 1e-9 || math.Abs(d.Z-tc.z) > 1e-9 {
				t.Errorf("Direction() = %v, expected (%v, %v)", d, tc.x, tc.z)
			}
		})
	}
}

func TestEdgeTrackerHoldDoesNotRepeat(t *testing.T) {
	e := NewEdgeTracker()
	held := NewInputFrame(ActionInteract)
	released := NewInputFrame()

	presses := 0
	frames := []InputFrame{held, held, held, released, held, released, released}
	for _, f := range frames {
		if e.Pressed(f, ActionInteract) {
			presses++
		}
	}

	if presses != 2 {
		t.Errorf("presses = %d, expected 2", presses)
	}
}

func TestEdgeTrackerReset(t *testing.T) {
	e := NewEdgeTracker()
	held := NewInputFrame(ActionInteract)

	if !e.Pressed(held, ActionInteract) {
		t.Fatal("first held frame should be a press")
	}
	e.Reset()
	if !e.Pressed(held, ActionInteract) {
		t.Error("held frame after Reset should be a press")
	}
}
