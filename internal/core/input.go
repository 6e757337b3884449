package core

// Action represents a semantic game action, abstracted from physical key presses.
// The input layer maps keys to actions; the engine never sees raw keys.
type Action int

const (
	ActionNone     Action = iota
	ActionForward         // W, Up arrow - move toward -Z
	ActionBackward        // S, Down arrow - move toward +Z
	ActionLeft            // A, Left arrow - move toward -X
	ActionRight           // D, Right arrow - move toward +X
	ActionRun             // Shift - sprint modifier, held
	ActionInteract        // E - interface with the artifact in range, edge-triggered
	ActionClose           // Esc - close the open artifact panel
	ActionQuit            // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionForward:
		return "Forward"
	case ActionBackward:
		return "Backward"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRun:
		return "Run"
	case ActionInteract:
		return "Interact"
	case ActionClose:
		return "Close"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the actions held during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they are held this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{Actions: make(map[Action]bool, len(actions))}
	for _, a := range actions {
		f.Actions[a] = true
	}
	return f
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// Direction returns the movement vector on the XZ plane implied by the held
// directional actions, normalized so diagonals are not faster.
func (f InputFrame) Direction() Vec3 {
	var d Vec3
	if f.Has(ActionForward) {
		d.Z--
	}
	if f.Has(ActionBackward) {
		d.Z++
	}
	if f.Has(ActionLeft) {
		d.X--
	}
	if f.Has(ActionRight) {
		d.X++
	}
	return d.NormalizeXZ()
}

// EdgeTracker turns held-state frames into press events.
// Pressed reports true only on the frame an action goes from released to held,
// so holding a key never repeats the action.
type EdgeTracker struct {
	held map[Action]bool
}

// NewEdgeTracker creates a tracker with every action released.
func NewEdgeTracker() *EdgeTracker {
	return &EdgeTracker{held: make(map[Action]bool)}
}

// Pressed records the current state of a and reports a rising edge.
// Call it once per action per frame.
func (e *EdgeTracker) Pressed(f InputFrame, a Action) bool {
	now := f.Has(a)
	was := e.held[a]
	e.held[a] = now
	return now && !was
}

// Reset forgets all held state.
func (e *EdgeTracker) Reset() {
	for k := range e.held {
		delete(e.held, k)
	}
}
