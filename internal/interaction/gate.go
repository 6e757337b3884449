// Package interaction implements proximity-gated interaction with artifacts.
//
// A Sensor turns body positions into enter/exit events; a Gate consumes those
// events together with interact presses and decides which artifact, if any,
// is open.
package interaction

import (
	"github.com/vovakirdan/aetheria/internal/catalog"
	"github.com/vovakirdan/aetheria/internal/notify"
)

// BodyID identifies a body overlapping a sensor.
type BodyID string

// LocalPlayer is the body of the locally controlled avatar.
const LocalPlayer BodyID = "local-player"

// State is the interaction state of one artifact.
type State int

const (
	OutOfRange State = iota
	InRange
	Open
)

func (s State) String() string {
	switch s {
	case OutOfRange:
		return "out-of-range"
	case InRange:
		return "in-range"
	case Open:
		return "open"
	default:
		return "unknown"
	}
}

// Discoverer records discoveries. Implemented by progression.Engine.
type Discoverer interface {
	DiscoverArtifact(id catalog.ArtifactID) (notify.Notification, bool)
}

// Notifier displays notifications. Implemented by notify.Queue.
type Notifier interface {
	Enqueue(n notify.Notification)
}

// Gate tracks which artifacts the local body is near and which one is open.
// At most one artifact is open; an artifact is open only while in range.
type Gate struct {
	body       BodyID
	discoverer Discoverer
	notifier   Notifier

	inRange  map[catalog.ArtifactID]uint64 // value is the enter sequence number
	seq      uint64
	active   catalog.ArtifactID
	distance func(catalog.ArtifactID) float64
}

// NewGate creates a gate that reacts only to events for body.
// notifier may be nil.
func NewGate(body BodyID, discoverer Discoverer, notifier Notifier) *Gate {
	return &Gate{
		body:       body,
		discoverer: discoverer,
		notifier:   notifier,
		inRange:    make(map[catalog.ArtifactID]uint64),
	}
}

// SetDistance makes Nearest prefer the in-range artifact with the smallest
// dist. Without it, or on equal distance, the most recently entered wins.
func (g *Gate) SetDistance(dist func(catalog.ArtifactID) float64) {
	g.distance = dist
}

// Enter handles an enter-proximity event. Events for other bodies are ignored.
// Reports whether the artifact changed state.
func (g *Gate) Enter(id catalog.ArtifactID, body BodyID) bool {
	if body != g.body {
		return false
	}
	if _, ok := g.inRange[id]; ok {
		return false
	}
	g.seq++
	g.inRange[id] = g.seq
	return true
}

// Exit handles an exit-proximity event. Leaving the open artifact closes it.
func (g *Gate) Exit(id catalog.ArtifactID, body BodyID) bool {
	if body != g.body {
		return false
	}
	if _, ok := g.inRange[id]; !ok {
		return false
	}
	delete(g.inRange, id)
	if g.active == id {
		g.active = ""
	}
	return true
}

// Handle dispatches a sensor event.
func (g *Gate) Handle(ev Event) bool {
	switch ev.Kind {
	case EventEnter:
		return g.Enter(ev.Artifact, ev.Body)
	case EventExit:
		return g.Exit(ev.Artifact, ev.Body)
	default:
		return false
	}
}

// InteractWith toggles artifact id. Opening requires the artifact to be in
// range and records the discovery. Reports whether anything changed.
func (g *Gate) InteractWith(id catalog.ArtifactID) bool {
	if _, ok := g.inRange[id]; !ok {
		return false
	}
	if g.active == id {
		g.active = ""
		return true
	}

	g.active = id
	if n, ok := g.discoverer.DiscoverArtifact(id); ok && g.notifier != nil {
		g.notifier.Enqueue(n)
	}
	return true
}

// Interact handles one interact press. An open artifact is closed; otherwise
// the Nearest in-range artifact is opened. Returns the artifact acted on.
func (g *Gate) Interact() (catalog.ArtifactID, bool) {
	if g.active != "" {
		id := g.active
		g.active = ""
		return id, true
	}

	id, ok := g.Nearest()
	if !ok {
		return "", false
	}
	return id, g.InteractWith(id)
}

// Nearest returns the in-range artifact an interact press would open.
func (g *Gate) Nearest() (catalog.ArtifactID, bool) {
	var (
		best     catalog.ArtifactID
		bestSeq  uint64
		bestDist float64
	)
	for id, seq := range g.inRange {
		d := 0.0
		if g.distance != nil {
			d = g.distance(id)
		}
		if bestSeq == 0 || d < bestDist || (d == bestDist && seq > bestSeq) {
			best, bestSeq, bestDist = id, seq, d
		}
	}
	return best, bestSeq > 0
}

// CloseActive closes the open artifact. Safe to call when nothing is open.
func (g *Gate) CloseActive() {
	g.active = ""
}

// Active returns the open artifact.
func (g *Gate) Active() (catalog.ArtifactID, bool) {
	return g.active, g.active != ""
}

// State returns the state of artifact id.
func (g *Gate) State(id catalog.ArtifactID) State {
	if _, ok := g.inRange[id]; !ok {
		return OutOfRange
	}
	if g.active == id {
		return Open
	}
	return InRange
}

// InRangeCount returns how many artifacts are in range.
func (g *Gate) InRangeCount() int {
	return len(g.inRange)
}
