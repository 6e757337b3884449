package interaction

import (
	"sort"

	"github.com/vovakirdan/aetheria/internal/catalog"
	"github.com/vovakirdan/aetheria/internal/core"
)

// EventKind distinguishes enter and exit events.
type EventKind int

const (
	EventEnter EventKind = iota
	EventExit
)

func (k EventKind) String() string {
	if k == EventEnter {
		return "enter"
	}
	return "exit"
}

// Event is a proximity change between a body and an artifact sensor.
type Event struct {
	Kind     EventKind
	Artifact catalog.ArtifactID
	Body     BodyID
}

// Sensor places a circular trigger volume on every artifact and reports
// bodies crossing its edge. Distance is measured on the ground plane and the
// boundary counts as inside.
type Sensor struct {
	radius    float64
	artifacts []catalog.Artifact
	inside    map[BodyID]map[catalog.ArtifactID]bool
}

// NewSensor creates sensors for every artifact in cat.
func NewSensor(cat *catalog.Catalog, radius float64) *Sensor {
	return &Sensor{
		radius:    radius,
		artifacts: cat.All(),
		inside:    make(map[BodyID]map[catalog.ArtifactID]bool),
	}
}

// Radius returns the trigger radius.
func (s *Sensor) Radius() float64 { return s.radius }

// Update moves body to pos and returns the resulting events in catalog order.
// Exits are reported before enters.
func (s *Sensor) Update(body BodyID, pos core.Vec3) []Event {
	prev := s.inside[body]
	if prev == nil {
		prev = make(map[catalog.ArtifactID]bool)
		s.inside[body] = prev
	}

	var exits, enters []Event
	for _, a := range s.artifacts {
		in := core.DistanceXZ(pos, a.Position) <= s.radius
		switch {
		case in && !prev[a.ID]:
			prev[a.ID] = true
			enters = append(enters, Event{Kind: EventEnter, Artifact: a.ID, Body: body})
		case !in && prev[a.ID]:
			delete(prev, a.ID)
			exits = append(exits, Event{Kind: EventExit, Artifact: a.ID, Body: body})
		}
	}
	return append(exits, enters...)
}

// Remove drops body, reporting an exit for every sensor it was inside.
func (s *Sensor) Remove(body BodyID) []Event {
	prev := s.inside[body]
	delete(s.inside, body)

	ids := make([]string, 0, len(prev))
	for id := range prev {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	events := make([]Event, 0, len(ids))
	for _, id := range ids {
		events = append(events, Event{Kind: EventExit, Artifact: catalog.ArtifactID(id), Body: body})
	}
	return events
}

// Inside reports whether body is within the sensor of artifact id.
func (s *Sensor) Inside(body BodyID, id catalog.ArtifactID) bool {
	return s.inside[body][id]
}
