// Package game runs one player's frame loop: movement and energy, proximity
// and interaction, progression, notifications and the multiplayer session.
//
// A World is owned by a single goroutine that calls Step. Only Connect may
// run concurrently with it.
package game

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/aetheria/internal/catalog"
	"github.com/vovakirdan/aetheria/internal/config"
	"github.com/vovakirdan/aetheria/internal/core"
	"github.com/vovakirdan/aetheria/internal/interaction"
	"github.com/vovakirdan/aetheria/internal/notify"
	"github.com/vovakirdan/aetheria/internal/progression"
	"github.com/vovakirdan/aetheria/internal/session"
)

// Options configures a World.
type Options struct {
	Config  config.GameConfig
	Catalog *catalog.Catalog
	Profile session.Profile

	// Clock drives notification expiry. Nil uses wall time.
	Clock notify.Clock

	// Coordinator gates multiplayer. Nil creates one using Config.Session.
	Coordinator *session.Coordinator

	Logger *log.Logger
}

// World is the per-player game state and its frame loop.
type World struct {
	cfg     config.GameConfig
	catalog *catalog.Catalog
	profile session.Profile
	logger  *log.Logger

	engine *progression.Engine
	queue  *notify.Queue
	gate   *interaction.Gate
	sensor *interaction.Sensor
	edges  *core.EdgeTracker
	avatar Avatar

	coord      *session.Coordinator
	publisher  *session.Publisher
	projection *session.Projection

	tick uint64
}

// NewWorld creates a world with the avatar at Spawn.
func NewWorld(opts Options) *World {
	cfg := opts.Config
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	profile := opts.Profile
	if profile.Color == "" {
		profile.Color = core.DefaultAccent
	}
	if profile.Avatar == "" {
		profile.Avatar = core.DefaultAvatar
	}
	coord := opts.Coordinator
	if coord == nil {
		coord = session.NewCoordinator(cfg.Session.JoinTimeout, opts.Logger)
	}

	engine := progression.New(cfg.Energy, cfg.Progression, cat.Len())
	queue := notify.NewQueue(opts.Clock, cfg.Notification.Duration)

	w := &World{
		cfg:        cfg,
		catalog:    cat,
		profile:    profile,
		logger:     opts.Logger,
		engine:     engine,
		queue:      queue,
		gate:       interaction.NewGate(interaction.LocalPlayer, engine, queue),
		sensor:     interaction.NewSensor(cat, cfg.Interaction.Radius),
		edges:      core.NewEdgeTracker(),
		avatar:     NewAvatar(cfg.Movement),
		coord:      coord,
		publisher:  session.NewPublisher(coord),
		projection: session.NewProjection(cfg.Session.Smoothing),
	}
	w.gate.SetDistance(w.distanceTo)
	// Artifacts overlapping the spawn point are in range from the first frame.
	w.applySensor()
	return w
}

// Connect makes the single session join attempt and, when it succeeds,
// publishes the profile once. Play continues either way.
func (w *World) Connect(ctx context.Context, j session.Joiner) session.Result {
	res := w.coord.Join(ctx, j)
	if res.Outcome == session.OutcomeReady {
		if _, err := w.publisher.PublishProfile(w.profile); err != nil && w.logger != nil {
			w.logger.Warn("could not publish profile", "error", err)
		}
	}
	return res
}

// StepResult reports what happened during one frame.
type StepResult struct {
	Entered  []catalog.ArtifactID
	Exited   []catalog.ArtifactID
	Opened   catalog.ArtifactID
	Closed   catalog.ArtifactID
	Notified *notify.Notification
	Expired  bool // the notification auto-cleared this frame
}

// Step advances the world by one frame of dt seconds.
func (w *World) Step(in core.InputFrame, dt float64) StepResult {
	w.tick++
	var res StepResult

	// Movement and energy.
	dir := in.Direction()
	moving := dir.LenXZ() > 0
	sprint := in.Has(core.ActionRun) && moving && w.engine.HasEnergy()
	switch {
	case sprint:
		w.engine.DecreaseEnergy(w.cfg.Energy.SprintCost)
	case moving:
		w.engine.RegenerateEnergy(w.cfg.Energy.RegenMoving)
	default:
		w.engine.RegenerateEnergy(w.cfg.Energy.RegenIdle)
	}
	w.avatar.Move(dir, sprint, dt)

	// Proximity.
	for _, ev := range w.sensor.Update(interaction.LocalPlayer, w.avatar.Position) {
		wasActive, _ := w.gate.Active()
		if !w.gate.Handle(ev) {
			continue
		}
		switch ev.Kind {
		case interaction.EventEnter:
			res.Entered = append(res.Entered, ev.Artifact)
		case interaction.EventExit:
			res.Exited = append(res.Exited, ev.Artifact)
			if wasActive == ev.Artifact {
				res.Closed = ev.Artifact
			}
		}
	}

	// Interaction.
	before := w.notificationID()
	if w.edges.Pressed(in, core.ActionInteract) {
		wasActive, wasOpen := w.gate.Active()
		if id, ok := w.gate.Interact(); ok {
			if wasOpen && wasActive == id {
				res.Closed = id
			} else {
				res.Opened = id
			}
		}
	}
	if w.edges.Pressed(in, core.ActionClose) {
		if id, ok := w.gate.Active(); ok {
			w.gate.CloseActive()
			res.Closed = id
		}
	}
	if n, ok := w.queue.Current(); ok && n.ID != before {
		res.Notified = &n
	}

	res.Expired = w.queue.Tick()

	// Session.
	if w.coord.Ready() {
		if _, err := w.publisher.PublishTransform(w.avatar.Position, w.avatar.RotationY); err != nil && w.logger != nil {
			w.logger.Debug("publish transform failed", "error", err)
		}
		if ch, ok := w.coord.Channel(); ok {
			w.projection.Refresh(ch)
		}
	}

	return res
}

// CloseArtifact closes the open artifact panel, if any.
func (w *World) CloseArtifact() {
	w.gate.CloseActive()
}

// Teleport moves the avatar directly, updating proximity.
func (w *World) Teleport(pos core.Vec3) {
	w.avatar.Teleport(pos)
	w.applySensor()
}

func (w *World) applySensor() {
	for _, ev := range w.sensor.Update(interaction.LocalPlayer, w.avatar.Position) {
		w.gate.Handle(ev)
	}
}

// distanceTo is the XZ distance from the avatar to artifact id.
func (w *World) distanceTo(id catalog.ArtifactID) float64 {
	a, ok := w.catalog.Get(id)
	if !ok {
		return math.Inf(1)
	}
	return core.DistanceXZ(w.avatar.Position, a.Position)
}

func (w *World) notificationID() uuid.UUID {
	if n, ok := w.queue.Current(); ok {
		return n.ID
	}
	return uuid.Nil
}

// State is a read-only view of the world for rendering.
type State struct {
	Tick      uint64
	Position  core.Vec3
	RotationY float64
	Moving    bool
	Sprinting bool

	Progress progression.Snapshot

	Active     catalog.Artifact
	HasActive  bool
	Nearby     catalog.ArtifactID // closest artifact in range
	HasNearby  bool
	Notice     notify.Notification
	HasNotice  bool
	NoticeLeft time.Duration

	Profile          session.Profile
	MultiplayerReady bool
	Online           bool
	Peers            []session.Remote
}

// State returns a snapshot of the world.
func (w *World) State() State {
	s := State{
		Tick:             w.tick,
		Position:         w.avatar.Position,
		RotationY:        w.avatar.RotationY,
		Moving:           w.avatar.Moving,
		Sprinting:        w.avatar.Sprinting,
		Progress:         w.engine.Snapshot(),
		Profile:          w.profile,
		MultiplayerReady: w.coord.Ready(),
		Online:           w.coord.Online(),
	}
	if id, ok := w.gate.Active(); ok {
		s.Active, s.HasActive = w.catalog.Get(id)
	}
	s.Nearby, s.HasNearby = w.gate.Nearest()
	s.Notice, s.HasNotice = w.queue.Current()
	s.NoticeLeft = w.queue.Remaining()
	if s.Online {
		s.Peers = w.projection.Peers()
	}
	return s
}

// ArtifactState returns the interaction state of artifact id.
func (w *World) ArtifactState(id catalog.ArtifactID) interaction.State {
	return w.gate.State(id)
}

// IsDiscovered reports whether artifact id has been discovered.
func (w *World) IsDiscovered(id catalog.ArtifactID) bool {
	return w.engine.IsDiscovered(id)
}

// Catalog returns the world's artifact catalog.
func (w *World) Catalog() *catalog.Catalog { return w.catalog }

// Config returns the world's tuning.
func (w *World) Config() config.GameConfig { return w.cfg }

// Coordinator returns the session coordinator.
func (w *World) Coordinator() *session.Coordinator { return w.coord }
