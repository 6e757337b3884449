package game

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/aetheria/internal/catalog"
	"github.com/vovakirdan/aetheria/internal/config"
	"github.com/vovakirdan/aetheria/internal/core"
	"github.com/vovakirdan/aetheria/internal/interaction"
	"github.com/vovakirdan/aetheria/internal/notify"
	"github.com/vovakirdan/aetheria/internal/session"
)

const dt = 1.0 / 60

func newTestWorld(clock notify.Clock) *World {
	return NewWorld(Options{
		Config:  config.DefaultGameConfig(),
		Catalog: catalog.Default(),
		Clock:   clock,
	})
}

func TestWorldMovementAndEnergy(t *testing.T) {
	w := newTestWorld(nil)

	w.Step(core.NewInputFrame(core.ActionForward), dt)
	s := w.State()
	if math.Abs(s.Position.Z-(-5*dt)) > 1e-9 || s.Position.X != 0 {
		t.Errorf("Position = %v, expected one walking step toward -Z", s.Position)
	}
	if s.RotationY != math.Pi {
		t.Errorf("RotationY = %v, expected pi facing -Z", s.RotationY)
	}
	if s.Sprinting || s.Progress.Energy != 100 {
		t.Errorf("walking: Sprinting = %v, Energy = %v, expected false/100", s.Sprinting, s.Progress.Energy)
	}

	for i := 0; i < 10; i++ {
		w.Step(core.NewInputFrame(core.ActionRight, core.ActionRun), dt)
	}
	s = w.State()
	if !s.Sprinting {
		t.Error("expected sprinting")
	}
	if s.Progress.Energy != 95 {
		t.Errorf("Energy = %v, expected 95 after 10 sprint frames", s.Progress.Energy)
	}
	if math.Abs(s.Position.X-10*5*1.8*dt) > 1e-9 {
		t.Errorf("Position.X = %v, expected sprint distance", s.Position.X)
	}

	// Holding run while idle regenerates instead of draining.
	w.Step(core.NewInputFrame(core.ActionRun), dt)
	if got := w.State().Progress.Energy; math.Abs(got-95.1) > 1e-9 {
		t.Errorf("Energy = %v, expected idle regen to 95.1", got)
	}
	w.Step(core.NewInputFrame(core.ActionLeft), dt)
	if got := w.State().Progress.Energy; math.Abs(got-95.35) > 1e-9 {
		t.Errorf("Energy = %v, expected walking regen to 95.35", got)
	}
}

func TestWorldSprintStopsWhenExhausted(t *testing.T) {
	w := newTestWorld(nil)

	for i := 0; i < 200; i++ {
		w.Step(core.NewInputFrame(core.ActionBackward, core.ActionRun), dt)
	}
	s := w.State()
	if s.Progress.Energy > 0.25 {
		t.Errorf("Energy = %v, expected drained", s.Progress.Energy)
	}
	if s.Progress.Energy < 0 {
		t.Errorf("Energy = %v, must not go negative", s.Progress.Energy)
	}
}

func TestWorldStaysInBounds(t *testing.T) {
	w := newTestWorld(nil)
	for i := 0; i < 2000; i++ {
		w.Step(core.NewInputFrame(core.ActionLeft, core.ActionForward), dt)
	}
	p := w.State().Position
	if p.X <= -40 || p.Z <= -40 {
		t.Errorf("Position = %v, expected inside the play area", p)
	}
}

func TestWorldInteractToggle(t *testing.T) {
	w := newTestWorld(nil)
	w.Teleport(core.V3(-8, 0, -7))

	if w.ArtifactState("1") != interaction.InRange {
		t.Fatalf("ArtifactState() = %v, expected in-range", w.ArtifactState("1"))
	}

	res := w.Step(core.NewInputFrame(core.ActionInteract), dt)
	if res.Opened != "1" || res.Notified == nil {
		t.Fatalf("Step() = %+v, expected artifact 1 opened with a notification", res)
	}
	s := w.State()
	if !s.HasActive || s.Active.ID != "1" {
		t.Errorf("Active = %v, expected 1", s.Active.ID)
	}
	if s.Progress.XP != 150 || s.Progress.Level != 1 {
		t.Errorf("XP/Level = %d/%d, expected 150/1", s.Progress.XP, s.Progress.Level)
	}

	// Holding interact does not toggle again.
	for i := 0; i < 30; i++ {
		w.Step(core.NewInputFrame(core.ActionInteract), dt)
	}
	if !w.State().HasActive {
		t.Fatal("holding interact must not close the panel")
	}

	w.Step(core.NewInputFrame(), dt)
	res = w.Step(core.NewInputFrame(core.ActionInteract), dt)
	if res.Closed != "1" || w.State().HasActive {
		t.Errorf("second press: %+v, expected closed", res)
	}
	if w.State().Progress.XP != 150 {
		t.Error("reopening must not award XP again")
	}
}

func TestWorldCloseAction(t *testing.T) {
	w := newTestWorld(nil)
	w.Teleport(core.V3(0, 0, 7))
	w.Step(core.NewInputFrame(core.ActionInteract), dt)

	res := w.Step(core.NewInputFrame(core.ActionClose), dt)
	if res.Closed != "3" || w.State().HasActive {
		t.Errorf("Step(close) = %+v, expected artifact 3 closed", res)
	}
	if w.ArtifactState("3") != interaction.InRange {
		t.Errorf("ArtifactState() = %v, expected in-range", w.ArtifactState("3"))
	}
}

func TestWorldWalkAwayCloses(t *testing.T) {
	w := newTestWorld(nil)
	w.Teleport(core.V3(8, 0, -8))
	w.Step(core.NewInputFrame(core.ActionInteract), dt)

	var closed catalog.ArtifactID
	for i := 0; i < 120 && w.State().HasActive; i++ {
		res := w.Step(core.NewInputFrame(core.ActionBackward), dt)
		if res.Closed != "" {
			closed = res.Closed
		}
	}
	if w.State().HasActive {
		t.Fatal("walking out of range should close the panel")
	}
	if closed != "2" {
		t.Errorf("Closed = %q, expected 2", closed)
	}
	if w.ArtifactState("2") != interaction.OutOfRange {
		t.Errorf("ArtifactState() = %v, expected out-of-range", w.ArtifactState("2"))
	}
}

func TestWorldNotificationExpires(t *testing.T) {
	clock := NewFrameClock()
	w := newTestWorld(clock)
	w.Teleport(core.V3(-8, 0, -8))
	w.Step(core.NewInputFrame(core.ActionInteract), dt)

	if !w.State().HasNotice {
		t.Fatal("expected a notification")
	}

	clock.Advance(3999 * time.Millisecond)
	if res := w.Step(core.NewInputFrame(), dt); res.Expired {
		t.Error("notification expired early")
	}
	clock.Advance(time.Millisecond)
	if res := w.Step(core.NewInputFrame(), dt); !res.Expired {
		t.Error("notification should expire after 4s")
	}
	if w.State().HasNotice {
		t.Error("notification should be gone")
	}
}

func TestWorldOfflineByDefault(t *testing.T) {
	w := newTestWorld(nil)
	w.Step(core.NewInputFrame(core.ActionForward), dt)

	s := w.State()
	if s.MultiplayerReady || s.Online || len(s.Peers) != 0 {
		t.Errorf("State() = ready %v online %v peers %d, expected offline", s.MultiplayerReady, s.Online, len(s.Peers))
	}
}

func TestWorldConnectDegraded(t *testing.T) {
	w := newTestWorld(nil)
	res := w.Connect(context.Background(), session.JoinerFunc(func(context.Context) (session.Channel, error) {
		return nil, errors.New("no route")
	}))
	if res.Outcome != session.OutcomeDegraded {
		t.Fatalf("Connect() = %+v, expected degraded", res)
	}

	w.Teleport(core.V3(-8, 0, -8))
	w.Step(core.NewInputFrame(core.ActionInteract), dt)
	s := w.State()
	if !s.MultiplayerReady || s.Online {
		t.Errorf("ready/online = %v/%v, expected true/false", s.MultiplayerReady, s.Online)
	}
	if s.Progress.XP != 150 {
		t.Errorf("XP = %d, expected local play to continue", s.Progress.XP)
	}
}

func TestWorldsShareRoom(t *testing.T) {
	room := session.NewMemoryRoom(0)
	cfg := config.DefaultGameConfig()

	alice := NewWorld(Options{Config: cfg, Profile: session.Profile{Color: "#ff0055", Avatar: core.AvatarScout}})
	bob := NewWorld(Options{Config: cfg})

	if res := alice.Connect(context.Background(), room); res.Outcome != session.OutcomeReady {
		t.Fatalf("alice Connect() = %+v", res)
	}
	if res := bob.Connect(context.Background(), room); res.Outcome != session.OutcomeReady {
		t.Fatalf("bob Connect() = %+v", res)
	}

	bob.Step(core.NewInputFrame(), dt)
	peers := bob.State().Peers
	if len(peers) != 1 {
		t.Fatalf("bob sees %d peers, expected 1", len(peers))
	}
	if peers[0].Color != "#ff0055" || peers[0].Avatar != core.AvatarScout {
		t.Errorf("peer cosmetics = %v/%v, expected #ff0055/scout", peers[0].Color, peers[0].Avatar)
	}
	if peers[0].Published {
		t.Error("alice has not stepped yet, so no position should be published")
	}

	for i := 0; i < 30; i++ {
		alice.Step(core.NewInputFrame(core.ActionRight), dt)
	}
	bob.Step(core.NewInputFrame(), dt)

	peer := bob.State().Peers[0]
	if peer.Position != alice.State().Position {
		t.Errorf("projected Position = %v, expected %v", peer.Position, alice.State().Position)
	}
	if peer.RotationY != math.Pi/2 {
		t.Errorf("projected RotationY = %v, expected pi/2", peer.RotationY)
	}
	if len(alice.State().Peers) != 1 {
		t.Errorf("alice sees %d peers, expected 1", len(alice.State().Peers))
	}
}

func TestWorldInteractOpensClosestArtifact(t *testing.T) {
	cat := catalog.MustNew([]catalog.Artifact{
		{ID: "A", Title: "Near", Position: core.V3(3, 0, 0)},
		{ID: "B", Title: "Far", Position: core.V3(4, 0, 0)},
	})
	w := NewWorld(Options{Config: config.DefaultGameConfig(), Catalog: cat})

	// Walk in so A is entered first and B second, then stop nearer A.
	w.Teleport(core.V3(1.5, 0, 0))
	w.Teleport(core.V3(3.2, 0, 0))
	if w.ArtifactState("A") != interaction.InRange || w.ArtifactState("B") != interaction.InRange {
		t.Fatalf("states = %v/%v, expected both in range", w.ArtifactState("A"), w.ArtifactState("B"))
	}

	res := w.Step(core.NewInputFrame(core.ActionInteract), dt)
	if res.Opened != "A" {
		t.Errorf("Opened = %q, expected the closer A", res.Opened)
	}
	if s := w.State(); s.Nearby != "A" {
		t.Errorf("Nearby = %q, expected A", s.Nearby)
	}
}
