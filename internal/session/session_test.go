package session

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/aetheria/internal/core"
)

func join(t *testing.T, r *MemoryRoom) *Member {
	t.Helper()
	m, err := r.JoinMember(context.Background())
	if err != nil {
		t.Fatalf("JoinMember() error = %v", err)
	}
	return m
}

func TestMemoryRoomRoster(t *testing.T) {
	r := NewMemoryRoom(8)
	a := join(t, r)
	b := join(t, r)

	if r.Count() != 2 {
		t.Fatalf("Count() = %d, expected 2", r.Count())
	}
	if a.Self() == b.Self() {
		t.Fatal("members must have distinct ids")
	}
	if len(a.Peers()) != 2 {
		t.Errorf("Peers() = %v, expected both members", a.Peers())
	}

	select {
	case evt := <-a.Events():
		if e, ok := evt.(PeerJoinedEvent); !ok || e.Peer != b.Self() {
			t.Errorf("event = %#v, expected PeerJoinedEvent for b", evt)
		}
	default:
		t.Error("a should be told that b joined")
	}

	b.Leave()
	b.Leave()
	if r.Count() != 1 {
		t.Errorf("Count() = %d, expected 1 after leave", r.Count())
	}
	select {
	case <-b.Done():
	default:
		t.Error("Done() should close after Leave()")
	}
	if err := b.Set(KeyColor, "#ff0055", true); !errors.Is(err, ErrNotJoined) {
		t.Errorf("Set() after leave error = %v, expected ErrNotJoined", err)
	}
	if evt := <-a.Events(); evt != (PeerLeftEvent{Peer: b.Self()}) {
		t.Errorf("event = %#v, expected PeerLeftEvent", evt)
	}
}

func TestMemoryRoomClose(t *testing.T) {
	r := NewMemoryRoom(0)
	m := join(t, r)
	r.Close()

	select {
	case <-m.Done():
	default:
		t.Error("members should be closed with the room")
	}
	if _, err := r.Join(context.Background()); !errors.Is(err, ErrRoomClosed) {
		t.Errorf("Join() error = %v, expected ErrRoomClosed", err)
	}
}

func TestMemberEventsDropOldest(t *testing.T) {
	r := NewMemoryRoom(1)
	a := join(t, r)
	join(t, r)
	last := join(t, r)

	evt := <-a.Events()
	if evt != (PeerJoinedEvent{Peer: last.Self()}) {
		t.Errorf("event = %#v, expected the newest join", evt)
	}
}

func TestCoordinatorReady(t *testing.T) {
	r := NewMemoryRoom(0)
	c := NewCoordinator(time.Second, nil)

	if c.Ready() || c.Online() {
		t.Fatal("coordinator should start not ready")
	}
	if _, ok := c.Channel(); ok {
		t.Error("Channel() before join should be unavailable")
	}

	res := c.Join(context.Background(), r)
	if res.Outcome != OutcomeReady || res.Reason != nil {
		t.Fatalf("Join() = %+v, expected ready", res)
	}
	if !c.Ready() || !c.Online() {
		t.Error("coordinator should be ready and online")
	}
	if r.Count() != 1 {
		t.Errorf("room Count() = %d, expected 1", r.Count())
	}

	// Single attempt only.
	again := c.Join(context.Background(), r)
	if again.Outcome != OutcomeDegraded || r.Count() != 1 {
		t.Errorf("second Join() = %+v with %d members, expected no new attempt", again, r.Count())
	}
	got, _ := c.Result()
	if got.Outcome != OutcomeReady {
		t.Errorf("Result() = %+v, expected the first outcome", got)
	}
}

func TestCoordinatorDegraded(t *testing.T) {
	boom := errors.New("network down")
	c := NewCoordinator(0, nil)

	res := c.Join(context.Background(), JoinerFunc(func(context.Context) (Channel, error) {
		return nil, boom
	}))
	if res.Outcome != OutcomeDegraded || !errors.Is(res.Reason, boom) {
		t.Fatalf("Join() = %+v, expected degraded with reason", res)
	}
	if !c.Ready() {
		t.Error("a failed join still resolves readiness")
	}
	if c.Online() {
		t.Error("a failed join must not provide a channel")
	}
}

func TestCoordinatorTimeout(t *testing.T) {
	c := NewCoordinator(10*time.Millisecond, nil)

	res := c.Join(context.Background(), JoinerFunc(func(ctx context.Context) (Channel, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}))
	if res.Outcome != OutcomeDegraded || !errors.Is(res.Reason, context.DeadlineExceeded) {
		t.Errorf("Join() = %+v, expected degraded by deadline", res)
	}
}

func TestSetReadyIsOneWay(t *testing.T) {
	c := NewCoordinator(0, nil)
	c.SetReady(false)
	if c.Ready() {
		t.Fatal("SetReady(false) should not make it ready")
	}
	c.SetReady(true)
	c.SetReady(false)
	if !c.Ready() {
		t.Error("readiness must not flip back")
	}
}

func TestPublisherGating(t *testing.T) {
	c := NewCoordinator(0, nil)
	p := NewPublisher(c)

	if sent, err := p.PublishTransform(core.V3(1, 0, 1), 0.5); sent || err != nil {
		t.Errorf("PublishTransform() before ready = %v, %v, expected no-op", sent, err)
	}

	r := NewMemoryRoom(0)
	observer := join(t, r)
	c.Join(context.Background(), r)
	ch, _ := c.Channel()

	sent, err := p.PublishProfile(Profile{Color: "#ff0055", Avatar: core.AvatarScout})
	if !sent || err != nil {
		t.Fatalf("PublishProfile() = %v, %v", sent, err)
	}
	if v, _ := observer.Get(ch.Self(), KeyAvatar); v != "scout" {
		t.Errorf("avatar = %v, expected scout", v)
	}

	if sent, _ := p.PublishTransform(core.V3(2, 0, 3), 1); !sent {
		t.Error("first transform should be sent")
	}
	if sent, _ := p.PublishTransform(core.V3(2, 0, 3), 1); sent {
		t.Error("unchanged transform should not be re-sent")
	}
	if v, _ := observer.Get(ch.Self(), KeyPosition); v != core.V3(2, 0, 3) {
		t.Errorf("pos = %v, expected {2 0 3}", v)
	}
}

func TestProjectionDefaults(t *testing.T) {
	r := NewMemoryRoom(0)
	self := join(t, r)
	silent := join(t, r)

	p := NewProjection(0)
	p.Refresh(self)

	if p.Len() != 1 {
		t.Fatalf("Len() = %d, expected 1 (self excluded)", p.Len())
	}
	got, ok := p.Get(silent.Self())
	if !ok {
		t.Fatal("silent peer missing")
	}
	if got.Position != core.Origin || got.RotationY != 0 {
		t.Errorf("transform = %v/%v, expected origin/0", got.Position, got.RotationY)
	}
	if got.Color != "#00f0ff" || got.Avatar != core.AvatarMage {
		t.Errorf("cosmetics = %v/%v, expected #00f0ff/mage", got.Color, got.Avatar)
	}
	if got.Published {
		t.Error("Published should be false without a position")
	}
	if _, ok := p.Get(self.Self()); ok {
		t.Error("self must never be projected")
	}
}

func TestProjectionReadsValues(t *testing.T) {
	r := NewMemoryRoom(0)
	self := join(t, r)
	peer := join(t, r)

	tests := []struct {
		name  string
		key   string
		value any
		check func(Remote) bool
	}{
		{"vec pos", KeyPosition, core.V3(4, 1, -2), func(r Remote) bool { return r.Position == core.V3(4, 1, -2) }},
		{"json pos", KeyPosition, map[string]any{"x": 1.0, "y": 2.0, "z": 3.0}, func(r Remote) bool { return r.Position == core.V3(1, 2, 3) }},
		{"array pos", KeyPosition, []any{5.0, 0.0, 5.0}, func(r Remote) bool { return r.Position == core.V3(5, 0, 5) }},
		{"scalar rot", KeyRotation, 1.25, func(r Remote) bool { return r.RotationY == 1.25 }},
		{"vector rot", KeyRotation, core.V3(0, -0.5, 0), func(r Remote) bool { return r.RotationY == -0.5 }},
		{"color", KeyColor, "#CCFF00", func(r Remote) bool { return r.Color == "#ccff00" }},
		{"bad color", KeyColor, "green", func(r Remote) bool { return r.Color == DefaultColor }},
		{"avatar", KeyAvatar, "guardian", func(r Remote) bool { return r.Avatar == core.AvatarGuardian }},
		{"bad avatar", KeyAvatar, "dragon", func(r Remote) bool { return r.Avatar == DefaultAvatar }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := peer.Set(tc.key, tc.value, true); err != nil {
				t.Fatal(err)
			}
			p := NewProjection(0)
			p.Refresh(self)
			got, _ := p.Get(peer.Self())
			if !tc.check(got) {
				t.Errorf("projected %+v from %v", got, tc.value)
			}
		})
	}
}

func TestProjectionDropsDeparted(t *testing.T) {
	r := NewMemoryRoom(0)
	self := join(t, r)
	peer := join(t, r)

	p := NewProjection(0)
	p.Refresh(self)
	peer.Leave()
	p.Refresh(self)

	if p.Len() != 0 || len(p.Peers()) != 0 {
		t.Errorf("Peers() = %v, expected none after leave", p.Peers())
	}
}

func TestProjectionSmoothingConverges(t *testing.T) {
	r := NewMemoryRoom(0)
	self := join(t, r)
	peer := join(t, r)

	p := NewProjection(0.5)
	peer.Set(KeyPosition, core.V3(0, 0, 0), false)
	p.Refresh(self)

	target := core.V3(10, 0, -10)
	peer.Set(KeyPosition, target, false)
	peer.Set(KeyRotation, 3.0, false)

	p.Refresh(self)
	first, _ := p.Get(peer.Self())
	if first.Position != core.V3(5, 0, -5) {
		t.Errorf("first smoothed Position = %v, expected halfway", first.Position)
	}

	for i := 0; i < 60; i++ {
		p.Refresh(self)
	}
	got, _ := p.Get(peer.Self())
	if got.Position.Sub(target).Len() > 1e-9 {
		t.Errorf("Position = %v, expected convergence to %v", got.Position, target)
	}
	if math.Abs(got.RotationY-3.0) > 1e-9 {
		t.Errorf("RotationY = %v, expected convergence to 3", got.RotationY)
	}
}
