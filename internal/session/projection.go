package session

import (
	"math"

	"github.com/vovakirdan/aetheria/internal/core"
)

// Remote is the projected state of another peer.
type Remote struct {
	ID        PeerID
	Position  core.Vec3
	RotationY float64
	Color     core.Color
	Avatar    core.AvatarKind

	// Published reports whether the peer has sent a position yet.
	Published bool
}

// Defaults for peers that have not published a value.
var (
	DefaultPosition = core.Origin
	DefaultRotation = 0.0
	DefaultColor    = core.DefaultAccent
	DefaultAvatar   = core.DefaultAvatar
)

// Projection keeps the last known state of every remote peer.
type Projection struct {
	smoothing float64
	peers     map[PeerID]*Remote
	order     []PeerID
}

// NewProjection creates a projection. smoothing in [0, 1) is the fraction of
// the previous transform kept each refresh; 0 renders the last known value
// directly, and any smaller-than-one value converges to it.
func NewProjection(smoothing float64) *Projection {
	if smoothing < 0 || smoothing >= 1 || math.IsNaN(smoothing) {
		smoothing = 0
	}
	return &Projection{
		smoothing: smoothing,
		peers:     make(map[PeerID]*Remote),
	}
}

// Refresh reads every peer except self from ch. Peers that left are dropped.
func (p *Projection) Refresh(ch Channel) {
	self := ch.Self()
	seen := make(map[PeerID]bool)
	order := p.order[:0]

	for _, id := range ch.Peers() {
		if id == self || seen[id] {
			continue
		}
		seen[id] = true
		order = append(order, id)
		p.refreshPeer(ch, id)
	}

	for id := range p.peers {
		if !seen[id] {
			delete(p.peers, id)
		}
	}
	p.order = order
}

func (p *Projection) refreshPeer(ch Channel, id PeerID) {
	target := Remote{
		ID:        id,
		Position:  DefaultPosition,
		RotationY: DefaultRotation,
		Color:     DefaultColor,
		Avatar:    DefaultAvatar,
	}
	if v, ok := ch.Get(id, KeyPosition); ok {
		if pos, ok := decodeVec3(v); ok {
			target.Position = pos
			target.Published = true
		}
	}
	if v, ok := ch.Get(id, KeyRotation); ok {
		if rot, ok := decodeRotation(v); ok {
			target.RotationY = rot
		}
	}
	if v, ok := ch.Get(id, KeyColor); ok {
		if c, ok := decodeColor(v); ok {
			target.Color = c
		}
	}
	if v, ok := ch.Get(id, KeyAvatar); ok {
		if a, ok := decodeAvatar(v); ok {
			target.Avatar = a
		}
	}

	prev, ok := p.peers[id]
	if !ok || p.smoothing == 0 || !prev.Published || !target.Published {
		p.peers[id] = &target
		return
	}

	t := 1 - p.smoothing
	target.Position = prev.Position.Lerp(target.Position, t)
	target.RotationY = core.WrapAngle(prev.RotationY + core.WrapAngle(target.RotationY-prev.RotationY)*t)
	p.peers[id] = &target
}

// Peers returns the projected peers in roster order.
func (p *Projection) Peers() []Remote {
	out := make([]Remote, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, *p.peers[id])
	}
	return out
}

// Get returns one projected peer.
func (p *Projection) Get(id PeerID) (Remote, bool) {
	r, ok := p.peers[id]
	if !ok {
		return Remote{}, false
	}
	return *r, true
}

// Len returns the number of projected peers.
func (p *Projection) Len() int {
	return len(p.order)
}

// Clear forgets every peer.
func (p *Projection) Clear() {
	p.peers = make(map[PeerID]*Remote)
	p.order = nil
}
