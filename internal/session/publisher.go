package session

import (
	"fmt"

	"github.com/vovakirdan/aetheria/internal/core"
)

// Profile is the cosmetic identity a peer publishes once on join.
type Profile struct {
	Color  core.Color
	Avatar core.AvatarKind
}

// Publisher writes the local peer's state to the room. Every method is a
// no-op until the coordinator is ready with a channel.
type Publisher struct {
	coord *Coordinator

	lastPos core.Vec3
	lastRot float64
	sent    bool
}

// NewPublisher creates a publisher gated on coord.
func NewPublisher(coord *Coordinator) *Publisher {
	return &Publisher{coord: coord}
}

// PublishProfile sends color and avatar reliably.
// Reports whether anything was sent.
func (p *Publisher) PublishProfile(profile Profile) (bool, error) {
	ch, ok := p.coord.Channel()
	if !ok {
		return false, nil
	}
	if err := ch.Set(KeyColor, string(profile.Color), true); err != nil {
		return false, fmt.Errorf("session: publish color: %w", err)
	}
	if err := ch.Set(KeyAvatar, string(profile.Avatar), true); err != nil {
		return false, fmt.Errorf("session: publish avatar: %w", err)
	}
	return true, nil
}

// PublishTransform sends position and facing. Unchanged transforms are not
// re-sent. Reports whether anything was sent.
func (p *Publisher) PublishTransform(pos core.Vec3, rotY float64) (bool, error) {
	ch, ok := p.coord.Channel()
	if !ok {
		return false, nil
	}
	if p.sent && pos == p.lastPos && rotY == p.lastRot {
		return false, nil
	}
	if err := ch.Set(KeyPosition, pos, false); err != nil {
		return false, fmt.Errorf("session: publish position: %w", err)
	}
	if err := ch.Set(KeyRotation, rotY, false); err != nil {
		return false, fmt.Errorf("session: publish rotation: %w", err)
	}
	p.lastPos, p.lastRot, p.sent = pos, rotY, true
	return true, nil
}
