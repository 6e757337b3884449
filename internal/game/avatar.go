package game

import (
	"math"

	"github.com/vovakirdan/aetheria/internal/config"
	"github.com/vovakirdan/aetheria/internal/core"
)

// Spawn is where the local avatar starts.
var Spawn = core.Origin

// Avatar is the locally controlled body. Movement is kinematic: position is
// integrated from the input direction and clamped to the play area.
type Avatar struct {
	Position  core.Vec3
	RotationY float64 // Facing, atan2(dx, dz) of the last movement
	Moving    bool
	Sprinting bool

	speed         float64
	runMultiplier float64
	bounds        float64
}

// NewAvatar creates an avatar at Spawn.
func NewAvatar(cfg config.MovementConfig) Avatar {
	return Avatar{
		Position:      Spawn,
		speed:         cfg.Speed,
		runMultiplier: cfg.RunMultiplier,
		bounds:        cfg.Bounds,
	}
}

// Move advances the avatar by dt seconds along dir (a unit ground vector or
// zero). Reports whether it moved.
func (a *Avatar) Move(dir core.Vec3, sprint bool, dt float64) bool {
	a.Moving = dir.LenXZ() > 0
	a.Sprinting = sprint && a.Moving
	if !a.Moving {
		return false
	}

	speed := a.speed
	if a.Sprinting {
		speed *= a.runMultiplier
	}

	next := a.Position.Add(dir.Scale(speed * dt))
	// The boundary itself is outside the play area.
	limit := math.Nextafter(a.bounds, 0)
	next.X = core.ClampF(next.X, -limit, limit)
	next.Z = core.ClampF(next.Z, -limit, limit)

	a.Position = next
	a.RotationY = math.Atan2(dir.X, dir.Z)
	return true
}

// Teleport places the avatar at pos without changing facing.
func (a *Avatar) Teleport(pos core.Vec3) {
	a.Position = pos
}
