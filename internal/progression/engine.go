// Package progression implements the gameplay progression rules: the energy
// pool, experience and levels, and discovery bookkeeping with achievements.
//
// An Engine is owned by a single game loop and is not safe for concurrent use.
package progression

import (
	"fmt"

	"github.com/vovakirdan/aetheria/internal/catalog"
	"github.com/vovakirdan/aetheria/internal/config"
	"github.com/vovakirdan/aetheria/internal/notify"
)

// Engine holds progression state and its transition rules.
type Engine struct {
	maxEnergy      float64
	xpPerDiscovery int
	xpPerLevel     int
	tiers          map[int]string

	energy       float64
	xp           int
	discovered   map[catalog.ArtifactID]struct{}
	order        []catalog.ArtifactID
	achievements []string
}

// New creates an engine for a catalog of catalogSize artifacts.
// Energy starts full, XP at zero.
func New(energy config.EnergyConfig, prog config.ProgressionConfig, catalogSize int) *Engine {
	e := &Engine{
		maxEnergy:      energy.Max,
		xpPerDiscovery: prog.XPPerDiscovery,
		xpPerLevel:     prog.XPPerLevel,
		tiers:          make(map[int]string),
		energy:         energy.Max,
		discovered:     make(map[catalog.ArtifactID]struct{}),
	}
	if e.xpPerLevel <= 0 {
		e.xpPerLevel = 1
	}
	for _, t := range prog.Tiers(catalogSize) {
		e.tiers[t.Count] = t.Title
	}
	return e
}

// NewDefault creates an engine with DefaultGameConfig tuning.
func NewDefault(catalogSize int) *Engine {
	cfg := config.DefaultGameConfig()
	return New(cfg.Energy, cfg.Progression, catalogSize)
}

// Energy returns the current energy.
func (e *Engine) Energy() float64 { return e.energy }

// MaxEnergy returns the energy ceiling.
func (e *Engine) MaxEnergy() float64 { return e.maxEnergy }

// XP returns total experience.
func (e *Engine) XP() int { return e.xp }

// Level returns the level derived from XP.
func (e *Engine) Level() int { return LevelForXP(e.xp, e.xpPerLevel) }

// XPPerLevel returns the experience needed per level.
func (e *Engine) XPPerLevel() int { return e.xpPerLevel }

// DecreaseEnergy drains energy, never below zero.
// Non-positive amounts are ignored.
func (e *Engine) DecreaseEnergy(amount float64) {
	if !(amount > 0) {
		return
	}
	e.energy = max(0, e.energy-amount)
}

// RegenerateEnergy restores energy, never above the maximum.
// Non-positive amounts are ignored.
func (e *Engine) RegenerateEnergy(amount float64) {
	if !(amount > 0) {
		return
	}
	e.energy = min(e.maxEnergy, e.energy+amount)
}

// HasEnergy reports whether any energy is left.
func (e *Engine) HasEnergy() bool { return e.energy > 0 }

// DiscoverArtifact records a discovery. The first discovery of id awards XP
// and returns exactly one notification: an achievement when the new count
// hits a tier, otherwise an info message. Rediscovery changes nothing and
// returns false.
func (e *Engine) DiscoverArtifact(id catalog.ArtifactID) (notify.Notification, bool) {
	if _, ok := e.discovered[id]; ok {
		return notify.Notification{}, false
	}

	e.discovered[id] = struct{}{}
	e.order = append(e.order, id)
	e.xp += e.xpPerDiscovery

	if title, ok := e.tiers[len(e.discovered)]; ok {
		e.achievements = append(e.achievements, title)
		return notify.Achievement(title), true
	}
	return notify.Info(fmt.Sprintf("DATA FRAGMENT RECOVERED (+%d XP)", e.xpPerDiscovery)), true
}

// IsDiscovered reports whether id has been discovered.
func (e *Engine) IsDiscovered(id catalog.ArtifactID) bool {
	_, ok := e.discovered[id]
	return ok
}

// DiscoveredCount returns the number of distinct discoveries.
func (e *Engine) DiscoveredCount() int { return len(e.discovered) }

// Discovered returns discovered ids in discovery order.
func (e *Engine) Discovered() []catalog.ArtifactID {
	return append([]catalog.ArtifactID(nil), e.order...)
}

// Achievements returns unlocked achievement titles in unlock order.
func (e *Engine) Achievements() []string {
	return append([]string(nil), e.achievements...)
}

// Snapshot is a read-only copy of progression state for display.
type Snapshot struct {
	Energy       float64
	MaxEnergy    float64
	XP           int
	Level        int
	LevelXP      int // XP earned within the current level
	XPPerLevel   int
	Discovered   []catalog.ArtifactID
	Achievements []string
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Energy:       e.energy,
		MaxEnergy:    e.maxEnergy,
		XP:           e.xp,
		Level:        e.Level(),
		LevelXP:      e.xp % e.xpPerLevel,
		XPPerLevel:   e.xpPerLevel,
		Discovered:   e.Discovered(),
		Achievements: e.Achievements(),
	}
}

// LevelForXP returns floor(xp/xpPerLevel)+1. Negative XP counts as zero.
func LevelForXP(xp, xpPerLevel int) int {
	if xpPerLevel <= 0 {
		xpPerLevel = 1
	}
	if xp < 0 {
		xp = 0
	}
	return xp/xpPerLevel + 1
}
