// Package config provides YAML-based game tuning and environment-driven
// server settings.
package config

import (
	"errors"
	"fmt"
	"time"
)

// GameConfig contains all gameplay tuning.
type GameConfig struct {
	Energy       EnergyConfig       `yaml:"energy"`
	Progression  ProgressionConfig  `yaml:"progression"`
	Interaction  InteractionConfig  `yaml:"interaction"`
	Notification NotificationConfig `yaml:"notification"`
	Movement     MovementConfig     `yaml:"movement"`
	Session      SessionConfig      `yaml:"session"`
}

// EnergyConfig defines the stamina pool and its per-frame drain/regen.
type EnergyConfig struct {
	Max         float64 `yaml:"max"`
	SprintCost  float64 `yaml:"sprint_cost"`  // Drained per frame while sprinting
	RegenMoving float64 `yaml:"regen_moving"` // Regained per frame while walking
	RegenIdle   float64 `yaml:"regen_idle"`   // Regained per frame while standing
}

// ProgressionConfig defines XP, levels and achievement tiers.
type ProgressionConfig struct {
	XPPerDiscovery int `yaml:"xp_per_discovery"`
	XPPerLevel     int `yaml:"xp_per_level"`
	// MinAchievementCount is the smallest discovery count that can unlock an
	// achievement, whatever the catalog size.
	MinAchievementCount int                 `yaml:"min_achievement_count"`
	Achievements        []AchievementConfig `yaml:"achievements"`
}

// AchievementConfig is one achievement tier, unlocked after discovering
// the given fraction of the catalog.
type AchievementConfig struct {
	Fraction float64 `yaml:"fraction"`
	Title    string  `yaml:"title"`
}

// InteractionConfig defines the proximity sensor.
type InteractionConfig struct {
	Radius float64 `yaml:"radius"`
}

// NotificationConfig defines how long notifications stay on screen.
type NotificationConfig struct {
	Duration time.Duration `yaml:"duration"`
}

// MovementConfig defines avatar locomotion.
type MovementConfig struct {
	Speed         float64 `yaml:"speed"`          // World units per second
	RunMultiplier float64 `yaml:"run_multiplier"` // Applied to Speed while sprinting
	Bounds        float64 `yaml:"bounds"`         // Half-extent of the square play area
}

// SessionConfig defines multiplayer session behaviour.
type SessionConfig struct {
	JoinTimeout time.Duration `yaml:"join_timeout"`
	Smoothing   float64       `yaml:"smoothing"` // 0 renders remote peers at their last known value
}

// Validate checks the configuration for values the game cannot run with.
func (c GameConfig) Validate() error {
	var errs []error

	if c.Energy.Max <= 0 {
		errs = append(errs, fmt.Errorf("energy.max must be positive, got %v", c.Energy.Max))
	}
	if c.Energy.SprintCost < 0 || c.Energy.RegenMoving < 0 || c.Energy.RegenIdle < 0 {
		errs = append(errs, errors.New("energy rates must not be negative"))
	}
	if c.Progression.XPPerDiscovery <= 0 {
		errs = append(errs, fmt.Errorf("progression.xp_per_discovery must be positive, got %d", c.Progression.XPPerDiscovery))
	}
	if c.Progression.XPPerLevel <= 0 {
		errs = append(errs, fmt.Errorf("progression.xp_per_level must be positive, got %d", c.Progression.XPPerLevel))
	}
	if c.Progression.MinAchievementCount < 0 {
		errs = append(errs, errors.New("progression.min_achievement_count must not be negative"))
	}
	for i, a := range c.Progression.Achievements {
		if a.Fraction <= 0 || a.Fraction > 1 {
			errs = append(errs, fmt.Errorf("progression.achievements[%d].fraction must be in (0, 1], got %v", i, a.Fraction))
		}
		if a.Title == "" {
			errs = append(errs, fmt.Errorf("progression.achievements[%d].title is empty", i))
		}
	}
	if c.Interaction.Radius <= 0 {
		errs = append(errs, fmt.Errorf("interaction.radius must be positive, got %v", c.Interaction.Radius))
	}
	if c.Notification.Duration <= 0 {
		errs = append(errs, fmt.Errorf("notification.duration must be positive, got %v", c.Notification.Duration))
	}
	if c.Movement.Speed <= 0 || c.Movement.RunMultiplier < 1 {
		errs = append(errs, errors.New("movement.speed must be positive and movement.run_multiplier at least 1"))
	}
	if c.Movement.Bounds <= 0 {
		errs = append(errs, fmt.Errorf("movement.bounds must be positive, got %v", c.Movement.Bounds))
	}
	if c.Session.JoinTimeout < 0 {
		errs = append(errs, errors.New("session.join_timeout must not be negative"))
	}
	if c.Session.Smoothing < 0 || c.Session.Smoothing >= 1 {
		errs = append(errs, fmt.Errorf("session.smoothing must be in [0, 1), got %v", c.Session.Smoothing))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
