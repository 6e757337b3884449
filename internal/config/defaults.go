package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the default game tuning.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Energy: EnergyConfig{
			Max:         100,
			SprintCost:  0.5,
			RegenMoving: 0.25,
			RegenIdle:   0.1,
		},
		Progression: ProgressionConfig{
			XPPerDiscovery:      150,
			XPPerLevel:          500,
			MinAchievementCount: 3,
			Achievements: []AchievementConfig{
				{Fraction: 0.25, Title: "ACHIEVEMENT: NOVICE ARCHIVIST"},
				{Fraction: 0.50, Title: "ACHIEVEMENT: DATA COLLECTOR"},
				{Fraction: 0.75, Title: "ACHIEVEMENT: MASTER ARCHIVIST"},
				{Fraction: 1.00, Title: "ACHIEVEMENT: AETHERIA LEGEND"},
			},
		},
		Interaction: InteractionConfig{
			Radius: 2.0,
		},
		Notification: NotificationConfig{
			Duration: 4 * time.Second,
		},
		Movement: MovementConfig{
			Speed:         5,
			RunMultiplier: 1.8,
			Bounds:        40,
		},
		Session: SessionConfig{
			JoinTimeout: 5 * time.Second,
		},
	}
}

// DefaultYAML returns the embedded default game YAML.
func DefaultYAML() []byte {
	return defaultGameYAML
}
