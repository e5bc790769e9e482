// Package sim implements the dusk gameplay simulation: the player and enemy
// state machines, melee hit resolution, the leveling curve, and the session
// that ties them together.
//
// The simulation is single-threaded and clock-driven. Every operation that
// depends on time takes the current timestamp explicitly, so a recorded
// sequence of inputs and timestamps always replays to the same state.
package sim

import "github.com/vovakirdan/duskfall/internal/config"

// Stats is the player's RPG baseline.
type Stats struct {
	Health                int `yaml:"health"`
	MaxHealth             int `yaml:"max_health"`
	AttackPower           int `yaml:"attack_power"`
	Defense               int `yaml:"defense"`
	Level                 int `yaml:"level"`
	Experience            int `yaml:"experience"`
	ExperienceToNextLevel int `yaml:"experience_to_next_level"`
}

// NewStats returns level 1 stats at full health.
func NewStats(base config.BaseStats) Stats {
	return Stats{
		Health:                base.Health,
		MaxHealth:             base.Health,
		AttackPower:           base.AttackPower,
		Defense:               base.Defense,
		Level:                 1,
		Experience:            0,
		ExperienceToNextLevel: base.ExperienceToNextLevel,
	}
}

// DefaultStats returns the stats of a fresh character.
func DefaultStats() Stats {
	return NewStats(config.DefaultDuskConfig().Player.Stats)
}

// clamped keeps health within [0, MaxHealth].
func (s Stats) clamped() Stats {
	s.Health = max(0, min(s.Health, s.MaxHealth))
	return s
}
