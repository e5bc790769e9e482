package sim

import (
	"math"

	"github.com/vovakirdan/duskfall/internal/config"
)

// Curve converts experience into levels.
//
// Each level costs the current threshold, after which the threshold grows by
// GrowthFactor (floored) and the baseline stats improve by the per-level
// amounts. A level-up always restores full health.
type Curve struct {
	GrowthFactor    float64
	HealthPerLevel  int
	AttackPerLevel  int
	DefensePerLevel int
}

// NewCurve builds a curve from configuration.
func NewCurve(cfg config.ProgressionCurve) Curve {
	return Curve{
		GrowthFactor:    cfg.GrowthFactor,
		HealthPerLevel:  cfg.HealthPerLevel,
		AttackPerLevel:  cfg.AttackPerLevel,
		DefensePerLevel: cfg.DefensePerLevel,
	}
}

// DefaultCurve is the stock curve: x1.5 thresholds, +20 health, +5 attack, +2 defense.
func DefaultCurve() Curve {
	return NewCurve(config.DefaultDuskConfig().Progression)
}

// Grant adds amount experience and applies every level-up it pays for.
// Non-positive amounts return stats unchanged.
func (c Curve) Grant(stats Stats, amount int) Stats {
	if amount <= 0 {
		return stats
	}

	stats.Experience += amount
	if stats.ExperienceToNextLevel < 1 {
		stats.ExperienceToNextLevel = 1
	}

	// Loop, a single grant can pay for several levels
	for stats.Experience >= stats.ExperienceToNextLevel {
		stats.Level++
		stats.Experience -= stats.ExperienceToNextLevel
		stats.ExperienceToNextLevel = c.next(stats.ExperienceToNextLevel)
		stats.MaxHealth += c.HealthPerLevel
		stats.Health = stats.MaxHealth
		stats.AttackPower += c.AttackPerLevel
		stats.Defense += c.DefensePerLevel
	}
	return stats
}

// next returns the threshold following cur. Never below 1.
func (c Curve) next(cur int) int {
	n := int(math.Floor(float64(cur) * c.GrowthFactor))
	if n < 1 {
		return 1
	}
	return n
}
