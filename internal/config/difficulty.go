package config

import "math"

// DifficultyManager scales enemy parameters based on accumulated gold.
// Scaling is evaluated when enemies spawn, so each enemy keeps constant stats
// for its whole life.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) for the given gold.
func (d *DifficultyManager) Level(score int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	switch d.cfg.Progression.Type {
	case "score":
	default:
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}
	progress := clampF(float64(score)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns an enemy patrol speed scaled for the given gold.
func (d *DifficultyManager) Speed(base float64, score int) float64 {
	return base * (1.0 + d.Level(score)*d.cfg.Scaling.SpeedMultiplier)
}

// Health returns enemy health scaled for the given gold. Never below 1.
func (d *DifficultyManager) Health(base int, score int) int {
	return scaleInt(base, d.Level(score)*d.cfg.Scaling.HealthMultiplier)
}

// Damage returns enemy contact damage scaled for the given gold. Never below 1.
func (d *DifficultyManager) Damage(base int, score int) int {
	return scaleInt(base, d.Level(score)*d.cfg.Scaling.DamageMultiplier)
}

func scaleInt(base int, extra float64) int {
	v := int(math.Floor(float64(base) * (1.0 + extra)))
	if v < 1 {
		return 1
	}
	return v
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
