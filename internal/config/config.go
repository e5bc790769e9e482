// Package config provides YAML-based game configuration loading and
// difficulty management for dusk stages.
package config

import "time"

// DuskConfig contains all tuning for the platformer simulation.
type DuskConfig struct {
	Physics     PhysicsConfig    `yaml:"physics"`
	Player      PlayerConfig     `yaml:"player"`
	Enemy       EnemyConfig      `yaml:"enemy"`
	Progression ProgressionCurve `yaml:"progression"`
	Session     SessionConfig    `yaml:"session"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig defines world physics in pixels and seconds.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`        // px/s^2, positive is down
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // px/s
}

// PlayerConfig defines player movement, combat and starting stats.
type PlayerConfig struct {
	Speed        float64         `yaml:"speed"`         // Horizontal walk speed, px/s
	JumpVelocity float64         `yaml:"jump_velocity"` // Negative is up, px/s
	Width        float64         `yaml:"width"`
	Height       float64         `yaml:"height"`
	AttackRange  float64         `yaml:"attack_range"`  // Hitbox width in front of the player
	AttackHeight float64         `yaml:"attack_height"` // Hitbox height
	Knockback    KnockbackConfig `yaml:"knockback"`
	Timing       PlayerTiming    `yaml:"timing"`
	Stats        BaseStats       `yaml:"stats"`
}

// KnockbackConfig is the velocity applied when the player touches an enemy.
type KnockbackConfig struct {
	X float64 `yaml:"x"` // Applied away from the enemy
	Y float64 `yaml:"y"` // Negative is up
}

// PlayerTiming holds every timing window of the player state machine, in ms.
type PlayerTiming struct {
	GroundedGraceMS     int `yaml:"grounded_grace_ms"`
	CoyoteMS            int `yaml:"coyote_ms"`
	JumpBufferMS        int `yaml:"jump_buffer_ms"`
	AttackCooldownMS    int `yaml:"attack_cooldown_ms"`
	AttackDurationMS    int `yaml:"attack_duration_ms"`
	InvulnerabilityMS   int `yaml:"invulnerability_ms"`
	AnimationDebounceMS int `yaml:"animation_debounce_ms"`
	HealTintMS          int `yaml:"heal_tint_ms"`
	LevelUpTintMS       int `yaml:"level_up_tint_ms"`
}

// BaseStats are the player's stats on a fresh start or reset.
type BaseStats struct {
	Health                int `yaml:"health"`
	AttackPower           int `yaml:"attack_power"`
	Defense               int `yaml:"defense"`
	ExperienceToNextLevel int `yaml:"experience_to_next_level"`
}

// EnemyConfig defines the patrolling enemy archetype.
type EnemyConfig struct {
	Health           int     `yaml:"health"`
	AttackPower      int     `yaml:"attack_power"` // Contact damage dealt to the player
	Speed            float64 `yaml:"speed"`        // px/s
	PatrolRadius     float64 `yaml:"patrol_radius"`
	ExperienceReward int     `yaml:"experience_reward"`
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	HitTintMS        int     `yaml:"hit_tint_ms"`
	DeathFadeMS      int     `yaml:"death_fade_ms"`
}

// ProgressionCurve defines experience thresholds and per-level stat growth.
type ProgressionCurve struct {
	GrowthFactor    float64 `yaml:"growth_factor"` // Threshold multiplier per level
	HealthPerLevel  int     `yaml:"health_per_level"`
	AttackPerLevel  int     `yaml:"attack_per_level"`
	DefensePerLevel int     `yaml:"defense_per_level"`
}

// SessionConfig defines session-level rules.
type SessionConfig struct {
	CoinValue  int     `yaml:"coin_value"`  // Gold per coin
	FallLimit  float64 `yaml:"fall_limit"`  // y beyond which the player is lost
	PotionHeal int     `yaml:"potion_heal"` // Health restored by a health potion
}

// DifficultyConfig defines how enemy stats scale.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases across runs.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score" or "none"
	MaxAt int    `yaml:"max_at"` // Gold at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes at max level.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Added to enemy speed multiplier
	HealthMultiplier float64 `yaml:"health_multiplier"` // Added to enemy health multiplier
	DamageMultiplier float64 `yaml:"damage_multiplier"` // Added to enemy damage multiplier
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset.
// Unknown strings return the empty preset, meaning "use the config as is".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ms converts a millisecond count from YAML into a duration.
func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// GroundedGrace is how long grounding survives without contact.
func (t PlayerTiming) GroundedGrace() time.Duration { return ms(t.GroundedGraceMS) }

// Coyote is the post-ledge jump window.
func (t PlayerTiming) Coyote() time.Duration { return ms(t.CoyoteMS) }

// JumpBuffer is how long an early jump press is remembered.
func (t PlayerTiming) JumpBuffer() time.Duration { return ms(t.JumpBufferMS) }

// AttackCooldown is the minimum time between attack starts.
func (t PlayerTiming) AttackCooldown() time.Duration { return ms(t.AttackCooldownMS) }

// AttackDuration is the movement lockout after an attack starts.
func (t PlayerTiming) AttackDuration() time.Duration { return ms(t.AttackDurationMS) }

// Invulnerability is the post-hit damage immunity window.
func (t PlayerTiming) Invulnerability() time.Duration { return ms(t.InvulnerabilityMS) }

// AnimationDebounce is the minimum interval between animation tag changes.
func (t PlayerTiming) AnimationDebounce() time.Duration { return ms(t.AnimationDebounceMS) }

// HealTint is how long the heal flash lasts.
func (t PlayerTiming) HealTint() time.Duration { return ms(t.HealTintMS) }

// LevelUpTint is how long the level-up flash lasts.
func (t PlayerTiming) LevelUpTint() time.Duration { return ms(t.LevelUpTintMS) }

// HitTint is how long an enemy flashes after being struck.
func (e EnemyConfig) HitTint() time.Duration { return ms(e.HitTintMS) }

// DeathFade is how long a dead enemy stays visible before removal.
func (e EnemyConfig) DeathFade() time.Duration { return ms(e.DeathFadeMS) }
