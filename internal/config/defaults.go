package config

import (
	_ "embed"
)

//go:embed defaults/dusk.yaml
var defaultDuskYAML []byte

// DefaultDuskConfig returns the default configuration.
// It mirrors defaults/dusk.yaml and is used when the embedded file cannot be parsed.
func DefaultDuskConfig() DuskConfig {
	return DuskConfig{
		Physics: PhysicsConfig{
			Gravity:      800,
			MaxFallSpeed: 1000,
		},
		Player: PlayerConfig{
			Speed:        200,
			JumpVelocity: -400,
			Width:        50,
			Height:       70,
			AttackRange:  80,
			AttackHeight: 60,
			Knockback: KnockbackConfig{
				X: 200,
				Y: -200,
			},
			Timing: PlayerTiming{
				GroundedGraceMS:     100,
				CoyoteMS:            80,
				JumpBufferMS:        80,
				AttackCooldownMS:    500,
				AttackDurationMS:    300,
				InvulnerabilityMS:   1000,
				AnimationDebounceMS: 100,
				HealTintMS:          200,
				LevelUpTintMS:       500,
			},
			Stats: BaseStats{
				Health:                100,
				AttackPower:           10,
				Defense:               5,
				ExperienceToNextLevel: 100,
			},
		},
		Enemy: EnemyConfig{
			Health:           30,
			AttackPower:      20,
			Speed:            50,
			PatrolRadius:     150,
			ExperienceReward: 25,
			Width:            32,
			Height:           32,
			HitTintMS:        100,
			DeathFadeMS:      500,
		},
		Progression: ProgressionCurve{
			GrowthFactor:    1.5,
			HealthPerLevel:  20,
			AttackPerLevel:  5,
			DefensePerLevel: 2,
		},
		Session: SessionConfig{
			CoinValue:  10,
			FallLimit:  800,
			PotionHeal: 50,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  1.0,
				HealthMultiplier: 1.0,
				DamageMultiplier: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultDuskYAML
}
