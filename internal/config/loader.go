package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "dusk.yaml"

// LoadDusk loads the platformer configuration.
// Search order: customPath -> ~/.dusk/configs/dusk.yaml -> ./configs/dusk.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it sets.
func LoadDusk(customPath string) (DuskConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultDuskConfig(), fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := ParseDusk(data)
		if err != nil {
			return DefaultDuskConfig(), fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseDusk(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := ParseDusk(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseDusk(defaultDuskYAML)
	if err != nil {
		return DefaultDuskConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseDusk decodes YAML over DefaultDuskConfig. Values that break the
// game's rules are rejected and the defaults returned.
func ParseDusk(data []byte) (DuskConfig, error) {
	cfg := DefaultDuskConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultDuskConfig(), err
	}
	if err := cfg.validate(); err != nil {
		return DefaultDuskConfig(), err
	}
	return cfg, nil
}

func (c DuskConfig) validate() error {
	p, e := c.Player, c.Enemy
	switch {
	case c.Physics.Gravity <= 0 || c.Physics.MaxFallSpeed <= 0:
		return errors.New("physics: gravity and max fall speed must be positive")
	case p.Speed < 0:
		return fmt.Errorf("player: speed %v negative", p.Speed)
	case p.JumpVelocity >= 0:
		return fmt.Errorf("player: jump velocity %v must be negative (up)", p.JumpVelocity)
	case p.Width <= 0 || p.Height <= 0 || p.AttackRange <= 0 || p.AttackHeight <= 0:
		return errors.New("player: body and attack sizes must be positive")
	case p.Stats.Health <= 0:
		return fmt.Errorf("player: health %d not positive", p.Stats.Health)
	case p.Stats.AttackPower < 0 || p.Stats.Defense < 0:
		return errors.New("player: negative stat")
	case p.Stats.ExperienceToNextLevel < 1:
		return fmt.Errorf("player: experience threshold %d below 1", p.Stats.ExperienceToNextLevel)
	case e.Health <= 0:
		return fmt.Errorf("enemy: health %d not positive", e.Health)
	case e.AttackPower < 0 || e.Speed < 0 || e.PatrolRadius < 0 || e.ExperienceReward < 0:
		return errors.New("enemy: negative stat")
	case e.Width <= 0 || e.Height <= 0:
		return errors.New("enemy: size must be positive")
	case e.HitTintMS < 0 || e.DeathFadeMS < 0:
		return errors.New("enemy: negative timing")
	case c.Progression.GrowthFactor < 1:
		return fmt.Errorf("progression: growth factor %v below 1", c.Progression.GrowthFactor)
	case c.Progression.HealthPerLevel < 0 || c.Progression.AttackPerLevel < 0 || c.Progression.DefensePerLevel < 0:
		return errors.New("progression: negative per-level growth")
	case c.Session.CoinValue < 0 || c.Session.PotionHeal < 0:
		return errors.New("session: negative coin value or potion heal")
	case c.Session.FallLimit <= 0:
		return fmt.Errorf("session: fall limit %v not positive", c.Session.FallLimit)
	}

	t := p.Timing
	for name, ms := range map[string]int{
		"grounded_grace_ms":     t.GroundedGraceMS,
		"coyote_ms":             t.CoyoteMS,
		"jump_buffer_ms":        t.JumpBufferMS,
		"attack_cooldown_ms":    t.AttackCooldownMS,
		"attack_duration_ms":    t.AttackDurationMS,
		"invulnerability_ms":    t.InvulnerabilityMS,
		"animation_debounce_ms": t.AnimationDebounceMS,
		"heal_tint_ms":          t.HealTintMS,
		"level_up_tint_ms":      t.LevelUpTintMS,
	} {
		if ms < 0 {
			return fmt.Errorf("player: timing %s = %d negative", name, ms)
		}
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dusk", "configs", filename)
}

// ApplyDuskPreset modifies the config based on a difficulty preset.
func ApplyDuskPreset(cfg *DuskConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Adjust survivability based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Player.Stats.Health = 150
		cfg.Session.PotionHeal = 75
	case DifficultyHard:
		cfg.Player.Stats.Health = 75
		cfg.Player.Timing.InvulnerabilityMS = 700
	}
}
