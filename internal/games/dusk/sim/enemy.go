package sim

import (
	"time"

	"github.com/vovakirdan/duskfall/internal/config"
	"github.com/vovakirdan/duskfall/internal/core"
)

// deathRise is how far a dying enemy floats up while fading out.
const deathRise = 50.0

// EnemyStats are the spawn-time numbers of a patrolling enemy.
type EnemyStats struct {
	Health           int
	AttackPower      int
	ExperienceReward int
	Speed            float64
	PatrolRadius     float64
}

// EnemyStatsFrom reads the archetype from configuration.
func EnemyStatsFrom(cfg config.EnemyConfig) EnemyStats {
	return EnemyStats{
		Health:           cfg.Health,
		AttackPower:      cfg.AttackPower,
		ExperienceReward: cfg.ExperienceReward,
		Speed:            cfg.Speed,
		PatrolRadius:     cfg.PatrolRadius,
	}
}

// EnemySnapshot is a read-only view of an enemy.
type EnemySnapshot struct {
	ID        int
	Pos       core.Vec
	Bounds    core.Box
	Direction int
	Health    int
	MaxHealth int
	Hit       bool    // Recently struck
	Dead      bool    // Fading out
	Removed   bool    // Fade finished, gone from play
	Alpha     float64 // 1 while alive, falls to 0 over the fade
}

// Enemy patrols back and forth around its spawn point.
type Enemy struct {
	id     int
	stats  EnemyStats
	health int

	pos    core.Vec
	origin float64
	dir    int
	w, h   float64

	hitTint   time.Duration
	deathFade time.Duration
	hitUntil  time.Duration

	dead    bool
	diedAt  time.Duration
	removed bool

	lastTick time.Duration
}

// NewEnemy spawns an enemy at pos, patrolling rightwards first.
// spawnAt is the timestamp movement is measured from.
func NewEnemy(id int, pos core.Vec, stats EnemyStats, cfg config.EnemyConfig, spawnAt time.Duration) *Enemy {
	return &Enemy{
		id:        id,
		stats:     stats,
		health:    stats.Health,
		pos:       pos,
		origin:    pos.X,
		dir:       1,
		w:         cfg.Width,
		h:         cfg.Height,
		hitTint:   cfg.HitTint(),
		deathFade: cfg.DeathFade(),
		hitUntil:  never,
		diedAt:    never,
		lastTick:  spawnAt,
	}
}

// Tick moves the enemy along its patrol, or advances its death fade.
func (e *Enemy) Tick(now time.Duration) EnemySnapshot {
	if now <= e.lastTick {
		return e.Snapshot(e.lastTick)
	}
	dt := now - e.lastTick
	e.lastTick = now

	if e.dead {
		if !e.removed && now-e.diedAt >= e.deathFade {
			e.removed = true
		}
		return e.Snapshot(now)
	}

	e.pos.X += float64(e.dir) * e.stats.Speed * dt.Seconds()

	// Reflect only once strictly past the patrol edge
	if e.pos.X > e.origin+e.stats.PatrolRadius {
		e.dir = -1
	} else if e.pos.X < e.origin-e.stats.PatrolRadius {
		e.dir = 1
	}
	return e.Snapshot(now)
}

// ApplyDamage reduces health and reports whether this hit killed the enemy.
// Dead enemies and non-positive amounts are ignored.
func (e *Enemy) ApplyDamage(amount int, now time.Duration) bool {
	if e.dead || amount <= 0 {
		return false
	}

	e.health -= amount
	e.hitUntil = now + e.hitTint
	if e.health > 0 {
		return false
	}

	e.health = 0
	e.dead = true
	e.diedAt = now
	return true
}

// ID returns the enemy's identity within its session.
func (e *Enemy) ID() int { return e.id }

// Dead reports whether the enemy has died.
func (e *Enemy) Dead() bool { return e.dead }

// Removed reports whether the death fade finished.
func (e *Enemy) Removed() bool { return e.removed }

// AttackPower is the contact damage dealt to the player.
func (e *Enemy) AttackPower() int { return e.stats.AttackPower }

// ExperienceReward is granted to the player on kill.
func (e *Enemy) ExperienceReward() int { return e.stats.ExperienceReward }

// Pos returns the current center.
func (e *Enemy) Pos() core.Vec { return e.pos }

// Bounds returns the current bounding box.
func (e *Enemy) Bounds() core.Box {
	return core.BoxAt(e.pos.X, e.pos.Y, e.w, e.h)
}

// Snapshot returns the read-only view at now.
func (e *Enemy) Snapshot(now time.Duration) EnemySnapshot {
	snap := EnemySnapshot{
		ID:        e.id,
		Pos:       e.pos,
		Bounds:    e.Bounds(),
		Direction: e.dir,
		Health:    e.health,
		MaxHealth: e.stats.Health,
		Hit:       !e.dead && now < e.hitUntil,
		Dead:      e.dead,
		Removed:   e.removed,
		Alpha:     1,
	}
	if e.dead {
		progress := 1.0
		if e.deathFade > 0 {
			progress = core.ClampF(float64(now-e.diedAt)/float64(e.deathFade), 0, 1)
		}
		snap.Alpha = 1 - progress
		snap.Pos.Y -= deathRise * progress
		snap.Bounds = core.BoxAt(snap.Pos.X, snap.Pos.Y, e.w, e.h)
	}
	return snap
}
