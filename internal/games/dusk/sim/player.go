package sim

import (
	"time"

	"github.com/vovakirdan/duskfall/internal/config"
	"github.com/vovakirdan/duskfall/internal/core"
)

// never marks a timestamp that has not happened. It is far enough in the past
// that every window comparison against it fails.
const never = -time.Hour

// flickerPhase is the length of one alpha phase while invulnerable.
const flickerPhase = 100 * time.Millisecond

// Input is the per-tick player intent.
type Input struct {
	Left          bool
	Right         bool
	JumpPressed   bool // Edge: jump went down this tick
	JumpHeld      bool
	AttackPressed bool // Edge: attack went down this tick
}

// Anim is the logical animation tag shown by the renderer.
type Anim uint8

const (
	AnimIdle Anim = iota
	AnimWalk
	AnimJump
	AnimAttack
	animNone // Forces re-evaluation after an attack
)

// String returns the tag name.
func (a Anim) String() string {
	switch a {
	case AnimIdle:
		return "idle"
	case AnimWalk:
		return "walk"
	case AnimJump:
		return "jump"
	case AnimAttack:
		return "attack"
	default:
		return "none"
	}
}

// Tint is a timed color overlay for feedback.
type Tint uint8

const (
	TintNone    Tint = iota
	TintHurt         // Red while invulnerable
	TintHeal         // Green flash
	TintLevelUp      // Yellow flash
)

// Body is a physics body. Pos is the center of the box.
type Body struct {
	Pos      core.Vec
	Vel      core.Vec
	W, H     float64
	OnGround bool // Written by World.Step
}

// Bounds returns the body's bounding box.
func (b Body) Bounds() core.Box {
	return core.BoxAt(b.Pos.X, b.Pos.Y, b.W, b.H)
}

// PlayerSnapshot is a read-only view of the player for rendering and HUD.
type PlayerSnapshot struct {
	Pos           core.Vec
	Vel           core.Vec
	Bounds        core.Box
	Facing        int
	Anim          Anim
	Grounded      bool
	CanDoubleJump bool
	Attacking     bool
	Invulnerable  bool
	Tint          Tint
	Faded         bool // Low alpha phase of the hurt flicker
	Stats         Stats
	Gained        int // Cumulative experience granted
}

// AttackEvent is produced once per accepted attack.
type AttackEvent struct {
	ID     uint64 // Strictly increasing per player, 0 is never issued
	Origin core.Vec
	Hitbox core.Box
	Damage int
	Source string
	At     time.Duration
}

// Player is the movement and combat state machine.
type Player struct {
	Body Body

	cfg   config.PlayerConfig
	curve Curve
	stats Stats

	facing        int
	grounded      bool
	canDoubleJump bool
	attacking     bool
	invulnerable  bool

	lastGroundedAt    time.Duration
	lastJumpPressAt   time.Duration
	lastAttackAt      time.Duration
	animChangedAt     time.Duration
	invulnerableUntil time.Duration
	hurtAt            time.Duration
	tintUntil         time.Duration

	anim   Anim
	tint   Tint
	gained int

	lastTick time.Duration
	ticked   bool
	attackID uint64
}

// NewPlayer creates a player standing at spawn with base stats.
func NewPlayer(cfg config.PlayerConfig, curve Curve, spawn core.Vec) *Player {
	return &Player{
		Body: Body{
			Pos: spawn,
			W:   cfg.Width,
			H:   cfg.Height,
		},
		cfg:               cfg,
		curve:             curve,
		stats:             NewStats(cfg.Stats),
		facing:            1,
		grounded:          true,
		canDoubleJump:     true,
		lastGroundedAt:    never,
		lastJumpPressAt:   never,
		lastAttackAt:      never,
		animChangedAt:     never,
		invulnerableUntil: never,
		hurtAt:            never,
		tintUntil:         never,
		anim:              AnimIdle,
	}
}

// Tick advances the state machine to now.
// A tick whose now does not advance past the previous one changes nothing.
func (p *Player) Tick(in Input, now time.Duration) (PlayerSnapshot, *AttackEvent) {
	if p.ticked && now <= p.lastTick {
		return p.Snapshot(p.lastTick), nil
	}
	p.lastTick = now
	p.ticked = true

	p.expireTimers(now)
	p.updateGrounding(now)

	// Attack lockout: input ignored, physics keeps the current velocity
	if p.attacking {
		return p.Snapshot(now), nil
	}

	moving := in.Left || in.Right
	switch {
	case in.Left:
		p.Body.Vel.X = -p.cfg.Speed
		p.facing = -1
	case in.Right:
		p.Body.Vel.X = p.cfg.Speed
		p.facing = 1
	default:
		p.Body.Vel.X = 0
	}

	if in.JumpPressed {
		p.lastJumpPressAt = now
	}
	p.tryJump(now)

	if in.AttackPressed {
		if ev := p.tryAttack(now); ev != nil {
			return p.Snapshot(now), ev
		}
	}

	p.selectAnim(moving, now)
	return p.Snapshot(now), nil
}

func (p *Player) expireTimers(now time.Duration) {
	if p.attacking && now-p.lastAttackAt >= p.cfg.Timing.AttackDuration() {
		p.attacking = false
		p.anim = animNone
	}
	if p.invulnerable && now >= p.invulnerableUntil {
		p.invulnerable = false
	}
	if p.tint != TintNone && now >= p.tintUntil {
		p.tint = TintNone
	}
}

// updateGrounding applies ground contact with hysteresis.
func (p *Player) updateGrounding(now time.Duration) {
	if p.Body.OnGround {
		p.grounded = true
		p.lastGroundedAt = now
		p.canDoubleJump = true
		return
	}
	if now-p.lastGroundedAt > p.cfg.Timing.GroundedGrace() {
		p.grounded = false
	}
}

// tryJump consumes a buffered press with a ground, coyote or double jump.
func (p *Player) tryJump(now time.Duration) {
	if now-p.lastJumpPressAt > p.cfg.Timing.JumpBuffer() {
		return
	}

	coyote := now-p.lastGroundedAt <= p.cfg.Timing.Coyote()
	switch {
	case p.grounded || coyote:
		p.Body.Vel.Y = p.cfg.JumpVelocity
		p.Body.OnGround = false
		p.grounded = false
		p.lastGroundedAt = never
		p.lastJumpPressAt = never
	case p.canDoubleJump:
		p.Body.Vel.Y = p.cfg.JumpVelocity
		p.canDoubleJump = false
		p.lastJumpPressAt = never
	}
}

func (p *Player) tryAttack(now time.Duration) *AttackEvent {
	if now-p.lastAttackAt < p.cfg.Timing.AttackCooldown() {
		return nil
	}

	p.attacking = true
	p.lastAttackAt = now
	p.anim = AnimAttack
	p.attackID++

	reach := p.cfg.AttackRange
	center := core.Vec{X: p.Body.Pos.X + float64(p.facing)*reach/2, Y: p.Body.Pos.Y}
	return &AttackEvent{
		ID:     p.attackID,
		Origin: p.Body.Pos,
		Hitbox: core.BoxAt(center.X, center.Y, reach, p.cfg.AttackHeight),
		Damage: p.stats.AttackPower,
		Source: "player",
		At:     now,
	}
}

// selectAnim picks jump, walk or idle. Changes are debounced except into jump.
func (p *Player) selectAnim(moving bool, now time.Duration) {
	target := AnimIdle
	switch {
	case !p.grounded:
		target = AnimJump
	case moving:
		target = AnimWalk
	}

	if target == p.anim {
		return
	}
	forced := p.anim == animNone
	if target == AnimJump || forced || now-p.animChangedAt >= p.cfg.Timing.AnimationDebounce() {
		p.anim = target
		p.animChangedAt = now
	}
}

// TakeDamage applies raw damage reduced by defense and returns what was dealt.
// Defense never reduces a hit below 1. Hits while invulnerable or dead, and
// non-positive hits, deal nothing.
func (p *Player) TakeDamage(raw int, now time.Duration) int {
	if raw <= 0 || p.Dead() || p.invulnerableAt(now) {
		return 0
	}

	dealt := max(1, raw-p.stats.Defense)
	p.stats.Health = max(0, p.stats.Health-dealt)

	p.invulnerable = true
	p.invulnerableUntil = now + p.cfg.Timing.Invulnerability()
	p.hurtAt = now
	p.setTint(TintHurt, p.invulnerableUntil)
	return dealt
}

// Heal restores up to amount health and returns what was restored.
func (p *Player) Heal(amount int, now time.Duration) int {
	if amount <= 0 || p.Dead() {
		return 0
	}
	before := p.stats.Health
	p.stats.Health = min(p.stats.MaxHealth, p.stats.Health+amount)
	p.setTint(TintHeal, now+p.cfg.Timing.HealTint())
	return p.stats.Health - before
}

// GainExperience credits experience through the curve and returns the number
// of levels gained.
func (p *Player) GainExperience(amount int, now time.Duration) int {
	if amount <= 0 {
		return 0
	}
	before := p.stats.Level
	p.stats = p.curve.Grant(p.stats, amount)
	p.gained += amount

	levels := p.stats.Level - before
	if levels > 0 {
		p.setTint(TintLevelUp, now+p.cfg.Timing.LevelUpTint())
	}
	return levels
}

func (p *Player) setTint(t Tint, until time.Duration) {
	p.tint = t
	p.tintUntil = until
}

func (p *Player) invulnerableAt(now time.Duration) bool {
	return now < p.invulnerableUntil
}

// Dead reports whether health reached zero.
func (p *Player) Dead() bool {
	return p.stats.Health <= 0
}

// Stats returns a copy of the current stats.
func (p *Player) Stats() Stats {
	return p.stats
}

// SetStats replaces the stats, clamping health. Used when restoring a save.
func (p *Player) SetStats(s Stats) {
	p.stats = s.clamped()
}

// Facing returns -1 for left, +1 for right.
func (p *Player) Facing() int {
	return p.facing
}

// Knockback overrides the body velocity.
func (p *Player) Knockback(v core.Vec) {
	p.Body.Vel = v
	p.Body.OnGround = false
}

// Snapshot returns the read-only view at now.
func (p *Player) Snapshot(now time.Duration) PlayerSnapshot {
	anim := p.anim
	if anim == animNone {
		anim = AnimIdle
	}
	faded := false
	if p.invulnerableAt(now) {
		faded = ((now-p.hurtAt)/flickerPhase)%2 == 0
	}
	return PlayerSnapshot{
		Pos:           p.Body.Pos,
		Vel:           p.Body.Vel,
		Bounds:        p.Body.Bounds(),
		Facing:        p.facing,
		Anim:          anim,
		Grounded:      p.grounded,
		CanDoubleJump: p.canDoubleJump,
		Attacking:     p.attacking,
		Invulnerable:  p.invulnerable,
		Tint:          p.tint,
		Faded:         faded,
		Stats:         p.stats,
		Gained:        p.gained,
	}
}
