package sim

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/duskfall/internal/config"
	"github.com/vovakirdan/duskfall/internal/core"
)

// maxStep caps the physics step so a stalled clock cannot tunnel bodies
// through platforms.
const maxStep = 50 * time.Millisecond

// Pickup sizes in world pixels.
const (
	coinSize = 24.0
	itemSize = 28.0
)

// State is the session's top-level mode.
type State uint8

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateGameOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// ItemSpawn places an item pickup in a layout.
type ItemSpawn struct {
	Item Item
	Pos  core.Vec
}

// Layout is the static content of a stage.
type Layout struct {
	Name      string
	Width     float64
	Height    float64
	Spawn     core.Vec
	Platforms []core.Box
	Enemies   []core.Vec
	Coins     []core.Vec
	Items     []ItemSpawn
}

// pickup is a coin or item lying in the stage.
type pickup struct {
	pos   core.Vec
	item  Item
	taken bool
}

// PickupSnapshot is a read-only view of an uncollected pickup.
type PickupSnapshot struct {
	Pos    core.Vec
	Bounds core.Box
	ItemID string
}

// Snapshot is everything a renderer or HUD needs for one frame.
type Snapshot struct {
	State     State
	Now       time.Duration
	Gold      int
	Player    PlayerSnapshot
	Enemies   []EnemySnapshot
	Coins     []PickupSnapshot
	Items     []PickupSnapshot
	Inventory []Item
	World     World
}

// Session owns one run of a stage.
type Session struct {
	cfg        config.DuskConfig
	layout     Layout
	world      World
	curve      Curve
	difficulty *config.DifficultyManager
	log        *log.Logger

	state     State
	player    *Player
	enemies   []*Enemy
	resolver  Resolver
	coins     []pickup
	items     []pickup
	inventory Inventory
	gold      int

	carry   *SaveData // Applied on the next Start
	now     time.Duration
	pending []Event
}

// NewSession creates a session in the Menu state.
func NewSession(cfg config.DuskConfig, layout Layout) *Session {
	s := &Session{
		cfg:        cfg,
		layout:     layout,
		world:      NewWorld(layout.Width, layout.Height, layout.Platforms, cfg.Physics),
		curve:      NewCurve(cfg.Progression),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		log:        log.New(io.Discard),
	}
	s.Reset()
	s.pending = nil
	return s
}

// SetLogger routes session diagnostics to l.
func (s *Session) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	s.log = l
}

// Reset returns to the Menu with a fresh player, no enemies, no gold and an
// empty inventory. A pending save is discarded.
func (s *Session) Reset() {
	s.player = NewPlayer(s.cfg.Player, s.curve, s.layout.Spawn)
	s.enemies = nil
	s.coins = nil
	s.items = nil
	s.resolver.Reset()
	s.inventory.Clear()
	s.gold = 0
	s.carry = nil
	s.setState(StateMenu)
}

// Start begins a run from the Menu. Enemies are scaled by the gold carried
// into the run.
func (s *Session) Start(now time.Duration) bool {
	if s.state != StateMenu {
		return false
	}
	s.now = now

	s.player = NewPlayer(s.cfg.Player, s.curve, s.layout.Spawn)
	s.resolver.Reset()
	if s.carry != nil {
		s.player.SetStats(s.carry.Stats)
		s.gold = s.carry.Gold
		s.inventory.Replace(s.carry.Inventory)
		s.carry = nil
	}

	base := EnemyStatsFrom(s.cfg.Enemy)
	scaled := base
	scaled.Speed = s.difficulty.Speed(base.Speed, s.gold)
	scaled.Health = s.difficulty.Health(base.Health, s.gold)
	scaled.AttackPower = s.difficulty.Damage(base.AttackPower, s.gold)

	s.enemies = make([]*Enemy, 0, len(s.layout.Enemies))
	for i, pos := range s.layout.Enemies {
		s.enemies = append(s.enemies, NewEnemy(i+1, pos, scaled, s.cfg.Enemy, now))
	}
	s.coins = make([]pickup, 0, len(s.layout.Coins))
	for _, pos := range s.layout.Coins {
		s.coins = append(s.coins, pickup{pos: pos})
	}
	s.items = make([]pickup, 0, len(s.layout.Items))
	for _, it := range s.layout.Items {
		s.items = append(s.items, pickup{pos: it.Pos, item: it.Item})
	}

	s.log.Info("run started", "stage", s.layout.Name, "gold", s.gold,
		"level", s.player.Stats().Level, "enemy_health", scaled.Health)
	s.setState(StatePlaying)
	return true
}

// TogglePause switches between Playing and Paused.
func (s *Session) TogglePause() bool {
	switch s.state {
	case StatePlaying:
		s.setState(StatePaused)
	case StatePaused:
		s.setState(StatePlaying)
	default:
		return false
	}
	return true
}

// Tick advances one step. Outside Playing, or when now does not advance,
// nothing changes. Returns the events produced since the last drain.
func (s *Session) Tick(in Input, now time.Duration) []Event {
	if s.state != StatePlaying || now <= s.now {
		return s.DrainEvents()
	}
	dt := min(now-s.now, maxStep)
	s.now = now

	_, attack := s.player.Tick(in, now)
	s.world.Step(&s.player.Body, dt)

	s.tickEnemies(now)
	if attack != nil {
		s.resolveAttack(*attack, now)
	}
	s.checkContact(now)
	s.collectPickups()
	s.checkGameOver()

	return s.DrainEvents()
}

func (s *Session) tickEnemies(now time.Duration) {
	live := s.enemies[:0]
	for _, e := range s.enemies {
		e.Tick(now)
		if e.Removed() {
			s.emit(EnemyRemoved{EnemyID: e.ID()})
			continue
		}
		live = append(live, e)
	}
	s.enemies = live
}

func (s *Session) resolveAttack(ev AttackEvent, now time.Duration) {
	hits := s.resolver.Resolve(ev, s.enemies)
	s.emit(AttackTriggered{Attack: ev, Hits: hits})

	for _, h := range hits {
		if !h.Died {
			continue
		}
		e := s.enemy(h.EnemyID)
		if e == nil {
			continue
		}
		reward := e.ExperienceReward()
		s.emit(EnemyKilled{EnemyID: h.EnemyID, ExperienceReward: reward})

		if levels := s.player.GainExperience(reward, now); levels > 0 {
			level := s.player.Stats().Level
			s.log.Info("level up", "level", level, "gained", levels)
			s.emit(LevelUp{Level: level, Levels: levels})
		}
	}
}

// checkContact applies damage and knockback from the first touching enemy.
func (s *Session) checkContact(now time.Duration) {
	bounds := s.player.Body.Bounds()
	for _, e := range s.enemies {
		if e.Dead() || !bounds.Overlaps(e.Bounds()) {
			continue
		}

		if dealt := s.player.TakeDamage(e.AttackPower(), now); dealt > 0 {
			s.emit(PlayerDamaged{EnemyID: e.ID(), Amount: dealt, Health: s.player.Stats().Health})
		}

		dir := 1.0
		if s.player.Body.Pos.X < e.Pos().X {
			dir = -1
		}
		kb := s.cfg.Player.Knockback
		s.player.Knockback(core.Vec{X: dir * kb.X, Y: kb.Y})
		return
	}
}

func (s *Session) collectPickups() {
	bounds := s.player.Body.Bounds()

	for i := range s.coins {
		c := &s.coins[i]
		if c.taken || !bounds.Overlaps(core.BoxAt(c.pos.X, c.pos.Y, coinSize, coinSize)) {
			continue
		}
		c.taken = true
		s.gold += s.cfg.Session.CoinValue
		s.emit(CoinCollected{Index: i, Value: s.cfg.Session.CoinValue})
		s.emit(ScoreChanged{Gold: s.gold})
	}

	for i := range s.items {
		it := &s.items[i]
		if it.taken || !bounds.Overlaps(core.BoxAt(it.pos.X, it.pos.Y, itemSize, itemSize)) {
			continue
		}
		it.taken = true
		s.inventory.Add(it.item)
		s.emit(ItemCollected{Item: it.item})
	}
}

func (s *Session) checkGameOver() {
	var cause DeathCause
	switch {
	case s.player.Dead():
		cause = DeathSlain
	case s.player.Body.Pos.Y > s.cfg.Session.FallLimit:
		cause = DeathFell
	default:
		return
	}

	stats := s.player.Stats()
	s.log.Info("player died", "cause", cause, "gold", s.gold, "level", stats.Level)
	s.emit(PlayerDied{Cause: cause})
	s.emit(GameOver{Gold: s.gold, Level: stats.Level})
	s.setState(StateGameOver)
}

// UseItem consumes one of a consumable item. Only a health potion has an
// effect. Returns false when nothing was used.
func (s *Session) UseItem(id string) bool {
	if s.state != StatePlaying {
		return false
	}
	item, ok := s.inventory.Use(id)
	if !ok {
		return false
	}
	if item.ID == HealthPotionID {
		if healed := s.player.Heal(s.cfg.Session.PotionHeal, s.now); healed > 0 {
			s.emit(PlayerHealed{Amount: healed, Health: s.player.Stats().Health})
		}
	}
	return true
}

func (s *Session) enemy(id int) *Enemy {
	for _, e := range s.enemies {
		if e.ID() == id {
			return e
		}
	}
	return nil
}

func (s *Session) setState(to State) {
	from := s.state
	s.state = to
	if from != to {
		s.emit(StateChanged{From: from, To: to})
	}
}

func (s *Session) emit(ev Event) {
	s.pending = append(s.pending, ev)
}

// DrainEvents returns and clears pending events.
func (s *Session) DrainEvents() []Event {
	out := s.pending
	s.pending = nil
	return out
}

// State returns the current mode.
func (s *Session) State() State { return s.state }

// Gold returns the run's currency.
func (s *Session) Gold() int { return s.gold }

// Now returns the timestamp of the last applied tick.
func (s *Session) Now() time.Duration { return s.now }

// Player exposes the player for inspection.
func (s *Session) Player() *Player { return s.player }

// Enemies returns the live enemy set, including enemies still fading out.
func (s *Session) Enemies() []*Enemy { return s.enemies }

// Inventory returns a copy of the held items.
func (s *Session) Inventory() []Item { return s.inventory.Items() }

// Layout returns the stage layout.
func (s *Session) Layout() Layout { return s.layout }

// Snapshot returns the current read-only view.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:     s.state,
		Now:       s.now,
		Gold:      s.gold,
		Player:    s.player.Snapshot(s.now),
		Inventory: s.inventory.Items(),
		World:     s.world,
	}
	for _, e := range s.enemies {
		snap.Enemies = append(snap.Enemies, e.Snapshot(s.now))
	}
	for _, c := range s.coins {
		if !c.taken {
			snap.Coins = append(snap.Coins, PickupSnapshot{
				Pos:    c.pos,
				Bounds: core.BoxAt(c.pos.X, c.pos.Y, coinSize, coinSize),
			})
		}
	}
	for _, it := range s.items {
		if !it.taken {
			snap.Items = append(snap.Items, PickupSnapshot{
				Pos:    it.pos,
				Bounds: core.BoxAt(it.pos.X, it.pos.Y, itemSize, itemSize),
				ItemID: it.item.ID,
			})
		}
	}
	return snap
}
