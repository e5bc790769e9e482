// Package dusk adapts the platformer simulation to the platform's Game
// interface. Every stage registers as its own game ID.
package dusk

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/duskfall/internal/config"
	"github.com/vovakirdan/duskfall/internal/core"
	"github.com/vovakirdan/duskfall/internal/games/dusk/sim"
	"github.com/vovakirdan/duskfall/internal/games/dusk/stages"
	"github.com/vovakirdan/duskfall/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// configured difficulty.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger routes simulation diagnostics for games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game runs one stage.
type Game struct {
	stage   stages.Stage
	cfg     config.DuskConfig
	session *sim.Session
	clock   *core.TickClock
	runtime core.RuntimeConfig

	save    []byte // Applied on every Reset until the run ends
	last    []sim.Event
	message string // Latest notice, shown in the HUD
}

// New creates a game for a stage.
func New(st stages.Stage) *Game {
	return &Game{stage: st}
}

// ID returns the stage ID.
func (g *Game) ID() string {
	return g.stage.ID
}

// Title returns the stage name.
func (g *Game) Title() string {
	return g.stage.Name
}

// Stage returns the stage definition.
func (g *Game) Stage() stages.Stage {
	return g.stage
}

// Order places the stage in menus.
func (g *Game) Order() int {
	return g.stage.Order
}

// Reset reloads configuration and returns the stage to its title card.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	// Load game config
	cfg, err := config.LoadDusk(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
	}

	// Apply difficulty preset if set
	config.ApplyDuskPreset(&cfg, difficultyPreset)
	g.cfg = cfg

	g.session = sim.NewSession(cfg, g.stage.Layout(cfg))
	g.session.SetLogger(logger.With("stage", g.stage.ID))
	g.clock = core.NewTickClock(runtime.TickRate)
	g.last = nil
	g.message = ""

	if g.save != nil {
		g.session.Load(g.save)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		g.Reset(core.DefaultConfig())
	}

	var events []sim.Event
	switch g.session.State() {
	case sim.StateMenu:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) {
			g.session.Start(g.clock.Now())
		}

	case sim.StatePaused:
		if in.Has(core.ActionPause) {
			g.session.TogglePause()
		}

	case sim.StatePlaying:
		if in.Has(core.ActionPause) {
			g.session.TogglePause()
			break
		}
		if in.Has(core.ActionUseItem) {
			g.session.UseItem(sim.HealthPotionID)
		}
		events = g.session.Tick(PlayerInput(in), g.clock.Advance())
	}

	// Start, pause and item use queue events outside Tick
	events = append(events, g.session.DrainEvents()...)
	g.last = events
	notices := g.notices(events)
	if len(notices) > 0 {
		g.message = notices[len(notices)-1]
	}
	if g.session.State() == sim.StateGameOver {
		g.save = nil
	}

	return core.StepResult{State: g.State(), Notices: notices}
}

// PlayerInput maps platform actions onto simulation input.
func PlayerInput(in core.InputFrame) sim.Input {
	return sim.Input{
		Left:          in.Has(core.ActionLeft),
		Right:         in.Has(core.ActionRight),
		JumpPressed:   in.Has(core.ActionJump),
		JumpHeld:      in.Has(core.ActionJump) || in.Has(core.ActionJumpHeld),
		AttackPressed: in.Has(core.ActionAttack),
	}
}

// notices turns events into HUD lines.
func (g *Game) notices(events []sim.Event) []string {
	var out []string
	for _, ev := range events {
		switch e := ev.(type) {
		case sim.EnemyKilled:
			out = append(out, fmt.Sprintf("Enemy defeated! +%d XP", e.ExperienceReward))
		case sim.LevelUp:
			out = append(out, fmt.Sprintf("LEVEL UP! Now level %d", e.Level))
		case sim.ItemCollected:
			out = append(out, fmt.Sprintf("Picked up %s", e.Item.Name))
		case sim.PlayerHealed:
			out = append(out, fmt.Sprintf("Healed %d", e.Amount))
		case sim.PlayerDied:
			out = append(out, fmt.Sprintf("You %s", deathText(e.Cause)))
		}
	}
	return out
}

func deathText(c sim.DeathCause) string {
	if c == sim.DeathFell {
		return "fell into the dark"
	}
	return "were slain"
}

// State returns the current game state. Score is gold.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := g.session.State()
	return core.GameState{
		Score:    g.session.Gold(),
		Level:    g.session.Player().Stats().Level,
		GameOver: st == sim.StateGameOver,
		Paused:   st == sim.StatePaused,
	}
}

// Session exposes the simulation, mainly for headless tools.
func (g *Game) Session() *sim.Session {
	return g.session
}

// Events returns the events of the last step.
func (g *Game) Events() []sim.Event {
	return g.last
}

// SaveState encodes the run for the save slot. A finished run has nothing
// to save.
func (g *Game) SaveState() ([]byte, error) {
	if g.session == nil || g.session.State() == sim.StateGameOver {
		return nil, nil
	}
	return sim.EncodeSave(g.session.Save())
}

// LoadState queues a saved run. It takes effect immediately on the title
// card and on every later Reset until the run ends.
func (g *Game) LoadState(data []byte) {
	g.save = data
	if g.session != nil && g.session.State() == sim.StateMenu {
		g.session.Load(data)
	}
}

// RegisterStages registers every stage as a game. Stages whose ID is taken
// are skipped. Returns how many were registered.
func RegisterStages(list []stages.Stage) int {
	n := 0
	for _, st := range list {
		if registry.Exists(st.ID) {
			logger.Warn("stage id already registered", "id", st.ID, "file", st.FilePath)
			continue
		}
		registry.Register(st.ID, func() registry.Game {
			return New(st)
		})
		n++
	}
	return n
}

// RegisterDir loads and registers the stages found under dir.
func RegisterDir(dir string) (int, error) {
	list, err := stages.NewLoader(dir).LoadAll()
	if err != nil {
		return 0, err
	}
	return RegisterStages(list), nil
}

// Register the embedded stages with the registry
func init() {
	list, err := stages.Embedded().LoadAll()
	if err != nil {
		panic(fmt.Sprintf("dusk: embedded stages: %v", err))
	}
	RegisterStages(list)
}
