package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/duskfall/internal/core"
	"github.com/vovakirdan/duskfall/internal/registry"
	"github.com/vovakirdan/duskfall/internal/storage"
)

var logger = log.New(io.Discard)

// SetLogger routes platform diagnostics (storage failures, notices).
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Model is the Bubble Tea model for running one stage.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	holds      *HoldTracker
	inputFrame core.InputFrame // One-shot presses since the last tick
	gameState  core.GameState
	slotKey    string // Save slot name, the game ID unless namespaced
	now        func() time.Time
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the run has been recorded for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		holds:      NewHoldTracker(DefaultHoldWindow),
		inputFrame: core.NewInputFrame(),
		slotKey:    game.ID(),
		now:        time.Now,
	}
}

// WithSlotPrefix namespaces the save slot, e.g. per SSH user.
func (m Model) WithSlotPrefix(prefix string) Model {
	if prefix != "" {
		m.slotKey = prefix + "/" + m.game.ID()
	}
	return m
}

// Init resets the game, restores its save slot and starts ticking.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.loadSlot()

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The camera follows the screen size, so the run carries on.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.persistSlot()
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action == core.ActionNone:
	case held(action):
		m.press(action)
	case action == core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.persistSlot()
			m.backToMenu = true
		}
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// press feeds a movement key into the hold tracker. Left and right cancel
// each other; only a fresh jump press reaches the frame as a jump.
func (m *Model) press(action core.Action) {
	switch action {
	case core.ActionLeft:
		m.holds.Release(core.ActionRight)
	case core.ActionRight:
		m.holds.Release(core.ActionLeft)
	}
	if m.holds.Press(action, m.now()) && action == core.ActionJump {
		m.inputFrame.Set(action)
	}
}

// handleTick runs one simulation step with the input gathered since the
// last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.holds.Reset()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	frame := m.inputFrame.Clone()
	m.holds.Apply(&frame, now)

	result := m.game.Step(frame)
	m.gameState = result.State
	for _, n := range result.Notices {
		logger.Debug(n, "game", m.game.ID())
	}

	if m.gameState.GameOver && !m.runSaved {
		m.finishRun()
		m.runSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// finishRun records the run and empties the save slot. A lost run starts
// over from base stats.
func (m *Model) finishRun() {
	if m.store == nil {
		return
	}
	if _, err := m.store.RecordRun(m.game.ID(), m.gameState.Score, m.gameState.Level); err != nil {
		logger.Warn("could not record run", "game", m.game.ID(), "err", err)
	}
	if _, ok := m.game.(registry.Saver); ok {
		if err := m.store.ClearSlot(m.slotKey); err != nil {
			logger.Warn("could not clear save slot", "slot", m.slotKey, "err", err)
		}
	}
}

// loadSlot hands the stored save slot to the game, if it keeps one.
func (m *Model) loadSlot() {
	saver, ok := m.game.(registry.Saver)
	if !ok || m.store == nil {
		return
	}
	data, err := m.store.LoadSlot(m.slotKey)
	if err != nil {
		logger.Warn("could not load save slot", "slot", m.slotKey, "err", err)
		return
	}
	if data != nil {
		saver.LoadState(data)
	}
}

// persistSlot stores the game's save data. A game with nothing to save
// clears its slot.
func (m *Model) persistSlot() {
	saver, ok := m.game.(registry.Saver)
	if !ok || m.store == nil {
		return
	}
	data, err := saver.SaveState()
	if err != nil {
		logger.Warn("could not encode save", "slot", m.slotKey, "err", err)
		return
	}
	if data == nil {
		err = m.store.ClearSlot(m.slotKey)
	} else {
		err = m.store.SaveSlot(m.slotKey, data)
	}
	if err != nil {
		logger.Warn("could not write save slot", "slot", m.slotKey, "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".dusk", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the stage picker.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// standalone wraps a Model so that going back ends the program.
type standalone struct {
	Model
}

func (s standalone) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := s.Model.Update(msg)
	s.Model = next.(Model)
	if s.BackToMenu() {
		return s, tea.Quit
	}
	return s, cmd
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		standalone{NewModel(game, store, cfg)},
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
