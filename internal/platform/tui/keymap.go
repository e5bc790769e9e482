package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/duskfall/internal/core"
)

// DefaultHoldWindow is how long a movement key counts as held after its
// last key event. Terminals only report presses and auto-repeat, never
// releases, so holding is inferred from the repeat stream.
const DefaultHoldWindow = 250 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "h", "left":
		return core.ActionLeft, false
	case "d", "l", "right":
		return core.ActionRight, false
	case " ", "space", "w", "k", "up":
		return core.ActionJump, false
	case "x", "f", "j":
		return core.ActionAttack, false
	case "e":
		return core.ActionUseItem, false
	case "enter":
		return core.ActionConfirm, false
	case "b":
		return core.ActionBack, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// held reports whether an action is a continuous input tracked by
// HoldTracker rather than a one-shot press.
func held(a core.Action) bool {
	return a == core.ActionLeft || a == core.ActionRight || a == core.ActionJump
}

// HoldTracker turns the press-and-repeat stream of a terminal into held
// state. A key is held until the window passes without another event for
// it.
type HoldTracker struct {
	window time.Duration
	last   map[core.Action]time.Time
}

// NewHoldTracker creates a tracker. A non-positive window uses
// DefaultHoldWindow.
func NewHoldTracker(window time.Duration) *HoldTracker {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HoldTracker{
		window: window,
		last:   make(map[core.Action]time.Time),
	}
}

// Press records a key event at now. Returns true when the key was not
// already held, i.e. this is a fresh press and not auto-repeat.
func (h *HoldTracker) Press(a core.Action, now time.Time) bool {
	fresh := !h.Held(a, now)
	h.last[a] = now
	return fresh
}

// Held reports whether a key is still held at now.
func (h *HoldTracker) Held(a core.Action, now time.Time) bool {
	t, ok := h.last[a]
	return ok && now.Sub(t) <= h.window
}

// Release forgets a key, e.g. when the opposite direction is pressed.
func (h *HoldTracker) Release(a core.Action) {
	delete(h.last, a)
}

// Reset forgets every key.
func (h *HoldTracker) Reset() {
	clear(h.last)
}

// Apply sets the held state of the tracked keys on a frame. A jump that is
// held but was not freshly pressed this frame shows up as ActionJumpHeld.
func (h *HoldTracker) Apply(frame *core.InputFrame, now time.Time) {
	if h.Held(core.ActionLeft, now) {
		frame.Set(core.ActionLeft)
	}
	if h.Held(core.ActionRight, now) {
		frame.Set(core.ActionRight)
	}
	if h.Held(core.ActionJump, now) && !frame.Has(core.ActionJump) {
		frame.Set(core.ActionJumpHeld)
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ", "space":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
