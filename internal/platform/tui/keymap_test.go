package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/duskfall/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"space", runeKey(' '), core.ActionJump, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{"x", runeKey('x'), core.ActionAttack, false},
		{"f", runeKey('f'), core.ActionAttack, false},
		{"e", runeKey('e'), core.ActionUseItem, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"b", runeKey('b'), core.ActionBack, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('z'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestHoldTrackerWindow(t *testing.T) {
	h := NewHoldTracker(100 * time.Millisecond)
	t0 := time.Unix(0, 0)

	if !h.Press(core.ActionRight, t0) {
		t.Error("first press should be fresh")
	}
	if !h.Held(core.ActionRight, t0.Add(100*time.Millisecond)) {
		t.Error("key should still be held at the window edge")
	}
	if h.Held(core.ActionRight, t0.Add(101*time.Millisecond)) {
		t.Error("key should be released after the window")
	}

	// Auto-repeat keeps the key held and is not a fresh press
	if h.Press(core.ActionRight, t0.Add(50*time.Millisecond)) {
		t.Error("repeat inside the window should not be fresh")
	}
	if !h.Held(core.ActionRight, t0.Add(140*time.Millisecond)) {
		t.Error("repeat should extend the hold")
	}

	h.Release(core.ActionRight)
	if h.Held(core.ActionRight, t0.Add(60*time.Millisecond)) {
		t.Error("released key should not be held")
	}
}

func TestHoldTrackerDefaultWindow(t *testing.T) {
	h := NewHoldTracker(0)
	t0 := time.Unix(0, 0)
	h.Press(core.ActionLeft, t0)

	if !h.Held(core.ActionLeft, t0.Add(DefaultHoldWindow)) {
		t.Error("default window not applied")
	}
}

func TestHoldTrackerApply(t *testing.T) {
	h := NewHoldTracker(100 * time.Millisecond)
	t0 := time.Unix(0, 0)
	h.Press(core.ActionLeft, t0)
	h.Press(core.ActionJump, t0)

	// Fresh jump this frame: no held flag on top
	frame := core.FrameOf(core.ActionJump)
	h.Apply(&frame, t0.Add(16*time.Millisecond))
	if !frame.Has(core.ActionLeft) {
		t.Error("held left not applied")
	}
	if frame.Has(core.ActionJumpHeld) {
		t.Error("fresh jump should not also be marked held")
	}

	// Later frame: jump only held
	frame = core.NewInputFrame()
	h.Apply(&frame, t0.Add(32*time.Millisecond))
	if !frame.Has(core.ActionJumpHeld) || frame.Has(core.ActionJump) {
		t.Errorf("frame = %v, want only JumpHeld for jump", frame.Actions)
	}

	h.Reset()
	frame = core.NewInputFrame()
	h.Apply(&frame, t0.Add(48*time.Millisecond))
	if len(frame.Actions) != 0 {
		t.Errorf("frame after reset = %v, want empty", frame.Actions)
	}
}
