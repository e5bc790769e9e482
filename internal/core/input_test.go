package core

import "testing"

func TestInputFrameSetHasClear(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionJump) {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionJump)
	f.Set(ActionLeft)
	if !f.Has(ActionJump) || !f.Has(ActionLeft) {
		t.Error("Set actions should be reported by Has")
	}
	if f.Has(ActionAttack) {
		t.Error("unset action should not be reported")
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionJump) {
		t.Error("Clear should remove all actions")
	}
	if !clone.Has(ActionJump) {
		t.Error("Clone should not share storage with the original")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionJump) {
		t.Error("zero frame should report nothing")
	}
	f.Set(ActionAttack)
	if !f.Has(ActionAttack) {
		t.Error("Set on zero frame should allocate storage")
	}
}

func TestParseActionRoundTrip(t *testing.T) {
	for a := ActionNone; a <= ActionPause; a++ {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v, %v; expected %v", a.String(), got, ok, a)
		}
	}
	if _, ok := ParseAction("Dash"); ok {
		t.Error("unknown action name should not parse")
	}
}

func TestFrameOf(t *testing.T) {
	f := FrameOf(ActionRight, ActionAttack)
	if !f.Has(ActionRight) || !f.Has(ActionAttack) || f.Has(ActionLeft) {
		t.Errorf("FrameOf produced unexpected actions: %v", f.Actions)
	}
}
