package dusk

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/duskfall/internal/core"
	"github.com/vovakirdan/duskfall/internal/registry"
)

// Script is a recorded input sequence that drives a stage headless.
//
//	stage: meadow
//	frames:
//	  - actions: [Confirm]
//	  - actions: [Right]
//	    repeat: 60
//	  - actions: [Right, Jump]
type Script struct {
	Stage  string        `yaml:"stage"`
	Frames []ScriptFrame `yaml:"frames"`
}

// ScriptFrame is one input frame, optionally held for several ticks.
// Jump is pressed on the first tick only and held on the rest.
type ScriptFrame struct {
	Actions []string `yaml:"actions"`
	Repeat  int      `yaml:"repeat"` // Ticks to hold the frame, 1 when unset
}

// ParseScript decodes and checks a replay script.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("dusk: parse script: %w", err)
	}
	if s.Stage == "" {
		return Script{}, errors.New("dusk: script has no stage")
	}
	for i, f := range s.Frames {
		if f.Repeat < 0 {
			return Script{}, fmt.Errorf("dusk: frame %d: negative repeat", i)
		}
		for _, name := range f.Actions {
			if _, ok := core.ParseAction(name); !ok {
				return Script{}, fmt.Errorf("dusk: frame %d: unknown action %q", i, name)
			}
		}
	}
	return s, nil
}

// Ticks returns the number of simulation steps the script runs.
func (s Script) Ticks() int {
	n := 0
	for _, f := range s.Frames {
		n += max(1, f.Repeat)
	}
	return n
}

// ReplayResult is the outcome of a replay.
type ReplayResult struct {
	Game    *Game
	Ticks   int
	Notices []string
}

// Replay runs a script against a fresh game. Save data, when given, is
// loaded before the first frame. Playback stops early when the run ends.
func Replay(s Script, runtime core.RuntimeConfig, save []byte) (ReplayResult, error) {
	created, err := registry.Create(s.Stage)
	if err != nil {
		return ReplayResult{}, err
	}
	g, ok := created.(*Game)
	if !ok {
		return ReplayResult{}, fmt.Errorf("dusk: %q is not a stage", s.Stage)
	}

	g.Reset(runtime)
	if save != nil {
		g.LoadState(save)
	}

	res := ReplayResult{Game: g}
	for _, f := range s.Frames {
		first, held := scriptInput(f.Actions)
		for i := 0; i < max(1, f.Repeat); i++ {
			frame := held
			if i == 0 {
				frame = first
			}
			step := g.Step(frame)
			res.Ticks++
			res.Notices = append(res.Notices, step.Notices...)
			if step.State.GameOver {
				return res, nil
			}
		}
	}
	return res, nil
}

// scriptInput builds the input for the first tick of a frame and for the
// ticks it is held. A held Jump reaches the game as JumpHeld, so a repeated
// frame jumps once, like a key held down in the terminal.
func scriptInput(actions []string) (first, held core.InputFrame) {
	first, held = core.NewInputFrame(), core.NewInputFrame()
	for _, name := range actions {
		a, _ := core.ParseAction(name)
		first.Set(a)
		if a == core.ActionJump {
			a = core.ActionJumpHeld
		}
		held.Set(a)
	}
	return first, held
}
