package dusk

import (
	"strings"
	"testing"

	"github.com/vovakirdan/duskfall/internal/games/dusk/sim"
	"github.com/vovakirdan/duskfall/internal/games/dusk/stages"
)

func TestParseScript(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
		ticks   int
	}{
		{
			name:  "valid",
			src:   "stage: meadow\nframes:\n  - actions: [Confirm]\n  - actions: [Right]\n    repeat: 30\n  - actions: []\n",
			ticks: 32,
		},
		{name: "no stage", src: "frames: []\n", wantErr: "no stage"},
		{name: "unknown action", src: "stage: meadow\nframes:\n  - actions: [Fly]\n", wantErr: "unknown action"},
		{name: "negative repeat", src: "stage: meadow\nframes:\n  - repeat: -1\n", wantErr: "negative repeat"},
		{name: "bad yaml", src: "stage: [", wantErr: "parse script"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseScript([]byte(tt.src))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScript: %v", err)
			}
			if s.Ticks() != tt.ticks {
				t.Errorf("Ticks() = %d, want %d", s.Ticks(), tt.ticks)
			}
		})
	}
}

func TestReplayWalksRight(t *testing.T) {
	s, err := ParseScript([]byte("stage: meadow\nframes:\n  - actions: [Confirm]\n  - actions: [Right]\n    repeat: 60\n"))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}

	res, err := Replay(s, testRuntime(), nil)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if res.Ticks != 61 {
		t.Errorf("ticks = %d, want 61", res.Ticks)
	}
	if x := res.Game.Session().Player().Body.Pos.X; x < 250 {
		t.Errorf("x = %v, want the player to have walked right", x)
	}
}

func TestReplayStopsAtGameOver(t *testing.T) {
	RegisterStages([]stages.Stage{pit()})

	s := Script{Stage: "pit", Frames: []ScriptFrame{
		{Actions: []string{"Confirm"}},
		{Repeat: 1000},
	}}
	res, err := Replay(s, testRuntime(), nil)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if res.Game.Session().State() != sim.StateGameOver {
		t.Fatalf("state = %v, want game over", res.Game.Session().State())
	}
	if res.Ticks >= 1001 {
		t.Errorf("replay kept running after game over: %d ticks", res.Ticks)
	}
	if len(res.Notices) == 0 {
		t.Error("expected a death notice")
	}
}

func TestReplayLoadsSave(t *testing.T) {
	data, err := sim.EncodeSave(sim.SaveData{Stats: sim.DefaultStats(), Gold: 75})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	s := Script{Stage: "meadow", Frames: []ScriptFrame{{Actions: []string{"Confirm"}}}}
	res, err := Replay(s, testRuntime(), data)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if gold := res.Game.State().Score; gold != 75 {
		t.Errorf("gold = %d, want 75 from the save", gold)
	}
}

func TestReplayUnknownStage(t *testing.T) {
	if _, err := Replay(Script{Stage: "nowhere"}, testRuntime(), nil); err == nil {
		t.Error("expected an error for an unknown stage")
	}
}

func TestReplayHeldJumpJumpsOnce(t *testing.T) {
	s, err := ParseScript([]byte("stage: meadow\nframes:\n  - actions: [Confirm]\n  - repeat: 60\n  - actions: [Jump]\n    repeat: 20\n"))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}

	res, err := Replay(s, testRuntime(), nil)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	p := res.Game.Session().Snapshot().Player
	if p.Grounded {
		t.Fatal("player should be in the air")
	}
	if !p.CanDoubleJump {
		t.Error("holding jump spent the double jump")
	}

	// A second press is a new frame
	s.Frames = append(s.Frames, ScriptFrame{Actions: []string{"Jump"}})
	res, err = Replay(s, testRuntime(), nil)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if res.Game.Session().Snapshot().Player.CanDoubleJump {
		t.Error("a fresh press in the air should double jump")
	}
}
