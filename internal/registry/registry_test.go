package registry

import (
	"testing"

	"github.com/vovakirdan/duskfall/internal/core"
)

type stubGame struct {
	id    string
	order int
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

type orderedStub struct{ stubGame }

func (g *orderedStub) Order() int { return g.order }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-create", func() Game { return &stubGame{id: "stub-create"} })

	if !Exists("stub-create") {
		t.Fatal("registered game should exist")
	}
	g, err := Create("stub-create")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "stub-create" {
		t.Errorf("ID = %q", g.ID())
	}
	if _, err := Create("stub-missing"); err == nil {
		t.Error("expected error for unknown game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })
}

func TestListOrdersByOrderThenID(t *testing.T) {
	Register("stub-z", func() Game { return &orderedStub{stubGame{id: "stub-z", order: -2}} })
	Register("stub-y", func() Game { return &orderedStub{stubGame{id: "stub-y", order: -1}} })
	Register("stub-a", func() Game { return &stubGame{id: "stub-a"} })

	list := List()
	pos := make(map[string]int, len(list))
	for i, info := range list {
		pos[info.ID] = i
	}
	if !(pos["stub-z"] < pos["stub-y"] && pos["stub-y"] < pos["stub-a"]) {
		t.Errorf("unexpected order: %+v", list)
	}
	if list[pos["stub-a"]].Title != "Stub stub-a" {
		t.Errorf("title = %q", list[pos["stub-a"]].Title)
	}
}
