package stages

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/duskfall/internal/config"
	"github.com/vovakirdan/duskfall/internal/core"
	"github.com/vovakirdan/duskfall/internal/games/dusk/sim"
)

func TestEmbeddedStages(t *testing.T) {
	ids, err := Embedded().ListIDs()
	if err != nil {
		t.Fatalf("ListIDs: %v", err)
	}
	want := []string{"meadow", "ravine"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %s, want %s", i, ids[i], want[i])
		}
	}
}

func TestMeadowLayout(t *testing.T) {
	st, err := Embedded().LoadByID("meadow")
	if err != nil {
		t.Fatalf("LoadByID: %v", err)
	}
	if len(st.Platforms) != 60 {
		t.Errorf("platforms = %d, want 50 ground tiles + 10 ledges", len(st.Platforms))
	}
	if len(st.Enemies) != 5 || len(st.Coins) != 11 {
		t.Errorf("enemies=%d coins=%d, want 5 and 11", len(st.Enemies), len(st.Coins))
	}
	if st.FilePath != "data/meadow.yaml" {
		t.Errorf("FilePath = %q, want data/meadow.yaml", st.FilePath)
	}
	if st.Metadata["author"] != "duskfall" {
		t.Errorf("metadata = %v, want author duskfall", st.Metadata)
	}

	first := st.Platforms[0].Box()
	if first != (core.Box{X: 0, Y: 656, W: 64, H: 64}) {
		t.Errorf("first ground tile = %+v", first)
	}

	layout := st.Layout(config.DefaultDuskConfig())
	if layout.Spawn != (core.Vec{X: 100, Y: 450}) {
		t.Errorf("spawn = %+v", layout.Spawn)
	}
	// (500,500) has only the floor beneath it
	if got := layout.Enemies[0]; got != (core.Vec{X: 500, Y: 640}) {
		t.Errorf("enemy settled at %+v, want (500,640)", got)
	}
	// (400,500) rests on the ledge centered at (400,568)
	if got := layout.Coins[1]; got != (core.Vec{X: 400, Y: 524}) {
		t.Errorf("coin settled at %+v, want (400,524)", got)
	}
	if len(layout.Items) != 1 || layout.Items[0].Item.ID != sim.HealthPotionID {
		t.Errorf("items = %+v", layout.Items)
	}
}

func TestRavineHasHoles(t *testing.T) {
	st, err := Embedded().LoadByID("ravine")
	if err != nil {
		t.Fatalf("LoadByID: %v", err)
	}
	for _, p := range st.Platforms {
		if p.Y == 688 && p.X == 12*TileSize+TileSize/2 {
			t.Fatal("gap tile 12 should be open")
		}
	}
}

func TestParseYAMLValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing id", "size: {w: 100, h: 100}\n"},
		{"zero size", "id: x\nsize: {w: 0, h: 100}\n"},
		{"spawn outside", "id: x\nsize: {w: 100, h: 100}\nspawn: {x: 500, y: 0}\n"},
		{"item without id", "id: x\nsize: {w: 100, h: 100}\nitems: [{x: 1, y: 1}]\n"},
		{"not yaml", "id: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseYAMLDefaults(t *testing.T) {
	st, err := ParseYAML([]byte("id: tiny\nsize: {w: 640, h: 480}\nplatforms: [{x: 100, y: 200}]\nitems: [{id: health_potion, x: 5, y: 5}]\n"))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if st.Name != "tiny" {
		t.Errorf("name = %q, want id fallback", st.Name)
	}
	if p := st.Platforms[0]; p.W != TileSize || p.H != TileSize {
		t.Errorf("platform size = %vx%v, want one tile", p.W, p.H)
	}
	if st.Items[0].Quantity != 1 {
		t.Errorf("quantity = %d, want 1", st.Items[0].Quantity)
	}
}

func TestLoaderFromDirectorySkipsInvalid(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("b.yaml", "id: beta\norder: 1\nsize: {w: 640, h: 480}\n")
	write("a.yml", "id: alpha\norder: 2\nsize: {w: 640, h: 480}\n")
	write("broken.yaml", "id: [\n")
	write("notes.txt", "id: ignored\n")

	l := NewLoader(dir)
	ids, err := l.ListIDs()
	if err != nil {
		t.Fatalf("ListIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != "beta" || ids[1] != "alpha" {
		t.Errorf("ids = %v, want [beta alpha]", ids)
	}
	if _, err := l.LoadByID("gamma"); err == nil {
		t.Error("expected not found")
	}
}
