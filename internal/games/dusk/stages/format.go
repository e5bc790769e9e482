package stages

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TileSize is the edge of a ground or platform tile in world pixels.
const TileSize = 64.0

// yamlStage is the on-disk layout of a stage file.
type yamlStage struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Order     int               `yaml:"order"`
	Size      yamlSize          `yaml:"size"`
	Spawn     yamlPoint         `yaml:"spawn"`
	Ground    yamlGround        `yaml:"ground"`
	Platforms []yamlPlatform    `yaml:"platforms"`
	Enemies   []yamlPoint       `yaml:"enemies"`
	Coins     []yamlPoint       `yaml:"coins"`
	Items     []yamlItem        `yaml:"items"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

type yamlSize struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type yamlPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// yamlGround is a row of tiles centered on Y, with optional holes.
type yamlGround struct {
	Y     float64 `yaml:"y"`
	Tiles int     `yaml:"tiles"`
	Gaps  []int   `yaml:"gaps,omitempty"` // Tile indices left open
}

// yamlPlatform is centered on (X, Y). Size defaults to one tile.
type yamlPlatform struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w,omitempty"`
	H float64 `yaml:"h,omitempty"`
}

type yamlItem struct {
	ID       string  `yaml:"id"`
	Quantity int     `yaml:"quantity,omitempty"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
}

// ParseYAML parses and validates a stage file.
func ParseYAML(data []byte) (Stage, error) {
	var ys yamlStage
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Stage{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := ys.validate(); err != nil {
		return Stage{}, err
	}
	return ys.toStage(), nil
}

func (ys yamlStage) validate() error {
	switch {
	case ys.ID == "":
		return errors.New("missing id")
	case ys.Size.W <= 0 || ys.Size.H <= 0:
		return fmt.Errorf("invalid size %vx%v", ys.Size.W, ys.Size.H)
	case ys.Spawn.X < 0 || ys.Spawn.X > ys.Size.W:
		return fmt.Errorf("spawn x %v outside stage", ys.Spawn.X)
	case ys.Ground.Tiles < 0:
		return fmt.Errorf("negative ground tiles %d", ys.Ground.Tiles)
	}
	for _, it := range ys.Items {
		if it.ID == "" {
			return errors.New("item without id")
		}
	}
	return nil
}

func (ys yamlStage) toStage() Stage {
	st := Stage{
		ID:       ys.ID,
		Name:     ys.Name,
		Order:    ys.Order,
		Width:    ys.Size.W,
		Height:   ys.Size.H,
		Spawn:    Point(ys.Spawn),
		Metadata: ys.Metadata,
	}
	if st.Name == "" {
		st.Name = st.ID
	}

	gaps := make(map[int]bool, len(ys.Ground.Gaps))
	for _, g := range ys.Ground.Gaps {
		gaps[g] = true
	}
	for i := 0; i < ys.Ground.Tiles; i++ {
		if gaps[i] {
			continue
		}
		st.Platforms = append(st.Platforms, Platform{
			X: float64(i)*TileSize + TileSize/2,
			Y: ys.Ground.Y,
			W: TileSize,
			H: TileSize,
		})
	}

	for _, p := range ys.Platforms {
		w, h := p.W, p.H
		if w <= 0 {
			w = TileSize
		}
		if h <= 0 {
			h = TileSize
		}
		st.Platforms = append(st.Platforms, Platform{X: p.X, Y: p.Y, W: w, H: h})
	}
	for _, e := range ys.Enemies {
		st.Enemies = append(st.Enemies, Point(e))
	}
	for _, c := range ys.Coins {
		st.Coins = append(st.Coins, Point(c))
	}
	for _, it := range ys.Items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		st.Items = append(st.Items, ItemPlacement{ID: it.ID, Quantity: qty, At: Point{X: it.X, Y: it.Y}})
	}
	return st
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
