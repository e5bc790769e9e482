// Package stages loads dusk stage layouts. Stages ship embedded in the binary
// and can also be read from any directory.
// This package depends on sim but sim does not depend on stages.
package stages

import (
	"github.com/vovakirdan/duskfall/internal/config"
	"github.com/vovakirdan/duskfall/internal/core"
	"github.com/vovakirdan/duskfall/internal/games/dusk/sim"
)

// Point is a position in world pixels.
type Point struct {
	X float64
	Y float64
}

// Platform is a solid box centered on (X, Y).
type Platform struct {
	X, Y float64
	W, H float64
}

// Box returns the platform's bounds.
func (p Platform) Box() core.Box {
	return core.BoxAt(p.X, p.Y, p.W, p.H)
}

// ItemPlacement is an item lying in the stage.
type ItemPlacement struct {
	ID       string
	Quantity int
	At       Point
}

// Stage is a complete stage definition.
type Stage struct {
	ID        string
	Name      string
	Order     int // Menu position, lower first
	Width     float64
	Height    float64
	Spawn     Point
	Platforms []Platform
	Enemies   []Point
	Coins     []Point
	Items     []ItemPlacement
	Metadata  map[string]string // Free-form, e.g. author
	FilePath  string            // Source file within its loader, empty if built in code
}

// Layout converts the stage for the simulation.
//
// Enemies, coins and items are dropped onto the first surface below their
// placement, the way they would settle under gravity. Anything above a hole
// keeps its placed height.
func (s Stage) Layout(cfg config.DuskConfig) sim.Layout {
	boxes := make([]core.Box, len(s.Platforms))
	for i, p := range s.Platforms {
		boxes[i] = p.Box()
	}

	l := sim.Layout{
		Name:      s.Name,
		Width:     s.Width,
		Height:    s.Height,
		Spawn:     core.Vec{X: s.Spawn.X, Y: s.Spawn.Y},
		Platforms: boxes,
	}
	for _, e := range s.Enemies {
		l.Enemies = append(l.Enemies, settle(boxes, e, cfg.Enemy.Height))
	}
	for _, c := range s.Coins {
		l.Coins = append(l.Coins, settle(boxes, c, coinHeight))
	}
	for _, it := range s.Items {
		item := catalog(it.ID)
		item.Quantity = it.Quantity
		l.Items = append(l.Items, sim.ItemSpawn{Item: item, Pos: settle(boxes, it.At, coinHeight)})
	}
	return l
}

// coinHeight is the resting height of small pickups.
const coinHeight = 24.0

// settle drops a point of the given height onto the highest surface below it.
func settle(platforms []core.Box, p Point, height float64) core.Vec {
	bottom := p.Y + height/2
	best := -1.0
	for _, b := range platforms {
		if p.X < b.X || p.X >= b.Right() || b.Y < bottom {
			continue
		}
		if best < 0 || b.Y < best {
			best = b.Y
		}
	}
	if best < 0 {
		return core.Vec{X: p.X, Y: p.Y}
	}
	return core.Vec{X: p.X, Y: best - height/2}
}

// catalog returns the item definition for an ID.
func catalog(id string) sim.Item {
	if id == sim.HealthPotionID {
		return sim.HealthPotion()
	}
	return sim.Item{ID: id, Name: id, Kind: sim.ItemQuest, Quantity: 1}
}
