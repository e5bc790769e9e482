package sim

import (
	"time"

	"github.com/vovakirdan/duskfall/internal/config"
	"github.com/vovakirdan/duskfall/internal/core"
)

// skin keeps resting contact from counting as a side collision.
const skin = 0.01

// World holds static geometry and integrates bodies against it.
// The bottom edge is open: bodies that miss every platform keep falling.
type World struct {
	Width, Height float64
	Gravity       float64
	MaxFallSpeed  float64
	Platforms     []core.Box
}

// NewWorld builds a world of the given size.
func NewWorld(width, height float64, platforms []core.Box, cfg config.PhysicsConfig) World {
	return World{
		Width:        width,
		Height:       height,
		Gravity:      cfg.Gravity,
		MaxFallSpeed: cfg.MaxFallSpeed,
		Platforms:    platforms,
	}
}

// Step integrates b over dt, resolving each axis separately.
// OnGround is set when the body lands on or rests on a platform.
func (w *World) Step(b *Body, dt time.Duration) {
	if dt <= 0 {
		return
	}
	secs := dt.Seconds()

	b.Vel.Y += w.Gravity * secs
	if w.MaxFallSpeed > 0 && b.Vel.Y > w.MaxFallSpeed {
		b.Vel.Y = w.MaxFallSpeed
	}

	// Horizontal
	b.Pos.X += b.Vel.X * secs
	box := b.Bounds()
	probe := core.Box{X: box.X, Y: box.Y + skin, W: box.W, H: box.H - 2*skin}
	for _, p := range w.Platforms {
		if !probe.Overlaps(p) {
			continue
		}
		if b.Vel.X > 0 {
			b.Pos.X = p.X - b.W/2
		} else if b.Vel.X < 0 {
			b.Pos.X = p.Right() + b.W/2
		}
		b.Vel.X = 0
		probe.X = b.Pos.X - b.W/2
	}
	b.Pos.X = core.ClampF(b.Pos.X, b.W/2, w.Width-b.W/2)

	// Vertical
	b.Pos.Y += b.Vel.Y * secs
	b.OnGround = false
	for _, p := range w.Platforms {
		if !b.Bounds().Overlaps(p) {
			continue
		}
		if b.Vel.Y >= 0 {
			b.Pos.Y = p.Y - b.H/2
			b.OnGround = true
		} else {
			b.Pos.Y = p.Bottom() + b.H/2
		}
		b.Vel.Y = 0
	}
	if top := b.Pos.Y - b.H/2; top < 0 {
		b.Pos.Y = b.H / 2
		if b.Vel.Y < 0 {
			b.Vel.Y = 0
		}
	}
}

// Contains reports whether p is inside the world horizontally and above its
// bottom edge.
func (w *World) Contains(p core.Vec) bool {
	return p.X >= 0 && p.X <= w.Width && p.Y <= w.Height
}
