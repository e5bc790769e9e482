package sim

import (
	"testing"
	"time"

	"github.com/vovakirdan/duskfall/internal/config"
	"github.com/vovakirdan/duskfall/internal/core"
)

const frame = time.Second / 60

// tiledGround lays 64px tiles along y=656..720, like a stage floor.
func tiledGround(n int) []core.Box {
	tiles := make([]core.Box, 0, n)
	for i := 0; i < n; i++ {
		tiles = append(tiles, core.BoxAt(float64(i*64+32), 688, 64, 64))
	}
	return tiles
}

func newTestWorld(platforms []core.Box) World {
	return NewWorld(3200, 720, platforms, config.DefaultDuskConfig().Physics)
}

func TestBodyLandsOnPlatform(t *testing.T) {
	w := newTestWorld(tiledGround(10))
	b := Body{Pos: core.Vec{X: 100, Y: 450}, W: 50, H: 70}

	for i := 0; i < 120; i++ {
		w.Step(&b, frame)
	}
	if !b.OnGround {
		t.Fatal("body should be resting on the ground")
	}
	if b.Pos.Y != 621 {
		t.Errorf("y = %v, want 621", b.Pos.Y)
	}
	if b.Vel.Y != 0 {
		t.Errorf("vel.y = %v, want 0", b.Vel.Y)
	}
}

func TestBodyWalksAcrossTileSeams(t *testing.T) {
	w := newTestWorld(tiledGround(20))
	b := Body{Pos: core.Vec{X: 100, Y: 621}, W: 50, H: 70}

	for i := 0; i < 120; i++ {
		b.Vel.X = 200
		w.Step(&b, frame)
		if b.Vel.X != 200 {
			t.Fatalf("frame %d: stopped at x=%v by a seam", i, b.Pos.X)
		}
	}
	if b.Pos.X < 499 || b.Pos.X > 501 {
		t.Errorf("x = %v, want about 500", b.Pos.X)
	}
	if !b.OnGround || b.Pos.Y != 621 {
		t.Errorf("lost ground contact: y=%v onGround=%v", b.Pos.Y, b.OnGround)
	}
}

func TestBodyBlockedByWall(t *testing.T) {
	wall := core.Box{X: 200, Y: 500, W: 64, H: 156}
	w := newTestWorld(append(tiledGround(10), wall))
	b := Body{Pos: core.Vec{X: 100, Y: 621}, W: 50, H: 70}

	for i := 0; i < 60; i++ {
		b.Vel.X = 200
		w.Step(&b, frame)
	}
	if b.Pos.X != 175 {
		t.Errorf("x = %v, want 175 against the wall", b.Pos.X)
	}
}

func TestBodyBumpsHead(t *testing.T) {
	ceiling := core.Box{X: 0, Y: 500, W: 300, H: 20}
	w := newTestWorld(append(tiledGround(10), ceiling))
	b := Body{Pos: core.Vec{X: 100, Y: 621}, W: 50, H: 70, Vel: core.Vec{Y: -400}}

	for i := 0; i < 20; i++ {
		w.Step(&b, frame)
		if top := b.Pos.Y - 35; top < 520 {
			t.Fatalf("frame %d: passed through ceiling, top=%v", i, top)
		}
	}
}

func TestBodyFallsThroughOpenBottom(t *testing.T) {
	w := newTestWorld(nil)
	b := Body{Pos: core.Vec{X: 100, Y: 450}, W: 50, H: 70}

	for i := 0; i < 180; i++ {
		w.Step(&b, frame)
	}
	if b.Pos.Y <= 800 {
		t.Errorf("y = %v, body should have fallen below the world", b.Pos.Y)
	}
	if b.Vel.Y > 1000 {
		t.Errorf("vel.y = %v exceeds max fall speed", b.Vel.Y)
	}
}

func TestBodyClampedToWorldEdges(t *testing.T) {
	w := newTestWorld(tiledGround(50))
	b := Body{Pos: core.Vec{X: 40, Y: 621}, W: 50, H: 70}

	for i := 0; i < 30; i++ {
		b.Vel.X = -200
		w.Step(&b, frame)
	}
	if b.Pos.X != 25 {
		t.Errorf("x = %v, want 25 at the left edge", b.Pos.X)
	}

	b.Pos.X = 3190
	b.Vel.X = 200
	w.Step(&b, frame)
	if b.Pos.X != 3175 {
		t.Errorf("x = %v, want 3175 at the right edge", b.Pos.X)
	}
}

func TestStepIgnoresNonPositiveDelta(t *testing.T) {
	w := newTestWorld(nil)
	b := Body{Pos: core.Vec{X: 100, Y: 450}, W: 50, H: 70, Vel: core.Vec{X: 200}}
	w.Step(&b, 0)
	w.Step(&b, -frame)
	if b.Pos.X != 100 || b.Vel.Y != 0 {
		t.Errorf("body changed: %+v", b)
	}
}
