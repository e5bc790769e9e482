package sim

import (
	"testing"
	"time"

	"github.com/vovakirdan/duskfall/internal/config"
	"github.com/vovakirdan/duskfall/internal/core"
)

func newTestEnemy(x float64) *Enemy {
	cfg := config.DefaultDuskConfig().Enemy
	return NewEnemy(1, core.Vec{X: x, Y: 500}, EnemyStatsFrom(cfg), cfg, 0)
}

func TestEnemyPatrolReflectsPastRadius(t *testing.T) {
	e := newTestEnemy(500)

	// 50 px/s, radius 150: the edge is at 650 and 350
	steps := []struct {
		sec  int
		x    float64
		want int
	}{
		{1, 550, 1},
		{2, 600, 1},
		{3, 650, 1}, // exactly on the edge, no flip yet
		{4, 700, -1},
		{5, 650, -1},
		{10, 400, -1},
		{11, 350, -1},
		{12, 300, 1},
		{13, 350, 1},
	}
	for _, st := range steps {
		snap := e.Tick(time.Duration(st.sec) * time.Second)
		if snap.Pos.X != st.x || snap.Direction != st.want {
			t.Errorf("t=%ds: x=%v dir=%d, want x=%v dir=%d", st.sec, snap.Pos.X, snap.Direction, st.x, st.want)
		}
	}
}

func TestEnemyApplyDamage(t *testing.T) {
	e := newTestEnemy(500)

	steps := []struct {
		amount int
		died   bool
		health int
	}{
		{10, false, 20},
		{0, false, 20},
		{-5, false, 20},
		{25, true, 0},
		{10, false, 0}, // already dead
	}
	for i, st := range steps {
		died := e.ApplyDamage(st.amount, ms(i*10))
		if died != st.died {
			t.Errorf("step %d: died = %v, want %v", i, died, st.died)
		}
		if h := e.Snapshot(ms(i * 10)).Health; h != st.health {
			t.Errorf("step %d: health = %d, want %d", i, h, st.health)
		}
	}
}

func TestEnemyHitTint(t *testing.T) {
	e := newTestEnemy(500)
	e.ApplyDamage(5, ms(1000))

	if !e.Snapshot(ms(1050)).Hit {
		t.Error("enemy should flash right after a hit")
	}
	if e.Snapshot(ms(1100)).Hit {
		t.Error("hit flash should end after 100ms")
	}
}

func TestDeadEnemyFadesAndIsRemoved(t *testing.T) {
	e := newTestEnemy(500)
	e.Tick(time.Second)
	e.ApplyDamage(100, time.Second)

	snap := e.Tick(ms(1250))
	if snap.Pos.X != 550 {
		t.Errorf("dead enemy moved: x = %v", snap.Pos.X)
	}
	if snap.Alpha != 0.5 || snap.Pos.Y != 475 {
		t.Errorf("mid fade: alpha=%v y=%v, want 0.5 and 475", snap.Alpha, snap.Pos.Y)
	}
	if e.Removed() {
		t.Fatal("removed before fade finished")
	}

	snap = e.Tick(ms(1500))
	if !snap.Removed || !e.Removed() {
		t.Fatal("should be removed once the fade finishes")
	}
	if snap.Alpha != 0 {
		t.Errorf("alpha = %v, want 0", snap.Alpha)
	}
}

func TestEnemyStaleTickIsNoop(t *testing.T) {
	e := newTestEnemy(500)
	e.Tick(time.Second)

	for _, at := range []time.Duration{time.Second, 500 * time.Millisecond} {
		if snap := e.Tick(at); snap.Pos.X != 550 {
			t.Errorf("tick at %v moved enemy to %v", at, snap.Pos.X)
		}
	}
}
