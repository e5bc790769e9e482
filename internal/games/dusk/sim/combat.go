package sim

// Hit is one enemy struck by an attack.
type Hit struct {
	EnemyID int
	Died    bool
}

// Resolver matches attack events against enemy bounds.
//
// Attack IDs are strictly increasing, so the resolver only has to remember
// the highest ID it has seen to guarantee each event lands once.
type Resolver struct {
	lastID uint64
}

// Resolve applies the event's damage to every live enemy its hitbox overlaps.
// An event with a zero ID, or one not newer than the last resolved event,
// hits nothing.
func (r *Resolver) Resolve(ev AttackEvent, enemies []*Enemy) []Hit {
	if ev.ID == 0 || ev.ID <= r.lastID {
		return nil
	}
	r.lastID = ev.ID

	var hits []Hit
	for _, e := range enemies {
		if e.Dead() {
			continue
		}
		if !ev.Hitbox.Overlaps(e.Bounds()) {
			continue
		}
		hits = append(hits, Hit{
			EnemyID: e.ID(),
			Died:    e.ApplyDamage(ev.Damage, ev.At),
		})
	}
	return hits
}

// Reset forgets resolved events. Call it together with a player reset, since
// a new player issues IDs from 1 again.
func (r *Resolver) Reset() {
	r.lastID = 0
}
