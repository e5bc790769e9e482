package sim

import "testing"

func TestGrant(t *testing.T) {
	curve := DefaultCurve()
	base := DefaultStats()

	tests := []struct {
		name   string
		start  Stats
		amount int
		want   Stats
	}{
		{
			name:   "below threshold",
			start:  base,
			amount: 40,
			want:   Stats{Health: 100, MaxHealth: 100, AttackPower: 10, Defense: 5, Level: 1, Experience: 40, ExperienceToNextLevel: 100},
		},
		{
			name:   "exact threshold",
			start:  base,
			amount: 100,
			want:   Stats{Health: 120, MaxHealth: 120, AttackPower: 15, Defense: 7, Level: 2, Experience: 0, ExperienceToNextLevel: 150},
		},
		{
			name: "two levels in one grant",
			start: Stats{Health: 60, MaxHealth: 100, AttackPower: 10, Defense: 5,
				Level: 1, Experience: 80, ExperienceToNextLevel: 100},
			amount: 250,
			want: Stats{Health: 140, MaxHealth: 140, AttackPower: 20, Defense: 9,
				Level: 3, Experience: 80, ExperienceToNextLevel: 225},
		},
		{
			name:   "zero amount",
			start:  base,
			amount: 0,
			want:   base,
		},
		{
			name:   "negative amount",
			start:  base,
			amount: -50,
			want:   base,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := curve.Grant(tt.start, tt.amount)
			if got != tt.want {
				t.Errorf("Grant(%d)\n got %+v\nwant %+v", tt.amount, got, tt.want)
			}
		})
	}
}

func TestGrantIsPure(t *testing.T) {
	curve := DefaultCurve()
	start := DefaultStats()

	a := curve.Grant(start, 175)
	b := curve.Grant(start, 175)
	if a != b {
		t.Errorf("same input gave %+v and %+v", a, b)
	}
	if start != DefaultStats() {
		t.Error("Grant mutated its input")
	}
}

func TestGrantTerminatesOnBrokenThreshold(t *testing.T) {
	curve := DefaultCurve()
	start := DefaultStats()
	start.ExperienceToNextLevel = 0

	got := curve.Grant(start, 3)
	if got.Level != 4 || got.Experience != 0 {
		t.Errorf("got level %d xp %d, want level 4 xp 0", got.Level, got.Experience)
	}
}
