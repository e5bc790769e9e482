package sim

// Event is a one-shot notification produced by a session tick.
type Event interface {
	simEvent()
}

// AttackTriggered is emitted for every accepted attack.
type AttackTriggered struct {
	Attack AttackEvent
	Hits   []Hit
}

func (AttackTriggered) simEvent() {}

// EnemyKilled is emitted once when an enemy dies.
type EnemyKilled struct {
	EnemyID          int
	ExperienceReward int
}

func (EnemyKilled) simEvent() {}

// EnemyRemoved is emitted once when a dead enemy's fade finishes.
type EnemyRemoved struct {
	EnemyID int
}

func (EnemyRemoved) simEvent() {}

// PlayerDamaged is emitted when contact damage lands.
type PlayerDamaged struct {
	EnemyID int
	Amount  int
	Health  int
}

func (PlayerDamaged) simEvent() {}

// PlayerHealed is emitted when an item restores health.
type PlayerHealed struct {
	Amount int
	Health int
}

func (PlayerHealed) simEvent() {}

// LevelUp is emitted when experience pays for one or more levels.
type LevelUp struct {
	Level  int
	Levels int // Levels gained by this grant
}

func (LevelUp) simEvent() {}

// CoinCollected is emitted per coin picked up.
type CoinCollected struct {
	Index int
	Value int
}

func (CoinCollected) simEvent() {}

// ItemCollected is emitted per item picked up.
type ItemCollected struct {
	Item Item
}

func (ItemCollected) simEvent() {}

// ScoreChanged is emitted whenever gold changes.
type ScoreChanged struct {
	Gold int
}

func (ScoreChanged) simEvent() {}

// DeathCause describes how the player died.
type DeathCause int

const (
	DeathSlain DeathCause = iota // Health reached zero
	DeathFell                    // Fell below the world
)

func (c DeathCause) String() string {
	switch c {
	case DeathSlain:
		return "slain"
	case DeathFell:
		return "fell"
	default:
		return "unknown"
	}
}

// PlayerDied is emitted once per run.
type PlayerDied struct {
	Cause DeathCause
}

func (PlayerDied) simEvent() {}

// GameOver is emitted when the session halts.
type GameOver struct {
	Gold  int
	Level int
}

func (GameOver) simEvent() {}

// StateChanged is emitted on every session state transition.
type StateChanged struct {
	From State
	To   State
}

func (StateChanged) simEvent() {}
