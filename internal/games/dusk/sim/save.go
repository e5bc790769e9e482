package sim

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// saveVersion is bumped when SaveData changes incompatibly.
const saveVersion = 1

// SaveData is the persistent part of a run. Timers are never saved.
type SaveData struct {
	Version   int    `yaml:"version"`
	Stats     Stats  `yaml:"stats"`
	Gold      int    `yaml:"gold"`
	Inventory []Item `yaml:"inventory"`
}

// EncodeSave serializes save data as YAML.
func EncodeSave(d SaveData) ([]byte, error) {
	d.Version = saveVersion
	out, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("sim: encode save: %w", err)
	}
	return out, nil
}

// DecodeSave parses and validates save data.
func DecodeSave(data []byte) (SaveData, error) {
	var d SaveData
	if len(data) == 0 {
		return d, errors.New("sim: decode save: empty")
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("sim: decode save: %w", err)
	}
	if err := d.validate(); err != nil {
		return d, fmt.Errorf("sim: decode save: %w", err)
	}
	return d, nil
}

func (d SaveData) validate() error {
	if d.Version != saveVersion {
		return fmt.Errorf("unsupported version %d", d.Version)
	}
	s := d.Stats
	switch {
	case s.Level < 1:
		return fmt.Errorf("level %d below 1", s.Level)
	case s.MaxHealth <= 0:
		return fmt.Errorf("max health %d not positive", s.MaxHealth)
	case s.Health < 0 || s.Health > s.MaxHealth:
		return fmt.Errorf("health %d outside [0, %d]", s.Health, s.MaxHealth)
	case s.AttackPower < 0 || s.Defense < 0 || s.Experience < 0:
		return errors.New("negative stat")
	case s.ExperienceToNextLevel <= 0:
		return fmt.Errorf("experience threshold %d not positive", s.ExperienceToNextLevel)
	case d.Gold < 0:
		return fmt.Errorf("gold %d negative", d.Gold)
	}
	for _, it := range d.Inventory {
		if it.ID == "" || it.Quantity <= 0 {
			return fmt.Errorf("invalid item %q x%d", it.ID, it.Quantity)
		}
	}
	return nil
}

// Save captures the persistent state of the session.
func (s *Session) Save() SaveData {
	return SaveData{
		Version:   saveVersion,
		Stats:     s.player.Stats(),
		Gold:      s.gold,
		Inventory: s.inventory.Items(),
	}
}

// Load queues saved state for the next Start. Malformed or missing data is
// replaced by defaults and logged, never returned as a failure. Reports
// whether the data was usable.
func (s *Session) Load(data []byte) bool {
	d, err := DecodeSave(data)
	if err != nil {
		if len(data) > 0 {
			s.log.Warn("discarding save, using defaults", "err", err)
		}
		s.carry = nil
		return false
	}
	if d.Stats.Health == 0 {
		d.Stats.Health = d.Stats.MaxHealth
	}
	s.carry = &d
	return true
}
