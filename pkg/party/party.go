// Package party loads player character specs from JSON files and mints
// encounter combatants from them. Specs are validated by building a
// d20 actor, so a sheet with impossible vitals is rejected before it
// reaches an encounter.
package party

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jwebster45206/d20"

	"github.com/jwebster45206/initiative-tracker/pkg/encounter"
)

// Stats are the six ability scores.
type Stats struct {
	Str int `json:"str"`
	Dex int `json:"dex"`
	Con int `json:"con"`
	Int int `json:"int"`
	Wis int `json:"wis"`
	Cha int `json:"cha"`
}

// Attributes converts the scores to the attribute map a d20 actor
// expects.
func (s Stats) Attributes() map[string]int {
	return map[string]int{
		"str": s.Str,
		"dex": s.Dex,
		"con": s.Con,
		"int": s.Int,
		"wis": s.Wis,
		"cha": s.Cha,
	}
}

// MemberSpec is a player character sheet as stored on disk.
type MemberSpec struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Class string `json:"class,omitempty"`
	Race  string `json:"race,omitempty"`
	Level int    `json:"level"`
	HP    int    `json:"hp,omitempty"`
	MaxHP int    `json:"max_hp"`
	AC    int    `json:"ac"`
	Stats Stats  `json:"stats,omitempty"`
}

// Validate checks the spec fields that do not need an actor build.
func (spec *MemberSpec) Validate() error {
	if spec.ID == "" {
		return fmt.Errorf("pc is missing an id")
	}
	if spec.Name == "" {
		return fmt.Errorf("pc %s is missing a name", spec.ID)
	}
	if spec.MaxHP < 1 {
		return fmt.Errorf("pc %s must have at least 1 max_hp", spec.ID)
	}
	if spec.AC < 1 {
		return fmt.Errorf("pc %s must have at least 1 ac", spec.ID)
	}
	if spec.Level < 0 || spec.Level > 20 {
		return fmt.Errorf("pc %s has level %d, must be 0-20", spec.ID, spec.Level)
	}
	if spec.HP < 0 || spec.HP > spec.MaxHP {
		return fmt.Errorf("pc %s has hp %d outside 0-%d", spec.ID, spec.HP, spec.MaxHP)
	}
	return nil
}

// Parse decodes a character sheet, rejecting unknown fields.
func Parse(data []byte) (*MemberSpec, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var spec MemberSpec
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("failed to parse pc: %w", err)
	}
	return &spec, nil
}

// Load reads and parses a character sheet file.
func Load(path string) (*MemberSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pc file: %w", err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// Member is a validated party member: the stored spec plus the d20
// actor holding its canonical vitals.
type Member struct {
	Spec  *MemberSpec
	Actor *d20.Actor
}

// NewMember builds the d20 actor for a spec. Current HP below max is
// carried over, so a party mid-adventure keeps its wounds.
func NewMember(spec *MemberSpec) (*Member, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	actor, err := d20.NewActor(spec.ID).
		WithHP(spec.MaxHP).
		WithAC(spec.AC).
		WithAttributes(spec.Stats.Attributes()).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor for pc %s: %w", spec.ID, err)
	}

	if spec.HP > 0 && spec.HP != spec.MaxHP {
		if err := actor.SetHP(spec.HP); err != nil {
			return nil, fmt.Errorf("failed to set hp for pc %s: %w", spec.ID, err)
		}
	}

	return &Member{Spec: spec, Actor: actor}, nil
}

// Combatant mints a combatant for an encounter, carrying the actor's
// vitals and the spec's level.
func (m *Member) Combatant() encounter.Combatant {
	c := encounter.NewCombatant(m.Spec.Name, m.Actor.MaxHP(), m.Actor.AC())
	c.HP = m.Actor.HP()
	c.IsPC = true
	if m.Spec.Level > 0 {
		lvl := m.Spec.Level
		c.Level = &lvl
	}
	return c
}
