// Package bestiary loads monster templates from YAML files and mints
// encounter combatants from them.
package bestiary

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/initiative-tracker/pkg/encounter"
)

// Monster is a reusable stat block. Adding one to an encounter copies
// its values into a fresh combatant; the template itself never changes.
type Monster struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type,omitempty" json:"type,omitempty"`
	Environment string `yaml:"environment,omitempty" json:"environment,omitempty"`
	CR          string `yaml:"cr,omitempty" json:"cr,omitempty"`
	XP          int    `yaml:"xp,omitempty" json:"xp,omitempty"`
	AC          int    `yaml:"ac" json:"ac"`
	HP          int    `yaml:"hp" json:"hp"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Parse decodes a monster template. Unknown fields are rejected so a
// typo in a stat block surfaces as an error instead of a silent zero.
func Parse(data []byte) (*Monster, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var m Monster
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse monster: %w", err)
	}
	return &m, nil
}

// Load reads and parses a monster template file.
func Load(path string) (*Monster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read monster file: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Validate checks the template for the fields an encounter needs.
func (m *Monster) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("monster is missing an id")
	}
	if m.Name == "" {
		return fmt.Errorf("monster %s is missing a name", m.ID)
	}
	if m.HP < 1 {
		return fmt.Errorf("monster %s must have at least 1 hp", m.ID)
	}
	if m.AC < 1 {
		return fmt.Errorf("monster %s must have at least 1 ac", m.ID)
	}
	if m.XP < 0 {
		return fmt.Errorf("monster %s has negative xp", m.ID)
	}
	if m.CR != "" {
		if _, ok := XPForCR(m.CR); !ok {
			return fmt.Errorf("monster %s has unknown challenge rating %q", m.ID, m.CR)
		}
	}
	return nil
}

// XPValue returns the monster's XP award, falling back to the standard
// value for its challenge rating when none is set explicitly.
func (m *Monster) XPValue() int {
	if m.XP > 0 {
		return m.XP
	}
	if xp, ok := XPForCR(m.CR); ok {
		return xp
	}
	return 0
}

// Combatant mints a fresh combatant from the template, at full hit
// points with initiative unrolled.
func (m *Monster) Combatant() encounter.Combatant {
	c := encounter.NewCombatant(m.Name, m.HP, m.AC)
	c.Type = m.Type
	c.Environment = m.Environment
	c.CR = m.CR
	xp := m.XPValue()
	c.XP = &xp
	return c
}
