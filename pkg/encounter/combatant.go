package encounter

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Condition is a named effect on a combatant, with an optional duration
// in rounds. Conditions have no uniqueness constraint; a combatant may
// carry duplicates, and removal is by position.
type Condition struct {
	Name     string `json:"name"`
	Duration *int   `json:"duration,omitempty"`
}

// Combatant is one participant in an encounter. The JSON field names are
// the transport shape shared with saved snapshots and export files.
type Combatant struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	HP          int         `json:"hp"`
	MaxHP       int         `json:"maxHp"`
	TempHP      int         `json:"tempHp"`
	AC          int         `json:"ac"`
	Initiative  int         `json:"initiative"`
	IsPC        bool        `json:"isPC"`
	Level       *int        `json:"level,omitempty"`
	CR          string      `json:"cr,omitempty"`
	Type        string      `json:"type,omitempty"`
	Environment string      `json:"environment,omitempty"`
	XP          *int        `json:"xp,omitempty"`
	Conditions  []Condition `json:"conditions,omitempty"`
}

// NewCombatant creates a combatant with a fresh ID at full hit points.
// MaxHP is floored at 1 so the HP invariant holds from the start.
func NewCombatant(name string, maxHP, ac int) Combatant {
	if maxHP < 1 {
		maxHP = 1
	}
	return Combatant{
		ID:    uuid.NewString(),
		Name:  name,
		HP:    maxHP,
		MaxHP: maxHP,
		AC:    ac,
	}
}

// AddCondition appends a condition. Duplicates are permitted.
func (c *Combatant) AddCondition(cond Condition) {
	c.Conditions = append(c.Conditions, cond)
}

// RemoveConditionAt removes the condition at the given position.
// Out-of-range indexes are ignored.
func (c *Combatant) RemoveConditionAt(i int) {
	if i < 0 || i >= len(c.Conditions) {
		return
	}
	c.Conditions = append(c.Conditions[:i], c.Conditions[i+1:]...)
}

// IsDown returns true when the combatant has no hit points left.
func (c *Combatant) IsDown() bool {
	return c.HP <= 0
}

// sanitized returns a copy with the save-time invariant applied:
// HP clamped into [0, MaxHP] and TempHP floored at 0. MaxHP is kept
// as-is; imported data may legitimately carry the coercion default.
func (c Combatant) sanitized() Combatant {
	out := c
	if out.HP < 0 {
		out.HP = 0
	}
	if out.MaxHP >= 0 && out.HP > out.MaxHP {
		out.HP = out.MaxHP
	}
	if out.TempHP < 0 {
		out.TempHP = 0
	}
	out.Conditions = cloneConditions(c.Conditions)
	return out
}

func cloneConditions(conds []Condition) []Condition {
	if conds == nil {
		return nil
	}
	out := make([]Condition, len(conds))
	for i, cond := range conds {
		out[i] = cond
		if cond.Duration != nil {
			d := *cond.Duration
			out[i].Duration = &d
		}
	}
	return out
}

func cloneCombatants(combatants []Combatant) []Combatant {
	out := make([]Combatant, len(combatants))
	for i, c := range combatants {
		out[i] = c
		if c.Level != nil {
			lvl := *c.Level
			out[i].Level = &lvl
		}
		if c.XP != nil {
			xp := *c.XP
			out[i].XP = &xp
		}
		out[i].Conditions = cloneConditions(c.Conditions)
	}
	return out
}

// UnmarshalJSON decodes a combatant while coercing every numeric field
// through "parse as integer, default on failure". Persisted data can
// originate from a prior schema or a hand-edited import file, so a
// malformed number substitutes its default instead of failing the
// whole decode.
func (c *Combatant) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		HP          json.RawMessage `json:"hp"`
		MaxHP       json.RawMessage `json:"maxHp"`
		TempHP      json.RawMessage `json:"tempHp"`
		AC          json.RawMessage `json:"ac"`
		Initiative  json.RawMessage `json:"initiative"`
		IsPC        bool            `json:"isPC"`
		Level       json.RawMessage `json:"level"`
		CR          string          `json:"cr"`
		Type        string          `json:"type"`
		Environment string          `json:"environment"`
		XP          json.RawMessage `json:"xp"`
		Conditions  []Condition     `json:"conditions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.ID = raw.ID
	c.Name = raw.Name
	c.HP = coerceInt(raw.HP, 0)
	c.MaxHP = coerceInt(raw.MaxHP, 0)
	c.TempHP = coerceInt(raw.TempHP, 0)
	c.AC = coerceInt(raw.AC, 0)
	c.Initiative = coerceInt(raw.Initiative, 0)
	c.IsPC = raw.IsPC
	c.Level = coerceOptionalInt(raw.Level)
	c.CR = raw.CR
	c.Type = raw.Type
	c.Environment = raw.Environment
	c.XP = coerceOptionalInt(raw.XP)
	c.Conditions = raw.Conditions
	return nil
}

// UnmarshalJSON tolerates a malformed duration by dropping it.
func (cond *Condition) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name     string          `json:"name"`
		Duration json.RawMessage `json:"duration"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	cond.Name = raw.Name
	cond.Duration = coerceOptionalInt(raw.Duration)
	return nil
}

// coerceInt parses a raw JSON value as an integer. Numbers are
// truncated, quoted numbers are parsed, and everything else (null,
// objects, garbage strings) takes the default.
func coerceInt(raw json.RawMessage, def int) int {
	if len(raw) == 0 || string(raw) == "null" {
		return def
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
	}
	return def
}

// coerceOptionalInt is coerceInt for optional fields: absent stays
// absent, present parses with a 0 default.
func coerceOptionalInt(raw json.RawMessage) *int {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	n := coerceInt(raw, 0)
	return &n
}
