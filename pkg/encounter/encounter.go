// Package encounter holds the combat tracker state: the combatant
// roster, round and turn bookkeeping, hit point arithmetic, difficulty
// estimation, and the snapshot codec used for persistence and file
// import/export.
package encounter

import "sort"

// InitiativeRoller produces one initiative roll. Satisfied by
// dice.Roller; tests substitute a fixed implementation.
type InitiativeRoller interface {
	Initiative() int
}

// Encounter is the tracker state. It owns the combatant list; callers
// mutate it through methods and treat the fields as read-only views.
type Encounter struct {
	Combatants  []Combatant `json:"combatants"`
	Round       int         `json:"round"`
	CurrentTurn int         `json:"currentTurn"`
	Notes       string      `json:"notes"`
}

// New returns an empty encounter at round 1, turn 0.
func New() *Encounter {
	return &Encounter{Round: 1}
}

// Add appends a combatant to the end of the roster.
func (e *Encounter) Add(c Combatant) {
	e.Combatants = append(e.Combatants, c)
}

// FindByID returns the combatant with the given id, or nil.
func (e *Encounter) FindByID(id string) *Combatant {
	for i := range e.Combatants {
		if e.Combatants[i].ID == id {
			return &e.Combatants[i]
		}
	}
	return nil
}

// RemoveByID removes a combatant from the roster. The turn index keeps
// its numeric position so the spotlight passes to the next combatant;
// it is clamped when the removal leaves it past the end of the list.
func (e *Encounter) RemoveByID(id string) bool {
	for i := range e.Combatants {
		if e.Combatants[i].ID != id {
			continue
		}
		e.Combatants = append(e.Combatants[:i], e.Combatants[i+1:]...)
		if len(e.Combatants) == 0 {
			e.CurrentTurn = 0
		} else if e.CurrentTurn >= len(e.Combatants) {
			e.CurrentTurn = len(e.Combatants) - 1
		}
		return true
	}
	return false
}

// Active returns the combatant whose turn it is, or nil for an empty
// roster.
func (e *Encounter) Active() *Combatant {
	if len(e.Combatants) == 0 {
		return nil
	}
	i := e.CurrentTurn
	if i < 0 || i >= len(e.Combatants) {
		i = 0
	}
	return &e.Combatants[i]
}

// NextTurn advances the turn pointer. Wrapping past the last combatant
// starts a new round. No-op while the roster is empty.
func (e *Encounter) NextTurn() {
	if len(e.Combatants) == 0 {
		return
	}
	e.CurrentTurn++
	if e.CurrentTurn >= len(e.Combatants) {
		e.CurrentTurn = 0
		e.Round++
	}
}

// SortByInitiative orders the roster by descending initiative. The sort
// is stable, so tied combatants keep their insertion order. The turn
// pointer resets to the top of the order.
func (e *Encounter) SortByInitiative() {
	sort.SliceStable(e.Combatants, func(i, j int) bool {
		return e.Combatants[i].Initiative > e.Combatants[j].Initiative
	})
	e.CurrentTurn = 0
}

// Reset returns the encounter to round 1, turn 0. Combatants and their
// vitals are untouched.
func (e *Encounter) Reset() {
	e.Round = 1
	e.CurrentTurn = 0
}

// DamageCombatant applies damage to the combatant with the given id.
// Returns false for unknown ids.
func (e *Encounter) DamageCombatant(id string, amount int) bool {
	c := e.FindByID(id)
	if c == nil {
		return false
	}
	c.HP, c.TempHP = ApplyDamage(*c, amount)
	return true
}

// HealCombatant heals the combatant with the given id. Returns false
// for unknown ids.
func (e *Encounter) HealCombatant(id string, amount int) bool {
	c := e.FindByID(id)
	if c == nil {
		return false
	}
	c.HP, c.TempHP = ApplyHeal(*c, amount)
	return true
}

// SetTempHP replaces a combatant's temporary hit points. Negative
// values are floored at 0.
func (e *Encounter) SetTempHP(id string, n int) bool {
	c := e.FindByID(id)
	if c == nil {
		return false
	}
	if n < 0 {
		n = 0
	}
	c.TempHP = n
	return true
}

// RenameCombatant sets a combatant's name after validation. A rejected
// value leaves the combatant unchanged. Unknown ids are ignored.
func (e *Encounter) RenameCombatant(id, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if c := e.FindByID(id); c != nil {
		c.Name = name
	}
	return nil
}

// SetInitiative sets a combatant's initiative after validation. A
// rejected value leaves the combatant unchanged. Unknown ids are
// ignored.
func (e *Encounter) SetInitiative(id string, v int) error {
	if err := ValidateInitiative(v); err != nil {
		return err
	}
	if c := e.FindByID(id); c != nil {
		c.Initiative = v
	}
	return nil
}

// SetArmorClass sets a combatant's AC after validation. A rejected
// value leaves the combatant unchanged. Unknown ids are ignored.
func (e *Encounter) SetArmorClass(id string, v int) error {
	if err := ValidateAC(v); err != nil {
		return err
	}
	if c := e.FindByID(id); c != nil {
		c.AC = v
	}
	return nil
}

// RollInitiative rolls initiative for one combatant. Returns false for
// unknown ids.
func (e *Encounter) RollInitiative(r InitiativeRoller, id string) bool {
	c := e.FindByID(id)
	if c == nil {
		return false
	}
	c.Initiative = r.Initiative()
	return true
}

// RollAllInitiatives rolls initiative for every combatant. Each gets an
// independent roll.
func (e *Encounter) RollAllInitiatives(r InitiativeRoller) {
	for i := range e.Combatants {
		e.Combatants[i].Initiative = r.Initiative()
	}
}
