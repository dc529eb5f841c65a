package encounter

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Snapshot is a persisted encounter. Snapshots are value copies: once
// taken, later edits to the live encounter do not leak into them.
type Snapshot struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Combatants  []Combatant `json:"combatants"`
	Round       int         `json:"round"`
	CurrentTurn int         `json:"currentTurn"`
	Notes       string      `json:"notes"`
	SavedAt     time.Time   `json:"savedAt"`
}

// Snapshot captures the encounter under the given name with a fresh id
// and timestamp. Combatant vitals are normalized on the way out so a
// stored snapshot always satisfies the HP invariants.
func (e *Encounter) Snapshot(name string) Snapshot {
	s := Snapshot{
		ID:          uuid.NewString(),
		Name:        name,
		Combatants:  cloneCombatants(e.Combatants),
		Round:       e.Round,
		CurrentTurn: e.CurrentTurn,
		Notes:       e.Notes,
	}
	s = s.Sanitized()
	s.SavedAt = time.Now().UTC()
	return s
}

// Sanitized returns a copy with the persistence invariants applied:
// every combatant's HP clamped into [0, MaxHP] and TempHP floored at 0,
// round at least 1, and the turn index within the roster bounds.
func (s Snapshot) Sanitized() Snapshot {
	out := s
	out.Combatants = make([]Combatant, len(s.Combatants))
	for i, c := range s.Combatants {
		out.Combatants[i] = c.sanitized()
	}
	if out.Round < 1 {
		out.Round = 1
	}
	out.Combatants, out.CurrentTurn = clampTurn(out.Combatants, out.CurrentTurn)
	return out
}

// FromSnapshot restores a live encounter from a stored snapshot. The
// snapshot keeps its own combatant copies.
func FromSnapshot(s Snapshot) *Encounter {
	e := &Encounter{
		Combatants:  cloneCombatants(s.Combatants),
		Round:       s.Round,
		CurrentTurn: s.CurrentTurn,
		Notes:       s.Notes,
	}
	if e.Round < 1 {
		e.Round = 1
	}
	e.Combatants, e.CurrentTurn = clampTurn(e.Combatants, e.CurrentTurn)
	return e
}

func clampTurn(combatants []Combatant, turn int) ([]Combatant, int) {
	if len(combatants) == 0 || turn < 0 {
		return combatants, 0
	}
	if turn >= len(combatants) {
		return combatants, len(combatants) - 1
	}
	return combatants, turn
}

// UnmarshalJSON decodes a stored snapshot leniently. Round and turn
// fall back to their zero-state defaults (round 1, turn 0) and a
// malformed timestamp decodes as the zero time, so old or hand-edited
// payloads never fail the read path outright.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		Combatants  []Combatant     `json:"combatants"`
		Round       json.RawMessage `json:"round"`
		CurrentTurn json.RawMessage `json:"currentTurn"`
		Notes       string          `json:"notes"`
		SavedAt     json.RawMessage `json:"savedAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.ID = raw.ID
	s.Name = raw.Name
	s.Combatants = raw.Combatants
	if s.Combatants == nil {
		s.Combatants = []Combatant{}
	}
	s.Round = coerceInt(raw.Round, 1)
	s.CurrentTurn = coerceInt(raw.CurrentTurn, 0)
	s.Notes = raw.Notes
	s.SavedAt = coerceTime(raw.SavedAt)
	return nil
}

func coerceTime(raw json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Slug derives the storage identity for an encounter name: lowercase,
// with runs of separators collapsed to single underscores and other
// punctuation dropped. Two names with the same slug address the same
// saved slot.
func Slug(name string) string {
	var b strings.Builder
	prevUnderscore := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		case r == ' ' || r == '-' || r == '_' || r == '.':
			if !prevUnderscore {
				b.WriteByte('_')
				prevUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
