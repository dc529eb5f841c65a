package encounter

import (
	"encoding/json"
	"strings"
	"time"
)

// importedEncounterName labels import files that carry no name of
// their own.
const importedEncounterName = "Imported Encounter"

// ExportFile is the shape written to and read from encounter files on
// disk. It mirrors a snapshot without the storage identity.
type ExportFile struct {
	Name        string      `json:"name"`
	Combatants  []Combatant `json:"combatants"`
	Round       int         `json:"round"`
	CurrentTurn int         `json:"currentTurn"`
	Notes       string      `json:"notes"`
	ExportedAt  time.Time   `json:"exportedAt"`
}

// Export renders the encounter as a file payload under the given name.
func (e *Encounter) Export(name string) ExportFile {
	s := e.Snapshot(name)
	return ExportFile{
		Name:        s.Name,
		Combatants:  s.Combatants,
		Round:       s.Round,
		CurrentTurn: s.CurrentTurn,
		Notes:       s.Notes,
		ExportedAt:  s.SavedAt,
	}
}

// Encounter restores a live encounter from an import file.
func (f *ExportFile) Encounter() *Encounter {
	return FromSnapshot(Snapshot{
		Name:        f.Name,
		Combatants:  f.Combatants,
		Round:       f.Round,
		CurrentTurn: f.CurrentTurn,
		Notes:       f.Notes,
	})
}

// DecodeImport parses an exported encounter file. A payload that is not
// valid JSON returns an error and nothing else happens; the caller's
// state stays as it was. Missing fields take the import defaults.
func DecodeImport(data []byte) (*ExportFile, error) {
	var f ExportFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// UnmarshalJSON decodes an import file with the same numeric leniency
// as snapshots. Files from other tools may omit everything but the
// combatant list, so absent fields take usable defaults.
func (f *ExportFile) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name        string          `json:"name"`
		Combatants  []Combatant     `json:"combatants"`
		Round       json.RawMessage `json:"round"`
		CurrentTurn json.RawMessage `json:"currentTurn"`
		Notes       string          `json:"notes"`
		ExportedAt  json.RawMessage `json:"exportedAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.Name = raw.Name
	if f.Name == "" {
		f.Name = importedEncounterName
	}
	f.Combatants = raw.Combatants
	if f.Combatants == nil {
		f.Combatants = []Combatant{}
	}
	f.Round = coerceInt(raw.Round, 1)
	f.CurrentTurn = coerceInt(raw.CurrentTurn, 0)
	f.Notes = raw.Notes
	f.ExportedAt = coerceTime(raw.ExportedAt)
	return nil
}

// ExportFilename derives the download filename for an encounter name:
// lowercased, every character that is not a letter or digit replaced
// with an underscore, plus the .json extension.
func ExportFilename(name string) string {
	if name == "" {
		name = "encounter"
	}
	out := make([]rune, 0, len(name))
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			out = append(out, r)
		} else {
			out = append(out, '_')
		}
	}
	return string(out) + ".json"
}
