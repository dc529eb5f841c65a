package encounter

import (
	"encoding/json"
	"testing"
)

func TestExportRoundTrip(t *testing.T) {
	e := New()
	c := NewCombatant("Owlbear", 59, 13)
	c.Initiative = 11
	e.Add(c)
	e.Round = 2
	e.Notes = "den smells of carrion"

	f := e.Export("Owlbear Den")
	if f.ExportedAt.IsZero() {
		t.Error("Export() did not stamp ExportedAt")
	}

	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	decoded, err := DecodeImport(data)
	if err != nil {
		t.Fatalf("DecodeImport() error = %v", err)
	}
	if decoded.Name != "Owlbear Den" {
		t.Errorf("Name = %q", decoded.Name)
	}

	restored := decoded.Encounter()
	if restored.Round != 2 || restored.CurrentTurn != 0 {
		t.Errorf("round = %d turn = %d, want 2 and 0", restored.Round, restored.CurrentTurn)
	}
	if restored.Notes != "den smells of carrion" {
		t.Errorf("Notes = %q", restored.Notes)
	}
	if len(restored.Combatants) != 1 || restored.Combatants[0].Name != "Owlbear" {
		t.Errorf("Combatants = %+v", restored.Combatants)
	}
}

func TestDecodeImportDefaults(t *testing.T) {
	decoded, err := DecodeImport([]byte(`{"combatants":[{"id":"a","name":"Stray Goblin","hp":7,"maxHp":7,"ac":15}]}`))
	if err != nil {
		t.Fatalf("DecodeImport() error = %v", err)
	}
	if decoded.Name != "Imported Encounter" {
		t.Errorf("Name = %q, want Imported Encounter", decoded.Name)
	}
	if decoded.Round != 1 || decoded.CurrentTurn != 0 {
		t.Errorf("round = %d turn = %d, want 1 and 0", decoded.Round, decoded.CurrentTurn)
	}
	if decoded.Notes != "" {
		t.Errorf("Notes = %q, want empty", decoded.Notes)
	}
	if len(decoded.Combatants) != 1 {
		t.Fatalf("Combatants = %+v", decoded.Combatants)
	}
}

func TestDecodeImportRejectsGarbage(t *testing.T) {
	if _, err := DecodeImport([]byte(`{"combatants": [`)); err == nil {
		t.Error("DecodeImport() accepted truncated JSON")
	}
	if _, err := DecodeImport([]byte(`not json at all`)); err == nil {
		t.Error("DecodeImport() accepted a non-JSON payload")
	}
}

func TestDecodeImportEmptyObject(t *testing.T) {
	decoded, err := DecodeImport([]byte(`{}`))
	if err != nil {
		t.Fatalf("DecodeImport() error = %v", err)
	}
	if decoded.Combatants == nil || len(decoded.Combatants) != 0 {
		t.Errorf("Combatants = %v, want empty slice", decoded.Combatants)
	}
	e := decoded.Encounter()
	if e.Round != 1 || e.CurrentTurn != 0 {
		t.Errorf("round = %d turn = %d, want 1 and 0", e.Round, e.CurrentTurn)
	}
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Goblin Ambush", "goblin_ambush.json"},
		{"punctuation becomes underscores", "Act 2: The Mines!", "act_2__the_mines_.json"},
		{"uppercase lowered", "BBEG Showdown", "bbeg_showdown.json"},
		{"empty name falls back", "", "encounter.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExportFilename(tt.input); got != tt.want {
				t.Errorf("ExportFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
