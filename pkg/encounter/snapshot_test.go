package encounter

import (
	"encoding/json"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	e := New()
	goblin := NewCombatant("Goblin", 7, 15)
	goblin.Initiative = 14
	xp := 50
	goblin.XP = &xp
	goblin.CR = "1/4"
	goblin.Type = "humanoid"
	dur := 2
	goblin.AddCondition(Condition{Name: "Frightened", Duration: &dur})
	hero := NewCombatant("Mira", 28, 16)
	hero.IsPC = true
	lvl := 4
	hero.Level = &lvl
	hero.TempHP = 6
	e.Add(goblin)
	e.Add(hero)
	e.Round = 3
	e.CurrentTurn = 1
	e.Notes = "party is hidden"

	snap := e.Snapshot("Cave Ambush")
	if snap.ID == "" {
		t.Error("Snapshot() did not assign an id")
	}
	if snap.SavedAt.IsZero() {
		t.Error("Snapshot() did not stamp SavedAt")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	restored := FromSnapshot(decoded)
	if restored.Round != 3 || restored.CurrentTurn != 1 {
		t.Errorf("round = %d turn = %d, want 3 and 1", restored.Round, restored.CurrentTurn)
	}
	if restored.Notes != "party is hidden" {
		t.Errorf("Notes = %q", restored.Notes)
	}
	if len(restored.Combatants) != 2 {
		t.Fatalf("len(Combatants) = %d, want 2", len(restored.Combatants))
	}
	g := restored.Combatants[0]
	if g.Name != "Goblin" || g.HP != 7 || g.AC != 15 || g.Initiative != 14 {
		t.Errorf("goblin = %+v", g)
	}
	if g.XP == nil || *g.XP != 50 || g.CR != "1/4" {
		t.Errorf("goblin xp/cr lost: %+v", g)
	}
	if len(g.Conditions) != 1 || g.Conditions[0].Name != "Frightened" ||
		g.Conditions[0].Duration == nil || *g.Conditions[0].Duration != 2 {
		t.Errorf("goblin conditions = %+v", g.Conditions)
	}
	h := restored.Combatants[1]
	if !h.IsPC || h.Level == nil || *h.Level != 4 || h.TempHP != 6 {
		t.Errorf("hero = %+v", h)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	e := New()
	e.Add(NewCombatant("Goblin", 7, 15))
	snap := e.Snapshot("before")

	e.DamageCombatant(e.Combatants[0].ID, 5)
	e.Combatants[0].AddCondition(Condition{Name: "Prone"})

	if snap.Combatants[0].HP != 7 {
		t.Errorf("snapshot hp = %d, want 7 (edits after save must not leak)", snap.Combatants[0].HP)
	}
	if len(snap.Combatants[0].Conditions) != 0 {
		t.Errorf("snapshot grew conditions: %+v", snap.Combatants[0].Conditions)
	}
}

func TestSnapshotSanitized(t *testing.T) {
	snap := Snapshot{
		Name: "wounded",
		Combatants: []Combatant{
			{ID: "a", Name: "Over", HP: 99, MaxHP: 10, TempHP: -4},
			{ID: "b", Name: "Under", HP: -3, MaxHP: 10},
		},
		Round:       0,
		CurrentTurn: 5,
	}

	got := snap.Sanitized()
	if got.Combatants[0].HP != 10 || got.Combatants[0].TempHP != 0 {
		t.Errorf("combatant 0 = %+v", got.Combatants[0])
	}
	if got.Combatants[1].HP != 0 {
		t.Errorf("combatant 1 hp = %d, want 0", got.Combatants[1].HP)
	}
	if got.Round != 1 {
		t.Errorf("Round = %d, want 1", got.Round)
	}
	if got.CurrentTurn != 1 {
		t.Errorf("CurrentTurn = %d, want 1 (clamped to last index)", got.CurrentTurn)
	}
	if snap.Combatants[0].HP != 99 {
		t.Error("Sanitized() mutated its receiver")
	}
}

func TestSnapshotDecodeCoercion(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Combatant
	}{
		{
			name: "garbage hp string defaults to zero",
			json: `{"id":"x","name":"Orc","hp":"abc","maxHp":15,"ac":13,"initiative":2}`,
			want: Combatant{ID: "x", Name: "Orc", HP: 0, MaxHP: 15, AC: 13, Initiative: 2},
		},
		{
			name: "numeric strings parse",
			json: `{"id":"x","name":"Orc","hp":"12","maxHp":"15","ac":"13","initiative":"4"}`,
			want: Combatant{ID: "x", Name: "Orc", HP: 12, MaxHP: 15, AC: 13, Initiative: 4},
		},
		{
			name: "floats truncate",
			json: `{"id":"x","name":"Orc","hp":12.9,"maxHp":15,"ac":13.2,"initiative":4}`,
			want: Combatant{ID: "x", Name: "Orc", HP: 12, MaxHP: 15, AC: 13, Initiative: 4},
		},
		{
			name: "missing numerics default to zero",
			json: `{"id":"x","name":"Orc"}`,
			want: Combatant{ID: "x", Name: "Orc"},
		},
		{
			name: "null tempHp defaults to zero",
			json: `{"id":"x","name":"Orc","hp":5,"maxHp":15,"tempHp":null}`,
			want: Combatant{ID: "x", Name: "Orc", HP: 5, MaxHP: 15},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Combatant
			if err := json.Unmarshal([]byte(tt.json), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got.ID != tt.want.ID || got.Name != tt.want.Name ||
				got.HP != tt.want.HP || got.MaxHP != tt.want.MaxHP ||
				got.TempHP != tt.want.TempHP || got.AC != tt.want.AC ||
				got.Initiative != tt.want.Initiative {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSnapshotDecodeOptionalFields(t *testing.T) {
	var c Combatant
	err := json.Unmarshal([]byte(`{"id":"x","name":"Mira","isPC":true,"level":"3","xp":null}`), &c)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if c.Level == nil || *c.Level != 3 {
		t.Errorf("Level = %v, want 3", c.Level)
	}
	if c.XP != nil {
		t.Errorf("XP = %v, want nil for null", *c.XP)
	}
	if !c.IsPC {
		t.Error("IsPC lost in decode")
	}
}

func TestSnapshotDecodeDefaults(t *testing.T) {
	var s Snapshot
	err := json.Unmarshal([]byte(`{"id":"s1","name":"old save","combatants":[],"savedAt":"not a time"}`), &s)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if s.Round != 1 {
		t.Errorf("Round = %d, want default 1", s.Round)
	}
	if s.CurrentTurn != 0 {
		t.Errorf("CurrentTurn = %d, want default 0", s.CurrentTurn)
	}
	if !s.SavedAt.IsZero() {
		t.Errorf("SavedAt = %v, want zero for malformed timestamp", s.SavedAt)
	}

	var s2 Snapshot
	err = json.Unmarshal([]byte(`{"id":"s2","name":"odd types","round":"not a number","currentTurn":"2"}`), &s2)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if s2.Round != 1 {
		t.Errorf("Round = %d, want 1 for garbage value", s2.Round)
	}
	if s2.CurrentTurn != 2 {
		t.Errorf("CurrentTurn = %d, want 2", s2.CurrentTurn)
	}
	if s2.Combatants == nil {
		t.Error("Combatants = nil, want empty slice")
	}
}

func TestFromSnapshotNormalizesBounds(t *testing.T) {
	s := Snapshot{
		Name:        "deep round",
		Combatants:  []Combatant{{ID: "a", Name: "A", HP: 5, MaxHP: 5}},
		Round:       -2,
		CurrentTurn: 9,
	}
	e := FromSnapshot(s)
	if e.Round != 1 {
		t.Errorf("Round = %d, want 1", e.Round)
	}
	if e.CurrentTurn != 0 {
		t.Errorf("CurrentTurn = %d, want 0 (clamped)", e.CurrentTurn)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Goblin Ambush", "goblin_ambush"},
		{"punctuation dropped", "Goblin Ambush!", "goblin_ambush"},
		{"separators collapse", "Tomb - of -- Horrors", "tomb_of_horrors"},
		{"surrounding space trimmed", "  Night Raid  ", "night_raid"},
		{"digits kept", "Act 2 Finale", "act_2_finale"},
		{"already a slug", "act_2_finale", "act_2_finale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.input); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
