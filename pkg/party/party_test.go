package party

import (
	"strings"
	"testing"
)

const fighterJSON = `{
  "id": "brynn",
  "name": "Brynn Ironvale",
  "class": "Fighter",
  "race": "Dwarf",
  "level": 5,
  "hp": 38,
  "max_hp": 44,
  "ac": 18,
  "stats": {"str": 16, "dex": 12, "con": 15, "int": 10, "wis": 11, "cha": 9}
}`

func TestParse(t *testing.T) {
	spec, err := Parse([]byte(fighterJSON))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if spec.ID != "brynn" || spec.Name != "Brynn Ironvale" {
		t.Errorf("identity = %s/%s", spec.ID, spec.Name)
	}
	if spec.Level != 5 || spec.MaxHP != 44 || spec.AC != 18 {
		t.Errorf("spec = %+v", spec)
	}
	if spec.Stats.Str != 16 || spec.Stats.Cha != 9 {
		t.Errorf("stats = %+v", spec.Stats)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte(`{"id":"x","name":"X","max_hp":10,"ac":12,"armour":17}`))
	if err == nil {
		t.Fatal("Parse() accepted an unknown field")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*MemberSpec)
		wantErr string
	}{
		{"missing id", func(s *MemberSpec) { s.ID = "" }, "missing an id"},
		{"missing name", func(s *MemberSpec) { s.Name = "" }, "missing a name"},
		{"zero max hp", func(s *MemberSpec) { s.MaxHP = 0; s.HP = 0 }, "at least 1 max_hp"},
		{"zero ac", func(s *MemberSpec) { s.AC = 0 }, "at least 1 ac"},
		{"level too high", func(s *MemberSpec) { s.Level = 21 }, "must be 0-20"},
		{"hp above max", func(s *MemberSpec) { s.HP = 45 }, "outside 0-44"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Parse([]byte(fighterJSON))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			tt.mutate(spec)
			err = spec.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestNewMember(t *testing.T) {
	spec, err := Parse([]byte(fighterJSON))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	m, err := NewMember(spec)
	if err != nil {
		t.Fatalf("NewMember() error = %v", err)
	}
	if m.Actor.MaxHP() != 44 {
		t.Errorf("MaxHP() = %d, want 44", m.Actor.MaxHP())
	}
	if m.Actor.HP() != 38 {
		t.Errorf("HP() = %d, want wounded 38", m.Actor.HP())
	}
	if m.Actor.AC() != 18 {
		t.Errorf("AC() = %d, want 18", m.Actor.AC())
	}
	if str, ok := m.Actor.Attribute("str"); !ok || str != 16 {
		t.Errorf("Attribute(str) = %d, %v", str, ok)
	}
}

func TestNewMemberRejectsInvalidSpec(t *testing.T) {
	spec := &MemberSpec{ID: "ghost", Name: "", MaxHP: 10, AC: 12}
	if _, err := NewMember(spec); err == nil {
		t.Fatal("NewMember() accepted a spec with no name")
	}
}

func TestCombatant(t *testing.T) {
	spec, err := Parse([]byte(fighterJSON))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	m, err := NewMember(spec)
	if err != nil {
		t.Fatalf("NewMember() error = %v", err)
	}

	c := m.Combatant()
	if c.ID == "" {
		t.Error("Combatant() produced an empty id")
	}
	if !c.IsPC {
		t.Error("party combatant not flagged as PC")
	}
	if c.Name != "Brynn Ironvale" || c.HP != 38 || c.MaxHP != 44 || c.AC != 18 {
		t.Errorf("combatant = %+v", c)
	}
	if c.Level == nil || *c.Level != 5 {
		t.Errorf("Level = %v, want 5", c.Level)
	}
	if c.XP != nil {
		t.Error("party combatant should not carry monster xp")
	}
}
