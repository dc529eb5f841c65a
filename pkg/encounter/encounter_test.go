package encounter

import "testing"

// fixedRoller feeds a scripted sequence of initiative values.
type fixedRoller struct {
	values []int
	i      int
}

func (r *fixedRoller) Initiative() int {
	v := r.values[r.i%len(r.values)]
	r.i++
	return v
}

func rosterOf(names ...string) *Encounter {
	e := New()
	for _, n := range names {
		e.Add(NewCombatant(n, 10, 12))
	}
	return e
}

func TestNewEncounter(t *testing.T) {
	e := New()
	if e.Round != 1 {
		t.Errorf("Round = %d, want 1", e.Round)
	}
	if e.CurrentTurn != 0 {
		t.Errorf("CurrentTurn = %d, want 0", e.CurrentTurn)
	}
	if len(e.Combatants) != 0 {
		t.Errorf("Combatants = %d, want empty", len(e.Combatants))
	}
}

func TestNextTurn(t *testing.T) {
	t.Run("advances through the roster", func(t *testing.T) {
		e := rosterOf("A", "B", "C")
		e.NextTurn()
		if e.CurrentTurn != 1 || e.Round != 1 {
			t.Errorf("turn = %d round = %d, want 1 and 1", e.CurrentTurn, e.Round)
		}
		e.NextTurn()
		if e.CurrentTurn != 2 || e.Round != 1 {
			t.Errorf("turn = %d round = %d, want 2 and 1", e.CurrentTurn, e.Round)
		}
	})

	t.Run("wraps to the top and advances the round", func(t *testing.T) {
		e := rosterOf("A", "B", "C")
		e.CurrentTurn = 2
		e.NextTurn()
		if e.CurrentTurn != 0 {
			t.Errorf("CurrentTurn = %d, want 0", e.CurrentTurn)
		}
		if e.Round != 2 {
			t.Errorf("Round = %d, want 2", e.Round)
		}
	})

	t.Run("no-op on an empty roster", func(t *testing.T) {
		e := New()
		e.NextTurn()
		if e.CurrentTurn != 0 || e.Round != 1 {
			t.Errorf("turn = %d round = %d, want 0 and 1", e.CurrentTurn, e.Round)
		}
	})
}

func TestSortByInitiative(t *testing.T) {
	e := New()
	a := NewCombatant("A", 10, 12)
	a.Initiative = 5
	b := NewCombatant("B", 10, 12)
	b.Initiative = 20
	c := NewCombatant("C", 10, 12)
	c.Initiative = 12
	d := NewCombatant("D", 10, 12)
	d.Initiative = 12
	e.Add(a)
	e.Add(b)
	e.Add(c)
	e.Add(d)
	e.CurrentTurn = 3

	e.SortByInitiative()

	want := []string{"B", "C", "D", "A"}
	for i, name := range want {
		if e.Combatants[i].Name != name {
			t.Errorf("Combatants[%d] = %s, want %s", i, e.Combatants[i].Name, name)
		}
	}
	if e.CurrentTurn != 0 {
		t.Errorf("CurrentTurn = %d, want 0 after sort", e.CurrentTurn)
	}
}

// A sorted roster advanced len(roster) times visits every combatant
// exactly once and lands back at the top one round later.
func TestFullRoundCycle(t *testing.T) {
	e := rosterOf("A", "B", "C", "D")
	e.RollAllInitiatives(&fixedRoller{values: []int{11, 24, 3, 17}})
	e.SortByInitiative()

	seen := make(map[string]int)
	for i := 0; i < len(e.Combatants); i++ {
		seen[e.Active().Name]++
		e.NextTurn()
	}

	for _, c := range e.Combatants {
		if seen[c.Name] != 1 {
			t.Errorf("combatant %s acted %d times in one round", c.Name, seen[c.Name])
		}
	}
	if e.CurrentTurn != 0 {
		t.Errorf("CurrentTurn = %d, want 0", e.CurrentTurn)
	}
	if e.Round != 2 {
		t.Errorf("Round = %d, want 2", e.Round)
	}
}

func TestReset(t *testing.T) {
	e := rosterOf("A", "B")
	e.DamageCombatant(e.Combatants[0].ID, 4)
	e.Round = 7
	e.CurrentTurn = 1

	e.Reset()

	if e.Round != 1 || e.CurrentTurn != 0 {
		t.Errorf("round = %d turn = %d, want 1 and 0", e.Round, e.CurrentTurn)
	}
	if e.Combatants[0].HP != 6 {
		t.Errorf("Reset() touched combatant hp: %d", e.Combatants[0].HP)
	}
}

func TestRemoveByID(t *testing.T) {
	t.Run("removes and reports", func(t *testing.T) {
		e := rosterOf("A", "B", "C")
		id := e.Combatants[1].ID
		if !e.RemoveByID(id) {
			t.Fatal("RemoveByID() = false for known id")
		}
		if len(e.Combatants) != 2 {
			t.Fatalf("len = %d, want 2", len(e.Combatants))
		}
		if e.FindByID(id) != nil {
			t.Error("removed combatant still present")
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		e := rosterOf("A")
		if e.RemoveByID("nope") {
			t.Error("RemoveByID() = true for unknown id")
		}
	})

	t.Run("turn index clamps when the last combatant goes", func(t *testing.T) {
		e := rosterOf("A", "B", "C")
		e.CurrentTurn = 2
		e.RemoveByID(e.Combatants[2].ID)
		if e.CurrentTurn != 1 {
			t.Errorf("CurrentTurn = %d, want 1", e.CurrentTurn)
		}
	})

	t.Run("turn index holds position when the active combatant goes", func(t *testing.T) {
		e := rosterOf("A", "B", "C")
		e.CurrentTurn = 1
		e.RemoveByID(e.Combatants[1].ID)
		if e.CurrentTurn != 1 {
			t.Errorf("CurrentTurn = %d, want 1", e.CurrentTurn)
		}
		if e.Active().Name != "C" {
			t.Errorf("Active() = %s, want C", e.Active().Name)
		}
	})

	t.Run("emptying the roster zeroes the turn", func(t *testing.T) {
		e := rosterOf("A")
		e.CurrentTurn = 0
		e.RemoveByID(e.Combatants[0].ID)
		if e.CurrentTurn != 0 {
			t.Errorf("CurrentTurn = %d, want 0", e.CurrentTurn)
		}
		if e.Active() != nil {
			t.Error("Active() != nil for empty roster")
		}
	})
}

func TestRollInitiative(t *testing.T) {
	e := rosterOf("A", "B")
	r := &fixedRoller{values: []int{15, 8}}

	if !e.RollInitiative(r, e.Combatants[0].ID) {
		t.Fatal("RollInitiative() = false for known id")
	}
	if e.Combatants[0].Initiative != 15 {
		t.Errorf("Initiative = %d, want 15", e.Combatants[0].Initiative)
	}
	if e.RollInitiative(r, "nope") {
		t.Error("RollInitiative() = true for unknown id")
	}

	e.RollAllInitiatives(&fixedRoller{values: []int{9, 21}})
	if e.Combatants[0].Initiative != 9 || e.Combatants[1].Initiative != 21 {
		t.Errorf("initiatives = %d, %d, want 9 and 21",
			e.Combatants[0].Initiative, e.Combatants[1].Initiative)
	}
}

func TestSetTempHP(t *testing.T) {
	e := rosterOf("A")
	id := e.Combatants[0].ID

	e.SetTempHP(id, 8)
	if e.Combatants[0].TempHP != 8 {
		t.Errorf("TempHP = %d, want 8", e.Combatants[0].TempHP)
	}
	e.SetTempHP(id, -3)
	if e.Combatants[0].TempHP != 0 {
		t.Errorf("TempHP = %d, want 0 after negative set", e.Combatants[0].TempHP)
	}
	if e.SetTempHP("nope", 5) {
		t.Error("SetTempHP() = true for unknown id")
	}
}

func TestConditions(t *testing.T) {
	c := NewCombatant("A", 10, 12)
	dur := 3
	c.AddCondition(Condition{Name: "Poisoned", Duration: &dur})
	c.AddCondition(Condition{Name: "Prone"})
	c.AddCondition(Condition{Name: "Poisoned"})

	if len(c.Conditions) != 3 {
		t.Fatalf("len(Conditions) = %d, want 3 (duplicates allowed)", len(c.Conditions))
	}

	c.RemoveConditionAt(1)
	if len(c.Conditions) != 2 || c.Conditions[1].Name != "Poisoned" {
		t.Errorf("Conditions after removal = %+v", c.Conditions)
	}

	c.RemoveConditionAt(9)
	c.RemoveConditionAt(-1)
	if len(c.Conditions) != 2 {
		t.Errorf("out-of-range removal changed conditions: %+v", c.Conditions)
	}
}
