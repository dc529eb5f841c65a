package encounter

// ApplyDamage computes the result of dealing damage to a combatant.
// Temporary hit points absorb damage first; any remainder comes off
// current HP, which never drops below 0. Zero or negative amounts
// leave the combatant untouched.
func ApplyDamage(c Combatant, amount int) (hp, tempHP int) {
	hp, tempHP = c.HP, c.TempHP
	if amount <= 0 {
		return hp, tempHP
	}
	if tempHP > 0 {
		if amount <= tempHP {
			return hp, tempHP - amount
		}
		amount -= tempHP
		tempHP = 0
	}
	hp -= amount
	if hp < 0 {
		hp = 0
	}
	return hp, tempHP
}

// ApplyHeal computes the result of healing a combatant. Healing caps at
// MaxHP and never touches temporary hit points. Zero or negative
// amounts leave the combatant untouched.
func ApplyHeal(c Combatant, amount int) (hp, tempHP int) {
	hp, tempHP = c.HP, c.TempHP
	if amount <= 0 {
		return hp, tempHP
	}
	hp += amount
	if hp > c.MaxHP {
		hp = c.MaxHP
	}
	return hp, tempHP
}
