package encounter

import "math"

// Difficulty labels, ordered from harmless to lethal.
const (
	DifficultyNoParty = "No Party"
	DifficultyTrivial = "trivial"
	DifficultyEasy    = "easy"
	DifficultyMedium  = "medium"
	DifficultyHard    = "hard"
	DifficultyDeadly  = "deadly"
)

// defaultPartyLevel stands in for party members without a level, so a
// hastily added PC still counts toward the thresholds.
const defaultPartyLevel = 5

// DifficultyReport pairs the label with the monster XP total it was
// judged against.
type DifficultyReport struct {
	Difficulty string `json:"difficulty"`
	TotalXP    int    `json:"totalXp"`
}

// CalculateDifficulty rates the encounter using XP thresholds scaled by
// party size and average level. Non-PC combatants contribute their XP
// value to the total; PCs contribute their level to the thresholds.
func CalculateDifficulty(combatants []Combatant) DifficultyReport {
	totalXP := 0
	partySize := 0
	levelSum := 0
	for _, c := range combatants {
		if c.IsPC {
			partySize++
			if c.Level != nil {
				levelSum += *c.Level
			} else {
				levelSum += defaultPartyLevel
			}
			continue
		}
		if c.XP != nil {
			totalXP += *c.XP
		}
	}

	report := DifficultyReport{TotalXP: totalXP}
	if partySize == 0 {
		report.Difficulty = DifficultyNoParty
		return report
	}

	avgLevel := int(math.Round(float64(levelSum) / float64(partySize)))
	scale := partySize * avgLevel
	switch {
	case totalXP >= 100*scale:
		report.Difficulty = DifficultyDeadly
	case totalXP >= 75*scale:
		report.Difficulty = DifficultyHard
	case totalXP >= 50*scale:
		report.Difficulty = DifficultyMedium
	case totalXP >= 25*scale:
		report.Difficulty = DifficultyEasy
	default:
		report.Difficulty = DifficultyTrivial
	}
	return report
}

// Difficulty rates the encounter's current roster.
func (e *Encounter) Difficulty() DifficultyReport {
	return CalculateDifficulty(e.Combatants)
}
