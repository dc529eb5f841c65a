// Package dice provides the random rolls used by the tracker.
package dice

import (
	"math/rand"
	"time"
)

// Roller rolls dice from a private random source, so seeded rollers
// give reproducible sequences.
type Roller struct {
	rng *rand.Rand
}

// New returns a time-seeded roller.
func New() *Roller {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a roller with a deterministic sequence for the
// given seed.
func NewSeeded(seed int64) *Roller {
	return &Roller{rng: rand.New(rand.NewSource(seed))}
}

// Roll returns a uniform value in [1, sides]. Sides below 1 roll 0.
func (r *Roller) Roll(sides int) int {
	if sides < 1 {
		return 0
	}
	return r.rng.Intn(sides) + 1
}

// Initiative rolls a d20 plus a 1-4 bonus, the tracker's fixed
// initiative formula for every combatant.
func (r *Roller) Initiative() int {
	return r.Roll(20) + r.Roll(4)
}
