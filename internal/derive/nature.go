// Package derive computes the per-event values a search matches against:
// natures, wild encounter slots, hidden grotto tables, trainer IDs, and the
// offset-consuming protocols that precede them.
package derive

import "seedhunter/internal/lcg"

// Nature is one of the 25 personality natures, in the game's internal
// ordering.
type Nature uint8

var natureNames = [25]string{
	"Hardy", "Lonely", "Brave", "Adamant", "Naughty",
	"Bold", "Docile", "Relaxed", "Impish", "Lax",
	"Timid", "Hasty", "Serious", "Jolly", "Naive",
	"Modest", "Mild", "Quiet", "Bashful", "Rash",
	"Calm", "Gentle", "Sassy", "Careful", "Quirky",
}

func (n Nature) String() string {
	if int(n) >= len(natureNames) {
		return "Unknown"
	}
	return natureNames[n]
}

// ParseNature looks up a nature by its display name, case-sensitive to
// match the in-game spelling exactly.
func ParseNature(name string) (Nature, bool) {
	for i, n := range natureNames {
		if n == name {
			return Nature(i), true
		}
	}
	return 0, false
}

// GetNature draws the next nature from l, advancing it by one step.
func GetNature(l *lcg.LCG) Nature {
	return Nature(l.Rand(25))
}
