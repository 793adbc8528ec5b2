package ranking

import (
	"fmt"
	"math"
)

// Component weights of the base score
const (
	skillWeight      = 0.30
	experienceWeight = 0.30
	projectWeight    = 0.25
	roleWeight       = 0.10
	educationWeight  = 0.05
)

// components carries the component scores into aggregation and adjustment
type components struct {
	Skill      int
	Experience int
	Seniority  int
	Role       int
	Project    int
	Education  int
	Years      float64
	BonusCount int
	// CriticalMissing lists required role-critical skills absent from the résumé
	CriticalMissing []string
}

// aggregate computes the weighted base score, clamped to [0,100].
func aggregate(c components) int {
	base := skillWeight*float64(c.Skill) +
		experienceWeight*float64(c.Experience) +
		projectWeight*float64(c.Project) +
		roleWeight*float64(c.Role) +
		educationWeight*float64(c.Education)
	return clamp(int(math.Round(base)), 0, 100)
}

// adjust applies the bounded boosts and penalties in a fixed order and records a note for each.
func adjust(base int, c components) (int, []string) {
	score := base
	notes := make([]string, 0)

	if c.Years >= 8 && c.Skill >= 65 {
		score += 5
		notes = append(notes, "Senior + strong skills boost +5")
	}
	if c.Seniority >= 70 {
		score += 3
		notes = append(notes, "Strong leadership signals boost +3")
	}
	if c.BonusCount >= 5 {
		score += 2
		notes = append(notes, "Rich bonus skill portfolio +2")
	}

	if missing := len(c.CriticalMissing); missing > 0 {
		penalty := min(missing*8, 20)
		score -= penalty
		notes = append(notes, fmt.Sprintf("Missing %d critical skill(s) = -%d pts", missing, penalty))
	}

	if c.Role < 25 && c.Years >= 2 {
		score -= 10
		notes = append(notes, "Domain mismatch penalty -10")
	}

	return clamp(score, 0, 100), notes
}
