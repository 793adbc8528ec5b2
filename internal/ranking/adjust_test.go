package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		c        components
		expected int
	}{
		{"All zero", components{}, 0},
		{"All perfect", components{Skill: 100, Experience: 100, Project: 100, Role: 100, Education: 100}, 100},
		{"Skill only", components{Skill: 100}, 30},
		{"Rounds half up", components{Skill: 85}, 26},
		{"Rounds down", components{Role: 41}, 4},
		{
			"Weighted blend",
			components{Skill: 92, Experience: 92, Project: 20, Role: 67, Education: 75},
			71,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, aggregate(tt.c))
		})
	}
}

func TestAdjust(t *testing.T) {
	tests := []struct {
		name          string
		base          int
		c             components
		expected      int
		expectedNotes []string
	}{
		{
			name:          "No adjustments",
			base:          50,
			c:             components{Skill: 60, Role: 50, Years: 10},
			expected:      50,
			expectedNotes: []string{},
		},
		{
			name:     "Senior with strong skills and leadership",
			base:     71,
			c:        components{Skill: 92, Seniority: 74, Role: 67, Years: 11.8, BonusCount: 4},
			expected: 79,
			expectedNotes: []string{
				"Senior + strong skills boost +5",
				"Strong leadership signals boost +3",
			},
		},
		{
			name:          "Rich bonus portfolio",
			base:          60,
			c:             components{Skill: 50, Role: 50, BonusCount: 5},
			expected:      62,
			expectedNotes: []string{"Rich bonus skill portfolio +2"},
		},
		{
			name:          "One critical skill missing",
			base:          56,
			c:             components{Skill: 80, Role: 40, Years: 7.6, CriticalMissing: []string{"Node.js"}},
			expected:      48,
			expectedNotes: []string{"Missing 1 critical skill(s) = -8 pts"},
		},
		{
			name:          "Critical penalty is capped at 20",
			base:          40,
			c:             components{Role: 40, CriticalMissing: []string{"A", "B", "C"}},
			expected:      20,
			expectedNotes: []string{"Missing 3 critical skill(s) = -20 pts"},
		},
		{
			name:          "Domain mismatch needs two years",
			base:          30,
			c:             components{Role: 10, Years: 1.9},
			expected:      30,
			expectedNotes: []string{},
		},
		{
			name:          "Domain mismatch applied",
			base:          30,
			c:             components{Role: 24, Years: 2},
			expected:      20,
			expectedNotes: []string{"Domain mismatch penalty -10"},
		},
		{
			name:     "Clamped at zero",
			base:     8,
			c:        components{Role: 0, Years: 3, CriticalMissing: []string{"A", "B", "C"}},
			expected: 0,
			expectedNotes: []string{
				"Missing 3 critical skill(s) = -20 pts",
				"Domain mismatch penalty -10",
			},
		},
		{
			name:     "Clamped at 100",
			base:     98,
			c:        components{Skill: 100, Seniority: 90, Role: 100, Years: 15, BonusCount: 8},
			expected: 100,
			expectedNotes: []string{
				"Senior + strong skills boost +5",
				"Strong leadership signals boost +3",
				"Rich bonus skill portfolio +2",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, notes := adjust(tt.base, tt.c)
			assert.Equal(t, tt.expected, score)
			assert.Equal(t, tt.expectedNotes, notes)
		})
	}
}
