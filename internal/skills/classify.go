package skills

import (
	"strings"

	"github.com/jonathan/resume-ranker/internal/types"
)

const (
	// Position cut-off: skills in the first 75% of the list are important
	importantPositionRatio = 0.75

	// Explicit priority thresholds
	priorityCritical  = 0.90
	priorityImportant = 0.20
)

// DetectRoleType picks the role whose signals appear most often in the job's title,
// keywords and skills. No hits or a tie at the top falls back to the default role.
func (t *Taxonomy) DetectRoleType(title string, keywords, requiredSkills []string) string {
	combined := strings.ToLower(title + " " + strings.Join(keywords, " ") + " " + strings.Join(requiredSkills, " "))

	best, bestHits, tied := "", 0, false
	for _, role := range t.data.Roles {
		hits := 0
		for _, signal := range role.Signals {
			if strings.Contains(combined, signal) {
				hits++
			}
		}
		switch {
		case hits > bestHits:
			best, bestHits, tied = role.Name, hits, false
		case hits == bestHits && hits > 0:
			tied = true
		}
	}

	if bestHits == 0 || tied {
		return t.data.DefaultRole
	}
	return best
}

// ClassifyRequirements assigns an importance tier to each required skill, in order.
// Role-critical skills are always critical; an explicit priority from the job overrides
// the position heuristic for the rest.
func (t *Taxonomy) ClassifyRequirements(job *types.JobRequirement, requiredSkills []string, role string) []types.Tier {
	tiers := make([]types.Tier, len(requiredSkills))
	n := len(requiredSkills)
	if n == 0 {
		return tiers
	}

	for idx, skill := range requiredSkills {
		if t.IsCritical(role, skill) {
			tiers[idx] = types.TierCritical
			continue
		}
		if job != nil {
			if p, ok := job.Priority(skill); ok {
				tiers[idx] = TierFromPriority(p)
				continue
			}
		}
		if float64(idx)/float64(n) <= importantPositionRatio {
			tiers[idx] = types.TierImportant
		} else {
			tiers[idx] = types.TierOptional
		}
	}

	return tiers
}

// TierFromPriority maps an explicit priority in [0,1] onto a tier.
func TierFromPriority(p float64) types.Tier {
	switch {
	case p >= priorityCritical:
		return types.TierCritical
	case p >= priorityImportant:
		return types.TierImportant
	default:
		return types.TierOptional
	}
}
