package skills

import (
	"sort"

	"github.com/jonathan/resume-ranker/internal/types"
)

// Match classifies every required skill against normalized résumé text as a direct,
// inferred or family match, or as missing, and lists the bonus skills the résumé brings.
// Output order follows requiredSkills; bonus skills are sorted by canonical name.
func (t *Taxonomy) Match(requiredSkills []string, normalizedText string) types.MatchResult {
	result := types.MatchResult{
		Matched: make([]types.SkillMatch, 0, len(requiredSkills)),
		Missing: make([]string, 0),
		Bonus:   make([]string, 0),
	}

	detected := t.Detect(normalizedText)
	detectedSet := make(map[string]bool, len(detected))
	implied := make(map[string]bool)
	for _, skill := range detected {
		detectedSet[skill] = true
		for _, inferred := range t.ImpliedBy(skill) {
			implied[inferred] = true
		}
	}

	required := make(map[string]bool, len(requiredSkills))
	for _, skill := range requiredSkills {
		canonical := t.Canonicalize(skill)
		required[canonical] = true

		switch {
		case t.Present(skill, normalizedText):
			result.Matched = append(result.Matched, types.SkillMatch{Skill: skill, State: types.MatchDirect})
		case implied[canonical] || detectedSet[canonical]:
			result.Matched = append(result.Matched, types.SkillMatch{Skill: skill, State: types.MatchInferred})
		case t.FamilyPresent(skill, normalizedText):
			result.Matched = append(result.Matched, types.SkillMatch{Skill: skill, State: types.MatchFamily})
		default:
			result.Missing = append(result.Missing, skill)
		}
	}

	seen := make(map[string]bool)
	for _, skill := range detected {
		if required[skill] {
			continue
		}
		display := t.Display(skill)
		if seen[display] {
			continue
		}
		seen[display] = true
		result.Bonus = append(result.Bonus, display)
	}

	return result
}

// Extract returns the display names of every taxonomy skill present in normalized text, sorted.
func (t *Taxonomy) Extract(normalizedText string) []string {
	detected := t.Detect(normalizedText)
	found := make([]string, 0, len(detected))
	seen := make(map[string]bool, len(detected))
	for _, skill := range detected {
		display := t.Display(skill)
		if !seen[display] {
			seen[display] = true
			found = append(found, display)
		}
	}
	sort.Strings(found)
	return found
}

// Categorize buckets skill labels by taxonomy category. Match annotations such as
// "(inferred)" are ignored when looking a skill up; practices and unknown skills go to Other.
func (t *Taxonomy) Categorize(skillLabels []string) types.CandidateSkills {
	buckets := types.CandidateSkills{
		Languages:  []string{},
		Frameworks: []string{},
		Databases:  []string{},
		Tools:      []string{},
		Other:      []string{},
	}

	for _, label := range skillLabels {
		category, _ := t.CategoryOf(stripAnnotation(label))
		switch category {
		case CategoryLanguage:
			buckets.Languages = append(buckets.Languages, label)
		case CategoryFramework:
			buckets.Frameworks = append(buckets.Frameworks, label)
		case CategoryDatabase:
			buckets.Databases = append(buckets.Databases, label)
		case CategoryTool:
			buckets.Tools = append(buckets.Tools, label)
		default:
			buckets.Other = append(buckets.Other, label)
		}
	}

	return buckets
}

func stripAnnotation(label string) string {
	for _, suffix := range []string{" (inferred)", " (equivalent)"} {
		if len(label) > len(suffix) && label[len(label)-len(suffix):] == suffix {
			return label[:len(label)-len(suffix)]
		}
	}
	return label
}
