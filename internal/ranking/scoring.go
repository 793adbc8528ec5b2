// Package ranking scores résumés against a job and calibrates scores across a candidate pool.
package ranking

import (
	"math"
	"strings"

	"github.com/jonathan/resume-ranker/internal/skills"
	"github.com/jonathan/resume-ranker/internal/types"
)

// DefaultNeutralSkillScore is the skill score for jobs that declare no required skills
const DefaultNeutralSkillScore = 65

// Role alignment when the role defines no signals
const neutralRoleScore = 60

// Maximum seniority-signal hits that still raise the score
const senioritySignalCap = 10.0

// skillScore is the outcome of importance-weighted skill coverage
type skillScore struct {
	Score            int
	RawCoverage      float64 // earned/total weight, 0-1
	HasRequirements  bool
	CriticalMissing  []string
	ImportantMissing []string
}

// computeSkillScore weighs each required skill by tier and credits it by match state,
// then maps the coverage onto a curve that is generous at the top and punitive below 60%.
func computeSkillScore(requirements []types.SkillMatch, neutral int) skillScore {
	result := skillScore{
		CriticalMissing:  []string{},
		ImportantMissing: []string{},
	}

	totalWeight, earnedWeight := 0.0, 0.0
	for _, req := range requirements {
		weight := req.Tier.Weight()
		totalWeight += weight
		if req.State == types.MatchMissing {
			switch req.Tier {
			case types.TierCritical:
				result.CriticalMissing = append(result.CriticalMissing, req.Skill)
			case types.TierImportant:
				result.ImportantMissing = append(result.ImportantMissing, req.Skill)
			}
			continue
		}
		earnedWeight += weight * req.State.Credit()
	}

	if totalWeight == 0 {
		result.Score = neutral
		return result
	}

	coverage := earnedWeight / totalWeight
	result.HasRequirements = true
	result.RawCoverage = coverage
	result.Score = coverageCurve(coverage)
	return result
}

func coverageCurve(coverage float64) int {
	switch {
	case coverage >= 1.0:
		return 100
	case coverage >= 0.90:
		return int(90 + (coverage-0.90)/0.10*10)
	case coverage >= 0.75:
		return int(78 + (coverage-0.75)/0.15*12)
	case coverage >= 0.60:
		return int(63 + (coverage-0.60)/0.15*15)
	case coverage >= 0.40:
		return int(43 + (coverage-0.40)/0.20*20)
	default:
		return int(coverage * 110)
	}
}

// computeSeniorityScore counts leadership and scale language, scaled to 0-70,
// plus a bonus tier for years of experience.
func computeSeniorityScore(tax *skills.Taxonomy, normalizedText string, years float64) int {
	hits := countSignals(tax.SenioritySignals(), normalizedText)
	base := int(math.Min(float64(hits)/senioritySignalCap, 1.0) * 70)

	var bonus int
	switch {
	case years >= 12:
		bonus = 30
	case years >= 9:
		bonus = 25
	case years >= 7:
		bonus = 20
	case years >= 5:
		bonus = 12
	case years >= 3:
		bonus = 6
	}

	return min(base+bonus, 100)
}

// computeExperienceScore blends a years curve (70%) with the seniority score (30%).
// Without a minimum the curve uses absolute tiers; with one it uses the ratio to the minimum.
func computeExperienceScore(years, requiredYears float64, seniority int) int {
	var raw int
	switch {
	case requiredYears <= 0:
		switch {
		case years >= 12:
			raw = 100
		case years >= 9:
			raw = 95
		case years >= 7:
			raw = 88
		case years >= 5:
			raw = 78
		case years >= 3:
			raw = 65
		case years >= 1:
			raw = 50
		default:
			raw = 30
		}
	case years >= requiredYears:
		excess := (years - requiredYears) / math.Max(requiredYears, 1)
		raw = min(70+min(int(excess*30), 30), 100)
	default:
		raw = max(int(years/requiredYears*68), 5)
	}

	blended := int(float64(raw)*0.70 + float64(seniority)*0.30)
	return clamp(blended, 0, 100)
}

// computeRoleAlignmentScore measures role-signal coverage in the text plus a bonus for
// job keywords found with synonym awareness.
func computeRoleAlignmentScore(tax *skills.Taxonomy, normalizedText string, keywords []string, role string) int {
	definition, ok := tax.Role(role)
	if !ok || len(definition.Signals) == 0 {
		return neutralRoleScore
	}

	hits := countSignals(definition.Signals, normalizedText)
	base := min(int(float64(hits)/float64(len(definition.Signals))*100), 100)

	keywordHits := 0
	for _, keyword := range keywords {
		if tax.Present(keyword, normalizedText) {
			keywordHits++
		}
	}
	keywordBonus := int(float64(keywordHits) / float64(max(len(keywords), 1)) * 35)

	return min(base+keywordBonus, 100)
}

// computeProjectScore scores achievement and impact vocabulary.
func computeProjectScore(tax *skills.Taxonomy, normalizedText string) int {
	signals := tax.ImpactSignals()
	if len(signals) == 0 {
		return 0
	}
	hits := countSignals(signals, normalizedText)
	return min(int(float64(hits)/float64(len(signals))*100), 100)
}

// computeEducationScore returns the score of the highest degree tier mentioned.
func computeEducationScore(tax *skills.Taxonomy, normalizedText string) int {
	tiers, fallback := tax.Education()
	for _, tier := range tiers {
		if countSignals(tier.Terms, normalizedText) > 0 {
			return tier.Score
		}
	}
	return fallback
}

// countSignals counts the phrases that occur anywhere in the text
func countSignals(signals []string, normalizedText string) int {
	hits := 0
	for _, signal := range signals {
		if strings.Contains(normalizedText, signal) {
			hits++
		}
	}
	return hits
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
