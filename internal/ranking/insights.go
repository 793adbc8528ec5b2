package ranking

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-ranker/internal/types"
)

// Per-candidate recommendations
const (
	RecommendStrongHireNow = "Strong Hire — Interview Immediately"
	RecommendStrongHire    = "Strong Hire"
	RecommendGood          = "Good Candidate — Proceed to Interview"
	RecommendModerate      = "Moderate Fit — Consider"
	RecommendNot           = "Not Recommended"
)

const (
	processedStrength = "Resume processed successfully"
	emptyResumeGap    = "Resume text is empty or too short to evaluate"
	maxBonusInsights  = 10
)

// insightInput is everything the insight generator reads
type insightInput struct {
	Match           types.MatchResult
	Scores          components
	FinalScore      int
	RequiredYears   float64
	Notes           []string
	JobTitle        string
	CriticalMissing []string
	EmptyResume     bool
}

// seniorityLabel maps the seniority score onto a level
func seniorityLabel(seniority int) string {
	switch {
	case seniority >= 70:
		return "Senior"
	case seniority >= 40:
		return "Mid-Level"
	default:
		return "Junior / Entry-Level"
	}
}

// recommendation maps a final score onto a per-candidate recommendation
func recommendation(score int) string {
	switch {
	case score >= 90:
		return RecommendStrongHireNow
	case score >= 80:
		return RecommendStrongHire
	case score >= 70:
		return RecommendGood
	case score >= 60:
		return RecommendModerate
	default:
		return RecommendNot
	}
}

// assignTier maps a final score onto a tier letter and label
func assignTier(score int) (string, string) {
	switch {
	case score >= 90:
		return "A", "Exceptional - Interview Immediately"
	case score >= 80:
		return "B", "Strong Hire"
	case score >= 70:
		return "C", "Good Candidate"
	case score >= 60:
		return "D", "Moderate Fit"
	default:
		return "E", "Weak Fit"
	}
}

// confidence combines the final score with the share of required skills matched
func confidence(score int, matchRatio float64) string {
	switch {
	case score >= 80 && matchRatio >= 0.7:
		return "High"
	case score >= 65 && matchRatio >= 0.5:
		return "Medium"
	default:
		return "Low"
	}
}

// generateInsights derives strengths, gaps, labels and a templated reasoning sentence.
func generateInsights(in insightInput) types.Insights {
	direct := in.Match.WithState(types.MatchDirect)
	inferred := in.Match.WithState(types.MatchInferred)
	family := in.Match.WithState(types.MatchFamily)
	total := in.Match.Total()
	years := in.Scores.Years
	level := seniorityLabel(in.Scores.Seniority)

	matchRatio := float64(len(in.Match.Matched)) / float64(max(total, 1))

	strengths := make([]string, 0)
	if len(direct) > 0 {
		summary := strings.Join(firstN(direct, 4), ", ")
		if len(direct) > 4 {
			summary += "..."
		}
		strengths = append(strengths, fmt.Sprintf("Directly matches %d/%d required skills: %s", len(direct), total, summary))
	}
	if len(inferred) > 0 {
		strengths = append(strengths, "Ecosystem expertise implies proficiency in: "+strings.Join(firstN(inferred, 3), ", "))
	}
	if len(family) > 0 {
		strengths = append(strengths, "Uses equivalent technologies for: "+strings.Join(firstN(family, 3), ", "))
	}
	if years > 0 {
		unit := "yrs"
		if years == 1 {
			unit = "yr"
		}
		strengths = append(strengths, fmt.Sprintf("%s %s of professional experience [%s]", formatYears(years), unit, level))
	}
	if in.Scores.Seniority >= 60 {
		strengths = append(strengths, "Strong seniority signals: leadership, architecture, or large-scale system experience")
	}
	if len(in.Match.Bonus) > 0 {
		strengths = append(strengths, "Additional relevant skills: "+strings.Join(firstN(in.Match.Bonus, 4), ", "))
	}
	if len(strengths) == 0 {
		strengths = append(strengths, processedStrength)
	}

	gaps := make([]string, 0)
	if len(in.CriticalMissing) > 0 {
		gaps = append(gaps, "Missing CRITICAL skills: "+strings.Join(in.CriticalMissing, ", "))
	}
	critical := make(map[string]bool, len(in.CriticalMissing))
	for _, skill := range in.CriticalMissing {
		critical[skill] = true
	}
	nonCritical := make([]string, 0)
	for _, skill := range in.Match.Missing {
		if !critical[skill] {
			nonCritical = append(nonCritical, skill)
		}
	}
	if len(nonCritical) > 0 {
		gaps = append(gaps, "Optional / nice-to-have skills absent: "+strings.Join(firstN(nonCritical, 4), ", "))
	}
	if in.RequiredYears > 0 && years < in.RequiredYears {
		gaps = append(gaps, fmt.Sprintf("Experience gap: %s yr(s) vs %s required", formatYears(years), formatYears(in.RequiredYears)))
	}
	if in.EmptyResume {
		gaps = append(gaps, emptyResumeGap)
	}

	rec := recommendation(in.FinalScore)
	tier, tierLabel := assignTier(in.FinalScore)
	conf := confidence(in.FinalScore, matchRatio)

	jobContext := ""
	if in.JobTitle != "" {
		jobContext = fmt.Sprintf(" for the %s role", in.JobTitle)
	}
	reasoning := fmt.Sprintf(
		"Candidate%s scores %d/100 [%s]. Skill coverage: %d%% (%d direct, %d inferred, %d equivalent of %d required). "+
			"Experience: %s yr(s) [%s] -> %d%%. Role alignment: %d%%. Confidence: %s. Recommendation: %s.",
		jobContext, in.FinalScore, tierLabel,
		in.Scores.Skill, len(direct), len(inferred), len(family), total,
		formatYears(years), level, in.Scores.Experience,
		in.Scores.Role, conf, rec,
	)

	notes := in.Notes
	if notes == nil {
		notes = []string{}
	}

	return types.Insights{
		KeyStrengths:   strengths,
		Gaps:           gaps,
		Recommendation: rec,
		Reasoning:      reasoning,
		SeniorityLabel: level,
		SeniorityScore: in.Scores.Seniority,
		Confidence:     conf,
		Tier:           tier,
		TierLabel:      tierLabel,
		ScoreNotes:     notes,
		MatchedSkills:  in.Match.Labels(),
		MissingSkills:  append([]string{}, in.Match.Missing...),
		BonusSkills:    append([]string{}, firstN(in.Match.Bonus, maxBonusInsights)...),
	}
}

// formatYears renders a year count with at least one decimal, e.g. "5.0" or "7.6"
func formatYears(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
