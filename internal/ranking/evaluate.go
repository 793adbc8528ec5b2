package ranking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-ranker/internal/experience"
	"github.com/jonathan/resume-ranker/internal/parsing"
	"github.com/jonathan/resume-ranker/internal/skills"
	"github.com/jonathan/resume-ranker/internal/types"
)

// Evaluator scores one résumé against one job. It holds no per-call state and is
// safe for concurrent use.
type Evaluator struct {
	Taxonomy *skills.Taxonomy
	// Now is the reference date for open-ended employment ranges
	Now func() time.Time
	// NeutralSkillScore is the skill score when a job declares no required skills
	NeutralSkillScore int
	// MaxExperienceYears caps extracted experience
	MaxExperienceYears float64
}

// NewEvaluator returns an Evaluator with default settings over the given taxonomy.
func NewEvaluator(tax *skills.Taxonomy) *Evaluator {
	return &Evaluator{
		Taxonomy:           tax,
		Now:                time.Now,
		NeutralSkillScore:  DefaultNeutralSkillScore,
		MaxExperienceYears: experience.DefaultMaxYears,
	}
}

// Evaluate runs the full single-candidate pipeline: normalize, match, classify, score,
// aggregate, adjust and explain. It never fails for well-typed input; empty text or an
// empty skill list yield a defined low or neutral result.
func (e *Evaluator) Evaluate(resumeText string, job types.JobRequirement) types.CandidateResult {
	tax := e.Taxonomy
	text := parsing.NormalizeText(resumeText)

	required := parsing.NormalizeRequiredSkills(job.RequiredSkills, tax.Canonicalize)
	keywords := job.Keywords
	if len(keywords) == 0 {
		keywords = parsing.DeriveKeywords(job.Title, required)
	}

	role := tax.DetectRoleType(job.Title, keywords, required)
	tiers := tax.ClassifyRequirements(&job, required, role)

	extractor := &experience.Extractor{Now: e.Now, MaxYears: e.MaxExperienceYears}
	years := extractor.ExtractYears(text)

	match := tax.Match(required, text)
	requirements := annotateTiers(required, tiers, match)
	for i := range match.Matched {
		match.Matched[i].Tier = tierOf(required, tiers, match.Matched[i].Skill)
	}

	extracted := tax.Extract(text)

	skill := computeSkillScore(requirements, e.neutralSkillScore())
	seniority := computeSeniorityScore(tax, text, years)
	scores := components{
		Skill:           skill.Score,
		Experience:      computeExperienceScore(years, job.MinExperience, seniority),
		Seniority:       seniority,
		Role:            computeRoleAlignmentScore(tax, text, keywords, role),
		Project:         computeProjectScore(tax, text),
		Education:       computeEducationScore(tax, text),
		Years:           years,
		BonusCount:      len(match.Bonus),
		CriticalMissing: skill.CriticalMissing,
	}

	base := aggregate(scores)
	final, notes := adjust(base, scores)

	insights := generateInsights(insightInput{
		Match:           match,
		Scores:          scores,
		FinalScore:      final,
		RequiredYears:   job.MinExperience,
		Notes:           notes,
		JobTitle:        job.Title,
		CriticalMissing: skill.CriticalMissing,
		EmptyResume:     strings.TrimSpace(text) == "",
	})

	coverage := 0.0
	if skill.HasRequirements {
		coverage = roundOneDecimal(skill.RawCoverage * 100)
	}

	return types.CandidateResult{
		RawScore: final,
		Score:    final,
		Breakdown: types.ScoreBreakdown{
			SkillMatch:       scores.Skill,
			ExperienceScore:  scores.Experience,
			ExperienceYears:  years,
			RoleAlignment:    scores.Role,
			ProjectScore:     scores.Project,
			EducationScore:   scores.Education,
			SeniorityScore:   seniority,
			BaseScore:        base,
			RawCoverage:      coverage,
			CriticalMissing:  skill.CriticalMissing,
			ImportantMissing: skill.ImportantMissing,
			RoleType:         role,
		},
		Match:           match,
		ExtractedSkills: extracted,
		CandidateSkills: tax.Categorize(extracted),
		Insights:        insights,
		Explanation:     explanation(scores, skill, base, final, insights.Recommendation),
	}
}

func (e *Evaluator) neutralSkillScore() int {
	if e.NeutralSkillScore <= 0 {
		return DefaultNeutralSkillScore
	}
	return e.NeutralSkillScore
}

// annotateTiers lines up every required skill with its tier and match state
func annotateTiers(required []string, tiers []types.Tier, match types.MatchResult) []types.SkillMatch {
	states := make(map[string]types.MatchState, len(required))
	for _, m := range match.Matched {
		states[m.Skill] = m.State
	}

	requirements := make([]types.SkillMatch, len(required))
	for i, skill := range required {
		state, ok := states[skill]
		if !ok {
			state = types.MatchMissing
		}
		requirements[i] = types.SkillMatch{Skill: skill, State: state, Tier: tiers[i]}
	}
	return requirements
}

func tierOf(required []string, tiers []types.Tier, skill string) types.Tier {
	for i, s := range required {
		if s == skill {
			return tiers[i]
		}
	}
	return types.TierImportant
}

// explanation renders the one-line scoring trace
func explanation(c components, skill skillScore, base, final int, rec string) string {
	coverage := "?"
	if skill.HasRequirements {
		coverage = strconv.FormatFloat(roundOneDecimal(skill.RawCoverage*100), 'f', 1, 64)
	}
	return fmt.Sprintf(
		"Skill:%d%%(cov=%s%%) | Exp:%d%%(%syrs) | Seniority:%d%% | Role:%d%% | Proj:%d%% | Edu:%d%% | Base:%d -> Final:%d/100 | Rec:%s",
		c.Skill, coverage, c.Experience, formatYears(c.Years), c.Seniority, c.Role, c.Project, c.Education, base, final, rec,
	)
}
