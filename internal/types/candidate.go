//nolint:revive // types is a standard Go package name pattern
package types

// ScoreBreakdown holds the component scores behind a candidate's raw score.
// Every score is an integer in [0,100]; ExperienceYears is capped at a plausible career length.
type ScoreBreakdown struct {
	SkillMatch      int     `json:"skill_match"`
	ExperienceScore int     `json:"experience_score"`
	ExperienceYears float64 `json:"experience_years"`
	RoleAlignment   int     `json:"role_alignment"`
	ProjectScore    int     `json:"project_score"`
	EducationScore  int     `json:"education_score"`
	SeniorityScore  int     `json:"seniority_score"`
	BaseScore       int     `json:"base_score"`
	// RawCoverage is the weighted skill coverage in percent, before the scoring curve
	RawCoverage      float64  `json:"raw_coverage"`
	CriticalMissing  []string `json:"critical_missing,omitempty"`
	ImportantMissing []string `json:"important_missing,omitempty"`
	RoleType         string   `json:"role_type"`
}

// RoleFit is a coarse suitability class assigned by the pool calibrator
type RoleFit string

const (
	RoleFitCore       RoleFit = "core_fit"
	RoleFitAdjacent   RoleFit = "adjacent_fit"
	RoleFitWeak       RoleFit = "weak_fit"
	RoleFitIrrelevant RoleFit = "irrelevant"
)

// Insights is the human-readable explanation derived from a score breakdown
type Insights struct {
	KeyStrengths   []string `json:"key_strengths"`
	Gaps           []string `json:"gaps"`
	Recommendation string   `json:"recommendation"`
	Reasoning      string   `json:"reasoning"`
	SeniorityLabel string   `json:"seniority_label"`
	SeniorityScore int      `json:"seniority_score"`
	Confidence     string   `json:"confidence"`
	Tier           string   `json:"tier"`
	TierLabel      string   `json:"tier_label"`
	ScoreNotes     []string `json:"score_notes"`
	MatchedSkills  []string `json:"matched_skills"`
	MissingSkills  []string `json:"missing_skills"`
	BonusSkills    []string `json:"bonus_skills"`

	// Set by the pool calibrator
	ComparativeRank           string  `json:"comparative_rank,omitempty"`
	ComparativeRecommendation string  `json:"comparative_recommendation,omitempty"`
	RoleFit                   RoleFit `json:"role_fit,omitempty"`
	PoolSize                  int     `json:"pool_size,omitempty"`
}

// CandidateSkills buckets the skills detected in a résumé by category
type CandidateSkills struct {
	Languages  []string `json:"languages"`
	Frameworks []string `json:"frameworks"`
	Databases  []string `json:"databases"`
	Tools      []string `json:"tools"`
	Other      []string `json:"other"`
}

// CandidateResult is the evaluation of one résumé against one job.
// RawScore is fixed once evaluated; Score is the only field the calibrator rewrites
// besides the comparative annotations.
type CandidateResult struct {
	ResumeID        string          `json:"resume_id,omitempty"`
	Filename        string          `json:"filename,omitempty"`
	RawScore        int             `json:"raw_score"`
	Score           int             `json:"score"`
	RankPosition    int             `json:"rank_position,omitempty"`
	ComparativeRank string          `json:"comparative_rank,omitempty"`
	RoleFit         RoleFit         `json:"role_fit,omitempty"`
	Breakdown       ScoreBreakdown  `json:"breakdown"`
	Match           MatchResult     `json:"match"`
	ExtractedSkills []string        `json:"extracted_skills"`
	CandidateSkills CandidateSkills `json:"candidate_skills"`
	Insights        Insights        `json:"insights"`
	Explanation     string          `json:"explanation"`
}
