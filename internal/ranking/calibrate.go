package ranking

import (
	"sort"

	"github.com/jonathan/resume-ranker/internal/types"
)

// Comparative rank labels
const (
	RankOnly     = "Only Candidate"
	RankTop      = "Top Candidate"
	RankStrong   = "Strong Candidate"
	RankModerate = "Moderate Candidate"
	RankBelow    = "Below Average"
	RankWeak     = "Weak Candidate"
)

// Calibrated score bounds
const (
	minCalibrated = 20
	maxCalibrated = 95
)

// Swap records a consistency repair between two adjacent candidates
type Swap struct {
	Upper      string `json:"upper"`
	Lower      string `json:"lower"`
	UpperScore int    `json:"upper_score"`
	LowerScore int    `json:"lower_score"`
}

// Calibrate re-maps the independently computed raw scores of one job's pool into a
// realistic rank-consistent distribution and attaches comparative labels.
//
// The pool is expected sorted by raw score, descending; it is stably re-sorted first
// to be safe. Steps run in a fixed order: rescale and blend, percentile
// banding, one forward pass of adjacent consistency repair, re-sort, label. RawScore is
// never written, so calibrating twice yields the same pool. The returned swaps describe
// the repairs made.
func Calibrate(pool []types.CandidateResult) ([]types.CandidateResult, []Swap) {
	swaps := make([]Swap, 0)
	n := len(pool)
	if n == 0 {
		return pool, swaps
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].RawScore > pool[j].RawScore
	})

	if n == 1 {
		only := &pool[0]
		only.Score = only.RawScore
		only.RankPosition = 1
		only.ComparativeRank = RankOnly
		only.RoleFit = roleFit(only.Score, only.Breakdown.SkillMatch)
		only.Insights.ComparativeRank = RankOnly
		only.Insights.RoleFit = only.RoleFit
		only.Insights.PoolSize = 1
		return pool, swaps
	}

	rescaled := rescale(pool)
	for i := range pool {
		pool[i].Score = bandScore(rescaled[i], i, n)
	}

	for i := 0; i < n-1; i++ {
		upper, lower := &pool[i], &pool[i+1]
		if lower.Breakdown.SkillMatch > upper.Breakdown.SkillMatch &&
			lower.Breakdown.ExperienceYears > upper.Breakdown.ExperienceYears &&
			lower.Score < upper.Score {
			swaps = append(swaps, Swap{
				Upper:      candidateName(upper),
				Lower:      candidateName(lower),
				UpperScore: upper.Score,
				LowerScore: lower.Score,
			})
			upper.Score, lower.Score = lower.Score, upper.Score
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Score > pool[j].Score
	})

	for i := range pool {
		candidate := &pool[i]
		label := comparativeLabel(i, n)
		rec := comparativeRecommendation(label, candidate.Insights.Recommendation)

		candidate.RankPosition = i + 1
		candidate.ComparativeRank = label
		candidate.RoleFit = roleFit(candidate.Score, candidate.Breakdown.SkillMatch)

		candidate.Insights.ComparativeRank = label
		candidate.Insights.ComparativeRecommendation = rec
		candidate.Insights.RoleFit = candidate.RoleFit
		candidate.Insights.PoolSize = n
		candidate.Insights.Recommendation = rec
	}

	return pool, swaps
}

// rescale maps raw scores linearly into a window whose top floats between 90 and 95
// and whose bottom never drops under 25, then blends 70% rescaled with 30% raw.
func rescale(pool []types.CandidateResult) []int {
	poolMax, poolMin := pool[0].RawScore, pool[0].RawScore
	for _, c := range pool[1:] {
		poolMax = max(poolMax, c.RawScore)
		poolMin = min(poolMin, c.RawScore)
	}
	spread := float64(max(poolMax-poolMin, 1))
	top := float64(max(90, min(95, poolMax+8)))
	bottom := float64(max(25, poolMin-2))

	scores := make([]int, len(pool))
	for i, c := range pool {
		raw := float64(c.RawScore)
		scaled := bottom + (raw-float64(poolMin))/spread*(top-bottom)
		scores[i] = clamp(int(scaled*0.70+raw*0.30), minCalibrated, maxCalibrated)
	}
	return scores
}

// bandScore pulls a calibrated score 25% toward the realistic band of its rank percentile.
func bandScore(score, idx, n int) int {
	pct := percentile(idx, n)

	var target int
	switch {
	case pct >= 0.85:
		target = 82 + int(pct*13)
	case pct >= 0.65:
		target = 70 + int(pct*18)
	case pct >= 0.40:
		target = 58 + int(pct*29)
	case pct >= 0.20:
		target = 45 + int(pct*32)
	default:
		target = 30 + int(pct*50)
	}

	return clamp(int(float64(score)*0.75+float64(target)*0.25), minCalibrated, maxCalibrated)
}

// percentile is 1 for the best rank and 0 for the worst
func percentile(idx, n int) float64 {
	return 1.0 - float64(idx)/float64(max(n-1, 1))
}

func comparativeLabel(idx, n int) string {
	pct := percentile(idx, n)
	switch {
	case pct >= 0.85:
		return RankTop
	case pct >= 0.60:
		return RankStrong
	case pct >= 0.35:
		return RankModerate
	case pct >= 0.15:
		return RankBelow
	default:
		return RankWeak
	}
}

func comparativeRecommendation(label, candidateRec string) string {
	switch label {
	case RankTop:
		return "Strong Hire — Prioritise Interview"
	case RankStrong:
		return "Hire — Schedule Interview"
	case RankModerate:
		if candidateRec != "" {
			return candidateRec
		}
		return "Consider — Further Screening Needed"
	case RankBelow:
		return "Low Priority — Only if Pool is Thin"
	default:
		return RecommendNot
	}
}

func roleFit(score, skill int) types.RoleFit {
	switch {
	case score >= 80 && skill >= 70:
		return types.RoleFitCore
	case score >= 65 || skill >= 50:
		return types.RoleFitAdjacent
	case score >= 50:
		return types.RoleFitWeak
	default:
		return types.RoleFitIrrelevant
	}
}

func candidateName(c *types.CandidateResult) string {
	if c.Filename != "" {
		return c.Filename
	}
	if c.ResumeID != "" {
		return c.ResumeID
	}
	return "?"
}
