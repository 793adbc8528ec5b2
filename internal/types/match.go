//nolint:revive // types is a standard Go package name pattern
package types

// MatchState records how a required skill was found in a résumé
type MatchState string

const (
	MatchDirect   MatchState = "direct"
	MatchInferred MatchState = "inferred"
	MatchFamily   MatchState = "family"
	MatchMissing  MatchState = "missing"
)

// Credit is the fraction of a skill's weight earned for this kind of match.
func (s MatchState) Credit() float64 {
	switch s {
	case MatchDirect:
		return 1.0
	case MatchInferred:
		return 0.75
	case MatchFamily:
		return 0.50
	default:
		return 0.0
	}
}

// Tier is the importance of a required skill for a job
type Tier string

const (
	TierCritical  Tier = "critical"
	TierImportant Tier = "important"
	TierOptional  Tier = "optional"
)

// Weight is the scoring weight of a tier. Unknown tiers weigh as important.
func (t Tier) Weight() float64 {
	switch t {
	case TierCritical:
		return 3
	case TierOptional:
		return 1
	default:
		return 2
	}
}

// SkillMatch is one required skill with its match state and tier
type SkillMatch struct {
	Skill string     `json:"skill"`
	State MatchState `json:"state"`
	Tier  Tier       `json:"tier,omitempty"`
}

// Label renders the skill with its match annotation, e.g. "Python (inferred)".
func (m SkillMatch) Label() string {
	switch m.State {
	case MatchInferred:
		return m.Skill + " (inferred)"
	case MatchFamily:
		return m.Skill + " (equivalent)"
	default:
		return m.Skill
	}
}

// MatchResult partitions the required skills into matched and missing, plus the bonus
// skills the résumé brings. Every required skill appears in exactly one of Matched or Missing.
type MatchResult struct {
	Matched []SkillMatch `json:"matched"`
	Missing []string     `json:"missing"`
	Bonus   []string     `json:"bonus"`
}

// Total is the number of required skills the result covers.
func (m MatchResult) Total() int {
	return len(m.Matched) + len(m.Missing)
}

// WithState returns the matched skill names that were found with the given state.
func (m MatchResult) WithState(state MatchState) []string {
	skills := make([]string, 0)
	for _, match := range m.Matched {
		if match.State == state {
			skills = append(skills, match.Skill)
		}
	}
	return skills
}

// Labels returns the annotated labels of all matched skills.
func (m MatchResult) Labels() []string {
	labels := make([]string, len(m.Matched))
	for i, match := range m.Matched {
		labels[i] = match.Label()
	}
	return labels
}
