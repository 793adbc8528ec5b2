// Package skills provides the skill taxonomy and the matching, classification and
// extraction of skills in résumé text.
package skills

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/resume-ranker/internal/parsing"
	"github.com/jonathan/resume-ranker/internal/schemas"
)

//go:embed data/taxonomy.json
var defaultTaxonomy []byte

// Category groups canonical skills
type Category string

const (
	CategoryLanguage  Category = "language"
	CategoryFramework Category = "framework"
	CategoryDatabase  Category = "database"
	CategoryTool      Category = "tool"
	CategoryPractice  Category = "practice"
)

// Entry is one canonical skill in the taxonomy
type Entry struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Display  string   `json:"display,omitempty"`
	Aliases  []string `json:"aliases"`
	Implies  []string `json:"implies,omitempty"`
}

// Family is a set of mutually substitutable technologies
type Family struct {
	ID      string   `json:"id"`
	Members []string `json:"members"`
}

// Role is a job role with its detection signals and critical skills
type Role struct {
	Name     string   `json:"name"`
	Signals  []string `json:"signals"`
	Critical []string `json:"critical"`
}

// EducationTier scores a degree level found through any of its terms
type EducationTier struct {
	Level string   `json:"level"`
	Score int      `json:"score"`
	Terms []string `json:"terms"`
}

type taxonomyFile struct {
	Version          string          `json:"version"`
	Skills           []Entry         `json:"skills"`
	Families         []Family        `json:"families"`
	Roles            []Role          `json:"roles"`
	DefaultRole      string          `json:"default_role"`
	SenioritySignals []string        `json:"seniority_signals"`
	ImpactSignals    []string        `json:"impact_signals"`
	Education        []EducationTier `json:"education"`
	EducationDefault int             `json:"education_default"`
}

// Taxonomy is the immutable skill knowledge base. It is safe for concurrent use.
type Taxonomy struct {
	data taxonomyFile

	entries   map[string]*Entry   // canonical -> entry
	canonical map[string]string   // alias -> canonical
	aliases   map[string][]string // canonical -> surface forms, canonical first
	families  map[string]*Family  // canonical -> family
	roles     map[string]*Role
	critical  map[string]map[string]bool // role -> canonical critical skills
	names     []string                   // canonical names, sorted
}

var (
	defaultOnce sync.Once
	defaultTax  *Taxonomy
	defaultErr  error
)

// Default returns the taxonomy embedded in the binary, loading it on first use.
func Default() (*Taxonomy, error) {
	defaultOnce.Do(func() {
		defaultTax, defaultErr = Load(bytes.NewReader(defaultTaxonomy))
	})
	return defaultTax, defaultErr
}

// Load reads taxonomy JSON, validates it against the taxonomy schema and builds the lookup tables.
func Load(r io.Reader) (*Taxonomy, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &TaxonomyError{Message: "failed to read taxonomy", Cause: err}
	}

	if err := schemas.Validate(schemas.Taxonomy, raw); err != nil {
		return nil, &TaxonomyError{Message: "taxonomy does not match schema", Cause: err}
	}

	var data taxonomyFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &TaxonomyError{Message: "failed to parse taxonomy JSON", Cause: err}
	}

	return build(data)
}

func build(data taxonomyFile) (*Taxonomy, error) {
	t := &Taxonomy{
		data:      data,
		entries:   make(map[string]*Entry, len(data.Skills)),
		canonical: make(map[string]string),
		aliases:   make(map[string][]string, len(data.Skills)),
		families:  make(map[string]*Family),
		roles:     make(map[string]*Role, len(data.Roles)),
		critical:  make(map[string]map[string]bool, len(data.Roles)),
	}

	for i := range t.data.Skills {
		entry := &t.data.Skills[i]
		name := strings.ToLower(strings.TrimSpace(entry.Name))
		if _, exists := t.entries[name]; exists {
			return nil, &TaxonomyError{Message: fmt.Sprintf("duplicate canonical skill %q", name)}
		}
		entry.Name = name
		t.entries[name] = entry
		t.names = append(t.names, name)
	}

	// Canonical names own themselves before any alias is registered
	for _, name := range t.names {
		t.canonical[name] = name
	}
	for _, name := range t.names {
		forms := []string{name}
		for _, alias := range t.entries[name].Aliases {
			alias = strings.ToLower(strings.TrimSpace(alias))
			if alias == name {
				continue
			}
			if owner, taken := t.canonical[alias]; taken {
				return nil, &TaxonomyError{Message: fmt.Sprintf("alias %q maps to both %q and %q", alias, owner, name)}
			}
			t.canonical[alias] = name
			forms = append(forms, alias)
		}
		t.aliases[name] = forms
	}
	sort.Strings(t.names)

	// Later families win for skills listed in more than one
	for i := range t.data.Families {
		family := &t.data.Families[i]
		for _, member := range family.Members {
			t.families[t.Canonicalize(member)] = family
		}
	}

	for i := range t.data.Roles {
		role := &t.data.Roles[i]
		t.roles[role.Name] = role
		critical := make(map[string]bool, len(role.Critical))
		for _, skill := range role.Critical {
			critical[t.Canonicalize(skill)] = true
		}
		t.critical[role.Name] = critical
	}
	if _, ok := t.roles[data.DefaultRole]; !ok {
		return nil, &TaxonomyError{Message: fmt.Sprintf("default role %q is not defined", data.DefaultRole)}
	}

	return t, nil
}

// Version returns the version string of the taxonomy data.
func (t *Taxonomy) Version() string {
	return t.data.Version
}

// Canonicalize maps a surface form to its canonical skill name.
// Unknown terms are their own canonical form, lower-cased.
func (t *Taxonomy) Canonicalize(term string) string {
	lower := strings.ToLower(strings.TrimSpace(term))
	if canonical, ok := t.canonical[lower]; ok {
		return canonical
	}
	return lower
}

// Known reports whether a term resolves to a skill in the taxonomy.
func (t *Taxonomy) Known(term string) bool {
	_, ok := t.canonical[strings.ToLower(strings.TrimSpace(term))]
	return ok
}

// AliasesOf returns every surface form of a skill, including its canonical name.
func (t *Taxonomy) AliasesOf(term string) []string {
	canonical := t.Canonicalize(term)
	if forms, ok := t.aliases[canonical]; ok {
		return forms
	}
	if canonical == "" {
		return nil
	}
	return []string{canonical}
}

// FamilyOf returns the technology family id of a skill, or "" if it has none.
func (t *Taxonomy) FamilyOf(term string) string {
	if family, ok := t.families[t.Canonicalize(term)]; ok {
		return family.ID
	}
	return ""
}

// ImpliedBy returns the canonical skills implied by a skill through its ecosystem.
func (t *Taxonomy) ImpliedBy(term string) []string {
	entry, ok := t.entries[t.Canonicalize(term)]
	if !ok || len(entry.Implies) == 0 {
		return nil
	}
	implied := make([]string, 0, len(entry.Implies))
	for _, skill := range entry.Implies {
		implied = append(implied, t.Canonicalize(skill))
	}
	return implied
}

// CategoryOf returns the category of a skill and whether it is known.
func (t *Taxonomy) CategoryOf(term string) (Category, bool) {
	entry, ok := t.entries[t.Canonicalize(term)]
	if !ok {
		return "", false
	}
	return entry.Category, true
}

// Display returns the human-cased name of a skill.
func (t *Taxonomy) Display(term string) string {
	canonical := t.Canonicalize(term)
	if entry, ok := t.entries[canonical]; ok && entry.Display != "" {
		return entry.Display
	}
	return parsing.DisplaySkillName(canonical)
}

// Names returns the sorted canonical skill names.
func (t *Taxonomy) Names() []string {
	return append([]string(nil), t.names...)
}

// Present reports whether any surface form of the skill occurs as a whole token
// in normalized text.
func (t *Taxonomy) Present(term, normalizedText string) bool {
	for _, alias := range t.AliasesOf(term) {
		if containsToken(normalizedText, alias) {
			return true
		}
	}
	return false
}

// FamilyPresent reports whether another member of the skill's family is present in
// normalized text. The skill itself never counts.
func (t *Taxonomy) FamilyPresent(term, normalizedText string) bool {
	canonical := t.Canonicalize(term)
	family, ok := t.families[canonical]
	if !ok {
		return false
	}
	for _, member := range family.Members {
		memberCanonical := t.Canonicalize(member)
		if memberCanonical == canonical {
			continue
		}
		if t.Present(memberCanonical, normalizedText) {
			return true
		}
	}
	return false
}

// Detect returns the sorted canonical names of every taxonomy skill present in normalized text.
func (t *Taxonomy) Detect(normalizedText string) []string {
	detected := make([]string, 0)
	for _, name := range t.names {
		if t.Present(name, normalizedText) {
			detected = append(detected, name)
		}
	}
	return detected
}

// Role returns a role by name.
func (t *Taxonomy) Role(name string) (Role, bool) {
	role, ok := t.roles[name]
	if !ok {
		return Role{}, false
	}
	return *role, true
}

// DefaultRole is the role used when detection is inconclusive.
func (t *Taxonomy) DefaultRole() string {
	return t.data.DefaultRole
}

// IsCritical reports whether a skill is in the critical set of a role.
func (t *Taxonomy) IsCritical(role, term string) bool {
	return t.critical[role][t.Canonicalize(term)]
}

// SenioritySignals returns the leadership and scale phrases.
func (t *Taxonomy) SenioritySignals() []string {
	return t.data.SenioritySignals
}

// ImpactSignals returns the achievement and impact phrases.
func (t *Taxonomy) ImpactSignals() []string {
	return t.data.ImpactSignals
}

// Education returns the degree tiers, highest first, and the score when none match.
func (t *Taxonomy) Education() ([]EducationTier, int) {
	return t.data.Education, t.data.EducationDefault
}

// containsToken reports whether alias occurs in text without touching a longer token.
// Aliases of three characters or fewer may not touch letters or digits; longer
// aliases may not touch letters, so "python3" still counts as "python".
func containsToken(text, alias string) bool {
	if alias == "" {
		return false
	}
	short := len(alias) <= 3
	blocked := func(b byte) bool {
		if b >= 'a' && b <= 'z' {
			return true
		}
		return short && b >= '0' && b <= '9'
	}

	for offset := 0; offset <= len(text)-len(alias); {
		idx := strings.Index(text[offset:], alias)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(alias)
		if (start == 0 || !blocked(text[start-1])) && (end == len(text) || !blocked(text[end])) {
			return true
		}
		offset = start + 1
	}
	return false
}
