// Package parsing provides text normalization shared by every résumé matcher.
package parsing

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	horizontalSpace = regexp.MustCompile(`[ \t]+`)
	blankLines      = regexp.MustCompile(`\n{2,}`)
)

// punctuationFolds maps unicode dash and bullet variants to their ASCII equivalents
var punctuationFolds = strings.NewReplacer(
	"‐", "-",
	"‑", "-",
	"‒", "-",
	"–", "-",
	"—", "-",
	"―", "-",
	"−", "-",
	"•", " ",
	"·", " ",
	"▸", " ",
	"▪", " ",
	"■", " ",
	"●", " ",
	"‣", " ",
	"⁃", " ",
	"\r\n", "\n",
	"\r", "\n",
)

// foldAccents strips combining marks so "résumé" and "resume" compare equal
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// NormalizeText lower-cases raw résumé text, folds dash and bullet variants,
// collapses horizontal whitespace and squeezes blank lines. It is idempotent.
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}

	normalized := foldAccents(strings.ToLower(text))
	normalized = punctuationFolds.Replace(normalized)
	normalized = horizontalSpace.ReplaceAllString(normalized, " ")
	normalized = blankLines.ReplaceAllString(normalized, "\n")

	return normalized
}

// DisplaySkillName returns a human-cased form of a canonical skill name.
// Names of three characters or fewer are treated as acronyms.
func DisplaySkillName(canonical string) string {
	name := strings.TrimSpace(canonical)
	if name == "" {
		return ""
	}
	if len([]rune(name)) <= 3 {
		return strings.ToUpper(name)
	}
	return cases.Title(language.English).String(name)
}

// NormalizeRequiredSkills trims and deduplicates a required-skill list, keeping the
// first spelling seen for each canonical key. Empty entries are dropped.
// A nil canonical func falls back to case-insensitive comparison.
func NormalizeRequiredSkills(skills []string, canonical func(string) string) []string {
	if len(skills) == 0 {
		return []string{}
	}
	if canonical == nil {
		canonical = func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	}

	normalized := make([]string, 0, len(skills))
	seen := make(map[string]bool)

	for _, skill := range skills {
		trimmed := strings.TrimSpace(skill)
		if trimmed == "" {
			continue
		}

		key := canonical(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		normalized = append(normalized, trimmed)
	}

	return normalized
}

// DeriveKeywords builds the keyword list used when a job declares none:
// the required skills followed by title words longer than three characters.
func DeriveKeywords(title string, requiredSkills []string) []string {
	keywords := make([]string, 0, len(requiredSkills))
	keywords = append(keywords, requiredSkills...)
	for _, word := range strings.Fields(strings.ToLower(title)) {
		if len(word) > 3 {
			keywords = append(keywords, word)
		}
	}
	return keywords
}
