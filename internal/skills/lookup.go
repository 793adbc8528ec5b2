package skills

// TermInfo is everything the taxonomy knows about one term
type TermInfo struct {
	Term      string   `json:"term"`
	Known     bool     `json:"known"`
	Canonical string   `json:"canonical"`
	Display   string   `json:"display"`
	Category  Category `json:"category,omitempty"`
	Family    string   `json:"family,omitempty"`
	Aliases   []string `json:"aliases"`
	Implies   []string `json:"implies"`
}

// Lookup resolves a term against the taxonomy. Unknown terms resolve to their
// lowercase form with no family or implications.
func (t *Taxonomy) Lookup(term string) TermInfo {
	category, _ := t.CategoryOf(term)
	info := TermInfo{
		Term:      term,
		Known:     t.Known(term),
		Canonical: t.Canonicalize(term),
		Display:   t.Display(term),
		Category:  category,
		Family:    t.FamilyOf(term),
		Aliases:   t.AliasesOf(term),
		Implies:   t.ImpliedBy(term),
	}
	if info.Aliases == nil {
		info.Aliases = []string{}
	}
	if info.Implies == nil {
		info.Implies = []string{}
	}
	return info
}
