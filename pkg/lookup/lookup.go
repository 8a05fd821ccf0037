package lookup

import (
	"iter"

	"github.com/bastiangx/spellserve/pkg/aff"
	"github.com/bastiangx/spellserve/pkg/dic"
)

// maxBreakDepth caps the BREAK split recursion.
const maxBreakDepth = 10

// Lookup is the acceptance core over one affix description and word list.
// It holds no per-query state; queries may run in parallel.
type Lookup struct {
	aff *aff.Aff
	dic *dic.Dic
}

// New binds an affix description and a dictionary.
func New(a *aff.Aff, d *dic.Dic) *Lookup {
	return &Lookup{aff: a, dic: d}
}

// Aff exposes the affix description the engine was built from.
func (l *Lookup) Aff() *aff.Aff { return l.aff }

// Dic exposes the dictionary the engine was built from.
func (l *Lookup) Dic() *dic.Dic { return l.dic }

// Check reports whether word is accepted: directly, through any cased
// variant, or as a sequence of BREAK-separated parts that each check.
func (l *Lookup) Check(word string) bool {
	return l.CheckWith(word, true, true)
}

// CheckWith is Check with explicit capitalization and NOSUGGEST handling,
// used by the suggester to re-check candidates strictly.
func (l *Lookup) CheckWith(word string, capitalization, allowNoSuggest bool) bool {
	if l.IsForbidden(word) {
		return false
	}
	if l.hasGoodForms(word, capitalization, allowNoSuggest) {
		return true
	}
	for parts := range l.breakWord(word, 0) {
		if len(parts) < 2 {
			continue
		}
		good := true
		for _, part := range parts {
			if part == "" {
				continue
			}
			if !l.hasGoodForms(part, capitalization, allowNoSuggest) {
				good = false
				break
			}
		}
		if good {
			return true
		}
	}
	return false
}

// GoodForms yields every accepted reading of word across its cased
// variants; single-word readings come wrapped as one-part compounds.
func (l *Lookup) GoodForms(word string, capitalization, allowNoSuggest bool) iter.Seq[CompoundForm] {
	return func(yield func(CompoundForm) bool) {
		capType, variants := l.variants(word, capitalization)
		for _, variant := range variants {
			for form := range l.AffixForms(variant, capType, affixOpts{allowNoSuggest: allowNoSuggest}) {
				if !yield(CompoundForm{form}) {
					return
				}
			}
			if !l.aff.HasCompounding() {
				continue
			}
			for compound := range l.CompoundForms(variant, capType, allowNoSuggest) {
				if !yield(compound) {
					return
				}
			}
		}
	}
}

func (l *Lookup) hasGoodForms(word string, capitalization, allowNoSuggest bool) bool {
	for range l.GoodForms(word, capitalization, allowNoSuggest) {
		return true
	}
	return false
}

// HasAffixForm reports whether word reads as a single affix form in its
// given shape, without case variants.
func (l *Lookup) HasAffixForm(word string, allowNoSuggest bool) bool {
	capType := l.aff.Casing.Guess(word)
	for range l.AffixForms(word, capType, affixOpts{allowNoSuggest: allowNoSuggest}) {
		return true
	}
	return false
}

// HasCompoundForm reports whether word reads as a compound in its given
// shape, without case variants.
func (l *Lookup) HasCompoundForm(word string, allowNoSuggest bool) bool {
	capType := l.aff.Casing.Guess(word)
	for range l.CompoundForms(word, capType, allowNoSuggest) {
		return true
	}
	return false
}

// IsForbidden reports whether the word itself has a forbidden homonym.
func (l *Lookup) IsForbidden(word string) bool {
	if l.aff.ForbiddenWord == aff.NoFlag {
		return false
	}
	return l.dic.HasFlag(word, l.aff.ForbiddenWord, false)
}

// IsWarned reports whether some accepted reading's root carries WARN.
func (l *Lookup) IsWarned(word string) bool {
	if l.aff.Warn == aff.NoFlag {
		return false
	}
	for compound := range l.GoodForms(word, true, true) {
		for _, part := range compound {
			if part.Root != nil && part.Root.Flags.Has(l.aff.Warn) {
				return true
			}
		}
	}
	return false
}

// variants lists the cased lookup keys for word, including sharp-s
// restorations for all-caps words in German mode.
func (l *Lookup) variants(word string, capitalization bool) (aff.CapType, []string) {
	if !capitalization {
		return l.aff.Casing.Guess(word), []string{word}
	}
	capType, variants := l.aff.Casing.Variants(word)
	if l.aff.CheckSharps && capType == aff.CapAll {
		lower := l.aff.Casing.Lower(word)
		variants = append(variants, aff.SharpSVariants(lower)...)
	}
	return capType, variants
}

// breakWord yields word split on the configured BREAK patterns, capped at
// maxBreakDepth levels; the unsplit sequence is yielded first.
func (l *Lookup) breakWord(text string, depth int) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		if depth > maxBreakDepth {
			return
		}
		if !yield([]string{text}) {
			return
		}
		for _, bp := range l.aff.Break {
			for _, m := range bp.Splits(text) {
				start := text[:m[0]]
				rest := text[m[1]:]
				for breaking := range l.breakWord(rest, depth+1) {
					parts := make([]string, 0, 1+len(breaking))
					parts = append(parts, start)
					parts = append(parts, breaking...)
					if !yield(parts) {
						return
					}
				}
			}
		}
	}
}
