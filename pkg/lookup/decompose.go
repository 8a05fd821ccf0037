package lookup

import (
	"iter"
	"strings"

	"github.com/bastiangx/spellserve/pkg/aff"
	"github.com/bastiangx/spellserve/pkg/dic"
)

// produceAffixForms enumerates every (prefix, stem, suffix) hypothesis for
// word without consulting the dictionary: the identity form, single and
// double suffixes, single (and, with complex prefixes, double) prefixes,
// and cross-product combinations. At most two affixes stack on either side.
func (l *Lookup) produceAffixForms(word string, cs constraints, pos Pos) iter.Seq[AffixForm] {
	return func(yield func(AffixForm) bool) {
		if !yield(AffixForm{Text: word, Stem: word}) {
			return
		}

		suffixAllowed := pos == PosNone || pos == PosEnd || len(cs.suffixFlags) > 0
		prefixAllowed := pos == PosNone || pos == PosBegin || len(cs.prefixFlags) > 0

		if suffixAllowed {
			for form := range l.desuffix(word, cs.suffixFlags, cs.forbidden, false, false) {
				if !yield(form) {
					return
				}
			}
		}
		if !prefixAllowed {
			return
		}
		for form := range l.deprefix(word, cs.prefixFlags, cs.forbidden, false) {
			if !yield(form) {
				return
			}
			if suffixAllowed && form.Prefix != nil && form.Prefix.Cross {
				for inner := range l.desuffix(form.Stem, cs.suffixFlags, cs.forbidden, false, true) {
					combined := inner
					combined.Text = word
					combined.Prefix = form.Prefix
					combined.Prefix2 = form.Prefix2
					if !yield(combined) {
						return
					}
				}
			}
		}
	}
}

// desuffix strips one suffix from word's end, and once more from the
// resulting stem when not nested. The required flags must all appear on a
// candidate's auxiliary set; on the second level that includes the class
// flag of the suffix stripped first.
func (l *Lookup) desuffix(word string, required, forbidden []aff.Flag, nested, cross bool) iter.Seq[AffixForm] {
	return func(yield func(AffixForm) bool) {
		l.aff.SuffixSegments(word, func(sfx *aff.Suffix) bool {
			if cross && !sfx.Cross {
				return true
			}
			if !sfx.Compatible(required, forbidden) {
				return true
			}
			if !l.aff.FullStrip && len(sfx.Add) >= len(word) {
				return true
			}
			stem := sfx.Stem(word)
			if !sfx.Relevant(stem) {
				return true
			}
			if !yield(AffixForm{Text: word, Stem: stem, Suffix: sfx}) {
				return false
			}
			if nested {
				return true
			}
			innerRequired := append([]aff.Flag{sfx.Flag}, required...)
			for inner := range l.desuffix(stem, innerRequired, forbidden, true, cross) {
				inner.Text = word
				inner.Suffix2 = sfx
				if !yield(inner) {
					return false
				}
			}
			return true
		})
	}
}

// deprefix mirrors desuffix at the word start; a second level only opens
// up when the engine runs in complex-prefix mode.
func (l *Lookup) deprefix(word string, required, forbidden []aff.Flag, nested bool) iter.Seq[AffixForm] {
	return func(yield func(AffixForm) bool) {
		l.aff.PrefixSegments(word, func(pfx *aff.Prefix) bool {
			if !pfx.Compatible(required, forbidden) {
				return true
			}
			if !l.aff.FullStrip && len(pfx.Add) >= len(word) {
				return true
			}
			stem := pfx.Stem(word)
			if !pfx.Relevant(stem) {
				return true
			}
			if !yield(AffixForm{Text: word, Stem: stem, Prefix: pfx}) {
				return false
			}
			if nested || !l.aff.ComplexPrefixes {
				return true
			}
			innerRequired := append([]aff.Flag{pfx.Flag}, required...)
			for inner := range l.deprefix(stem, innerRequired, forbidden, true) {
				inner.Text = word
				inner.Prefix2 = pfx
				if !yield(inner) {
					return false
				}
			}
			return true
		})
	}
}

// affixOpts carry the context a decomposition is validated under.
type affixOpts struct {
	allowNoSuggest bool
	withForbidden  bool
	cs             constraints
	pos            Pos
}

// AffixForms yields every dictionary-backed, validated reading of word.
// Enumeration stops early when the stem resolves to a forbidden homonym in
// an affixed or compound context, per the FORBIDDENWORD semantics.
func (l *Lookup) AffixForms(word string, capType aff.CapType, opts affixOpts) iter.Seq[AffixForm] {
	return func(yield func(AffixForm) bool) {
		for form := range l.produceAffixForms(word, opts.cs, opts.pos) {
			homonyms := l.dic.Homonyms(form.Stem, false)

			if !opts.withForbidden && l.aff.ForbiddenWord != aff.NoFlag &&
				(opts.pos != PosNone || !form.IsBase()) {
				stop := false
				for _, h := range homonyms {
					if h.HasFlag(l.aff.ForbiddenWord) {
						stop = true
						break
					}
				}
				if stop {
					return
				}
			}

			found := false
			for _, h := range homonyms {
				candidate := form
				candidate.Root = h
				if l.isGoodForm(candidate, opts.pos, capType, opts.allowNoSuggest) {
					found = true
					if !yield(candidate) {
						return
					}
				}
			}

			// A capitalized first compound part may match a lowercase entry
			// when FORCEUCASE licenses the capitalization.
			if opts.pos == PosBegin && l.aff.ForceUCase != aff.NoFlag && capType == aff.CapInit {
				for _, h := range l.dic.Homonyms(l.aff.Casing.Lower(form.Stem), false) {
					candidate := form
					candidate.Root = h
					if l.isGoodForm(candidate, opts.pos, capType, opts.allowNoSuggest) {
						found = true
						if !yield(candidate) {
							return
						}
					}
				}
			}

			if found || opts.pos != PosNone || capType != aff.CapAll {
				continue
			}
			// All-caps words match dictionary entries of any shape.
			for _, h := range l.homonymsAllCaps(form.Stem) {
				candidate := form
				candidate.Root = h
				if l.isGoodForm(candidate, opts.pos, capType, opts.allowNoSuggest) {
					if !yield(candidate) {
						return
					}
				}
			}
		}
	}
}

// homonymsAllCaps resolves a stem from an all-caps word: case-insensitive
// homonyms, plus sharp-s restorations in German mode.
func (l *Lookup) homonymsAllCaps(stem string) []*dic.Word {
	base := l.dic.Homonyms(stem, true)
	lower := l.aff.Casing.Lower(stem)
	if !l.aff.CheckSharps || !strings.Contains(lower, "ss") {
		return base
	}
	out := make([]*dic.Word, len(base))
	copy(out, base)
	for _, variant := range aff.SharpSVariants(lower) {
		out = append(out, l.dic.Homonyms(variant, false)...)
	}
	return out
}
