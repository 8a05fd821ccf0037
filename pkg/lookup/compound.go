package lookup

import (
	"iter"
	"strings"
	"unicode"

	"github.com/bastiangx/spellserve/pkg/aff"
)

// CompoundForms yields every licensed segmentation of word, under both the
// flag-based and the rule-based regime, filtered through isBadCompound.
func (l *Lookup) CompoundForms(word string, capType aff.CapType, allowNoSuggest bool) iter.Seq[CompoundForm] {
	return func(yield func(CompoundForm) bool) {
		if l.aff.ForbiddenWord != aff.NoFlag {
			for _, h := range l.dic.Homonyms(word, false) {
				if h.HasFlag(l.aff.ForbiddenWord) {
					return
				}
			}
		}

		probe := NewProbe(word, capType)
		if l.aff.CompoundFlag != aff.NoFlag || l.aff.CompoundBegin != aff.NoFlag {
			for compound := range l.compoundsByFlags(probe, 0, allowNoSuggest) {
				if !l.isBadCompound(compound, capType) {
					if !yield(compound) {
						return
					}
				}
			}
		}
		if len(l.aff.CompoundRules) > 0 {
			for compound := range l.compoundsByRules(probe, nil, l.aff.CompoundRules) {
				if !l.isBadCompound(compound, capType) {
					if !yield(compound) {
						return
					}
				}
			}
		}
	}
}

// compoundsByFlags segments recursively: the remainder is tried whole as
// an END part, then at every split point the left piece is decomposed in
// BEGIN or MIDDLE position and the right piece recursed at depth+1.
func (l *Lookup) compoundsByFlags(rest Probe, depth int, allowNoSuggest bool) iter.Seq[CompoundForm] {
	return func(yield func(CompoundForm) bool) {
		a := l.aff
		var permit, forbid []aff.Flag
		if a.CompoundPermitFlag != aff.NoFlag {
			permit = []aff.Flag{a.CompoundPermitFlag}
		}
		if a.CompoundForbidFlag != aff.NoFlag {
			forbid = []aff.Flag{a.CompoundForbidFlag}
		}

		if depth > 0 {
			opts := affixOpts{
				allowNoSuggest: allowNoSuggest,
				pos:            PosEnd,
				cs:             constraints{prefixFlags: permit, forbidden: forbid},
			}
			for form := range l.AffixForms(rest.Text(), rest.CapType, opts) {
				if !yield(CompoundForm{form}) {
					return
				}
			}
		}

		if rest.Len() < 2*a.CompoundMin {
			return
		}
		if a.CompoundWordMax > 0 && depth+1 >= a.CompoundWordMax {
			return
		}

		pos := PosBegin
		var prefixFlags []aff.Flag
		if depth > 0 {
			pos = PosMiddle
			prefixFlags = permit
		}
		cs := constraints{prefixFlags: prefixFlags, suffixFlags: permit, forbidden: forbid}

		for i := a.CompoundMin; i <= rest.Len()-a.CompoundMin; i++ {
			left := rest.Slice(0, i).WithPos(pos)
			right := rest.Shift(i)

			if !l.compoundSplit(left.Text(), right, cs, pos, depth, allowNoSuggest, "", yield) {
				return
			}

			// Under simplified triple reduction, "busstop" may stand for
			// "buss"+"stop": retry with the shared letter doubled back in.
			if a.SimplifiedTriple && left.At(-1) == right.At(0) {
				extended := left.Add(string(left.At(-1)))
				if !l.compoundSplit(extended.Text(), right, cs, pos, depth, allowNoSuggest, left.Text(), yield) {
					return
				}
			}
		}
	}
}

// compoundSplit decomposes one left piece and recurses on the right;
// displayText, when set, overrides the text recorded for the left part.
func (l *Lookup) compoundSplit(leftText string, right Probe, cs constraints, pos Pos, depth int, allowNoSuggest bool, displayText string, yield func(CompoundForm) bool) bool {
	opts := affixOpts{allowNoSuggest: allowNoSuggest, pos: pos, cs: cs}
	for form := range l.AffixForms(leftText, right.CapType, opts) {
		if displayText != "" {
			form.Text = displayText
		}
		for restForms := range l.compoundsByFlags(right, depth+1, allowNoSuggest) {
			compound := make(CompoundForm, 0, 1+len(restForms))
			compound = append(compound, form)
			compound = append(compound, restForms...)
			if !yield(compound) {
				return false
			}
		}
	}
	return true
}

// compoundsByRules segments against the COMPOUNDRULE set: at each split the
// rule set narrows to those whose partial match still accepts the per-part
// flag sequence; the base case requires a full match.
func (l *Lookup) compoundsByRules(rest Probe, prevFlags []aff.FlagSet, rules []*aff.CompoundRule) iter.Seq[CompoundForm] {
	return func(yield func(CompoundForm) bool) {
		a := l.aff

		if len(prevFlags) > 0 {
			for _, h := range l.dic.Homonyms(rest.Text(), false) {
				flagSeq := appendFlagSets(prevFlags, h.Flags)
				for _, rule := range rules {
					if rule.FullMatch(flagSeq) {
						if !yield(CompoundForm{{Text: rest.Text(), Stem: rest.Text(), Root: h}}) {
							return
						}
						break
					}
				}
			}
		}

		if rest.Len() < 2*a.CompoundMin {
			return
		}
		if a.CompoundWordMax > 0 && len(prevFlags)+1 >= a.CompoundWordMax {
			return
		}

		for i := a.CompoundMin; i <= rest.Len()-a.CompoundMin; i++ {
			beg := rest.Slice(0, i).Text()
			for _, h := range l.dic.Homonyms(beg, false) {
				flagSeq := appendFlagSets(prevFlags, h.Flags)
				var filtered []*aff.CompoundRule
				for _, rule := range rules {
					if rule.PartialMatch(flagSeq) {
						filtered = append(filtered, rule)
					}
				}
				if len(filtered) == 0 {
					continue
				}
				part := AffixForm{Text: beg, Stem: beg, Root: h}
				for restForms := range l.compoundsByRules(rest.Shift(i), flagSeq, filtered) {
					compound := make(CompoundForm, 0, 1+len(restForms))
					compound = append(compound, part)
					compound = append(compound, restForms...)
					if !yield(compound) {
						return
					}
				}
			}
		}
	}
}

func appendFlagSets(prev []aff.FlagSet, next aff.FlagSet) []aff.FlagSet {
	out := make([]aff.FlagSet, 0, len(prev)+1)
	out = append(out, prev...)
	out = append(out, next)
	return out
}

// isBadCompound rejects a generated segmentation on any of the boundary
// conditions: forced capitalization, forbidden parts, boundaries that
// already spell as two words, REP or pattern hits, triple letters, stray
// uppercase, and duplicated final parts.
func (l *Lookup) isBadCompound(compound CompoundForm, capType aff.CapType) bool {
	a := l.aff

	if a.ForceUCase != aff.NoFlag && capType != aff.CapAll && capType != aff.CapInit {
		if l.dic.HasFlag(compound[len(compound)-1].Text, a.ForceUCase, false) {
			return true
		}
	}

	for idx := 0; idx < len(compound)-1; idx++ {
		leftPart := compound[idx]
		rightPart := compound[idx+1]
		left := leftPart.Text
		right := rightPart.Text

		if a.CompoundForbidFlag != aff.NoFlag && l.dic.HasFlag(left, a.CompoundForbidFlag, false) {
			return true
		}

		// A boundary that already spells as two separate words makes the
		// joined compound spurious.
		if l.anyAffixForm(left+" "+right, capType) {
			return true
		}

		if a.CheckCompoundRep && l.repSpellsAsSingle(left+right, capType) {
			return true
		}

		if a.CheckCompoundTriple && hasTripleAtBoundary(left, right) {
			return true
		}

		if a.CheckCompoundCase && hasCaseAtBoundary(left, right) {
			return true
		}

		for _, pattern := range a.CompoundPatterns {
			if matchCompoundPattern(pattern, leftPart, rightPart) {
				return true
			}
		}

		if a.CheckCompoundDup && left == right && idx == len(compound)-2 {
			return true
		}
	}
	return false
}

func (l *Lookup) anyAffixForm(word string, capType aff.CapType) bool {
	for range l.AffixForms(word, capType, affixOpts{allowNoSuggest: true}) {
		return true
	}
	return false
}

// repSpellsAsSingle reports whether some REP substitution over the joined
// boundary yields a word that spellchecks as a single affix form.
func (l *Lookup) repSpellsAsSingle(joined string, capType aff.CapType) bool {
	for _, rep := range l.aff.Rep {
		for _, m := range rep.Matches(joined) {
			candidate := joined[:m[0]] + rep.Replacement + joined[m[1]:]
			if strings.Contains(candidate, " ") {
				continue
			}
			if l.anyAffixForm(candidate, capType) {
				return true
			}
		}
	}
	return false
}

func hasTripleAtBoundary(left, right string) bool {
	lr := []rune(left)
	rr := []rune(right)
	if len(lr) >= 2 && len(rr) >= 1 && lr[len(lr)-1] == lr[len(lr)-2] && lr[len(lr)-1] == rr[0] {
		return true
	}
	if len(lr) >= 1 && len(rr) >= 2 && lr[len(lr)-1] == rr[0] && rr[0] == rr[1] {
		return true
	}
	return false
}

func hasCaseAtBoundary(left, right string) bool {
	lr := []rune(left)
	rr := []rune(right)
	if len(lr) == 0 || len(rr) == 0 {
		return false
	}
	lc, rc := lr[len(lr)-1], rr[0]
	if lc == '-' || rc == '-' {
		return false
	}
	return unicode.IsUpper(lc) || unicode.IsUpper(rc)
}

func matchCompoundPattern(p aff.CompoundPattern, left, right AffixForm) bool {
	leftOK := strings.HasSuffix(left.Stem, p.LeftStem) || (p.LeftNoAffix && left.IsBase())
	if !leftOK {
		return false
	}
	rightOK := strings.HasPrefix(right.Stem, p.RightStem) || (p.RightNoAffix && right.IsBase())
	if !rightOK {
		return false
	}
	if p.LeftFlag != aff.NoFlag && !left.Flags().Has(p.LeftFlag) {
		return false
	}
	if p.RightFlag != aff.NoFlag && !right.Flags().Has(p.RightFlag) {
		return false
	}
	return true
}
