package lookup

import "github.com/bastiangx/spellserve/pkg/aff"

// isGoodForm decides whether a dictionary-bound decomposition is licensed
// in its context: suggestion eligibility, capitalization, NEEDAFFIX,
// affix flag membership, circumfix symmetry and the compound-position gate.
func (l *Lookup) isGoodForm(form AffixForm, pos Pos, capType aff.CapType, allowNoSuggest bool) bool {
	a := l.aff
	if form.Root == nil {
		return false
	}
	rootFlags := form.Root.Flags
	allFlags := form.Flags()

	if !allowNoSuggest && rootFlags.Has(a.NoSuggest) {
		return false
	}

	// KEEPCASE roots only match in their recorded shape; sharp-s stems are
	// exempt in German mode since ß/SS conversions reshape them anyway.
	if capType != form.Root.CapType && rootFlags.Has(a.KeepCase) {
		if !(a.CheckSharps && containsSharpS(form.Root.Stem)) {
			return false
		}
	}

	if a.NeedAffix != aff.NoFlag {
		if form.IsBase() {
			if rootFlags.Has(a.NeedAffix) {
				return false
			}
		} else {
			all := true
			for _, fs := range form.affixFlagSets() {
				if !fs.Has(a.NeedAffix) {
					all = false
					break
				}
			}
			if all {
				return false
			}
		}
	}

	if form.Prefix != nil && !allFlags.Has(form.Prefix.Flag) {
		return false
	}
	if form.Suffix != nil && !allFlags.Has(form.Suffix.Flag) {
		return false
	}

	if a.Circumfix != aff.NoFlag {
		prefixCircum := form.Prefix != nil && form.Prefix.Flags.Has(a.Circumfix)
		suffixCircum := form.Suffix != nil && form.Suffix.Flags.Has(a.Circumfix)
		if prefixCircum != suffixCircum {
			return false
		}
	}

	// Compound position gate: three independent checks, one per position.
	switch pos {
	case PosNone:
		return !allFlags.Has(a.OnlyInCompound)
	case PosBegin:
		return allFlags.Has(a.CompoundFlag) || allFlags.Has(a.CompoundBegin)
	case PosMiddle:
		return allFlags.Has(a.CompoundFlag) || allFlags.Has(a.CompoundMiddle)
	case PosEnd:
		return allFlags.Has(a.CompoundFlag) || allFlags.Has(a.CompoundEnd)
	}
	return false
}

func containsSharpS(s string) bool {
	for _, r := range s {
		if r == 'ß' {
			return true
		}
	}
	return false
}
