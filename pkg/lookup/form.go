// Package lookup implements the acceptance core: affix decomposition, form
// validation and compound segmentation over a parsed affix description and
// word list.
package lookup

import (
	"github.com/bastiangx/spellserve/pkg/aff"
	"github.com/bastiangx/spellserve/pkg/dic"
)

// Pos is a word's position inside a compound; PosNone means the word is
// checked on its own.
type Pos int

const (
	PosNone Pos = iota
	PosBegin
	PosMiddle
	PosEnd
)

// AffixForm is one decomposition hypothesis: the surface text, the stem it
// implies, up to two suffixes and two prefixes, and the dictionary word the
// stem resolved to (nil until bound).
//
// Prefix and Suffix are the stem-adjacent entries whose class flag must
// appear in the form's flag set; Prefix2 and Suffix2 are the outermost
// second-level entries, constrained during decomposition instead.
type AffixForm struct {
	Text string
	Stem string

	Prefix  *aff.Prefix
	Prefix2 *aff.Prefix
	Suffix  *aff.Suffix
	Suffix2 *aff.Suffix

	Root *dic.Word
}

// IsBase reports whether the form carries no affixes at all.
func (f AffixForm) IsBase() bool {
	return f.Prefix == nil && f.Prefix2 == nil && f.Suffix == nil && f.Suffix2 == nil
}

// Flags is the form's outward flag set: the root's flags plus the auxiliary
// flags of the stem-adjacent prefix and suffix. Second-level affixes do not
// contribute.
func (f AffixForm) Flags() aff.FlagSet {
	flags := aff.NewFlagSet()
	if f.Root != nil {
		flags = flags.Union(f.Root.Flags)
	}
	if f.Prefix != nil {
		flags = flags.Union(f.Prefix.Flags)
	}
	if f.Suffix != nil {
		flags = flags.Union(f.Suffix.Flags)
	}
	return flags
}

// affixFlagSets yields the auxiliary flag set of every affix on the form.
func (f AffixForm) affixFlagSets() []aff.FlagSet {
	var out []aff.FlagSet
	if f.Prefix2 != nil {
		out = append(out, f.Prefix2.Flags)
	}
	if f.Prefix != nil {
		out = append(out, f.Prefix.Flags)
	}
	if f.Suffix != nil {
		out = append(out, f.Suffix.Flags)
	}
	if f.Suffix2 != nil {
		out = append(out, f.Suffix2.Flags)
	}
	return out
}

// CompoundForm is an ordered segmentation of a word; the concatenation of
// the parts' Text equals the checked surface.
type CompoundForm []AffixForm

// constraints restrict decomposition during compounding: flags required on
// the prefix and suffix, and flags forbidden anywhere on an affix.
type constraints struct {
	prefixFlags []aff.Flag
	suffixFlags []aff.Flag
	forbidden   []aff.Flag
}
