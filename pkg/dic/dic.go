package dic

import (
	"github.com/bastiangx/spellserve/pkg/aff"
)

// Dic indexes Words by stem, case-sensitively and case-insensitively.
// It is immutable once loading finishes.
type Dic struct {
	Words []*Word

	index      map[string][]*Word
	lowerIndex map[string][]*Word
	casing     aff.Casing
}

// New returns an empty dictionary using the given casing for the
// case-insensitive index.
func New(casing aff.Casing) *Dic {
	if casing == nil {
		casing = aff.NewCasing()
	}
	return &Dic{
		index:      make(map[string][]*Word),
		lowerIndex: make(map[string][]*Word),
		casing:     casing,
	}
}

// Add appends a word and indexes it. Only the loaders call this.
func (d *Dic) Add(w *Word) {
	d.Words = append(d.Words, w)
	d.index[w.Stem] = append(d.index[w.Stem], w)
	lower := d.casing.Lower(w.Stem)
	d.lowerIndex[lower] = append(d.lowerIndex[lower], w)
}

// Homonyms returns every word whose stem matches the query. With ignoreCase
// the match is on the lowercased stem instead.
func (d *Dic) Homonyms(stem string, ignoreCase bool) []*Word {
	if ignoreCase {
		return d.lowerIndex[d.casing.Lower(stem)]
	}
	return d.index[stem]
}

// HasFlag reports whether any homonym of stem carries flag; with forAll it
// requires every homonym to carry it.
func (d *Dic) HasFlag(stem string, flag aff.Flag, forAll bool) bool {
	homonyms := d.index[stem]
	if len(homonyms) == 0 {
		return false
	}
	for _, w := range homonyms {
		if w.HasFlag(flag) {
			if !forAll {
				return true
			}
		} else if forAll {
			return false
		}
	}
	return forAll
}
