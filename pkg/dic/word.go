// Package dic holds the parsed word list and its homonym index, the ground
// truth for dictionary membership.
package dic

import (
	"strings"

	"github.com/bastiangx/spellserve/pkg/aff"
)

// Word is one word-list entry: a stem with its flag set, optional
// morphological data and the capitalization shape computed at parse time.
type Word struct {
	Stem         string
	Flags        aff.FlagSet
	Data         map[string][]string
	AltSpellings []string
	CapType      aff.CapType
}

// HasFlag reports whether the word carries f.
func (w *Word) HasFlag(f aff.Flag) bool {
	return w.Flags.Has(f)
}

// DataValues returns the values stored under a morphological key like "st".
func (w *Word) DataValues(key string) []string {
	if w.Data == nil {
		return nil
	}
	return w.Data[key]
}

func (w *Word) String() string {
	if len(w.Flags) == 0 {
		return w.Stem
	}
	parts := make([]string, 0, len(w.Flags))
	for f := range w.Flags {
		parts = append(parts, string(f))
	}
	return w.Stem + "/" + strings.Join(parts, ",")
}
