package aff

import (
	"strings"
	"unicode"
)

// CapType classifies the capitalization shape of a word.
type CapType int

const (
	// CapNo means no uppercase letters at all.
	CapNo CapType = iota
	// CapInit means only the first letter is uppercase.
	CapInit
	// CapAll means every cased letter is uppercase.
	CapAll
	// CapHuh means mixed case with a lowercase first letter.
	CapHuh
	// CapHuhInit means mixed case with an uppercase first letter.
	CapHuhInit
)

func (c CapType) String() string {
	switch c {
	case CapNo:
		return "no"
	case CapInit:
		return "init"
	case CapAll:
		return "all"
	case CapHuh:
		return "huh"
	case CapHuhInit:
		return "huhinit"
	}
	return "unknown"
}

// Casing classifies capitalization and produces the cased variants the
// engine tries during lookup and suggestion. Implementations differ only in
// how individual runes fold (standard, German sharp-s, Turkic dotted i).
type Casing interface {
	Guess(s string) CapType
	Lower(s string) string
	Upper(s string) string
	// Variants yields the original plus the downcased forms tried as
	// dictionary lookup keys.
	Variants(s string) (CapType, []string)
	// Corrections yields the forms a suggestion search starts from.
	Corrections(s string) (CapType, []string)
	// Coerce reshapes a candidate to the capitalization class of the
	// original input.
	Coerce(s string, cap CapType) string
	// Capitalize returns the title-cased form (first letter upper, rest lower).
	Capitalize(s string) string
	// LowerFirst downcases only the first letter.
	LowerFirst(s string) string
	// UpperFirst upcases only the first letter.
	UpperFirst(s string) string
}

// runeFold maps a single rune both directions; the standard implementation
// delegates to the unicode tables.
type runeFold interface {
	lowerRune(r rune) rune
	upperRune(r rune) rune
}

type stdFold struct{}

func (stdFold) lowerRune(r rune) rune { return unicode.ToLower(r) }
func (stdFold) upperRune(r rune) rune { return unicode.ToUpper(r) }

// turkicFold maps i/İ and ı/I the Turkic way and defers the rest.
type turkicFold struct{}

func (turkicFold) lowerRune(r rune) rune {
	switch r {
	case 'I':
		return 'ı'
	case 'İ':
		return 'i'
	}
	return unicode.ToLower(r)
}

func (turkicFold) upperRune(r rune) rune {
	switch r {
	case 'i':
		return 'İ'
	case 'ı':
		return 'I'
	}
	return unicode.ToUpper(r)
}

// casing is the standard Casing over a runeFold.
type casing struct {
	fold runeFold
}

// NewCasing returns the default casing.
func NewCasing() Casing { return &casing{fold: stdFold{}} }

// NewTurkicCasing returns a casing with Turkic i/İ and ı/I folding,
// selected when LANG names a Turkic locale.
func NewTurkicCasing() Casing { return &casing{fold: turkicFold{}} }

func (c *casing) Lower(s string) string {
	return strings.Map(c.fold.lowerRune, s)
}

func (c *casing) Upper(s string) string {
	return strings.Map(c.fold.upperRune, s)
}

func (c *casing) LowerFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = c.fold.lowerRune(r[0])
	return string(r)
}

func (c *casing) UpperFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = c.fold.upperRune(r[0])
	return string(r)
}

func (c *casing) Capitalize(s string) string {
	return c.UpperFirst(c.Lower(s))
}

func (c *casing) Guess(s string) CapType {
	return guessCapType(s)
}

func guessCapType(s string) CapType {
	runes := []rune(s)
	if len(runes) == 0 {
		return CapNo
	}

	firstUpper := unicode.IsUpper(runes[0])
	upperRest := 0
	lowerAny := false
	for _, r := range runes {
		if unicode.IsUpper(r) {
			upperRest++
		} else if unicode.IsLower(r) {
			lowerAny = true
		}
	}

	switch {
	case upperRest == 0:
		return CapNo
	case firstUpper && upperRest == 1:
		return CapInit
	case !lowerAny:
		return CapAll
	case firstUpper:
		return CapHuhInit
	default:
		return CapHuh
	}
}

func (c *casing) Variants(s string) (CapType, []string) {
	return capVariants(c, s, c.Guess(s))
}

func capVariants(c Casing, s string, cap CapType) (CapType, []string) {
	switch cap {
	case CapInit:
		return cap, []string{s, c.Lower(s)}
	case CapHuhInit:
		return cap, []string{s, c.LowerFirst(s)}
	case CapAll:
		return cap, []string{s, c.Lower(s), c.Capitalize(s)}
	default:
		return cap, []string{s}
	}
}

func (c *casing) Corrections(s string) (CapType, []string) {
	return capCorrections(c, s, c.Guess(s))
}

func capCorrections(c Casing, s string, cap CapType) (CapType, []string) {
	switch cap {
	case CapInit:
		return cap, []string{s, c.Lower(s)}
	case CapHuhInit:
		return cap, []string{c.LowerFirst(s), s, c.Lower(s), c.Capitalize(s)}
	case CapHuh:
		return cap, []string{s, c.Lower(s)}
	case CapAll:
		return cap, []string{c.Lower(s), s, c.Capitalize(s)}
	default:
		return cap, []string{s}
	}
}

func (c *casing) Coerce(s string, cap CapType) string {
	return capCoerce(c, s, cap)
}

func capCoerce(c Casing, s string, cap CapType) string {
	switch cap {
	case CapInit, CapHuhInit:
		return c.UpperFirst(s)
	case CapAll:
		return c.Upper(s)
	default:
		return s
	}
}

// germanCasing treats ß as case-neutral: a word whose only non-uppercase
// letters are ß still counts as all-caps, matching CHECKSHARPS semantics.
type germanCasing struct {
	casing
}

// NewGermanCasing returns the casing selected by CHECKSHARPS.
func NewGermanCasing() Casing { return &germanCasing{casing{fold: stdFold{}}} }

func (g *germanCasing) Guess(s string) CapType {
	if strings.ContainsRune(s, 'ß') {
		stripped := strings.ReplaceAll(s, "ß", "")
		if stripped != "" && guessCapType(stripped) == CapAll {
			return CapAll
		}
	}
	return guessCapType(s)
}

func (g *germanCasing) Variants(s string) (CapType, []string) {
	return capVariants(g, s, g.Guess(s))
}

func (g *germanCasing) Corrections(s string) (CapType, []string) {
	return capCorrections(g, s, g.Guess(s))
}

func (g *germanCasing) Coerce(s string, cap CapType) string {
	return capCoerce(g, s, cap)
}

// SharpSVariants lists the forms of a lowercased all-caps word with each
// single "ss" run restored to ß, used by sharp-s aware lookup.
func SharpSVariants(lower string) []string {
	var out []string
	for i := 0; i+1 < len(lower); i++ {
		if lower[i] == 's' && lower[i+1] == 's' {
			out = append(out, lower[:i]+"ß"+lower[i+2:])
		}
	}
	return out
}
