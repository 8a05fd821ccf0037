// Package aff models a parsed Hunspell affix description: flags, affix
// tables with their lookup tries, casing rules, and every suggestion and
// compounding table the engine consumes.
package aff

import "strings"

// Default limits, matching Hunspell's built-ins.
const (
	DefaultCompoundMin  = 3
	DefaultMaxCpdSugs   = 3
	DefaultMaxNgramSugs = 4
	DefaultMaxDiff      = -1
	DefaultKey          = "qwertyuiop|asdfghjkl|zxcvbnm"
)

// Aff is the in-memory affix description. Field names follow the directive
// names of the source format. After Init only Rep changes: the word-list
// parser appends a REP pair for each ph: field.
type Aff struct {
	FlagMode FlagMode
	Lang     string
	Ignore   string
	Key      string
	Try      string

	// Directive flags.
	NoSuggest          Flag
	KeepCase           Flag
	NeedAffix          Flag
	Circumfix          Flag
	ForbiddenWord      Flag
	Warn               Flag
	OnlyInCompound     Flag
	CompoundFlag       Flag
	CompoundBegin      Flag
	CompoundMiddle     Flag
	CompoundEnd        Flag
	CompoundPermitFlag Flag
	CompoundForbidFlag Flag
	ForceUCase         Flag

	// Booleans.
	ComplexPrefixes     bool
	FullStrip           bool
	NoSplitSugs         bool
	CheckSharps         bool
	CheckCompoundCase   bool
	CheckCompoundDup    bool
	CheckCompoundRep    bool
	CheckCompoundTriple bool
	SimplifiedTriple    bool
	OnlyMaxDiff         bool
	ForbidWarn          bool

	// Numbers.
	CompoundMin     int
	CompoundWordMax int
	MaxCpdSugs      int
	MaxNgramSugs    int
	MaxDiff         int

	// Tables.
	Rep              []RepPattern
	Map              []MapGroup
	Break            []BreakPattern
	CompoundRules    []*CompoundRule
	CompoundPatterns []CompoundPattern
	IConv            *ConvTable
	OConv            *ConvTable
	Phone            *PhonetTable
	AF               []FlagSet
	AM               [][]string

	Prefixes map[Flag][]*Prefix
	Suffixes map[Flag][]*Suffix

	prefixIndex *affixIndex[*Prefix]
	suffixIndex *affixIndex[*Suffix]

	Casing Casing
}

// New returns an Aff with Hunspell defaults; the parser fills it in and
// calls Init.
func New() *Aff {
	return &Aff{
		Key:          DefaultKey,
		CompoundMin:  DefaultCompoundMin,
		MaxCpdSugs:   DefaultMaxCpdSugs,
		MaxNgramSugs: DefaultMaxNgramSugs,
		MaxDiff:      DefaultMaxDiff,
		Prefixes:     make(map[Flag][]*Prefix),
		Suffixes:     make(map[Flag][]*Suffix),
	}
}

// Init finalizes the description: picks the casing, installs default BREAK
// patterns, and builds the affix tries. Must be called once after parsing.
func (a *Aff) Init() {
	switch {
	case a.CheckSharps:
		a.Casing = NewGermanCasing()
	case isTurkicLang(a.Lang):
		a.Casing = NewTurkicCasing()
	default:
		a.Casing = NewCasing()
	}

	// nil means no BREAK directive at all; an empty table means "BREAK 0"
	if a.Break == nil {
		for _, text := range []string{"-", "^-", "-$"} {
			if bp, err := NewBreakPattern(text); err == nil {
				a.Break = append(a.Break, bp)
			}
		}
	}

	a.prefixIndex = newAffixIndex[*Prefix]()
	for _, entries := range a.Prefixes {
		for _, p := range entries {
			a.prefixIndex.add(p.Add, p)
		}
	}
	a.suffixIndex = newAffixIndex[*Suffix]()
	for _, entries := range a.Suffixes {
		for _, s := range entries {
			a.suffixIndex.add(Reverse(s.Add), s)
		}
	}
}

// PrefixSegments visits every prefix entry whose add string starts word.
func (a *Aff) PrefixSegments(word string, visit func(*Prefix) bool) {
	a.prefixIndex.segments(word, visit)
}

// SuffixSegments visits every suffix entry whose add string ends word.
func (a *Aff) SuffixSegments(word string, visit func(*Suffix) bool) {
	a.suffixIndex.segments(Reverse(word), visit)
}

// HasCompounding reports whether any compounding regime is configured.
func (a *Aff) HasCompounding() bool {
	return a.CompoundFlag != NoFlag || a.CompoundBegin != NoFlag || len(a.CompoundRules) > 0
}

// EffectiveMaxDiff folds the -1 sentinel into the documented default of 5.
func (a *Aff) EffectiveMaxDiff() int {
	if a.MaxDiff < 0 || a.MaxDiff > 10 {
		return 5
	}
	return a.MaxDiff
}

func isTurkicLang(lang string) bool {
	lang = strings.ToLower(lang)
	for _, code := range []string{"tr", "az", "crh"} {
		if lang == code || strings.HasPrefix(lang, code+"_") {
			return true
		}
	}
	return false
}
