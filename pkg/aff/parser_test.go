package aff

import (
	"strings"
	"testing"
)

const sampleAff = `
SET UTF-8
LANG en_US
TRY esianrtolcdugmphbyfvkwzESIANRTOLCDUGMPHBYFVKWZ'
KEY qwertyuiop|asdfghjkl|zxcvbnm

NOSUGGEST !
KEEPCASE K
FORBIDDENWORD *
COMPOUNDMIN 2
MAXNGRAMSUGS 6

REP 2
REP alot a_lot
REP f ph

MAP 1
MAP aáà

BREAK 2
BREAK -
BREAK ^-

COMPOUNDRULE 1
COMPOUNDRULE AB*C

ICONV 1
ICONV ʼ '

PFX B Y 1
PFX B 0 re .

SFX A Y 2
SFX A 0 s .
SFX A y ies [^aeiou]y
`

func parseSample(t *testing.T) *Aff {
	t.Helper()
	a, err := Parse(strings.NewReader(sampleAff))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return a
}

func TestParseDirectives(t *testing.T) {
	a := parseSample(t)

	if a.Lang != "en_US" {
		t.Errorf("Lang = %q", a.Lang)
	}
	if a.NoSuggest != "!" || a.KeepCase != "K" || a.ForbiddenWord != "*" {
		t.Errorf("flag directives parsed wrong: %q %q %q", a.NoSuggest, a.KeepCase, a.ForbiddenWord)
	}
	if a.CompoundMin != 2 {
		t.Errorf("CompoundMin = %d, want 2", a.CompoundMin)
	}
	if a.MaxNgramSugs != 6 {
		t.Errorf("MaxNgramSugs = %d, want 6", a.MaxNgramSugs)
	}
	if !strings.HasPrefix(a.Try, "esian") {
		t.Errorf("Try = %q", a.Try)
	}
}

func TestParseTables(t *testing.T) {
	a := parseSample(t)

	if len(a.Rep) != 2 {
		t.Fatalf("len(Rep) = %d, want 2", len(a.Rep))
	}
	if a.Rep[0].Replacement != "a lot" {
		t.Errorf("Rep[0].Replacement = %q", a.Rep[0].Replacement)
	}
	if len(a.Map) != 1 || len(a.Map[0]) != 3 {
		t.Errorf("Map = %v", a.Map)
	}
	if len(a.Break) != 2 {
		t.Errorf("len(Break) = %d, want 2", len(a.Break))
	}
	if len(a.CompoundRules) != 1 {
		t.Fatalf("len(CompoundRules) = %d", len(a.CompoundRules))
	}
	if a.IConv == nil {
		t.Fatal("IConv not built")
	}
	if got := a.IConv.Apply("canʼt"); got != "can't" {
		t.Errorf("IConv.Apply = %q", got)
	}
}

func TestParseAffixClasses(t *testing.T) {
	a := parseSample(t)

	prefixes := a.Prefixes["B"]
	if len(prefixes) != 1 {
		t.Fatalf("Prefixes[B] = %v", prefixes)
	}
	if prefixes[0].Add != "re" || prefixes[0].Strip != "" || !prefixes[0].Cross {
		t.Errorf("PFX B entry = %+v", prefixes[0])
	}

	suffixes := a.Suffixes["A"]
	if len(suffixes) != 2 {
		t.Fatalf("Suffixes[A] = %v", suffixes)
	}
	if suffixes[1].Strip != "y" || suffixes[1].Add != "ies" {
		t.Errorf("SFX A second entry = %+v", suffixes[1])
	}
	if !suffixes[1].On("flies") {
		t.Error("SFX A ies entry must apply to flies")
	}
}

func TestParseAffixRowFlags(t *testing.T) {
	src := `
SFX U Y 1
SFX U 0 able/AB .
`
	a, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	entries := a.Suffixes["U"]
	if len(entries) != 1 {
		t.Fatalf("Suffixes[U] = %v", entries)
	}
	if entries[0].Add != "able" {
		t.Errorf("Add = %q, want able", entries[0].Add)
	}
	if !entries[0].Flags.Has("A") || !entries[0].Flags.Has("B") {
		t.Errorf("auxiliary flags = %v, want {A B}", entries[0].Flags)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"truncated table", "REP 3\nREP a b\n"},
		{"malformed count", "REP x\n"},
		{"malformed row", "REP 1\nOTHER a b\n"},
		{"bad affix header", "SFX\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.src)); err == nil {
				t.Errorf("expected parse error for %q", tt.src)
			}
		})
	}
}

func TestParseUnknownDirectiveIgnored(t *testing.T) {
	a, err := Parse(strings.NewReader("FANCYNEWTHING 42\nCOMPOUNDMIN 4\n"))
	if err != nil {
		t.Fatalf("unknown directive must not fail the parse: %v", err)
	}
	if a.CompoundMin != 4 {
		t.Errorf("CompoundMin = %d, want 4", a.CompoundMin)
	}
}

func TestDefaultBreakPatterns(t *testing.T) {
	a, err := Parse(strings.NewReader("SET UTF-8\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Break) != 3 {
		t.Errorf("default Break table has %d entries, want 3", len(a.Break))
	}
}

func TestCasingSelection(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want CapType
		word string
	}{
		{"german sharps", "CHECKSHARPS\n", CapAll, "STRAßE"},
		{"turkic lang", "LANG tr_TR\n", CapNo, "ılık"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			if got := a.Casing.Guess(tt.word); got != tt.want {
				t.Errorf("Guess(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}
