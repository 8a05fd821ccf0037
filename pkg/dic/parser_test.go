package dic

import (
	"strings"
	"testing"

	"github.com/bastiangx/spellserve/pkg/aff"
)

func testAff(t *testing.T, src string) *aff.Aff {
	t.Helper()
	a, err := aff.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func parseDic(t *testing.T, affSrc, dicSrc string) *Dic {
	t.Helper()
	a := testAff(t, affSrc)
	d, err := Parse(strings.NewReader(dicSrc), a)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestParseBasic(t *testing.T) {
	d := parseDic(t, "", "3\nhello/AB\nworld\nfoo/C\n")

	if len(d.Words) != 3 {
		t.Fatalf("parsed %d words, want 3", len(d.Words))
	}

	hello := d.Homonyms("hello", false)
	if len(hello) != 1 {
		t.Fatalf("Homonyms(hello) = %v", hello)
	}
	if !hello[0].Flags.Has("A") || !hello[0].Flags.Has("B") {
		t.Errorf("hello flags = %v", hello[0].Flags)
	}

	world := d.Homonyms("world", false)
	if len(world) != 1 || len(world[0].Flags) != 0 {
		t.Errorf("world entry = %v", world)
	}
}

func TestParseWithoutCountLine(t *testing.T) {
	d := parseDic(t, "", "hello/A\nworld\n")
	if len(d.Words) != 2 {
		t.Errorf("parsed %d words, want 2", len(d.Words))
	}
}

func TestParseEscapedSlash(t *testing.T) {
	d := parseDic(t, "", "1\nand\\/or/X\n")
	words := d.Homonyms("and/or", false)
	if len(words) != 1 {
		t.Fatalf("escaped slash stem not found: %v", d.Words)
	}
	if !words[0].Flags.Has("X") {
		t.Errorf("flags = %v", words[0].Flags)
	}
}

func TestParseSpacedStem(t *testing.T) {
	d := parseDic(t, "", "1\na lot\n")
	if len(d.Homonyms("a lot", false)) != 1 {
		t.Errorf("stem with space not preserved: %v", d.Words)
	}
}

func TestParseMorphData(t *testing.T) {
	d := parseDic(t, "", "1\nfeet\tst:foot is:plural\n")
	words := d.Homonyms("feet", false)
	if len(words) != 1 {
		t.Fatalf("feet not found: %v", d.Words)
	}
	if got := words[0].DataValues("st"); len(got) != 1 || got[0] != "foot" {
		t.Errorf("st data = %v", got)
	}
	if got := words[0].DataValues("is"); len(got) != 1 || got[0] != "plural" {
		t.Errorf("is data = %v", got)
	}
}

func TestParsePhAddsRep(t *testing.T) {
	a := testAff(t, "")
	_, err := Parse(strings.NewReader("1\nwhich\tph:wich\n"), a)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Rep) != 1 {
		t.Fatalf("ph: must fold into REP, got %v", a.Rep)
	}
	if a.Rep[0].Replacement != "which" {
		t.Errorf("Rep replacement = %q", a.Rep[0].Replacement)
	}
}

func TestCapTypeComputed(t *testing.T) {
	d := parseDic(t, "", "2\niPhone\nBerlin\n")
	if got := d.Homonyms("iPhone", false)[0].CapType; got != aff.CapHuh {
		t.Errorf("iPhone CapType = %v, want CapHuh", got)
	}
	if got := d.Homonyms("Berlin", false)[0].CapType; got != aff.CapInit {
		t.Errorf("Berlin CapType = %v, want CapInit", got)
	}
}

func TestHomonymsIgnoreCase(t *testing.T) {
	d := parseDic(t, "", "2\nBerlin/X\nberlin/Y\n")

	exact := d.Homonyms("Berlin", false)
	if len(exact) != 1 || !exact[0].Flags.Has("X") {
		t.Errorf("exact homonyms = %v", exact)
	}

	all := d.Homonyms("BERLIN", true)
	if len(all) != 2 {
		t.Errorf("case-insensitive homonyms = %v", all)
	}
}

func TestHasFlag(t *testing.T) {
	d := parseDic(t, "", "3\nbank/A\nbank/B\nsolo/A\n")

	tests := []struct {
		name   string
		stem   string
		flag   aff.Flag
		forAll bool
		want   bool
	}{
		{"any hit", "bank", "A", false, true},
		{"any miss", "bank", "Z", false, false},
		{"all miss on split flags", "bank", "A", true, false},
		{"all hit single homonym", "solo", "A", true, true},
		{"unknown stem", "nope", "A", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.HasFlag(tt.stem, tt.flag, tt.forAll); got != tt.want {
				t.Errorf("HasFlag(%q, %q, %v) = %v, want %v", tt.stem, tt.flag, tt.forAll, got, tt.want)
			}
		})
	}
}

func TestNumericFlagAlias(t *testing.T) {
	affSrc := "AF 2\nAF AB\nAF C\n"
	d := parseDic(t, affSrc, "1\nword/2\n")
	w := d.Homonyms("word", false)
	if len(w) != 1 || !w[0].Flags.Has("C") {
		t.Errorf("alias flags = %v", w)
	}
}
