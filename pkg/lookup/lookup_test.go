package lookup

import (
	"strings"
	"testing"

	"github.com/bastiangx/spellserve/pkg/aff"
	"github.com/bastiangx/spellserve/pkg/dic"
)

func engine(t *testing.T, affSrc, dicSrc string) *Lookup {
	t.Helper()
	a, err := aff.Parse(strings.NewReader(affSrc))
	if err != nil {
		t.Fatalf("aff.Parse: %v", err)
	}
	d, err := dic.Parse(strings.NewReader(dicSrc), a)
	if err != nil {
		t.Fatalf("dic.Parse: %v", err)
	}
	return New(a, d)
}

func TestBasicSuffix(t *testing.T) {
	l := engine(t,
		"SFX A Y 1\nSFX A 0 s .\n",
		"1\nhello/A\n")

	tests := []struct {
		word string
		want bool
	}{
		{"hello", true},
		{"hellos", true},
		{"hellox", false},
		{"shello", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := l.Check(tt.word); got != tt.want {
				t.Errorf("Check(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestSuffixWithStripAndCondition(t *testing.T) {
	l := engine(t,
		"SFX A Y 2\nSFX A 0 s [^y]\nSFX A y ies y\n",
		"2\nfly/A\ncat/A\n")

	tests := []struct {
		word string
		want bool
	}{
		{"flies", true},
		{"cats", true},
		{"flys", false}, // condition [^y] blocks bare s after y
		{"caties", false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := l.Check(tt.word); got != tt.want {
				t.Errorf("Check(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestCrossProduct(t *testing.T) {
	l := engine(t,
		"PFX B Y 1\nPFX B 0 re .\nSFX A Y 1\nSFX A 0 ing .\n",
		"1\nwalk/AB\n")

	tests := []struct {
		word string
		want bool
	}{
		{"walk", true},
		{"rewalk", true},
		{"walking", true},
		{"rewalking", true},
		{"ingwalk", false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := l.Check(tt.word); got != tt.want {
				t.Errorf("Check(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestCrossProductRequiresBothFlags(t *testing.T) {
	l := engine(t,
		"PFX B Y 1\nPFX B 0 re .\nSFX A Y 1\nSFX A 0 ing .\n",
		"2\nwalk/A\njump/B\n")

	if l.Check("rewalking") {
		t.Error("rewalking must fail: walk lacks the prefix flag")
	}
	if l.Check("rejumping") {
		t.Error("rejumping must fail: jump lacks the suffix flag")
	}
	if !l.Check("walking") || !l.Check("rejump") {
		t.Error("single-affix forms must still check")
	}
}

func TestNoCrossProductBit(t *testing.T) {
	l := engine(t,
		"PFX B N 1\nPFX B 0 re .\nSFX A Y 1\nSFX A 0 ing .\n",
		"1\nwalk/AB\n")

	if l.Check("rewalking") {
		t.Error("rewalking must fail without the cross-product bit on the prefix")
	}
	if !l.Check("rewalk") || !l.Check("walking") {
		t.Error("individual affixes must still apply")
	}
}

func TestDoubleSuffix(t *testing.T) {
	// outer suffix "s" attaches through the inner suffix's auxiliary flag
	l := engine(t,
		"SFX A Y 1\nSFX A 0 er/S .\nSFX S Y 1\nSFX S 0 s .\n",
		"1\nwork/A\n")

	tests := []struct {
		word string
		want bool
	}{
		{"work", true},
		{"worker", true},
		{"workers", true},
		{"works", false}, // S is not on the root, only on the er suffix
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := l.Check(tt.word); got != tt.want {
				t.Errorf("Check(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestKeepCase(t *testing.T) {
	l := engine(t,
		"KEEPCASE K\n",
		"2\niPhone/K\nBerlin\n")

	tests := []struct {
		word string
		want bool
	}{
		{"iPhone", true},
		{"iphone", false},
		{"IPHONE", false},
		{"Berlin", true},
		{"berlin", false}, // lowercase variant of INIT entry is not generated
		{"BERLIN", true},  // all-caps matches any entry shape
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := l.Check(tt.word); got != tt.want {
				t.Errorf("Check(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestForbiddenWord(t *testing.T) {
	l := engine(t,
		"FORBIDDENWORD *\nSFX A Y 1\nSFX A 0 s .\n",
		"2\nfoo/A\nfoos/*\n")

	if !l.Check("foo") {
		t.Error("foo must be correct")
	}
	if l.Check("foos") {
		t.Error("foos is forbidden and must not check")
	}
	if !l.IsForbidden("foos") {
		t.Error("IsForbidden(foos) must be true")
	}
	if l.IsForbidden("foo") {
		t.Error("IsForbidden(foo) must be false")
	}
}

func TestNeedAffix(t *testing.T) {
	l := engine(t,
		"NEEDAFFIX X\nSFX A Y 1\nSFX A 0 s .\n",
		"1\nstemonly/AX\n")

	if l.Check("stemonly") {
		t.Error("a NEEDAFFIX root must not check bare")
	}
	if !l.Check("stemonlys") {
		t.Error("the affixed form must check")
	}
}

func TestOnlyInCompound(t *testing.T) {
	l := engine(t,
		"COMPOUNDFLAG C\nONLYINCOMPOUND O\nCOMPOUNDMIN 3\n",
		"2\nfoo/CO\nbar/C\n")

	if l.Check("foo") {
		t.Error("ONLYINCOMPOUND word must not check standalone")
	}
	if !l.Check("foobar") {
		t.Error("the compound must check")
	}
}

func TestCircumfix(t *testing.T) {
	l := engine(t,
		"CIRCUMFIX X\nPFX P Y 1\nPFX P 0 ge/X .\nSFX S Y 2\nSFX S 0 t/X .\nSFX S 0 en .\n",
		"1\nlauf/PS\n")

	tests := []struct {
		word string
		want bool
	}{
		{"gelauft", true},   // circumfix on both sides
		{"gelaufen", false}, // circumfix prefix without circumfix suffix
		{"laufen", true},    // no circumfix on either side
		{"lauft", false},    // circumfix suffix without prefix
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := l.Check(tt.word); got != tt.want {
				t.Errorf("Check(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestCompoundFlag(t *testing.T) {
	l := engine(t,
		"COMPOUNDFLAG C\nCOMPOUNDMIN 3\n",
		"2\nfoo/C\nbar/C\n")

	tests := []struct {
		word string
		want bool
	}{
		{"foobar", true},
		{"barfoo", true},
		{"foobarfoo", true},
		{"foo", true},
		{"fo", false},
		{"fooba", false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := l.Check(tt.word); got != tt.want {
				t.Errorf("Check(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestCompoundPositionFlags(t *testing.T) {
	l := engine(t,
		"COMPOUNDBEGIN B\nCOMPOUNDMIDDLE M\nCOMPOUNDEND E\nCOMPOUNDMIN 3\n",
		"3\naaa/B\nbbb/M\nccc/E\n")

	tests := []struct {
		word string
		want bool
	}{
		{"aaaccc", true},
		{"aaabbbccc", true},
		{"cccaaa", false},
		{"bbbccc", false},
		{"aaabbb", false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := l.Check(tt.word); got != tt.want {
				t.Errorf("Check(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestCompoundWordMax(t *testing.T) {
	l := engine(t,
		"COMPOUNDFLAG C\nCOMPOUNDMIN 3\nCOMPOUNDWORDMAX 2\n",
		"1\nfoo/C\n")

	if !l.Check("foofoo") {
		t.Error("two parts must be allowed")
	}
	if l.Check("foofoofoo") {
		t.Error("three parts exceed COMPOUNDWORDMAX 2")
	}
}

func TestCompoundRules(t *testing.T) {
	l := engine(t,
		"COMPOUNDMIN 3\nCOMPOUNDRULE 1\nCOMPOUNDRULE AB*C\n",
		"3\nred/A\nblue/B\ngreen/C\n")

	tests := []struct {
		word string
		want bool
	}{
		{"redgreen", true},
		{"redbluegreen", true},
		{"redbluebluegreen", true},
		{"redred", false},
		{"greenred", false},
		{"bluegreen", false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := l.Check(tt.word); got != tt.want {
				t.Errorf("Check(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestCheckCompoundDup(t *testing.T) {
	l := engine(t,
		"COMPOUNDFLAG C\nCOMPOUNDMIN 3\nCHECKCOMPOUNDDUP\n",
		"2\nfoo/C\nbar/C\n")

	if l.Check("foofoo") {
		t.Error("duplicated final parts must be rejected")
	}
	if !l.Check("foobar") {
		t.Error("distinct parts must still check")
	}
}

func TestCheckCompoundTriple(t *testing.T) {
	l := engine(t,
		"COMPOUNDFLAG C\nCOMPOUNDMIN 3\nCHECKCOMPOUNDTRIPLE\n",
		"2\nfall/C\nlike/C\n")

	if l.Check("falllike") {
		t.Error("triple letter at the boundary must be rejected")
	}
	if !l.Check("likefall") {
		t.Error("clean boundary must check")
	}
}

func TestSimplifiedTriple(t *testing.T) {
	l := engine(t,
		"COMPOUNDFLAG C\nCOMPOUNDMIN 3\nCHECKCOMPOUNDTRIPLE\nSIMPLIFIEDTRIPLE\n",
		"2\nbuss/C\nstopp/C\n")

	// "busstopp" stands for buss+stopp with one s elided
	if !l.Check("busstopp") {
		t.Error("simplified triple form must check")
	}
}

func TestCheckCompoundCase(t *testing.T) {
	l := engine(t,
		"COMPOUNDFLAG C\nCOMPOUNDMIN 3\nCHECKCOMPOUNDCASE\n",
		"2\nfoo/C\nBar/C\n")

	if l.Check("fooBar") {
		t.Error("uppercase at the boundary must be rejected")
	}
}

func TestBreakWord(t *testing.T) {
	l := engine(t, "", "2\nfoo\nbar\n")

	tests := []struct {
		word string
		want bool
	}{
		{"foo-bar", true},
		{"foo-foo-bar", true},
		{"foo-baz", false},
		{"-foo", true}, // leading dash split
		{"foo-", true}, // trailing dash split
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := l.Check(tt.word); got != tt.want {
				t.Errorf("Check(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestIdempotence(t *testing.T) {
	l := engine(t,
		"SFX A Y 1\nSFX A 0 s .\nCOMPOUNDFLAG C\nCOMPOUNDMIN 3\n",
		"2\nhello/A\nfoo/C\n")

	for _, word := range []string{"hellos", "nothere", "foofoo"} {
		first := l.Check(word)
		for i := 0; i < 3; i++ {
			if got := l.Check(word); got != first {
				t.Errorf("Check(%q) changed between calls", word)
			}
		}
	}
}

func TestRoundTripForms(t *testing.T) {
	l := engine(t,
		"PFX B Y 1\nPFX B 0 re .\nSFX A Y 1\nSFX A 0 ing .\n",
		"1\nwalk/AB\n")

	capType := l.Aff().Casing.Guess("rewalking")
	for form := range l.AffixForms("rewalking", capType, affixOpts{allowNoSuggest: true}) {
		// re-applying the recorded affixes to the stem restores the text
		surface := form.Stem
		if form.Suffix != nil {
			surface = strings.TrimSuffix(surface, form.Suffix.Strip) + form.Suffix.Add
		}
		if form.Prefix != nil {
			surface = form.Prefix.Add + strings.TrimPrefix(surface, form.Prefix.Strip)
		}
		if surface != form.Text {
			t.Errorf("round trip %q + affixes = %q, want %q", form.Stem, surface, form.Text)
		}
	}
}

func TestCompoundIntegrity(t *testing.T) {
	l := engine(t,
		"COMPOUNDFLAG C\nCOMPOUNDMIN 3\n",
		"2\nfoo/C\nbar/C\n")

	for compound := range l.CompoundForms("foobarfoo", aff.CapNo, true) {
		var joined strings.Builder
		for _, part := range compound {
			joined.WriteString(part.Text)
		}
		if joined.String() != "foobarfoo" {
			t.Errorf("compound parts join to %q, want foobarfoo", joined.String())
		}
	}
}

func TestProbeAt(t *testing.T) {
	p := NewProbe("word", aff.CapNo)

	tests := []struct {
		idx  int
		want rune
	}{
		{0, 'w'},
		{3, 'd'},
		{-1, 'd'}, // negative indexes from the end
		{-4, 'w'},
		{-5, 0},
		{4, 0},
	}
	for _, tt := range tests {
		if got := p.At(tt.idx); got != tt.want {
			t.Errorf("At(%d) = %q, want %q", tt.idx, got, tt.want)
		}
	}

	if got := p.Slice(1, -1).Text(); got != "or" {
		t.Errorf("Slice(1, -1) = %q, want or", got)
	}
	if got := p.To("other").Text(); got != "other" {
		t.Errorf("To(other) = %q", got)
	}
	if got := p.Shift(2).Text(); got != "rd" {
		t.Errorf("Shift(2) = %q, want rd", got)
	}
	if got := p.Add("s").Text(); got != "words" {
		t.Errorf("Add(s) = %q, want words", got)
	}
	if p.Text() != "word" {
		t.Error("derivations must not mutate the original probe")
	}
}
