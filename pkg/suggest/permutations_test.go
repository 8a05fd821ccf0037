package suggest

import (
	"slices"
	"testing"

	"github.com/bastiangx/spellserve/pkg/aff"
)

func collect(seq func(func(string) bool)) []string {
	var out []string
	seq(func(s string) bool {
		out = append(out, s)
		return true
	})
	return out
}

func TestSwapchar(t *testing.T) {
	got := collect(swapchar("abc"))
	want := []string{"bac", "acb"}
	if !slices.Equal(got, want) {
		t.Errorf("swapchar(abc) = %v, want %v", got, want)
	}

	// 4-letter words get the double edge swap as well
	got = collect(swapchar("ahev"))
	if !slices.Contains(got, "have") {
		t.Errorf("swapchar(ahev) = %v, must contain have", got)
	}

	if got := collect(swapchar("a")); got != nil {
		t.Errorf("swapchar(a) = %v, want none", got)
	}
}

func TestLongswapchar(t *testing.T) {
	got := collect(longswapchar("abcdef"))
	if !slices.Contains(got, "cbadef") {
		t.Errorf("longswapchar must swap at distance 2: %v", got)
	}
	for _, s := range got {
		if len(s) != 6 {
			t.Errorf("longswapchar changed length: %q", s)
		}
	}
	// distance beyond maxCharDistance is not generated
	if slices.Contains(got, "fbcdea") {
		t.Error("longswapchar must not swap beyond the distance cap")
	}
}

func TestExtrachar(t *testing.T) {
	got := collect(extrachar("abc"))
	want := []string{"bc", "ac", "ab"}
	if !slices.Equal(got, want) {
		t.Errorf("extrachar(abc) = %v, want %v", got, want)
	}
}

func TestForgotchar(t *testing.T) {
	got := collect(forgotchar("ab", "x"))
	want := []string{"xab", "axb", "abx"}
	if !slices.Equal(got, want) {
		t.Errorf("forgotchar(ab, x) = %v, want %v", got, want)
	}
}

func TestBadchar(t *testing.T) {
	got := collect(badchar("aba", "b"))
	want := []string{"bba", "abb"}
	if !slices.Equal(got, want) {
		t.Errorf("badchar(aba, b) = %v, want %v", got, want)
	}
}

func TestBadcharkey(t *testing.T) {
	got := collect(badcharkey("se", "qwertyuiop|asdfghjkl|zxcvbnm"))
	if !slices.Contains(got, "ae") {
		t.Errorf("badcharkey must offer the left keyboard neighbor: %v", got)
	}
	if !slices.Contains(got, "sw") {
		t.Errorf("badcharkey must offer neighbors for every rune: %v", got)
	}
	if !slices.Contains(got, "Se") {
		t.Errorf("badcharkey must offer the uppercase form: %v", got)
	}
	// '|' is a row separator, never a suggestion
	for _, s := range got {
		if slices.Contains([]rune(s), '|') {
			t.Errorf("row separator leaked into %q", s)
		}
	}
}

func TestDoubletwochars(t *testing.T) {
	got := collect(doubletwochars("vacacation"))
	if !slices.Contains(got, "vacation") {
		t.Errorf("doubletwochars(vacacation) = %v, must contain vacation", got)
	}
	if got := collect(doubletwochars("abcd")); got != nil {
		t.Errorf("short words yield nothing, got %v", got)
	}
}

func TestMovechar(t *testing.T) {
	got := collect(movechar("abcde"))
	if !slices.Contains(got, "bcade") {
		t.Errorf("movechar must move a rune forward: %v", got)
	}
	for _, s := range got {
		if len(s) != 5 {
			t.Errorf("movechar changed length: %q", s)
		}
	}
}

func TestReplchars(t *testing.T) {
	rep, err := aff.NewRepPattern("f", "ph")
	if err != nil {
		t.Fatal(err)
	}
	got := collect(replchars("fat", []aff.RepPattern{rep}))
	want := []string{"phat"}
	if !slices.Equal(got, want) {
		t.Errorf("replchars(fat) = %v, want %v", got, want)
	}

	if got := collect(replchars("f", []aff.RepPattern{rep})); got != nil {
		t.Errorf("single-rune words are skipped, got %v", got)
	}
}

func TestMapchars(t *testing.T) {
	groups := []aff.MapGroup{{"u", "ü"}}
	got := collect(mapchars("uber", groups))
	if !slices.Contains(got, "über") {
		t.Errorf("mapchars(uber) = %v, must contain über", got)
	}
}

func TestTwowords(t *testing.T) {
	var got [][2]string
	twowords("abc")(func(p [2]string) bool {
		got = append(got, p)
		return true
	})
	want := [][2]string{{"a", "bc"}, {"ab", "c"}}
	if !slices.Equal(got, want) {
		t.Errorf("twowords(abc) = %v, want %v", got, want)
	}
}
