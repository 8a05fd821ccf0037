package suggest

import "testing"

func TestScoresListBounded(t *testing.T) {
	list := NewScoresList[string](3)
	list.Add(5, "five")
	list.Add(1, "one")
	list.Add(3, "three")
	list.Add(10, "ten") // evicts "one"
	list.Add(0, "zero") // worse than the worst, dropped

	got := list.Finish()
	if len(got) != 3 {
		t.Fatalf("kept %d entries, want 3", len(got))
	}
	if got[0].Value != "ten" || got[1].Value != "five" || got[2].Value != "three" {
		t.Errorf("Finish order = %v", got)
	}
}

func TestLcsLen(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 3},
		{"abc", "acb", 2},
		{"kitten", "sitting", 4},
		{"fone", "phone", 3},
	}
	for _, tt := range tests {
		if got := lcsLen(tt.a, tt.b); got != tt.want {
			t.Errorf("lcsLen(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLeftCommonSubstring(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"hello", "help", 3},
		{"hello", "Hello", 5}, // first position folds case
		{"abc", "xbc", 0},
		{"", "abc", 0},
	}
	for _, tt := range tests {
		if got := leftCommonSubstring(tt.a, tt.b); got != tt.want {
			t.Errorf("leftCommonSubstring(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCommonCharacterPositions(t *testing.T) {
	num, swap := commonCharacterPositions("hello", "hello")
	if num != 5 || swap {
		t.Errorf("identical words: num=%d swap=%v", num, swap)
	}

	num, swap = commonCharacterPositions("ehllo", "hello")
	if !swap {
		t.Errorf("adjacent transposition not detected: num=%d", num)
	}

	_, swap = commonCharacterPositions("abcde", "abxyz")
	if swap {
		t.Error("multiple substitutions reported as a swap")
	}
}

func TestNgramScore(t *testing.T) {
	// all 1..2 grams of "ab" occur in "abc"
	if got := ngramScore(2, "ab", "abc", ngramOpts{}); got != 3 {
		t.Errorf("ngramScore(2, ab, abc) = %d, want 3", got)
	}
	// longer candidates are penalized beyond slack 2
	plain := ngramScore(3, "abc", "abcdef", ngramOpts{})
	worse := ngramScore(3, "abc", "abcdef", ngramOpts{longerWorse: true})
	if worse >= plain {
		t.Errorf("longerWorse must lower the score: %d vs %d", worse, plain)
	}
	if got := ngramScore(3, "abc", "", ngramOpts{}); got != 0 {
		t.Errorf("empty candidate scores %d, want 0", got)
	}
}

func TestRootScoreOrdering(t *testing.T) {
	// the closer stem must outrank the unrelated one
	near := rootScore("hallo", "hello")
	far := rootScore("hallo", "world")
	if near <= far {
		t.Errorf("rootScore ordering wrong: near=%d far=%d", near, far)
	}
}

func TestPreciseAffixScoreExactMatch(t *testing.T) {
	// same length and full LCS puts the candidate in the "very good" bucket
	if got := preciseAffixScore("word", "word", 1.0, 10, false); got <= 1000 {
		t.Errorf("exact candidate scored %d, want > 1000", got)
	}
	if got := preciseAffixScore("word", "totally", 1.0, 10, false); got > 0 {
		t.Errorf("unrelated candidate scored %d, want low", got)
	}
}

func TestScoreThreshold(t *testing.T) {
	// mangling the word must keep the threshold below the self score
	self := roughAffixScore("sequence", "sequence")
	if thr := scoreThreshold("sequence"); thr >= self {
		t.Errorf("threshold %d not below self score %d", thr, self)
	}
}
