package suggest

import (
	"sort"
	"strings"
)

// Scored pairs a candidate with its score.
type Scored[T any] struct {
	Score int
	Value T
}

// ScoresList is a bounded top-N container: Add only keeps an entry when it
// beats the current worst, Finish returns the kept entries best-first.
type ScoresList[T any] struct {
	limit   int
	entries []Scored[T]
}

// NewScoresList returns a container keeping the best n entries.
func NewScoresList[T any](n int) *ScoresList[T] {
	return &ScoresList[T]{limit: n}
}

// Add offers an entry.
func (s *ScoresList[T]) Add(score int, value T) {
	if len(s.entries) < s.limit {
		s.entries = append(s.entries, Scored[T]{Score: score, Value: value})
		return
	}
	worst := 0
	for i := 1; i < len(s.entries); i++ {
		if s.entries[i].Score < s.entries[worst].Score {
			worst = i
		}
	}
	if score > s.entries[worst].Score {
		s.entries[worst] = Scored[T]{Score: score, Value: value}
	}
}

// Finish returns the kept entries sorted best-first.
func (s *ScoresList[T]) Finish() []Scored[T] {
	out := make([]Scored[T], len(s.entries))
	copy(out, s.entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// ngramOpts select the Hunspell n-gram scoring variants.
type ngramOpts struct {
	weighted    bool // penalize grams missing from the other word
	anyMismatch bool // penalize any length difference beyond 2
	longerWorse bool // penalize only the other word being longer by >2
}

// ngramScore sums, for k = 1..maxN, how many k-grams of a occur anywhere
// in b, with the selected penalties applied.
func ngramScore(maxN int, a, b string, opts ngramOpts) int {
	ar := []rune(a)
	br := []rune(b)
	if len(br) == 0 {
		return 0
	}
	bs := string(br)

	score := 0
	for k := 1; k <= maxN && k <= len(ar); k++ {
		sub := 0
		for i := 0; i+k <= len(ar); i++ {
			if strings.Contains(bs, string(ar[i:i+k])) {
				sub++
			} else if opts.weighted {
				sub--
				if i == 0 || i+k == len(ar) {
					sub--
				}
			}
		}
		score += sub
	}

	if opts.longerWorse {
		if d := len(br) - len(ar) - 2; d > 0 {
			score -= d
		}
	}
	if opts.anyMismatch {
		d := len(br) - len(ar)
		if d < 0 {
			d = -d
		}
		if d > 2 {
			score -= d - 2
		}
	}
	return score
}

// leftCommonSubstring counts the shared leading runes; the first position
// also matches across case.
func leftCommonSubstring(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	if len(ar) == 0 || len(br) == 0 {
		return 0
	}
	if ar[0] != br[0] && !strings.EqualFold(string(ar[0]), string(br[0])) {
		return 0
	}
	n := 1
	for n < len(ar) && n < len(br) && ar[n] == br[n] {
		n++
	}
	return n
}

// lcsLen is the length of the longest common subsequence.
func lcsLen(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	if len(ar) == 0 || len(br) == 0 {
		return 0
	}
	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for i := 1; i <= len(ar); i++ {
		for j := 1; j <= len(br); j++ {
			if ar[i-1] == br[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(br)]
}

// commonCharacterPositions counts positions holding the same rune and
// reports whether the words differ by exactly one adjacent transposition.
func commonCharacterPositions(a, b string) (int, bool) {
	ar := []rune(a)
	br := []rune(b)
	n := len(ar)
	if len(br) < n {
		n = len(br)
	}
	num := 0
	var diffs []int
	for i := 0; i < n; i++ {
		if ar[i] == br[i] {
			num++
		} else {
			diffs = append(diffs, i)
		}
	}
	swap := len(ar) == len(br) && len(diffs) == 2 && diffs[1] == diffs[0]+1 &&
		ar[diffs[0]] == br[diffs[1]] && ar[diffs[1]] == br[diffs[0]]
	return num, swap
}

// rootScore ranks a dictionary stem against the misspelling for the first
// rough pass.
func rootScore(miss, stem string) int {
	return ngramScore(3, miss, stem, ngramOpts{longerWorse: true}) +
		leftCommonSubstring(miss, stem)
}

// roughAffixScore ranks an affixed candidate surface.
func roughAffixScore(miss, candidate string) int {
	return ngramScore(len([]rune(miss)), miss, candidate, ngramOpts{anyMismatch: true}) +
		leftCommonSubstring(miss, candidate)
}

// scoreThreshold is the rough-score gate: the score of the misspelling
// against itself with every fourth rune knocked out, averaged over three
// offsets.
func scoreThreshold(miss string) int {
	total := 0
	runes := []rune(miss)
	for start := 1; start <= 3; start++ {
		mangled := make([]rune, len(runes))
		copy(mangled, runes)
		for i := start; i < len(mangled); i += 4 {
			mangled[i] = '*'
		}
		total += ngramScore(len(runes), miss, string(mangled), ngramOpts{anyMismatch: true})
	}
	return total/3 - 1
}

// preciseAffixScore is the final ranking pass, bucketing candidates into
// "very good" (> 1000), ordinary, and "very bad" (< -100).
func preciseAffixScore(miss, candidate string, diffFactor float64, base int, hasPhonetic bool) int {
	lcs := lcsLen(miss, candidate)
	mr := len([]rune(miss))
	cr := len([]rune(candidate))

	if mr == cr && mr == lcs {
		return base + 2000
	}

	result := 2*lcs - abs(mr-cr)
	result += leftCommonSubstring(miss, candidate)

	num, swap := commonCharacterPositions(miss, candidate)
	if num != 0 {
		result++
	}
	if swap {
		result += 10
	}

	result += ngramScore(4, miss, candidate, ngramOpts{anyMismatch: true})
	bigrams := ngramScore(2, miss, candidate, ngramOpts{anyMismatch: true, weighted: true}) +
		ngramScore(2, candidate, miss, ngramOpts{anyMismatch: true, weighted: true})
	result += bigrams

	questionableLimit := float64(mr+cr) * diffFactor
	if hasPhonetic {
		questionableLimit *= 2
	}
	if float64(bigrams) < questionableLimit {
		result -= 1000
	}
	return result
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
