package suggest

import (
	"iter"
	"strings"

	"github.com/bastiangx/spellserve/pkg/aff"
)

// maxCharDistance bounds how far apart the long-swap and move operators
// reach.
const maxCharDistance = 4

// replchars applies one REP rule somewhere in word. A replacement carrying
// a space yields a two-word candidate.
func replchars(word string, reps []aff.RepPattern) iter.Seq[string] {
	return func(yield func(string) bool) {
		if len([]rune(word)) < 2 || len(reps) == 0 {
			return
		}
		for _, rep := range reps {
			for _, m := range rep.Matches(word) {
				if !yield(word[:m[0]] + rep.Replacement + word[m[1]:]) {
					return
				}
			}
		}
	}
}

// mapchars swaps members of MAP equivalence classes, recursing to cover
// multiple related substitutions in one candidate.
func mapchars(word string, groups []aff.MapGroup) iter.Seq[string] {
	return func(yield func(string) bool) {
		if len([]rune(word)) < 2 || len(groups) == 0 {
			return
		}
		var walk func(w string, start int) bool
		walk = func(w string, start int) bool {
			if start >= len(w) {
				return true
			}
			for _, group := range groups {
				for _, member := range group {
					pos := strings.Index(w[start:], member)
					if pos < 0 {
						continue
					}
					pos += start
					for _, other := range group {
						if other == member {
							continue
						}
						replaced := w[:pos] + other + w[pos+len(member):]
						if !yield(replaced) {
							return false
						}
						if !walk(replaced, pos+len(other)) {
							return false
						}
					}
				}
			}
			return true
		}
		walk(word, 0)
	}
}

// swapchar swaps adjacent runes; 4- and 5-letter words additionally get a
// simultaneous swap of both edge pairs.
func swapchar(word string) iter.Seq[string] {
	return func(yield func(string) bool) {
		r := []rune(word)
		if len(r) < 2 {
			return
		}
		for i := 0; i < len(r)-1; i++ {
			out := make([]rune, len(r))
			copy(out, r)
			out[i], out[i+1] = out[i+1], out[i]
			if !yield(string(out)) {
				return
			}
		}
		if len(r) == 4 || len(r) == 5 {
			out := make([]rune, 0, len(r))
			out = append(out, r[1], r[0])
			if len(r) == 5 {
				out = append(out, r[2])
			}
			out = append(out, r[len(r)-1], r[len(r)-2])
			if !yield(string(out)) {
				return
			}
		}
	}
}

// longswapchar swaps non-adjacent runes up to maxCharDistance apart.
func longswapchar(word string) iter.Seq[string] {
	return func(yield func(string) bool) {
		r := []rune(word)
		for first := 0; first < len(r)-2; first++ {
			limit := first + maxCharDistance
			if limit > len(r)-1 {
				limit = len(r) - 1
			}
			for second := first + 2; second <= limit; second++ {
				out := make([]rune, len(r))
				copy(out, r)
				out[first], out[second] = out[second], out[first]
				if !yield(string(out)) {
					return
				}
			}
		}
	}
}

// badcharkey replaces each rune with its uppercase form and its keyboard
// neighbors from the KEY rows ('|' separates rows).
func badcharkey(word, layout string) iter.Seq[string] {
	return func(yield func(string) bool) {
		r := []rune(word)
		l := []rune(layout)
		for i, c := range r {
			upper := []rune(strings.ToUpper(string(c)))[0]
			if upper != c {
				out := make([]rune, len(r))
				copy(out, r)
				out[i] = upper
				if !yield(string(out)) {
					return
				}
			}
			for pos, lc := range l {
				if lc != c {
					continue
				}
				if pos > 0 && l[pos-1] != '|' {
					out := make([]rune, len(r))
					copy(out, r)
					out[i] = l[pos-1]
					if !yield(string(out)) {
						return
					}
				}
				if pos+1 < len(l) && l[pos+1] != '|' {
					out := make([]rune, len(r))
					copy(out, r)
					out[i] = l[pos+1]
					if !yield(string(out)) {
						return
					}
				}
			}
		}
	}
}

// extrachar deletes one rune.
func extrachar(word string) iter.Seq[string] {
	return func(yield func(string) bool) {
		r := []rune(word)
		if len(r) < 2 {
			return
		}
		for i := range r {
			out := make([]rune, 0, len(r)-1)
			out = append(out, r[:i]...)
			out = append(out, r[i+1:]...)
			if !yield(string(out)) {
				return
			}
		}
	}
}

// forgotchar inserts each TRY rune at every position.
func forgotchar(word, try string) iter.Seq[string] {
	return func(yield func(string) bool) {
		r := []rune(word)
		for _, c := range try {
			for i := 0; i <= len(r); i++ {
				out := make([]rune, 0, len(r)+1)
				out = append(out, r[:i]...)
				out = append(out, c)
				out = append(out, r[i:]...)
				if !yield(string(out)) {
					return
				}
			}
		}
	}
}

// movechar moves one rune 2 to maxCharDistance-1 positions away, in both
// directions.
func movechar(word string) iter.Seq[string] {
	return func(yield func(string) bool) {
		r := []rune(word)
		if len(r) < 2 {
			return
		}
		for from := 0; from < len(r); from++ {
			limit := from + maxCharDistance
			if limit > len(r) {
				limit = len(r)
			}
			for to := from + 3; to <= limit; to++ {
				out := make([]rune, 0, len(r))
				out = append(out, r[:from]...)
				out = append(out, r[from+1:to]...)
				out = append(out, r[from])
				out = append(out, r[to:]...)
				if !yield(string(out)) {
					return
				}
			}
		}
		for from := len(r) - 1; from >= 0; from-- {
			lower := from - maxCharDistance + 1
			if lower < 0 {
				lower = 0
			}
			for to := from - 2; to >= lower; to-- {
				out := make([]rune, 0, len(r))
				out = append(out, r[:to]...)
				out = append(out, r[from])
				out = append(out, r[to:from]...)
				out = append(out, r[from+1:]...)
				if !yield(string(out)) {
					return
				}
			}
		}
	}
}

// badchar replaces each rune with each TRY rune.
func badchar(word, try string) iter.Seq[string] {
	return func(yield func(string) bool) {
		r := []rune(word)
		for _, c := range try {
			for i := range r {
				if r[i] == c {
					continue
				}
				out := make([]rune, len(r))
				copy(out, r)
				out[i] = c
				if !yield(string(out)) {
					return
				}
			}
		}
	}
}

// doubletwochars undoes a doubled bigram: "vacacation" yields "vacation".
func doubletwochars(word string) iter.Seq[string] {
	return func(yield func(string) bool) {
		r := []rune(word)
		if len(r) < 5 {
			return
		}
		for i := 3; i < len(r); i++ {
			if r[i-2] == r[i] && r[i-3] == r[i-1] {
				out := make([]rune, 0, len(r)-2)
				out = append(out, r[:i-1]...)
				out = append(out, r[i+1:]...)
				if !yield(string(out)) {
					return
				}
			}
		}
	}
}

// twowords yields every split of word into two non-empty parts.
func twowords(word string) iter.Seq[[2]string] {
	return func(yield func([2]string) bool) {
		r := []rune(word)
		for i := 1; i < len(r); i++ {
			if !yield([2]string{string(r[:i]), string(r[i:])}) {
				return
			}
		}
	}
}
