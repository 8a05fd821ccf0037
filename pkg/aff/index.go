package aff

import (
	"errors"

	"github.com/tchap/go-patricia/v2/patricia"
)

// errStopVisit aborts a patricia traversal once the caller has seen enough.
var errStopVisit = errors.New("stop visit")

// affixIndex looks up affix entries by the add string they contribute to a
// surface word. Prefixes are keyed forward; suffixes are keyed on the
// reversed add string and queried with reversed surfaces. Entries with an
// empty add string attach to any surface, so they live beside the trie and
// are always visited first.
type affixIndex[A any] struct {
	trie *patricia.Trie
	zero []A
}

func newAffixIndex[A any]() *affixIndex[A] {
	return &affixIndex[A]{trie: patricia.NewTrie()}
}

func (ix *affixIndex[A]) add(key string, entry A) {
	if key == "" {
		ix.zero = append(ix.zero, entry)
		return
	}
	p := patricia.Prefix(key)
	if existing := ix.trie.Get(p); existing != nil {
		ix.trie.Set(p, append(existing.([]A), entry))
		return
	}
	ix.trie.Set(p, []A{entry})
}

// segments visits every entry whose key is a prefix of word, shortest key
// first. Returning false from visit stops the traversal.
func (ix *affixIndex[A]) segments(word string, visit func(A) bool) {
	for _, e := range ix.zero {
		if !visit(e) {
			return
		}
	}
	if word == "" {
		return
	}
	err := ix.trie.VisitPrefixes(patricia.Prefix(word), func(_ patricia.Prefix, item patricia.Item) error {
		for _, e := range item.([]A) {
			if !visit(e) {
				return errStopVisit
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopVisit) {
		// VisitPrefixes only returns what the visitor returns.
		return
	}
}

// Reverse returns s with its runes in reverse order; suffix index keys and
// queries go through it.
func Reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
