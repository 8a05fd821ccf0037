/*
Package speller is the public face of the engine: it loads an affix
description and a word list, and answers spellcheck, suggestion, stem and
morphology queries.

A Speller is immutable after construction; queries on one instance are safe
to run concurrently.

	sp, err := speller.Load("en_US.aff", "en_US.dic")
	if err != nil { ... }
	sp.Check("hello")     // true
	sp.Suggest("helo")    // ["hello", ...]
*/
package speller

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/bastiangx/spellserve/pkg/aff"
	"github.com/bastiangx/spellserve/pkg/dic"
	"github.com/bastiangx/spellserve/pkg/lookup"
	"github.com/bastiangx/spellserve/pkg/suggest"
	"github.com/charmbracelet/log"
)

// Result is the verdict on one token. Forbidden is independent of Correct:
// a word may decompose correctly yet be marked forbidden.
type Result struct {
	Correct   bool
	Forbidden bool
	Warn      bool
}

// Morphology is the key/value data attached to one accepted reading.
type Morphology map[string][]string

// Speller bundles the parsed tables with the acceptance and suggestion
// engines.
type Speller struct {
	aff     *aff.Aff
	dic     *dic.Dic
	lookup  *lookup.Lookup
	suggest *suggest.Suggest
}

// Load reads an affix description and word list from disk.
func Load(affPath, dicPath string) (*Speller, error) {
	a, err := aff.ParseFile(affPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", affPath, err)
	}
	d, err := dic.ParseFile(dicPath, a)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", dicPath, err)
	}
	return build(a, d), nil
}

// LoadCompiled reads the affix description from disk and the dictionary
// from a compiled cache written by CompileCache.
func LoadCompiled(affPath, cachePath string) (*Speller, error) {
	a, err := aff.ParseFile(affPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", affPath, err)
	}
	d, err := dic.LoadCache(cachePath, a)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", cachePath, err)
	}
	return build(a, d), nil
}

// New reads an affix description and word list from readers.
func New(affReader, dicReader io.Reader) (*Speller, error) {
	a, err := aff.Parse(affReader)
	if err != nil {
		return nil, err
	}
	d, err := dic.Parse(dicReader, a)
	if err != nil {
		return nil, err
	}
	return build(a, d), nil
}

func build(a *aff.Aff, d *dic.Dic) *Speller {
	l := lookup.New(a, d)
	log.Debugf("Speller ready: %d words, %d prefix classes, %d suffix classes",
		len(d.Words), len(a.Prefixes), len(a.Suffixes))
	return &Speller{aff: a, dic: d, lookup: l, suggest: suggest.New(l)}
}

// Aff exposes the parsed affix description.
func (s *Speller) Aff() *aff.Aff { return s.aff }

// Dic exposes the parsed dictionary.
func (s *Speller) Dic() *dic.Dic { return s.dic }

// Check reports whether word is spelled correctly.
func (s *Speller) Check(word string) bool {
	return s.Lookup(word).Correct
}

// Lookup runs the full verdict for one token.
func (s *Speller) Lookup(word string) Result {
	word = s.preprocess(word)
	if word == "" {
		return Result{Correct: true}
	}
	if isNumber(word) {
		return Result{Correct: true}
	}

	res := Result{
		Correct:   s.lookup.Check(word),
		Forbidden: s.lookup.IsForbidden(word),
	}
	if res.Correct && s.lookup.IsWarned(word) {
		res.Warn = true
		if s.aff.ForbidWarn {
			res.Forbidden = true
		}
	}
	return res
}

// Suggest returns ordered corrections for a misspelled word.
func (s *Speller) Suggest(word string) []string {
	word = s.preprocess(word)
	if word == "" || isNumber(word) {
		return nil
	}
	return s.suggest.Suggest(word)
}

// Stems yields the dictionary stem of every accepted reading, compound
// parts included.
func (s *Speller) Stems(word string) []string {
	word = s.preprocess(word)
	if word == "" {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for compound := range s.lookup.GoodForms(word, true, true) {
		for _, part := range compound {
			stem := part.Stem
			if part.Root != nil {
				stem = part.Root.Stem
			}
			if !seen[stem] {
				seen[stem] = true
				out = append(out, stem)
			}
		}
	}
	return out
}

// Data yields the morphological maps of every accepted reading.
func (s *Speller) Data(word string) []Morphology {
	word = s.preprocess(word)
	if word == "" {
		return nil
	}
	var out []Morphology
	for compound := range s.lookup.GoodForms(word, true, true) {
		for _, part := range compound {
			if part.Root == nil || part.Root.Data == nil {
				continue
			}
			m := make(Morphology, len(part.Root.Data))
			for k, v := range part.Root.Data {
				m[k] = v
			}
			out = append(out, m)
		}
	}
	return out
}

// CompileCache writes the parsed dictionary to a msgpack sidecar for
// faster subsequent loads.
func (s *Speller) CompileCache(path string) error {
	return s.dic.SaveCache(path)
}

// preprocess trims the token, applies input conversion and strips the
// IGNORE characters.
func (s *Speller) preprocess(word string) string {
	word = strings.TrimSpace(word)
	word = s.aff.IConv.Apply(word)
	if s.aff.Ignore != "" {
		word = strings.Map(func(r rune) rune {
			if strings.ContainsRune(s.aff.Ignore, r) {
				return -1
			}
			return r
		}, word)
	}
	return word
}

// isNumber accepts digit runs with optional inner separators, which are
// always considered correct.
func isNumber(word string) bool {
	digits := 0
	for i, r := range word {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == ',':
			if i == 0 || i == len(word)-1 {
				return false
			}
		case r == '-' && i == 0:
		default:
			return false
		}
	}
	return digits > 0
}
