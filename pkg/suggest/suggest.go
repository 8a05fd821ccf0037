// Package suggest generates ranked spelling corrections: a staged pipeline
// of edit operators re-checked through the acceptance core, followed by
// n-gram and phonetic similarity search over the dictionary.
package suggest

import (
	"iter"
	"strings"

	"github.com/bastiangx/spellserve/pkg/aff"
	"github.com/bastiangx/spellserve/pkg/dic"
	"github.com/bastiangx/spellserve/pkg/lookup"
)

const (
	// maxSuggestions caps the edit-operator stage per cased variant.
	maxSuggestions = 15
	// maxPhonetSuggestions caps the phonetic stage per query.
	maxPhonetSuggestions = 2
)

// Suggestion is one correction with the operator kind that produced it.
type Suggestion struct {
	Text string
	Kind string
}

// Suggest holds the precomputed suggestion state for one engine: the
// filtered dictionary for similarity search and each word's applicable
// affixes.
type Suggest struct {
	aff    *aff.Aff
	dic    *dic.Dic
	lookup *lookup.Lookup

	ngramWords   []*dic.Word
	wordSuffixes map[*dic.Word][]*aff.Suffix
	wordPrefixes map[*dic.Word][]*aff.Prefix
}

// New builds the suggester over an acceptance core, precomputing the
// n-gram dictionary subset and per-word relevant affixes.
func New(l *lookup.Lookup) *Suggest {
	a := l.Aff()
	d := l.Dic()
	s := &Suggest{
		aff:          a,
		dic:          d,
		lookup:       l,
		wordSuffixes: make(map[*dic.Word][]*aff.Suffix),
		wordPrefixes: make(map[*dic.Word][]*aff.Prefix),
	}
	for _, w := range d.Words {
		if w.Flags.Has(a.ForbiddenWord) || w.Flags.Has(a.NoSuggest) || w.Flags.Has(a.OnlyInCompound) {
			continue
		}
		s.ngramWords = append(s.ngramWords, w)
		for f := range w.Flags {
			for _, sfx := range a.Suffixes[f] {
				if sfx.Relevant(w.Stem) {
					s.wordSuffixes[w] = append(s.wordSuffixes[w], sfx)
				}
			}
			for _, pfx := range a.Prefixes[f] {
				if pfx.Relevant(w.Stem) {
					s.wordPrefixes[w] = append(s.wordPrefixes[w], pfx)
				}
			}
		}
	}
	return s
}

// Suggest returns the ordered correction texts for a misspelling.
func (s *Suggest) Suggest(word string) []string {
	var out []string
	for sug := range s.Suggestions(word) {
		out = append(out, sug.Text)
	}
	return out
}

// goodEditKinds mark edits precise enough to make the similarity stage
// unnecessary.
var goodEditKinds = map[string]bool{
	"spaceword": true,
	"uppercase": true,
	"replchars": true,
}

// Suggestions runs the full pipeline, yielding de-duplicated, case-coerced
// corrections in rank order.
func (s *Suggest) Suggestions(word string) iter.Seq[Suggestion] {
	return func(yield func(Suggestion) bool) {
		handled := make(map[string]bool)
		capType, variants := s.aff.Casing.Corrections(word)
		wordRunes := []rune(word)

		stopped := false
		// handle applies the output contract to one candidate; it returns
		// false when the consumer stopped.
		handle := func(text, kind string, checkInclusion bool) bool {
			coerced := s.aff.Casing.Coerce(text, capType)
			if coerced != text && s.lookup.IsForbidden(coerced) {
				coerced = text
			}
			if capType == aff.CapHuh || capType == aff.CapHuhInit {
				coerced = restoreAfterSpace(coerced, wordRunes)
			}
			if s.lookup.IsForbidden(coerced) {
				return true
			}
			out := s.aff.OConv.Apply(coerced)
			if handled[out] {
				return true
			}
			if checkInclusion {
				for prev := range handled {
					if strings.Contains(out, prev) || strings.Contains(prev, out) {
						return true
					}
				}
			}
			handled[out] = true
			if !yield(Suggestion{Text: out, Kind: kind}) {
				stopped = true
				return false
			}
			return true
		}

		// A lowercase word under FORCEUCASE may simply want capitalizing.
		if s.aff.ForceUCase != aff.NoFlag && capType == aff.CapNo {
			capitalized := s.aff.Casing.Capitalize(word)
			if s.correct(capitalized) {
				handle(capitalized, "forcecase", false)
				return
			}
		}

		good := false

		for idx, variant := range variants {
			if idx > 0 && s.correct(variant) {
				if !handle(variant, "case", false) {
					return
				}
			}
		}

		for _, variant := range variants {
			nocompound := false
			count := 0
			for edit := range s.edits(variant) {
				if count >= maxSuggestions {
					break
				}
				text, ok := s.checkEdit(edit, false)
				if !ok {
					continue
				}
				count++
				if !handle(text, edit.kind, false) {
					return
				}
				if goodEditKinds[edit.kind] {
					good = true
				}
				switch edit.kind {
				case "uppercase", "replchars", "mapchars":
					nocompound = true
				case "spaceword":
					return
				}
			}

			if nocompound {
				continue
			}
			count = 0
			for edit := range s.edits(variant) {
				if count >= s.aff.MaxCpdSugs {
					break
				}
				text, ok := s.checkEdit(edit, true)
				if !ok {
					continue
				}
				count++
				if !handle(text, edit.kind+"-compound", false) {
					return
				}
			}
		}

		if good || stopped {
			return
		}

		if strings.Contains(word, "-") && !anyDash(handled) {
			s.dashSuggestions(word, handle)
			if stopped {
				return
			}
		}

		if s.aff.MaxNgramSugs == 0 && s.aff.Phone == nil {
			return
		}
		ngrams, phonetic := s.similarity(word)
		count := 0
		for _, text := range ngrams {
			if count >= s.aff.MaxNgramSugs {
				break
			}
			before := len(handled)
			if !handle(text, "ngram", true) {
				return
			}
			if len(handled) > before {
				count++
			}
		}
		for _, text := range phonetic {
			if !handle(text, "phonet", true) {
				return
			}
		}
	}
}

// correct re-checks a candidate strictly: no case variants, NOSUGGEST
// roots rejected.
func (s *Suggest) correct(word string) bool {
	return s.lookup.CheckWith(word, false, false)
}

type editCandidate struct {
	text string
	pair [2]string
	kind string
}

// checkEdit validates one operator output through the acceptance oracle,
// returning the emission text. Two-word candidates need both parts to
// check; compoundOnly restricts single words to compound readings.
func (s *Suggest) checkEdit(e editCandidate, compoundOnly bool) (string, bool) {
	if e.pair[0] != "" {
		if compoundOnly {
			return "", false
		}
		if s.lookup.HasAffixForm(e.pair[0], false) && s.lookup.HasAffixForm(e.pair[1], false) {
			return e.pair[0] + " " + e.pair[1], true
		}
		return "", false
	}
	// replchars may produce a two-word candidate through a "_" replacement;
	// dictionary stems themselves can contain spaces, so the whole string
	// is tried first.
	if e.kind == "replchars" && strings.Contains(e.text, " ") {
		if s.lookup.HasAffixForm(e.text, false) {
			return e.text, true
		}
		parts := strings.SplitN(e.text, " ", 2)
		if s.lookup.HasAffixForm(parts[0], false) && s.lookup.HasAffixForm(parts[1], false) {
			return e.text, true
		}
		return "", false
	}
	if compoundOnly {
		if s.lookup.HasCompoundForm(e.text, false) {
			return e.text, true
		}
		return "", false
	}
	if s.lookup.HasAffixForm(e.text, false) {
		return e.text, true
	}
	return "", false
}

// edits yields every operator output for one cased variant, in ranking
// order.
func (s *Suggest) edits(word string) iter.Seq[editCandidate] {
	return func(yield func(editCandidate) bool) {
		if upper := s.aff.Casing.Upper(word); upper != word {
			if !yield(editCandidate{text: upper, kind: "uppercase"}) {
				return
			}
		}
		for text := range replchars(word, s.aff.Rep) {
			if !yield(editCandidate{text: text, kind: "replchars"}) {
				return
			}
		}
		for text := range mapchars(word, s.aff.Map) {
			if !yield(editCandidate{text: text, kind: "mapchars"}) {
				return
			}
		}
		for text := range swapchar(word) {
			if !yield(editCandidate{text: text, kind: "swapchar"}) {
				return
			}
		}
		for text := range longswapchar(word) {
			if !yield(editCandidate{text: text, kind: "longswapchar"}) {
				return
			}
		}
		for text := range badcharkey(word, s.aff.Key) {
			if !yield(editCandidate{text: text, kind: "badcharkey"}) {
				return
			}
		}
		for text := range extrachar(word) {
			if !yield(editCandidate{text: text, kind: "extrachar"}) {
				return
			}
		}
		for text := range forgotchar(word, s.aff.Try) {
			if !yield(editCandidate{text: text, kind: "forgotchar"}) {
				return
			}
		}
		for text := range movechar(word) {
			if !yield(editCandidate{text: text, kind: "movechar"}) {
				return
			}
		}
		for text := range badchar(word, s.aff.Try) {
			if !yield(editCandidate{text: text, kind: "badchar"}) {
				return
			}
		}
		for text := range doubletwochars(word) {
			if !yield(editCandidate{text: text, kind: "doubletwochars"}) {
				return
			}
		}
		if !s.aff.NoSplitSugs {
			for pair := range twowords(word) {
				if !yield(editCandidate{pair: pair, kind: "spaceword"}) {
					return
				}
			}
		}
	}
}

// dashSuggestions recursively corrects the broken chunks of a hyphenated
// word and re-assembles candidates that spellcheck as a whole.
func (s *Suggest) dashSuggestions(word string, handle func(string, string, bool) bool) {
	chunks := strings.Split(word, "-")
	for i, chunk := range chunks {
		if chunk == "" || s.correct(chunk) {
			continue
		}
		for _, sug := range s.Suggest(chunk) {
			if strings.Contains(sug, " ") || strings.Contains(sug, "-") {
				continue
			}
			parts := make([]string, len(chunks))
			copy(parts, chunks)
			parts[i] = sug
			candidate := strings.Join(parts, "-")
			if !s.lookup.CheckWith(candidate, false, false) {
				continue
			}
			if !handle(candidate, "dashes", false) {
				return
			}
		}
	}
}

// restoreAfterSpace keeps the original rune that follows a split point:
// for mixed-case inputs the coercion above may have reshaped it.
func restoreAfterSpace(text string, original []rune) string {
	sp := strings.IndexByte(text, ' ')
	if sp < 0 {
		return text
	}
	tr := []rune(text)
	spr := -1
	for i, r := range tr {
		if r == ' ' {
			spr = i
			break
		}
	}
	if spr < 0 || spr+1 >= len(tr) || spr >= len(original) {
		return text
	}
	if tr[spr+1] != original[spr] && strings.EqualFold(string(tr[spr+1]), string(original[spr])) {
		tr[spr+1] = original[spr]
	}
	return string(tr)
}

func anyDash(handled map[string]bool) bool {
	for h := range handled {
		if strings.Contains(h, "-") {
			return true
		}
	}
	return false
}
