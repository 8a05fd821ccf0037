package suggest

import (
	"strings"

	"github.com/bastiangx/spellserve/pkg/aff"
	"github.com/bastiangx/spellserve/pkg/dic"
)

const (
	maxRoots   = 100
	maxGuesses = 200
)

// similarity runs the single pass over the suggestion dictionary feeding
// both the n-gram and the phonetic ranking, and returns the two candidate
// lists in emission order.
func (s *Suggest) similarity(miss string) (ngrams, phonetic []string) {
	missLower := s.aff.Casing.Lower(miss)
	missRunes := len([]rune(missLower))

	usePhonet := s.aff.Phone != nil
	missKey := ""
	if usePhonet {
		missKey = s.aff.Phone.Encode(missLower)
	}

	roots := NewScoresList[*dic.Word](maxRoots)
	phonetRoots := NewScoresList[*dic.Word](maxRoots)

	for _, w := range s.ngramWords {
		stemLower := s.aff.Casing.Lower(w.Stem)
		stemRunes := len([]rune(stemLower))

		if abs(stemRunes-missRunes) <= 4 {
			score := rootScore(missLower, stemLower)
			for _, alt := range w.AltSpellings {
				if altScore := rootScore(missLower, s.aff.Casing.Lower(alt)); altScore > score {
					score = altScore
				}
			}
			roots.Add(score, w)
		}

		if usePhonet && abs(stemRunes-missRunes) <= 3 {
			if ngramScore(3, missLower, stemLower, ngramOpts{longerWorse: true}) > 2 {
				key := s.aff.Phone.Encode(stemLower)
				phonetRoots.Add(2*ngramScore(3, missKey, key, ngramOpts{longerWorse: true}), w)
			}
		}
	}

	ngrams = s.rankGuesses(missLower, roots)

	if usePhonet {
		for i, entry := range phonetRoots.Finish() {
			if i >= maxPhonetSuggestions || entry.Score < 2 {
				break
			}
			phonetic = append(phonetic, entry.Value.Stem)
		}
	}
	return ngrams, phonetic
}

// rankGuesses expands the best roots into affixed surfaces, gates them by
// the rough score threshold and orders them by the precise score.
func (s *Suggest) rankGuesses(missLower string, roots *ScoresList[*dic.Word]) []string {
	threshold := scoreThreshold(missLower)
	guesses := NewScoresList[string](maxGuesses)
	for _, root := range roots.Finish() {
		for _, form := range s.formsFor(root.Value, missLower) {
			if score := roughAffixScore(missLower, s.aff.Casing.Lower(form)); score > threshold {
				guesses.Add(score, form)
			}
		}
	}

	fact := 1.0
	if s.aff.MaxDiff >= 0 {
		fact = (10.0 - float64(s.aff.EffectiveMaxDiff())) / 5.0
	}
	hasPhonetic := s.aff.Phone != nil

	rescored := NewScoresList[string](maxGuesses)
	for _, g := range guesses.Finish() {
		score := preciseAffixScore(missLower, s.aff.Casing.Lower(g.Value), fact, g.Score, hasPhonetic)
		rescored.Add(score, g.Value)
	}

	var out []string
	veryGood := false
	for _, g := range rescored.Finish() {
		switch {
		case g.Score > 1000:
			veryGood = true
			out = append(out, g.Value)
		case veryGood:
			return out
		case g.Score < -100:
			// questionable candidates surface only when nothing else did
			if len(out) == 0 && !s.aff.OnlyMaxDiff {
				out = append(out, g.Value)
			}
			return out
		default:
			out = append(out, g.Value)
		}
	}
	return out
}

// formsFor produces the affixed surfaces of a dictionary word that could
// underlie the misspelling: the bare stem, suffixed and prefixed forms
// whose add strings frame the misspelling, and cross products of both.
func (s *Suggest) formsFor(w *dic.Word, miss string) []string {
	res := []string{w.Stem}

	type suffixForm struct {
		sfx  *aff.Suffix
		text string
	}
	var suffixed []suffixForm
	for _, sfx := range s.wordSuffixes[w] {
		if strings.HasSuffix(miss, sfx.Add) {
			suffixed = append(suffixed, suffixForm{sfx, strings.TrimSuffix(w.Stem, sfx.Strip) + sfx.Add})
		}
	}
	for _, sf := range suffixed {
		res = append(res, sf.text)
	}

	for _, pfx := range s.wordPrefixes[w] {
		if !strings.HasPrefix(miss, pfx.Add) {
			continue
		}
		res = append(res, pfx.Add+strings.TrimPrefix(w.Stem, pfx.Strip))
		if !pfx.Cross {
			continue
		}
		for _, sf := range suffixed {
			if sf.sfx.Cross {
				res = append(res, pfx.Add+strings.TrimPrefix(sf.text, pfx.Strip))
			}
		}
	}
	return res
}
