package aff

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
)

// phonElem is one consumable slot of a PHONE rule pattern: a literal rune
// or a parenthesized alternative set.
type phonElem struct {
	lit   rune
	chars map[rune]struct{}
}

func (e phonElem) match(r rune) bool {
	if e.chars != nil {
		_, ok := e.chars[r]
		return ok
	}
	return r == e.lit
}

// PhonetRule is one PHONE table row in the aspell phonet dialect:
// letters with optional "(..)" alternatives, "-" marking trailing
// context that stays in the input, "^"/"$" anchors, an optional priority
// digit and "<" follow-up marker.
type PhonetRule struct {
	Search      string
	Replacement string

	elems     []phonElem
	lookahead int // trailing elems that match but are not consumed
	start     bool
	end       bool
	priority  int
	followup  bool
}

// PhonetTable drives the phonetic key builder. Rules are indexed by the
// first rune they can match and tried in source order.
type PhonetTable struct {
	rules map[rune][]*PhonetRule
	order []*PhonetRule
}

// NewPhonetTable compiles PHONE rows; rows that fail to parse are skipped
// with a warning, matching the inert-on-bad-input policy for tables.
func NewPhonetTable(rows [][2]string) *PhonetTable {
	t := &PhonetTable{rules: make(map[rune][]*PhonetRule)}
	for _, row := range rows {
		rule, ok := parsePhonetRule(row[0], row[1])
		if !ok {
			log.Warnf("Skipping unparseable PHONE rule %q", row[0])
			continue
		}
		t.order = append(t.order, rule)
		for r := range firstRunes(rule) {
			t.rules[r] = append(t.rules[r], rule)
		}
	}
	return t
}

func firstRunes(rule *PhonetRule) map[rune]struct{} {
	out := make(map[rune]struct{})
	if len(rule.elems) == 0 {
		return out
	}
	first := rule.elems[0]
	if first.chars != nil {
		for r := range first.chars {
			out[r] = struct{}{}
		}
	} else {
		out[first.lit] = struct{}{}
	}
	return out
}

func parsePhonetRule(search, replacement string) (*PhonetRule, bool) {
	rule := &PhonetRule{Search: search, Replacement: replacement, priority: 5}
	if replacement == "_" {
		rule.Replacement = ""
	}

	runes := []rune(search)
	dashAt := -1
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '(':
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == ')' {
					end = j
					break
				}
			}
			if end < 0 {
				return nil, false
			}
			elem := phonElem{chars: make(map[rune]struct{})}
			for _, c := range runes[i+1 : end] {
				elem.chars[c] = struct{}{}
			}
			rule.elems = append(rule.elems, elem)
			i = end
		case r == '-':
			if dashAt < 0 {
				dashAt = len(rule.elems)
			}
		case r == '^':
			rule.start = true
		case r == '$':
			rule.end = true
		case r == '<':
			rule.followup = true
		case unicode.IsDigit(r):
			rule.priority = int(r - '0')
		default:
			rule.elems = append(rule.elems, phonElem{lit: r})
		}
	}
	if len(rule.elems) == 0 {
		return nil, false
	}
	if dashAt >= 0 {
		rule.lookahead = len(rule.elems) - dashAt
	}
	return rule, true
}

// matchAt reports whether the rule applies to word at pos, returning the
// number of runes consumed.
func (r *PhonetRule) matchAt(word []rune, pos int) (int, bool) {
	if r.start && pos != 0 {
		return 0, false
	}
	if pos+len(r.elems) > len(word) {
		return 0, false
	}
	for i, e := range r.elems {
		if !e.match(word[pos+i]) {
			return 0, false
		}
	}
	if r.end && pos+len(r.elems) != len(word) {
		return 0, false
	}
	consumed := len(r.elems) - r.lookahead
	if consumed < 1 {
		consumed = 1
	}
	return consumed, true
}

// Encode builds the phonetic key of word: uppercase it, then repeatedly
// apply the first matching rule; runes no rule covers are copied through.
func (t *PhonetTable) Encode(word string) string {
	if t == nil {
		return ""
	}
	runes := []rune(strings.ToUpper(word))
	var b strings.Builder
	for pos := 0; pos < len(runes); {
		applied := false
		for _, rule := range t.rules[runes[pos]] {
			if consumed, ok := rule.matchAt(runes, pos); ok {
				b.WriteString(rule.Replacement)
				pos += consumed
				applied = true
				break
			}
		}
		if !applied {
			b.WriteRune(runes[pos])
			pos++
		}
	}
	return b.String()
}
