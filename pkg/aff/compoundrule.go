package aff

import (
	"fmt"
	"regexp"
	"strings"
)

// CompoundRule is a small regex over affix class flags: "ABC" requires the
// flag sequence A,B,C; "*" and "?" quantify the preceding flag. Long and
// numeric flags are written in parentheses: "(101)(102)*".
//
// Each distinct flag is mapped to a private-use rune so the rule compiles
// to a plain regexp regardless of flag encoding.
type CompoundRule struct {
	Text    string
	Flags   FlagSet
	full    *regexp.Regexp
	partial *regexp.Regexp
	mapping map[Flag]rune
}

// NewCompoundRule compiles a COMPOUNDRULE row.
func NewCompoundRule(text string) (*CompoundRule, error) {
	r := &CompoundRule{
		Text:    text,
		Flags:   NewFlagSet(),
		mapping: make(map[Flag]rune),
	}

	type token struct {
		flag Flag
		op   byte // 0, '*' or '?'
	}
	var tokens []token

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '(':
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == ')' {
					end = j
					break
				}
			}
			if end < 0 {
				return nil, fmt.Errorf("unterminated group in compound rule %q", text)
			}
			tokens = append(tokens, token{flag: Flag(runes[i+1 : end])})
			i = end
		case '*', '?':
			if len(tokens) == 0 {
				return nil, fmt.Errorf("dangling quantifier in compound rule %q", text)
			}
			tokens[len(tokens)-1].op = byte(runes[i])
		default:
			tokens = append(tokens, token{flag: Flag(runes[i])})
		}
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty compound rule")
	}

	next := rune(0xE000)
	var parts []string
	for _, t := range tokens {
		r.Flags[t.flag] = struct{}{}
		mapped, ok := r.mapping[t.flag]
		if !ok {
			mapped = next
			next++
			r.mapping[t.flag] = mapped
		}
		part := string(mapped)
		if t.op != 0 {
			part += string(t.op)
		}
		parts = append(parts, part)
	}

	full, err := regexp.Compile("^(?:" + strings.Join(parts, "") + ")$")
	if err != nil {
		return nil, fmt.Errorf("bad compound rule %q: %w", text, err)
	}
	r.full = full

	// The partial expression accepts any prefix of a full match by nesting
	// the tail of the rule in optional groups.
	partialExpr := ""
	for i := len(parts) - 1; i >= 0; i-- {
		partialExpr = parts[i] + "(?:" + partialExpr + ")?"
	}
	partial, err := regexp.Compile("^(?:" + partialExpr + ")$")
	if err != nil {
		return nil, fmt.Errorf("bad compound rule %q: %w", text, err)
	}
	r.partial = partial
	return r, nil
}

// FullMatch reports whether some choice of one relevant flag per part forms
// a sequence the rule accepts completely.
func (r *CompoundRule) FullMatch(flagSets []FlagSet) bool {
	return r.match(flagSets, r.full)
}

// PartialMatch reports whether the sequence so far can still grow into a
// full match.
func (r *CompoundRule) PartialMatch(flagSets []FlagSet) bool {
	return r.match(flagSets, r.partial)
}

func (r *CompoundRule) match(flagSets []FlagSet, re *regexp.Regexp) bool {
	choices := make([][]rune, len(flagSets))
	for i, fs := range flagSets {
		for f := range fs {
			if mapped, ok := r.mapping[f]; ok && r.Flags.Has(f) {
				choices[i] = append(choices[i], mapped)
			}
		}
		if len(choices[i]) == 0 {
			return false
		}
	}
	var try func(i int, acc []rune) bool
	try = func(i int, acc []rune) bool {
		if i == len(choices) {
			return re.MatchString(string(acc))
		}
		for _, c := range choices[i] {
			if try(i+1, append(acc, c)) {
				return true
			}
		}
		return false
	}
	return try(0, make([]rune, 0, len(choices)))
}
