package aff

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// RepPattern is one REP table row: a source pattern (with optional ^/$
// anchors) and its replacement. "_" in either side stands for a space.
type RepPattern struct {
	Pattern     string
	Replacement string
	re          *regexp.Regexp
}

// NewRepPattern compiles a REP row.
func NewRepPattern(pattern, replacement string) (RepPattern, error) {
	body := pattern
	prefix, suffix := "", ""
	if strings.HasPrefix(body, "^") {
		prefix = "^"
		body = body[1:]
	}
	if strings.HasSuffix(body, "$") {
		suffix = "$"
		body = body[:len(body)-1]
	}
	body = strings.ReplaceAll(body, "_", " ")
	re, err := regexp.Compile(prefix + regexp.QuoteMeta(body) + suffix)
	if err != nil {
		return RepPattern{}, fmt.Errorf("bad REP pattern %q: %w", pattern, err)
	}
	return RepPattern{
		Pattern:     pattern,
		Replacement: strings.ReplaceAll(replacement, "_", " "),
		re:          re,
	}, nil
}

// Matches returns the index pairs of every occurrence in word.
func (p RepPattern) Matches(word string) [][]int {
	return p.re.FindAllStringIndex(word, -1)
}

// ConvPair is one ICONV/OCONV row.
type ConvPair struct {
	From string
	To   string
}

// ConvTable applies input or output character conversions: at each position
// the longest matching From wins; unmatched characters pass through.
type ConvTable struct {
	pairs []ConvPair
}

// NewConvTable builds a conversion table; pairs are sorted longest-first so
// the scan below prefers the longest match.
func NewConvTable(pairs []ConvPair) *ConvTable {
	sorted := make([]ConvPair, len(pairs))
	copy(sorted, pairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].From) > len(sorted[j].From)
	})
	return &ConvTable{pairs: sorted}
}

// Apply runs the conversion over word.
func (t *ConvTable) Apply(word string) string {
	if t == nil || len(t.pairs) == 0 {
		return word
	}
	var b strings.Builder
	b.Grow(len(word))
	for i := 0; i < len(word); {
		matched := false
		for _, p := range t.pairs {
			if strings.HasPrefix(word[i:], p.From) {
				b.WriteString(p.To)
				i += len(p.From)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(word[i])
			i++
		}
	}
	return b.String()
}

// BreakPattern is one BREAK table row. "^x" splits only at the start, "x$"
// only at the end; a bare pattern splits anywhere except the edges.
type BreakPattern struct {
	Text string
	re   *regexp.Regexp
}

// NewBreakPattern compiles a BREAK row; the capture group marks the
// separator removed by the split.
func NewBreakPattern(text string) (BreakPattern, error) {
	var expr string
	switch {
	case strings.HasPrefix(text, "^"):
		expr = "^(" + regexp.QuoteMeta(text[1:]) + ")"
	case strings.HasSuffix(text, "$"):
		expr = "(" + regexp.QuoteMeta(text[:len(text)-1]) + ")$"
	default:
		expr = ".(" + regexp.QuoteMeta(text) + ")."
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return BreakPattern{}, fmt.Errorf("bad BREAK pattern %q: %w", text, err)
	}
	return BreakPattern{Text: text, re: re}, nil
}

// Splits returns the start/end byte offsets of the separator group for
// every match in text.
func (p BreakPattern) Splits(text string) [][2]int {
	var out [][2]int
	for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
		if len(m) >= 4 && m[2] >= 0 {
			out = append(out, [2]int{m[2], m[3]})
		}
	}
	return out
}

// MapGroup is one MAP table row: strings the suggester may substitute for
// one another. Multi-rune members come from the "(..)" syntax.
type MapGroup []string

// ParseMapGroup splits a MAP row value into its members.
func ParseMapGroup(value string) MapGroup {
	var group MapGroup
	runes := []rune(value)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '(' {
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == ')' {
					end = j
					break
				}
			}
			if end > i {
				group = append(group, string(runes[i+1:end]))
				i = end
				continue
			}
		}
		group = append(group, string(runes[i]))
	}
	return group
}

// CompoundPattern is one CHECKCOMPOUNDPATTERN row, forbidding compounds
// whose boundary matches it.
type CompoundPattern struct {
	LeftStem     string
	RightStem    string
	LeftFlag     Flag
	RightFlag    Flag
	LeftNoAffix  bool
	RightNoAffix bool
	Replacement  string
}

// ParseCompoundPattern parses "endchars[/flag] beginchars[/flag] [repl]";
// "0" for a side means "bare stem only".
func ParseCompoundPattern(a *Aff, left, right, replacement string) CompoundPattern {
	p := CompoundPattern{Replacement: replacement}
	p.LeftStem, p.LeftFlag = splitPatternSide(a, left)
	p.RightStem, p.RightFlag = splitPatternSide(a, right)
	if p.LeftStem == "0" {
		p.LeftStem = ""
		p.LeftNoAffix = true
	}
	if p.RightStem == "0" {
		p.RightStem = ""
		p.RightNoAffix = true
	}
	return p
}

func splitPatternSide(a *Aff, side string) (string, Flag) {
	if idx := strings.IndexByte(side, '/'); idx >= 0 {
		return side[:idx], a.ParseFlag(side[idx+1:])
	}
	return side, NoFlag
}
