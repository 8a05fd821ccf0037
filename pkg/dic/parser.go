package dic

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bastiangx/spellserve/pkg/aff"
	"github.com/charmbracelet/log"
)

// ParseError reports a malformed word list with its source line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("word list line %d: %s", e.Line, e.Msg)
}

// Parse reads a word list against an affix description. The optional count
// on the first line is advisory and only logged when it disagrees.
func Parse(r io.Reader, a *aff.Aff) (*Dic, error) {
	d := New(a.Casing)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	declared := -1
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
			if n, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
				declared = n
				continue
			}
		}
		line = strings.TrimRight(line, " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, err := parseEntry(line, a)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Msg: err.Error()}
		}
		if word != nil {
			d.Add(word)
			// ph: targets become REP pairs so the suggester can undo the
			// recorded common misspelling.
			for _, alt := range word.AltSpellings {
				if rep, err := aff.NewRepPattern(alt, word.Stem); err == nil {
					a.Rep = append(a.Rep, rep)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	if declared >= 0 && declared != len(d.Words) {
		log.Debugf("Word list declared %d entries, parsed %d", declared, len(d.Words))
	}
	return d, nil
}

// ParseFile reads a word list from path.
func ParseFile(path string, a *aff.Aff) (*Dic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer f.Close()
	return Parse(f, a)
}

// parseEntry handles one "stem[/flags][<tab>key:value …]" record.
func parseEntry(line string, a *aff.Aff) (*Word, error) {
	stemPart := line
	dataPart := ""
	if idx := strings.IndexAny(line, "\t"); idx >= 0 {
		stemPart, dataPart = line[:idx], line[idx+1:]
	} else if idx := strings.Index(line, "  "); idx >= 0 {
		stemPart, dataPart = line[:idx], line[idx+2:]
	} else if idx := strings.IndexByte(line, ' '); idx >= 0 {
		// a single space splits off morphology only when it introduces a
		// key:value field; stems themselves may contain spaces
		rest := line[idx+1:]
		if looksLikeData(rest) {
			stemPart, dataPart = line[:idx], rest
		}
	}

	stem, flagStr := splitStemFlags(stemPart)
	if stem == "" {
		return nil, fmt.Errorf("empty stem in entry %q", line)
	}

	word := &Word{
		Stem:    stem,
		Flags:   aff.NewFlagSet(a.ParseFlags(flagStr)...),
		CapType: a.Casing.Guess(stem),
	}

	for _, field := range strings.Fields(dataPart) {
		for _, kv := range expandDataField(field, a) {
			if kv[0] == "ph" {
				word.AltSpellings = append(word.AltSpellings, kv[1])
			}
			if word.Data == nil {
				word.Data = make(map[string][]string)
			}
			word.Data[kv[0]] = append(word.Data[kv[0]], kv[1])
		}
	}
	return word, nil
}

// splitStemFlags separates the stem from its flag string at the first
// unescaped slash; "\/" is a literal slash in the stem.
func splitStemFlags(s string) (string, string) {
	var stem strings.Builder
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == '/':
			stem.WriteByte('/')
			i++
		case s[i] == '/':
			return stem.String(), s[i+1:]
		default:
			stem.WriteByte(s[i])
		}
	}
	return stem.String(), ""
}

func looksLikeData(s string) bool {
	for _, field := range strings.Fields(s) {
		if strings.Contains(field, ":") {
			return true
		}
		if _, err := strconv.Atoi(field); err == nil {
			return true
		}
	}
	return false
}

// expandDataField resolves one morphology field into key/value tags,
// expanding numeric AM aliases into their stored rows.
func expandDataField(field string, a *aff.Aff) [][2]string {
	if n, err := strconv.Atoi(field); err == nil {
		if n < 1 || n > len(a.AM) {
			return nil
		}
		var out [][2]string
		for _, tag := range a.AM[n-1] {
			if k, v, ok := strings.Cut(tag, ":"); ok && k != "" {
				out = append(out, [2]string{k, v})
			}
		}
		return out
	}
	if k, v, ok := strings.Cut(field, ":"); ok && k != "" {
		return [][2]string{{k, v}}
	}
	return nil
}
