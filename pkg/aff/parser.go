package aff

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// ParseError reports a malformed affix description with its source line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("affix description line %d: %s", e.Line, e.Msg)
}

// Parse reads an affix description from r and returns the finalized Aff.
func Parse(r io.Reader) (*Aff, error) {
	p := &parser{aff: New(), scanner: bufio.NewScanner(r)}
	p.scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if err := p.run(); err != nil {
		return nil, err
	}
	p.aff.Init()
	return p.aff, nil
}

// ParseFile reads an affix description from path.
func ParseFile(path string) (*Aff, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open affix file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

type parser struct {
	aff     *Aff
	scanner *bufio.Scanner
	line    int
}

func (p *parser) next() (string, bool) {
	if !p.scanner.Scan() {
		return "", false
	}
	p.line++
	text := p.scanner.Text()
	if p.line == 1 {
		text = strings.TrimPrefix(text, "\uFEFF")
	}
	return text, true
}

func (p *parser) errf(format string, args ...any) error {
	return &ParseError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) run() error {
	for {
		line, ok := p.next()
		if !ok {
			break
		}
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := p.directive(fields); err != nil {
			return err
		}
	}
	if err := p.scanner.Err(); err != nil {
		return fmt.Errorf("failed to read affix description: %w", err)
	}
	return nil
}

func (p *parser) directive(fields []string) error {
	a := p.aff
	name, args := fields[0], fields[1:]

	arg := func() string {
		if len(args) == 0 {
			return ""
		}
		return args[0]
	}

	switch name {
	case "SET":
		if enc := strings.ToUpper(arg()); enc != "" && enc != "UTF-8" && enc != "UTF8" {
			log.Warnf("Unsupported SET encoding %q, input is read as UTF-8", arg())
		}
	case "FLAG":
		a.FlagMode = ParseFlagMode(arg())
	case "LANG":
		a.Lang = arg()
	case "IGNORE":
		a.Ignore = arg()
	case "KEY":
		if arg() != "" {
			a.Key = arg()
		}
	case "TRY":
		a.Try = arg()

	case "NOSUGGEST":
		a.NoSuggest = a.ParseFlag(arg())
	case "KEEPCASE":
		a.KeepCase = a.ParseFlag(arg())
	case "NEEDAFFIX", "PSEUDOROOT":
		a.NeedAffix = a.ParseFlag(arg())
	case "CIRCUMFIX":
		a.Circumfix = a.ParseFlag(arg())
	case "FORBIDDENWORD":
		a.ForbiddenWord = a.ParseFlag(arg())
	case "WARN":
		a.Warn = a.ParseFlag(arg())
	case "ONLYINCOMPOUND":
		a.OnlyInCompound = a.ParseFlag(arg())
	case "COMPOUNDFLAG":
		a.CompoundFlag = a.ParseFlag(arg())
	case "COMPOUNDBEGIN":
		a.CompoundBegin = a.ParseFlag(arg())
	case "COMPOUNDMIDDLE":
		a.CompoundMiddle = a.ParseFlag(arg())
	case "COMPOUNDEND":
		a.CompoundEnd = a.ParseFlag(arg())
	case "COMPOUNDPERMITFLAG":
		a.CompoundPermitFlag = a.ParseFlag(arg())
	case "COMPOUNDFORBIDFLAG":
		a.CompoundForbidFlag = a.ParseFlag(arg())
	case "FORCEUCASE":
		a.ForceUCase = a.ParseFlag(arg())

	case "COMPLEXPREFIXES":
		a.ComplexPrefixes = true
	case "FULLSTRIP":
		a.FullStrip = true
	case "NOSPLITSUGS":
		a.NoSplitSugs = true
	case "CHECKSHARPS":
		a.CheckSharps = true
	case "CHECKCOMPOUNDCASE":
		a.CheckCompoundCase = true
	case "CHECKCOMPOUNDDUP":
		a.CheckCompoundDup = true
	case "CHECKCOMPOUNDREP":
		a.CheckCompoundRep = true
	case "CHECKCOMPOUNDTRIPLE":
		a.CheckCompoundTriple = true
	case "SIMPLIFIEDTRIPLE":
		a.SimplifiedTriple = true
	case "ONLYMAXDIFF":
		a.OnlyMaxDiff = true
	case "FORBIDWARN":
		a.ForbidWarn = true

	case "COMPOUNDMIN":
		return p.parseInt(arg(), &a.CompoundMin)
	case "COMPOUNDWORDMAX":
		return p.parseInt(arg(), &a.CompoundWordMax)
	case "MAXCPDSUGS":
		return p.parseInt(arg(), &a.MaxCpdSugs)
	case "MAXNGRAMSUGS":
		return p.parseInt(arg(), &a.MaxNgramSugs)
	case "MAXDIFF":
		return p.parseInt(arg(), &a.MaxDiff)

	case "REP":
		return p.parseTable(name, arg(), func(row []string) error {
			if len(row) < 2 {
				return p.errf("REP row needs a pattern and a replacement")
			}
			rep, err := NewRepPattern(row[0], row[1])
			if err != nil {
				return p.errf("%v", err)
			}
			a.Rep = append(a.Rep, rep)
			return nil
		})
	case "MAP":
		return p.parseTable(name, arg(), func(row []string) error {
			if len(row) < 1 {
				return p.errf("MAP row needs a value")
			}
			a.Map = append(a.Map, ParseMapGroup(row[0]))
			return nil
		})
	case "BREAK":
		// "BREAK 0" disables breaking; a non-nil empty table records that
		if a.Break == nil {
			a.Break = []BreakPattern{}
		}
		return p.parseTable(name, arg(), func(row []string) error {
			if len(row) < 1 {
				return p.errf("BREAK row needs a pattern")
			}
			bp, err := NewBreakPattern(row[0])
			if err != nil {
				return p.errf("%v", err)
			}
			a.Break = append(a.Break, bp)
			return nil
		})
	case "COMPOUNDRULE":
		return p.parseTable(name, arg(), func(row []string) error {
			if len(row) < 1 {
				return p.errf("COMPOUNDRULE row needs a rule")
			}
			rule, err := NewCompoundRule(row[0])
			if err != nil {
				return p.errf("%v", err)
			}
			a.CompoundRules = append(a.CompoundRules, rule)
			return nil
		})
	case "CHECKCOMPOUNDPATTERN":
		return p.parseTable(name, arg(), func(row []string) error {
			if len(row) < 2 {
				return p.errf("CHECKCOMPOUNDPATTERN row needs two sides")
			}
			repl := ""
			if len(row) > 2 {
				repl = row[2]
			}
			a.CompoundPatterns = append(a.CompoundPatterns, ParseCompoundPattern(a, row[0], row[1], repl))
			return nil
		})
	case "ICONV":
		return p.parseConvTable(name, arg(), &a.IConv)
	case "OCONV":
		return p.parseConvTable(name, arg(), &a.OConv)
	case "PHONE":
		var rows [][2]string
		err := p.parseTable(name, arg(), func(row []string) error {
			if len(row) < 2 {
				return p.errf("PHONE row needs a search and a replacement")
			}
			rows = append(rows, [2]string{row[0], row[1]})
			return nil
		})
		if err != nil {
			return err
		}
		a.Phone = NewPhonetTable(rows)
	case "AF":
		return p.parseTable(name, arg(), func(row []string) error {
			if len(row) < 1 {
				return p.errf("AF row needs a flag string")
			}
			a.AF = append(a.AF, NewFlagSet(p.parseAliasFreeFlags(row[0])...))
			return nil
		})
	case "AM":
		return p.parseTable(name, arg(), func(row []string) error {
			a.AM = append(a.AM, row)
			return nil
		})

	case "PFX":
		return p.parsePrefixClass(args)
	case "SFX":
		return p.parseSuffixClass(args)

	case "WORDCHARS", "NAME", "HOME", "VERSION":
		// informational, no engine behavior
	default:
		log.Debugf("Skipping unknown affix directive %q", name)
	}
	return nil
}

// parseAliasFreeFlags parses a flag string while the AF table itself is
// being built, so numeric tokens are not alias references yet.
func (p *parser) parseAliasFreeFlags(value string) []Flag {
	saved := p.aff.AF
	p.aff.AF = nil
	flags := p.aff.ParseFlags(value)
	p.aff.AF = saved
	return flags
}

func (p *parser) parseInt(value string, dst *int) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return p.errf("expected a number, got %q", value)
	}
	*dst = n
	return nil
}

func (p *parser) parseTable(name, countArg string, row func([]string) error) error {
	count, err := strconv.Atoi(countArg)
	if err != nil {
		return p.errf("%s expects a row count, got %q", name, countArg)
	}
	for i := 0; i < count; i++ {
		line, ok := p.next()
		if !ok {
			return p.errf("%s table truncated: expected %d rows, got %d", name, count, i)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] != name {
			return p.errf("%s table row %d malformed: %q", name, i+1, line)
		}
		if err := row(fields[1:]); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseConvTable(name, countArg string, dst **ConvTable) error {
	var pairs []ConvPair
	err := p.parseTable(name, countArg, func(row []string) error {
		if len(row) < 2 {
			return p.errf("%s row needs a source and a target", name)
		}
		pairs = append(pairs, ConvPair{From: row[0], To: row[1]})
		return nil
	})
	if err != nil {
		return err
	}
	*dst = NewConvTable(pairs)
	return nil
}

func (p *parser) parsePrefixClass(header []string) error {
	flag, cross, count, err := p.parseAffixHeader("PFX", header)
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		row, err := p.affixRow("PFX", flag)
		if err != nil {
			return err
		}
		entry, err := NewPrefix(flag, row.strip, row.add, row.cond, cross, row.flags)
		if err != nil {
			return p.errf("%v", err)
		}
		p.aff.Prefixes[flag] = append(p.aff.Prefixes[flag], entry)
	}
	return nil
}

func (p *parser) parseSuffixClass(header []string) error {
	flag, cross, count, err := p.parseAffixHeader("SFX", header)
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		row, err := p.affixRow("SFX", flag)
		if err != nil {
			return err
		}
		entry, err := NewSuffix(flag, row.strip, row.add, row.cond, cross, row.flags)
		if err != nil {
			return p.errf("%v", err)
		}
		p.aff.Suffixes[flag] = append(p.aff.Suffixes[flag], entry)
	}
	return nil
}

func (p *parser) parseAffixHeader(kind string, header []string) (Flag, bool, int, error) {
	if len(header) < 3 {
		return NoFlag, false, 0, p.errf("%s header needs flag, cross-product and count", kind)
	}
	flag := p.aff.ParseFlag(header[0])
	if flag == NoFlag {
		return NoFlag, false, 0, p.errf("%s header has no flag", kind)
	}
	cross := header[1] == "Y"
	count, err := strconv.Atoi(header[2])
	if err != nil {
		return NoFlag, false, 0, p.errf("%s header count malformed: %q", kind, header[2])
	}
	return flag, cross, count, nil
}

type affixRowData struct {
	strip string
	add   string
	cond  string
	flags FlagSet
}

func (p *parser) affixRow(kind string, flag Flag) (affixRowData, error) {
	line, ok := p.next()
	if !ok {
		return affixRowData{}, p.errf("%s %s table truncated", kind, flag)
	}
	fields := strings.Fields(line)
	if len(fields) < 4 || fields[0] != kind {
		return affixRowData{}, p.errf("%s %s row malformed: %q", kind, flag, line)
	}
	if p.aff.ParseFlag(fields[1]) != flag {
		return affixRowData{}, p.errf("%s row flag %q does not match class %q", kind, fields[1], flag)
	}

	row := affixRowData{strip: fields[2], add: fields[3], cond: "."}
	if len(fields) > 4 && !strings.Contains(fields[4], ":") {
		row.cond = fields[4]
	}
	// the add column may carry its own flags: "able/UY"
	if idx := strings.IndexByte(row.add, '/'); idx >= 0 {
		row.flags = p.aff.ParseFlagSet(row.add[idx+1:])
		row.add = row.add[:idx]
		if row.add == "" {
			row.add = "0"
		}
	}
	return row, nil
}
