package aff

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Flag identifies an affix class or a directive marker. Depending on the
// FLAG directive it was parsed under, a flag is one Unicode scalar, a pair
// of scalars, or the decimal digits of an integer. The zero value ("") is
// "no flag" and never matches anything.
type Flag string

// NoFlag is the absent flag.
const NoFlag Flag = ""

// FlagMode selects how flag strings in the affix and word-list sources are
// split into individual flags.
type FlagMode int

const (
	// FlagShort treats every scalar as its own flag (the default).
	FlagShort FlagMode = iota
	// FlagLong treats consecutive scalar pairs as flags.
	FlagLong
	// FlagNumeric treats comma-separated decimal integers as flags.
	FlagNumeric
	// FlagUTF8 is like FlagShort but declared for non-ASCII flag sets.
	FlagUTF8
)

// ParseFlagMode maps the FLAG directive value to a FlagMode.
func ParseFlagMode(value string) FlagMode {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "long":
		return FlagLong
	case "num", "numeric":
		return FlagNumeric
	case "utf-8", "utf8":
		return FlagUTF8
	default:
		log.Warnf("Unknown FLAG value %q, falling back to short flags", value)
		return FlagShort
	}
}

// FlagSet is an unordered set of flags.
type FlagSet map[Flag]struct{}

// NewFlagSet builds a set from the given flags, skipping NoFlag.
func NewFlagSet(flags ...Flag) FlagSet {
	s := make(FlagSet, len(flags))
	for _, f := range flags {
		if f != NoFlag {
			s[f] = struct{}{}
		}
	}
	return s
}

// Has reports whether f is in the set. NoFlag is never in any set.
func (s FlagSet) Has(f Flag) bool {
	if f == NoFlag {
		return false
	}
	_, ok := s[f]
	return ok
}

// HasAll reports whether every given flag is in the set.
// An empty argument list is trivially satisfied.
func (s FlagSet) HasAll(flags []Flag) bool {
	for _, f := range flags {
		if !s.Has(f) {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one of the given flags is in the set.
func (s FlagSet) HasAny(flags []Flag) bool {
	for _, f := range flags {
		if s.Has(f) {
			return true
		}
	}
	return false
}

// Union returns a new set with the members of both s and o.
func (s FlagSet) Union(o FlagSet) FlagSet {
	out := make(FlagSet, len(s)+len(o))
	for f := range s {
		out[f] = struct{}{}
	}
	for f := range o {
		out[f] = struct{}{}
	}
	return out
}

// Intersect returns the flags present in both s and o.
func (s FlagSet) Intersect(o FlagSet) []Flag {
	var out []Flag
	for f := range s {
		if o.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// ParseFlags splits a flag string according to the engine's flag mode,
// resolving AF alias references. Flags split from the string keep source
// order; the flags of an AF alias come in no particular order.
func (a *Aff) ParseFlags(value string) []Flag {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	// A purely numeric token indexes the AF alias table when one is present.
	if len(a.AF) > 0 {
		if n, err := strconv.Atoi(value); err == nil {
			if n >= 1 && n <= len(a.AF) {
				return a.AF[n-1].slice()
			}
			log.Warnf("Flag alias %d out of range (table has %d entries)", n, len(a.AF))
			return nil
		}
	}

	switch a.FlagMode {
	case FlagLong:
		runes := []rune(value)
		flags := make([]Flag, 0, len(runes)/2)
		for i := 0; i+1 < len(runes); i += 2 {
			flags = append(flags, Flag(runes[i:i+2]))
		}
		if len(runes)%2 != 0 {
			log.Warnf("Dangling scalar in long flag string %q", value)
		}
		return flags
	case FlagNumeric:
		parts := strings.Split(value, ",")
		flags := make([]Flag, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if _, err := strconv.Atoi(p); err != nil {
				log.Warnf("Skipping non-numeric flag %q", p)
				continue
			}
			flags = append(flags, Flag(p))
		}
		return flags
	default:
		runes := []rune(value)
		flags := make([]Flag, 0, len(runes))
		for _, r := range runes {
			flags = append(flags, Flag(r))
		}
		return flags
	}
}

// ParseFlag returns the first flag of a flag string, or NoFlag.
func (a *Aff) ParseFlag(value string) Flag {
	flags := a.ParseFlags(value)
	if len(flags) == 0 {
		return NoFlag
	}
	return flags[0]
}

// ParseFlagSet is ParseFlags collected into a set.
func (a *Aff) ParseFlagSet(value string) FlagSet {
	return NewFlagSet(a.ParseFlags(value)...)
}

func (s FlagSet) slice() []Flag {
	out := make([]Flag, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	return out
}
