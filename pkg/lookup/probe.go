package lookup

import "github.com/bastiangx/spellserve/pkg/aff"

// Probe is a surface word under inspection: its text as runes, its
// capitalization shape, and (during compounding) its position. Probes are
// immutable values; every derivation returns a new one sharing the engine
// references.
type Probe struct {
	runes   []rune
	CapType aff.CapType
	Pos     Pos
}

// NewProbe wraps a surface string.
func NewProbe(text string, capType aff.CapType) Probe {
	return Probe{runes: []rune(text), CapType: capType}
}

// Text returns the probe's surface string.
func (p Probe) Text() string { return string(p.runes) }

// Len returns the surface length in runes.
func (p Probe) Len() int { return len(p.runes) }

// At returns the rune at i; a negative i indexes from the end, so At(-1)
// is the last rune.
func (p Probe) At(i int) rune {
	if i < 0 {
		i = len(p.runes) + i
	}
	if i < 0 || i >= len(p.runes) {
		return 0
	}
	return p.runes[i]
}

// To returns a probe over different text with the same context.
func (p Probe) To(text string) Probe {
	p.runes = []rune(text)
	return p
}

// Slice returns the probe over runes [from, to); negative bounds index
// from the end.
func (p Probe) Slice(from, to int) Probe {
	if from < 0 {
		from = len(p.runes) + from
	}
	if to < 0 {
		to = len(p.runes) + to
	}
	if from < 0 {
		from = 0
	}
	if to > len(p.runes) {
		to = len(p.runes)
	}
	if from > to {
		from = to
	}
	out := make([]rune, to-from)
	copy(out, p.runes[from:to])
	p.runes = out
	return p
}

// Shift drops the first n runes.
func (p Probe) Shift(n int) Probe {
	return p.Slice(n, p.Len())
}

// Add appends text to the surface.
func (p Probe) Add(text string) Probe {
	out := make([]rune, 0, len(p.runes)+len(text))
	out = append(out, p.runes...)
	out = append(out, []rune(text)...)
	p.runes = out
	return p
}

// WithPos returns the probe marked with a compound position.
func (p Probe) WithPos(pos Pos) Probe {
	p.Pos = pos
	return p
}
