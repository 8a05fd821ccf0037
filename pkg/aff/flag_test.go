package aff

import (
	"reflect"
	"testing"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name  string
		mode  FlagMode
		input string
		want  []Flag
	}{
		{"short flags", FlagShort, "ABC", []Flag{"A", "B", "C"}},
		{"short empty", FlagShort, "", nil},
		{"utf8 flags", FlagUTF8, "äöü", []Flag{"ä", "ö", "ü"}},
		{"long pairs", FlagLong, "aAbB", []Flag{"aA", "bB"}},
		{"long dangling scalar dropped", FlagLong, "aAb", []Flag{"aA"}},
		{"numeric", FlagNumeric, "101,102", []Flag{"101", "102"}},
		{"numeric single", FlagNumeric, "7", []Flag{"7"}},
		{"numeric skips junk", FlagNumeric, "5,x,9", []Flag{"5", "9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New()
			a.FlagMode = tt.mode
			got := a.ParseFlags(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFlags(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFlagsAlias(t *testing.T) {
	a := New()
	a.AF = []FlagSet{NewFlagSet("A", "B"), NewFlagSet("C")}

	got := NewFlagSet(a.ParseFlags("1")...)
	if !got.Has("A") || !got.Has("B") || len(got) != 2 {
		t.Errorf("alias 1 resolved to %v, want {A B}", got)
	}

	if flags := a.ParseFlags("99"); flags != nil {
		t.Errorf("out-of-range alias resolved to %v, want nil", flags)
	}
}

func TestFlagSetOps(t *testing.T) {
	s := NewFlagSet("A", "B")

	if !s.Has("A") || s.Has("X") {
		t.Error("Has gave wrong membership")
	}
	if s.Has(NoFlag) {
		t.Error("NoFlag must never be a member")
	}
	if !s.HasAll([]Flag{"A", "B"}) || s.HasAll([]Flag{"A", "X"}) {
		t.Error("HasAll gave wrong result")
	}
	if !s.HasAll(nil) {
		t.Error("empty required list must be satisfied")
	}
	if !s.HasAny([]Flag{"X", "B"}) || s.HasAny([]Flag{"X", "Y"}) {
		t.Error("HasAny gave wrong result")
	}

	u := s.Union(NewFlagSet("C"))
	if len(u) != 3 || !u.Has("C") || !s.Has("A") {
		t.Error("Union must merge without mutating the receiver")
	}
}
