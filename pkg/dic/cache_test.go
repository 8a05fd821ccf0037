package dic

import (
	"path/filepath"
	"testing"
)

func TestCacheRoundTrip(t *testing.T) {
	d := parseDic(t, "", "3\nhello/AB\niPhone/K\nfeet\tst:foot\n")

	path := filepath.Join(t.TempDir(), "words.bin")
	if err := d.SaveCache(path); err != nil {
		t.Fatalf("SaveCache: %v", err)
	}

	a := testAff(t, "")
	loaded, err := LoadCache(path, a)
	if err != nil {
		t.Fatalf("LoadCache: %v", err)
	}

	if len(loaded.Words) != len(d.Words) {
		t.Fatalf("loaded %d words, want %d", len(loaded.Words), len(d.Words))
	}

	hello := loaded.Homonyms("hello", false)
	if len(hello) != 1 || !hello[0].Flags.Has("A") || !hello[0].Flags.Has("B") {
		t.Errorf("hello after reload = %v", hello)
	}

	iphone := loaded.Homonyms("iPhone", false)
	if len(iphone) != 1 || iphone[0].CapType != d.Homonyms("iPhone", false)[0].CapType {
		t.Errorf("CapType not preserved: %v", iphone)
	}

	feet := loaded.Homonyms("feet", false)
	if len(feet) != 1 {
		t.Fatalf("feet missing after reload")
	}
	if got := feet[0].DataValues("st"); len(got) != 1 || got[0] != "foot" {
		t.Errorf("morph data after reload = %v", got)
	}
}

func TestLoadCacheMissingFile(t *testing.T) {
	a := testAff(t, "")
	if _, err := LoadCache(filepath.Join(t.TempDir(), "nope.bin"), a); err == nil {
		t.Error("expected error for missing cache file")
	}
}
