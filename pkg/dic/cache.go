package dic

import (
	"bufio"
	"fmt"
	"os"

	"github.com/bastiangx/spellserve/pkg/aff"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// cacheVersion guards the compiled dictionary layout; bump on change.
const cacheVersion = 1

// cachedWord is the serialized form of a Word. Flags flatten to strings
// and the CapType to its int value.
type cachedWord struct {
	Stem         string              `msgpack:"s"`
	Flags        []string            `msgpack:"f,omitempty"`
	Data         map[string][]string `msgpack:"d,omitempty"`
	AltSpellings []string            `msgpack:"p,omitempty"`
	CapType      int                 `msgpack:"c"`
}

type cacheFile struct {
	Version int          `msgpack:"v"`
	Count   int          `msgpack:"n"`
	Words   []cachedWord `msgpack:"w"`
}

// SaveCache writes the dictionary to a compiled msgpack sidecar so later
// loads skip word-list parsing.
func (d *Dic) SaveCache(path string) error {
	out := cacheFile{Version: cacheVersion, Count: len(d.Words)}
	out.Words = make([]cachedWord, 0, len(d.Words))
	for _, w := range d.Words {
		cw := cachedWord{
			Stem:         w.Stem,
			Data:         w.Data,
			AltSpellings: w.AltSpellings,
			CapType:      int(w.CapType),
		}
		for f := range w.Flags {
			cw.Flags = append(cw.Flags, string(f))
		}
		out.Words = append(out.Words, cw)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer f.Close()

	writer := bufio.NewWriter(f)
	if err := msgpack.NewEncoder(writer).Encode(&out); err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush cache: %w", err)
	}
	log.Debugf("Wrote compiled dictionary: %d words to %s", out.Count, path)
	return nil
}

// LoadCache reads a compiled dictionary written by SaveCache.
func LoadCache(path string, a *aff.Aff) (*Dic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache file: %w", err)
	}
	defer f.Close()

	var in cacheFile
	if err := msgpack.NewDecoder(bufio.NewReader(f)).Decode(&in); err != nil {
		return nil, fmt.Errorf("failed to decode cache: %w", err)
	}
	if in.Version != cacheVersion {
		return nil, fmt.Errorf("cache version %d unsupported (want %d)", in.Version, cacheVersion)
	}

	d := New(a.Casing)
	for _, cw := range in.Words {
		flags := make([]aff.Flag, 0, len(cw.Flags))
		for _, f := range cw.Flags {
			flags = append(flags, aff.Flag(f))
		}
		d.Add(&Word{
			Stem:         cw.Stem,
			Flags:        aff.NewFlagSet(flags...),
			Data:         cw.Data,
			AltSpellings: cw.AltSpellings,
			CapType:      aff.CapType(cw.CapType),
		})
	}
	log.Debugf("Loaded compiled dictionary: %d words from %s", len(d.Words), path)
	return d, nil
}
