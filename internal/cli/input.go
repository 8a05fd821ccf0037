// Package cli handles cmd line input for DBG and testing the engine
// interactively.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/spellserve/pkg/speller"
	"github.com/charmbracelet/log"
)

// InputHandler reads words from stdin and prints their verdict and, for
// misspellings, the ranked suggestions.
type InputHandler struct {
	speller      *speller.Speller
	suggestLimit int
	showStems    bool
}

// NewInputHandler handles initialization of the InputHandler with basic
// parameters.
func NewInputHandler(sp *speller.Speller, suggestLimit int, showStems bool) *InputHandler {
	return &InputHandler{
		speller:      sp,
		suggestLimit: suggestLimit,
		showStems:    showStems,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin, and passes
// the trimmed word to handleInput(). Loop terminates on stdin errors.
func (h *InputHandler) Start() error {
	log.Print("spellserve CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a word and press Enter to check it (Ctrl+C to exit):")

	for {
		log.Print("> ")
		word, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		h.handleInput(word)
	}
}

// handleInput checks a single word and prints the verdict, stems and
// suggestions.
func (h *InputHandler) handleInput(word string) {
	start := time.Now()
	res := h.speller.Lookup(word)
	elapsed := time.Since(start)

	verdict := "misspelled"
	if res.Correct {
		verdict = "correct"
	}
	extras := ""
	if res.Forbidden {
		extras += " [forbidden]"
	}
	if res.Warn {
		extras += " [warn]"
	}
	log.Printf("%s: %s%s  (%v)", word, verdict, extras, elapsed)

	if h.showStems && res.Correct {
		if stems := h.speller.Stems(word); len(stems) > 0 {
			log.Printf("  stems: %s", strings.Join(stems, ", "))
		}
	}

	if res.Correct {
		return
	}

	start = time.Now()
	suggestions := h.speller.Suggest(word)
	elapsed = time.Since(start)
	log.Debugf("Took [ %v ] for word '%s'", elapsed, word)

	if len(suggestions) == 0 {
		log.Warnf("No suggestions found for: '%s'", word)
		return
	}
	if h.suggestLimit > 0 && len(suggestions) > h.suggestLimit {
		suggestions = suggestions[:h.suggestLimit]
	}
	log.Printf("Found %d suggestions for '%s':", len(suggestions), word)
	for i, s := range suggestions {
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", s)
		log.Printf("%2d. %s", i+1, clWord)
	}
}
