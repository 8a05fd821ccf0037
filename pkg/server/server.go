/*
Package server implements line-oriented JSON IPC for spellcheck services.

The server reads one JSON request per line from stdin and writes one JSON
response per line to stdout. Supported commands:

	{"command": "check",   "word": "hello"}
	{"command": "suggest", "word": "helo", "limit": 5}
	{"command": "stems",   "word": "hellos"}
	{"command": "health"}

Responses carry the verdict or the suggestion list plus timing in
microseconds:

	{"word": "hello", "correct": true, "forbidden": false, "warn": false, "time_us": 92}
	{"word": "helo", "suggestions": ["hello"], "count": 1, "time_us": 1420}

Malformed requests never crash the loop; they produce an error response
with a status code.
*/
package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/spellserve/internal/logger"
	"github.com/bastiangx/spellserve/pkg/config"
	"github.com/bastiangx/spellserve/pkg/speller"
	"github.com/charmbracelet/log"
)

// Request represents an incoming request from the client.
type Request struct {
	Command string `json:"command"`
	Word    string `json:"word"`
	Limit   int    `json:"limit,omitempty"`
}

// CheckResponse is the verdict for a check request.
type CheckResponse struct {
	Word      string `json:"word"`
	Correct   bool   `json:"correct"`
	Forbidden bool   `json:"forbidden"`
	Warn      bool   `json:"warn"`
	TimeTaken int64  `json:"time_us,omitempty"`
}

// SuggestResponse is the suggestion list for a suggest request.
type SuggestResponse struct {
	Word        string   `json:"word"`
	Suggestions []string `json:"suggestions"`
	Count       int      `json:"count"`
	TimeTaken   int64    `json:"time_us,omitempty"`
}

// StemsResponse is the stem list for a stems request.
type StemsResponse struct {
	Word      string   `json:"word"`
	Stems     []string `json:"stems"`
	Count     int      `json:"count"`
	TimeTaken int64    `json:"time_us,omitempty"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// Server handles the IPC for spellcheck requests.
type Server struct {
	speller *speller.Speller
	config  *config.Config
	reader  *bufio.Reader
	writer  io.Writer
	log     *log.Logger
}

// NewServer creates a new spellcheck server using stdin/stdout for IPC.
func NewServer(sp *speller.Speller, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		speller: sp,
		config:  cfg,
		reader:  bufio.NewReader(os.Stdin),
		writer:  os.Stdout,
		log:     logger.New("ipc"),
	}
}

// Start begins listening for IPC requests.
func (s *Server) Start() error {
	s.log.Debug("Starting server.")

	s.sendResponse(map[string]string{"status": "ready"})

	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			s.log.Errorf("Reading from stdin: %v", err)
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		s.handleRequest(line)
	}
}

// handleRequest processes an incoming request string.
func (s *Server) handleRequest(requestStr string) {
	var request Request
	if err := json.Unmarshal([]byte(requestStr), &request); err != nil {
		s.sendError("Invalid JSON request", 400)
		s.log.Errorf("Unmarshaling request: %v", err)
		return
	}

	switch request.Command {
	case "check":
		s.handleCheck(request)
	case "suggest":
		s.handleSuggest(request)
	case "stems":
		s.handleStems(request)
	case "health":
		s.sendResponse(map[string]string{"status": "ok"})
	default:
		s.sendError(fmt.Sprintf("Unknown command: %s", request.Command), 400)
	}
}

func (s *Server) validWord(word string) bool {
	if word == "" {
		s.sendError("Missing 'word' parameter", 400)
		return false
	}
	if len(word) > s.config.Server.MaxWordLen {
		s.sendError(fmt.Sprintf("Word exceeds maximum length of %d", s.config.Server.MaxWordLen), 400)
		return false
	}
	return true
}

func (s *Server) handleCheck(request Request) {
	if !s.validWord(request.Word) {
		return
	}
	start := time.Now()
	res := s.speller.Lookup(request.Word)
	elapsed := s.elapsed(start)

	s.sendResponse(CheckResponse{
		Word:      request.Word,
		Correct:   res.Correct,
		Forbidden: res.Forbidden,
		Warn:      res.Warn,
		TimeTaken: elapsed,
	})
}

func (s *Server) handleSuggest(request Request) {
	if !s.validWord(request.Word) {
		return
	}
	start := time.Now()
	suggestions := s.speller.Suggest(request.Word)
	elapsed := s.elapsed(start)

	if request.Limit > 0 && len(suggestions) > request.Limit {
		suggestions = suggestions[:request.Limit]
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	s.sendResponse(SuggestResponse{
		Word:        request.Word,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed,
	})
}

func (s *Server) handleStems(request Request) {
	if !s.validWord(request.Word) {
		return
	}
	start := time.Now()
	stems := s.speller.Stems(request.Word)
	elapsed := s.elapsed(start)

	if stems == nil {
		stems = []string{}
	}
	s.sendResponse(StemsResponse{
		Word:      request.Word,
		Stems:     stems,
		Count:     len(stems),
		TimeTaken: elapsed,
	})
}

func (s *Server) elapsed(start time.Time) int64 {
	if !s.config.Server.ReportTiming {
		return 0
	}
	return time.Since(start).Microseconds()
}

// sendResponse marshals the given response into JSON and writes it to the
// client, followed by a newline.
func (s *Server) sendResponse(response any) {
	data, err := json.Marshal(response)
	if err != nil {
		s.log.Errorf("Marshaling response: %v", err)
		s.sendError("Internal server error", 500)
		return
	}
	fmt.Fprintln(s.writer, string(data))
}

// sendError sends an error response.
func (s *Server) sendError(message string, code int) {
	s.sendResponse(ErrorResponse{Error: message, Status: code})
}
