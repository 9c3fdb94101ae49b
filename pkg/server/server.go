package server

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/seqserve/seqserve/internal/utils"
	"github.com/seqserve/seqserve/pkg/config"
	"github.com/seqserve/seqserve/pkg/engine"
)

// defaultLimit caps responses when the client omits a limit.
const defaultLimit = 10

// Server handles the IPC for prefix completions
type Server struct {
	suggester engine.Suggester
	cfg       config.ServerConfig
	decoder   *msgpack.Decoder
	encoder   *msgpack.Encoder
}

// NewServer creates a completion server using stdin/stdout for IPC
func NewServer(suggester engine.Suggester, cfg config.ServerConfig) *Server {
	return NewServerWithIO(suggester, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over arbitrary streams, mainly for tests.
func NewServerWithIO(suggester engine.Suggester, cfg config.ServerConfig, r io.Reader, w io.Writer) *Server {
	return &Server{
		suggester: suggester,
		cfg:       cfg,
		decoder:   msgpack.NewDecoder(r),
		encoder:   msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests. It returns nil once the client
// closes its end of the stream.
func (s *Server) Start() error {
	log.Debug("Starting server.")

	s.send(StatusResponse{Status: "ready"})

	for {
		var request Request
		if err := s.decoder.Decode(&request); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches on the request command
func (s *Server) handleRequest(request Request) {
	switch request.Cmd {
	case "complete":
		s.handleComplete(request)
	case "remove":
		s.handleRemove(request)
	case "count":
		s.send(CountResponse{ID: request.ID, Count: s.suggester.Len()})
	case "health":
		s.send(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown command: %s", request.Cmd), 400)
	}
}

// send encodes the given response and flushes it to the client.
func (s *Server) send(response any) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}

// handleComplete processes a completion request. It validates the prefix
// against the configured bounds, retrieves weighted suggestions, and sends
// the response with timing info. A missing or non-positive limit falls back
// to the default, and any limit above the configured maximum is clamped.
func (s *Server) handleComplete(request Request) {
	prefix := request.Prefix

	if len(prefix) < s.cfg.MinPrefix {
		s.sendError(request.ID, fmt.Sprintf("Prefix must be at least %d characters", s.cfg.MinPrefix), 400)
		log.Debug("Prefix is too short in request")
		return
	}
	if len(prefix) > s.cfg.MaxPrefix {
		s.sendError(request.ID, fmt.Sprintf("Prefix exceeds maximum length of %d characters", s.cfg.MaxPrefix), 400)
		log.Debug("Prefix is too long in request")
		return
	}
	if s.cfg.EnableFilter && !utils.IsValidQuery(prefix) {
		s.send(CompleteResponse{ID: request.ID, Suggestions: []Suggestion{}})
		return
	}

	limit := request.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	start := time.Now()
	matches, err := s.suggester.Autocomplete(prefix, limit)
	if err != nil {
		s.sendError(request.ID, err.Error(), 500)
		return
	}
	elapsed := time.Since(start)

	suggestions := make([]Suggestion, len(matches))
	for i, m := range matches {
		suggestions[i] = Suggestion{Value: m.Value, Weight: m.Weight}
	}

	s.send(CompleteResponse{
		ID:          request.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// handleRemove prunes everything stored under the request prefix. An empty
// prefix clears the whole tree.
func (s *Server) handleRemove(request Request) {
	before := s.suggester.Len()
	s.suggester.Remove(request.Prefix)
	removed := before - s.suggester.Len()
	log.Debugf("Removed %d values under %q", removed, request.Prefix)
	s.send(StatusResponse{ID: request.ID, Status: "ok"})
}
