// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/seqserve/seqserve/internal/utils"
	"github.com/seqserve/seqserve/pkg/engine"
)

// InputHandler processes user input from stdin, providing
// suggestions. It accepts many flags to control behavior such as
// minimum and maximum prefix length, suggestion limits, and filtering options.
//
// Lines starting with ':' are commands: ":rm <prefix>" prunes every value
// under the prefix, ":count" prints how many values are stored.
type InputHandler struct {
	suggester       engine.Suggester
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	noFilter        bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(suggester engine.Suggester, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		suggester:       suggester,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to the handleInput() for processing.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	log.Print("SeqServe CLI [BETA]")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a prefix and press Enter to see the suggestions (Ctrl+C to exit):")
	log.Print("commands: :rm <prefix>, :count")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			h.handleCommand(line)
			continue
		}
		h.handleInput(line)
	}
}

// handleCommand runs a ':' command line.
func (h *InputHandler) handleCommand(line string) {
	cmd, arg, _ := strings.Cut(line, " ")
	switch cmd {
	case ":rm":
		before := h.suggester.Len()
		h.suggester.Remove(strings.TrimSpace(arg))
		log.Printf("Removed %d values", before-h.suggester.Len())
	case ":count":
		log.Printf("%d values stored", h.suggester.Len())
	default:
		log.Errorf("Unknown command: %s", cmd)
	}
}

// handleInput processes a single prefix to generate suggestions.
// It validates the prefix's length and content, then asks the tree for
// suggestions. Results are formatted and printed to the log.
func (h *InputHandler) handleInput(prefix string) {
	if len(prefix) < h.minPrefixLength {
		log.Errorf("Prefix too short: %s", prefix)
		return
	}

	if len(prefix) > h.maxPrefixLength {
		log.Errorf("Prefix too long: %s", prefix)
		return
	}

	// input filtering by default (unless --no-filter flag is used)
	if !h.noFilter {
		if !utils.IsValidQuery(prefix) {
			log.Warnf("No suggestions found for prefix: '%s' (filtered out)", prefix)
			return
		}
	} else {
		log.Debug("Input filtering disabled - allowing all inputs")
	}

	start := time.Now()
	log.Debug("Processing request for", "prefix", prefix)

	matches, err := h.suggester.Autocomplete(prefix, h.suggestLimit)
	if err != nil {
		log.Errorf("Autocomplete failed: %v", err)
		return
	}

	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for prefix '%s'", elapsed, prefix)

	if len(matches) == 0 {
		log.Warnf("No suggestions found for prefix: '%s'", prefix)
		return
	}

	log.Printf("Found %d suggestions for prefix '%s':", len(matches), prefix)
	for i, m := range matches {
		fmtWeight := utils.FormatWeight(m.Weight)
		clValue := fmt.Sprintf("\033[38;5;75m%s\033[0m", m.Value)
		log.Printf("%2d. %-40s (weight: %8s)", i+1, clValue, fmtWeight)
	}
}
