package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/seqserve/seqserve/internal/utils"
	"github.com/seqserve/seqserve/pkg/trie"
)

// SentenceEngine suggests sentences from a few leading words. The corpus is
// a CSV of (text, weight) records; the prefix sequence is the sanitized
// sentence's words.
type SentenceEngine struct {
	tree trie.Autocompleter[string, string]
}

// NewSentenceEngine loads the CSV file at path into a fresh tree of the
// given kind. Records that sanitize to zero words, or carry a non-positive
// or unparsable weight, are skipped with a warning. The same sanitized
// sentence on several records accumulates the sum of their weights.
func NewSentenceEngine(path, kind string) (*SentenceEngine, error) {
	tree, err := newTree[string, string](kind)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	eng := &SentenceEngine{tree: tree}
	if err := eng.load(f); err != nil {
		return nil, err
	}
	log.Debugf("sentence corpus loaded from %s: %d distinct values", path, tree.Len())
	return eng, nil
}

func (e *SentenceEngine) load(r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read corpus: %w", err)
		}
		if len(record) < 2 {
			log.Warnf("skipping short corpus record: %v", record)
			continue
		}
		text := utils.Sanitize(record[0])
		words := strings.Fields(text)
		if len(words) == 0 {
			continue
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil || weight <= 0 {
			log.Warnf("skipping corpus record with bad weight %q", record[1])
			continue
		}
		if err := e.tree.Insert(text, weight, words); err != nil {
			return fmt.Errorf("insert %q: %w", text, err)
		}
	}
	return nil
}

// Autocomplete returns up to limit stored sentences whose word sequence
// extends the words of prefix.
func (e *SentenceEngine) Autocomplete(prefix string, limit int) ([]trie.Match[string], error) {
	return e.tree.Autocomplete(strings.Fields(prefix), limit)
}

// Remove deletes every stored sentence whose word sequence extends prefix.
func (e *SentenceEngine) Remove(prefix string) {
	e.tree.Remove(strings.Fields(prefix))
}

// Len reports how many sentences the engine stores.
func (e *SentenceEngine) Len() int {
	return e.tree.Len()
}
