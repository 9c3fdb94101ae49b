package engine

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/seqserve/seqserve/internal/utils"
	"github.com/seqserve/seqserve/pkg/trie"
)

// LetterEngine suggests strings from a few leading characters. Every line of
// its corpus is one value; the prefix sequence is the line's runes.
type LetterEngine struct {
	tree trie.Autocompleter[rune, string]
}

// NewLetterEngine loads the text file at path into a fresh tree of the given
// kind. Lines sanitize to lowercase letters, digits and spaces; lines with no
// non-space content are skipped. Every line weighs 1.0, so a string repeated
// across lines accumulates weight.
func NewLetterEngine(path, kind string) (*LetterEngine, error) {
	tree, err := newTree[rune, string](kind)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	eng := &LetterEngine{tree: tree}
	if err := eng.load(f); err != nil {
		return nil, err
	}
	log.Debugf("letter corpus loaded from %s: %d distinct values", path, tree.Len())
	return eng, nil
}

func (e *LetterEngine) load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := utils.Sanitize(scanner.Text())
		if !utils.HasContent(line) {
			continue
		}
		if err := e.tree.Insert(line, 1.0, []rune(line)); err != nil {
			return fmt.Errorf("insert %q: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}
	return nil
}

// Autocomplete returns up to limit stored strings extending prefix.
func (e *LetterEngine) Autocomplete(prefix string, limit int) ([]trie.Match[string], error) {
	return e.tree.Autocomplete([]rune(prefix), limit)
}

// Remove deletes every stored string extending prefix.
func (e *LetterEngine) Remove(prefix string) {
	e.tree.Remove([]rune(prefix))
}

// Len reports how many strings the engine stores.
func (e *LetterEngine) Len() int {
	return e.tree.Len()
}
