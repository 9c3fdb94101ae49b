package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/seqserve/seqserve/pkg/trie"
)

// MIDI pitch bounds of the notes a melody may carry (piano range).
const (
	MinPitch = 21
	MaxPitch = 108
)

// Note is a single melody note: a MIDI pitch and a duration in milliseconds.
type Note struct {
	Pitch    int
	Duration int
}

// Melody is a named note sequence. Melodies are indexed by their interval
// sequence, not their absolute pitches, so transposed melodies share a
// prefix.
type Melody struct {
	Name  string
	Notes []Note
}

// Intervals returns the relative pitch steps between consecutive notes.
func (m *Melody) Intervals() []int {
	if len(m.Notes) < 2 {
		return nil
	}
	iv := make([]int, 0, len(m.Notes)-1)
	for i := 1; i < len(m.Notes); i++ {
		iv = append(iv, m.Notes[i].Pitch-m.Notes[i-1].Pitch)
	}
	return iv
}

// MelodyEngine suggests melodies from a few leading intervals.
type MelodyEngine struct {
	tree trie.Autocompleter[int, *Melody]
}

// NewMelodyEngine loads the CSV file at path into a fresh tree of the given
// kind. Each record is a melody name followed by pitch,duration pairs; a
// blank entry ends the record's notes. Records with out-of-range pitches,
// non-positive durations, or fewer than two notes (no intervals) are skipped.
// Every melody weighs 1.0.
func NewMelodyEngine(path, kind string) (*MelodyEngine, error) {
	tree, err := newTree[int, *Melody](kind)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	eng := &MelodyEngine{tree: tree}
	if err := eng.load(f); err != nil {
		return nil, err
	}
	log.Debugf("melody corpus loaded from %s: %d melodies", path, tree.Len())
	return eng, nil
}

func (e *MelodyEngine) load(r io.Reader) error {
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
		if len(record) < 1 || record[0] == "" {
			continue
		}
		melody, ok := parseMelody(record)
		if !ok {
			continue
		}
		intervals := melody.Intervals()
		if len(intervals) == 0 {
			continue
		}
		if err := e.tree.Insert(melody, 1.0, intervals); err != nil {
			return fmt.Errorf("insert melody %q: %w", melody.Name, err)
		}
	}
	return nil
}

// parseMelody reads pitch,duration pairs from record until a blank entry or
// the record's end.
func parseMelody(record []string) (*Melody, bool) {
	name := record[0]
	fields := record[1:]
	var notes []Note
	for i := 0; i+1 < len(fields); i += 2 {
		if fields[i] == "" || fields[i+1] == "" {
			break
		}
		pitch, err := strconv.Atoi(strings.TrimSpace(fields[i]))
		if err != nil {
			log.Warnf("melody %q: bad pitch %q, skipping", name, fields[i])
			return nil, false
		}
		dur, err := strconv.Atoi(strings.TrimSpace(fields[i+1]))
		if err != nil {
			log.Warnf("melody %q: bad duration %q, skipping", name, fields[i+1])
			return nil, false
		}
		if pitch < MinPitch || pitch > MaxPitch || dur <= 0 {
			log.Warnf("melody %q: note (%d, %d) out of range, skipping", name, pitch, dur)
			return nil, false
		}
		notes = append(notes, Note{Pitch: pitch, Duration: dur})
	}
	if len(notes) == 0 {
		return nil, false
	}
	return &Melody{Name: name, Notes: notes}, true
}

// Autocomplete returns up to limit melodies whose interval sequence extends
// intervals.
func (e *MelodyEngine) Autocomplete(intervals []int, limit int) ([]trie.Match[*Melody], error) {
	return e.tree.Autocomplete(intervals, limit)
}

// Remove deletes every melody whose interval sequence extends intervals.
func (e *MelodyEngine) Remove(intervals []int) {
	e.tree.Remove(intervals)
}

// Len reports how many melodies the engine stores.
func (e *MelodyEngine) Len() int {
	return e.tree.Len()
}
