package trie

import "errors"

var (
	// ErrInvalidWeight reports an Insert with a non-positive weight.
	ErrInvalidWeight = errors.New("trie: weight must be positive")

	// ErrConflictingPrefix reports a re-insert of a known value under a
	// different prefix sequence than the original one.
	ErrConflictingPrefix = errors.New("trie: value already stored under a different prefix")

	// ErrInvalidLimit reports a negative Autocomplete limit.
	ErrInvalidLimit = errors.New("trie: limit must be zero or positive")
)
