package jsonl

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	// ErrMissingInput marks a nonexistent input file. The CLI treats it as
	// a fatal startup error.
	ErrMissingInput = errors.New("input file missing")
)
