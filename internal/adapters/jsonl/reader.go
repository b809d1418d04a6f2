// Package jsonl streams flight records from a line-delimited JSON file.
package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ryanwoodie/dmst-verify/internal/domain/model"
)

// Flight detail lines carry full task geometry, so they can get long.
const defaultMaxRecordSize = 4 << 20

// Reader iterates over one JSONL file.
type Reader struct {
	maxRecordSize int
}

// NewReader creates a reader with configuration options.
func NewReader(opts ...Option) *Reader {
	r := &Reader{maxRecordSize: defaultMaxRecordSize}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Each decodes one FlightRecord per non-blank line of path and hands it
// to fn, preserving input order. Blank lines are skipped. A line that
// fails to decode aborts iteration with an error naming the line; the
// input is expected to be well-formed, so there is no per-line recovery.
// A missing file reports ErrMissingInput before any record is read.
func (r *Reader) Each(ctx context.Context, path string, fn func(rec model.FlightRecord) error) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, min(bufio.MaxScanTokenSize, r.maxRecordSize)), r.maxRecordSize)

	line := 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return err
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var rec model.FlightRecord
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return fmt.Errorf("line %d: decode record: %w", line, err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
