package jsonl

// Option applies a configuration option to the Reader.
type Option func(*Reader)

// WithMaxRecordSize sets the largest accepted line length in bytes.
func WithMaxRecordSize(size int) Option {
	return func(r *Reader) {
		if size > 0 {
			r.maxRecordSize = size
		}
	}
}
