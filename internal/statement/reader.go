// Package statement reads bank statement exports into raw rows. Each
// bank ships a different tabular layout; readers locate the header, map
// the required columns and hand every data row to the pipeline as text.
// A missing required column is a structural error and aborts before any
// row is processed.
package statement

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// ErrMissingColumns marks an input file whose header lacks one of the
// required columns. This is an incompatible format, not a data-quality
// issue, and is surfaced before any write happens.
var ErrMissingColumns = errors.New("missing required columns")

// Row is one statement line with its cells still in text form. Amount
// and date normalization happen downstream so the pipeline owns the
// counts of dropped and defaulted values.
type Row struct {
	Date        string
	Description string
	Credit      string
	Debit       string
	Balance     string
}

// Reader parses one bank's export format into rows, oldest first.
type Reader interface {
	Read(r io.Reader) ([]Row, error)
	Format() string
}

// Registry holds named readers.
type Registry struct {
	readers map[string]Reader
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register adds a reader. Panics on duplicate format.
func (r *Registry) Register(p Reader) {
	key := strings.ToLower(p.Format())
	if _, ok := r.readers[key]; ok {
		panic("duplicate reader format: " + key)
	}
	r.readers[key] = p
}

// Get returns the reader for format, or nil.
func (r *Registry) Get(format string) Reader {
	return r.readers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in readers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&BBVAReader{})
	r.Register(&BanregioReader{})
	return r
}

// dateLayouts are the formats banks use in their exports, day first.
var dateLayouts = []string{"02-01-2006", "02/01/2006", "2006-01-02"}

// ParseDate parses a statement date cell. Rows whose date does not parse
// are dropped by the pipeline, never stored.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
