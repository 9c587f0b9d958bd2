// Package dataset provides the record collections a pipeline can iterate
// over. The pipeline borrows a Dataset read-only: it reads named fields
// per record and never mutates the underlying data.
package dataset

import "github.com/jjmacky/fluent-lm/errors"

// Record is one dataset row: a mapping from field name to value.
type Record map[string]any

// Field returns the value for the named field. A missing field is an error,
// mirroring the pipeline's unset-context-key policy.
func (r Record) Field(name string) (any, error) {
	v, ok := r[name]
	if !ok {
		return nil, errors.MissingContextKey(name)
	}
	return v, nil
}

// Dataset is an indexable sequence of records.
type Dataset interface {
	// Len returns the number of records.
	Len() int
	// Record returns the record at index i. Panics if i is out of range,
	// like slice indexing.
	Record(i int) Record
}

// Slice is an in-memory Dataset backed by a []Record.
type Slice []Record

// Len returns the number of records.
func (s Slice) Len() int { return len(s) }

// Record returns the record at index i.
func (s Slice) Record(i int) Record { return s[i] }
