// Package element provides the per-type field index a serializer queries to
// resolve wire-format field names, including type-qualified choice names
// like valueString for value[x].
package element

import (
	"errors"
	"fmt"
	"strings"
)

// Index errors.
var (
	// ErrDuplicateElement is returned when two descriptors normalize to the
	// same field name within one type.
	ErrDuplicateElement = errors.New("duplicate element name")

	// ErrAmbiguousElement is returned when more than one choice descriptor
	// accepts the same qualified wire name.
	ErrAmbiguousElement = errors.New("ambiguous element name")
)

// Index is a case-insensitive lookup structure over the declared fields of
// one composite or resource type. Lookups try an exact case-insensitive
// match first and fall back to choice-suffix matching.
//
// An Index is populated once during construction and is safe for concurrent
// reads afterwards; Add must not race with Find.
type Index struct {
	byName  map[string]*Descriptor
	ordered []*Descriptor
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{byName: make(map[string]*Descriptor, 16)}
}

// Add appends descriptors to the index keyed by the case-folded field name.
// A duplicate normalized name is a construction-time error: the declaring
// type is inconsistent, and the first descriptor is kept.
func (ix *Index) Add(descs ...*Descriptor) error {
	for _, d := range descs {
		key := strings.ToLower(d.Name)
		if _, exists := ix.byName[key]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateElement, d.Name)
		}
		ix.byName[key] = d
		ix.ordered = append(ix.ordered, d)
	}
	return nil
}

// Find resolves a wire-format field name to its descriptor.
//
// The exact case-insensitive match is the fast path. When it misses, every
// choice descriptor is scanned for a suffix match; more than one accepting
// descriptor is an ambiguity error, never a silent pick. A miss on both
// paths returns (nil, nil): unknown field, not a failure.
func (ix *Index) Find(wireName string) (*Descriptor, error) {
	if d, ok := ix.byName[strings.ToLower(wireName)]; ok {
		return d, nil
	}

	var found *Descriptor
	for _, d := range ix.ordered {
		if !d.MatchesSuffixed(wireName) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %q matches both %q and %q",
				ErrAmbiguousElement, wireName, found.Name, d.Name)
		}
		found = d
	}
	return found, nil
}

// Len returns the number of descriptors in the index.
func (ix *Index) Len() int {
	return len(ix.ordered)
}

// Descriptors returns the descriptors in declaration order.
func (ix *Index) Descriptors() []*Descriptor {
	out := make([]*Descriptor, len(ix.ordered))
	copy(out, ix.ordered)
	return out
}

// Clone returns an independent copy of the index. Descriptors themselves are
// shared; they are immutable after construction.
func (ix *Index) Clone() *Index {
	next := &Index{
		byName:  make(map[string]*Descriptor, len(ix.byName)),
		ordered: make([]*Descriptor, len(ix.ordered)),
	}
	for k, v := range ix.byName {
		next.byName[k] = v
	}
	copy(next.ordered, ix.ordered)
	return next
}
