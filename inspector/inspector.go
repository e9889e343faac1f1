// Package inspector builds the full mapping index at process startup.
//
// An Inspector imports model types one by one: it classifies each type,
// creates its ClassMapping through the matching factory, derives element
// descriptors from the type's struct fields, and indexes the result by wire
// name and by Go type. Closed-generic specializations are cached so that
// repeated closings of the same family reuse one record.
package inspector

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	fm "github.com/gofhir/fhirmap"
	"github.com/gofhir/fhirmap/cache"
	"github.com/gofhir/fhirmap/directive"
	"github.com/gofhir/fhirmap/mapping"
	"github.com/gofhir/fhirmap/pkg/logger"
)

// Import errors.
var (
	// ErrNotMappable indicates a type that satisfies none of the
	// classification predicates.
	ErrNotMappable = errors.New("type is not mappable")

	// ErrDuplicateName indicates two imported types claiming the same wire
	// name while strict names are enabled.
	ErrDuplicateName = errors.New("duplicate wire-format name")

	// ErrNotOpenGeneric indicates a Specialize call on a mapping that is
	// not an open generic family.
	ErrNotOpenGeneric = errors.New("mapping is not an open generic family")
)

// Inspector holds the built index. It is safe for concurrent use once
// imports are done; Import must not race with queries.
type Inspector struct {
	mu     sync.RWMutex
	byName map[string]*mapping.ClassMapping
	byType map[reflect.Type]*mapping.ClassMapping

	specializations *cache.Cache[string, *mapping.ClassMapping]
	options         *fm.Options
}

// New creates an empty Inspector.
func New(opts ...fm.Option) *Inspector {
	options := fm.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	logger.SetLevel(options.LogLevel)

	return &Inspector{
		byName:          make(map[string]*mapping.ClassMapping, 256),
		byType:          make(map[reflect.Type]*mapping.ClassMapping, 256),
		specializations: cache.New[string, *mapping.ClassMapping](options.SpecializationCacheSize),
		options:         options,
	}
}

// Import classifies and indexes a batch of model types. The first error
// aborts the batch; types imported before it remain indexed.
func (in *Inspector) Import(types ...reflect.Type) error {
	for _, t := range types {
		if _, err := in.ImportType(t); err != nil {
			return err
		}
	}
	return nil
}

// ImportType classifies one model type, builds its mapping and indexes it.
// Re-importing an already-indexed type returns the existing mapping.
func (in *Inspector) ImportType(t reflect.Type) (*mapping.ClassMapping, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if existing, ok := in.byType[t]; ok {
		return existing, nil
	}

	m, err := in.build(t)
	if err != nil {
		return nil, err
	}

	key := strings.ToLower(m.Name())
	if prev, ok := in.byName[key]; ok && prev.NativeType() != t {
		if in.options.StrictNames {
			return nil, fmt.Errorf("%w: %q claimed by both %s and %s",
				ErrDuplicateName, m.Name(), prev.NativeType(), t)
		}
		logger.Warn("wire name %q remapped from %s to %s", m.Name(), prev.NativeType(), t)
	}
	in.byName[key] = m
	in.byType[t] = m

	logger.Debug("imported %s", m)
	return m, nil
}

// build creates the mapping for a type without touching the index.
func (in *Inspector) build(t reflect.Type) (*mapping.ClassMapping, error) {
	kind, ok := mapping.Classify(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotMappable, t)
	}

	switch kind {
	case directive.KindPrimitive:
		return mapping.ForPrimitive(t)
	case directive.KindResource:
		m := mapping.ForResource(t)
		return m, in.attachElements(m, t)
	default:
		m := mapping.ForComposite(t)
		return m, in.attachElements(m, t)
	}
}

// attachElements derives descriptors from the struct fields of t and adds
// them to the mapping. Duplicate names propagate as construction errors.
func (in *Inspector) attachElements(m *mapping.ClassMapping, t reflect.Type) error {
	if t.Kind() != reflect.Struct {
		return nil
	}
	descs, err := deriveDescriptors(t)
	if err != nil {
		return fmt.Errorf("%s: %w", t, err)
	}
	return m.AddElements(descs...)
}

// FindByName returns the mapping for a wire-format construct name, matched
// case-insensitively, or nil when the name is unknown.
func (in *Inspector) FindByName(name string) *mapping.ClassMapping {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.byName[strings.ToLower(name)]
}

// FindByType returns the mapping for a Go type, or nil.
func (in *Inspector) FindByType(t reflect.Type) *mapping.ClassMapping {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.byType[t]
}

// Mappings returns all indexed mappings sorted by wire name.
func (in *Inspector) Mappings() []*mapping.ClassMapping {
	in.mu.RLock()
	defer in.mu.RUnlock()

	out := make([]*mapping.ClassMapping, 0, len(in.byName))
	for _, m := range in.byName {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Specialize closes an open generic mapping with concrete type arguments,
// reusing a cached record when the same family was closed with the same
// argument list before. The specialized mapping is also indexed by its
// closed Go type.
func (in *Inspector) Specialize(open *mapping.ClassMapping, args ...reflect.Type) (*mapping.ClassMapping, error) {
	if !open.IsOpenGeneric() {
		return nil, fmt.Errorf("%w: %s", ErrNotOpenGeneric, open)
	}

	key := specializationKey(open, args)
	if m, ok := in.specializations.Get(key); ok {
		return m, nil
	}

	m, err := open.CloseGeneric(args...)
	if err != nil {
		return nil, err
	}
	in.specializations.Set(key, m)

	in.mu.Lock()
	in.byType[m.NativeType()] = m
	in.mu.Unlock()

	return m, nil
}

// CacheStats returns counters of the specialization cache.
func (in *Inspector) CacheStats() cache.Stats {
	return in.specializations.Stats()
}

// specializationKey identifies one closing of one family. The key carries
// the representative type, not the wire name: two families may share a name
// under the lenient duplicate policy and must not share cache entries.
func specializationKey(open *mapping.ClassMapping, args []reflect.Type) string {
	var b strings.Builder
	b.WriteString(open.NativeType().String())
	b.WriteByte('<')
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.String())
	}
	b.WriteByte('>')
	return b.String()
}
