// Package mapping builds the per-type metadata records a FHIR serializer
// uses to translate between Go model types and wire-format constructs.
//
// A ClassMapping associates one model type with one named construct: a
// resource, a composite datatype, or a primitive type. The record carries
// the construct's wire name, its optional profile URL, an index of declared
// elements, and, for primitives, the function that parses wire text into a
// native value.
//
// Records are created once per type by the three factory constructors,
// populated with element descriptors by the importing step, and are
// immutable afterwards. Construction is driven by the classification
// predicates in classify.go; the factories themselves assume the caller
// picked the right one.
package mapping

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gofhir/fhirmap/directive"
	"github.com/gofhir/fhirmap/element"
	"github.com/gofhir/fhirmap/pkg/logger"
	"github.com/gofhir/fhirmap/primitive"
)

// Contract-violation errors.
var (
	// ErrNotPrimitive is returned when Parse is called on a composite or
	// resource mapping.
	ErrNotPrimitive = errors.New("mapping is not a primitive type")

	// ErrNoElements is returned when elements are attached to a primitive
	// mapping; primitives declare none.
	ErrNoElements = errors.New("primitive mappings carry no elements")

	// ErrOpenGeneric is returned when an open generic mapping is queried
	// for parsing before being closed.
	ErrOpenGeneric = errors.New("open generic mapping must be closed first")
)

// resourceSuffix is stripped from a resource type's identifier when no name
// is declared. A type named exactly "Resource" keeps its identifier.
const resourceSuffix = "Resource"

// ClassMapping is the association between one model type and one
// wire-format construct.
type ClassMapping struct {
	kind       directive.Kind
	name       string
	profile    string
	nativeType reflect.Type
	elements   *element.Index
	parse      primitive.ParseFunc

	// instantiate is non-nil while the mapping describes an open generic
	// family rather than a concrete type.
	instantiate func(args ...reflect.Type) (reflect.Type, error)
}

// ForResource creates the mapping for a resource type. The wire name is the
// declared name when present, otherwise the type identifier with a trailing
// "Resource" stripped.
func ForResource(t reflect.Type) *ClassMapping {
	d, _ := directive.Lookup(t)

	name := d.Name
	if name == "" {
		name = capabilityResourceName(t)
	}
	if name == "" {
		name = t.Name()
		if name != resourceSuffix && strings.HasSuffix(name, resourceSuffix) {
			name = strings.TrimSuffix(name, resourceSuffix)
		}
	}

	return &ClassMapping{
		kind:        directive.KindResource,
		name:        name,
		profile:     d.Profile,
		nativeType:  t,
		elements:    element.NewIndex(),
		instantiate: d.Instantiate,
	}
}

// ForComposite creates the mapping for a composite datatype. Profiled
// composites are unsupported; the profile is always empty.
func ForComposite(t reflect.Type) *ClassMapping {
	d, _ := directive.Lookup(t)

	name := d.Name
	if name == "" {
		name = capabilityElementName(t)
	}
	if name == "" {
		name = t.Name()
	}

	return &ClassMapping{
		kind:        directive.KindComposite,
		name:        name,
		nativeType:  t,
		elements:    element.NewIndex(),
		instantiate: d.Instantiate,
	}
}

// ForPrimitive creates the mapping for a primitive type and resolves its
// parse capability. A primitive with no discoverable parse routine is
// misdeclared and fails here, at construction time, not at parse time.
//
// Open generic families skip parse resolution; it runs against the concrete
// type when the mapping is closed.
func ForPrimitive(t reflect.Type) (*ClassMapping, error) {
	d, _ := directive.Lookup(t)

	name := d.Name
	if name == "" {
		name = capabilityElementName(t)
	}
	if name == "" {
		name = t.Name()
	}

	m := &ClassMapping{
		kind:        directive.KindPrimitive,
		name:        name,
		nativeType:  t,
		elements:    element.NewIndex(),
		instantiate: d.Instantiate,
	}

	if m.instantiate == nil {
		pf, err := primitive.Resolve(t)
		if err != nil {
			return nil, fmt.Errorf("primitive %q (%s): %w", name, t, err)
		}
		m.parse = pf
	}
	return m, nil
}

// Kind returns the construct kind. It is fixed at creation.
func (m *ClassMapping) Kind() directive.Kind { return m.kind }

// Name returns the wire-format construct name.
func (m *ClassMapping) Name() string { return m.name }

// Profile returns the canonical profile URL, or "" for non-resource
// mappings and unprofiled resources.
func (m *ClassMapping) Profile() string { return m.profile }

// NativeType returns the Go type this mapping describes. For an open
// generic mapping this is the family's representative instantiation.
func (m *ClassMapping) NativeType() reflect.Type { return m.nativeType }

// IsOpenGeneric reports whether the mapping describes an open generic
// family that must be closed before element or parse queries.
func (m *ClassMapping) IsOpenGeneric() bool { return m.instantiate != nil }

// AddElements attaches element descriptors to the mapping. It is called
// once by the importing step; duplicate normalized names fail.
func (m *ClassMapping) AddElements(descs ...*element.Descriptor) error {
	if m.kind == directive.KindPrimitive {
		return fmt.Errorf("%s: %w", m.name, ErrNoElements)
	}
	if err := m.elements.Add(descs...); err != nil {
		return fmt.Errorf("%s: %w", m.name, err)
	}
	return nil
}

// FindElement resolves a wire-format field name to its descriptor, trying
// an exact case-insensitive match before choice-suffix matching. A miss
// returns (nil, nil); genuine suffix ambiguity returns
// element.ErrAmbiguousElement.
func (m *ClassMapping) FindElement(wireName string) (*element.Descriptor, error) {
	return m.elements.Find(wireName)
}

// Elements returns the attached descriptors in declaration order.
func (m *ClassMapping) Elements() []*element.Descriptor {
	return m.elements.Descriptors()
}

// Parse converts wire-format text into a native value of the mapped type.
// Calling it on a non-primitive mapping is a caller-contract violation.
func (m *ClassMapping) Parse(text string) (any, error) {
	if m.kind != directive.KindPrimitive {
		return nil, fmt.Errorf("%s: %w", m.name, ErrNotPrimitive)
	}
	if m.instantiate != nil {
		return nil, fmt.Errorf("%s: %w", m.name, ErrOpenGeneric)
	}
	return m.parse(text)
}

// CloseGeneric produces the concrete mapping for an open generic family
// bound to specific type arguments. The new record shares the kind, name
// and profile, copies the element index, and re-resolves the parse
// capability against the closed type; the original record is not touched.
//
// Calling CloseGeneric on an already-closed mapping is a no-op: it is
// logged and returns (nil, nil) rather than an error.
func (m *ClassMapping) CloseGeneric(args ...reflect.Type) (*ClassMapping, error) {
	if m.instantiate == nil {
		logger.Warn("CloseGeneric on non-generic mapping %q (%s)", m.name, m.nativeType)
		return nil, nil
	}

	closed, err := m.instantiate(args...)
	if err != nil {
		return nil, fmt.Errorf("close %q: %w", m.name, err)
	}

	next := &ClassMapping{
		kind:       m.kind,
		name:       m.name,
		profile:    m.profile,
		nativeType: closed,
		elements:   m.elements.Clone(),
	}
	if m.kind == directive.KindPrimitive {
		pf, err := primitive.Resolve(closed)
		if err != nil {
			return nil, fmt.Errorf("close %q (%s): %w", m.name, closed, err)
		}
		next.parse = pf
	}
	return next, nil
}

// String implements fmt.Stringer for diagnostics.
func (m *ClassMapping) String() string {
	return fmt.Sprintf("%s %q (%s)", m.kind, m.name, m.nativeType)
}

// capabilityResourceName returns the name declared through the Resource
// capability, or "".
func capabilityResourceName(t reflect.Type) string {
	if r, ok := zeroValue(t).(directive.Resource); ok {
		return r.ResourceType()
	}
	return ""
}

// capabilityElementName returns the name declared through the Element
// capability, or "".
func capabilityElementName(t reflect.Type) string {
	if e, ok := zeroValue(t).(directive.Element); ok {
		return e.ElementType()
	}
	return ""
}

// zeroValue builds an addressable zero value of t so that both value and
// pointer receiver methods are visible.
func zeroValue(t reflect.Type) any {
	return reflect.New(t).Interface()
}
