// Package directive holds the declarative metadata that model types carry
// into the mapping index: wire-format names, profile URLs, construct kinds,
// enumeration members and generic instantiation hooks.
//
// Metadata comes from two places. Hand-authored model types implement the
// capability interfaces (Resource, Element) directly. Generated or third-party
// models, which cannot be changed, are described through the process-wide
// directive table populated at startup via Register.
package directive

import (
	"fmt"
	"reflect"
	"sync"
)

// Kind classifies which wire-format construct a model type maps to.
// The values match StructureDefinition.kind codes.
type Kind string

// Construct kinds.
const (
	KindUnspecified Kind = ""
	KindPrimitive   Kind = "primitive-type"
	KindComposite   Kind = "complex-type"
	KindResource    Kind = "resource"
)

// Valid reports whether k is a known construct kind.
func (k Kind) Valid() bool {
	switch k {
	case KindUnspecified, KindPrimitive, KindComposite, KindResource:
		return true
	default:
		return false
	}
}

// Resource is the capability implemented by model types that serialize as
// top-level resources. ResourceType must return a constant and be callable
// on the zero value.
type Resource interface {
	ResourceType() string
}

// Element is the capability implemented by model types that serialize as
// composite datatype elements. ElementType must return a constant and be
// callable on the zero value.
type Element interface {
	ElementType() string
}

// EnumMember describes one member of an enumerated primitive type.
type EnumMember struct {
	// Symbol is the human-readable member name (e.g. "Male").
	Symbol string

	// Code is the wire-format literal (e.g. "male").
	Code string

	// Value is the native member value returned by parsing.
	Value any
}

// Directive is the declared metadata for one model type.
// The zero value declares nothing; unset fields fall back to convention.
type Directive struct {
	// Name overrides the wire-format construct name.
	Name string

	// Profile is the canonical profile URL; meaningful for resources only.
	Profile string

	// Kind forces the construct kind when the type implements no capability.
	Kind Kind

	// Enum declares the members of an enumerated primitive.
	// A non-empty Enum implies a primitive construct.
	Enum []EnumMember

	// Parse is an optional text-to-value factory of shape
	// func(string) (T, error) with T assignable to the declared type.
	Parse any

	// Instantiate closes an open generic family with concrete type
	// arguments. Present only on the family's representative type.
	Instantiate func(args ...reflect.Type) (reflect.Type, error)
}

// TypeParam is the placeholder type argument used to register the
// representative instantiation of an open generic family.
type TypeParam struct{}

// InstantiationTable maps a single concrete type argument to the closed
// instantiation of a generic family. Go reflection cannot instantiate
// generics, so families enumerate their closures up front.
type InstantiationTable map[reflect.Type]reflect.Type

// Instantiate implements the Directive.Instantiate contract for
// single-parameter families.
func (tb InstantiationTable) Instantiate(args ...reflect.Type) (reflect.Type, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("generic family takes 1 type argument, got %d", len(args))
	}
	closed, ok := tb[args[0]]
	if !ok {
		return nil, fmt.Errorf("no instantiation registered for type argument %s", args[0])
	}
	return closed, nil
}

var (
	tableMu sync.RWMutex
	table   = map[reflect.Type]Directive{}
)

// Register declares metadata for a model type. Registering the same type
// twice replaces the earlier directive; registration is expected to happen
// once at process startup, before any lookups.
func Register(t reflect.Type, d Directive) {
	tableMu.Lock()
	table[t] = d
	tableMu.Unlock()
}

// RegisterFor is a generic convenience wrapper around Register.
func RegisterFor[T any](d Directive) {
	Register(reflect.TypeOf((*T)(nil)).Elem(), d)
}

// Lookup returns the directive registered for a type, if any.
func Lookup(t reflect.Type) (Directive, bool) {
	tableMu.RLock()
	d, ok := table[t]
	tableMu.RUnlock()
	return d, ok
}

// Reset clears the directive table. Intended for tests.
func Reset() {
	tableMu.Lock()
	table = map[reflect.Type]Directive{}
	tableMu.Unlock()
}
