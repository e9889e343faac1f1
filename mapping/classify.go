package mapping

import (
	"encoding"
	"reflect"
	"strings"

	"github.com/gofhir/fhirmap/directive"
)

var (
	resourceCapability  = reflect.TypeOf((*directive.Resource)(nil)).Elem()
	elementCapability   = reflect.TypeOf((*directive.Element)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// IsResourceType reports whether t is eligible as a resource mapping: it
// implements the Resource capability, follows the "...Resource" naming
// convention, or carries a resource directive.
func IsResourceType(t reflect.Type) bool {
	if implements(t, resourceCapability) {
		return true
	}
	name := t.Name()
	if name != resourceSuffix && strings.HasSuffix(name, resourceSuffix) {
		return true
	}
	d, ok := directive.Lookup(t)
	return ok && d.Kind == directive.KindResource
}

// IsCompositeType reports whether t is eligible as a composite datatype
// mapping: it implements the Element capability or carries a composite
// directive.
func IsCompositeType(t reflect.Type) bool {
	if implements(t, elementCapability) {
		return true
	}
	d, ok := directive.Lookup(t)
	return ok && d.Kind == directive.KindComposite
}

// IsPrimitiveType reports whether t is eligible as a primitive mapping: *t
// implements encoding.TextUnmarshaler, or its directive declares a
// primitive kind, enumeration members, or a parse factory.
func IsPrimitiveType(t reflect.Type) bool {
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return true
	}
	d, ok := directive.Lookup(t)
	if !ok {
		return false
	}
	return d.Kind == directive.KindPrimitive || len(d.Enum) > 0 || d.Parse != nil
}

// Classify determines the construct kind for a type. The predicates are not
// mutually exclusive; resource wins over composite, composite over
// primitive. The second result is false for unmappable types.
//
// Classify may be called speculatively: a false result carries no error.
func Classify(t reflect.Type) (directive.Kind, bool) {
	switch {
	case IsResourceType(t):
		return directive.KindResource, true
	case IsCompositeType(t):
		return directive.KindComposite, true
	case IsPrimitiveType(t):
		return directive.KindPrimitive, true
	default:
		return directive.KindUnspecified, false
	}
}

// implements reports whether t or *t satisfies the interface type iface.
func implements(t reflect.Type, iface reflect.Type) bool {
	return t.Implements(iface) || reflect.PointerTo(t).Implements(iface)
}
