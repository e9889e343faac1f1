package element

import "strings"

// Descriptor describes one declared field of a composite or resource type
// as the wire format sees it.
type Descriptor struct {
	// Name is the declared wire-format field name (e.g. "value" for the
	// choice element value[x]).
	Name string

	// Choice is true when the field serializes under a type-qualified name
	// such as valueString or valueQuantity.
	Choice bool

	// Types holds the allowed type codes of a choice field. Empty means any
	// known suffix is accepted.
	Types []string

	// FieldIndex locates the Go struct field backing this element, for use
	// by the serializer. Nil for elements without a direct field.
	FieldIndex []int
}

// MatchesSuffixed reports whether wireName is a type-qualified occurrence of
// this descriptor's declared name, e.g. "valueQuantity" for "value".
// Non-choice descriptors never match.
func (d *Descriptor) MatchesSuffixed(wireName string) bool {
	if !d.Choice || len(wireName) <= len(d.Name) {
		return false
	}
	if !strings.EqualFold(wireName[:len(d.Name)], d.Name) {
		return false
	}

	suffix := wireName[len(d.Name):]
	if !IsChoiceSuffix(suffix) {
		return false
	}
	if len(d.Types) == 0 {
		return true
	}
	for _, code := range d.Types {
		if strings.EqualFold(SuffixFor(code), suffix) {
			return true
		}
	}
	return false
}

// SuffixFor returns the wire-format suffix for a type code, e.g. "String"
// for "string" or "Quantity" for "Quantity".
func SuffixFor(typeCode string) string {
	return upperFirst(typeCode)
}

// upperFirst capitalizes the first letter of a string.
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
