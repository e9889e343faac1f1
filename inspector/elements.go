package inspector

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gofhir/fhirmap/element"
)

// deriveDescriptors builds element descriptors from the exported struct
// fields of t.
//
// The wire name comes from the json tag (first comma-separated part), or
// the field name with a lowered first letter when no tag is present.
// Fields tagged json:"-" and embedded fields are skipped.
//
// Choice elements are declared through the fhir tag:
//
//	Value any `json:"value" fhir:"choice:Quantity,string,boolean"`
//
// where the optional code list restricts the accepted type suffixes.
func deriveDescriptors(t reflect.Type) ([]*element.Descriptor, error) {
	var descs []*element.Descriptor

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Anonymous {
			continue
		}

		name := jsonName(f)
		if name == "" {
			continue
		}

		d := &element.Descriptor{
			Name:       name,
			FieldIndex: f.Index,
		}
		if tag, ok := f.Tag.Lookup("fhir"); ok {
			if err := applyFHIRTag(d, tag); err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
		}
		descs = append(descs, d)
	}
	return descs, nil
}

// jsonName extracts the wire name of a field, or "" when the field is
// excluded from serialization.
func jsonName(f reflect.StructField) string {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return lowerFirst(f.Name)
	}
	name, _, _ := strings.Cut(tag, ",")
	switch name {
	case "-":
		return ""
	case "":
		return lowerFirst(f.Name)
	default:
		return name
	}
}

// applyFHIRTag parses a fhir struct tag onto a descriptor. The only
// recognized directive is "choice", optionally followed by a colon and a
// comma-separated list of allowed type codes.
func applyFHIRTag(d *element.Descriptor, tag string) error {
	if tag == "" {
		return nil
	}
	kind, rest, _ := strings.Cut(tag, ":")
	if kind != "choice" {
		return fmt.Errorf("unknown fhir tag directive %q", kind)
	}
	d.Choice = true
	if rest != "" {
		d.Types = strings.Split(rest, ",")
	}
	return nil
}

// lowerFirst lowercases the first letter of a string.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
