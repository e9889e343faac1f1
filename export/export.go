// Package export converts a built mapping index into minimal R4
// StructureDefinition values, so that validator-side tooling can consume
// the index through standard FHIR types.
//
// The exported definitions are skeletons: kind, name, type and element
// paths. Cardinality, bindings and constraints are the business of real
// conformance packages, not of a type-mapping index.
package export

import (
	"github.com/gofhir/fhir/r4"

	fm "github.com/gofhir/fhirmap"
	"github.com/gofhir/fhirmap/directive"
	"github.com/gofhir/fhirmap/element"
	"github.com/gofhir/fhirmap/inspector"
	"github.com/gofhir/fhirmap/mapping"
)

// canonicalBase is the URL prefix used for exported definitions with no
// declared profile.
const canonicalBase = "http://hl7.org/fhir/StructureDefinition/"

// StructureDefinitions exports every mapping in the index as an R4
// StructureDefinition skeleton, in wire-name order.
func StructureDefinitions(in *inspector.Inspector) []r4.StructureDefinition {
	mappings := in.Mappings()
	out := make([]r4.StructureDefinition, 0, len(mappings))
	for _, m := range mappings {
		out = append(out, StructureDefinition(m))
	}
	return out
}

// StructureDefinition exports one mapping as an R4 StructureDefinition
// skeleton.
func StructureDefinition(m *mapping.ClassMapping) r4.StructureDefinition {
	name := m.Name()
	url := m.Profile()
	if url == "" {
		url = canonicalBase + name
	}
	kind := sdKind(m.Kind())
	abstract := false
	version := r4.FHIRVersion(fm.VersionString(fm.R4))

	sd := r4.StructureDefinition{
		Url:         &url,
		Name:        &name,
		Type:        &name,
		Kind:        &kind,
		Abstract:    &abstract,
		FhirVersion: &version,
	}

	if m.Kind() != directive.KindPrimitive {
		sd.Snapshot = &r4.StructureDefinitionSnapshot{
			Element: snapshotElements(name, m.Elements()),
		}
	}
	return sd
}

// snapshotElements builds the element list: the root element followed by
// one entry per descriptor. Choice elements use the "[x]" path form with
// their allowed type codes.
func snapshotElements(rootName string, descs []*element.Descriptor) []r4.ElementDefinition {
	rootPath := rootName
	out := []r4.ElementDefinition{{Path: &rootPath}}

	for _, d := range descs {
		path := rootName + "." + d.Name
		if d.Choice {
			path += "[x]"
		}

		ed := r4.ElementDefinition{Path: &path}
		for _, code := range d.Types {
			c := code
			ed.Type = append(ed.Type, r4.ElementDefinitionType{Code: &c})
		}
		out = append(out, ed)
	}
	return out
}

// sdKind maps a construct kind to the R4 StructureDefinition.kind code.
func sdKind(k directive.Kind) r4.StructureDefinitionKind {
	switch k {
	case directive.KindPrimitive:
		return r4.StructureDefinitionKindPrimitiveType
	case directive.KindComposite:
		return r4.StructureDefinitionKindComplexType
	default:
		return r4.StructureDefinitionKindResource
	}
}
