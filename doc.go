// Package fhirmap builds a runtime metadata index describing how Go
// model types map to FHIR wire-format constructs.
//
// The index tells a serializer, for any model type: its wire-format name,
// its optional profile URL, its declared elements (including choice
// elements like value[x] serialized under type-qualified names), and, for
// primitive types, a function that parses wire text into a native value.
//
// # Quick Start
//
//	import (
//	    fm "github.com/gofhir/fhirmap"
//	    "github.com/gofhir/fhirmap/inspector"
//	    "github.com/gofhir/fhirmap/r4model"
//	)
//
//	in := inspector.New(fm.WithStrictNames(true))
//	if err := r4model.Import(in); err != nil {
//	    log.Fatal(err)
//	}
//
//	cm := in.FindByName("Patient")
//	desc, err := cm.FindElement("deceasedBoolean") // resolves deceased[x]
//
// # Architecture
//
// The package follows patterns from HAPI FHIR and Firely, adapted for Go:
//
//   - mapping: per-type ClassMapping records, classification predicates,
//     generic specialization
//   - element: case-insensitive field index with choice-suffix fallback
//   - primitive: text-to-value parse resolution (enums, TextUnmarshaler,
//     registered factories)
//   - directive: the declarative metadata model types carry
//   - inspector: the startup step that imports model types into the full
//     name-indexed mapping set
//
// Classification and name derivation are metadata-only: no component
// validates instances against a schema. Profiled (constrained) variants of
// composite and primitive types are not supported.
package fhirmap
