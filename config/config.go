// Package config loads YAML directive overrides.
//
// An override file lets a deployment rename types, attach profile URLs or
// force construct kinds without touching the model source:
//
//	types:
//	  PatientResource:
//	    name: Patient
//	    profile: http://example.org/StructureDefinition/my-patient
//	  Moniker:
//	    kind: complex-type
//
// Overrides are applied to the directive table before model types are
// imported.
package config

import (
	"fmt"
	"os"
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/gofhir/fhirmap/directive"
)

// OverrideFile represents the YAML override configuration.
type OverrideFile struct {
	Types map[string]TypeOverride `yaml:"types"`
}

// TypeOverride carries the declared metadata for one type, keyed by the Go
// type identifier.
type TypeOverride struct {
	Name    string `yaml:"name"`
	Profile string `yaml:"profile"`
	Kind    string `yaml:"kind"`
}

// Load reads and parses a YAML override file.
func Load(path string) (*OverrideFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read override file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML override data and validates the declared kinds.
func Parse(data []byte) (*OverrideFile, error) {
	var f OverrideFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for ident, ov := range f.Types {
		if !directive.Kind(ov.Kind).Valid() {
			return nil, fmt.Errorf("type %s: unknown kind %q", ident, ov.Kind)
		}
	}
	return &f, nil
}

// Apply registers the overrides for every type in the table whose
// identifier appears in the file. Overrides for identifiers with no known
// type are an error: they indicate a stale configuration.
//
// An override replaces name, profile and kind but keeps any enum members,
// parse factory or instantiation hook already registered for the type.
func (f *OverrideFile) Apply(types map[string]reflect.Type) error {
	for ident, ov := range f.Types {
		t, ok := types[ident]
		if !ok {
			return fmt.Errorf("override for unknown type %q", ident)
		}

		d, _ := directive.Lookup(t)
		if ov.Name != "" {
			d.Name = ov.Name
		}
		if ov.Profile != "" {
			d.Profile = ov.Profile
		}
		if ov.Kind != "" {
			d.Kind = directive.Kind(ov.Kind)
		}
		directive.Register(t, d)
	}
	return nil
}
