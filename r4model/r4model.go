// Package r4model registers the samply R4 model with the mapping index.
//
// The samply types are generated and cannot implement the capability
// interfaces, so every type is declared through the directive table:
// resources and datatypes with their construct kind, code-valued enums with
// their member tables. Element descriptors are derived from the generated
// json struct tags during import.
package r4model

import (
	"reflect"
	"sort"

	"github.com/samply/golang-fhir-models/fhir-models/fhir"

	"github.com/gofhir/fhirmap/directive"
	"github.com/gofhir/fhirmap/inspector"
)

// Resources maps wire-format resource names to their samply model types.
var Resources = map[string]reflect.Type{
	// Administrative
	"Patient":      reflect.TypeOf(fhir.Patient{}),
	"Practitioner": reflect.TypeOf(fhir.Practitioner{}),
	"Organization": reflect.TypeOf(fhir.Organization{}),
	"Location":     reflect.TypeOf(fhir.Location{}),
	"Encounter":    reflect.TypeOf(fhir.Encounter{}),
	"Appointment":  reflect.TypeOf(fhir.Appointment{}),
	"Schedule":     reflect.TypeOf(fhir.Schedule{}),
	"Slot":         reflect.TypeOf(fhir.Slot{}),
	"Task":         reflect.TypeOf(fhir.Task{}),

	// Clinical
	"Observation":        reflect.TypeOf(fhir.Observation{}),
	"Condition":          reflect.TypeOf(fhir.Condition{}),
	"Procedure":          reflect.TypeOf(fhir.Procedure{}),
	"AllergyIntolerance": reflect.TypeOf(fhir.AllergyIntolerance{}),
	"CarePlan":           reflect.TypeOf(fhir.CarePlan{}),
	"Goal":               reflect.TypeOf(fhir.Goal{}),
	"RiskAssessment":     reflect.TypeOf(fhir.RiskAssessment{}),
	"ServiceRequest":     reflect.TypeOf(fhir.ServiceRequest{}),

	// Medications
	"Medication":          reflect.TypeOf(fhir.Medication{}),
	"MedicationRequest":   reflect.TypeOf(fhir.MedicationRequest{}),
	"MedicationStatement": reflect.TypeOf(fhir.MedicationStatement{}),
	"Immunization":        reflect.TypeOf(fhir.Immunization{}),

	// Diagnostics
	"DiagnosticReport": reflect.TypeOf(fhir.DiagnosticReport{}),
	"Specimen":         reflect.TypeOf(fhir.Specimen{}),

	// Foundation
	"StructureDefinition": reflect.TypeOf(fhir.StructureDefinition{}),
	"ValueSet":            reflect.TypeOf(fhir.ValueSet{}),
	"CodeSystem":          reflect.TypeOf(fhir.CodeSystem{}),
	"Bundle":              reflect.TypeOf(fhir.Bundle{}),
}

// DataTypes maps wire-format datatype names to their samply model types.
var DataTypes = map[string]reflect.Type{
	"HumanName":       reflect.TypeOf(fhir.HumanName{}),
	"Identifier":      reflect.TypeOf(fhir.Identifier{}),
	"CodeableConcept": reflect.TypeOf(fhir.CodeableConcept{}),
	"Coding":          reflect.TypeOf(fhir.Coding{}),
	"Address":         reflect.TypeOf(fhir.Address{}),
	"ContactPoint":    reflect.TypeOf(fhir.ContactPoint{}),
	"Period":          reflect.TypeOf(fhir.Period{}),
	"Quantity":        reflect.TypeOf(fhir.Quantity{}),
	"Range":           reflect.TypeOf(fhir.Range{}),
	"Ratio":           reflect.TypeOf(fhir.Ratio{}),
	"Reference":       reflect.TypeOf(fhir.Reference{}),
	"Annotation":      reflect.TypeOf(fhir.Annotation{}),
	"Attachment":      reflect.TypeOf(fhir.Attachment{}),
	"Meta":            reflect.TypeOf(fhir.Meta{}),
	"Narrative":       reflect.TypeOf(fhir.Narrative{}),
}

// coded is the method set shared by the generated samply code enums.
type coded interface {
	Code() string
	Display() string
}

// members builds the enum member table for a generated code type.
func members[E coded](values ...E) []directive.EnumMember {
	out := make([]directive.EnumMember, 0, len(values))
	for _, v := range values {
		out = append(out, directive.EnumMember{
			Symbol: v.Display(),
			Code:   v.Code(),
			Value:  v,
		})
	}
	return out
}

// Register declares directives for the samply model. Call once at startup.
// Directives already registered for a type (for example from a config
// override) keep their name, profile and kind; Register only fills in what
// is missing.
func Register() {
	for name, t := range Resources {
		declare(t, directive.KindResource, name, nil)
	}
	for name, t := range DataTypes {
		declare(t, directive.KindComposite, name, nil)
	}

	declare(reflect.TypeOf(fhir.AdministrativeGender(0)), directive.KindPrimitive,
		"AdministrativeGender", members(
			fhir.AdministrativeGenderMale,
			fhir.AdministrativeGenderFemale,
			fhir.AdministrativeGenderOther,
			fhir.AdministrativeGenderUnknown,
		))
	declare(reflect.TypeOf(fhir.ObservationStatus(0)), directive.KindPrimitive,
		"ObservationStatus", members(
			fhir.ObservationStatusRegistered,
			fhir.ObservationStatusPreliminary,
			fhir.ObservationStatusFinal,
			fhir.ObservationStatusAmended,
			fhir.ObservationStatusCorrected,
			fhir.ObservationStatusCancelled,
			fhir.ObservationStatusEnteredInError,
			fhir.ObservationStatusUnknown,
		))
	declare(reflect.TypeOf(fhir.NarrativeStatus(0)), directive.KindPrimitive,
		"NarrativeStatus", members(
			fhir.NarrativeStatusGenerated,
			fhir.NarrativeStatusExtensions,
			fhir.NarrativeStatusAdditional,
			fhir.NarrativeStatusEmpty,
		))
}

// declare merges the model's default metadata into whatever directive is
// already registered for t, without clobbering explicit overrides.
func declare(t reflect.Type, kind directive.Kind, name string, enum []directive.EnumMember) {
	d, _ := directive.Lookup(t)
	if d.Kind == directive.KindUnspecified {
		d.Kind = kind
	}
	if d.Name == "" {
		d.Name = name
	}
	if len(d.Enum) == 0 {
		d.Enum = enum
	}
	directive.Register(t, d)
}

// Types returns the identifier-to-type table of every registered model
// type, for use with config overrides.
func Types() map[string]reflect.Type {
	out := make(map[string]reflect.Type, len(Resources)+len(DataTypes)+3)
	for _, t := range Resources {
		out[t.Name()] = t
	}
	for _, t := range DataTypes {
		out[t.Name()] = t
	}
	out["AdministrativeGender"] = reflect.TypeOf(fhir.AdministrativeGender(0))
	out["ObservationStatus"] = reflect.TypeOf(fhir.ObservationStatus(0))
	out["NarrativeStatus"] = reflect.TypeOf(fhir.NarrativeStatus(0))
	return out
}

// Import registers the model directives and imports every type into the
// inspector, resources and datatypes in name order, enums last.
func Import(in *inspector.Inspector) error {
	Register()

	for _, table := range []map[string]reflect.Type{Resources, DataTypes} {
		names := make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			if _, err := in.ImportType(table[name]); err != nil {
				return err
			}
		}
	}

	return in.Import(
		reflect.TypeOf(fhir.AdministrativeGender(0)),
		reflect.TypeOf(fhir.ObservationStatus(0)),
		reflect.TypeOf(fhir.NarrativeStatus(0)),
	)
}
