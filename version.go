package fhirmap

// FHIRVersion represents a FHIR specification version.
type FHIRVersion string

// Supported FHIR versions.
const (
	// R4 is FHIR Release 4 (4.0.1)
	R4 FHIRVersion = "R4"
	// R4B is FHIR Release 4B (4.3.0)
	R4B FHIRVersion = "R4B"
	// R5 is FHIR Release 5 (5.0.0)
	R5 FHIRVersion = "R5"
)

// String returns the version string.
func (v FHIRVersion) String() string {
	return string(v)
}

// IsValid returns true if this is a supported FHIR version.
func (v FHIRVersion) IsValid() bool {
	switch v {
	case R4, R4B, R5:
		return true
	default:
		return false
	}
}

// versionStrings maps FHIR versions to the version strings used in
// StructureDefinitions.
var versionStrings = map[FHIRVersion]string{
	R4:  "4.0.1",
	R4B: "4.3.0",
	R5:  "5.0.0",
}

// VersionString returns the StructureDefinition version string for a FHIR
// version, or "" for unknown versions.
func VersionString(v FHIRVersion) string {
	return versionStrings[v]
}
