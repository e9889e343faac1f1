package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gofhir/fhirmap/directive"
)

type patientModel struct{}

func (patientModel) ResourceType() string { return "Patient" }

type monikerModel struct{}

func TestParse(t *testing.T) {
	f, err := Parse([]byte(`
types:
  PatientModel:
    name: Patient
    profile: http://example.org/StructureDefinition/my-patient
  MonikerModel:
    kind: complex-type
`))
	require.NoError(t, err)
	require.Len(t, f.Types, 2)

	assert.Equal(t, "Patient", f.Types["PatientModel"].Name)
	assert.Equal(t, "http://example.org/StructureDefinition/my-patient", f.Types["PatientModel"].Profile)
	assert.Equal(t, "complex-type", f.Types["MonikerModel"].Kind)
}

func TestParse_UnknownKind(t *testing.T) {
	_, err := Parse([]byte(`
types:
  MonikerModel:
    kind: logical
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown kind "logical"`)
}

func TestParse_BadYAML(t *testing.T) {
	_, err := Parse([]byte("types: ["))
	require.Error(t, err)
}

func TestApply(t *testing.T) {
	t.Cleanup(directive.Reset)
	directive.Reset()

	f, err := Parse([]byte(`
types:
  PatientModel:
    profile: http://example.org/StructureDefinition/my-patient
  MonikerModel:
    name: Moniker
    kind: complex-type
`))
	require.NoError(t, err)

	types := map[string]reflect.Type{
		"PatientModel": reflect.TypeOf(patientModel{}),
		"MonikerModel": reflect.TypeOf(monikerModel{}),
	}
	require.NoError(t, f.Apply(types))

	d, ok := directive.Lookup(reflect.TypeOf(patientModel{}))
	require.True(t, ok)
	assert.Equal(t, "http://example.org/StructureDefinition/my-patient", d.Profile)
	assert.Empty(t, d.Name, "unset override fields leave the directive alone")

	d, ok = directive.Lookup(reflect.TypeOf(monikerModel{}))
	require.True(t, ok)
	assert.Equal(t, "Moniker", d.Name)
	assert.Equal(t, directive.KindComposite, d.Kind)
}

func TestApply_KeepsRegisteredCapabilities(t *testing.T) {
	t.Cleanup(directive.Reset)
	directive.Reset()

	members := []directive.EnumMember{{Symbol: "Male", Code: "male", Value: 1}}
	directive.RegisterFor[monikerModel](directive.Directive{Enum: members})

	f, err := Parse([]byte(`
types:
  MonikerModel:
    name: Moniker
`))
	require.NoError(t, err)
	require.NoError(t, f.Apply(map[string]reflect.Type{
		"MonikerModel": reflect.TypeOf(monikerModel{}),
	}))

	d, _ := directive.Lookup(reflect.TypeOf(monikerModel{}))
	assert.Equal(t, "Moniker", d.Name)
	assert.Equal(t, members, d.Enum, "overrides must not drop enum members")
}

func TestApply_UnknownType(t *testing.T) {
	f, err := Parse([]byte(`
types:
  NoSuchModel:
    name: Nothing
`))
	require.NoError(t, err)

	err = f.Apply(map[string]reflect.Type{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown type "NoSuchModel"`)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte("types:\n  PatientModel:\n    name: Patient\n"), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Patient", f.Types["PatientModel"].Name)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
