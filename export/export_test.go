package export

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gofhir/fhirmap/directive"
	"github.com/gofhir/fhirmap/inspector"
)

type observationResource struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Value  any    `json:"value" fhir:"choice:Quantity,string"`
}

func (observationResource) ResourceType() string { return "Observation" }

type periodElement struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (periodElement) ElementType() string { return "Period" }

type markdownText string

func (s *markdownText) UnmarshalText(text []byte) error {
	*s = markdownText(text)
	return nil
}

type profiledVital struct{}

func (profiledVital) ResourceType() string { return "Observation" }

func TestStructureDefinition_Resource(t *testing.T) {
	in := inspector.New()
	m, err := in.ImportType(reflect.TypeOf(observationResource{}))
	require.NoError(t, err)

	sd := StructureDefinition(m)

	assert.Equal(t, "Observation", *sd.Name)
	assert.Equal(t, "Observation", *sd.Type)
	assert.Equal(t, "http://hl7.org/fhir/StructureDefinition/Observation", *sd.Url)
	assert.Equal(t, "resource", string(*sd.Kind))
	assert.False(t, *sd.Abstract)
	assert.Equal(t, "4.0.1", string(*sd.FhirVersion))

	require.NotNil(t, sd.Snapshot)
	paths := make([]string, 0, len(sd.Snapshot.Element))
	for _, ed := range sd.Snapshot.Element {
		paths = append(paths, *ed.Path)
	}
	assert.Equal(t, []string{
		"Observation",
		"Observation.id",
		"Observation.status",
		"Observation.value[x]",
	}, paths)
}

func TestStructureDefinition_ChoiceTypes(t *testing.T) {
	in := inspector.New()
	m, err := in.ImportType(reflect.TypeOf(observationResource{}))
	require.NoError(t, err)

	sd := StructureDefinition(m)
	choice := sd.Snapshot.Element[3]

	require.Len(t, choice.Type, 2)
	assert.Equal(t, "Quantity", *choice.Type[0].Code)
	assert.Equal(t, "string", *choice.Type[1].Code)
}

func TestStructureDefinition_Composite(t *testing.T) {
	in := inspector.New()
	m, err := in.ImportType(reflect.TypeOf(periodElement{}))
	require.NoError(t, err)

	sd := StructureDefinition(m)

	assert.Equal(t, "complex-type", string(*sd.Kind))
	require.NotNil(t, sd.Snapshot)
	assert.Len(t, sd.Snapshot.Element, 3)
}

func TestStructureDefinition_Primitive(t *testing.T) {
	in := inspector.New()
	m, err := in.ImportType(reflect.TypeOf(markdownText("")))
	require.NoError(t, err)

	sd := StructureDefinition(m)

	assert.Equal(t, "primitive-type", string(*sd.Kind))
	assert.Nil(t, sd.Snapshot, "primitives export no element snapshot")
}

func TestStructureDefinition_DeclaredProfile(t *testing.T) {
	t.Cleanup(directive.Reset)
	directive.RegisterFor[profiledVital](directive.Directive{
		Name:    "Observation",
		Kind:    directive.KindResource,
		Profile: "http://example.org/StructureDefinition/vitalsigns",
	})

	in := inspector.New()
	m, err := in.ImportType(reflect.TypeOf(profiledVital{}))
	require.NoError(t, err)

	sd := StructureDefinition(m)
	assert.Equal(t, "http://example.org/StructureDefinition/vitalsigns", *sd.Url)
}

func TestStructureDefinitions_Order(t *testing.T) {
	in := inspector.New()
	require.NoError(t, in.Import(
		reflect.TypeOf(periodElement{}),
		reflect.TypeOf(observationResource{}),
	))

	sds := StructureDefinitions(in)
	require.Len(t, sds, 2)
	assert.Equal(t, "Observation", *sds[0].Name)
	assert.Equal(t, "Period", *sds[1].Name)
}
