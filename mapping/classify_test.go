package mapping

import (
	"reflect"
	"testing"

	"github.com/gofhir/fhirmap/directive"
)

type plainStruct struct{}

func TestClassify(t *testing.T) {
	t.Cleanup(directive.Reset)

	directive.RegisterFor[plainStruct](directive.Directive{Kind: directive.KindComposite})
	directive.RegisterFor[gender](genderDirective())

	tests := []struct {
		name   string
		typ    reflect.Type
		want   directive.Kind
		wantOK bool
	}{
		{"naming convention", reflect.TypeOf(PatientResource{}), directive.KindResource, true},
		{"resource capability", reflect.TypeOf(questionnaire{}), directive.KindResource, true},
		{"element capability", reflect.TypeOf(period{}), directive.KindComposite, true},
		{"composite directive", reflect.TypeOf(plainStruct{}), directive.KindComposite, true},
		{"enum directive", reflect.TypeOf(gender(0)), directive.KindPrimitive, true},
		{"unmappable", reflect.TypeOf(0), directive.KindUnspecified, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.typ)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Classify(%s) = (%q, %v); want (%q, %v)",
					tt.typ, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestIsResourceType_BareSuffix(t *testing.T) {
	if IsResourceType(reflect.TypeOf(Resource{})) {
		t.Error("IsResourceType(Resource) = true; a type named exactly \"Resource\" has no suffix to strip")
	}
}

func TestPredicates_NotExclusive(t *testing.T) {
	t.Cleanup(directive.Reset)

	// A TextUnmarshaler named with the Resource suffix satisfies both
	// predicates; the caller chooses the factory.
	if !IsResourceType(reflect.TypeOf(oddResource{})) {
		t.Error("IsResourceType() = false; want true via naming convention")
	}
	if !IsPrimitiveType(reflect.TypeOf(oddResource{})) {
		t.Error("IsPrimitiveType() = false; want true via TextUnmarshaler")
	}
}

type oddResource struct{ v string }

func (o *oddResource) UnmarshalText(text []byte) error {
	o.v = string(text)
	return nil
}
