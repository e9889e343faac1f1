package element

// ChoiceSuffixes contains all valid suffixes for choice elements (value[x]).
// When a serializer encounters valueString, valueCodeableConcept, etc., the
// index needs to recognize the name as a qualified form of value[x].
var ChoiceSuffixes = []string{
	// Primitives
	"String",
	"Boolean",
	"Integer",
	"Integer64",
	"Decimal",
	"DateTime",
	"Date",
	"Time",
	"Instant",
	"Uri",
	"Url",
	"Canonical",
	"Code",
	"Id",
	"Markdown",
	"Base64Binary",
	"Oid",
	"Uuid",
	"PositiveInt",
	"UnsignedInt",

	// Complex types
	"Address",
	"Age",
	"Annotation",
	"Attachment",
	"CodeableConcept",
	"CodeableReference",
	"Coding",
	"ContactDetail",
	"ContactPoint",
	"Contributor",
	"Count",
	"DataRequirement",
	"Distance",
	"Dosage",
	"Duration",
	"Expression",
	"HumanName",
	"Identifier",
	"Meta",
	"Money",
	"MoneyQuantity",
	"Narrative",
	"ParameterDefinition",
	"Period",
	"Quantity",
	"Range",
	"Ratio",
	"RatioRange",
	"Reference",
	"RelatedArtifact",
	"SampledData",
	"Signature",
	"SimpleQuantity",
	"Timing",
	"TriggerDefinition",
	"UsageContext",
}

var choiceSuffixSet = func() map[string]bool {
	set := make(map[string]bool, len(ChoiceSuffixes))
	for _, s := range ChoiceSuffixes {
		set[s] = true
	}
	return set
}()

// IsChoiceSuffix reports whether s is a known choice-type suffix.
func IsChoiceSuffix(s string) bool {
	return choiceSuffixSet[s]
}
