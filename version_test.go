package fhirmap

import (
	"testing"
)

func TestFHIRVersion_String(t *testing.T) {
	tests := []struct {
		version FHIRVersion
		want    string
	}{
		{R4, "R4"},
		{R4B, "R4B"},
		{R5, "R5"},
	}

	for _, tt := range tests {
		if got := tt.version.String(); got != tt.want {
			t.Errorf("%v.String() = %q; want %q", tt.version, got, tt.want)
		}
	}
}

func TestFHIRVersion_IsValid(t *testing.T) {
	tests := []struct {
		version FHIRVersion
		want    bool
	}{
		{R4, true},
		{R4B, true},
		{R5, true},
		{"R3", false},
		{"invalid", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := tt.version.IsValid(); got != tt.want {
			t.Errorf("%v.IsValid() = %v; want %v", tt.version, got, tt.want)
		}
	}
}

func TestVersionString(t *testing.T) {
	tests := []struct {
		version FHIRVersion
		want    string
	}{
		{R4, "4.0.1"},
		{R4B, "4.3.0"},
		{R5, "5.0.0"},
		{"R3", ""},
	}

	for _, tt := range tests {
		if got := VersionString(tt.version); got != tt.want {
			t.Errorf("VersionString(%v) = %q; want %q", tt.version, got, tt.want)
		}
	}
}
