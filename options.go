package fhirmap

import "github.com/gofhir/fhirmap/pkg/logger"

// Option configures an index build.
type Option func(*Options)

// Options holds all configuration for building a mapping index.
type Options struct {
	// StrictNames makes a duplicate wire-format name an import error.
	// When false, the later import wins and a warning is logged.
	StrictNames bool

	// SpecializationCacheSize bounds the cache of closed-generic mappings.
	SpecializationCacheSize int

	// LogLevel controls diagnostic output during import.
	LogLevel logger.Level
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		StrictNames:             false,
		SpecializationCacheSize: 256,
		LogLevel:                logger.LevelInfo,
	}
}

// WithStrictNames makes duplicate wire-format names an import error.
func WithStrictNames(strict bool) Option {
	return func(o *Options) {
		o.StrictNames = strict
	}
}

// WithSpecializationCacheSize sets the closed-generic mapping cache size.
func WithSpecializationCacheSize(n int) Option {
	return func(o *Options) {
		o.SpecializationCacheSize = n
	}
}

// WithLogLevel sets the diagnostic log level used during import.
func WithLogLevel(level logger.Level) Option {
	return func(o *Options) {
		o.LogLevel = level
	}
}
