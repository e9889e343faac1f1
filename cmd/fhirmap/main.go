// Package main implements the fhirmap CLI tool.
// It builds the R4 mapping index and prints it for inspection, or exports
// it as StructureDefinition skeletons.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	fm "github.com/gofhir/fhirmap"
	"github.com/gofhir/fhirmap/config"
	"github.com/gofhir/fhirmap/export"
	"github.com/gofhir/fhirmap/inspector"
	"github.com/gofhir/fhirmap/mapping"
	"github.com/gofhir/fhirmap/pkg/logger"
	"github.com/gofhir/fhirmap/r4model"
)

const usage = `fhirmap - FHIR wire-format mapping index

Usage:
  fhirmap [options]
  fhirmap [options] -name Patient

Examples:
  fhirmap
  fhirmap -name Observation
  fhirmap -export -output sd.json
  fhirmap -overrides overrides.yaml -strict

Options:
`

// cliConfig holds CLI configuration.
type cliConfig struct {
	Name      string
	Overrides string
	Output    string
	Export    bool
	Strict    bool
	Verbose   bool
}

func main() {
	cfg := parseFlags()

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "fhirmap: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() *cliConfig {
	cfg := &cliConfig{}

	flag.StringVar(&cfg.Name, "name", "", "show only the mapping with this wire name")
	flag.StringVar(&cfg.Overrides, "overrides", "", "YAML directive override file")
	flag.StringVar(&cfg.Output, "output", "", "write output to this file instead of stdout")
	flag.BoolVar(&cfg.Export, "export", false, "export StructureDefinition skeletons as JSON")
	flag.BoolVar(&cfg.Strict, "strict", false, "fail on duplicate wire names")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	return cfg
}

func run(cfg *cliConfig) error {
	if cfg.Overrides != "" {
		overrides, err := config.Load(cfg.Overrides)
		if err != nil {
			return err
		}
		if err := overrides.Apply(r4model.Types()); err != nil {
			return err
		}
	}

	opts := []fm.Option{fm.WithStrictNames(cfg.Strict)}
	if cfg.Verbose {
		opts = append(opts, fm.WithLogLevel(logger.LevelDebug))
	}

	in := inspector.New(opts...)
	if err := r4model.Import(in); err != nil {
		return err
	}

	out := os.Stdout
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if cfg.Export {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(export.StructureDefinitions(in))
	}

	if cfg.Name != "" {
		m := in.FindByName(cfg.Name)
		if m == nil {
			return fmt.Errorf("no mapping named %q", cfg.Name)
		}
		printMapping(out, m)
		return nil
	}

	for _, m := range in.Mappings() {
		printMapping(out, m)
	}
	return nil
}

func printMapping(out io.Writer, m *mapping.ClassMapping) {
	fmt.Fprintln(out, m)
	for _, d := range m.Elements() {
		if d.Choice {
			fmt.Fprintf(out, "  %s[x] %v\n", d.Name, d.Types)
			continue
		}
		fmt.Fprintf(out, "  %s\n", d.Name)
	}
}
