// Package project loads the forge.yaml definition of an application: its
// database provider and the lists (models) with their fields.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/goccy/go-yaml"
)

// FileName is the project definition file looked up in the working directory.
const FileName = "forge.yaml"

// Providers lists the supported database providers.
var Providers = []string{"postgresql", "mysql", "sqlite"}

type Database struct {
	Provider string `yaml:"provider"`
	URL      string `yaml:"url,omitempty"`
}

// Field describes one field of a list.
type Field struct {
	// Type is the field type, e.g. "text" or "relationship". Custom fields may
	// leave it empty, in which case telemetry counts them as unknown.
	Type     string `yaml:"type,omitempty"`
	Required bool   `yaml:"required,omitempty"`
}

// TelemetryTypeName returns the type tag reported in usage telemetry.
func (f Field) TelemetryTypeName() (string, bool) {
	return f.Type, f.Type != ""
}

type List struct {
	Fields map[string]Field `yaml:"fields"`
}

// Definition is the parsed forge.yaml.
type Definition struct {
	DB    Database        `yaml:"db"`
	Lists map[string]List `yaml:"lists"`
}

// Load reads forge.yaml from dir.
func Load(dir string) (*Definition, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project definition: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing project definition\n%s", yaml.FormatError(err, true, true))
	}
	if def.Lists == nil {
		def.Lists = map[string]List{}
	}
	return &def, nil
}

// Validate checks the definition for mistakes that would break the app.
func (d *Definition) Validate() error {
	var errs []error

	if d.DB.Provider == "" {
		errs = append(errs, errors.New("db.provider is required"))
	} else if !slices.Contains(Providers, d.DB.Provider) {
		errs = append(errs, fmt.Errorf("db.provider %q is not supported, use one of %v", d.DB.Provider, Providers))
	}

	if len(d.Lists) == 0 {
		errs = append(errs, errors.New("at least one list is required"))
	}
	for _, name := range d.ListNames() {
		if len(d.Lists[name].Fields) == 0 {
			errs = append(errs, fmt.Errorf("list %s has no fields", name))
		}
	}

	return errors.Join(errs...)
}

// ListNames returns the list keys in sorted order.
func (d *Definition) ListNames() []string {
	names := make([]string, 0, len(d.Lists))
	for name := range d.Lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
