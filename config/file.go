package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ErrInvalidConfig indicates a config file that could not be decoded.
var ErrInvalidConfig = errors.New("invalid config")

// File is a YAML-backed configuration source with one mapping per
// section:
//
//	profiling:
//	  freq: 500
//	statprof:
//	  mechanism: signal
//	  format: json
//
// Create instances with [Load] or [Parse].
type File struct {
	sections map[string]map[string]string
}

// Load reads and parses the YAML config file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Config path is caller-supplied.
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// Parse decodes YAML config data. Scalar values of any YAML type are
// kept in their string form; null values are treated as absent.
func Parse(data []byte) (*File, error) {
	var raw map[string]map[string]any

	err := yaml.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	sections := make(map[string]map[string]string, len(raw))

	for section, values := range raw {
		sections[section] = make(map[string]string, len(values))

		for name, value := range values {
			if value == nil {
				continue
			}

			sections[section][name] = fmt.Sprintf("%v", value)
		}
	}

	return &File{sections: sections}, nil
}

// Lookup implements [Lookuper].
func (f *File) Lookup(section, name string) (string, bool) {
	v, ok := f.sections[section][name]

	return v, ok
}

// Str implements [github.com/vcstoolkit/statprof.Source].
func (f *File) Str(section, name, fallback string) string {
	return str(f, section, name, fallback)
}

// Int implements [github.com/vcstoolkit/statprof.Source].
func (f *File) Int(section, name string, fallback int) int {
	return integer(f, section, name, fallback)
}
