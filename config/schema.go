package config

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/vcstoolkit/statprof"
)

// Schema returns a JSON Schema (Draft 7) describing the YAML config
// file accepted by [Load]. Unknown sections and names validate freely
// so hosts can carry their own settings alongside the profiling ones.
func Schema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Schema:      "http://json-schema.org/draft-07/schema#",
		Title:       "statprof configuration",
		Description: "Profiling session settings: sampling frequency, mechanism, and report format.",
		Type:        "object",
		Properties: map[string]*jsonschema.Schema{
			statprof.SectionProfiling: {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					statprof.KeyFreq: {
						Type:        "integer",
						Description: "Sampling frequency in samples per second. Values <= 0 are ignored with a warning.",
					},
				},
			},
			statprof.SectionStatprof: {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					statprof.KeyMechanism: {
						Type:        "string",
						Description: "Sampling trigger strategy.",
						Enum:        enum(statprof.GetAllMechanismStrings()),
					},
					statprof.KeyFormat: {
						Type:        "string",
						Description: "Report rendering format.",
						Enum:        enum(statprof.GetAllFormatStrings()),
					},
				},
			},
		},
	}
}

func enum(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}

	return out
}
