package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcstoolkit/statprof/config"
)

func TestSchema(t *testing.T) {
	t.Parallel()

	schema := config.Schema()

	require.Contains(t, schema.Properties, "profiling")
	require.Contains(t, schema.Properties, "statprof")

	freq := schema.Properties["profiling"].Properties["freq"]
	require.NotNil(t, freq)
	assert.Equal(t, "integer", freq.Type)

	format := schema.Properties["statprof"].Properties["format"]
	require.NotNil(t, format)
	assert.Equal(t, []any{"hotpath", "json"}, format.Enum)

	mechanism := schema.Properties["statprof"].Properties["mechanism"]
	require.NotNil(t, mechanism)
	assert.Equal(t, []any{"thread", "signal"}, mechanism.Enum)

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.Contains(t, string(data), "draft-07")
}
