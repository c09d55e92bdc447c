package config_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcstoolkit/statprof"
	"github.com/vcstoolkit/statprof/config"
)

func TestMap(t *testing.T) {
	t.Parallel()

	m := config.Map{
		"profiling.freq":  "250",
		"statprof.format": "json",
		"statprof.junk":   "not a number",
	}

	assert.Equal(t, "json", m.Str("statprof", "format", "hotpath"))
	assert.Equal(t, "thread", m.Str("statprof", "mechanism", "thread"))
	assert.Equal(t, 250, m.Int("profiling", "freq", 1000))
	assert.Equal(t, 7, m.Int("profiling", "missing", 7))
	assert.Equal(t, 7, m.Int("statprof", "junk", 7))
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	c := config.NewConfig()

	// No values set: everything resolves to fallbacks.
	assert.Zero(t, c.Freq)
	assert.Empty(t, c.Mechanism)
	assert.Empty(t, c.Format)
	assert.Equal(t, 1000, c.Int("profiling", "freq", 1000))
	assert.Equal(t, "hotpath", c.Str("statprof", "format", "hotpath"))
}

func TestConfig_RegisterFlags(t *testing.T) {
	t.Parallel()

	c := config.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	c.RegisterFlags(flags)

	wantFlags := []string{
		"profiling-freq",
		"statprof-mechanism",
		"statprof-format",
	}

	for _, name := range wantFlags {
		flag := flags.Lookup(name)
		require.NotNil(t, flag, "flag %s should be registered", name)
	}
}

func TestConfig_RegisterFlags_Parsing(t *testing.T) {
	t.Parallel()

	c := config.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	c.RegisterFlags(flags)

	err := flags.Parse([]string{
		"--profiling-freq=500",
		"--statprof-mechanism=signal",
		"--statprof-format=json",
	})
	require.NoError(t, err)

	assert.Equal(t, 500, c.Freq)
	assert.Equal(t, "signal", c.Mechanism)
	assert.Equal(t, "json", c.Format)

	assert.Equal(t, 500, c.Int(statprof.SectionProfiling, statprof.KeyFreq, 1000))
	assert.Equal(t, "signal", c.Str(statprof.SectionStatprof, statprof.KeyMechanism, "thread"))
	assert.Equal(t, "json", c.Str(statprof.SectionStatprof, statprof.KeyFormat, "hotpath"))
}

func TestConfig_RegisterFlags_Defaults(t *testing.T) {
	t.Parallel()

	c := config.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	c.RegisterFlags(flags)

	err := flags.Parse([]string{})
	require.NoError(t, err)

	assert.Equal(t, 1000, c.Freq)
	assert.Equal(t, "thread", c.Mechanism)
	assert.Equal(t, "hotpath", c.Format)
}

func TestConfig_RegisterCompletions(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		flag string
		want []string
	}{
		"freq completions": {
			flag: "profiling-freq",
			want: nil,
		},
		"mechanism completions": {
			flag: "statprof-mechanism",
			want: []string{"thread", "signal"},
		},
		"format completions": {
			flag: "statprof-format",
			want: []string{"hotpath", "json"},
		},
	}

	c := config.NewConfig()

	cmd := &cobra.Command{Use: "test"}
	c.RegisterFlags(cmd.Flags())

	err := c.RegisterCompletions(cmd)
	require.NoError(t, err)

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			completionFn, ok := cmd.GetFlagCompletionFunc(tc.flag)
			require.True(t, ok)

			values, directive := completionFn(cmd, nil, "")
			assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
			assert.Equal(t, tc.want, values)
		})
	}
}

func TestLayered_FlagDefaults(t *testing.T) {
	t.Parallel()

	c := config.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	c.RegisterFlags(flags)
	require.NoError(t, flags.Parse([]string{"--statprof-mechanism=signal"}))

	file := config.Map{
		"profiling.freq":  "250",
		"statprof.format": "json",
	}

	l := config.Layered{c, file}

	// Registered-but-unset flags keep their defaults out of the chain;
	// explicitly set flags win.
	assert.Equal(t, 250, l.Int("profiling", "freq", 1000))
	assert.Equal(t, "json", l.Str("statprof", "format", "hotpath"))
	assert.Equal(t, "signal", l.Str("statprof", "mechanism", "thread"))
}

func TestLayered(t *testing.T) {
	t.Parallel()

	repo := config.Map{"statprof.format": "json"}
	user := config.Map{
		"statprof.format":    "hotpath",
		"statprof.mechanism": "signal",
	}

	l := config.Layered{repo, user}

	// First source with a value wins; later sources fill the gaps.
	assert.Equal(t, "json", l.Str("statprof", "format", "hotpath"))
	assert.Equal(t, "signal", l.Str("statprof", "mechanism", "thread"))
	assert.Equal(t, 1000, l.Int("profiling", "freq", 1000))
}
