package config

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vcstoolkit/statprof"
)

// Flags holds CLI flag names for profiling configuration, allowing
// callers to customize flag names while keeping sensible defaults via
// [NewConfig].
type Flags struct {
	Freq      string
	Mechanism string
	Format    string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for profiling configuration. With a
// [*pflag.FlagSet] bound via [Config.RegisterFlags], a value reports
// absent until its flag is set on the command line; without one, a
// zero-value field reports absent. Either way a Config can sit in
// front of file-based sources in a [Layered] chain without its flag
// defaults shadowing them.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags].
type Config struct {
	Freq      int
	Mechanism string
	Format    string
	Flags     Flags

	flags *pflag.FlagSet
}

// NewConfig creates a new [Config] with default flag names and no
// values set. Use [Config.RegisterFlags] to add CLI flags, or set
// values directly.
func NewConfig() *Config {
	f := Flags{
		Freq:      "profiling-freq",
		Mechanism: "statprof-mechanism",
		Format:    "statprof-format",
	}

	return f.NewConfig()
}

// RegisterFlags adds profiling flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	c.flags = flags

	flags.IntVar(&c.Freq, c.Flags.Freq, statprof.DefaultFreq,
		"sampling frequency in samples per second")
	flags.StringVar(&c.Mechanism, c.Flags.Mechanism, string(statprof.MechanismThread),
		fmt.Sprintf("profiling mechanism, one of: %s", statprof.GetAllMechanismStrings()))
	flags.StringVar(&c.Format, c.Flags.Format, string(statprof.FormatHotpath),
		fmt.Sprintf("profiler output format, one of: %s", statprof.GetAllFormatStrings()))
}

// RegisterCompletions registers shell completions for profiling flags
// on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	err := cmd.RegisterFlagCompletionFunc(c.Flags.Freq, noFileComp)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Freq, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Mechanism,
		cobra.FixedCompletions(statprof.GetAllMechanismStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Mechanism, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(statprof.GetAllFormatStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	return nil
}

// Lookup implements [Lookuper]. See [Config] for when a value reports
// present.
func (c *Config) Lookup(section, name string) (string, bool) {
	switch section + "." + name {
	case statprof.SectionProfiling + "." + statprof.KeyFreq:
		if c.present(c.Flags.Freq, c.Freq != 0) {
			return strconv.Itoa(c.Freq), true
		}

	case statprof.SectionStatprof + "." + statprof.KeyMechanism:
		if c.present(c.Flags.Mechanism, c.Mechanism != "") {
			return c.Mechanism, true
		}

	case statprof.SectionStatprof + "." + statprof.KeyFormat:
		if c.present(c.Flags.Format, c.Format != "") {
			return c.Format, true
		}
	}

	return "", false
}

// present reports whether a value counts as set: with a bound FlagSet
// the flag must have been changed on the command line, so registered
// defaults stay out of [Layered] chains; otherwise any non-zero field
// counts.
func (c *Config) present(flagName string, nonZero bool) bool {
	if c.flags != nil {
		return c.flags.Changed(flagName)
	}

	return nonZero
}

// Str implements [github.com/vcstoolkit/statprof.Source].
func (c *Config) Str(section, name, fallback string) string {
	return str(c, section, name, fallback)
}

// Int implements [github.com/vcstoolkit/statprof.Source].
func (c *Config) Int(section, name string, fallback int) int {
	return integer(c, section, name, fallback)
}
