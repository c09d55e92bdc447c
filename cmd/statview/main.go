// Command statview renders a collected pprof profile as a hotpath call
// tree or a JSON frame dump.
//
// # Usage
//
//	statview [flags] <profile>
//
// The profile argument is a pprof protobuf file, such as one produced
// by the engine package, `go test -cpuprofile`, or net/http/pprof.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	charmlog "charm.land/log/v2"
	"github.com/google/pprof/profile"
	"github.com/spf13/cobra"

	"github.com/vcstoolkit/statprof"
	"github.com/vcstoolkit/statprof/engine"
	"github.com/vcstoolkit/statprof/version"
)

func main() {
	logger := slog.New(charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: false,
	}))

	var (
		format     string
		minPercent float64
	)

	rootCmd := &cobra.Command{
		Use:   "statview [flags] <profile>",
		Short: "Render a collected pprof profile",
		Long: `statview renders a pprof protobuf profile either as a human-readable
hotpath call tree or as a machine-readable JSON frame dump.`,
		Args:          cobra.ExactArgs(1),
		Version:       version.Short(),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), args[0], format, minPercent)
		},
	}

	rootCmd.Flags().StringVar(&format, "format", string(statprof.FormatHotpath),
		fmt.Sprintf("output format, one of: %s", statprof.GetAllFormatStrings()))
	rootCmd.Flags().Float64Var(&minPercent, "min-percent", engine.DefaultMinPercent,
		"prune hotpath branches below this percentage of total samples")

	completionErr := rootCmd.RegisterFlagCompletionFunc("format",
		cobra.FixedCompletions(statprof.GetAllFormatStrings(), cobra.ShellCompDirectiveNoFileComp))
	if completionErr != nil {
		logger.Warn("register completions", slog.Any("error", completionErr))
	}

	err := rootCmd.Execute()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(w io.Writer, path, format string, minPercent float64) error {
	f, err := statprof.GetFormat(format)
	if err != nil {
		return err
	}

	file, err := os.Open(path) //nolint:gosec // Profile path from CLI arg is expected.
	if err != nil {
		return fmt.Errorf("opening profile: %w", err)
	}
	defer file.Close() //nolint:errcheck // Read-only file.

	prof, err := profile.Parse(file)
	if err != nil {
		return fmt.Errorf("parsing profile: %w", err)
	}

	return engine.Render(w, prof, f, engine.WithMinPercent(minPercent))
}
