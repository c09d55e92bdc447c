package statprof

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Format selects how collected samples are rendered.
type Format string

const (
	// FormatHotpath renders a human-readable call tree highlighting hot
	// code paths.
	FormatHotpath Format = "hotpath"
	// FormatJSON renders a machine-readable dump of the collected frames.
	FormatJSON Format = "json"
)

// Mechanism selects the sampling trigger strategy.
type Mechanism string

const (
	// MechanismThread samples all goroutines from a background goroutine.
	MechanismThread Mechanism = "thread"
	// MechanismSignal samples on SIGPROF delivery (CPU time).
	MechanismSignal Mechanism = "signal"
)

var (
	// ErrUnknownFormat indicates an unrecognized output format string.
	ErrUnknownFormat = errors.New("unknown profiler output format")
	// ErrUnknownMechanism indicates a mechanism the engine does not
	// support.
	ErrUnknownMechanism = errors.New("unknown profiling mechanism")
)

// GetFormat parses an output format string and returns the corresponding
// [Format].
func GetFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	if slices.Contains([]Format{FormatHotpath, FormatJSON}, f) {
		return f, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// GetAllFormatStrings returns all recognized format strings, for flag help
// and shell completion.
func GetAllFormatStrings() []string {
	return []string{string(FormatHotpath), string(FormatJSON)}
}

// GetAllMechanismStrings returns all mechanism strings supported by the
// engine package, for flag help and shell completion.
func GetAllMechanismStrings() []string {
	return []string{string(MechanismThread), string(MechanismSignal)}
}
