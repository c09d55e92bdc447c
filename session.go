package statprof

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Configuration sections and names read by [Session.Run].
const (
	SectionProfiling = "profiling"
	SectionStatprof  = "statprof"

	KeyFreq      = "freq"
	KeyMechanism = "mechanism"
	KeyFormat    = "format"
)

// DefaultFreq is the sampling frequency used when the configuration does
// not provide one, in samples per second.
const DefaultFreq = 1000

// ErrEngineUnavailable indicates the profiler engine could not be
// obtained. No profiling is attempted and the work is never run.
var ErrEngineUnavailable = errors.New("profiler engine unavailable")

// Source provides read access to the host's configuration.
//
// Implementations live in the config package; hosts with their own
// configuration store can satisfy Source directly.
type Source interface {
	// Str returns the value of section.name, or fallback when absent.
	Str(section, name, fallback string) string

	// Int returns the integer value of section.name, or fallback when
	// absent or unparsable.
	Int(section, name string, fallback int) int
}

// Engine is the sampling profiler driven by a [Session].
//
// Start and Stop mutate process-wide profiler state; an Engine must not
// be shared between concurrent sessions.
type Engine interface {
	// Reset discards collected state and sets the sampling rate in
	// samples per second.
	Reset(hz int)

	// Start begins sampling with the given mechanism.
	Start(mechanism Mechanism) error

	// Stop ends sampling. Collected samples remain available to Display.
	Stop() error

	// Display renders the collected result to w in the given format.
	Display(w io.Writer, format Format) error
}

// EngineProvider supplies the engine for a session. Returning an error
// marks the engine as unavailable; [Session.Run] reports it as
// [ErrEngineUnavailable] before any side effect occurs.
type EngineProvider func() (Engine, error)

// Session wraps a single unit of work with profiler start/stop
// boundaries and report emission.
//
// Create instances with [New]. A Session is reusable, but only one run
// may be active at a time because the engine's start/stop state is
// process-wide.
type Session struct {
	provider EngineProvider
	logger   *slog.Logger
}

// Option configures a [Session].
type Option func(*Session)

// WithLogger routes non-fatal warnings to logger instead of
// [slog.Default]. Warnings are diagnostics and never share the report
// sink.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// New creates a [Session] that obtains its engine from provider.
func New(provider EngineProvider, opts ...Option) *Session {
	s := &Session{
		provider: provider,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run profiles work and writes the report to sink.
//
// The sampling frequency, mechanism, and output format are resolved from
// src as described in the package documentation. Once the engine has
// started, it is stopped and the report is written on every exit path,
// including an error return or panic from work. The work's own error is
// returned unchanged; stop and report failures are returned only when
// the work itself succeeded, and are logged as warnings otherwise so
// they cannot mask it.
func (s *Session) Run(work func() error, src Source, sink io.Writer) error {
	engine, err := s.acquire()
	if err != nil {
		return err
	}

	freq := src.Int(SectionProfiling, KeyFreq, DefaultFreq)
	if freq > 0 {
		engine.Reset(freq)
	} else {
		s.logger.Warn("invalid sampling frequency - ignoring", slog.Int("freq", freq))
	}

	mechanism := Mechanism(src.Str(SectionStatprof, KeyMechanism, string(MechanismThread)))

	err = engine.Start(mechanism)
	if err != nil {
		return fmt.Errorf("starting profiler: %w", err)
	}

	return s.profile(work, engine, src, sink)
}

// profile runs work with the engine held. The deferred stop+report runs
// on every exit path so the bracket also holds across panics.
func (s *Session) profile(work func() error, engine Engine, src Source, sink io.Writer) (err error) {
	defer func() {
		stopErr := engine.Stop()

		raw := src.Str(SectionStatprof, KeyFormat, string(FormatHotpath))

		format, fmtErr := GetFormat(raw)
		if fmtErr != nil {
			s.logger.Warn("unknown profiler output format", slog.String("format", raw))

			format = FormatHotpath
		}

		dispErr := engine.Display(sink, format)

		switch {
		case err != nil:
			if stopErr != nil {
				s.logger.Warn("stopping profiler", slog.Any("error", stopErr))
			}

			if dispErr != nil {
				s.logger.Warn("writing profiler report", slog.Any("error", dispErr))
			}

		case stopErr != nil:
			err = fmt.Errorf("stopping profiler: %w", stopErr)

		case dispErr != nil:
			err = fmt.Errorf("writing profiler report: %w", dispErr)
		}
	}()

	return work()
}

// acquire obtains the engine from the provider, mapping every failure
// mode to [ErrEngineUnavailable].
func (s *Session) acquire() (Engine, error) {
	if s.provider == nil {
		return nil, ErrEngineUnavailable
	}

	engine, err := s.provider()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEngineUnavailable, err)
	}

	if engine == nil {
		return nil, ErrEngineUnavailable
	}

	return engine, nil
}
