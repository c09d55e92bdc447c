// Package statprof brackets a unit of work with a sampling profiler
// session configured from host settings.
//
// A [Session] reads three settings from a [Source], starts an [Engine],
// runs the caller's work, and always stops the engine and writes a report
// to the caller's sink afterwards, even when the work fails or panics:
//
//   - profiling.freq: sampling frequency in samples per second
//     (default 1000; values <= 0 are warned about and ignored, leaving
//     the engine's own rate in effect)
//   - statprof.mechanism: sampling trigger strategy, `thread` or
//     `signal` (default `thread`; unrecognized values are passed to the
//     engine, which rejects them)
//   - statprof.format: report rendering, `hotpath` or `json` (default
//     `hotpath`; unrecognized values are warned about and fall back to
//     the default)
//
// Typical usage wraps command execution with a session backed by the
// engine package:
//
//	session := statprof.New(engine.Provider)
//
//	err := session.Run(func() error {
//	    return dispatch(cmd, args)
//	}, cfg, os.Stderr)
//
// The session holds the engine exclusively for the duration of the run;
// nested or concurrent sessions against the same engine are not
// supported.
package statprof
