// Package engine implements the sampling profiler behind
// [github.com/vcstoolkit/statprof.Engine].
//
// Two mechanisms are supported. The `signal` mechanism samples on
// SIGPROF delivery using [runtime/pprof], attributing samples to CPU
// time. The `thread` mechanism samples the stacks of all goroutines
// from a background goroutine using [github.com/felixge/fgprof],
// attributing samples to wall-clock time, which also surfaces time
// spent blocked on I/O and locks.
//
// Samples are collected into an in-memory pprof protobuf and rendered
// by [Engine.Display] either as a hotpath call tree or as a JSON frame
// dump. [Render] exposes the same rendering for profiles collected
// elsewhere.
//
// The engine wraps process-wide profiler state; only one engine may be
// sampling at a time.
package engine
