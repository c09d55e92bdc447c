package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/felixge/fgprof"
	"github.com/google/pprof/profile"

	"github.com/vcstoolkit/statprof"
)

// Engine collects a sampling profile of the current process.
//
// It implements [statprof.Engine]. Create instances with [New].
type Engine struct {
	mu        sync.Mutex
	hz        int
	mechanism statprof.Mechanism
	buf       bytes.Buffer
	stop      func() error // non-nil while sampling
	collected bool
}

// New creates an [Engine] with no configured sampling rate; each
// mechanism keeps its own default until [Engine.Reset] is called.
func New() *Engine {
	return &Engine{}
}

// Provider supplies a fresh [Engine]. It satisfies
// [statprof.EngineProvider].
func Provider() (statprof.Engine, error) {
	return New(), nil
}

// Reset discards any collected profile and sets the sampling rate in
// samples per second. The rate applies to the `signal` mechanism; the
// wall-clock sampler behind `thread` keeps its own fixed rate. Reset
// is a no-op while the engine is sampling: the active sampler owns the
// collection buffer until [Engine.Stop].
func (e *Engine) Reset(hz int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stop != nil {
		return
	}

	e.hz = hz
	e.buf.Reset()
	e.collected = false
}

// Start begins sampling with the given mechanism. It fails when the
// engine is already sampling or the mechanism is not recognized.
func (e *Engine) Start(mechanism statprof.Mechanism) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stop != nil {
		return fmt.Errorf("profiler already started with mechanism %q", e.mechanism)
	}

	e.buf.Reset()
	e.collected = false

	switch mechanism {
	case statprof.MechanismSignal:
		if e.hz > 0 {
			// StartCPUProfile pins 100 Hz, but keeps a rate configured
			// before it runs. The runtime logs a one-line notice when
			// the rates differ.
			runtime.SetCPUProfileRate(e.hz)
		}

		err := pprof.StartCPUProfile(&e.buf)
		if err != nil {
			runtime.SetCPUProfileRate(0)

			return fmt.Errorf("starting cpu profile: %w", err)
		}

		e.stop = func() error {
			pprof.StopCPUProfile()

			return nil
		}

	case statprof.MechanismThread:
		stop := fgprof.Start(&e.buf, fgprof.FormatPprof)
		started := time.Now()

		e.stop = func() error {
			// The wall-clock sampler derives its export rate from
			// observed ticks and cannot export before the first one
			// fires.
			if wait := wallclockWarmup - time.Since(started); wait > 0 {
				time.Sleep(wait)
			}

			return stop()
		}

	default:
		return fmt.Errorf("%w: %s", statprof.ErrUnknownMechanism, mechanism)
	}

	e.mechanism = mechanism

	return nil
}

// Stop ends sampling. The collected profile remains available to
// [Engine.Display].
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stop == nil {
		return errors.New("profiler not started")
	}

	stop := e.stop
	e.stop = nil

	err := runStop(stop)
	if err != nil {
		return fmt.Errorf("stopping %s sampler: %w", e.mechanism, err)
	}

	e.collected = true

	return nil
}

// wallclockWarmup covers at least two ticks of the wall-clock sampler,
// which samples at 99 Hz.
const wallclockWarmup = 25 * time.Millisecond

// runStop invokes the sampler's stop function, converting a panic in
// the sampler's export path into an error.
func runStop(stop func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sampler export failed: %v", r)
		}
	}()

	return stop()
}

// Display renders the collected profile to w in the given format.
func (e *Engine) Display(w io.Writer, format statprof.Format) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stop != nil {
		return errors.New("profiler still running")
	}

	if !e.collected {
		return errors.New("no profile collected")
	}

	prof, err := profile.Parse(bytes.NewReader(e.buf.Bytes()))
	if err != nil {
		return fmt.Errorf("parsing collected profile: %w", err)
	}

	return Render(w, prof, format)
}
