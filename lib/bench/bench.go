package bench

import (
	"fmt"
	"math"
	"time"

	"github.com/lni/dragonboat/v4/logger"
)

// Logger is the logger of the bench package
var Logger = logger.GetLogger("bench")

// Operations measured by the benchmark commands
const (
	OpPack   = "pack"
	OpUnpack = "unpack"
)

// --------------------------------------------------------------------------
// Result
// --------------------------------------------------------------------------

// Result holds the measurements of one operation of one format
type Result struct {
	// Format is the registry name of the format (e.g. "json.gz")
	Format string
	// Label is the human-readable name of the format (e.g. "Json GZip")
	Label string
	// Op is the measured operation (OpPack or OpUnpack)
	Op string
	// Times is the number of operations per run
	Times int
	// Runs holds the elapsed time of every run
	Runs []time.Duration
	// Size is the encoded size in bytes (0 if unknown)
	Size int
	// P50 and P99 are the per-operation percentiles over all runs (nanoseconds)
	P50 float64
	P99 float64
}

// Skipped reports whether the result holds no measurement
func (r Result) Skipped() bool {
	return len(r.Runs) == 0 || r.Times <= 0
}

// Stats returns statistics over the run durations in seconds
func (r Result) Stats() Stats {
	return NewDurationStats(r.Runs)
}

// NsPerOp returns the mean duration of a single operation in nanoseconds
func (r Result) NsPerOp() float64 {
	if r.Skipped() {
		return 0
	}
	var total time.Duration
	for _, d := range r.Runs {
		total += d
	}
	return float64(total.Nanoseconds()) / float64(len(r.Runs)*r.Times)
}

// OpsPerSec returns the mean throughput in operations per second
func (r Result) OpsPerSec() float64 {
	if r.Skipped() {
		return 0
	}
	nsPerOp := math.Max(r.NsPerOp(), 1) // prevent division by zero
	return 1.0 / (nsPerOp / 1e9)
}

// --------------------------------------------------------------------------
// Harness
// --------------------------------------------------------------------------

// Run calls fn times times and returns the elapsed wall clock time.
// The first error aborts the loop.
func Run(fn func() error, times int) (time.Duration, error) {
	start := time.Now()
	for i := 0; i < times; i++ {
		if err := fn(); err != nil {
			return time.Since(start), fmt.Errorf("iteration %d: %w", i, err)
		}
	}
	return time.Since(start), nil
}

// Harness runs measurements with a fixed number of iterations and repetitions
type Harness struct {
	// Times is the number of calls per run
	Times int
	// Runs is the number of repetitions of each measurement
	Runs int
	// Recorder receives every run (may be nil)
	Recorder *Recorder
}

// NewHarness creates a new harness. It returns an error if times or runs is not positive.
func NewHarness(times, runs int, recorder *Recorder) (*Harness, error) {
	if times <= 0 {
		return nil, fmt.Errorf("benchmark times must be positive, got %d", times)
	}
	if runs <= 0 {
		return nil, fmt.Errorf("runs must be positive, got %d", runs)
	}
	return &Harness{Times: times, Runs: runs, Recorder: recorder}, nil
}

// Measure runs fn h.Times times, h.Runs times over, and returns the result
func (h *Harness) Measure(format, label, op string, fn func() error) (Result, error) {
	result := Result{
		Format: format,
		Label:  label,
		Op:     op,
		Times:  h.Times,
		Runs:   make([]time.Duration, 0, h.Runs),
	}

	for run := 0; run < h.Runs; run++ {
		elapsed, err := Run(fn, h.Times)
		if err != nil {
			return result, fmt.Errorf("%s %s (run %d): %w", format, op, run, err)
		}
		Logger.Debugf("%s %s run %d: %s for %d ops", format, op, run, elapsed, h.Times)

		result.Runs = append(result.Runs, elapsed)
		if h.Recorder != nil {
			h.Recorder.ObserveRun(format, op, elapsed, h.Times)
		}
	}

	if h.Recorder != nil {
		timer := h.Recorder.Timer(format, op)
		result.P50 = timer.Percentile(0.5)
		result.P99 = timer.Percentile(0.99)
	}

	return result, nil
}
