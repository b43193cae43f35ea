// Package bench provides the timing harness, statistics, metrics and
// reporting used by the pack and unpack commands.
//
// A measurement calls an operation a fixed number of times in a stopwatch loop
// (Run) and repeats that loop a number of runs (Harness.Measure). Each run is
// recorded into a Recorder that keeps go-metrics timers for percentiles and a
// VictoriaMetrics set for Prometheus export.
//
// Results are printed as aligned tables (PrintSizes, PrintTimings,
// PrintDetails) and can be exported with WriteCSV and WritePrometheusFile.
//
// Benchmarks are single threaded: operations run sequentially on the calling
// goroutine, only the Recorder is safe for concurrent use.
package bench
