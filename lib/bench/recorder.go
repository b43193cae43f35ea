package bench

import (
	"fmt"
	"io"
	"time"

	vmetrics "github.com/VictoriaMetrics/metrics"
	gometrics "github.com/rcrowley/go-metrics"
)

// Recorder collects per-operation timings and payload sizes.
//
// Every observation is kept in two places: a go-metrics Timer per format and
// operation (used for the percentiles of the result tables) and a VictoriaMetrics
// set that can be exported in the Prometheus text format.
type Recorder struct {
	registry gometrics.Registry
	set      *vmetrics.Set
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{
		registry: gometrics.NewRegistry(),
		set:      vmetrics.NewSet(),
	}
}

// ObserveRun records one run of times operations that took elapsed in total
//
// Thread-safe: This method is safe for concurrent use
func (r *Recorder) ObserveRun(format, op string, elapsed time.Duration, times int) {
	if times <= 0 {
		return
	}
	perOp := elapsed / time.Duration(times)

	r.Timer(format, op).Update(perOp)
	r.set.GetOrCreateSummary(metricName("serbench_op_duration_seconds", format, op)).Update(perOp.Seconds())
	r.set.GetOrCreateCounter(metricName("serbench_ops_total", format, op)).Add(times)
}

// ObserveSize records the encoded size of format
//
// Thread-safe: This method is safe for concurrent use
func (r *Recorder) ObserveSize(format string, size int) {
	r.set.GetOrCreateCounter(fmt.Sprintf(`serbench_payload_bytes{format=%q}`, format)).Set(uint64(size))
}

// Timer returns the go-metrics timer of format and op, creating it if needed
func (r *Recorder) Timer(format, op string) gometrics.Timer {
	return gometrics.GetOrRegisterTimer(format+"/"+op, r.registry)
}

// WritePrometheus writes all recorded metrics in the Prometheus text format
func (r *Recorder) WritePrometheus(w io.Writer) {
	r.set.WritePrometheus(w)
}

func metricName(name, format, op string) string {
	return fmt.Sprintf(`%s{format=%q,op=%q}`, name, format, op)
}
