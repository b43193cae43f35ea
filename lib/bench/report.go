package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// minLabelWidth aligns the colons of the result tables ("Json GZip Seconds :")
const minLabelWidth = 18

// PrintSizes prints the encoded size of every result, one line per format
func PrintSizes(w io.Writer, results []Result) {
	width := labelWidth(results, " Size")
	for _, r := range results {
		fmt.Fprintf(w, "%-*s: %d\n", width, r.Label+" Size", r.Size)
	}
}

// PrintTimings prints the elapsed seconds of every result.
// A single run is printed as a plain number, several runs as a list.
func PrintTimings(w io.Writer, results []Result) {
	width := labelWidth(results, " Seconds")
	for _, r := range results {
		fmt.Fprintf(w, "%-*s: %s\n", width, r.Label+" Seconds", formatRuns(r.Runs))
	}
}

// PrintDetails prints the per-operation cost of every result
func PrintDetails(w io.Writer, results []Result) {
	for _, r := range results {
		name := r.Format + " " + r.Op
		if r.Skipped() {
			fmt.Fprintf(w, "%-20sskipped\n", name)
			continue
		}

		nsPerOp := r.NsPerOp()
		stats := r.Stats()
		fmt.Fprintf(w, "%-20s%.0fns/op (%s/op)\t%.0f ops/sec", name, nsPerOp, time.Duration(nsPerOp), r.OpsPerSec())
		if len(r.Runs) > 1 {
			fmt.Fprintf(w, "\tstddev %.6fs\tmin/max %.2f\tp50 %s/op\tp99 %s/op",
				stats.StdDeviation, stats.MinMaxRatio, time.Duration(r.P50), time.Duration(r.P99))
		}
		fmt.Fprintln(w)
	}
}

// WriteCSV writes the results to a CSV file
func WriteCSV(csvPath string, results []Result) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	if err := writeCSV(file, results); err != nil {
		return err
	}
	return file.Close()
}

func writeCSV(w io.Writer, results []Result) error {
	writer := csv.NewWriter(w)

	// Write header
	header := []string{
		"Format", "Label", "Op", "Times", "Runs",
		"MeanSec", "StdDevSec", "MinSec", "MaxSec", "MinMaxRatio",
		"NsPerOp", "OpsPerSec", "P50NsPerOp", "P99NsPerOp", "SizeBytes",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, r := range results {
		stats := r.Stats()
		row := []string{
			r.Format,
			r.Label,
			r.Op,
			strconv.Itoa(r.Times),
			strconv.Itoa(len(r.Runs)),
			fmt.Sprintf("%.6f", stats.Mean),
			fmt.Sprintf("%.6f", stats.StdDeviation),
			fmt.Sprintf("%.6f", stats.Min),
			fmt.Sprintf("%.6f", stats.Max),
			fmt.Sprintf("%.3f", stats.MinMaxRatio),
			fmt.Sprintf("%.0f", r.NsPerOp()),
			fmt.Sprintf("%.0f", r.OpsPerSec()),
			fmt.Sprintf("%.0f", r.P50),
			fmt.Sprintf("%.0f", r.P99),
			strconv.Itoa(r.Size),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s %s: %w", r.Format, r.Op, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WritePrometheusFile writes the metrics of recorder to path
func WritePrometheusFile(path string, recorder *Recorder) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	defer file.Close()

	recorder.WritePrometheus(file)
	return file.Close()
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func labelWidth(results []Result, suffix string) int {
	width := minLabelWidth
	for _, r := range results {
		if l := len(r.Label) + len(suffix) + 1; l > width {
			width = l
		}
	}
	return width
}

func formatRuns(runs []time.Duration) string {
	values := make([]string, len(runs))
	for i, d := range runs {
		values[i] = strconv.FormatFloat(d.Seconds(), 'f', 6, 64)
	}
	if len(values) == 1 {
		return values[0]
	}
	return "[" + strings.Join(values, ", ") + "]"
}
