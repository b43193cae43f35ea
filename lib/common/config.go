package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Benchmark run configuration struct
// --------------------------------------------------------------------------

// RunConfig holds all parameters of a pack or unpack run
type RunConfig struct {
	// Positional arguments
	LogAmount      int
	BenchmarkTimes int

	// Data files
	DataDir   string
	SkipWrite bool
	FromDisk  bool
	Verify    bool

	// Formats and measurement
	Formats   []string
	Runs      int
	GzipLevel int

	// Export
	CSVPath     string
	MetricsPath string

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the configuration
func (c *RunConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// Benchmark settings
	addSection("Benchmark")
	addField("Log Amount", strconv.Itoa(c.LogAmount))
	addField("Benchmark Times", strconv.Itoa(c.BenchmarkTimes))
	addField("Runs", strconv.Itoa(c.Runs))
	addField("Formats", strings.Join(c.Formats, ", "))
	addField("Gzip Level", strconv.Itoa(c.GzipLevel))

	// Data files
	addSection("Data")
	addField("Data Directory", c.DataDir)
	addField("Skip Write", strconv.FormatBool(c.SkipWrite))
	addField("Read From Disk", strconv.FormatBool(c.FromDisk))
	addField("Verify", strconv.FormatBool(c.Verify))

	// Export
	addSection("Export")
	addField("CSV", orNone(c.CSVPath))
	addField("Metrics", orNone(c.MetricsPath))

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
