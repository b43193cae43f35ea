package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ValentinKolb/serbench/lib/bench"
	"github.com/ValentinKolb/serbench/lib/common"
	"github.com/ValentinKolb/serbench/lib/serializer"
	"github.com/joho/godotenv"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// Logger is the logger of the command line tools
var Logger = logger.GetLogger("cmd")

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupRunFlags adds the flags shared by all benchmark commands to a command
func SetupRunFlags(cmd *cobra.Command) {
	key := "data-dir"
	cmd.PersistentFlags().String(key, "data", WrapString("Directory of the data files (data.pb, data.json, data.json.gz, ...)"))

	key = "formats"
	cmd.PersistentFlags().String(key, serializer.DefaultFormats, WrapString(fmt.Sprintf("Comma-separated list of formats to benchmark, or 'all'. Available: %s", strings.Join(serializer.Names(), ", "))))

	key = "runs"
	cmd.PersistentFlags().Int(key, 1, WrapString("How many times every measurement is repeated"))

	key = "gzip-level"
	cmd.PersistentFlags().Int(key, serializer.DefaultGzipLevel, WrapString("Compression level of the gzip formats (1-9)"))

	key = "csv"
	cmd.PersistentFlags().String(key, "", WrapString("Optional path to save benchmark results as CSV"))

	key = "metrics-out"
	cmd.PersistentFlags().String(key, "", WrapString("Optional path to save the collected metrics in the Prometheus text format"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "info", WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("serbench")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// ParseCount parses a positional count argument that must be at least min
func ParseCount(arg, name string, min int) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", name, arg)
	}
	if n < min {
		return 0, fmt.Errorf("invalid %s %d: must be at least %d", name, n, min)
	}
	return n, nil
}

// GetRunConfig reads the shared run configuration from viper
func GetRunConfig() *common.RunConfig {
	var formats []string
	for _, name := range strings.Split(viper.GetString("formats"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			formats = append(formats, name)
		}
	}

	return &common.RunConfig{
		DataDir:     viper.GetString("data-dir"),
		Formats:     formats,
		Runs:        viper.GetInt("runs"),
		GzipLevel:   viper.GetInt("gzip-level"),
		CSVPath:     viper.GetString("csv"),
		MetricsPath: viper.GetString("metrics-out"),
		LogLevel:    viper.GetString("log-level"),
	}
}

// InitRun initializes the loggers and logs the configuration
func InitRun(conf *common.RunConfig) error {
	if err := common.InitLoggers(conf.LogLevel); err != nil {
		return err
	}
	if conf.Runs <= 0 {
		return fmt.Errorf("invalid runs %d: must be at least 1", conf.Runs)
	}
	Logger.Debugf("configuration:%s", conf.String())
	return nil
}

// GetFormats resolves the formats selected in the configuration
func GetFormats(conf *common.RunConfig) ([]serializer.Format, error) {
	return serializer.Resolve(strings.Join(conf.Formats, ","))
}

// GetOptions returns the serializer options of the configuration
func GetOptions(conf *common.RunConfig) serializer.Options {
	opts := serializer.DefaultOptions()
	opts.GzipLevel = conf.GzipLevel
	return opts
}

// DataFile returns the path of the data file of a format
func DataFile(conf *common.RunConfig, f serializer.Format) string {
	return filepath.Join(conf.DataDir, f.FileName())
}

// Export writes the results and metrics to the files named in the configuration
func Export(conf *common.RunConfig, results []bench.Result, recorder *bench.Recorder) error {
	if conf.CSVPath != "" {
		Logger.Infof("exporting results to CSV: %s", conf.CSVPath)
		if err := bench.WriteCSV(conf.CSVPath, results); err != nil {
			return fmt.Errorf("failed to export results to CSV: %w", err)
		}
	}

	if conf.MetricsPath != "" {
		Logger.Infof("exporting metrics: %s", conf.MetricsPath)
		if err := bench.WritePrometheusFile(conf.MetricsPath, recorder); err != nil {
			return fmt.Errorf("failed to export metrics: %w", err)
		}
	}

	return nil
}

// EnsureDir creates the data directory if it does not exist
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return nil
}
