package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/ValentinKolb/serbench/cmd/util"
	"github.com/ValentinKolb/serbench/lib/bench"
	"github.com/ValentinKolb/serbench/lib/common"
	"github.com/lni/dragonboat/v4/logger"
)

// execute runs the root command with args and returns its output.
// Flags keep their values between runs, so every test passes all flags it relies on.
func execute(args ...string) (string, error) {
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

// runFlags returns the flags shared by pack and unpack
func runFlags(dir, formats string, runs string) []string {
	return []string{
		"--data-dir", dir,
		"--formats", formats,
		"--runs", runs,
		"--csv", "",
		"--metrics-out", "",
		"--log-level", "error",
	}
}

// resetFlags restores the default value of persistent flags set by earlier runs,
// so that the environment is consulted again
func resetFlags(names ...string) {
	for _, name := range names {
		if f := RootCmd.PersistentFlags().Lookup(name); f != nil {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
}

// TestPackUnpack tests the original three formats end to end
func TestPackUnpack(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(append([]string{"pack", "10", "3", "--skip-write=false"}, runFlags(dir, "pb,json,json.gz", "1")...)...)
	if err != nil {
		t.Fatalf("pack failed: %v\n%s", err, out)
	}

	for _, expected := range []string{
		"LogAmount = 10",
		"Protobuf Size     : ",
		"Json Size         : ",
		"Json GZip Size    : ",
		"Benchmark Times = 3",
		"Protobuf Seconds  : ",
		"Json GZip Seconds : ",
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("pack output is missing %q:\n%s", expected, out)
		}
	}

	for _, name := range []string{"data.pb", "data.json", "data.json.gz"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected data file %s: %v", name, err)
		}
	}

	out, err = execute(append([]string{"unpack", "2", "--verify=true", "--from-disk=false"}, runFlags(dir, "pb,json,json.gz", "1")...)...)
	if err != nil {
		t.Fatalf("unpack failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Benchmark Times = 2") || !regexp.MustCompile(`Json Seconds\s+: `).MatchString(out) {
		t.Errorf("Unexpected unpack output:\n%s", out)
	}
}

// TestAllFormatsWithExport tests every format, repeated runs and the export files
func TestAllFormatsWithExport(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "pack.csv")
	metricsPath := filepath.Join(dir, "pack.prom")

	flags := runFlags(dir, "all", "3")
	flags = append(flags, "--csv", csvPath, "--metrics-out", metricsPath)

	out, err := execute(append([]string{"pack", "25", "2", "--skip-write=false"}, flags...)...)
	if err != nil {
		t.Fatalf("pack failed: %v\n%s", err, out)
	}
	// labels are padded to the widest one
	if !regexp.MustCompile(`Msgpack GZip Seconds\s+: \[`).MatchString(out) {
		t.Errorf("Expected a list of run times for every format:\n%s", out)
	}

	for _, path := range []string{csvPath, metricsPath} {
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("Expected non-empty export file %s: %v", path, err)
		}
	}

	out, err = execute(append([]string{"unpack", "2", "--verify=true", "--from-disk=true"}, runFlags(dir, "all", "2")...)...)
	if err != nil {
		t.Fatalf("unpack failed: %v\n%s", err, out)
	}
}

// TestSkipWrite tests that no data files are written with --skip-write
func TestSkipWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nothing")

	out, err := execute(append([]string{"pack", "5", "1", "--skip-write=true"}, runFlags(dir, "pb", "1")...)...)
	if err != nil {
		t.Fatalf("pack failed: %v\n%s", err, out)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("Data directory should not exist, got %v", err)
	}
}

// TestInvalidArguments tests that malformed counts are rejected
func TestInvalidArguments(t *testing.T) {
	dir := t.TempDir()
	cases := [][]string{
		{"pack"},
		{"pack", "5"},
		{"pack", "five", "1"},
		{"pack", "5", "0"},
		{"unpack"},
		{"unpack", "zero"},
		{"unpack", "0"},
	}

	for _, args := range cases {
		out, err := execute(append(args, runFlags(dir, "pb", "1")...)...)
		if err == nil {
			t.Errorf("Expected error for %v", args)
		}
		if !strings.Contains(out, "Usage:") {
			t.Errorf("Expected usage for %v, got:\n%s", args, out)
		}
	}
}

// TestUnknownFormat tests that an unknown format name is rejected
func TestUnknownFormat(t *testing.T) {
	out, err := execute(append([]string{"pack", "1", "1", "--skip-write=true"}, runFlags(t.TempDir(), "pb,yaml", "1")...)...)
	if err == nil {
		t.Errorf("Expected error for unknown format:\n%s", out)
	}
}

// TestUnpackMissingFiles tests that unpack fails without data files
func TestUnpackMissingFiles(t *testing.T) {
	out, err := execute(append([]string{"unpack", "1", "--verify=true", "--from-disk=false"}, runFlags(t.TempDir(), "pb", "1")...)...)
	if err == nil || !strings.Contains(err.Error(), "run pack first") {
		t.Errorf("Expected missing file error, got %v:\n%s", err, out)
	}
}

// TestUnpackVerifyMismatch tests that files of different pack runs are detected
func TestUnpackVerifyMismatch(t *testing.T) {
	dir := t.TempDir()

	if out, err := execute(append([]string{"pack", "5", "1", "--skip-write=false"}, runFlags(dir, "pb", "1")...)...); err != nil {
		t.Fatalf("pack failed: %v\n%s", err, out)
	}
	if out, err := execute(append([]string{"pack", "6", "1", "--skip-write=false"}, runFlags(dir, "json", "1")...)...); err != nil {
		t.Fatalf("pack failed: %v\n%s", err, out)
	}

	_, err := execute(append([]string{"unpack", "1", "--verify=true", "--from-disk=false"}, runFlags(dir, "pb,json", "1")...)...)
	if err == nil || !strings.Contains(err.Error(), "different record") {
		t.Errorf("Expected verification error, got %v", err)
	}

	// without verification the files are still benchmarked
	if out, err := execute(append([]string{"unpack", "1", "--verify=false", "--from-disk=false"}, runFlags(dir, "pb,json", "1")...)...); err != nil {
		t.Errorf("unpack without verification failed: %v\n%s", err, out)
	}
}

// TestFormatsCommand tests the format listing
func TestFormatsCommand(t *testing.T) {
	out, err := execute("formats")
	if err != nil {
		t.Fatalf("formats failed: %v", err)
	}
	for _, expected := range []string{"data.pb", "data.json.gz", "Msgpack"} {
		if !strings.Contains(out, expected) {
			t.Errorf("formats output is missing %q:\n%s", expected, out)
		}
	}
}

// TestEnvironmentConfig tests that SERBENCH_ variables configure flags that are not given
func TestEnvironmentConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SERBENCH_DATA_DIR", dir)
	t.Setenv("SERBENCH_FORMATS", "pb")
	resetFlags("data-dir", "formats")

	out, err := execute("pack", "5", "1", "--skip-write=false", "--runs", "1", "--csv", "", "--metrics-out", "", "--log-level", "error")
	if err != nil {
		t.Fatalf("pack failed: %v\n%s", err, out)
	}

	if _, err := os.Stat(filepath.Join(dir, "data.pb")); err != nil {
		t.Errorf("Expected data.pb in the directory from SERBENCH_DATA_DIR: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "data.json")); err == nil {
		t.Error("Expected only the formats from SERBENCH_FORMATS to be written")
	}
	if strings.Contains(out, "Json Size") {
		t.Errorf("Unexpected json output:\n%s", out)
	}
}

// TestLoggerNames tests that every configured logger name belongs to a package logger
func TestLoggerNames(t *testing.T) {
	loggers := map[string]logger.ILogger{
		"cmd":   util.Logger,
		"bench": bench.Logger,
	}

	for _, name := range common.LoggerNames {
		if loggers[name] == nil {
			t.Errorf("No package logs through the logger %q", name)
		}
	}
	if len(common.LoggerNames) != len(loggers) {
		t.Errorf("Expected %d logger names, got %v", len(loggers), common.LoggerNames)
	}
}
