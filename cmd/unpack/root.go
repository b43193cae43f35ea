package unpack

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/serbench/cmd/util"
	"github.com/ValentinKolb/serbench/lib/bench"
	"github.com/ValentinKolb/serbench/lib/common"
	"github.com/ValentinKolb/serbench/lib/record"
	"github.com/ValentinKolb/serbench/lib/serializer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	unpackConfig = &common.RunConfig{}

	// UnpackCmd reads the data files written by pack and times the deserializers
	UnpackCmd = &cobra.Command{
		Use:   "unpack [BENCHMARK TIMES]",
		Short: "Deserialize the data files of every format and time it",
		Long: `Read the data files (data.<ext>) written by the pack command and
deserialize each of them BENCHMARK TIMES times, printing the elapsed seconds
per format. By default the files are read once before timing; with
--from-disk every iteration reads the file again.`,
		Args:    cobra.ExactArgs(1),
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	key := "from-disk"
	UnpackCmd.Flags().Bool(key, false, util.WrapString("Read the data file in every iteration instead of once before timing"))

	key = "verify"
	UnpackCmd.Flags().Bool(key, true, util.WrapString("Check that every format decodes to the same record before timing"))
}

// processConfig reads the arguments, flags and environment variables into the run configuration
func processConfig(cmd *cobra.Command, args []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	times, err := util.ParseCount(args[0], "BENCHMARK TIMES", 1)
	if err != nil {
		return err
	}

	unpackConfig = util.GetRunConfig()
	unpackConfig.BenchmarkTimes = times
	unpackConfig.FromDisk = viper.GetBool("from-disk")
	unpackConfig.Verify = viper.GetBool("verify")

	return util.InitRun(unpackConfig)
}

// dataFile is a data file loaded into memory together with its serializer
type dataFile struct {
	format     serializer.Format
	serializer serializer.ISerializer
	path       string
	data       []byte
}

func run(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	files, err := loadFiles()
	if err != nil {
		return err
	}

	if unpackConfig.Verify {
		if err := verify(files); err != nil {
			return err
		}
	}

	recorder := bench.NewRecorder()
	harness, err := bench.NewHarness(unpackConfig.BenchmarkTimes, unpackConfig.Runs, recorder)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Benchmark Times = %d\n", unpackConfig.BenchmarkTimes)

	results := make([]bench.Result, len(files))
	for i, file := range files {
		recorder.ObserveSize(file.format.Name, len(file.data))

		result, err := harness.Measure(file.format.Name, file.format.Label, bench.OpUnpack, unpackFunc(file))
		if err != nil {
			return err
		}
		result.Size = len(file.data)
		results[i] = result
	}

	bench.PrintTimings(out, results)
	fmt.Fprintln(out)
	bench.PrintDetails(out, results)

	return util.Export(unpackConfig, results, recorder)
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// loadFiles reads the data file of every selected format
func loadFiles() ([]dataFile, error) {
	formats, err := util.GetFormats(unpackConfig)
	if err != nil {
		return nil, err
	}

	opts := util.GetOptions(unpackConfig)
	files := make([]dataFile, len(formats))
	for i, f := range formats {
		s, err := f.New(opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}

		path := util.DataFile(unpackConfig, f)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s (run pack first): %w", path, err)
		}
		util.Logger.Debugf("read %s (%d bytes)", path, len(data))

		files[i] = dataFile{format: f, serializer: s, path: path, data: data}
	}
	return files, nil
}

// verify decodes every file once and compares the records with the first one
func verify(files []dataFile) error {
	var first record.Person
	for i, file := range files {
		var p record.Person
		if err := file.serializer.Deserialize(file.data, &p); err != nil {
			return fmt.Errorf("%s: %w", file.path, err)
		}

		if i == 0 {
			first = p
			continue
		}
		if !record.Equal(first, p) {
			return fmt.Errorf("%s decodes to a different record than %s", file.path, files[0].path)
		}
	}

	if len(files) > 0 {
		util.Logger.Infof("verified %d formats (%d logs)", len(files), len(first.Logs))
	}
	return nil
}

// unpackFunc returns the timed operation of a data file
func unpackFunc(file dataFile) func() error {
	if unpackConfig.FromDisk {
		return func() error {
			data, err := os.ReadFile(file.path)
			if err != nil {
				return err
			}
			var p record.Person
			return file.serializer.Deserialize(data, &p)
		}
	}

	return func() error {
		var p record.Person
		return file.serializer.Deserialize(file.data, &p)
	}
}
