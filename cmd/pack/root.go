package pack

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
	packConfig = &common.RunConfig{}

	// PackCmd serializes the benchmark record and times the serializers
	PackCmd = &cobra.Command{
		Use:   "pack [LOG AMOUNT] [BENCHMARK TIMES]",
		Short: "Serialize the benchmark record with every format and time it",
		Long: `Build a record with LOG AMOUNT log entries, serialize it with every selected
format, write the data files (data.<ext>) and print their sizes. Then
serialize the record BENCHMARK TIMES times per format and print the elapsed
seconds. The data files are read by the unpack command.`,
		Args:    cobra.ExactArgs(2),
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	key := "skip-write"
	PackCmd.Flags().Bool(key, false, util.WrapString("Only measure, do not write the data files"))
}

// processConfig reads the arguments, flags and environment variables into the run configuration
func processConfig(cmd *cobra.Command, args []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	logAmount, err := util.ParseCount(args[0], "LOG AMOUNT", 0)
	if err != nil {
		return err
	}
	times, err := util.ParseCount(args[1], "BENCHMARK TIMES", 1)
	if err != nil {
		return err
	}

	packConfig = util.GetRunConfig()
	packConfig.LogAmount = logAmount
	packConfig.BenchmarkTimes = times
	packConfig.SkipWrite = viper.GetBool("skip-write")

	return util.InitRun(packConfig)
}

func run(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	formats, err := util.GetFormats(packConfig)
	if err != nil {
		return err
	}

	serializers, err := newSerializers(formats, util.GetOptions(packConfig))
	if err != nil {
		return err
	}

	person := record.NewPerson(packConfig.LogAmount)
	recorder := bench.NewRecorder()

	// encode once for the size table and the data files
	if !packConfig.SkipWrite {
		if err := util.EnsureDir(packConfig.DataDir); err != nil {
			return err
		}
	}

	results := make([]bench.Result, len(formats))
	for i, f := range formats {
		data, err := serializers[i].Serialize(person)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}

		results[i] = bench.Result{Format: f.Name, Label: f.Label, Op: bench.OpPack, Size: len(data)}
		recorder.ObserveSize(f.Name, len(data))

		if packConfig.SkipWrite {
			continue
		}
		path := util.DataFile(packConfig, f)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		util.Logger.Debugf("wrote %s (%d bytes)", path, len(data))
	}

	fmt.Fprintf(out, "LogAmount = %d\n", packConfig.LogAmount)
	bench.PrintSizes(out, results)

	// benchmark
	harness, err := bench.NewHarness(packConfig.BenchmarkTimes, packConfig.Runs, recorder)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Benchmark Times = %d\n", packConfig.BenchmarkTimes)

	for i, f := range formats {
		s := serializers[i]
		measured, err := harness.Measure(f.Name, f.Label, bench.OpPack, func() error {
			_, err := s.Serialize(person)
			return err
		})
		if err != nil {
			return err
		}
		measured.Size = results[i].Size
		results[i] = measured
	}

	bench.PrintTimings(out, results)
	fmt.Fprintln(out)
	bench.PrintDetails(out, results)

	return util.Export(packConfig, results, recorder)
}

// newSerializers creates one serializer per format
func newSerializers(formats []serializer.Format, opts serializer.Options) ([]serializer.ISerializer, error) {
	serializers := make([]serializer.ISerializer, len(formats))
	for i, f := range formats {
		s, err := f.New(opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		serializers[i] = s
	}
	return serializers, nil
}
