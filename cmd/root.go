package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/serbench/cmd/pack"
	"github.com/ValentinKolb/serbench/cmd/unpack"
	"github.com/ValentinKolb/serbench/cmd/util"
	"github.com/ValentinKolb/serbench/lib/serializer"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "serbench",
		Short: "serialization format benchmark",
		Long: fmt.Sprintf(`serbench (v%s)

Compares serialization formats (protocol buffers, JSON, optionally gzip
compressed, and more) on payload size and encode/decode speed for a small
synthetic record.

Configuration can be set via command line flags or environment variables.
The format of the environment variables is SERBENCH_<flag> (e.g. SERBENCH_DATA_DIR=/tmp).`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of serbench",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "serbench v%s\n", Version)
		},
	}

	// formatsCmd lists all registered formats
	formatsCmd = &cobra.Command{
		Use:   "formats",
		Short: "List the available serialization formats",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-12s%-16s%s\n", "NAME", "LABEL", "FILE")
			for _, name := range serializer.Names() {
				f, err := serializer.Lookup(name)
				if err != nil {
					continue
				}
				fmt.Fprintf(out, "%-12s%-16s%s\n", f.Name, f.Label, f.FileName())
			}
		},
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(pack.PackCmd)
	RootCmd.AddCommand(unpack.UnpackCmd)
	RootCmd.AddCommand(formatsCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	util.SetupRunFlags(RootCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
