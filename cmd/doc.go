// Package cmd implements the command-line interface of serbench, a
// micro-benchmark comparing serialization formats on size and speed.
//
// The package is organized into several subpackages:
//
//   - pack: builds the benchmark record, writes one data file per format and times serialization
//   - unpack: reads the data files back and times deserialization
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See serbench -help for a list of all commands.
package cmd
