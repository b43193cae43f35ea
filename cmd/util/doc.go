// Package util provides the configuration plumbing shared by the benchmark
// commands: flag setup, viper and .env initialization, argument parsing,
// format selection and result export.
package util
