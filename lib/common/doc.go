// Package common provides the configuration and logging shared by the
// benchmark commands and libraries.
//
// Key Components:
//
//   - RunConfig: all parameters of a pack or unpack run (counts, data directory,
//     selected formats, export paths, log level) with a formatted String output.
//
//   - Logger: custom logging implementation of dragonboat's logger.ILogger,
//     installed as the global logger factory by InitLoggers. Packages obtain their
//     logger with logger.GetLogger(name).
package common
