// Package record defines the synthetic payload used by the serialization
// benchmarks.
//
// The payload is a single Person record holding an identifier, a name, a
// list of integer tags, and a configurable number of Log entries. The record
// is built fresh for each run by NewPerson and is treated as immutable
// afterwards: every serializer in the benchmark encodes the same value.
//
// Key Components:
//
//   - Person: the top-level record (id, name, tags, logs).
//
//   - Log: a single log entry (id, content, status, timestamp).
//
//   - NewPerson: builds the fixed record for a given number of log entries.
//
//   - Equal: compares two records while treating nil and empty slices as equal,
//     since formats differ in how they materialize empty repeated fields.
package record
