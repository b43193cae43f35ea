// Package serializer provides the serialization formats compared by the
// benchmark. It defines a common interface and multiple implementations for
// serializing and deserializing the record.Person payload.
//
// The package focuses on:
//   - Providing a consistent interface for different serialization formats
//   - Contrasting a schema-based binary format (protocol buffers) with textual JSON
//   - Layering compression (gzip, zstd) on top of any format
//   - Naming every configuration so it can be selected from the command line
//
// Key Components:
//
//   - ISerializer: Core interface that all serializer implementations must satisfy.
//
//   - protobufSerializerImpl: Protocol buffers wire format as described in
//     person.proto, encoded and decoded directly with protowire.
//
//   - jsonSerializerImpl, sonicSerializerImpl, fastJSONSerializerImpl: JSON using
//     encoding/json, bytedance/sonic, and a valyala/fastjson tree walk for decoding.
//
//   - msgpackSerializerImpl, gobSerializerImpl: reflection based binary formats.
//
//   - binarySerializerImpl: Custom binary format with a flag header and
//     length-prefixed fields, tailored to the record structure.
//
//   - gzipSerializerImpl, zstdSerializerImpl: decorators compressing the output
//     of another serializer (klauspost/compress).
//
//   - Format: a named serializer configuration (label, file extension, factory).
//     Formats live in a registry; Resolve turns a comma separated selection
//     such as "pb,json,json.gz" into formats.
//
// Thread Safety:
//
//	All serializer implementations are safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	  f, err := serializer.Lookup("json.gz")
//	  s, err := f.New(serializer.DefaultOptions())
//	  data, err := s.Serialize(record.NewPerson(100))
//	  var p record.Person
//	  err = s.Deserialize(data, &p)
package serializer
