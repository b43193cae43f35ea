package serializer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
)

// Options configures the serializers created by a Format
type Options struct {
	// GzipLevel is the compression level of the gzip formats
	GzipLevel int
}

// DefaultOptions returns the options used by the original benchmark
func DefaultOptions() Options {
	return Options{GzipLevel: DefaultGzipLevel}
}

// Format is a named serializer configuration that can be selected on the command line
type Format struct {
	// Name is the identifier used to select the format (e.g. "json.gz")
	Name string
	// Label is the human-readable name printed in result tables (e.g. "Json GZip")
	Label string
	// Ext is the file extension of the data file (data.<Ext>)
	Ext string
	// New creates the serializer for this format
	New func(opts Options) (ISerializer, error)
}

// FileName returns the name of the data file written for this format
func (f Format) FileName() string {
	return "data." + f.Ext
}

// AllFormats selects every registered format
const AllFormats = "all"

// DefaultFormats is the selection of the original benchmark
const DefaultFormats = "pb,json,json.gz"

var formats = xsync.NewMapOf[string, Format]()

func init() {
	plain := func(factory func() ISerializer) func(Options) (ISerializer, error) {
		return func(Options) (ISerializer, error) { return factory(), nil }
	}
	gzipped := func(factory func() ISerializer) func(Options) (ISerializer, error) {
		return func(opts Options) (ISerializer, error) { return NewGzipSerializer(factory(), opts.GzipLevel) }
	}
	zstded := func(factory func() ISerializer) func(Options) (ISerializer, error) {
		return func(Options) (ISerializer, error) { return NewZstdSerializer(factory()) }
	}

	for _, f := range []Format{
		{Name: "pb", Label: "Protobuf", Ext: "pb", New: plain(NewProtobufSerializer)},
		{Name: "pb.gz", Label: "Protobuf GZip", Ext: "pb.gz", New: gzipped(NewProtobufSerializer)},
		{Name: "json", Label: "Json", Ext: "json", New: plain(NewJSONSerializer)},
		{Name: "json.gz", Label: "Json GZip", Ext: "json.gz", New: gzipped(NewJSONSerializer)},
		{Name: "json.zst", Label: "Json Zstd", Ext: "json.zst", New: zstded(NewJSONSerializer)},
		{Name: "sonic", Label: "Sonic", Ext: "sonic.json", New: plain(NewSonicSerializer)},
		{Name: "fastjson", Label: "FastJson", Ext: "fast.json", New: plain(NewFastJSONSerializer)},
		{Name: "msgpack", Label: "Msgpack", Ext: "msgpack", New: plain(NewMsgpackSerializer)},
		{Name: "msgpack.gz", Label: "Msgpack GZip", Ext: "msgpack.gz", New: gzipped(NewMsgpackSerializer)},
		{Name: "gob", Label: "Gob", Ext: "gob", New: plain(NewGOBSerializer)},
		{Name: "bin", Label: "Binary", Ext: "bin", New: plain(NewBinarySerializer)},
	} {
		Register(f)
	}
}

// Register adds or replaces a format.
// Thread-safe: This method is safe for concurrent use
func Register(f Format) {
	formats.Store(f.Name, f)
}

// Lookup returns the format registered under name
func Lookup(name string) (Format, error) {
	f, ok := formats.Load(name)
	if !ok {
		return Format{}, fmt.Errorf("%w: %s (available: %s)", ErrUnknownFormat, name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names returns the sorted names of all registered formats
func Names() []string {
	names := make([]string, 0, formats.Size())
	formats.Range(func(name string, _ Format) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

// Resolve parses a comma-separated list of format names.
// "all" selects every registered format, duplicates are dropped and the order of first occurrence is kept.
func Resolve(list string) ([]Format, error) {
	var names []string
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if name == AllFormats {
			names = append(names, Names()...)
			continue
		}
		names = append(names, name)
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("no formats selected")
	}

	seen := make(map[string]bool, len(names))
	selected := make([]Format, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		f, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, f)
	}
	return selected, nil
}
