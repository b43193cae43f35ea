package serializer

import (
	"testing"

	"github.com/ValentinKolb/serbench/lib/record"
)

// benchmarkRecords returns a set of records for targeted benchmarking
func benchmarkRecords() map[string]record.Person {
	return map[string]record.Person{
		"NoLogs":   record.NewPerson(0),
		"Logs10":   record.NewPerson(10),
		"Logs100":  record.NewPerson(100),
		"Logs1000": record.NewPerson(1000),
	}
}

// BenchmarkSerialize benchmarks serialization for all formats with various record sizes
func BenchmarkSerialize(b *testing.B) {
	records := benchmarkRecords()

	for name, serializer := range testSerializers(b) {
		for recName, p := range records {
			b.Run(name+"_"+recName, func(b *testing.B) {
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					_, err := serializer.Serialize(p)
					if err != nil {
						b.Fatalf("Failed to serialize: %v", err)
					}
				}
			})
		}
	}
}

// BenchmarkDeserialize benchmarks deserialization for all formats with various record sizes
func BenchmarkDeserialize(b *testing.B) {
	records := benchmarkRecords()
	serializers := testSerializers(b)
	serializedData := make(map[string]map[string][]byte)

	// Pre-serialize all records with all serializers
	for name, serializer := range serializers {
		serializedData[name] = make(map[string][]byte)

		for recName, p := range records {
			data, err := serializer.Serialize(p)
			if err != nil {
				b.Fatalf("Failed to serialize %s with %s: %v", recName, name, err)
			}
			serializedData[name][recName] = data
		}
	}

	// Benchmark deserialization
	for name, serializer := range serializers {
		for recName := range records {
			b.Run(name+"_"+recName, func(b *testing.B) {
				data := serializedData[name][recName]
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					var p record.Person
					err := serializer.Deserialize(data, &p)
					if err != nil {
						b.Fatalf("Failed to deserialize: %v", err)
					}
				}
			})
		}
	}
}

// BenchmarkSize measures and reports the serialized size for each record size
func BenchmarkSize(b *testing.B) {
	records := benchmarkRecords()

	for name, serializer := range testSerializers(b) {
		for recName, p := range records {
			b.Run(name+"_"+recName, func(b *testing.B) {
				data, err := serializer.Serialize(p)
				if err != nil {
					b.Fatalf("Failed to serialize: %v", err)
				}

				// Report the size as a custom metric
				b.ReportMetric(float64(len(data)), "bytes")

				// Minimal loop to satisfy benchmark requirements
				for i := 0; i < b.N; i++ {
					_ = data
				}
			})
		}
	}
}
