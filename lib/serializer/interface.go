package serializer

import (
	"errors"

	"github.com/ValentinKolb/serbench/lib/record"
)

var (
	// ErrTruncated is returned when the input ends before a complete record was read
	ErrTruncated = errors.New("data truncated")
	// ErrUnknownFormat is returned when a format name is not registered
	ErrUnknownFormat = errors.New("unknown format")
)

// ISerializer is the interface for all Person serializers
type ISerializer interface {
	// Serialize serializes a Person into a byte array
	// It returns the serialized byte array and an error if any
	Serialize(p record.Person) ([]byte, error)
	// Deserialize deserializes a byte array into a Person
	// It takes a byte array and a pointer to a Person as parameters.
	// Any previous content of the Person is replaced.
	// It returns an error if any
	Deserialize(b []byte, p *record.Person) error
}
