package serializer

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/ValentinKolb/serbench/lib/record"
	"github.com/valyala/fastjson"
)

// NewFastJSONSerializer creates a new serializer that writes standard json and
// reads it back by walking a parsed fastjson value tree field by field,
// without reflection.
func NewFastJSONSerializer() ISerializer {
	return &fastJSONSerializerImpl{}
}

// fastJSONSerializerImpl implements the ISerializer interface.
// Parsers are pooled, so the serializer is safe for concurrent use.
type fastJSONSerializerImpl struct {
	parsers fastjson.ParserPool
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (f *fastJSONSerializerImpl) Serialize(p record.Person) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("json serialization failed: %w", err)
	}
	return data, nil
}

func (f *fastJSONSerializerImpl) Deserialize(b []byte, p *record.Person) error {
	parser := f.parsers.Get()
	defer f.parsers.Put(parser)

	v, err := parser.ParseBytes(b)
	if err != nil {
		return fmt.Errorf("fastjson deserialization failed: %w", err)
	}

	*p = record.Person{}
	if err := readPerson(v, p); err != nil {
		return fmt.Errorf("fastjson deserialization failed: %w", err)
	}
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// readPerson copies the fields of a parsed json object into p.
// Values from the parser are only valid until the parser is reused, so all strings are copied.
func readPerson(v *fastjson.Value, p *record.Person) error {
	if v.Type() != fastjson.TypeObject {
		return fmt.Errorf("expected object, got %s", v.Type())
	}

	id, err := int32Field(v, "id")
	if err != nil {
		return err
	}
	p.ID = id

	if p.Name, err = stringField(v, "name"); err != nil {
		return err
	}

	tags, err := arrayField(v, "tags")
	if err != nil {
		return err
	}
	if tags != nil {
		p.Tags = make([]int32, len(tags))
		for i, tag := range tags {
			n, err := tag.Int64()
			if err != nil {
				return fmt.Errorf("tag %d: %w", i, err)
			}
			if n < math.MinInt32 || n > math.MaxInt32 {
				return fmt.Errorf("tag %d: number %d overflows int32", i, n)
			}
			p.Tags[i] = int32(n)
		}
	}

	logs, err := arrayField(v, "logs")
	if err != nil {
		return err
	}
	if logs != nil {
		p.Logs = make([]record.Log, len(logs))
		for i, entry := range logs {
			if err := readLog(entry, &p.Logs[i]); err != nil {
				return fmt.Errorf("log %d: %w", i, err)
			}
		}
	}

	return nil
}

// readLog copies the fields of a parsed json object into l
func readLog(v *fastjson.Value, l *record.Log) error {
	if v.Type() != fastjson.TypeObject {
		return fmt.Errorf("expected object, got %s", v.Type())
	}

	id, err := int32Field(v, "id")
	if err != nil {
		return err
	}
	if l.Content, err = stringField(v, "content"); err != nil {
		return err
	}
	status, err := int32Field(v, "status")
	if err != nil {
		return err
	}
	times, err := intField(v, "times")
	if err != nil {
		return err
	}

	l.ID = id
	l.Status = status
	l.Times = times
	return nil
}

// intField returns the integer value of key, or zero if the key is missing
func intField(v *fastjson.Value, key string) (int64, error) {
	field := v.Get(key)
	if field == nil {
		return 0, nil
	}
	n, err := field.Int64()
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	return n, nil
}

// int32Field returns the integer value of key like intField, but fails if it does not fit into an int32
func int32Field(v *fastjson.Value, key string) (int32, error) {
	n, err := intField(v, key)
	if err != nil {
		return 0, err
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("field %q: number %d overflows int32", key, n)
	}
	return int32(n), nil
}

// stringField returns a copy of the string value of key, or "" if the key is missing
func stringField(v *fastjson.Value, key string) (string, error) {
	field := v.Get(key)
	if field == nil {
		return "", nil
	}
	s, err := field.StringBytes()
	if err != nil {
		return "", fmt.Errorf("field %q: %w", key, err)
	}
	return string(s), nil
}

// arrayField returns the elements of the array value of key.
// A missing key or a json null yields a nil slice.
func arrayField(v *fastjson.Value, key string) ([]*fastjson.Value, error) {
	field := v.Get(key)
	if field == nil || field.Type() == fastjson.TypeNull {
		return nil, nil
	}
	arr, err := field.Array()
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", key, err)
	}
	return arr, nil
}
