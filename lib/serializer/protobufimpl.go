package serializer

import (
	"fmt"

	"github.com/ValentinKolb/serbench/lib/record"
	"google.golang.org/protobuf/encoding/protowire"
)

// NewProtobufSerializer creates a new serializer using the protocol buffers
// wire format described in person.proto
func NewProtobufSerializer() ISerializer {
	return &protobufSerializerImpl{}
}

// protobufSerializerImpl implements ISerializer with proto3 encoding rules:
// zero scalars are omitted, repeated tags are packed and unknown fields are skipped
type protobufSerializerImpl struct {
}

// Field numbers (see person.proto)
const (
	personFieldID   protowire.Number = 1
	personFieldName protowire.Number = 2
	personFieldTags protowire.Number = 3
	personFieldLogs protowire.Number = 4

	logFieldID      protowire.Number = 1
	logFieldContent protowire.Number = 2
	logFieldStatus  protowire.Number = 3
	logFieldTimes   protowire.Number = 4
)

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (s protobufSerializerImpl) Serialize(p record.Person) ([]byte, error) {
	b := make([]byte, 0, sizePerson(p))

	if p.ID != 0 {
		b = protowire.AppendTag(b, personFieldID, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(p.ID))
	}

	if p.Name != "" {
		b = protowire.AppendTag(b, personFieldName, protowire.BytesType)
		b = protowire.AppendString(b, p.Name)
	}

	if len(p.Tags) > 0 {
		b = protowire.AppendTag(b, personFieldTags, protowire.BytesType)
		b = protowire.AppendVarint(b, uint64(sizePackedTags(p.Tags)))
		for _, tag := range p.Tags {
			b = protowire.AppendVarint(b, uint64(tag))
		}
	}

	for _, l := range p.Logs {
		b = protowire.AppendTag(b, personFieldLogs, protowire.BytesType)
		b = protowire.AppendVarint(b, uint64(sizeLog(l)))
		b = appendLog(b, l)
	}

	return b, nil
}

func (s protobufSerializerImpl) Deserialize(b []byte, p *record.Person) error {
	*p = record.Person{}

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("protobuf deserialization failed: person tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == personFieldID && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return fmt.Errorf("protobuf deserialization failed: id: %w", protowire.ParseError(n))
			}
			p.ID = int32(v)
			b = b[n:]

		case num == personFieldName && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return fmt.Errorf("protobuf deserialization failed: name: %w", protowire.ParseError(n))
			}
			p.Name = v
			b = b[n:]

		case num == personFieldTags && typ == protowire.BytesType:
			packed, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return fmt.Errorf("protobuf deserialization failed: tags: %w", protowire.ParseError(n))
			}
			tags, err := consumePackedTags(packed, p.Tags)
			if err != nil {
				return fmt.Errorf("protobuf deserialization failed: tags: %w", err)
			}
			p.Tags = tags
			b = b[n:]

		case num == personFieldTags && typ == protowire.VarintType:
			// non-packed encoding, still valid for repeated scalars
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return fmt.Errorf("protobuf deserialization failed: tag: %w", protowire.ParseError(n))
			}
			p.Tags = append(p.Tags, int32(v))
			b = b[n:]

		case num == personFieldLogs && typ == protowire.BytesType:
			msg, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return fmt.Errorf("protobuf deserialization failed: log: %w", protowire.ParseError(n))
			}
			var l record.Log
			if err := consumeLog(msg, &l); err != nil {
				return fmt.Errorf("protobuf deserialization failed: log %d: %w", len(p.Logs), err)
			}
			p.Logs = append(p.Logs, l)
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("protobuf deserialization failed: field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// appendLog appends the fields of l (without the enclosing tag and length)
func appendLog(b []byte, l record.Log) []byte {
	if l.ID != 0 {
		b = protowire.AppendTag(b, logFieldID, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(l.ID))
	}
	if l.Content != "" {
		b = protowire.AppendTag(b, logFieldContent, protowire.BytesType)
		b = protowire.AppendString(b, l.Content)
	}
	if l.Status != 0 {
		b = protowire.AppendTag(b, logFieldStatus, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(l.Status))
	}
	if l.Times != 0 {
		b = protowire.AppendTag(b, logFieldTimes, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(l.Times))
	}
	return b
}

// consumeLog decodes a single embedded Log message
func consumeLog(b []byte, l *record.Log) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch {
		case num == logFieldID && typ == protowire.VarintType,
			num == logFieldStatus && typ == protowire.VarintType,
			num == logFieldTimes && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			switch num {
			case logFieldID:
				l.ID = int32(v)
			case logFieldStatus:
				l.Status = int32(v)
			default:
				l.Times = int64(v)
			}
			b = b[n:]

		case num == logFieldContent && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			l.Content = v
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}

// consumePackedTags appends all varints of a packed field to tags
func consumePackedTags(b []byte, tags []int32) ([]int32, error) {
	if tags == nil {
		tags = make([]int32, 0, len(b))
	}
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		tags = append(tags, int32(v))
		b = b[n:]
	}
	return tags, nil
}

// sizePerson calculates the encoded size of p
func sizePerson(p record.Person) int {
	size := 0
	if p.ID != 0 {
		size += protowire.SizeTag(personFieldID) + protowire.SizeVarint(uint64(p.ID))
	}
	if p.Name != "" {
		size += protowire.SizeTag(personFieldName) + protowire.SizeBytes(len(p.Name))
	}
	if len(p.Tags) > 0 {
		size += protowire.SizeTag(personFieldTags) + protowire.SizeBytes(sizePackedTags(p.Tags))
	}
	for _, l := range p.Logs {
		size += protowire.SizeTag(personFieldLogs) + protowire.SizeBytes(sizeLog(l))
	}
	return size
}

// sizePackedTags calculates the payload size of the packed tags field
func sizePackedTags(tags []int32) int {
	size := 0
	for _, tag := range tags {
		size += protowire.SizeVarint(uint64(tag))
	}
	return size
}

// sizeLog calculates the encoded size of l (without the enclosing tag and length)
func sizeLog(l record.Log) int {
	size := 0
	if l.ID != 0 {
		size += protowire.SizeTag(logFieldID) + protowire.SizeVarint(uint64(l.ID))
	}
	if l.Content != "" {
		size += protowire.SizeTag(logFieldContent) + protowire.SizeBytes(len(l.Content))
	}
	if l.Status != 0 {
		size += protowire.SizeTag(logFieldStatus) + protowire.SizeVarint(uint64(l.Status))
	}
	if l.Times != 0 {
		size += protowire.SizeTag(logFieldTimes) + protowire.SizeVarint(uint64(l.Times))
	}
	return size
}
