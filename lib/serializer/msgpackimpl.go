package serializer

import (
	"fmt"

	"github.com/ValentinKolb/serbench/lib/record"
	"github.com/vmihailenco/msgpack/v5"
)

// NewMsgpackSerializer creates a new serializer using MessagePack
func NewMsgpackSerializer() ISerializer {
	return &msgpackSerializerImpl{}
}

// msgpackSerializerImpl implements the ISerializer interface using MessagePack.
// Struct fields are encoded as a map keyed by the msgpack tags of record.Person.
type msgpackSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (m msgpackSerializerImpl) Serialize(p record.Person) ([]byte, error) {
	data, err := msgpack.Marshal(&p)
	if err != nil {
		return nil, fmt.Errorf("msgpack serialization failed: %w", err)
	}
	return data, nil
}

func (m msgpackSerializerImpl) Deserialize(b []byte, p *record.Person) error {
	*p = record.Person{}
	if err := msgpack.Unmarshal(b, p); err != nil {
		return fmt.Errorf("msgpack deserialization failed: %w", err)
	}
	return nil
}
