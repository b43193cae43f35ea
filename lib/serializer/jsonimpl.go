package serializer

import (
	"encoding/json"
	"fmt"

	"github.com/ValentinKolb/serbench/lib/record"
)

// NewJSONSerializer creates a new serializer using json encoding
func NewJSONSerializer() ISerializer {
	return &jsonSerializerImpl{}
}

// jsonSerializerImpl implements the ISerializer interface using json encoding
type jsonSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (j jsonSerializerImpl) Serialize(p record.Person) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("json serialization failed: %w", err)
	}
	return data, nil
}

func (j jsonSerializerImpl) Deserialize(b []byte, p *record.Person) error {
	*p = record.Person{}
	if err := json.Unmarshal(b, p); err != nil {
		return fmt.Errorf("json deserialization failed: %w", err)
	}
	return nil
}
