package serializer

import (
	"fmt"

	"github.com/ValentinKolb/serbench/lib/record"
	"github.com/bytedance/sonic"
)

// NewSonicSerializer creates a new serializer using the sonic JSON library.
// The output is plain JSON and can be read by every other JSON serializer.
func NewSonicSerializer() ISerializer {
	return &sonicSerializerImpl{}
}

// sonicSerializerImpl implements the ISerializer interface using sonic
type sonicSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (s sonicSerializerImpl) Serialize(p record.Person) ([]byte, error) {
	data, err := sonic.Marshal(&p)
	if err != nil {
		return nil, fmt.Errorf("sonic serialization failed: %w", err)
	}
	return data, nil
}

func (s sonicSerializerImpl) Deserialize(b []byte, p *record.Person) error {
	*p = record.Person{}
	if err := sonic.Unmarshal(b, p); err != nil {
		return fmt.Errorf("sonic deserialization failed: %w", err)
	}
	return nil
}
