package serializer

import (
	"encoding/binary"
	"fmt"

	"github.com/ValentinKolb/serbench/lib/record"
)

// NewBinarySerializer creates a new serializer using a custom binary format
// optimized for speed and efficiency
func NewBinarySerializer() ISerializer {
	return &binarySerializerImpl{}
}

// binarySerializerImpl implements ISerializer using a custom binary format.
//
// Layout (big endian):
//
//	flags(1) id(4) [nameLen(4) name] [tagCount(4) tag(4)*] [logCount(4) log*]
//	log = id(4) contentLen(4) content status(4) times(8)
type binarySerializerImpl struct {
}

// Bit flags to indicate which optional fields are present
const (
	hasName byte = 1 << 0
	hasTags byte = 1 << 1
	hasLogs byte = 1 << 2
)

// fixed size of a log entry without its content
const binaryLogHeaderSize = 4 + 4 + 4 + 8

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (b binarySerializerImpl) Serialize(p record.Person) ([]byte, error) {
	// Calculate total size needed
	totalSize := b.sizeBytes(p)
	result := make([]byte, totalSize)

	// Initialize flags byte
	var flags byte = 0

	// Write id
	binary.BigEndian.PutUint32(result[1:5], uint32(p.ID))

	// Set position for writing
	pos := 5 // Start after flags and id

	// Handle Name
	if p.Name != "" {
		flags |= hasName
		nameLen := len(p.Name)

		binary.BigEndian.PutUint32(result[pos:pos+4], uint32(nameLen))
		pos += 4

		copy(result[pos:pos+nameLen], p.Name)
		pos += nameLen
	}

	// Handle Tags
	if p.Tags != nil {
		flags |= hasTags

		binary.BigEndian.PutUint32(result[pos:pos+4], uint32(len(p.Tags)))
		pos += 4

		for _, tag := range p.Tags {
			binary.BigEndian.PutUint32(result[pos:pos+4], uint32(tag))
			pos += 4
		}
	}

	// Handle Logs
	if p.Logs != nil {
		flags |= hasLogs

		binary.BigEndian.PutUint32(result[pos:pos+4], uint32(len(p.Logs)))
		pos += 4

		for _, l := range p.Logs {
			binary.BigEndian.PutUint32(result[pos:pos+4], uint32(l.ID))
			pos += 4

			contentLen := len(l.Content)
			binary.BigEndian.PutUint32(result[pos:pos+4], uint32(contentLen))
			pos += 4
			copy(result[pos:pos+contentLen], l.Content)
			pos += contentLen

			binary.BigEndian.PutUint32(result[pos:pos+4], uint32(l.Status))
			pos += 4

			binary.BigEndian.PutUint64(result[pos:pos+8], uint64(l.Times))
			pos += 8
		}
	}

	// Set flags byte after knowing which fields are present
	result[0] = flags

	return result, nil
}

func (b binarySerializerImpl) Deserialize(data []byte, p *record.Person) error {
	*p = record.Person{}

	// Check minimum size (flags + id)
	if len(data) < 5 {
		return fmt.Errorf("%w: header", ErrTruncated)
	}

	// Read flags
	flags := data[0]

	// Read id
	p.ID = int32(binary.BigEndian.Uint32(data[1:5]))

	// Initialize read position
	pos := 5

	// Read Name if present
	if flags&hasName != 0 {
		if pos+4 > len(data) {
			return fmt.Errorf("%w: name length", ErrTruncated)
		}

		nameLen := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		pos += 4

		if nameLen > len(data)-pos {
			return fmt.Errorf("%w: name data", ErrTruncated)
		}

		p.Name = string(data[pos : pos+nameLen])
		pos += nameLen
	}

	// Read Tags if present
	if flags&hasTags != 0 {
		if pos+4 > len(data) {
			return fmt.Errorf("%w: tag count", ErrTruncated)
		}

		tagCount := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		pos += 4

		if tagCount > (len(data)-pos)/4 {
			return fmt.Errorf("%w: tags", ErrTruncated)
		}

		p.Tags = make([]int32, tagCount)
		for i := range p.Tags {
			p.Tags[i] = int32(binary.BigEndian.Uint32(data[pos : pos+4]))
			pos += 4
		}
	}

	// Read Logs if present
	if flags&hasLogs != 0 {
		if pos+4 > len(data) {
			return fmt.Errorf("%w: log count", ErrTruncated)
		}

		logCount := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		pos += 4

		// every log needs at least its fixed header
		if logCount > (len(data)-pos)/binaryLogHeaderSize {
			return fmt.Errorf("%w: logs", ErrTruncated)
		}

		logs := make([]record.Log, logCount)
		for i := range logs {
			if pos+8 > len(data) {
				return fmt.Errorf("%w: log %d header", ErrTruncated, i)
			}

			logs[i].ID = int32(binary.BigEndian.Uint32(data[pos : pos+4]))
			pos += 4

			contentLen := int(binary.BigEndian.Uint32(data[pos : pos+4]))
			pos += 4

			if contentLen > len(data)-pos-12 {
				return fmt.Errorf("%w: log %d content", ErrTruncated, i)
			}

			logs[i].Content = string(data[pos : pos+contentLen])
			pos += contentLen

			logs[i].Status = int32(binary.BigEndian.Uint32(data[pos : pos+4]))
			pos += 4

			logs[i].Times = int64(binary.BigEndian.Uint64(data[pos : pos+8]))
			pos += 8
		}
		p.Logs = logs
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// sizeBytes calculates the total size needed for serialization
func (b binarySerializerImpl) sizeBytes(p record.Person) int {
	// 1 byte for flags + 4 bytes for id
	size := 5

	// Add sizes for fields that require length encoding
	if p.Name != "" {
		size += 4 + len(p.Name) // 4 bytes for length + name string
	}
	if p.Tags != nil {
		size += 4 + 4*len(p.Tags) // 4 bytes for count + 4 bytes per tag
	}
	if p.Logs != nil {
		size += 4 // 4 bytes for count
		for _, l := range p.Logs {
			size += binaryLogHeaderSize + len(l.Content)
		}
	}

	return size
}
