package serializer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ValentinKolb/serbench/lib/record"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// DefaultGzipLevel is the gzip level used when none is configured
const DefaultGzipLevel = 6

// --------------------------------------------------------------------------
// gzip
// --------------------------------------------------------------------------

// NewGzipSerializer wraps inner so that its output is gzip compressed with the given level.
// It returns an error if the level is not between 1 (best speed) and 9 (best compression).
func NewGzipSerializer(inner ISerializer, level int) (ISerializer, error) {
	if level < gzip.BestSpeed || level > gzip.BestCompression {
		return nil, fmt.Errorf("invalid gzip level %d: must be between %d and %d", level, gzip.BestSpeed, gzip.BestCompression)
	}
	return &gzipSerializerImpl{inner: inner, level: level}, nil
}

// gzipSerializerImpl compresses the output of another serializer
type gzipSerializerImpl struct {
	inner ISerializer
	level int
}

func (g *gzipSerializerImpl) Serialize(p record.Person) ([]byte, error) {
	data, err := g.inner.Serialize(p)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, g.level)
	if err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *gzipSerializerImpl) Deserialize(b []byte, p *record.Person) error {
	r, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("gzip decompression failed: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("gzip decompression failed: %w", err)
	}
	return g.inner.Deserialize(data, p)
}

// --------------------------------------------------------------------------
// zstd
// --------------------------------------------------------------------------

// NewZstdSerializer wraps inner so that its output is zstd compressed.
// The encoder and decoder are created once and shared by all calls.
func NewZstdSerializer(inner ISerializer) (ISerializer, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &zstdSerializerImpl{inner: inner, encoder: enc, decoder: dec}, nil
}

// zstdSerializerImpl compresses the output of another serializer.
// EncodeAll and DecodeAll are safe for concurrent use.
type zstdSerializerImpl struct {
	inner   ISerializer
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *zstdSerializerImpl) Serialize(p record.Person) ([]byte, error) {
	data, err := z.inner.Serialize(p)
	if err != nil {
		return nil, err
	}
	return z.encoder.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

func (z *zstdSerializerImpl) Deserialize(b []byte, p *record.Person) error {
	data, err := z.decoder.DecodeAll(b, nil)
	if err != nil {
		return fmt.Errorf("zstd decompression failed: %w", err)
	}
	return z.inner.Deserialize(data, p)
}
