package snapshot

import (
	"errors"
	"fmt"

	"github.com/hupe1980/vivaldi"
	"github.com/hupe1980/vivaldi/codec"
	"github.com/hupe1980/vivaldi/internal/hash"
)

const (
	magic = "VVLD"

	// Version is the current snapshot format version.
	Version byte = 1

	// magic, version, compression, codec name length
	headerSize = len(magic) + 3
)

// ErrCorrupt is returned when snapshot bytes cannot be decoded.
var ErrCorrupt = errors.New("snapshot: corrupt data")

// Checkpoint is the state persisted for one node.
type Checkpoint struct {
	Node       string                   `json:"node"`
	Coordinate vivaldi.CoordinateRecord `json:"coordinate"`
	Resets     int                      `json:"resets"`
	// SavedAt is the save time in unix nanoseconds.
	SavedAt int64 `json:"saved_at"`
}

type encodeOptions struct {
	codec       codec.Codec
	compression Compression
}

// EncodeOption configures Encode.
type EncodeOption func(*encodeOptions)

// WithCodec selects the payload codec. Defaults to codec.Default.
func WithCodec(c codec.Codec) EncodeOption {
	return func(o *encodeOptions) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCompression selects the payload compression. Defaults to none.
func WithCompression(c Compression) EncodeOption {
	return func(o *encodeOptions) {
		o.compression = c
	}
}

// Encode serializes cp.
//
// Layout:
//
//	"VVLD" | version | compression | len(codec) | codec | block | crc32c
//
// The codec must be one codec.ByName resolves, otherwise Decode could not
// read the result.
func Encode(cp Checkpoint, optFns ...EncodeOption) ([]byte, error) {
	o := encodeOptions{codec: codec.Default}
	for _, fn := range optFns {
		fn(&o)
	}

	name := o.codec.Name()
	if _, ok := codec.ByName(name); !ok {
		return nil, fmt.Errorf("snapshot: codec %q is not registered", name)
	}
	if len(name) > 255 {
		return nil, fmt.Errorf("snapshot: codec name too long")
	}

	payload, err := o.codec.Marshal(cp)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode checkpoint: %w", err)
	}

	block, err := compressBlock(payload, o.compression)
	if err != nil {
		return nil, fmt.Errorf("snapshot: compress: %w", err)
	}

	out := make([]byte, 0, headerSize+len(name)+len(block)+hash.Size)
	out = append(out, magic...)
	out = append(out, Version, byte(o.compression), byte(len(name)))
	out = append(out, name...)
	out = append(out, block...)
	return hash.Seal(out), nil
}

// Decode parses bytes written by Encode. The codec is selected by the name
// stored in the header.
func Decode(data []byte) (Checkpoint, error) {
	if len(data) < headerSize+hash.Size || string(data[:len(magic)]) != magic {
		return Checkpoint{}, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	if v := data[len(magic)]; v != Version {
		return Checkpoint{}, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, v)
	}

	data, ok := hash.Open(data)
	if !ok {
		return Checkpoint{}, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}

	compression := Compression(data[len(magic)+1])
	if compression > CompressionZSTD {
		return Checkpoint{}, fmt.Errorf("%w: unknown compression %d", ErrCorrupt, compression)
	}

	nameLen := int(data[len(magic)+2])
	if len(data) < headerSize+nameLen {
		return Checkpoint{}, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}
	name := string(data[headerSize : headerSize+nameLen])
	c, ok := codec.ByName(name)
	if !ok {
		return Checkpoint{}, fmt.Errorf("%w: unknown codec %q", ErrCorrupt, name)
	}

	payload, err := decompressBlock(data[headerSize+nameLen:], compression)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var cp Checkpoint
	if err := c.Unmarshal(payload, &cp); err != nil {
		return Checkpoint{}, fmt.Errorf("%w: decode checkpoint: %v", ErrCorrupt, err)
	}
	return cp, nil
}
