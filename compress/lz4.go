package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances for reuse.
// The lz4.Compressor maintains internal state that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4 block framing: a one-byte mode marker followed by a 4-byte
// little-endian original size, then the block. High-entropy limb images can
// defeat LZ4 entirely (CompressBlock reports 0 bytes), in which case the
// payload is stored raw under its own marker.
const (
	lz4ModeRaw   = 0x0
	lz4ModeBlock = 0x1

	lz4HeaderSize = 5
)

// LZ4Compressor compresses snapshot payloads with LZ4 block compression.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using LZ4, falling back to raw storage
// when the data is incompressible.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) > 0xFFFFFFFF {
		return nil, errors.New("payload too large for lz4 length prefix")
	}

	compressor := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(compressor)

	buf := make([]byte, lz4HeaderSize+lz4.CompressBlockBound(len(data)))
	buf[1] = byte(len(data))
	buf[2] = byte(len(data) >> 8)
	buf[3] = byte(len(data) >> 16)
	buf[4] = byte(len(data) >> 24)

	n, err := compressor.CompressBlock(data, buf[lz4HeaderSize:])
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Incompressible; store raw.
		buf[0] = lz4ModeRaw
		return append(buf[:lz4HeaderSize], data...), nil
	}
	buf[0] = lz4ModeBlock

	return buf[:lz4HeaderSize+n], nil
}

// Decompress decompresses data produced by Compress.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < lz4HeaderSize {
		return nil, errors.New("lz4 payload missing header")
	}

	size := uint32(data[1]) | uint32(data[2])<<8 | uint32(data[3])<<16 | uint32(data[4])<<24
	body := data[lz4HeaderSize:]

	switch data[0] {
	case lz4ModeRaw:
		if uint32(len(body)) != size {
			return nil, errors.New("lz4 raw payload length mismatch")
		}
		out := make([]byte, size)
		copy(out, body)

		return out, nil
	case lz4ModeBlock:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, err
		}

		return out[:n], nil
	default:
		return nil, errors.New("lz4 payload has unknown mode")
	}
}
