// Package compress provides the compression codecs used by hugeint
// snapshots.
//
// A snapshot payload is the raw little-endian image of a block store: long
// runs of limb bytes, frequently with low entropy in the high-order region.
// All codecs here operate on whole payloads in memory; the out-of-core
// algorithm itself never compresses its working stores.
package compress

import (
	"fmt"

	"github.com/arloliu/hugeint/format"
)

// Compressor compresses a complete snapshot payload.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// The returned slice is newly allocated and owned by the caller (except
	// for the no-op codec, which returns the input unchanged); the input
	// slice is never modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original
	// payload. It returns an error if the data is corrupted or was
	// compressed with an incompatible algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// NewCodec returns the codec for the given compression type.
func NewCodec(typ format.CompressionType) (Codec, error) {
	switch typ {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("unknown compression type: %v", typ)
	}
}
