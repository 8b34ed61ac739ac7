package compress

// ZstdCompressor compresses snapshot payloads with Zstandard.
//
// The codec of choice when snapshot size matters more than write speed:
// archived operands between runs of a long repeated-squaring computation,
// or snapshots shipped over a network.
//
// Two implementations back this type, selected at build time: the cgo
// binding (valyala/gozstd) when cgo is available, and the pure Go
// implementation (klauspost/compress/zstd) otherwise. Both produce standard
// Zstd frames and interoperate freely.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
