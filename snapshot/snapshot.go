// Package snapshot archives block stores as self-describing images.
//
// The canonical persisted form of a block store is a bare little-endian byte
// sequence with no metadata; that contract never changes. A snapshot is an
// archival sidecar around that image: a fixed header carrying the block
// width and compression type, an xxHash64 digest of the raw image for
// integrity checking, and the image itself run through one of the compress
// package codecs. Snapshots are how operands survive between runs of a long
// repeated-squaring computation without silently bit-rotting.
package snapshot

import (
	"errors"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/hugeint/block"
	"github.com/arloliu/hugeint/compress"
	"github.com/arloliu/hugeint/endian"
	"github.com/arloliu/hugeint/format"
	"github.com/arloliu/hugeint/internal/options"
	"github.com/arloliu/hugeint/internal/pool"
)

// Header layout, all fields little-endian:
//
//	offset 0: magic "HUG1" (4 bytes)
//	offset 4: version (1 byte)
//	offset 5: block width in bytes (1 byte)
//	offset 6: compression type (1 byte)
//	offset 7: reserved, zero (1 byte)
//	offset 8: raw image size in bytes (8 bytes)
//	offset 16: xxHash64 digest of the raw image (8 bytes)
//
// The compressed image follows the header and runs to the end of the stream.
const (
	headerSize = 24

	version = 1
)

var magic = [4]byte{'H', 'U', 'G', '1'}

var (
	// ErrBadMagic indicates a stream that is not a hugeint snapshot.
	ErrBadMagic = errors.New("snapshot: bad magic")

	// ErrUnsupportedVersion indicates a snapshot from a newer format revision.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")

	// ErrDigestMismatch indicates a snapshot whose payload does not match its
	// recorded digest.
	ErrDigestMismatch = errors.New("snapshot: image digest mismatch")
)

// StoreFactory materializes the empty destination store for an import.
type StoreFactory func(width int) (block.Store, error)

type importConfig struct {
	newStore StoreFactory
}

// ImportOption configures Import.
type ImportOption = options.Option[*importConfig]

// WithStoreFactory replaces the default in-memory destination of Import,
// directing the restored blocks at a caller-provided store (for example a
// file-backed one carrying a shared Stats collector).
func WithStoreFactory(factory StoreFactory) ImportOption {
	return options.New(func(c *importConfig) error {
		if factory == nil {
			return errors.New("store factory must not be nil")
		}
		c.newStore = factory

		return nil
	})
}

// Export writes a snapshot of src to w using the given compression type.
//
// The store is read through its block primitives, so the export is counted
// by the store's Stats like any other operation. A zero-length store
// produces a valid snapshot with an empty image.
func Export(src block.Store, w io.Writer, compression format.CompressionType) error {
	if !compression.Valid() {
		return fmt.Errorf("snapshot: invalid compression type %v", compression)
	}
	codec, err := compress.NewCodec(compression)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	length, err := src.Length()
	if err != nil {
		return fmt.Errorf("snapshot: source length: %w", err)
	}

	engine := endian.GetLittleEndianEngine()
	width := src.Width()

	buf := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(buf)
	buf.Grow(int(length) * width)

	var blockBuf [8]byte
	for pos := int64(0); pos < length; pos++ {
		v, err := src.ReadBlock(pos)
		if err != nil {
			return fmt.Errorf("snapshot: read block %d: %w", pos, err)
		}
		engine.PutUint64(blockBuf[:], v)
		buf.MustWrite(blockBuf[:width])
	}
	image := buf.Bytes()

	compressed, err := codec.Compress(image)
	if err != nil {
		return fmt.Errorf("snapshot: compress image: %w", err)
	}

	header := make([]byte, 0, headerSize)
	header = append(header, magic[:]...)
	header = append(header, version, byte(width), byte(compression), 0)
	header = engine.AppendUint64(header, uint64(len(image)))
	header = engine.AppendUint64(header, xxhash.Sum64(image))

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("snapshot: write header: %w", err)
	}
	if _, err := w.Write(compressed); err != nil {
		return fmt.Errorf("snapshot: write image: %w", err)
	}

	return nil
}

// Import reads a snapshot from r and materializes its blocks into a fresh
// store, in-memory unless a WithStoreFactory option directs it elsewhere.
//
// The image digest is verified before any block is written; a corrupted
// snapshot never produces a store.
func Import(r io.Reader, opts ...ImportOption) (block.Store, error) {
	cfg := &importConfig{
		newStore: func(width int) (block.Store, error) {
			return block.NewMemoryStore(width)
		},
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read stream: %w", err)
	}
	if len(raw) < headerSize {
		return nil, ErrBadMagic
	}
	if [4]byte(raw[:4]) != magic {
		return nil, ErrBadMagic
	}
	if raw[4] != version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, raw[4])
	}

	width := int(raw[5])
	if err := block.ValidateWidth(width); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	compression := format.CompressionType(raw[6])
	codec, err := compress.NewCodec(compression)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	engine := endian.GetLittleEndianEngine()
	imageSize := engine.Uint64(raw[8:16])
	digest := engine.Uint64(raw[16:24])

	image, err := codec.Decompress(raw[headerSize:])
	if err != nil {
		return nil, fmt.Errorf("snapshot: decompress image: %w", err)
	}
	if uint64(len(image)) != imageSize {
		return nil, fmt.Errorf("snapshot: image size %d does not match header %d", len(image), imageSize)
	}
	if xxhash.Sum64(image) != digest {
		return nil, ErrDigestMismatch
	}

	dst, err := cfg.newStore(width)
	if err != nil {
		return nil, fmt.Errorf("snapshot: create store: %w", err)
	}

	var blockBuf [8]byte
	for pos := int64(0); pos*int64(width) < int64(len(image)); pos++ {
		clear(blockBuf[:])
		copy(blockBuf[:width], image[pos*int64(width):])
		if err := dst.WriteBlock(pos, engine.Uint64(blockBuf[:])); err != nil {
			return dst, fmt.Errorf("snapshot: write block %d: %w", pos, err)
		}
	}

	return dst, nil
}
