package block

import (
	"github.com/arloliu/hugeint/endian"
)

// MemoryStore is a block store backed by a byte slice.
//
// It is the default result medium of the square package and the natural
// choice for tests and for operands that fit in memory; the semantics are
// identical to FileStore so the two are interchangeable behind Store.
type MemoryStore struct {
	data   []byte
	engine endian.EndianEngine
	stats  *Stats
	mask   uint64
	width  int
	closed bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store with the given block width
// in bytes.
//
// Returns ErrInvalidBlockWidth if width is outside [MinWidth, MaxWidth].
func NewMemoryStore(width int, opts ...Option) (*MemoryStore, error) {
	if err := ValidateWidth(width); err != nil {
		return nil, err
	}
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &MemoryStore{
		engine: endian.GetLittleEndianEngine(),
		stats:  cfg.stats,
		mask:   widthMask(width),
		width:  width,
	}, nil
}

// NewMemoryStoreFromBytes creates an in-memory store over an existing
// little-endian image. The store takes ownership of data.
func NewMemoryStoreFromBytes(data []byte, width int, opts ...Option) (*MemoryStore, error) {
	s, err := NewMemoryStore(width, opts...)
	if err != nil {
		return nil, err
	}
	s.data = data

	return s, nil
}

// ReadBlock returns the block at pos. Positions at or beyond the stored
// length read as 0; a partial trailing block reads as its available bytes
// zero-extended. Each read that passes validation is counted.
func (s *MemoryStore) ReadBlock(pos int64) (uint64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if pos < 0 {
		return 0, ErrNegativePosition
	}
	s.stats.countRead()

	off := pos * int64(s.width)
	if off >= int64(len(s.data)) {
		return 0, nil
	}

	var buf [8]byte
	copy(buf[:s.width], s.data[off:])

	return s.engine.Uint64(buf[:]), nil
}

// WriteBlock stores value masked to the block width at pos, growing the
// backing slice as needed. Any gap between the previous length and pos is
// zero-filled. Each write that passes validation is counted.
func (s *MemoryStore) WriteBlock(pos int64, value uint64) error {
	if s.closed {
		return ErrClosed
	}
	if pos < 0 {
		return ErrNegativePosition
	}
	s.stats.countWrite()

	end := (pos + 1) * int64(s.width)
	if grow := end - int64(len(s.data)); grow > 0 {
		s.data = append(s.data, make([]byte, grow)...)
	}

	var buf [8]byte
	s.engine.PutUint64(buf[:], value&s.mask)
	copy(s.data[pos*int64(s.width):end], buf[:s.width])

	return nil
}

// Length returns the stored block count, truncating any partial trailing
// block.
func (s *MemoryStore) Length() (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}

	return int64(len(s.data)) / int64(s.width), nil
}

// Width returns the block width in bytes.
func (s *MemoryStore) Width() int {
	return s.width
}

// Stats returns the store's I/O collector.
func (s *MemoryStore) Stats() *Stats {
	return s.stats
}

// Bytes returns the raw little-endian image of the store. The slice aliases
// the store's backing memory.
func (s *MemoryStore) Bytes() []byte {
	return s.data
}

// Close releases the backing slice. Further accesses fail with ErrClosed.
func (s *MemoryStore) Close() error {
	s.closed = true
	s.data = nil

	return nil
}
