package block

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/hugeint/endian"
)

// FileStore is a block store backed by a random-access file.
//
// Blocks live at byte offset pos*width with no header and no length field;
// the block count is always the file size divided by the width, truncated.
// Writes past the end extend the file, and the skipped range of a sparse
// write reads back as zero (holes are zero-filled by the filesystem).
type FileStore struct {
	file   *os.File
	path   string
	engine endian.EndianEngine
	stats  *Stats
	mask   uint64
	width  int
	closed bool
}

var _ Store = (*FileStore)(nil)

// CreateFile creates (or truncates) the file at path and returns an empty
// store over it with the given block width in bytes.
//
// Returns ErrInvalidBlockWidth if width is outside [MinWidth, MaxWidth], or
// a wrapped medium error if the file cannot be created.
func CreateFile(path string, width int, opts ...Option) (*FileStore, error) {
	return openFile(path, width, os.O_RDWR|os.O_CREATE|os.O_TRUNC, opts...)
}

// OpenFile opens an existing file at path as a block store with the given
// block width in bytes. The file's current contents are the stored blocks.
func OpenFile(path string, width int, opts ...Option) (*FileStore, error) {
	return openFile(path, width, os.O_RDWR, opts...)
}

func openFile(path string, width int, flag int, opts ...Option) (*FileStore, error) {
	if err := ValidateWidth(width); err != nil {
		return nil, err
	}
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open block store %s: %w", path, err)
	}

	return &FileStore{
		file:   file,
		path:   path,
		engine: endian.GetLittleEndianEngine(),
		stats:  cfg.stats,
		mask:   widthMask(width),
		width:  width,
	}, nil
}

// ReadBlock returns the block at pos. Positions at or beyond the stored
// length read as 0 without extending the file; a partial trailing block
// reads as its available bytes zero-extended. Each read that passes
// validation is counted, including past-end reads.
func (s *FileStore) ReadBlock(pos int64) (uint64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if pos < 0 {
		return 0, ErrNegativePosition
	}
	s.stats.countRead()

	var buf [8]byte
	_, err := s.file.ReadAt(buf[:s.width], pos*int64(s.width))
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("read block %d from %s: %w", pos, s.path, err)
	}
	// A short read at the tail leaves the upper bytes zero, which is exactly
	// the zero-extension the contract requires.

	return s.engine.Uint64(buf[:]), nil
}

// WriteBlock stores value masked to the block width at pos, extending the
// file as needed. Each write that passes validation is counted.
func (s *FileStore) WriteBlock(pos int64, value uint64) error {
	if s.closed {
		return ErrClosed
	}
	if pos < 0 {
		return ErrNegativePosition
	}
	s.stats.countWrite()

	var buf [8]byte
	s.engine.PutUint64(buf[:], value&s.mask)
	if _, err := s.file.WriteAt(buf[:s.width], pos*int64(s.width)); err != nil {
		return fmt.Errorf("write block %d to %s: %w", pos, s.path, err)
	}

	return nil
}

// Length returns the stored block count derived from the current file size,
// truncating any partial trailing block.
func (s *FileStore) Length() (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}

	info, err := s.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat block store %s: %w", s.path, err)
	}

	return info.Size() / int64(s.width), nil
}

// Width returns the block width in bytes.
func (s *FileStore) Width() int {
	return s.width
}

// Stats returns the store's I/O collector.
func (s *FileStore) Stats() *Stats {
	return s.stats
}

// Path returns the backing file's path.
func (s *FileStore) Path() string {
	return s.path
}

// Sync flushes the backing file to stable storage.
func (s *FileStore) Sync() error {
	if s.closed {
		return ErrClosed
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("sync block store %s: %w", s.path, err)
	}

	return nil
}

// Close closes the backing file. Further accesses fail with ErrClosed.
func (s *FileStore) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("close block store %s: %w", s.path, err)
	}

	return nil
}
