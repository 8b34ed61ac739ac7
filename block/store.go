package block

import (
	"errors"

	"github.com/arloliu/hugeint/internal/options"
)

// Block width bounds, in bytes. The upper bound keeps every intermediate of
// the squaring carry chain representable in a uint64 alongside a 128-bit
// product; see the square package.
const (
	MinWidth = 1
	MaxWidth = 7

	// DefaultWidth is the width used when none is configured: a single byte.
	DefaultWidth = 1
)

var (
	// ErrInvalidBlockWidth indicates a block width outside [MinWidth, MaxWidth].
	// It is reported at construction time, before any I/O.
	ErrInvalidBlockWidth = errors.New("block width must be between 1 and 7 bytes")

	// ErrClosed indicates an access against a closed store.
	ErrClosed = errors.New("block store is closed")

	// ErrNegativePosition indicates a negative block index.
	ErrNegativePosition = errors.New("block position is negative")
)

// Store is the block-level contract shared by all media.
//
// ReadBlock returns the block at pos, or its zero-extension past the stored
// length; it fails only when the medium itself fails or the store is closed.
// WriteBlock masks the value to the block width, stores it at pos, and
// extends the medium as needed. Length derives the current block count from
// the medium size. Close releases the medium; subsequent accesses fail with
// ErrClosed (or the medium's own closed-file error).
type Store interface {
	ReadBlock(pos int64) (uint64, error)
	WriteBlock(pos int64, value uint64) error
	Length() (int64, error)
	Width() int
	Stats() *Stats
	Close() error
}

// ValidateWidth reports whether width is a usable block width.
func ValidateWidth(width int) error {
	if width < MinWidth || width > MaxWidth {
		return ErrInvalidBlockWidth
	}

	return nil
}

// widthMask returns the mask of the low width*8 bits.
func widthMask(width int) uint64 {
	return (uint64(1) << (uint(width) * 8)) - 1
}

type config struct {
	stats *Stats
}

// Option configures a store constructor.
type Option = options.Option[*config]

// WithStats attaches an existing Stats collector to the store instead of a
// freshly created one. Several stores may share one collector to measure an
// operation's cumulative I/O.
func WithStats(stats *Stats) Option {
	return options.New(func(c *config) error {
		if stats == nil {
			return errors.New("stats collector must not be nil")
		}
		c.stats = stats

		return nil
	})
}

func newConfig(opts ...Option) (*config, error) {
	cfg := &config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.stats == nil {
		cfg.stats = NewStats()
	}

	return cfg, nil
}
