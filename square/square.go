// Package square implements out-of-core squaring of block-stored integers.
//
// The algorithm is schoolbook long multiplication restricted to the upper
// triangle of the cross-product matrix: because both factors are the same
// number, the off-diagonal product a_i*a_j appears twice, so each is computed
// once and doubled. This halves the block multiplications and, more
// importantly for an out-of-core operand, reads block i exactly once per
// outer iteration.
//
// The result store is an accumulator, not a write-once buffer: later outer
// iterations land partial products in slots already holding earlier
// contributions, so every write is preceded by a read of the existing value.
// A carry left over after the inner loop ripples forward from slot i+size,
// extending the result store as far as it needs to go.
package square

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/arloliu/hugeint/block"
	"github.com/arloliu/hugeint/internal/options"
)

// ErrWidthMismatch indicates a result store whose block width differs from
// the operand's.
var ErrWidthMismatch = errors.New("result store width does not match operand")

// ErrResultNotEmpty indicates a result store that already holds blocks.
var ErrResultNotEmpty = errors.New("result store is not empty")

// ResultFactory produces the empty result store for one squaring of the
// given operand. The returned store must use the operand's block width.
type ResultFactory func(operand block.Store) (block.Store, error)

// Squarer computes the square of a block-stored integer.
//
// A Squarer is stateless between calls and may be reused for any number of
// squarings; it is not safe for concurrent use because the stores it
// touches are not.
type Squarer struct {
	newResult ResultFactory
}

// Option configures a Squarer.
type Option = options.Option[*Squarer]

// WithResultFactory replaces the default in-memory result factory. Use this
// to direct results at file-backed stores, or to attach a shared Stats
// collector to each result.
func WithResultFactory(factory ResultFactory) Option {
	return options.New(func(s *Squarer) error {
		if factory == nil {
			return errors.New("result factory must not be nil")
		}
		s.newResult = factory

		return nil
	})
}

// New creates a Squarer.
//
// By default results are in-memory stores sharing the operand's Stats
// collector, so one collector observes an entire squaring.
func New(opts ...Option) (*Squarer, error) {
	s := &Squarer{
		newResult: func(operand block.Store) (block.Store, error) {
			return block.NewMemoryStore(operand.Width(), block.WithStats(operand.Stats()))
		},
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// Square reads the operand store and returns a freshly created store holding
// its square. A zero-length operand yields a zero-length result.
//
// On a medium failure the error is surfaced as-is, with no retry and no
// rollback; the returned store, if non-nil, holds a partial result the
// caller must close and discard.
func (s *Squarer) Square(operand block.Store) (block.Store, error) {
	result, err := s.newResult(operand)
	if err != nil {
		return nil, fmt.Errorf("create result store: %w", err)
	}

	if err := SquareInto(operand, result); err != nil {
		return result, err
	}

	return result, nil
}

// SquareInto squares the operand into the supplied empty result store.
//
// The result store must be empty and use the operand's block width. Partial
// products and carries are computed in 128-bit intermediates, so no value in
// the supported width range is ever silently truncated; the low width*8 bits
// are stored per block and the remainder carries into the next higher block.
func SquareInto(operand, result block.Store) error {
	if result.Width() != operand.Width() {
		return ErrWidthMismatch
	}
	resultLen, err := result.Length()
	if err != nil {
		return fmt.Errorf("result length: %w", err)
	}
	if resultLen != 0 {
		return ErrResultNotEmpty
	}

	size, err := operand.Length()
	if err != nil {
		return fmt.Errorf("operand length: %w", err)
	}

	wbits := uint(operand.Width()) * 8
	mask := (uint64(1) << wbits) - 1

	for i := int64(0); i < size; i++ {
		// One read of block i covers the whole inner pass.
		a, err := operand.ReadBlock(i)
		if err != nil {
			return fmt.Errorf("read operand block %d: %w", i, err)
		}

		carry := uint64(0)
		for j := i; j < size; j++ {
			b := a
			if j != i {
				bj, err := operand.ReadBlock(j)
				if err != nil {
					return fmt.Errorf("read operand block %d: %w", j, err)
				}
				// The off-diagonal product stands in for both (i,j) and (j,i).
				b = 2 * bj
			}

			existing, err := result.ReadBlock(i + j)
			if err != nil {
				return fmt.Errorf("read result block %d: %w", i+j, err)
			}

			// total = a*b + carry + existing, in 128 bits.
			hi, lo := bits.Mul64(a, b)
			var c uint64
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			lo, c = bits.Add64(lo, existing, 0)
			hi += c

			if err := result.WriteBlock(i+j, lo&mask); err != nil {
				return fmt.Errorf("write result block %d: %w", i+j, err)
			}
			carry = hi<<(64-wbits) | lo>>wbits
		}

		// Ripple the leftover carry into higher-order result blocks,
		// extending the store as needed.
		for k := i + size; carry > 0; k++ {
			existing, err := result.ReadBlock(k)
			if err != nil {
				return fmt.Errorf("read result block %d: %w", k, err)
			}
			total := existing + carry
			if err := result.WriteBlock(k, total&mask); err != nil {
				return fmt.Errorf("write result block %d: %w", k, err)
			}
			carry = total >> wbits
		}
	}

	return nil
}
