// Package codec converts between arbitrary-precision unsigned integers and
// block stores.
//
// The mapping is the minimal little-endian block representation: store
// length = ceil(bitlen(n) / (width*8)) blocks, block i = the i-th chunk of n,
// and n = 0 maps to a zero-length store. Both directions go through the
// store's block primitives, so conversions participate in the store's I/O
// accounting like any other operation.
package codec

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/arloliu/hugeint/block"
)

var (
	// ErrNegative indicates an attempt to encode a negative integer.
	ErrNegative = errors.New("cannot encode a negative integer")

	// ErrNotEmpty indicates an encode destination that already holds blocks.
	ErrNotEmpty = errors.New("encode destination store is not empty")
)

// Encode writes the minimal block representation of n into the empty store
// dst. Encoding 0 writes nothing, leaving dst at length 0.
func Encode(n *big.Int, dst block.Store) error {
	if n.Sign() < 0 {
		return ErrNegative
	}
	length, err := dst.Length()
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if length != 0 {
		return ErrNotEmpty
	}

	wbits := uint(dst.Width()) * 8
	mask := new(big.Int).Lsh(big.NewInt(1), wbits)
	mask.Sub(mask, big.NewInt(1))

	rest := new(big.Int).Set(n)
	chunk := new(big.Int)
	for pos := int64(0); rest.Sign() > 0; pos++ {
		chunk.And(rest, mask)
		if err := dst.WriteBlock(pos, chunk.Uint64()); err != nil {
			return fmt.Errorf("encode block %d: %w", pos, err)
		}
		rest.Rsh(rest, wbits)
	}

	return nil
}

// Decode reads every block of src and returns the integer they represent.
// A zero-length store decodes to 0; trailing zero blocks are harmless.
func Decode(src block.Store) (*big.Int, error) {
	length, err := src.Length()
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	wbits := uint(src.Width()) * 8
	result := new(big.Int)
	chunk := new(big.Int)
	for pos := length - 1; pos >= 0; pos-- {
		v, err := src.ReadBlock(pos)
		if err != nil {
			return nil, fmt.Errorf("decode block %d: %w", pos, err)
		}
		result.Lsh(result, wbits)
		result.Or(result, chunk.SetUint64(v))
	}

	return result, nil
}
