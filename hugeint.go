// Package hugeint squares arbitrarily large non-negative integers whose
// block representation lives in a random-access store, minimizing the number
// of block-level reads and writes the computation needs.
//
// The number is held as little-endian fixed-width blocks in a block.Store
// (in memory, or a file for operands that do not fit comfortably in memory).
// The square package runs schoolbook multiplication directly against that
// store, reading each operand block once per outer pass and accumulating
// partial products in the result store; the codec package converts between
// *big.Int and the block representation; block.Stats counts every access for
// I/O accounting.
//
// # Basic Usage
//
// In-memory squaring through the convenience wrapper:
//
//	import "github.com/arloliu/hugeint"
//
//	squared, err := hugeint.Square(n, 1)
//
// Out-of-core squaring with explicit stores and one shared collector:
//
//	stats := block.NewStats()
//	operand, _ := block.OpenFile("num.bin", 1, block.WithStats(stats))
//	defer operand.Close()
//
//	squarer, _ := square.New(square.WithResultFactory(
//		func(op block.Store) (block.Store, error) {
//			return block.CreateFile("result.bin", op.Width(), block.WithStats(stats))
//		}))
//	result, err := squarer.Square(operand)
//
//	fmt.Println(stats.Reads(), stats.Writes())
//
// A result store serves directly as the operand of the next squaring, which
// is how callers compute successive powers; see examples/powers_demo.
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the block,
// codec and square packages, which remain available directly for
// fine-grained control. The snapshot package archives stores as compressed,
// digest-checked images between runs.
package hugeint

import (
	"fmt"
	"math/big"

	"github.com/arloliu/hugeint/block"
	"github.com/arloliu/hugeint/codec"
	"github.com/arloliu/hugeint/square"
)

// Square returns n*n, computed through the block-store algorithm with
// in-memory stores of the given block width in bytes.
//
// Returns block.ErrInvalidBlockWidth for widths outside the supported range
// and codec.ErrNegative for negative n.
func Square(n *big.Int, width int) (*big.Int, error) {
	operand, err := block.NewMemoryStore(width)
	if err != nil {
		return nil, err
	}
	defer operand.Close()

	if err := codec.Encode(n, operand); err != nil {
		return nil, err
	}

	squarer, err := square.New()
	if err != nil {
		return nil, err
	}
	result, err := squarer.Square(operand)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	return codec.Decode(result)
}

// SquareFile squares the number stored in the file at inPath into a new file
// at outPath, both at the given block width in bytes. The optional stats
// collector, when non-nil, observes every block access of the operation.
//
// Both files are closed on every return path; on failure the output file may
// hold a partial result and must be treated as invalid.
func SquareFile(inPath, outPath string, width int, stats *block.Stats) error {
	if stats == nil {
		stats = block.NewStats()
	}

	operand, err := block.OpenFile(inPath, width, block.WithStats(stats))
	if err != nil {
		return err
	}
	defer operand.Close()

	result, err := block.CreateFile(outPath, width, block.WithStats(stats))
	if err != nil {
		return err
	}
	defer result.Close()

	if err := square.SquareInto(operand, result); err != nil {
		return fmt.Errorf("square %s: %w", inPath, err)
	}

	return result.Sync()
}
