// Package block implements random-access storage of fixed-width unsigned
// blocks over a byte-addressable medium, with per-run I/O accounting.
//
// A store holds an ordered sequence of blocks indexed from 0 (least
// significant) upward. Each block is a little-endian unsigned integer of a
// configurable width between 1 and 7 bytes, chosen at construction. The
// stored length is always derived from the medium size; there is no separate
// length field, and a medium whose size is not a whole multiple of the block
// width truncates to the last complete block.
//
// Two media are provided: MemoryStore over a byte slice, and FileStore over
// an os.File using ReadAt/WriteAt. Both share the same access semantics:
//
//   - Reading at or beyond the stored length yields 0 (or the zero-extended
//     bytes of a partial trailing block) without extending the medium, and is
//     still counted as an access.
//   - Writing past the stored length extends the medium; any intervening gap
//     is zero-filled, so unwritten blocks always read back as 0.
//   - Every access that reaches the medium increments the store's Stats
//     counters. Validation failures (negative index, closed store) are
//     rejected before the medium is touched and are not counted.
//
// Stats objects are explicit and shareable: pass one to several stores with
// WithStats to measure an operation spanning an operand and a result store,
// and Reset it between measured runs.
package block
