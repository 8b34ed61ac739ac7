// Package endian provides byte order utilities for block and snapshot encoding.
//
// This package combines the ByteOrder and AppendByteOrder interfaces from
// Go's standard encoding/binary package into a single EndianEngine interface,
// so block stores and the snapshot codec can both read fixed-width fields and
// append to growing buffers through one value.
//
// The block representation is little-endian by contract, so most callers use
// GetLittleEndianEngine():
//
//	import "github.com/arloliu/hugeint/endian"
//
//	engine := endian.GetLittleEndianEngine()
//	value := engine.Uint64(buf)
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for byte order operations.
//
// The interface is satisfied by binary.LittleEndian and binary.BigEndian, so
// values of this type interoperate with any code built on the standard
// library interfaces.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
//
// This is the byte order of the persisted block representation and of all
// snapshot header fields.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
//
// Provided for interoperability; nothing in this module persists big-endian
// data.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}
