// Package endian provides the little-endian helpers used by the YI block codec.
//
// All multi-byte integers in a YI container are little-endian and signed. Most
// fields are 4 bytes wide, but LUT offsets use a configurable width of 1 to 4
// bytes, so this package adds variable-width signed helpers on top of the
// standard ByteOrder and AppendByteOrder interfaces.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use.
package endian

import (
	"encoding/binary"
	"fmt"
)

// MaxIntWidth is the widest signed integer the variable-width helpers handle.
const MaxIntWidth = 4

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used by the YI format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// AppendInt32 appends v as a 4-byte little-endian signed integer.
func AppendInt32(dst []byte, v int32) []byte {
	return binary.LittleEndian.AppendUint32(dst, uint32(v)) //nolint: gosec
}

// Int32 reads a 4-byte little-endian signed integer from b.
func Int32(b []byte) int32 {
	return int32(binary.LittleEndian.Uint32(b)) //nolint: gosec
}

// FitsInt reports whether v can be stored as a signed integer of width bytes.
func FitsInt(v int64, width int) bool {
	if width < 1 || width > MaxIntWidth {
		return false
	}
	bits := uint(width*8 - 1)
	lo, hi := -(int64(1) << bits), int64(1)<<bits-1

	return v >= lo && v <= hi
}

// AppendInt appends v as a little-endian two's complement integer of width bytes.
func AppendInt(dst []byte, v int64, width int) ([]byte, error) {
	if !FitsInt(v, width) {
		return dst, fmt.Errorf("value %d does not fit in %d signed bytes", v, width)
	}
	for i := 0; i < width; i++ {
		dst = append(dst, byte(v>>(8*i))) //nolint: gosec
	}

	return dst, nil
}

// Int reads a little-endian two's complement integer of len(b) bytes, sign-extending
// the most significant byte.
func Int(b []byte) int64 {
	if len(b) == 0 {
		return 0
	}
	var u uint64
	for i := len(b) - 1; i >= 0; i-- {
		u = u<<8 | uint64(b[i])
	}
	shift := uint(64 - 8*len(b))

	return int64(u<<shift) >> shift //nolint: gosec
}
