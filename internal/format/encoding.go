package format

import "encoding/binary"

// Binary encoding utilities for little-endian integers.
//
// Implementation: Uses encoding/binary.LittleEndian
//
// Performance Note: After benchmarking, we determined that Go's standard
// library implementation is already highly optimized by the compiler.
// Unsafe pointer implementations provided no measurable benefit and added
// complexity. Modern Go compilers inline and optimize binary.LittleEndian
// calls extremely well.

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int64, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off int64) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}
