// File: ring/layout.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed byte layout of a ring in shared memory. Both endpoints compile
// against this definition; slot count is agreed out of band.
//
//	offset 0:              n slots of 24 bytes each
//	offset n*24:           write_idx (uint32, little-endian on LE targets)
//	offset n*24 + 4:       read_idx  (uint32)
//
// Base address must be 8-byte aligned so the uint64 slot fields and the
// uint32 cursors are naturally aligned for atomic access.

package ring

import "unsafe"

// SlotSize is the fixed on-memory size of one descriptor slot.
const SlotSize = 24

// indexBytes covers the two uint32 cursors trailing the slot array.
const indexBytes = 8

// slot is the on-memory form of a descriptor. Address and cookie are
// widened to uint64 so the layout is identical on 32- and 64-bit targets.
type slot struct {
	addr   uint64
	length uint32
	_      uint32
	cookie uint64
}

// Layout guard: slot must stay exactly SlotSize bytes.
var _ [SlotSize]byte = [unsafe.Sizeof(slot{})]byte{}

// Size returns the number of bytes a ring with the given slot count
// occupies in shared memory.
func Size(slots uint32) int {
	return int(slots)*SlotSize + indexBytes
}
