// File: api/descriptor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Buffer descriptor exchanged through shared rings. Payload bytes never
// travel through a ring; descriptors reference buffers in a pre-shared
// memory pool.

package api

// Descriptor references a buffer that lives outside the ring. It is copied
// by value into and out of ring slots; the ring holds no ownership over the
// memory it points at.
type Descriptor struct {
	// Addr is a pre-encoded reference into the shared buffer pool.
	// Encoding and decoding (DMA/physical translation) are external.
	Addr uintptr

	// Len is the number of valid bytes in the referenced buffer.
	Len uint32

	// Cookie round-trips unchanged so the original enqueuer can recover
	// per-buffer metadata on dequeue. The channel never interprets it.
	Cookie uintptr
}
