// File: api/ring.go
// Author: momentics <momentics@gmail.com>
//
// SPSC descriptor ring contract shared across packages.

package api

// DescRing is a single-producer/single-consumer descriptor queue.
// Enqueue and Dequeue never block; backpressure surfaces as ErrRingFull
// and ErrRingEmpty result values.
type DescRing interface {
	// Enqueue copies d into the ring; ErrRingFull if at capacity.
	Enqueue(d Descriptor) error
	// Dequeue removes the oldest descriptor; ErrRingEmpty if none.
	Dequeue() (Descriptor, error)
	// Len returns the current number of outstanding descriptors.
	Len() int
	// Cap returns usable capacity (slot count minus the sacrificial slot).
	Cap() int
}

// RingState is a point-in-time snapshot of ring cursors for diagnostics.
// Cursors are free-running and wrap at the ring's cursor modulus (a
// multiple of the slot count), never reset mid-use.
type RingState struct {
	Slots uint32 // declared slot count
	Widx  uint32 // producer cursor
	Ridx  uint32 // consumer cursor
	Used  uint32 // outstanding descriptors (Widx - Ridx mod the cursor modulus)
}
