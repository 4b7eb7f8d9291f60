// File: ring/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SPSC circular descriptor queue over raw memory. Lock-free by role
// separation: write_idx has exactly one writer (the producer), read_idx
// exactly one writer (the consumer). Cursors are free-running uint32
// values reduced modulo the declared slot count for slot selection; the
// count need not be a power of two. So that slot selection stays
// continuous when a cursor overflows, cursors wrap at the largest
// multiple of the slot count representable in 32 bits rather than at
// 2^32 (the two coincide whenever the count divides 2^32). One slot is
// sacrificed to tell full from empty, so usable capacity is slots-1.

package ring

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/momentics/shmring/api"
)

// Ensure compile-time interface compliance.
var _ api.DescRing = (*Ring)(nil)

// Ring is a local view over one ring's shared memory. Two endpoints hold
// separate Ring values over the same region; the view itself carries no
// shared mutable state beyond the mapped cursors and slots.
type Ring struct {
	slots  []slot
	widx   *uint32
	ridx   *uint32
	n      uint32
	wrapAt uint32 // cursor wrap point; 0 means the natural uint32 wrap
	mem    []byte // backing region, retained to keep heap rings reachable
}

// Attach builds a ring view over mem, which must hold at least Size(slots)
// bytes at an 8-byte aligned base. With zero set, both cursors are reset:
// that is the initializing role, and must happen exactly once per region,
// never while the peer is attached. Attachers pass zero=false to avoid
// clobbering live cursors.
func Attach(mem []byte, slots uint32, zero bool) (*Ring, error) {
	if slots < 2 {
		return nil, fmt.Errorf("ring: %d slots: %w", slots, api.ErrBadSlotCount)
	}
	if len(mem) < Size(slots) {
		return nil, fmt.Errorf("ring: %d bytes for %d slots: %w", len(mem), slots, api.ErrShortMemory)
	}
	base := unsafe.Pointer(&mem[0])
	if uintptr(base)%8 != 0 {
		return nil, fmt.Errorf("ring: base %#x: %w", uintptr(base), api.ErrMisaligned)
	}
	idxBase := unsafe.Add(base, uintptr(slots)*SlotSize)
	r := &Ring{
		slots:  unsafe.Slice((*slot)(base), slots),
		widx:   (*uint32)(idxBase),
		ridx:   (*uint32)(unsafe.Add(idxBase, 4)),
		n:      slots,
		wrapAt: uint32((uint64(1) << 32 / uint64(slots)) * uint64(slots)),
		mem:    mem[:Size(slots)],
	}
	if zero {
		r.Reset()
	}
	return r, nil
}

// New allocates a heap-backed ring for in-process use. The backing block
// is allocated as uint64 words to guarantee the 8-byte base alignment
// Attach requires.
func New(slots uint32) (*Ring, error) {
	if slots < 2 {
		return nil, fmt.Errorf("ring: %d slots: %w", slots, api.ErrBadSlotCount)
	}
	words := (Size(slots) + 7) / 8
	backing := make([]uint64, words)
	mem := unsafe.Slice((*byte)(unsafe.Pointer(&backing[0])), words*8)
	return Attach(mem, slots, true)
}

// Reset zeroes both cursors. Initializing role only; undefined while the
// peer is actively using the ring.
func (r *Ring) Reset() {
	atomic.StoreUint32(r.widx, 0)
	atomic.StoreUint32(r.ridx, 0)
}

// advance returns the cursor following c, wrapping at wrapAt. The wrap
// point is a multiple of the slot count, so c mod slots is continuous
// across it.
func (r *Ring) advance(c uint32) uint32 {
	c++
	if c == r.wrapAt {
		c = 0
	}
	return c
}

// distance returns the number of cursor steps from rd to w, computed
// modulo the cursor wrap point.
func (r *Ring) distance(w, rd uint32) uint32 {
	d := w - rd
	if r.wrapAt != 0 && w < rd {
		d = w - rd + r.wrapAt
	}
	return d
}

// Empty reports whether the ring holds no descriptors:
// (write_idx - read_idx) mod slots == 0.
func (r *Ring) Empty() bool {
	w := atomic.LoadUint32(r.widx)
	rd := atomic.LoadUint32(r.ridx)
	return r.distance(w, rd)%r.n == 0
}

// Full reports whether one more enqueue would collide with read_idx,
// i.e. slots-1 descriptors are already outstanding.
func (r *Ring) Full() bool {
	w := atomic.LoadUint32(r.widx)
	rd := atomic.LoadUint32(r.ridx)
	return (r.distance(w, rd)+1)%r.n == 0
}

// Enqueue copies d into the ring. Producer side only. Returns
// api.ErrRingFull under backpressure; the caller decides whether to
// retry, spill, or wait for a notify.
func (r *Ring) Enqueue(d api.Descriptor) error {
	w := atomic.LoadUint32(r.widx)
	rd := atomic.LoadUint32(r.ridx)
	if (r.distance(w, rd)+1)%r.n == 0 {
		return api.ErrRingFull
	}
	s := &r.slots[w%r.n]
	s.addr = uint64(d.Addr)
	s.length = d.Len
	s.cookie = uint64(d.Cookie)
	// Release store: the slot must be fully written before the consumer
	// can observe the advanced cursor.
	atomic.StoreUint32(r.widx, r.advance(w))
	return nil
}

// Dequeue copies the oldest descriptor out of the ring. Consumer side
// only. Returns api.ErrRingEmpty when nothing is outstanding; cursors are
// left untouched in that case.
func (r *Ring) Dequeue() (api.Descriptor, error) {
	// Acquire load: observing w guarantees the slot contents for every
	// index up to w are visible.
	w := atomic.LoadUint32(r.widx)
	rd := atomic.LoadUint32(r.ridx)
	if r.distance(w, rd)%r.n == 0 {
		return api.Descriptor{}, api.ErrRingEmpty
	}
	s := &r.slots[rd%r.n]
	d := api.Descriptor{
		Addr:   uintptr(s.addr),
		Len:    s.length,
		Cookie: uintptr(s.cookie),
	}
	// Release store: the copy above must complete before the producer can
	// observe the freed slot and overwrite it on its next wrap.
	atomic.StoreUint32(r.ridx, r.advance(rd))
	return d, nil
}

// Len returns the number of outstanding descriptors.
func (r *Ring) Len() int {
	w := atomic.LoadUint32(r.widx)
	rd := atomic.LoadUint32(r.ridx)
	return int(r.distance(w, rd))
}

// Cap returns usable capacity: the declared slot count minus the
// sacrificial slot.
func (r *Ring) Cap() int {
	return int(r.n - 1)
}

// Slots returns the declared slot count.
func (r *Ring) Slots() uint32 {
	return r.n
}

// State returns a cursor snapshot for diagnostics.
func (r *Ring) State() api.RingState {
	w := atomic.LoadUint32(r.widx)
	rd := atomic.LoadUint32(r.ridx)
	return api.RingState{Slots: r.n, Widx: w, Ridx: rd, Used: r.distance(w, rd)}
}
