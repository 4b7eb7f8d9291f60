// File: channel/channel.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Channel is a local view over a ring pair; both endpoints construct
// their own view against the same underlying memory with inverted roles.
// The offering side enqueues into avail and dequeues from used; the
// consuming side dequeues from avail and enqueues into used.

package channel

import (
	"fmt"
	"sync/atomic"

	"github.com/momentics/shmring/api"
	"github.com/momentics/shmring/ring"
)

// notifierBox keeps the stored concrete type stable for atomic.Value.
type notifierBox struct {
	n api.Notifier
}

// Channel wires an avail/used ring pair to a notify capability. The
// notifier reference is per-endpoint local state; it is replaceable at
// runtime and has no lifecycle tied to ring contents.
type Channel struct {
	avail    *ring.Ring
	used     *ring.Ring
	notifier atomic.Value // notifierBox
}

// New builds a channel view over existing rings. notifier may be nil and
// registered later.
func New(avail, used *ring.Ring, notifier api.Notifier) *Channel {
	c := &Channel{avail: avail, used: used}
	c.notifier.Store(notifierBox{notifier})
	return c
}

// Attach wires a channel over raw ring memory; this is the shared-region
// initialization entry point. zero selects the role: the designated
// initializer zeroes both rings' cursors exactly once, attachers must
// pass zero=false so live cursors are not clobbered. Re-zeroing a ring
// the peer is actively using is undefined.
func Attach(availMem, usedMem []byte, slots uint32, notifier api.Notifier, zero bool) (*Channel, error) {
	avail, err := ring.Attach(availMem, slots, zero)
	if err != nil {
		return nil, fmt.Errorf("avail ring: %w", err)
	}
	used, err := ring.Attach(usedMem, slots, zero)
	if err != nil {
		return nil, fmt.Errorf("used ring: %w", err)
	}
	return New(avail, used, notifier), nil
}

// NewPair allocates a heap-backed ring pair and returns the two endpoint
// views over it, for in-process use and tests. Notifiers start empty;
// each endpoint registers its own.
func NewPair(slots uint32) (*Channel, *Channel, error) {
	avail, err := ring.New(slots)
	if err != nil {
		return nil, nil, fmt.Errorf("avail ring: %w", err)
	}
	used, err := ring.New(slots)
	if err != nil {
		return nil, nil, fmt.Errorf("used ring: %w", err)
	}
	return New(avail, used, nil), New(avail, used, nil), nil
}

// EnqueueAvail offers a buffer to the peer. After success the caller must
// not touch the referenced memory until the descriptor comes back through
// the used ring.
func (c *Channel) EnqueueAvail(d api.Descriptor) error {
	return c.avail.Enqueue(d)
}

// DequeueAvail takes ownership of an offered buffer.
func (c *Channel) DequeueAvail() (api.Descriptor, error) {
	return c.avail.Dequeue()
}

// EnqueueUsed returns a consumed buffer to the offering side. Address and
// cookie are preserved by convention; length may be updated to the number
// of bytes actually produced.
func (c *Channel) EnqueueUsed(d api.Descriptor) error {
	return c.used.Enqueue(d)
}

// DequeueUsed reclaims a buffer the peer has finished with.
func (c *Channel) DequeueUsed() (api.Descriptor, error) {
	return c.used.Dequeue()
}

// Notify fires the registered notify capability unconditionally,
// regardless of ring fill state. It carries no payload; receivers must
// re-check ring state themselves. No-op when nothing is registered.
func (c *Channel) Notify() {
	if b := c.notifier.Load().(notifierBox); b.n != nil {
		b.n.Signal()
	}
}

// RegisterNotify replaces the notify capability for all subsequent
// Notify calls. Calls already in flight are unaffected.
func (c *Channel) RegisterNotify(n api.Notifier) {
	c.notifier.Store(notifierBox{n})
}

// Avail exposes the avail ring view for state inspection.
func (c *Channel) Avail() *ring.Ring { return c.avail }

// Used exposes the used ring view for state inspection.
func (c *Channel) Used() *ring.Ring { return c.used }
