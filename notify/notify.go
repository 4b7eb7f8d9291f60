// File: notify/notify.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package notify

import (
	"sync/atomic"

	"github.com/momentics/shmring/api"
)

// Ensure compile-time interface compliance.
var (
	_ api.Notifier = (*Chan)(nil)
	_ api.Notifier = (*Coalescer)(nil)
)

// Chan is an in-process wake hint over a capacity-1 channel. Signal never
// blocks; a hint already pending absorbs further signals, which is fine
// because the hint is advisory and receivers re-check ring state.
type Chan struct {
	ch chan struct{}
}

// NewChan creates an in-process notifier.
func NewChan() *Chan {
	return &Chan{ch: make(chan struct{}, 1)}
}

// Signal posts the wake hint without blocking.
func (n *Chan) Signal() {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}

// C returns the wake channel for select loops and pollers.
func (n *Chan) C() <-chan struct{} {
	return n.ch
}

// Coalescer collapses signal bursts: only the first Signal after a Rearm
// reaches the wrapped notifier. A consumer rearms after draining, so a
// batch of enqueues costs one doorbell instead of one per descriptor.
type Coalescer struct {
	next    api.Notifier
	pending atomic.Bool
}

// NewCoalescer wraps next with burst coalescing.
func NewCoalescer(next api.Notifier) *Coalescer {
	return &Coalescer{next: next}
}

// Signal forwards to the wrapped notifier unless a signal is already
// pending.
func (c *Coalescer) Signal() {
	if c.pending.CompareAndSwap(false, true) {
		c.next.Signal()
	}
}

// Rearm clears the pending state and reports whether a signal had been
// absorbed since the previous Rearm.
func (c *Coalescer) Rearm() bool {
	return c.pending.Swap(false)
}
