// File: channel/backlog.go
// Author: momentics <momentics@gmail.com>
//
// Caller-side spillover for the non-blocking core: descriptors that hit a
// full ring are parked in an unbounded FIFO and flushed back once the
// peer drains slots. The ring's single-producer discipline carries over —
// a Backlog belongs to the one producer of its direction and is not safe
// for concurrent use.

package channel

import (
	"github.com/eapache/queue"

	"github.com/momentics/shmring/api"
)

// Backlog wraps one enqueue direction of a channel.
type Backlog struct {
	enqueue func(api.Descriptor) error
	pending *queue.Queue
}

// NewAvailBacklog spills over the avail direction (offering side).
func NewAvailBacklog(c *Channel) *Backlog {
	return &Backlog{enqueue: c.EnqueueAvail, pending: queue.New()}
}

// NewUsedBacklog spills over the used direction (returning side).
func NewUsedBacklog(c *Channel) *Backlog {
	return &Backlog{enqueue: c.EnqueueUsed, pending: queue.New()}
}

// Offer enqueues d, preserving FIFO order across earlier spilled
// descriptors. Returns true when d reached the ring immediately, false
// when it was parked.
func (b *Backlog) Offer(d api.Descriptor) bool {
	b.Flush()
	if b.pending.Length() == 0 && b.enqueue(d) == nil {
		return true
	}
	b.pending.Add(d)
	return false
}

// Flush moves parked descriptors into the ring until it fills up or the
// backlog drains. Returns the number moved.
func (b *Backlog) Flush() int {
	moved := 0
	for b.pending.Length() > 0 {
		d := b.pending.Peek().(api.Descriptor)
		if b.enqueue(d) != nil {
			break
		}
		b.pending.Remove()
		moved++
	}
	return moved
}

// Pending returns the number of parked descriptors.
func (b *Backlog) Pending() int {
	return b.pending.Length()
}
