// File: channel/poll.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Poll-then-wait consumer loop layered above the non-blocking core. The
// core itself never blocks; any waiting lives here, either against a wake
// channel fed by a notify transport or through adaptive backoff.

package channel

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/momentics/shmring/api"
)

// Poller repeatedly drains one dequeue direction of a channel.
type Poller struct {
	dequeue   func() (api.Descriptor, error)
	wake      <-chan struct{}
	stopCh    chan struct{}
	stopped   int32
	backoffNs int64
}

// NewAvailPoller consumes the avail direction. wake may be nil, in which
// case the poller spins with adaptive backoff instead of sleeping on a
// notify transport.
func NewAvailPoller(c *Channel, wake <-chan struct{}) *Poller {
	return newPoller(c.DequeueAvail, wake)
}

// NewUsedPoller consumes the used direction.
func NewUsedPoller(c *Channel, wake <-chan struct{}) *Poller {
	return newPoller(c.DequeueUsed, wake)
}

func newPoller(dequeue func() (api.Descriptor, error), wake <-chan struct{}) *Poller {
	return &Poller{
		dequeue:   dequeue,
		wake:      wake,
		stopCh:    make(chan struct{}),
		backoffNs: 1,
	}
}

// Next blocks until a descriptor is available or the poller is stopped.
// The notify signal is advisory only, so ring state is re-checked after
// every wake.
func (p *Poller) Next() (api.Descriptor, bool) {
	for {
		d, err := p.dequeue()
		if err == nil {
			atomic.StoreInt64(&p.backoffNs, 1)
			return d, true
		}
		select {
		case <-p.stopCh:
			return api.Descriptor{}, false
		default:
		}
		p.wait()
	}
}

// Stop unblocks Next; safe to call more than once.
func (p *Poller) Stop() {
	if atomic.CompareAndSwapInt32(&p.stopped, 0, 1) {
		close(p.stopCh)
	}
}

func (p *Poller) wait() {
	if p.wake != nil {
		select {
		case <-p.wake:
		case <-p.stopCh:
		}
		return
	}
	backoff := atomic.LoadInt64(&p.backoffNs)
	if backoff < 1000 {
		time.Sleep(time.Microsecond)
	} else {
		runtime.Gosched()
	}
	next := backoff * 2
	if next > 1_000_000 {
		next = 1_000_000
	}
	atomic.StoreInt64(&p.backoffNs, next)
}
