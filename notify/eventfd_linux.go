//go:build linux
// +build linux

// File: notify/eventfd_linux.go
// Author: momentics <momentics@gmail.com>
//
// Eventfd-backed doorbell for cross-process endpoints. The fd can be
// passed to the peer over an SCM_RIGHTS message or inherited, and plugged
// into an epoll loop via FD.

package notify

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/momentics/shmring/api"
)

var _ api.Notifier = (*Eventfd)(nil)

// Eventfd wraps a non-blocking eventfd.
type Eventfd struct {
	fd int
}

// NewEventfd creates the doorbell.
func NewEventfd() (*Eventfd, error) {
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		return nil, fmt.Errorf("eventfd: %w", err)
	}
	return &Eventfd{fd: fd}, nil
}

// FromFD wraps an eventfd received from the peer. The fd must have been
// created non-blocking.
func FromFD(fd int) *Eventfd {
	return &Eventfd{fd: fd}
}

// Signal rings the doorbell. EAGAIN means the counter is saturated and a
// wake is already pending, which satisfies the advisory contract.
func (e *Eventfd) Signal() {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 1)
	for {
		_, err := unix.Write(e.fd, buf[:])
		if err != unix.EINTR {
			return
		}
	}
}

// Wait blocks until the doorbell rings, then drains it. Callers must
// re-check ring state afterwards; the wake may predate the cursor update
// becoming visible.
func (e *Eventfd) Wait() error {
	fds := []unix.PollFd{{Fd: int32(e.fd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return fmt.Errorf("poll eventfd: %w", err)
		}
		if n > 0 {
			return e.Drain()
		}
	}
}

// Drain consumes pending wakes without blocking.
func (e *Eventfd) Drain() error {
	var buf [8]byte
	for {
		_, err := unix.Read(e.fd, buf[:])
		switch err {
		case nil, unix.EINTR:
		case unix.EAGAIN:
			return nil
		default:
			return fmt.Errorf("read eventfd: %w", err)
		}
	}
}

// FD exposes the descriptor for reactor registration or fd passing.
func (e *Eventfd) FD() int {
	return e.fd
}

// Close releases the descriptor.
func (e *Eventfd) Close() error {
	return unix.Close(e.fd)
}
