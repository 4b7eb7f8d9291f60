//go:build !linux
// +build !linux

// File: notify/eventfd_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub for platforms without eventfd. Construction reports
// api.ErrNotSupported.

package notify

import "github.com/momentics/shmring/api"

// Eventfd is unavailable on this platform.
type Eventfd struct{}

// NewEventfd reports that eventfd is unsupported here.
func NewEventfd() (*Eventfd, error) {
	return nil, api.ErrNotSupported
}

// FromFD reports nothing usable on this platform.
func FromFD(fd int) *Eventfd { return &Eventfd{} }

func (e *Eventfd) Signal()      {}
func (e *Eventfd) Wait() error  { return api.ErrNotSupported }
func (e *Eventfd) Drain() error { return api.ErrNotSupported }
func (e *Eventfd) FD() int      { return -1 }
func (e *Eventfd) Close() error { return nil }
