//go:build !linux
// +build !linux

// File: shm/segment_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for platforms without memfd. Heap-backed pairs via
// channel.NewPair remain available everywhere.

package shm

import "github.com/momentics/shmring/api"

// Create reports that shared segments are unsupported on this platform.
func Create(name string, slots uint32) (*Segment, error) {
	return nil, api.ErrNotSupported
}

// OpenFD reports that shared segments are unsupported on this platform.
func OpenFD(fd int) (*Segment, error) {
	return nil, api.ErrNotSupported
}

// Close is a no-op on the stub.
func (s *Segment) Close() error { return nil }
