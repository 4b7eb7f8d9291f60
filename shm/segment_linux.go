//go:build linux
// +build linux

// File: shm/segment_linux.go
// Author: momentics <momentics@gmail.com>
//
// memfd-backed segments. The creator hands the fd to the attacher over
// fork/exec inheritance or SCM_RIGHTS; the attacher maps it with OpenFD.

package shm

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/momentics/shmring/api"
)

// Create allocates and maps a fresh segment. The region starts
// zero-filled, so the rings come up with both cursors at zero; Create is
// the designated-initializer role of the handshake.
func Create(name string, slots uint32) (*Segment, error) {
	if slots < 2 {
		return nil, fmt.Errorf("shm: %d slots: %w", slots, api.ErrBadSlotCount)
	}
	total, _, _ := Layout(slots)
	fd, err := unix.MemfdCreate(name, unix.MFD_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("memfd_create %q: %w", name, err)
	}
	if err := unix.Ftruncate(fd, int64(total)); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("ftruncate to %d: %w", total, err)
	}
	mem, err := unix.Mmap(fd, 0, total, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("mmap segment: %w", err)
	}
	s := &Segment{
		mem: mem,
		fd:  fd,
		hdr: (*header)(unsafe.Pointer(&mem[0])),
	}
	s.writeHeader(slots)
	return s, nil
}

// OpenFD maps an existing segment received from the creator and validates
// its header. This is the attacher role; ring cursors are left untouched.
func OpenFD(fd int) (*Segment, error) {
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return nil, fmt.Errorf("fstat segment: %w", err)
	}
	if st.Size < HeaderSize {
		return nil, fmt.Errorf("shm: segment is %d bytes: %w", st.Size, api.ErrShortMemory)
	}
	mem, err := unix.Mmap(fd, 0, int(st.Size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap segment: %w", err)
	}
	s := &Segment{
		mem: mem,
		fd:  fd,
		hdr: (*header)(unsafe.Pointer(&mem[0])),
	}
	if err := s.validate(); err != nil {
		unix.Munmap(mem)
		return nil, err
	}
	return s, nil
}

// Close unmaps the segment and closes its fd. Rings attached through
// Channel must not be used afterwards.
func (s *Segment) Close() error {
	if s.mem == nil {
		return nil
	}
	err := unix.Munmap(s.mem)
	s.mem = nil
	if cerr := unix.Close(s.fd); err == nil {
		err = cerr
	}
	return err
}
