// File: shm/segment.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared-memory segment carrying one channel's ring pair. The segment is
// the external collaborator that owns allocation and mapping; the rings
// themselves never allocate.
//
// Layout, 8-byte aligned throughout:
//
//	offset 0:        64-byte header (magic, version, slot count, offsets)
//	offset availOff: avail ring (ring.Size(slots) bytes)
//	offset usedOff:  used ring  (ring.Size(slots) bytes)

package shm

import (
	"fmt"
	"unsafe"

	"github.com/momentics/shmring/api"
	"github.com/momentics/shmring/channel"
	"github.com/momentics/shmring/ring"
)

const (
	// Magic identifies a shmring segment.
	Magic = "SHMRING\x00"

	// Version is the current layout version.
	Version = uint32(1)

	// HeaderSize is the fixed segment header size.
	HeaderSize = 64
)

// header is the on-memory segment header.
type header struct {
	magic     [8]byte
	version   uint32
	slots     uint32
	availOff  uint64
	usedOff   uint64
	totalSize uint64
	_         [24]byte
}

// Layout guard: header must stay exactly HeaderSize bytes.
var _ [HeaderSize]byte = [unsafe.Sizeof(header{})]byte{}

// Layout returns the total segment size and the ring offsets for the
// given slot count.
func Layout(slots uint32) (total, availOff, usedOff int) {
	ringBytes := ring.Size(slots)
	availOff = HeaderSize
	usedOff = availOff + ringBytes
	total = usedOff + ringBytes
	return total, availOff, usedOff
}

// Segment is a mapped shared-memory region holding a channel's rings.
type Segment struct {
	mem []byte
	fd  int
	hdr *header
}

// Slots returns the slot count both endpoints agreed on.
func (s *Segment) Slots() uint32 {
	return s.hdr.slots
}

// FD returns the file descriptor backing the mapping, for passing to the
// peer process.
func (s *Segment) FD() int {
	return s.fd
}

// Channel attaches a channel view over the segment's rings. Cursors are
// never zeroed here: the region starts zero-filled for the creator, and
// an attacher must not clobber live cursors.
func (s *Segment) Channel(notifier api.Notifier) (*channel.Channel, error) {
	availEnd := s.hdr.availOff + uint64(ring.Size(s.hdr.slots))
	usedEnd := s.hdr.usedOff + uint64(ring.Size(s.hdr.slots))
	return channel.Attach(
		s.mem[s.hdr.availOff:availEnd],
		s.mem[s.hdr.usedOff:usedEnd],
		s.hdr.slots,
		notifier,
		false,
	)
}

func (s *Segment) writeHeader(slots uint32) {
	total, availOff, usedOff := Layout(slots)
	copy(s.hdr.magic[:], Magic)
	s.hdr.version = Version
	s.hdr.slots = slots
	s.hdr.availOff = uint64(availOff)
	s.hdr.usedOff = uint64(usedOff)
	s.hdr.totalSize = uint64(total)
}

func (s *Segment) validate() error {
	if string(s.hdr.magic[:]) != Magic {
		return fmt.Errorf("shm: bad magic %q: %w", s.hdr.magic[:], api.ErrBadSegment)
	}
	if s.hdr.version != Version {
		return fmt.Errorf("shm: version %d, want %d: %w", s.hdr.version, Version, api.ErrBadSegment)
	}
	if s.hdr.slots < 2 {
		return fmt.Errorf("shm: %d slots: %w", s.hdr.slots, api.ErrBadSlotCount)
	}
	total, availOff, usedOff := Layout(s.hdr.slots)
	if s.hdr.availOff != uint64(availOff) || s.hdr.usedOff != uint64(usedOff) ||
		s.hdr.totalSize != uint64(total) {
		return fmt.Errorf("shm: offsets disagree with slot count %d: %w", s.hdr.slots, api.ErrBadSegment)
	}
	if uint64(len(s.mem)) < s.hdr.totalSize {
		return fmt.Errorf("shm: mapped %d of %d bytes: %w", len(s.mem), s.hdr.totalSize, api.ErrShortMemory)
	}
	return nil
}
