// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// backlog_test.go — spillover FIFO over a full ring.
package channel

import (
	"testing"

	"github.com/momentics/shmring/api"
)

func TestBacklog_SpillAndFlush(t *testing.T) {
	endA, endB, err := NewPair(4) // usable capacity 3
	if err != nil {
		t.Fatalf("NewPair: %v", err)
	}
	bl := NewAvailBacklog(endA)

	for i := 0; i < 3; i++ {
		if !bl.Offer(api.Descriptor{Cookie: uintptr(i)}) {
			t.Fatalf("Offer %d should reach the ring", i)
		}
	}
	// Ring full: the next two park in the backlog.
	for i := 3; i < 5; i++ {
		if bl.Offer(api.Descriptor{Cookie: uintptr(i)}) {
			t.Fatalf("Offer %d should spill", i)
		}
	}
	if bl.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", bl.Pending())
	}

	// Peer drains one slot; exactly one parked descriptor moves.
	if _, err := endB.DequeueAvail(); err != nil {
		t.Fatalf("DequeueAvail: %v", err)
	}
	if moved := bl.Flush(); moved != 1 {
		t.Fatalf("Flush moved %d, want 1", moved)
	}
	if bl.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", bl.Pending())
	}

	// Drain everything; FIFO order must hold across the spill boundary.
	want := uintptr(1)
	for {
		bl.Flush()
		d, err := endB.DequeueAvail()
		if err != nil {
			break
		}
		if d.Cookie != want {
			t.Fatalf("Got cookie %d, want %d", d.Cookie, want)
		}
		want++
	}
	if want != 5 {
		t.Fatalf("Drained up to %d, want 5", want)
	}
	if bl.Pending() != 0 {
		t.Errorf("Pending = %d after full drain", bl.Pending())
	}
}

func TestBacklog_UsedDirection(t *testing.T) {
	endA, endB, err := NewPair(2) // usable capacity 1
	if err != nil {
		t.Fatalf("NewPair: %v", err)
	}
	bl := NewUsedBacklog(endB)
	if !bl.Offer(api.Descriptor{Cookie: 1}) {
		t.Fatal("First offer should reach the ring")
	}
	if bl.Offer(api.Descriptor{Cookie: 2}) {
		t.Fatal("Second offer should spill")
	}
	if _, err := endA.DequeueUsed(); err != nil {
		t.Fatalf("DequeueUsed: %v", err)
	}
	if moved := bl.Flush(); moved != 1 {
		t.Fatalf("Flush moved %d, want 1", moved)
	}
	d, err := endA.DequeueUsed()
	if err != nil || d.Cookie != 2 {
		t.Fatalf("Got %+v, %v", d, err)
	}
}
