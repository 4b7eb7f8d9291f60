// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// channel_test.go — duplex offer/return protocol tests.
package channel

import (
	"errors"
	"runtime"
	"sync"
	"testing"
	"unsafe"

	"github.com/momentics/shmring/api"
	"github.com/momentics/shmring/fake"
	"github.com/momentics/shmring/ring"
)

// The classic interleaving over a 4-slot pair: A offers two buffers, B
// consumes and returns them one at a time, A reclaims both in order.
func TestChannel_OfferReturnCycle(t *testing.T) {
	endA, endB, err := NewPair(4)
	if err != nil {
		t.Fatalf("NewPair: %v", err)
	}
	bufA := api.Descriptor{Addr: 0xa000, Len: 128, Cookie: 1}
	bufB := api.Descriptor{Addr: 0xb000, Len: 128, Cookie: 2}

	if err := endA.EnqueueAvail(bufA); err != nil {
		t.Fatalf("EnqueueAvail A: %v", err)
	}
	if err := endA.EnqueueAvail(bufB); err != nil {
		t.Fatalf("EnqueueAvail B: %v", err)
	}

	got, err := endB.DequeueAvail()
	if err != nil || got != bufA {
		t.Fatalf("DequeueAvail: got %+v, %v", got, err)
	}
	got.Len = 64 // consumer reports bytes produced
	if err := endB.EnqueueUsed(got); err != nil {
		t.Fatalf("EnqueueUsed A: %v", err)
	}

	got, err = endB.DequeueAvail()
	if err != nil || got != bufB {
		t.Fatalf("DequeueAvail: got %+v, %v", got, err)
	}
	if err := endB.EnqueueUsed(got); err != nil {
		t.Fatalf("EnqueueUsed B: %v", err)
	}

	back, err := endA.DequeueUsed()
	if err != nil {
		t.Fatalf("DequeueUsed: %v", err)
	}
	if back.Addr != bufA.Addr || back.Cookie != bufA.Cookie || back.Len != 64 {
		t.Errorf("First return: got %+v", back)
	}
	back, err = endA.DequeueUsed()
	if err != nil || back != bufB {
		t.Fatalf("Second return: got %+v, %v", back, err)
	}

	if !endA.Avail().Empty() || !endA.Used().Empty() {
		t.Error("Both rings should be empty after the cycle")
	}
	if st := endA.Avail().State(); st.Widx != 2 || st.Ridx != 2 {
		t.Errorf("Avail cursors: %+v", st)
	}
	if st := endA.Used().State(); st.Widx != 2 || st.Ridx != 2 {
		t.Errorf("Used cursors: %+v", st)
	}
}

func TestChannel_NotifyInvokesRegistered(t *testing.T) {
	endA, _, err := NewPair(4)
	if err != nil {
		t.Fatalf("NewPair: %v", err)
	}
	// No notifier registered: must be a silent no-op.
	endA.Notify()

	n := fake.NewNotifier()
	endA.RegisterNotify(n)
	for i := 0; i < 5; i++ {
		endA.Notify() // fires regardless of ring fill state
	}
	if n.Count() != 5 {
		t.Errorf("Expected 5 signals, got %d", n.Count())
	}
}

func TestChannel_RegisterNotifyReplaces(t *testing.T) {
	endA, _, err := NewPair(4)
	if err != nil {
		t.Fatalf("NewPair: %v", err)
	}
	first := fake.NewNotifier()
	second := fake.NewNotifier()
	endA.RegisterNotify(first)
	endA.Notify()
	endA.RegisterNotify(second)
	endA.Notify()
	endA.Notify()
	if first.Count() != 1 || second.Count() != 2 {
		t.Errorf("Signal counts: first=%d second=%d", first.Count(), second.Count())
	}

	var calls int
	endA.RegisterNotify(api.NotifyFunc(func() { calls++ }))
	endA.Notify()
	if calls != 1 {
		t.Errorf("NotifyFunc calls = %d", calls)
	}
}

// Attach with zero=true then zero=false: the attacher must see the
// initializer's region without resetting it.
func TestChannel_AttachRoles(t *testing.T) {
	availMem := alignedRegion(t, 4)
	usedMem := alignedRegion(t, 4)

	initiator, err := Attach(availMem, usedMem, 4, nil, true)
	if err != nil {
		t.Fatalf("Attach initiator: %v", err)
	}
	d := api.Descriptor{Addr: 0xfeed, Len: 3, Cookie: 42}
	if err := initiator.EnqueueAvail(d); err != nil {
		t.Fatalf("EnqueueAvail: %v", err)
	}

	attacher, err := Attach(availMem, usedMem, 4, nil, false)
	if err != nil {
		t.Fatalf("Attach attacher: %v", err)
	}
	got, err := attacher.DequeueAvail()
	if err != nil || got != d {
		t.Fatalf("DequeueAvail through attacher: got %+v, %v", got, err)
	}
	if err := attacher.EnqueueUsed(got); err != nil {
		t.Fatalf("EnqueueUsed: %v", err)
	}
	if back, err := initiator.DequeueUsed(); err != nil || back != d {
		t.Fatalf("DequeueUsed through initiator: got %+v, %v", back, err)
	}
}

func TestChannel_BackpressureErrors(t *testing.T) {
	endA, endB, err := NewPair(2) // usable capacity 1
	if err != nil {
		t.Fatalf("NewPair: %v", err)
	}
	if _, err := endB.DequeueAvail(); !errors.Is(err, api.ErrRingEmpty) {
		t.Errorf("Expected ErrRingEmpty, got %v", err)
	}
	if err := endA.EnqueueAvail(api.Descriptor{}); err != nil {
		t.Fatalf("EnqueueAvail: %v", err)
	}
	if err := endA.EnqueueAvail(api.Descriptor{}); !errors.Is(err, api.ErrRingFull) {
		t.Errorf("Expected ErrRingFull, got %v", err)
	}
}

// Full producer/consumer pipeline across both rings with a poller on each
// side, driven by in-process wake hints.
func TestChannel_ConcurrentPipeline(t *testing.T) {
	endA, endB, err := NewPair(8)
	if err != nil {
		t.Fatalf("NewPair: %v", err)
	}
	const items = 20000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() { // endpoint B: consume avail, return through used
		defer wg.Done()
		for i := 0; i < items; i++ {
			var d api.Descriptor
			for {
				var err error
				d, err = endB.DequeueAvail()
				if err == nil {
					break
				}
				runtime.Gosched()
			}
			for endB.EnqueueUsed(d) != nil {
				runtime.Gosched()
			}
		}
	}()

	reclaimed := 0
	offered := 0
	for reclaimed < items {
		if offered < items {
			if endA.EnqueueAvail(api.Descriptor{Cookie: uintptr(offered)}) == nil {
				offered++
			}
		}
		d, err := endA.DequeueUsed()
		if err != nil {
			runtime.Gosched()
			continue
		}
		if d.Cookie != uintptr(reclaimed) {
			t.Fatalf("Reclaim order broken: got %d, want %d", d.Cookie, reclaimed)
		}
		reclaimed++
	}
	wg.Wait()
	if !endA.Avail().Empty() || !endA.Used().Empty() {
		t.Error("Rings should drain to empty")
	}
}

// alignedRegion allocates an 8-byte aligned ring region on the heap.
func alignedRegion(t *testing.T, slots uint32) []byte {
	t.Helper()
	words := (ring.Size(slots) + 7) / 8
	backing := make([]uint64, words)
	return unsafe.Slice((*byte)(unsafe.Pointer(&backing[0])), words*8)
}
