//go:build linux
// +build linux

// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// eventfd_linux_test.go — eventfd doorbell.
package notify

import (
	"testing"
	"time"
)

func TestEventfd_SignalWaitDrain(t *testing.T) {
	e, err := NewEventfd()
	if err != nil {
		t.Fatalf("NewEventfd: %v", err)
	}
	defer e.Close()

	e.Signal()
	e.Signal() // coalesces into the counter
	if err := e.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	// Counter drained: another Drain is a no-op.
	if err := e.Drain(); err != nil {
		t.Fatalf("Drain: %v", err)
	}
}

func TestEventfd_WaitUnblocksOnSignal(t *testing.T) {
	e, err := NewEventfd()
	if err != nil {
		t.Fatalf("NewEventfd: %v", err)
	}
	defer e.Close()

	done := make(chan error, 1)
	go func() { done <- e.Wait() }()
	time.Sleep(time.Millisecond)
	e.Signal()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Wait: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait did not unblock on Signal")
	}
}

func TestEventfd_FromFDSharesDoorbell(t *testing.T) {
	e, err := NewEventfd()
	if err != nil {
		t.Fatalf("NewEventfd: %v", err)
	}
	defer e.Close()

	peer := FromFD(e.FD())
	peer.Signal()
	if err := e.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}
