// File: api/notify.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Peer wake-up capability injected into channels. The delivery transport
// (eventfd, doorbell, IPC call) lives behind this interface.

package api

// Notifier delivers an argument-less, advisory wake hint to the peer
// endpoint. Signal must not block from the channel's perspective; it may
// be coalesced or delayed by the transport, so receivers always re-check
// ring state instead of trusting signal timing.
type Notifier interface {
	Signal()
}

// NotifyFunc adapts a plain function to the Notifier interface.
type NotifyFunc func()

// Signal implements Notifier.
func (f NotifyFunc) Signal() { f() }
