// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package channel implements the duplex descriptor-exchange protocol: a
// pair of shared rings ("avail" and "used") plus a replaceable notify
// capability. One endpoint offers buffers through the avail ring; the
// peer consumes them and returns ownership through the used ring.
// Ownership of the referenced memory transfers at successful dequeue,
// never at enqueue.
package channel
