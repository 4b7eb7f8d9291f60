// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package ring implements the single-producer/single-consumer descriptor
// queue at the core of shmring. A ring is a view over a raw, fixed-layout
// memory region shared by two endpoints; it can be backed by process heap
// memory or by a mapped shared segment.
package ring
