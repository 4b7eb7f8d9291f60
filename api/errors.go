// File: api/errors.go
// Author: momentics <momentics@gmail.com>
//
// Common error values for the shmring library.

package api

import "fmt"

// Recoverable ring conditions. Both are routine backpressure results and
// carry equal severity: a consumer polling an empty ring and a producer
// hitting a full ring are expected in normal operation.
var (
	ErrRingFull  = fmt.Errorf("ring full")
	ErrRingEmpty = fmt.Errorf("ring empty")
)

// Construction and platform errors.
var (
	ErrBadSlotCount = fmt.Errorf("slot count must be at least 2")
	ErrShortMemory  = fmt.Errorf("memory region too small")
	ErrMisaligned   = fmt.Errorf("memory region not 8-byte aligned")
	ErrBadSegment   = fmt.Errorf("invalid segment header")
	ErrNotSupported = fmt.Errorf("operation not supported on this platform")
)
