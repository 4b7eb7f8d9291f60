// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package notify provides delivery transports for the channel's wake
// hint: an in-process channel hint, a signal coalescer, and a Linux
// eventfd doorbell for cross-process endpoints.
package notify
