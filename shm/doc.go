// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package shm maps shared-memory segments that carry a channel's ring
// pair between processes.
package shm
