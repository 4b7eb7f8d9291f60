// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake notifier implementation for testing.

package fake

import (
	"sync"

	"github.com/momentics/shmring/api"
)

var _ api.Notifier = (*Notifier)(nil)

// Notifier counts signals for assertions in tests.
type Notifier struct {
	mu    sync.Mutex
	count int
}

// NewNotifier creates a counting fake notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Signal records one wake hint.
func (n *Notifier) Signal() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.count++
}

// Count returns the number of signals observed so far.
func (n *Notifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}
