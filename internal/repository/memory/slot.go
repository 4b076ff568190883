package memory

import (
	"context"
	"sync"
)

// Slot is an in-memory repository.Slot implementation. It stands in for the
// real storage medium in tests and offline tooling.
type Slot struct {
	mu   sync.RWMutex
	data []byte
}

// NewSlot creates an empty in-memory slot.
func NewSlot() *Slot {
	return &Slot{}
}

// Read returns the slot contents, or nil when nothing has been written.
func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, nil
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

// Write overwrites the slot contents.
func (s *Slot) Write(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make([]byte, len(data))
	copy(s.data, data)
	return nil
}
