// sequence/memory.go
package sequence

import (
	"context"
	"sync"
)

// Memory is an in-process Generator. It does not survive restarts and must
// not be used with more than one instance; it exists for tests and local
// development without a store.
type Memory struct {
	mu   sync.Mutex
	seqs map[string]int64
}

func NewMemory() *Memory {
	return &Memory{seqs: make(map[string]int64)}
}

func (m *Memory) Next(_ context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seqs[name]++
	return m.seqs[name], nil
}

// Seed sets the current value of a counter so the next call returns value+1.
func (m *Memory) Seed(name string, value int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seqs[name] = value
}
