package numbering

import (
	"context"
	"sync"
)

// MemoryAllocator keeps counters in process memory. Counters are lost on
// restart, so it only suits development and tests.
type MemoryAllocator struct {
	mu       sync.Mutex
	counters map[string]int64
}

func NewMemoryAllocator() *MemoryAllocator {
	return &MemoryAllocator{counters: make(map[string]int64)}
}

func (m *MemoryAllocator) Preview(ctx context.Context, scope Scope) (Allocation, error) {
	if err := ctx.Err(); err != nil {
		return Allocation{}, err
	}
	m.mu.Lock()
	next := m.counters[scope.Key()] + 1
	m.mu.Unlock()
	return newAllocation(scope, next), nil
}

func (m *MemoryAllocator) Commit(ctx context.Context, scope Scope) (Allocation, error) {
	if err := ctx.Err(); err != nil {
		return Allocation{}, err
	}
	m.mu.Lock()
	m.counters[scope.Key()]++
	seq := m.counters[scope.Key()]
	m.mu.Unlock()
	return newAllocation(scope, seq), nil
}
