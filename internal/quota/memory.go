package quota

import (
	"context"
	"sync"
)

// Memory is a process-local Counter. It only remembers the most recent day.
type Memory struct {
	mu    sync.Mutex
	day   string
	count int
}

// NewMemory returns an empty in-memory counter.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Increment(_ context.Context, day string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if day != m.day {
		m.day = day
		m.count = 0
	}
	m.count++
	return m.count, nil
}

func (m *Memory) Current(_ context.Context, day string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if day != m.day {
		return 0, nil
	}
	return m.count, nil
}
