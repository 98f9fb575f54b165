package recorder

import (
	"sync"

	"GoldSync/internal/model"
)

// DefaultHistorySize is the number of cycles kept when no size is given.
const DefaultHistorySize = 50

// MemoryRecorder keeps the most recent cycle summaries in a ring buffer.
type MemoryRecorder struct {
	mu    sync.Mutex
	buf   []CycleSummary
	next  int
	count int
}

// NewMemoryRecorder creates a recorder holding up to size cycles.
func NewMemoryRecorder(size int) *MemoryRecorder {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &MemoryRecorder{buf: make([]CycleSummary, size)}
}

func (m *MemoryRecorder) RecordCycle(res *model.CycleResult) error {
	if res == nil {
		return nil
	}
	s := Summarize(res)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.buf[m.next] = s
	m.next = (m.next + 1) % len(m.buf)
	if m.count < len(m.buf) {
		m.count++
	}
	return nil
}

// Recent returns up to n summaries, newest first. n <= 0 returns all retained.
func (m *MemoryRecorder) Recent(n int) []CycleSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n <= 0 || n > m.count {
		n = m.count
	}
	out := make([]CycleSummary, 0, n)
	for i := 1; i <= n; i++ {
		idx := (m.next - i + len(m.buf)) % len(m.buf)
		out = append(out, m.buf[idx])
	}
	return out
}

func (m *MemoryRecorder) Close() error { return nil }
