package datastore

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process Table. It behaves like a worksheet: updating a
// cell past the current extent grows the grid with empty cells.
type Memory struct {
	mu   sync.RWMutex
	rows [][]string
}

// NewMemory returns a table whose first row is header.
func NewMemory(header []string) *Memory {
	m := &Memory{}
	if len(header) > 0 {
		m.rows = append(m.rows, append([]string(nil), header...))
	}
	return m
}

func (m *Memory) AppendRow(_ context.Context, cells []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, append([]string(nil), cells...))
	return nil
}

func (m *Memory) ReadAllRows(_ context.Context) ([][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([][]string, len(m.rows))
	for i, row := range m.rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

func (m *Memory) UpdateCell(_ context.Context, row, col int, value string) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("invalid cell position row=%d col=%d", row, col)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for len(m.rows) < row {
		m.rows = append(m.rows, nil)
	}
	r := m.rows[row-1]
	for len(r) < col {
		r = append(r, "")
	}
	r[col-1] = value
	m.rows[row-1] = r
	return nil
}
