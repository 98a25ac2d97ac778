// Package repo provides the report store backends
package repo

import (
	"context"
	"sync"

	"truthlens/internal/services/reports/domain"
)

// Memory keeps reports in process; contents are lost on restart
type Memory struct {
	mu    sync.RWMutex
	byID  map[string]domain.Report
	byURL map[string][]domain.Report
}

// NewMemory returns an empty Memory store
func NewMemory() *Memory {
	return &Memory{
		byID:  make(map[string]domain.Report),
		byURL: make(map[string][]domain.Report),
	}
}

// Save implements domain.StorePort
func (m *Memory) Save(_ context.Context, r domain.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[r.ID] = r
	m.byURL[r.ArticleURL] = append(m.byURL[r.ArticleURL], r)
	return nil
}

// ByURL implements domain.StorePort
func (m *Memory) ByURL(_ context.Context, url string) ([]domain.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Report(nil), m.byURL[url]...), nil
}

// Counts implements domain.StorePort
func (m *Memory) Counts(context.Context) (domain.Counts, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c := domain.Counts{Total: int64(len(m.byID)), ByReason: make(map[string]int64)}
	for _, r := range m.byID {
		if r.Reason != "" {
			c.ByReason[r.Reason]++
		}
	}
	return c, nil
}

var _ domain.StorePort = (*Memory)(nil)
