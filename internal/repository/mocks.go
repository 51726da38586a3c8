package repository

import (
	"context"
	"sync"
	"time"

	"github.com/eydelrivero/tuber/internal/domain"
)

type MockSearchHistoryRepository struct {
	mu      sync.RWMutex
	records []domain.SearchRecord
	nextID  int64

	CreateErr error
}

func NewMockSearchHistoryRepository() *MockSearchHistoryRepository {
	return &MockSearchHistoryRepository{nextID: 1}
}

func (m *MockSearchHistoryRepository) Create(ctx context.Context, rec *domain.SearchRecord) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec.ID = m.nextID
	m.nextID++
	if rec.ExecutedAt.IsZero() {
		rec.ExecutedAt = time.Now()
	}
	m.records = append(m.records, *rec)
	return nil
}

func (m *MockSearchHistoryRepository) ListRecent(ctx context.Context, limit int) ([]domain.SearchRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.SearchRecord, 0, limit)
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

func (m *MockSearchHistoryRepository) CountByTerm(ctx context.Context, term string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, rec := range m.records {
		if rec.Term == term {
			count++
		}
	}
	return count, nil
}

func (m *MockSearchHistoryRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
