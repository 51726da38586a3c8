package repository

import (
	"context"

	"github.com/eydelrivero/tuber/internal/domain"
)

type SearchHistoryRepository interface {
	Create(ctx context.Context, rec *domain.SearchRecord) error
	ListRecent(ctx context.Context, limit int) ([]domain.SearchRecord, error)
	CountByTerm(ctx context.Context, term string) (int, error)
}
