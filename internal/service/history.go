package service

import (
	"context"

	"github.com/eydelrivero/tuber/internal/domain"
	"github.com/eydelrivero/tuber/internal/repository"
)

const maxHistoryLimit = 50

type HistoryService interface {
	Recent(ctx context.Context, limit int) ([]domain.SearchRecord, error)
	CountByTerm(ctx context.Context, term string) (int, error)
}

type historyService struct {
	repo repository.SearchHistoryRepository
}

func NewHistoryService(repo repository.SearchHistoryRepository) HistoryService {
	return &historyService{repo: repo}
}

func (s *historyService) Recent(ctx context.Context, limit int) ([]domain.SearchRecord, error) {
	if limit <= 0 || limit > maxHistoryLimit {
		limit = 10
	}
	return s.repo.ListRecent(ctx, limit)
}

func (s *historyService) CountByTerm(ctx context.Context, term string) (int, error) {
	return s.repo.CountByTerm(ctx, term)
}
