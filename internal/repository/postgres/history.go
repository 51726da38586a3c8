package postgres

import (
	"context"
	"fmt"

	"github.com/eydelrivero/tuber/internal/domain"
)

type SearchHistoryRepo struct {
	db *DB
}

func NewSearchHistoryRepo(db *DB) *SearchHistoryRepo {
	return &SearchHistoryRepo{db: db}
}

func (r *SearchHistoryRepo) Create(ctx context.Context, rec *domain.SearchRecord) error {
	query := `
        INSERT INTO searches (term, result_type, max_results, total_results, row_count, with_stats)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, executed_at
    `

	err := r.db.Pool.QueryRow(ctx, query,
		rec.Term,
		string(rec.ResultType),
		rec.MaxResults,
		rec.TotalResults,
		rec.RowCount,
		rec.WithStats,
	).Scan(&rec.ID, &rec.ExecutedAt)
	if err != nil {
		return fmt.Errorf("create search record: %w", err)
	}

	return nil
}

func (r *SearchHistoryRepo) ListRecent(ctx context.Context, limit int) ([]domain.SearchRecord, error) {
	query := `
        SELECT id, term, result_type, max_results, total_results, row_count, with_stats, executed_at
        FROM searches
        ORDER BY executed_at DESC
        LIMIT $1
    `

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent searches: %w", err)
	}
	defer rows.Close()

	var records []domain.SearchRecord
	for rows.Next() {
		var rec domain.SearchRecord
		var resultType string
		if err := rows.Scan(
			&rec.ID,
			&rec.Term,
			&resultType,
			&rec.MaxResults,
			&rec.TotalResults,
			&rec.RowCount,
			&rec.WithStats,
			&rec.ExecutedAt,
		); err != nil {
			return nil, fmt.Errorf("scan search record: %w", err)
		}
		rec.ResultType = domain.ResultType(resultType)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search records: %w", err)
	}

	return records, nil
}

func (r *SearchHistoryRepo) CountByTerm(ctx context.Context, term string) (int, error) {
	query := `SELECT COUNT(*) FROM searches WHERE term = $1`

	var count int
	if err := r.db.Pool.QueryRow(ctx, query, term).Scan(&count); err != nil {
		return 0, fmt.Errorf("count searches by term: %w", err)
	}

	return count, nil
}
