// Package search holds the pagination and flattening pipeline: a validated
// criteria goes in, a flat result table comes out. Network access happens
// through the Pager and StatsProvider contracts only.
package search

import (
	"context"

	"github.com/eydelrivero/tuber/internal/domain"
)

// Pager fetches one page of search results.
type Pager interface {
	SearchPage(ctx context.Context, criteria *domain.Criteria, pageSize int, pageToken string) (*domain.ResultPage, error)
}

// StatsProvider looks up the raw statistics mapping for one video.
type StatsProvider interface {
	VideoStats(ctx context.Context, videoID string) (map[string]string, error)
}
