package service

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eydelrivero/tuber/internal/cache"
	"github.com/eydelrivero/tuber/internal/domain"
	"github.com/eydelrivero/tuber/internal/metrics"
	"github.com/eydelrivero/tuber/internal/repository"
	"github.com/eydelrivero/tuber/internal/search"
)

// SearchService is the one entry point: validate, fetch every page, flatten.
type SearchService interface {
	Search(ctx context.Context, query domain.SearchQuery) (*domain.ResultTable, error)
}

type SearchConfig struct {
	CacheTTL      time.Duration
	SearchTimeout time.Duration
}

type SearchServiceDeps struct {
	Pager  search.Pager
	Stats  search.StatsProvider
	Logger *zap.Logger
	Config SearchConfig

	// опциональные компоненты
	Cache   cache.Cache
	History repository.SearchHistoryRepository
	Metrics *metrics.Metrics
}

type searchService struct {
	fetcher *search.Fetcher
	stats   search.StatsProvider
	cache   cache.Cache
	history repository.SearchHistoryRepository
	logger  *zap.Logger
	metrics *metrics.Metrics
	config  SearchConfig
}

func NewSearchService(deps SearchServiceDeps) SearchService {
	if deps.Config.CacheTTL == 0 {
		deps.Config.CacheTTL = 15 * time.Minute
	}
	if deps.Config.SearchTimeout == 0 {
		deps.Config.SearchTimeout = 2 * time.Minute
	}

	return &searchService{
		fetcher: search.NewFetcher(deps.Pager, deps.Logger),
		stats:   deps.Stats,
		cache:   deps.Cache,
		history: deps.History,
		logger:  deps.Logger,
		metrics: deps.Metrics,
		config:  deps.Config,
	}
}

func (s *searchService) Search(ctx context.Context, query domain.SearchQuery) (*domain.ResultTable, error) {
	startTime := time.Now()

	if s.metrics != nil {
		s.metrics.IncSearchesInFlight()
		defer s.metrics.DecSearchesInFlight()
	}

	resultType := string(query.Type)
	if resultType == "" {
		resultType = string(domain.TypeVideo)
	}

	criteria, err := query.Normalize()
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordSearch(resultType, "validation_error", time.Since(startTime))
		}
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.SearchTimeout)
	defer cancel()

	s.logger.Info("processing search",
		zap.String("term", criteria.Term),
		zap.String("type", resultType),
		zap.Int("max_results", criteria.MaxResults),
		zap.Bool("with_stats", criteria.IncludeStats),
	)

	key := cacheKey(criteria)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			if table, ok := cached.(*domain.ResultTable); ok {
				if s.metrics != nil {
					s.metrics.RecordCacheHit()
					s.metrics.RecordSearch(resultType, "success", time.Since(startTime))
				}
				return table, nil
			}
		}
		if s.metrics != nil {
			s.metrics.RecordCacheMiss()
		}
	}

	fetched, err := s.fetcher.FetchAll(ctx, criteria)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordSearch(resultType, "error", time.Since(startTime))
		}
		return nil, fmt.Errorf("fetch: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordPages(fetched.Pages)
	}

	s.logger.Info("search completed",
		zap.Int64("total_results", fetched.TotalResults),
		zap.Int("items", len(fetched.Items)),
		zap.Int("pages", fetched.Pages),
	)

	// enrichment is keyed by video id, a non-video search has none to offer
	var stats search.StatsProvider
	if criteria.IncludeStats && criteria.Type == domain.TypeVideo && s.stats != nil {
		stats = &statsRecorder{provider: s.stats, metrics: s.metrics}
	}

	table, err := search.Flatten(ctx, fetched.TotalResults, fetched.Items, stats)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordSearch(resultType, "error", time.Since(startTime))
		}
		return nil, fmt.Errorf("flatten: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(key, table, s.config.CacheTTL)
	}

	if s.metrics != nil {
		s.metrics.RecordSearch(resultType, "success", time.Since(startTime))
	}

	// в фоне пишем запись в историю
	if s.history != nil {
		rec := &domain.SearchRecord{
			Term:         strings.TrimSpace(query.Term),
			ResultType:   criteria.Type,
			MaxResults:   criteria.MaxResults,
			TotalResults: table.TotalResults,
			RowCount:     len(table.Rows),
			WithStats:    table.WithStats,
		}
		go func() {
			if err := s.history.Create(context.Background(), rec); err != nil {
				s.logger.Warn("failed to record search history",
					zap.Error(err),
					zap.String("term", rec.Term),
				)
			}
		}()
	}

	return table, nil
}

func cacheKey(c *domain.Criteria) string {
	data, _ := json.Marshal(c)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("search:%x", hash[:8])
}

// statsRecorder counts lookups without changing their outcome.
type statsRecorder struct {
	provider search.StatsProvider
	metrics  *metrics.Metrics
}

func (r *statsRecorder) VideoStats(ctx context.Context, videoID string) (map[string]string, error) {
	raw, err := r.provider.VideoStats(ctx, videoID)
	if r.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		r.metrics.RecordStatsLookup(status)
	}
	return raw, err
}
