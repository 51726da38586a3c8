package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/eydelrivero/tuber/internal/domain"
)

// MaxPageSize is the platform's per-request result cap.
const MaxPageSize = 50

// FetchResult is the accumulated output of one paginated fetch.
type FetchResult struct {
	TotalResults int64
	Items        []domain.ResultItem
	Pages        int
}

type Fetcher struct {
	pager  Pager
	logger *zap.Logger
}

func NewFetcher(pager Pager, logger *zap.Logger) *Fetcher {
	return &Fetcher{pager: pager, logger: logger}
}

// FetchAll issues the first page request and follows continuation tokens until
// the budgeted page count is consumed or the server stops issuing tokens.
//
// For MaxResults <= 50 a single request asks for exactly MaxResults items.
// Above that, every request (the first included) asks for the full 50, and
// the accumulated list may overshoot MaxResults; callers get the overshoot
// untrimmed. Failures on any page abandon the whole fetch.
func (f *Fetcher) FetchAll(ctx context.Context, criteria *domain.Criteria) (*FetchResult, error) {
	n := criteria.MaxResults

	pageSize := n
	pageCount := 1
	if n > MaxPageSize {
		pageSize = MaxPageSize
		pageCount = (n + MaxPageSize - 1) / MaxPageSize
	}

	page, err := f.pager.SearchPage(ctx, criteria, pageSize, "")
	if err != nil {
		return nil, err
	}

	result := &FetchResult{
		TotalResults: page.TotalResults,
		Items:        page.Items,
		Pages:        1,
	}
	token := page.NextPageToken

	for remaining := pageCount - 1; remaining > 0; remaining-- {
		if token == "" {
			// the platform ran out of results before the budgeted page count
			f.logger.Debug("continuation token absent, stopping early",
				zap.Int("pages_fetched", result.Pages),
				zap.Int("pages_budgeted", pageCount),
			)
			break
		}

		page, err = f.pager.SearchPage(ctx, criteria, MaxPageSize, token)
		if err != nil {
			return nil, err
		}

		result.Items = append(result.Items, page.Items...)
		result.Pages++
		token = page.NextPageToken
	}

	return result, nil
}
