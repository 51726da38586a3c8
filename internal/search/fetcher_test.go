package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/eydelrivero/tuber/internal/domain"
)

type pageRequest struct {
	pageSize  int
	pageToken string
}

// scriptedPager serves a fixed sequence of pages and records every request.
type scriptedPager struct {
	pages    []*domain.ResultPage
	err      error
	errOn    int // 1-based request index that fails, 0 = never
	requests []pageRequest
}

func (p *scriptedPager) SearchPage(ctx context.Context, c *domain.Criteria, pageSize int, pageToken string) (*domain.ResultPage, error) {
	p.requests = append(p.requests, pageRequest{pageSize: pageSize, pageToken: pageToken})

	n := len(p.requests)
	if p.errOn != 0 && n == p.errOn {
		return nil, p.err
	}

	if n > len(p.pages) {
		return &domain.ResultPage{}, nil
	}
	return p.pages[n-1], nil
}

func makePage(total int64, count int, token string) *domain.ResultPage {
	items := make([]domain.ResultItem, count)
	for i := range items {
		items[i] = domain.ResultItem{ID: domain.ItemID{Kind: "youtube#video", VideoID: fmt.Sprintf("vid-%d", i)}}
	}
	return &domain.ResultPage{TotalResults: total, NextPageToken: token, Items: items}
}

func mustCriteria(t *testing.T, q domain.SearchQuery) *domain.Criteria {
	t.Helper()
	c, err := q.Normalize()
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	return c
}

func TestFetcher_SingleRequestUpToCap(t *testing.T) {
	for _, n := range []int{0, 1, 25, 50} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			pager := &scriptedPager{pages: []*domain.ResultPage{makePage(1000, n, "NEXT")}}
			fetcher := NewFetcher(pager, zap.NewNop())

			criteria := mustCriteria(t, domain.SearchQuery{Term: "golang", MaxResults: n})

			result, err := fetcher.FetchAll(context.Background(), criteria)
			if err != nil {
				t.Fatalf("FetchAll() error = %v", err)
			}

			if len(pager.requests) != 1 {
				t.Fatalf("issued %d requests, want 1", len(pager.requests))
			}
			if pager.requests[0].pageSize != n {
				t.Errorf("requested page size %d, want %d", pager.requests[0].pageSize, n)
			}
			if pager.requests[0].pageToken != "" {
				t.Errorf("first request carried page token %q", pager.requests[0].pageToken)
			}
			if result.Pages != 1 {
				t.Errorf("Pages = %d, want 1", result.Pages)
			}
		})
	}
}

func TestFetcher_PaginatesAboveCap(t *testing.T) {
	tests := []struct {
		n         int
		wantPages int
	}{
		{51, 2},
		{100, 2},
		{101, 3},
		{120, 3},
		{250, 5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			pages := make([]*domain.ResultPage, tt.wantPages)
			for i := range pages {
				pages[i] = makePage(100000, MaxPageSize, fmt.Sprintf("TOKEN-%d", i+1))
			}
			pager := &scriptedPager{pages: pages}
			fetcher := NewFetcher(pager, zap.NewNop())

			criteria := mustCriteria(t, domain.SearchQuery{Term: "golang", MaxResults: tt.n})

			result, err := fetcher.FetchAll(context.Background(), criteria)
			if err != nil {
				t.Fatalf("FetchAll() error = %v", err)
			}

			if len(pager.requests) != tt.wantPages {
				t.Fatalf("issued %d requests, want %d", len(pager.requests), tt.wantPages)
			}
			for i, req := range pager.requests {
				if req.pageSize != MaxPageSize {
					t.Errorf("request %d page size = %d, want %d", i+1, req.pageSize, MaxPageSize)
				}
			}
			for i, req := range pager.requests[1:] {
				want := fmt.Sprintf("TOKEN-%d", i+1)
				if req.pageToken != want {
					t.Errorf("request %d token = %q, want %q", i+2, req.pageToken, want)
				}
			}

			// over-fetch beyond n is kept, never trimmed
			if want := tt.wantPages * MaxPageSize; len(result.Items) != want {
				t.Errorf("accumulated %d items, want %d", len(result.Items), want)
			}
			if result.Pages != tt.wantPages {
				t.Errorf("Pages = %d, want %d", result.Pages, tt.wantPages)
			}
		})
	}
}

func TestFetcher_StopsWhenTokenAbsent(t *testing.T) {
	// budget says 3 pages, server only has 2
	pager := &scriptedPager{pages: []*domain.ResultPage{
		makePage(70, MaxPageSize, "TOKEN-1"),
		makePage(70, 20, ""),
	}}
	fetcher := NewFetcher(pager, zap.NewNop())

	criteria := mustCriteria(t, domain.SearchQuery{Term: "golang", MaxResults: 150})

	result, err := fetcher.FetchAll(context.Background(), criteria)
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}

	if len(pager.requests) != 2 {
		t.Errorf("issued %d requests, want 2", len(pager.requests))
	}
	if len(result.Items) != 70 {
		t.Errorf("accumulated %d items, want 70", len(result.Items))
	}
	if result.TotalResults != 70 {
		t.Errorf("TotalResults = %d, want 70", result.TotalResults)
	}
}

func TestFetcher_ContinuationFailureAbandonsFetch(t *testing.T) {
	transportErr := errors.New("connection reset")
	pager := &scriptedPager{
		pages: []*domain.ResultPage{makePage(500, MaxPageSize, "TOKEN-1")},
		err:   transportErr,
		errOn: 2,
	}
	fetcher := NewFetcher(pager, zap.NewNop())

	criteria := mustCriteria(t, domain.SearchQuery{Term: "golang", MaxResults: 150})

	_, err := fetcher.FetchAll(context.Background(), criteria)
	if !errors.Is(err, transportErr) {
		t.Errorf("FetchAll() error = %v, want the transport error unchanged", err)
	}
}

func TestFetcher_FirstPageFailure(t *testing.T) {
	pager := &scriptedPager{err: domain.ErrQuotaExceeded, errOn: 1}
	fetcher := NewFetcher(pager, zap.NewNop())

	criteria := mustCriteria(t, domain.SearchQuery{Term: "golang", MaxResults: 10})

	_, err := fetcher.FetchAll(context.Background(), criteria)
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Errorf("FetchAll() error = %v, want ErrQuotaExceeded", err)
	}
}
