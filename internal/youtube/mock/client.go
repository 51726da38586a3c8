// Package mock is an in-memory stand-in for the Data API transport, used by
// service tests and as the offline backend for local development.
package mock

import (
	"context"
	"sync"

	"github.com/eydelrivero/tuber/internal/domain"
)

type PageCall struct {
	Criteria  *domain.Criteria
	PageSize  int
	PageToken string
}

type Client struct {
	Pages    []*domain.ResultPage
	Stats    map[string]map[string]string
	Err      error
	StatsErr error

	PageCalls  []PageCall
	StatsCalls []string

	mu sync.Mutex
}

func New() *Client {
	return &Client{Stats: make(map[string]map[string]string)}
}

func (c *Client) WithPages(pages ...*domain.ResultPage) *Client {
	c.Pages = pages
	return c
}

func (c *Client) WithStats(videoID string, stats map[string]string) *Client {
	c.Stats[videoID] = stats
	return c
}

func (c *Client) WithError(err error) *Client {
	c.Err = err
	return c
}

func (c *Client) SearchPage(ctx context.Context, criteria *domain.Criteria, pageSize int, pageToken string) (*domain.ResultPage, error) {
	c.mu.Lock()
	c.PageCalls = append(c.PageCalls, PageCall{Criteria: criteria, PageSize: pageSize, PageToken: pageToken})
	n := len(c.PageCalls)
	c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}
	if n > len(c.Pages) {
		return &domain.ResultPage{}, nil
	}
	return c.Pages[n-1], nil
}

func (c *Client) VideoStats(ctx context.Context, videoID string) (map[string]string, error) {
	c.mu.Lock()
	c.StatsCalls = append(c.StatsCalls, videoID)
	c.mu.Unlock()

	if c.StatsErr != nil {
		return nil, c.StatsErr
	}
	if stats, ok := c.Stats[videoID]; ok {
		return stats, nil
	}
	return nil, domain.ErrVideoNotFound
}

func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.PageCalls = nil
	c.StatsCalls = nil
}
