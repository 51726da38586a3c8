package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eydelrivero/tuber/internal/domain"
	"github.com/eydelrivero/tuber/internal/metrics"
)

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client is the authenticated GET transport for the Data API v3. The API key
// is the only credential; EnsureValid checks it before any request goes out.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func New(cfg Config, logger *zap.Logger, m *metrics.Metrics) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.googleapis.com/youtube/v3"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
		metrics: m,
	}
}

// EnsureValid fails when no credential is configured, before any network call.
func (c *Client) EnsureValid() error {
	if c.apiKey == "" {
		return domain.ErrUnauthorized
	}
	return nil
}

// SearchPage fetches one page of search results.
func (c *Client) SearchPage(ctx context.Context, criteria *domain.Criteria, pageSize int, pageToken string) (*domain.ResultPage, error) {
	body, err := c.get(ctx, "search", criteria.Params(pageSize, pageToken))
	if err != nil {
		return nil, err
	}

	var resp searchListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal search response: %w", err)
	}

	c.logger.Debug("search page fetched",
		zap.Int("items", len(resp.Items)),
		zap.Int64("total_results", resp.PageInfo.TotalResults),
		zap.Bool("has_next_page", resp.NextPageToken != ""),
	)

	return toResultPage(&resp), nil
}

// VideoStats returns the raw statistics mapping for one video.
func (c *Client) VideoStats(ctx context.Context, videoID string) (map[string]string, error) {
	body, err := c.get(ctx, "videos", [][2]string{
		{"part", "statistics"},
		{"id", videoID},
	})
	if err != nil {
		return nil, err
	}

	var resp videoListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal videos response: %w", err)
	}

	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrVideoNotFound, videoID)
	}

	return resp.Items[0].Statistics, nil
}

// get issues one authenticated GET. Parameter values are taken as already
// encoded and joined verbatim: the search term carries literal %20 sequences
// that must not be encoded a second time.
func (c *Client) get(ctx context.Context, endpoint string, params [][2]string) ([]byte, error) {
	if err := c.EnsureValid(); err != nil {
		return nil, err
	}

	var sb strings.Builder
	for _, p := range params {
		sb.WriteString(p[0])
		sb.WriteByte('=')
		sb.WriteString(p[1])
		sb.WriteByte('&')
	}
	sb.WriteString("key=")
	sb.WriteString(c.apiKey)

	url := c.baseURL + "/" + endpoint + "?" + sb.String()

	start := time.Now()
	body, err := c.doWithRetry(ctx, url)

	status := "success"
	if err != nil {
		status = "error"
	}
	if c.metrics != nil {
		c.metrics.RecordAPIRequest(endpoint, status, time.Since(start))
	}

	return body, err
}

func (c *Client) doWithRetry(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	backoff := []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

	for attempt := 0; attempt <= len(backoff); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff[attempt-1]):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("do request: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return body, nil

		case resp.StatusCode == http.StatusUnauthorized:
			return nil, domain.ErrUnauthorized

		case resp.StatusCode == http.StatusForbidden:
			return nil, domain.ErrQuotaExceeded

		case resp.StatusCode == http.StatusBadRequest:
			return nil, domain.ErrInvalidRequest

		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			continue

		default:
			return nil, fmt.Errorf("%w: status %d", domain.ErrRequestFailed, resp.StatusCode)
		}
	}

	return nil, fmt.Errorf("%w: %v", domain.ErrRequestFailed, lastErr)
}
