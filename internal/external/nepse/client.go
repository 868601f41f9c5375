// Package nepse fetches floor-sheet pages from the exchange portal and
// extracts them into raw rows for the pipeline.
package nepse

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/floorsight/backend/internal/contracts"
	"github.com/floorsight/backend/pkg/config"
	"github.com/floorsight/backend/pkg/httputil"
	"github.com/floorsight/backend/pkg/logger"
)

// Client handles communication with the NEPSE floor-sheet pages.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	maxPages   int
	limiter    *rate.Limiter
}

// NewClient creates a new floor-sheet client. Page requests are rate limited
// to stay polite with the portal.
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.Nepse.BaseURL,
		maxPages:   cfg.Nepse.MaxPages,
		limiter:    rate.NewLimiter(rate.Limit(cfg.Nepse.RatePerSec), 1),
	}
}

// FetchFloorSheet fetches all floor-sheet pages for the current trading day
// and returns the raw rows, keyed by the portal table's own header cells.
// Pagination stops at the first page without data rows.
func (c *Client) FetchFloorSheet(ctx context.Context) ([]contracts.RawRow, error) {
	var allRows []contracts.RawRow

	for page := 1; page <= c.maxPages; page++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return allRows, err
		}

		html, err := c.fetchPage(ctx, page)
		if err != nil {
			return allRows, fmt.Errorf("fetch floor-sheet page %d: %w", page, err)
		}

		rows, err := parseFloorSheetHTML(html)
		if err != nil {
			return allRows, fmt.Errorf("parse floor-sheet page %d: %w", page, err)
		}
		if len(rows) == 0 {
			break
		}

		allRows = append(allRows, rows...)
	}

	c.logger.WithField("rows", len(allRows)).Debug("Fetched floor sheet")
	return allRows, nil
}

// fetchPage fetches one floor-sheet page as HTML.
func (c *Client) fetchPage(ctx context.Context, page int) (string, error) {
	url := fmt.Sprintf("%s/floor-sheet?page=%d", c.baseURL, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	req.Header.Set("Referer", c.baseURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body failed: %w", err)
	}

	return string(body), nil
}
