package aiclean

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/farhan786-developer/pakbuyhatke-scraping-server/internal/domain"
)

const defaultTimeoutHint = 3 // seconds, forwarded to the cleaning model

// Client handles communication with the AI title-cleaning server
type Client struct {
	httpClient  *http.Client
	baseURL     string
	timeoutHint int
	debug       bool
}

// NewClient creates a new title-cleaning client. timeout bounds the whole
// HTTP exchange; timeoutHint is the per-request budget passed to the
// collaborator in the body.
func NewClient(baseURL string, timeout time.Duration, timeoutHint int) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if timeoutHint <= 0 {
		timeoutHint = defaultTimeoutHint
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     baseURL,
		timeoutHint: timeoutHint,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

type cleanRequest struct {
	Title   string `json:"title"`
	Timeout int    `json:"timeout"`
}

type cleanResponse struct {
	Success bool   `json:"success"`
	Cleaned string `json:"cleaned"`
}

// Clean asks the AI server for a cleaned version of a listing title. Any
// transport failure, non-200 status or unsuccessful response comes back as
// an error wrapping ErrCleanerUnavailable; the caller falls back to local
// normalization.
func (c *Client) Clean(ctx context.Context, title string) (string, error) {
	payload, err := json.Marshal(cleanRequest{Title: title, Timeout: c.timeoutHint})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/clean-title", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCleanerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", domain.ErrCleanerUnavailable, resp.StatusCode)
	}

	var result cleanResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: decode: %v", domain.ErrCleanerUnavailable, err)
	}

	if !result.Success || result.Cleaned == "" {
		return "", fmt.Errorf("%w: cleaner declined the title", domain.ErrCleanerUnavailable)
	}

	if c.debug {
		log.Printf("[AICLEAN] %q -> %q", title, result.Cleaned)
	}

	return result.Cleaned, nil
}
