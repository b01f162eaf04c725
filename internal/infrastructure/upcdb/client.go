package upcdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shelfaware/backend/internal/domain"
	"go.uber.org/zap"
)

const (
	defaultWindow  = time.Second
	defaultTimeout = 10 * time.Second
)

type authScheme int

const (
	authQueryParam authScheme = iota
	authBearer
)

// Config holds barcode lookup API settings.
type Config struct {
	Provider          domain.SourceKind
	APIKey            string
	BaseURL           string
	RequestsPerWindow int
	Window            time.Duration
	Timeout           time.Duration
}

// Client handles communication with the external barcode lookup API. All
// outbound calls go through a shared fixed-window rate limiter sized to the
// provider's quota.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	kind       domain.SourceKind
	limiter    *windowLimiter
	logger     *zap.Logger

	// Injectable for tests.
	sleep func(time.Duration)
}

// NewClient creates a new lookup client for the configured provider.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	kind := cfg.Provider
	if kind != domain.SourceKindBarcodeSpider {
		kind = domain.SourceKindUPCItemDB
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		switch kind {
		case domain.SourceKindBarcodeSpider:
			baseURL = "https://api.barcodespider.com"
		default:
			baseURL = "https://api.upcitemdb.com"
		}
	}

	window := cfg.Window
	if window <= 0 {
		window = defaultWindow
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		kind:       kind,
		limiter:    newWindowLimiter(cfg.RequestsPerWindow, window),
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// Lookup fetches the raw product payload for a validated barcode.
//
// Failure policy: a transport-level failure is retried once with the bearer
// auth scheme (the upstream has historically accepted either scheme
// inconsistently — this is a compatibility shim, not a general retry). A 429
// waits one full rate-limit window and retries exactly once; a second 429 or
// any other non-2xx surfaces as an UpstreamError with the status attached.
func (c *Client) Lookup(ctx context.Context, barcode string) (*domain.RawPayload, error) {
	c.limiter.Acquire()

	body, status, err := c.fetch(ctx, barcode, authQueryParam)
	if err != nil {
		c.logger.Warn("lookup transport failure, retrying with bearer auth",
			zap.String("barcode", barcode), zap.Error(err))
		body, status, err = c.fetch(ctx, barcode, authBearer)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteFailure, err)
	}

	if status == http.StatusTooManyRequests {
		c.logger.Warn("upstream rate limit hit, waiting one full window",
			zap.String("barcode", barcode))
		c.sleep(c.limiter.window)
		c.limiter.Acquire()
		body, status, err = c.fetch(ctx, barcode, authQueryParam)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRemoteFailure, err)
		}
	}

	switch {
	case status == http.StatusNotFound:
		return nil, domain.ErrProductNotFound
	case status != http.StatusOK:
		return nil, &domain.UpstreamError{StatusCode: status, Detail: compact(body)}
	}

	return c.decode(body)
}

// fetch executes one HTTP GET against the provider with the given auth scheme.
func (c *Client) fetch(ctx context.Context, barcode string, auth authScheme) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.httpClient.Timeout)
	defer cancel()

	params := url.Values{}
	params.Set("upc", barcode)
	if auth == authQueryParam && c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, c.lookupPath(), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	// The trial tier rejects Go's default user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json")
	if auth == authBearer && c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

func (c *Client) lookupPath() string {
	if c.kind == domain.SourceKindBarcodeSpider {
		return "/v1/lookup"
	}
	return "/prod/trial/lookup"
}

// decode parses the provider response and detects the "no product found"
// shape, which each provider reports differently inside a 200 body.
func (c *Client) decode(body []byte) (*domain.RawPayload, error) {
	switch c.kind {
	case domain.SourceKindBarcodeSpider:
		var sr domain.SpiderResponse
		if err := json.Unmarshal(body, &sr); err != nil {
			return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrRemoteFailure, err)
		}
		if sr.Product == nil || sr.Product.Name == "" {
			return nil, domain.ErrProductNotFound
		}
		return &domain.RawPayload{Kind: domain.SourceKindBarcodeSpider, Spider: &sr}, nil
	default:
		var ir domain.ItemDBResponse
		if err := json.Unmarshal(body, &ir); err != nil {
			return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrRemoteFailure, err)
		}
		if len(ir.Items) == 0 {
			return nil, domain.ErrProductNotFound
		}
		return &domain.RawPayload{Kind: domain.SourceKindUPCItemDB, ItemDB: &ir}, nil
	}
}

// compact trims an error body down to something loggable.
func compact(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
