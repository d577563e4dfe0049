package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go/failsafehttp"

	"github.com/Blackspirits/pipocas/internal/cache"
	"github.com/Blackspirits/pipocas/internal/config"
	"github.com/Blackspirits/pipocas/internal/models"
	"github.com/Blackspirits/pipocas/internal/parser"
	"github.com/Blackspirits/pipocas/internal/services"

	"golang.org/x/text/language"
)

// Client defines the interface for the authenticated pipocas.tv session.
type Client interface {
	// Login authenticates the session with the configured credentials.
	Login(ctx context.Context) error

	// Search returns subtitle candidates for the video in one language.
	// Languages the site does not carry yield an empty result, not an error.
	Search(ctx context.Context, video *models.Video, lang language.Tag) ([]models.Subtitle, error)

	// Download fetches the subtitle payload and extracts it from its
	// container when needed.
	Download(ctx context.Context, subtitle *models.Subtitle) (*models.DownloadResult, error)

	// Close releases any resources held by the client (e.g., cache connections).
	Close() error
}

// client implements the Client interface
type client struct {
	httpClient   *http.Client
	baseURL      string
	userAgent    string
	username     string
	password     string
	searchDelay  time.Duration
	loginParser  *parser.LoginParser
	searchParser *parser.SearchParser
	detailParser *parser.DetailParser
	extractor    services.SubtitleExtractor
	archiveCache cache.Store
}

// zerologCacheLogger adapts the application logger to the cache.Logger interface.
type zerologCacheLogger struct{}

func (zerologCacheLogger) Error(msg string, err error) {
	logger := config.GetLogger()
	logger.Error().Err(err).Msg(msg)
}

// NewClient creates a new client instance with proxy and cache configuration.
func NewClient(cfg *config.Config) (Client, error) {
	logger := config.GetLogger()

	timeout := 30 * time.Second // default
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 30s")
		} else {
			timeout = parsedTimeout
		}
	}

	searchDelay := 5 * time.Second
	if cfg.SearchDelay != "" {
		if parsedDelay, err := time.ParseDuration(cfg.SearchDelay); err != nil {
			logger.Warn().Err(err).Str("delay", cfg.SearchDelay).Msg("Invalid search delay, using default 5s")
		} else {
			searchDelay = parsedDelay
		}
	}

	// Set up base transport with optional proxy.
	// Clone DefaultTransport to preserve all its settings (timeouts, connection pooling, HTTP/2, etc.)
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			// Log error but continue without proxy
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	// Retry transient failures (429, 5xx, connection resets) with backoff
	// before the compression layer sees the response.
	retryPolicy := failsafehttp.NewRetryPolicyBuilder().
		WithBackoff(time.Second, 10*time.Second).
		WithMaxRetries(3).
		Build()
	retryTransport := failsafehttp.NewRoundTripper(baseTransport, retryPolicy)

	// The site requires session cookies for every authenticated page.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	httpClient := &http.Client{
		Timeout:   timeout,
		Jar:       jar,
		Transport: newCompressionTransport(retryTransport),
	}

	ttl := time.Hour
	if cfg.Cache.TTL != "" {
		if parsedTTL, err := time.ParseDuration(cfg.Cache.TTL); err == nil {
			ttl = parsedTTL
		}
	}
	size := cfg.Cache.Size
	if size <= 0 {
		size = 100
	}
	backend := cfg.Cache.Provider
	if backend == "" {
		backend = "memory"
	}

	archiveCache, err := cache.Open(backend, cache.Options{
		MaxEntries:    size,
		TTL:           ttl,
		Logger:        zerologCacheLogger{},
		RedisAddress:  cfg.Cache.RedisAddress,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
		Metrics:       "downloads",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create download cache: %w", err)
	}

	baseURL := strings.TrimRight(cfg.SiteDomain, "/")
	if baseURL == "" {
		baseURL = config.DefaultSiteDomain
	}

	return &client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		userAgent:    cfg.UserAgent,
		username:     cfg.Username,
		password:     cfg.Password,
		searchDelay:  searchDelay,
		loginParser:  parser.NewLoginParser(),
		searchParser: parser.NewSearchParser(baseURL),
		detailParser: parser.NewDetailParser(),
		extractor:    services.NewSubtitleExtractor(),
		archiveCache: archiveCache,
	}, nil
}

// Close releases any resources held by the client, such as cache connections.
func (c *client) Close() error {
	if c.archiveCache != nil {
		return c.archiveCache.Close()
	}
	return nil
}

func (c *client) loginURL() string {
	return c.baseURL + "/login"
}

func (c *client) searchURL() string {
	return c.baseURL + "/legendas"
}

func (c *client) downloadURL(subID string) string {
	return c.baseURL + "/legendas/download/" + subID
}

// setHeaders applies the browser-like headers the site expects.
func (c *client) setHeaders(req *http.Request) {
	userAgent := c.userAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Origin", c.baseURL)
	req.Header.Set("Referer", c.baseURL)
}

// fetchPage performs a GET and returns the body as UTF-8 text.
func (c *client) fetchPage(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	body, err := parser.ReadPage(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// fetchBytes performs a GET and returns the raw body bytes and status code.
// Used for downloads, where charset conversion would corrupt archives.
func (c *client) fetchBytes(ctx context.Context, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}
