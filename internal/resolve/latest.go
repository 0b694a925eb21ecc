package resolve

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/vercheck-labs/vercheck/internal/software"
)

// Latest resolves the latest published version of an entry.
type Latest struct {
	httpClient *http.Client
	userAgent  string
	logger     *log.Logger
}

// LatestOption configures a Latest resolver.
type LatestOption func(*Latest)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) LatestOption {
	return func(l *Latest) {
		l.httpClient = c
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) LatestOption {
	return func(l *Latest) {
		l.userAgent = ua
	}
}

// WithLatestLogger sets the logger used for debug output.
func WithLatestLogger(lg *log.Logger) LatestOption {
	return func(l *Latest) {
		l.logger = lg
	}
}

// NewLatest creates a Latest resolver.
func NewLatest(opts ...LatestOption) *Latest {
	l := &Latest{
		httpClient: http.DefaultClient,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Resolve fetches the entry's URL and extracts the version from the body.
func (l *Latest) Resolve(ctx context.Context, sw software.Software) (string, error) {
	body, err := l.fetch(ctx, sw.URL)
	if err != nil {
		return "", latestFailed(err)
	}

	version, err := software.ExtractVersion(body, sw.LatestRegex)
	if err != nil {
		return "", latestFailed(err)
	}
	return version, nil
}

// fetch returns the whole response body. Transport errors are returned
// unwrapped so their text reaches the user unchanged.
func (l *Latest) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	if l.userAgent != "" {
		req.Header.Set("User-Agent", l.userAgent)
	}

	l.logger.Debug("fetching latest version", "url", url)
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	l.logger.Debug("latest version response", "url", url, "status", resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("request to %s failed, status: %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body from %s: %w", url, err)
	}
	return string(body), nil
}
