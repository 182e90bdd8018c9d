// Package sources downloads lesson texts from allow-listed official sites.
package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/aliskhannn/batyr-bol/internal/config"
)

const (
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	maxBodyBytes = 2 << 20
)

// Fetcher downloads pages and extracts their visible text.
type Fetcher struct {
	allowed   []string
	maxURLs   int
	minLength int
	client    *http.Client
	logger    *zap.Logger
}

// NewFetcher creates a Fetcher from the sources configuration.
func NewFetcher(cfg config.Sources, logger *zap.Logger) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Fetcher{
		allowed:   cfg.AllowedDomains,
		maxURLs:   cfg.MaxURLs,
		minLength: cfg.MinTextLength,
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

// Allowed reports whether the URL points at an allow-listed host or one of
// its subdomains.
func (f *Fetcher) Allowed(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}

	host := strings.ToLower(u.Hostname())
	for _, domain := range f.allowed {
		domain = strings.ToLower(domain)
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// Fetch tries the first maxURLs URLs and returns the texts that are long
// enough together with the URLs they came from. Failing pages are skipped.
func (f *Fetcher) Fetch(ctx context.Context, urls []string) ([]string, []string) {
	if f.maxURLs > 0 && len(urls) > f.maxURLs {
		urls = urls[:f.maxURLs]
	}

	var texts, used []string

	for _, rawURL := range urls {
		if !f.Allowed(rawURL) {
			f.logger.Debug("source url not allowed", zap.String("url", rawURL))
			continue
		}

		text, err := f.fetchText(ctx, rawURL)
		if err != nil {
			f.logger.Warn("failed to fetch source", zap.String("url", rawURL), zap.Error(err))
			continue
		}
		if len([]rune(text)) <= f.minLength {
			continue
		}

		texts = append(texts, text)
		used = append(used, rawURL)
	}

	return texts, used
}

func (f *Fetcher) fetchText(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return ExtractText(io.LimitReader(resp.Body, maxBodyBytes))
}

// ExtractText returns the visible text of an HTML document with whitespace
// collapsed. Script, style and noscript contents are skipped.
func ExtractText(r io.Reader) (string, error) {
	z := html.NewTokenizer(r)

	var (
		sb   strings.Builder
		skip int
	)

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return "", err
			}
			return strings.Join(strings.Fields(sb.String()), " "), nil
		case html.StartTagToken:
			if isHidden(z) {
				skip++
			}
		case html.EndTagToken:
			if isHidden(z) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				sb.Write(z.Text())
				sb.WriteByte(' ')
			}
		}
	}
}

func isHidden(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style", "noscript":
		return true
	}
	return false
}
