package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"finis-oculus/pkg/logger"
)

const yahooUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// errUnauthorized marks a provider 401, which means the crumb or its
// session cookie expired.
var errUnauthorized = errors.New("yahoo finance rejected the session")

// crumbProvider holds the session crumb Yahoo requires on quote calls.
// The crumb is bound to the session cookie, so httpClient must carry a
// cookie jar shared with the requests that send the crumb.
type crumbProvider struct {
	mu         sync.Mutex
	crumb      string
	cookieURL  string
	crumbURL   string
	httpClient *http.Client
	log        *logger.Logger
}

func newCrumbProvider(cookieURL, crumbURL string, httpClient *http.Client, log *logger.Logger) *crumbProvider {
	return &crumbProvider{
		cookieURL:  cookieURL,
		crumbURL:   crumbURL,
		httpClient: httpClient,
		log:        log,
	}
}

// Crumb returns the cached crumb, fetching a new session first when none
// is cached or refresh is set.
func (p *crumbProvider) Crumb(ctx context.Context, refresh bool) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.crumb != "" && !refresh {
		return p.crumb, nil
	}
	p.crumb = ""

	if err := p.fetchCookie(ctx); err != nil {
		return "", err
	}
	crumb, err := p.fetchCrumb(ctx)
	if err != nil {
		return "", err
	}
	p.crumb = crumb
	p.log.DebugContext(ctx, "Refreshed Yahoo Finance crumb")
	return crumb, nil
}

// fetchCookie visits the cookie page. The page itself usually answers
// 404; only the Set-Cookie headers matter.
func (p *crumbProvider) fetchCookie(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cookieURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create cookie request: %w", err)
	}
	req.Header.Set("User-Agent", yahooUserAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.ErrorContext(ctx, "Failed to fetch Yahoo Finance session cookie", logger.ErrorField(err))
		return fmt.Errorf("failed to fetch session cookie: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (p *crumbProvider) fetchCrumb(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.crumbURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create crumb request: %w", err)
	}
	req.Header.Set("User-Agent", yahooUserAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.ErrorContext(ctx, "Failed to fetch Yahoo Finance crumb", logger.ErrorField(err))
		return "", fmt.Errorf("failed to fetch crumb: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read crumb: %w", err)
	}
	crumb := strings.TrimSpace(string(body))
	if resp.StatusCode != http.StatusOK || crumb == "" || strings.HasPrefix(crumb, "{") {
		p.log.ErrorContext(ctx, "Yahoo Finance refused to issue a crumb", logger.IntField("status_code", resp.StatusCode))
		return "", fmt.Errorf("crumb request returned status %d", resp.StatusCode)
	}
	return crumb, nil
}
