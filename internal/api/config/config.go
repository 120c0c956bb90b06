package config

import (
	"time"

	"finis-oculus/pkg/config"
)

// YahooFinance holds the configuration for the Yahoo Finance API.
type YahooFinance struct {
	QuoteURL            string        `mapstructure:"quote_url"`
	CookieURL           string        `mapstructure:"cookie_url"`
	CrumbURL            string        `mapstructure:"crumb_url"`
	ChartURL            string        `mapstructure:"chart_url"`
	SearchURL           string        `mapstructure:"search_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

// Backend is the analytics backend reached through the catch-all proxy.
type Backend struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Auth holds identity token verification settings.
type Auth struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// RateLimit configures the redis-backed per-client limiter. Clients are
// keyed by the connection address; X-Real-IP is honored only when the
// connection comes from one of the TrustedProxies CIDRs.
type RateLimit struct {
	Enabled           bool     `mapstructure:"enabled"`
	RequestsPerMinute int      `mapstructure:"requests_per_minute"`
	TrustedProxies    []string `mapstructure:"trusted_proxies"`
}

// Gemini holds the configuration for AI summaries. An empty APIKey
// disables them.
type Gemini struct {
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// News selects the news source: "yahoo" (search API) or "rss".
type News struct {
	Provider string `mapstructure:"provider"`
	RSSURL   string `mapstructure:"rss_url"`
}

// Watchlist holds plan limits.
type Watchlist struct {
	FreeLimit          int           `mapstructure:"free_limit"`
	ValidationCacheTTL time.Duration `mapstructure:"validation_cache_ttl"`
	DetailsConcurrency int           `mapstructure:"details_concurrency"`
}

// Config holds the full configuration for the API service.
type Config struct {
	App          config.App      `mapstructure:"app"`
	Logger       config.Logger   `mapstructure:"logger"`
	Database     config.Database `mapstructure:"database"`
	Redis        config.Redis    `mapstructure:"redis"`
	API          config.API      `mapstructure:"api"`
	YahooFinance YahooFinance    `mapstructure:"yahoo_finance"`
	Backend      Backend         `mapstructure:"backend"`
	Auth         Auth            `mapstructure:"auth"`
	RateLimit    RateLimit       `mapstructure:"rate_limit"`
	Gemini       Gemini          `mapstructure:"gemini"`
	News         News            `mapstructure:"news"`
	Watchlist    Watchlist       `mapstructure:"watchlist"`
}

var defaults = map[string]interface{}{
	"api.port":                             8080,
	"logger.level":                         "info",
	"logger.encoding":                      "json",
	"yahoo_finance.quote_url":              "https://query1.finance.yahoo.com/v7/finance/quote",
	"yahoo_finance.cookie_url":             "https://fc.yahoo.com",
	"yahoo_finance.crumb_url":              "https://query1.finance.yahoo.com/v1/test/getcrumb",
	"yahoo_finance.chart_url":              "https://query1.finance.yahoo.com/v8/finance/chart",
	"yahoo_finance.search_url":             "https://query2.finance.yahoo.com/v1/finance/search",
	"yahoo_finance.timeout":                "10s",
	"yahoo_finance.max_request_per_minute": 120,
	"backend.timeout":                      "30s",
	"rate_limit.requests_per_minute":       120,
	"gemini.model":                         "gemini-2.0-flash",
	"gemini.cache_ttl":                     "1h",
	"news.provider":                        "yahoo",
	"news.rss_url":                         "https://feeds.finance.yahoo.com/rss/2.0/headline",
	"watchlist.free_limit":                 15,
	"watchlist.validation_cache_ttl":       "10m",
	"watchlist.details_concurrency":        8,
}

// Load loads the API service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, defaults); err != nil {
		return nil, err
	}
	return &cfg, nil
}
