package scraper

import (
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/farhan786-developer/pakbuyhatke-scraping-server/internal/domain"
)

// Options configures the adapter registry. Zero values get sensible defaults.
type Options struct {
	FetchTimeout  time.Duration
	Headers       *HeaderSource
	RatePerSecond float64
	Burst         int
	Debug         bool
}

// Registry builds the full set of marketplace adapters. The HTTP client is
// shared; each site gets its own rate limiter so one slow marketplace does
// not throttle the others.
func Registry(opts Options) []domain.SourceAdapter {
	timeout := opts.FetchTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	headers := opts.Headers
	if headers == nil {
		headers = NewHeaderSource(nil)
	}

	client := &http.Client{Timeout: timeout}

	build := func(cfg SiteConfig) domain.SourceAdapter {
		var limiter *rate.Limiter
		if opts.RatePerSecond > 0 {
			burst := opts.Burst
			if burst < 1 {
				burst = 1
			}
			limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), burst)
		}

		site := NewSite(cfg, client, headers, limiter)
		site.SetDebug(opts.Debug)
		return site
	}

	return []domain.SourceAdapter{
		build(priceOyeConfig()),
		build(megaConfig()),
		build(darazConfig()),
	}
}

func priceOyeConfig() SiteConfig {
	return SiteConfig{
		Name:    "PriceOye",
		BaseURL: "https://priceoye.pk",
		SearchURL: func(query string) string {
			return "https://priceoye.pk/search?q=" + url.QueryEscape(query)
		},
		ItemSelectors:  []string{"div.product-card", "div.product-item", "div[data-product]"},
		TitleSelectors: []string{"h3", "a.product-title", ".title"},
		PriceSelectors: []string{"span.price-box", "div.price", ".product-price"},
	}
}

func megaConfig() SiteConfig {
	return SiteConfig{
		Name:    "Mega",
		BaseURL: "https://www.mega.pk",
		SearchURL: func(query string) string {
			return "https://www.mega.pk/search/" + url.PathEscape(query)
		},
		ItemSelectors:  []string{"div.product-item", "div.product-box", "article.product"},
		TitleSelectors: []string{"h4", "h3", "a.product-name"},
		PriceSelectors: []string{"span.price", "div.price"},
	}
}

func darazConfig() SiteConfig {
	return SiteConfig{
		Name:    "Daraz",
		BaseURL: "https://www.daraz.pk",
		SearchURL: func(query string) string {
			return "https://www.daraz.pk/catalog/?q=" + url.QueryEscape(query)
		},
		ItemSelectors:  []string{"div[data-qa-locator='product-item']", "div.product-item"},
		TitleSelectors: []string{"div.title", "a.title"},
		PriceSelectors: []string{"span.price", "div.price"},
	}
}
