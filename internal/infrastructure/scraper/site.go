package scraper

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/farhan786-developer/pakbuyhatke-scraping-server/internal/domain"
	"github.com/farhan786-developer/pakbuyhatke-scraping-server/internal/observability"
)

// maxItemsPerSite bounds how many listings one search page contributes
const maxItemsPerSite = 5

// priceRegex grabs the first numeric run in a price label like "Rs. 42,999"
var priceRegex = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// SiteConfig describes one marketplace: where to search and which selector
// chains to try, in order, when extracting listings from its markup
type SiteConfig struct {
	Name           string
	BaseURL        string
	SearchURL      func(query string) string
	ItemSelectors  []string
	TitleSelectors []string
	PriceSelectors []string
}

// Site is a marketplace adapter driven entirely by its SiteConfig
type Site struct {
	cfg        SiteConfig
	httpClient *http.Client
	headers    *HeaderSource
	limiter    *rate.Limiter
	debug      bool
}

// NewSite creates a marketplace adapter. client and headers may be shared
// across sites; limiter may be nil to disable outbound rate limiting.
func NewSite(cfg SiteConfig, client *http.Client, headers *HeaderSource, limiter *rate.Limiter) *Site {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if headers == nil {
		headers = NewHeaderSource(nil)
	}

	return &Site{
		cfg:        cfg,
		httpClient: client,
		headers:    headers,
		limiter:    limiter,
	}
}

// SetDebug enables verbose scrape logging
func (s *Site) SetDebug(debug bool) {
	s.debug = debug
}

// Name returns the site identifier used in results and exclusion matching
func (s *Site) Name() string {
	return s.cfg.Name
}

// Search fetches the site's search page for query and extracts candidate
// listings. An empty page or a blocked (non-200) response yields an empty
// slice; errors are reserved for transport and parse failures. Listings
// whose price failed to parse never leave this boundary.
func (s *Site) Search(ctx context.Context, query string) ([]domain.Listing, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}
	}

	reqURL := s.cfg.SearchURL(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	s.headers.Apply(req)

	observability.ScrapeAttempts.WithLabelValues(s.cfg.Name).Inc()

	resp, err := s.httpClient.Do(req)
	if err != nil {
		observability.ScrapeFailures.WithLabelValues(s.cfg.Name).Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Blocked or down: treated as "nothing found" so the retry layer
		// backs off gently instead of burning its error budget
		if s.debug {
			log.Printf("[SCRAPE] %s: status %d for %q", s.cfg.Name, resp.StatusCode, query)
		}
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		observability.ScrapeFailures.WithLabelValues(s.cfg.Name).Inc()
		return nil, fmt.Errorf("%w: parse: %v", domain.ErrSourceUnavailable, err)
	}

	return s.extract(doc), nil
}

// extract pulls listings out of a parsed search page using the configured
// selector fallback chains
func (s *Site) extract(doc *goquery.Document) []domain.Listing {
	items := firstSelection(doc, s.cfg.ItemSelectors)
	if items == nil {
		return nil
	}

	var listings []domain.Listing
	items.EachWithBreak(func(_ int, item *goquery.Selection) bool {
		title := firstText(item, s.cfg.TitleSelectors)
		priceText := firstText(item, s.cfg.PriceSelectors)
		if title == "" || priceText == "" {
			return true
		}

		price := CleanPrice(priceText)
		if price <= 0 {
			return true
		}

		link, _ := item.Find("a").First().Attr("href")
		img, _ := item.Find("img").First().Attr("src")

		listings = append(listings, domain.Listing{
			Title: title,
			Price: price,
			URL:   s.resolveURL(link),
			Image: img,
			Site:  s.cfg.Name,
		})

		return len(listings) < maxItemsPerSite
	})

	return listings
}

// resolveURL makes a scraped link absolute against the site base
func (s *Site) resolveURL(link string) string {
	switch {
	case link == "" || strings.HasPrefix(link, "http"):
		return link
	case strings.HasPrefix(link, "//"):
		return "https:" + link
	default:
		return s.cfg.BaseURL + link
	}
}

// firstSelection returns the first selector in the chain that matches
// anything in the document
func firstSelection(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		if found := doc.Find(sel); found.Length() > 0 {
			return found
		}
	}
	return nil
}

// firstText returns the trimmed text of the first selector in the chain
// that matches inside item
func firstText(item *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		if found := item.Find(sel).First(); found.Length() > 0 {
			return strings.TrimSpace(found.Text())
		}
	}
	return ""
}

// CleanPrice extracts an integer price from a label like "Rs. 42,999".
// Returns 0 when no usable number is present; such listings are dropped.
func CleanPrice(text string) int {
	raw := priceRegex.FindString(text)
	if raw == "" {
		return 0
	}

	raw = strings.ReplaceAll(raw, ",", "")
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return int(value)
}
