package scraper

import (
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// userAgents is the pool rotated across outbound requests
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
}

// HeaderSource generates realistic browser headers from an injectable
// random source, so tests can pin the rotation
type HeaderSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewHeaderSource creates a header source. A nil rng gets a time seed.
func NewHeaderSource(rng *rand.Rand) *HeaderSource {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &HeaderSource{rng: rng}
}

// Apply sets a rotated user agent and the usual browser headers on req.
// Accept-Encoding is left to the transport so gzip responses are
// transparently decoded.
func (h *HeaderSource) Apply(req *http.Request) {
	h.mu.Lock()
	ua := userAgents[h.rng.Intn(len(userAgents))]
	h.mu.Unlock()

	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Referer", "https://www.google.com/")
}
