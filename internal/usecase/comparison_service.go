package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/farhan786-developer/pakbuyhatke-scraping-server/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

const (
	// defaultCurrentSite is assumed when a request does not say where the
	// reference listing came from
	defaultCurrentSite = "daraz"

	// maxCheaperOptions caps the preview list in the response; counts still
	// reflect the untruncated sets
	maxCheaperOptions = 5
)

// ComparisonServiceConfig holds configuration for the comparison service
type ComparisonServiceConfig struct {
	CacheTTL           time.Duration
	CompareTimeout     time.Duration
	MatchThreshold     float64
	MaxAttempts        int
	EmptyRetryDelay    time.Duration
	ErrorRetryDelay    time.Duration
	EnableDebugLogging bool
}

// ComparisonService answers whether a product listed on one marketplace has
// a cheaper verified equivalent on the others
type ComparisonService struct {
	cache          domain.CacheRepository
	normalizer     *Normalizer
	dispatcher     *Dispatcher
	scorer         *SimilarityScorer
	cacheTTL       time.Duration
	compareTimeout time.Duration
}

// NewComparisonService creates a new comparison service with dependencies
func NewComparisonService(
	cache domain.CacheRepository,
	cleaner domain.TitleCleaner,
	adapters []domain.SourceAdapter,
	config ComparisonServiceConfig,
) *ComparisonService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	return &ComparisonService{
		cache:      cache,
		normalizer: NewNormalizer(cleaner, config.EnableDebugLogging),
		dispatcher: NewDispatcher(adapters, DispatcherConfig{
			MaxAttempts:        config.MaxAttempts,
			EmptyRetryDelay:    config.EmptyRetryDelay,
			ErrorRetryDelay:    config.ErrorRetryDelay,
			EnableDebugLogging: config.EnableDebugLogging,
		}),
		scorer: NewSimilarityScorer(SimilarityConfig{
			MatchThreshold:     config.MatchThreshold,
			EnableDebugLogging: config.EnableDebugLogging,
		}),
		cacheTTL:       cacheTTL,
		compareTimeout: config.CompareTimeout,
	}
}

// Sites returns the names of all marketplaces this service can query
func (s *ComparisonService) Sites() []string {
	return s.dispatcher.Sites()
}

// Compare runs one full comparison: normalize the title, fan out to every
// other marketplace, keep candidates that match the normalized title, keep
// the strictly cheaper ones, and rank them ascending by price.
// "No cheaper option found" is a successful outcome, not an error.
func (s *ComparisonService) Compare(ctx context.Context, req *domain.CompareRequest) (*domain.Comparison, error) {
	if req == nil || strings.TrimSpace(req.Title) == "" {
		return nil, domain.ErrTitleRequired
	}

	currentSite := strings.ToLower(strings.TrimSpace(req.CurrentSite))
	if currentSite == "" {
		currentSite = defaultCurrentSite
	}

	start := time.Now()

	cacheKey := s.compareCacheKey(req.Title, req.CurrentPrice, currentSite)
	if cached := s.getFromCache(ctx, cacheKey); cached != nil {
		// The key normalizes punctuation away, so the stored outcome may
		// carry a near-identical title from an earlier request
		hit := *cached
		hit.OriginalTitle = req.Title
		return &hit, nil
	}

	// The whole run shares one deadline; a slow source contributes nothing
	// past it while the rest of the pipeline proceeds
	if s.compareTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.compareTimeout)
		defer cancel()
	}

	cleanedTitle := s.normalizer.Normalize(ctx, req.Title)

	allResults := s.dispatcher.Dispatch(ctx, cleanedTitle, currentSite)

	var matched []domain.Listing
	for _, listing := range allResults {
		if s.scorer.IsMatch(cleanedTitle, listing.Title) {
			matched = append(matched, listing)
		}
	}

	var cheaper []domain.Listing
	for _, listing := range matched {
		if listing.Price > 0 && listing.Price < req.CurrentPrice {
			cheaper = append(cheaper, listing)
		}
	}

	// Stable sort keeps discovery order among equal prices
	sort.SliceStable(cheaper, func(i, j int) bool {
		return cheaper[i].Price < cheaper[j].Price
	})

	var bestDeal *domain.Listing
	savings := 0
	if len(cheaper) > 0 {
		best := cheaper[0]
		bestDeal = &best
		savings = req.CurrentPrice - best.Price
	}

	options := cheaper
	if len(options) > maxCheaperOptions {
		options = options[:maxCheaperOptions]
	}
	if options == nil {
		options = []domain.Listing{}
	}

	outcome := &domain.Comparison{
		Success:        true,
		OriginalTitle:  req.Title,
		CleanedTitle:   cleanedTitle,
		CurrentPrice:   req.CurrentPrice,
		CurrentSite:    currentSite,
		FoundCheaper:   len(cheaper) > 0,
		CheaperOptions: options,
		BestDeal:       bestDeal,
		Savings:        savings,
		TotalResults:   len(allResults),
		MatchedResults: len(matched),
		SearchTimeMS:   time.Since(start).Milliseconds(),
	}

	s.setInCache(ctx, cacheKey, outcome)

	return outcome, nil
}

// compareCacheKey creates a normalized cache key from a compare request.
// Format: "compare:{normalized_title}:{price}:{site}"
func (s *ComparisonService) compareCacheKey(title string, price int, site string) string {
	return fmt.Sprintf("compare:%s:%d:%s", normalizeForCacheKey(title), price, site)
}

// normalizeForCacheKey normalizes a string for use as a cache key component.
// Converts to lowercase, removes special characters, and trims whitespace.
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// getFromCache retrieves a previous outcome from cache
func (s *ComparisonService) getFromCache(ctx context.Context, key string) *domain.Comparison {
	if s.cache == nil {
		return nil
	}

	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil
	}

	outcome, ok := value.(*domain.Comparison)
	if !ok {
		return nil
	}
	return outcome
}

// setInCache stores a comparison outcome in cache
func (s *ComparisonService) setInCache(ctx context.Context, key string, outcome *domain.Comparison) {
	if s.cache == nil {
		return
	}
	// Caching is best-effort; a failed write never fails the comparison
	_ = s.cache.Set(ctx, key, outcome, s.cacheTTL)
}
