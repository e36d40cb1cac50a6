package usecase

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/farhan786-developer/pakbuyhatke-scraping-server/internal/domain"
)

// Multiple spaces cleanup
var multiSpacePattern = regexp.MustCompile(`\s+`)

// noisePhrases are marketing terms stripped from listing titles by the
// local fallback cleaner. Matched case-insensitively, as substrings.
var noisePhrases = []string{
	"PTA Approved",
	"Official Warranty",
	"Fast Shipping",
	"Cash on Delivery",
	"Free Delivery",
	"Original",
	"New",
	"Sealed",
}

// Normalizer produces a canonical search query from a raw listing title.
// The primary path delegates to the AI title-cleaning service; any failure
// there falls back to deterministic local cleaning, so normalization never
// fails outward.
type Normalizer struct {
	cleaner            domain.TitleCleaner
	enableDebugLogging bool
}

// NewNormalizer creates a new title normalizer. cleaner may be nil, in which
// case only the local fallback is used.
func NewNormalizer(cleaner domain.TitleCleaner, enableDebugLogging bool) *Normalizer {
	return &Normalizer{
		cleaner:            cleaner,
		enableDebugLogging: enableDebugLogging,
	}
}

// Normalize returns the cleaned form of a raw listing title
func (n *Normalizer) Normalize(ctx context.Context, rawTitle string) string {
	if n.cleaner != nil {
		cleaned, err := n.cleaner.Clean(ctx, rawTitle)
		if err == nil && strings.TrimSpace(cleaned) != "" {
			return strings.TrimSpace(cleaned)
		}
		if n.enableDebugLogging {
			log.Printf("[NORMALIZE] AI cleaner unavailable, using local fallback: %v", err)
		}
	}
	return CleanTitleLocal(rawTitle)
}

// CleanTitleLocal strips the fixed marketing vocabulary from a title,
// collapses whitespace and trims. Deterministic and side-effect-free;
// a title with no noise words comes back unchanged up to whitespace.
func CleanTitleLocal(title string) string {
	cleaned := title
	for _, phrase := range noisePhrases {
		cleaned = removeAllFold(cleaned, phrase)
	}
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// removeAllFold removes every case-insensitive occurrence of phrase from s
func removeAllFold(s, phrase string) string {
	phraseLower := strings.ToLower(phrase)
	for {
		idx := strings.Index(strings.ToLower(s), phraseLower)
		if idx < 0 {
			return s
		}
		s = s[:idx] + s[idx+len(phrase):]
	}
}
