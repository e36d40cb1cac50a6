package usecase

import (
	"log"
	"regexp"
	"strconv"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	// Matches a RAM capacity like "8GB", "8 GB RAM"
	ramPattern = regexp.MustCompile(`(?i)(\d+)\s*GB\s*(?:RAM)?`)

	// Matches a storage capacity like "128GB", "1 TB SSD", "256 GB Storage"
	storagePattern = regexp.MustCompile(`(?i)(\d+)\s*(?:GB|TB)\s*(?:Storage|SSD|HDD)?`)
)

const (
	// defaultMatchThreshold requires a 70% boosted similarity for two titles
	// to be considered the same product
	defaultMatchThreshold = 0.70

	// specBoost is added once per agreeing capacity figure (RAM, storage).
	// Boosts are additive, so the score can exceed 1.0.
	specBoost = 0.05
)

// SimilarityConfig holds configuration for the similarity scorer
type SimilarityConfig struct {
	MatchThreshold     float64
	EnableDebugLogging bool
}

// SimilarityScorer decides whether two differently-worded product titles
// denote the same physical product
type SimilarityScorer struct {
	matchThreshold     float64
	enableDebugLogging bool
}

// NewSimilarityScorer creates a new similarity scorer with the given configuration
func NewSimilarityScorer(config SimilarityConfig) *SimilarityScorer {
	threshold := config.MatchThreshold
	if threshold <= 0 {
		threshold = defaultMatchThreshold
	}

	return &SimilarityScorer{
		matchThreshold:     threshold,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Score computes a boosted similarity between two product titles.
// The base metric is a character-level common-subsequence ratio in [0,1];
// agreeing RAM and storage figures each add a fixed boost on top. Pure
// string similarity under-values titles that differ in marketing wording
// but agree on the specs that determine product identity.
func (s *SimilarityScorer) Score(title1, title2 string) float64 {
	t1 := strings.ToLower(strings.TrimSpace(title1))
	t2 := strings.ToLower(strings.TrimSpace(title2))

	score := sequenceRatio(t1, t2)

	if r1, ok1 := firstCapacity(ramPattern, t1); ok1 {
		if r2, ok2 := firstCapacity(ramPattern, t2); ok2 && r1 == r2 {
			score += specBoost
		}
	}
	if c1, ok1 := firstCapacity(storagePattern, t1); ok1 {
		if c2, ok2 := firstCapacity(storagePattern, t2); ok2 && c1 == c2 {
			score += specBoost
		}
	}

	return score
}

// IsMatch reports whether two titles denote the same product
func (s *SimilarityScorer) IsMatch(title1, title2 string) bool {
	score := s.Score(title1, title2)
	match := score >= s.matchThreshold

	if match && s.enableDebugLogging {
		log.Printf("[MATCH] %.2f: %q ~ %q", score, truncate(title1, 40), truncate(title2, 40))
	}

	return match
}

// Threshold returns the configured match threshold
func (s *SimilarityScorer) Threshold() float64 {
	return s.matchThreshold
}

// sequenceRatio computes 2*LCS/(len1+len2) over runes: the fraction of
// characters covered by an optimal common-subsequence alignment. Symmetric,
// in [0,1], and 1.0 iff the strings are identical.
func sequenceRatio(s1, s2 string) float64 {
	r1 := []rune(s1)
	r2 := []rune(s2)

	if len(r1) == 0 && len(r2) == 0 {
		return 1.0
	}
	if len(r1) == 0 || len(r2) == 0 {
		return 0.0
	}

	// Use two rows instead of a full matrix for space efficiency
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)

	for i := 1; i <= len(r1); i++ {
		for j := 1; j <= len(r2); j++ {
			if r1[i-1] == r2[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	lcs := prev[len(r2)]
	return 2.0 * float64(lcs) / float64(len(r1)+len(r2))
}

// firstCapacity extracts the numeric value of the first capacity token in s
func firstCapacity(pattern *regexp.Regexp, s string) (int, bool) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// truncate shortens a string for log output without splitting a rune
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
