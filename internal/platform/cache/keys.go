package cache

import "time"

// Key prefixes and lifetimes shared with other clients of the same store
const (
	ArticlePrefix         = "article:"
	VerificationPrefix    = "verification:"
	VerificationURLPrefix = "verification:url:"
	ReportsPrefix         = "reports:"

	ArticleTTL      = time.Hour
	VerificationTTL = 30 * 24 * time.Hour
	ReportsTTL      = 90 * 24 * time.Hour
)

// ArticleKey is where the latest analysis of url lives
func ArticleKey(url string) string { return ArticlePrefix + url }

// VerificationKey indexes a saved verification by id
func VerificationKey(id string) string { return VerificationPrefix + id }

// VerificationURLKey indexes a saved verification by article url
func VerificationURLKey(url string) string { return VerificationURLPrefix + url }

// ReportsKey is the per article report list
func ReportsKey(url string) string { return ReportsPrefix + url }
