// Package config holds the tunable constants of the scraper. The filename
// derivation values (stop words, stem budget) affect every generated
// filename, so they live here as named constants rather than inline magic
// values.
package config

import (
	"strings"
	"time"
)

// Output layout.
const (
	OutputRoot       = "downloads"
	PicsDirName      = "pics"
	MetadataFileName = "descriptions.json"
	ViewerFileName   = "viewer.html"
	SummaryFileName  = "session.yaml"
)

// Filename derivation.
const (
	MaxStemLen    = 10
	MaxStemTokens = 3
)

// Crawl behavior.
const (
	MaxHops           = 500
	NavigationTimeout = 30 * time.Second
	ChallengeWait     = 15 * time.Second
	DownloadTimeout   = 60 * time.Second
	MaxRedirects      = 10
)

// Page structure.
const (
	PageParam           = "p"
	DefaultPageNumber   = "1"
	ImageSelector       = "img#tease_pic, img"
	DescriptionSelector = "p.text, #tease_content p"
	ContinueAnchorID    = "continue"
)

// Fallbacks substituted on extraction misses.
const (
	DefaultTitle       = "no title"
	DefaultDescription = "no description"
)

// stopWords are common English function words dropped during filename
// derivation. Single-character tokens are dropped separately.
var stopWords = map[string]struct{}{
	"an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "for": {}, "if": {},
	"in": {}, "into": {}, "is": {}, "it": {}, "no": {},
	"not": {}, "of": {}, "on": {}, "or": {}, "such": {},
	"that": {}, "the": {}, "their": {}, "then": {}, "there": {},
	"these": {}, "they": {}, "this": {}, "to": {}, "was": {},
	"will": {}, "with": {},
}

// IsStopWord reports whether token is excluded from derived filenames.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}

// challengeTitles are lowercase fragments of document titles used by known
// anti-bot interstitials. Matching on the title is a best-effort heuristic,
// nothing more; the crawl proceeds whether or not the challenge resolves.
var challengeTitles = []string{
	"just a moment",
	"attention required",
	"checking your browser",
	"access denied",
	"verify you are human",
}

// IsChallengeTitle reports whether a page title looks like an anti-bot
// interstitial rather than real content.
func IsChallengeTitle(title string) bool {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return false
	}
	for _, frag := range challengeTitles {
		if strings.Contains(t, frag) {
			return true
		}
	}
	return false
}
