// Package extract pulls the tease page elements (image, caption,
// description, continue link) out of rendered HTML. Every extractor is
// fallible without being fatal: the caller substitutes defaults on a miss.
package extract

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/piggiedev/miloscrap/internal/config"
)

// Parse builds a queryable document from rendered page HTML.
func Parse(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// Image returns the src and alt of the page's tease image. ok is false
// when no image with a usable src is present.
func Image(doc *goquery.Document) (src, alt string, ok bool) {
	img := doc.Find(config.ImageSelector).First()
	if img.Length() == 0 {
		return "", "", false
	}

	src, _ = img.Attr("src")
	src = strings.TrimSpace(src)
	if src == "" {
		return "", "", false
	}

	alt, _ = img.Attr("alt")
	return src, strings.TrimSpace(alt), true
}

// Description returns the page's caption text node.
func Description(doc *goquery.Document) (string, bool) {
	node := doc.Find(config.DescriptionSelector).First()
	if node.Length() == 0 {
		return "", false
	}

	text := strings.TrimSpace(node.Text())
	if text == "" {
		return "", false
	}
	return text, true
}

// ContinueHref returns the href of the in-page continue anchor, the link
// to the next page in sequence.
func ContinueHref(doc *goquery.Document) (string, bool) {
	href, ok := doc.Find("a#" + config.ContinueAnchorID).First().Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return "", false
	}
	return href, true
}

// PageNumber reads the page-number query parameter from a page URL,
// defaulting to "1" when absent or unparsable.
func PageNumber(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return config.DefaultPageNumber
	}

	if p := u.Query().Get(config.PageParam); p != "" {
		return p
	}
	return config.DefaultPageNumber
}

// Resolve makes href absolute against the current page URL.
func Resolve(pageURL, href string) string {
	u, err := url.Parse(href)
	if err != nil || u == nil {
		return href
	}

	if u.IsAbs() {
		return u.String()
	}

	base, err := url.Parse(pageURL)
	if err != nil || base == nil {
		return href
	}

	return base.ResolveReference(u).String()
}

// Extension derives the local file extension from an image URL's path,
// defaulting to ".jpg" when the path carries none.
func Extension(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return ".jpg"
	}

	if ext := path.Ext(u.Path); ext != "" {
		return ext
	}
	return ".jpg"
}
