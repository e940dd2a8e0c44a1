// Package scraper drives the page walk: navigate, extract, download,
// persist, follow the continue link, repeat. The crawl is strictly
// sequential; each hop depends on the previous page's navigation outcome.
package scraper

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/piggiedev/miloscrap/internal/config"
	"github.com/piggiedev/miloscrap/internal/extract"
	"github.com/piggiedev/miloscrap/internal/namer"
	"github.com/piggiedev/miloscrap/internal/session"
	"github.com/piggiedev/miloscrap/internal/ui"
)

// PageSource is the browser-automation capability consumed by the loop.
// Every read is fallible without crashing the crawl.
type PageSource interface {
	Navigate(url string, timeout time.Duration) error
	Title() (string, error)
	Location() (string, error)
	HTML() (string, error)
	AwaitNavigation(from string, timeout time.Duration)
}

// ImageFetcher downloads one URL to a local path.
type ImageFetcher interface {
	Fetch(ctx context.Context, url, dest string) (int64, error)
}

type Crawler struct {
	pages  PageSource
	images ImageFetcher
	log    *ui.Logger
	stats  *ui.Stats
	bar    *ui.CrawlBar // optional

	// Root overrides the output root directory; defaults to
	// config.OutputRoot.
	Root string
}

func New(pages PageSource, images ImageFetcher, log *ui.Logger, stats *ui.Stats, bar *ui.CrawlBar) *Crawler {
	return &Crawler{
		pages:  pages,
		images: images,
		log:    log,
		stats:  stats,
		bar:    bar,
		Root:   config.OutputRoot,
	}
}

// Run walks pages starting at startURL until no continue link remains, the
// hop ceiling is reached, or a page fails. Progress is persisted after
// every page; one final save and the run summary are written on every exit
// path. The returned session reflects everything persisted so far.
func (c *Crawler) Run(ctx context.Context, startURL string) (*session.Session, error) {
	sess := session.New(startURL, c.Root, c.log)

	defer func() {
		sess.Save()
		if err := sess.WriteSummary(c.stats.TotalImages.Load(), c.stats.TotalBytes.Load()); err != nil {
			c.log.Errorf("write run summary: %v\n", err)
		}
	}()

	target := startURL
	for hop := 0; ; hop++ {
		if hop >= config.MaxHops {
			c.log.Warnf("hop ceiling (%d) reached, stopping at %s\n", config.MaxHops, target)
			return sess, nil
		}

		next, ok, err := c.processPage(ctx, sess, target, hop == 0)
		if err != nil {
			c.log.Errorf("page %s failed: %v\n", target, err)
			return sess, err
		}
		if !ok {
			c.log.Infof("no continue link on %s, crawl complete\n", target)
			return sess, nil
		}
		target = next
	}
}

// processPage handles one hop. It returns the resolved next target when a
// continue link exists. Any returned error is page-level fatal: the loop
// stops without retrying.
func (c *Crawler) processPage(ctx context.Context, sess *session.Session, target string, first bool) (next string, cont bool, err error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	// Navigating.
	if err := c.pages.Navigate(target, config.NavigationTimeout); err != nil {
		return "", false, fmt.Errorf("navigate: %w", err)
	}
	if title, err := c.pages.Title(); err == nil && config.IsChallengeTitle(title) {
		c.log.Infof("challenge page detected at %s, waiting up to %s\n", target, config.ChallengeWait)
		c.pages.AwaitNavigation(target, config.ChallengeWait)
	}

	// Extracting. The navigated URL may differ from the requested one.
	current, err := c.pages.Location()
	if err != nil || current == "" {
		current = target
	}

	html, err := c.pages.HTML()
	if err != nil {
		return "", false, fmt.Errorf("read page html: %w", err)
	}
	doc, err := extract.Parse(html)
	if err != nil {
		return "", false, fmt.Errorf("parse page html: %w", err)
	}

	pageNum := extract.PageNumber(current)

	src, caption, imgOK := extract.Image(doc)
	if !imgOK {
		caption = config.DefaultTitle
		c.log.Warnf("no image found on page %s (%s)\n", pageNum, current)
		sess.Save()
	}

	desc, descOK := extract.Description(doc)
	if !descOK {
		desc = config.DefaultDescription
		c.log.Warnf("no description found on page %s (%s)\n", pageNum, current)
		sess.Save()
	}

	// Page 1 names the output directory after the sanitized caption.
	if first {
		if err := sess.Setup(caption); err != nil {
			return "", false, err
		}
	}

	rec := session.PageRecord{
		PageNumber:  pageNum,
		PageURL:     current,
		Description: desc,
	}

	// Downloading.
	if imgOK && sess.Ready() {
		imageURL := extract.Resolve(current, src)
		rec.ImageURL = imageURL

		if name, seen := sess.FilenameFor(imageURL); seen {
			rec.ImageFilename = name
			rec.ImageNewlyDownloaded = false
			c.log.Debugf("image %s already fetched as %s\n", imageURL, name)
		} else {
			name := namer.Derive(caption, pageNum) + extract.Extension(imageURL)
			dctx, cancel := context.WithTimeout(ctx, config.DownloadTimeout)
			n, err := c.images.Fetch(dctx, imageURL, filepath.Join(sess.PicsDir, name))
			cancel()
			if err != nil {
				return "", false, fmt.Errorf("download image: %w", err)
			}
			sess.RememberFetch(imageURL, name)
			rec.ImageFilename = name
			rec.ImageNewlyDownloaded = true
			c.stats.TotalImages.Add(1)
			c.stats.TotalBytes.Add(n)
		}
	} else if imgOK {
		c.log.Warnf("skipping image on page %s: output directory not established\n", pageNum)
		sess.Save()
	}

	// The record is appended regardless of partial failures above so the
	// viewer always renders every visited page.
	sess.Append(rec)
	sess.Save()
	c.stats.TotalPages.Add(1)
	if c.bar != nil {
		c.bar.Update(c.stats.TotalPages.Load(), c.stats.TotalImages.Load(), c.stats.TotalBytes.Load())
	}

	// Continuing.
	href, ok := extract.ContinueHref(doc)
	if !ok {
		return "", false, nil
	}
	return extract.Resolve(current, href), true, nil
}
