package ui

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type ProgressManager struct {
	p *mpb.Progress
}

func NewProgressManager() *ProgressManager {
	p := mpb.New(
		mpb.WithWidth(16),
		mpb.WithOutput(os.Stdout),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	return &ProgressManager{p: p}
}

func (pm *ProgressManager) Close() {
	pm.p.Wait()
}

// Register creates the crawl bar. The page total is unknown up front (the
// crawl ends when no continue link remains), so the bar is a spinner with
// running counters instead of a percentage.
func (pm *ProgressManager) Register(prefix string) *CrawlBar {
	h := &CrawlBar{prefix: prefix}
	h.initBar(pm)
	return h
}

type CrawlBar struct {
	prefix string
	bar    *mpb.Bar

	pages  atomic.Int64
	images atomic.Int64
	bytes  atomic.Int64

	start   time.Time
	elapsed atomic.Int64
	final   atomic.Bool
}

func (h *CrawlBar) initBar(pm *ProgressManager) {
	h.start = time.Now()

	h.bar = pm.p.New(
		0,
		mpb.SpinnerStyle(),

		mpb.PrependDecorators(
			decor.Name(h.prefix+"  "),
		),

		mpb.AppendDecorators(
			decor.Any(func(_ decor.Statistics) string {
				return fmt.Sprintf("%d pages", h.pages.Load())
			}),
			decor.Any(func(_ decor.Statistics) string {
				return fmt.Sprintf(" | %d images", h.images.Load())
			}),
			decor.Any(func(_ decor.Statistics) string {
				return " | " + BytesHuman(h.bytes.Load())
			}),
			decor.Any(func(_ decor.Statistics) string {
				if h.final.Load() {
					return fmt.Sprintf(" | %ds", h.elapsed.Load())
				}
				return fmt.Sprintf(" | %ds", int(time.Since(h.start).Seconds()))
			}),
		),
	)
}

func (h *CrawlBar) Update(pages, images, bytes int64) {
	if h.final.Load() {
		return
	}

	h.pages.Store(pages)
	h.images.Store(images)
	h.bytes.Store(bytes)
	h.bar.SetCurrent(pages)
}

func (h *CrawlBar) MarkDone() {
	if h.final.Swap(true) {
		return
	}

	h.elapsed.Store(int64(time.Since(h.start).Seconds()))
	h.bar.SetTotal(-1, true)
}
