package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/piggiedev/miloscrap/internal/browser"
	"github.com/piggiedev/miloscrap/internal/config"
	"github.com/piggiedev/miloscrap/internal/downloader"
	"github.com/piggiedev/miloscrap/internal/scraper"
	"github.com/piggiedev/miloscrap/internal/ui"
	"github.com/piggiedev/miloscrap/internal/util"
)

var rootCmd = &cobra.Command{
	Use:   "miloscrap <url>",
	Short: "Scrape a paginated tease into a browsable local folder",
	Long: `miloscrap walks a paginated tease starting at the given URL, saving each
page's image and caption under downloads/<title>/ together with a
descriptions.json metadata file and a self-contained viewer.html gallery.
Progress is persisted after every page, so an interrupted run still leaves
a browsable result.`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScrape(cmd *cobra.Command, args []string) error {
	startURL := strings.TrimSpace(args[0])
	u, err := url.Parse(startURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid start URL %q: expected an absolute http(s) URL", startURL)
	}

	// Argument parsing is done; errors past this point are runtime
	// failures, not usage mistakes.
	cmd.SilenceUsage = true

	logSvc := ui.NewLogger(false)
	util.SetupInterruptHandler(config.OutputRoot)

	ua := util.PickUserAgent("")
	client := util.NewDownloadClient(util.HTTPClientOptions{
		Timeout:     config.DownloadTimeout,
		UserAgent:   ua,
		DebugLogger: logSvc,
	})

	ctx := context.Background()

	b, err := browser.Launch(ctx, ua, logSvc)
	if err != nil {
		return err
	}
	defer b.Close()

	pm := ui.NewProgressManager()
	bar := pm.Register("crawl")
	stats := &ui.Stats{}

	cr := scraper.New(b, downloader.New(client, logSvc), logSvc, stats, bar)

	start := time.Now()
	sess, runErr := cr.Run(ctx, startURL)
	bar.MarkDone()
	pm.Close()

	fmt.Println()
	fmt.Println("Crawl Summary:")
	fmt.Printf("Pages:  %d\n", stats.TotalPages.Load())
	fmt.Printf("Images: %d\n", stats.TotalImages.Load())
	fmt.Printf("Data:   %s\n", ui.BytesHuman(stats.TotalBytes.Load()))
	fmt.Printf("Time:   %s\n", time.Since(start).Round(time.Second))
	if sess.Ready() {
		fmt.Printf("Output: %s\n", sess.Dir)
	}

	if runErr != nil {
		return runErr
	}

	fmt.Println("\nAll done.")
	return nil
}
