// Package session owns the state accumulated over one crawl: the output
// directory layout, the ordered page records, and the image dedupe map.
// The session is mutated only by the crawl loop; no locking is needed.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/piggiedev/miloscrap/internal/config"
	"github.com/piggiedev/miloscrap/internal/namer"
	"github.com/piggiedev/miloscrap/internal/ui"
)

// PageRecord is one crawled page. Records are appended in navigation
// order, which is not necessarily numeric page-number order.
type PageRecord struct {
	PageNumber           string `json:"pageNumber"`
	PageURL              string `json:"pageUrl"`
	Description          string `json:"description"`
	ImageURL             string `json:"imageUrl"`
	ImageFilename        string `json:"imageFilename"`
	ImageNewlyDownloaded bool   `json:"imageNewlyDownloaded"`
}

type Session struct {
	Title    string
	StartURL string
	Started  time.Time

	Dir          string
	PicsDir      string
	MetadataPath string
	ViewerPath   string
	SummaryPath  string

	Pages []PageRecord

	root    string
	fetched map[string]string // image URL -> local filename, one fetch per URL per run
	log     *ui.Logger
}

// New creates an empty session rooted at root (normally
// config.OutputRoot). Directory setup is deferred to Setup, which runs
// once page 1's title is known.
func New(startURL, root string, log *ui.Logger) *Session {
	return &Session{
		StartURL: startURL,
		Started:  time.Now(),
		Pages:    []PageRecord{},
		root:     root,
		fetched:  make(map[string]string),
		log:      log,
	}
}

// Ready reports whether directory setup has run. Saves before that point
// are no-ops.
func (s *Session) Ready() bool {
	return s.MetadataPath != ""
}

// Setup names and creates the output directory from the page-1 title and
// fixes the metadata, viewer and summary paths. A directory name already
// taken on disk is made unique by suffixing the current unix timestamp.
// Paths never change once set.
func (s *Session) Setup(title string) error {
	s.Title = namer.Sanitize(title)
	if s.Title == "" {
		s.Title = "tease"
	}

	dir := filepath.Join(s.root, s.Title)
	if _, err := os.Stat(dir); err == nil {
		dir = dir + "_" + strconv.FormatInt(time.Now().Unix(), 10)
	}

	picsDir := filepath.Join(dir, config.PicsDirName)
	if err := os.MkdirAll(picsDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	s.Dir = dir
	s.PicsDir = picsDir
	s.MetadataPath = filepath.Join(dir, config.MetadataFileName)
	s.ViewerPath = filepath.Join(dir, config.ViewerFileName)
	s.SummaryPath = filepath.Join(dir, config.SummaryFileName)

	s.log.Infof("saving to %s\n", dir)
	return nil
}

// Append adds one record in crawl order.
func (s *Session) Append(rec PageRecord) {
	s.Pages = append(s.Pages, rec)
}

// FilenameFor returns the filename recorded for an image URL fetched
// earlier in this run.
func (s *Session) FilenameFor(imageURL string) (string, bool) {
	name, ok := s.fetched[imageURL]
	return name, ok
}

// RememberFetch records that imageURL was downloaded to name, so later
// pages referencing the same URL reuse the file instead of refetching.
func (s *Session) RememberFetch(imageURL, name string) {
	s.fetched[imageURL] = name
}
