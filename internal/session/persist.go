package session

import (
	"encoding/json"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/piggiedev/miloscrap/internal/viewer"
)

// Save writes the page records as pretty-printed JSON to the metadata file
// and regenerates the viewer from the same bytes. It is idempotent and
// called after every page and on every recoverable error, so a killed run
// still leaves consistent files behind. Before Setup has run it only logs
// a warning. Write failures are logged, never escalated: persistence must
// not abort the crawl.
func (s *Session) Save() {
	if !s.Ready() {
		s.log.Warnf("progress save skipped: output directory not established yet\n")
		return
	}

	data, err := json.MarshalIndent(s.Pages, "", "  ")
	if err != nil {
		s.log.Errorf("marshal page records: %v\n", err)
		return
	}

	if err := os.WriteFile(s.MetadataPath, data, 0644); err != nil {
		s.log.Errorf("write %s: %v\n", s.MetadataPath, err)
	}

	if err := viewer.Generate(s.ViewerPath, s.Title, data); err != nil {
		s.log.Errorf("regenerate viewer: %v\n", err)
	}
}

// Summary is the run report written next to the metadata file when the
// crawl terminates.
type Summary struct {
	Title            string    `yaml:"title"`
	StartURL         string    `yaml:"start_url"`
	Pages            int       `yaml:"pages"`
	ImagesDownloaded int       `yaml:"images_downloaded"`
	BytesDownloaded  int64     `yaml:"bytes_downloaded"`
	Started          time.Time `yaml:"started"`
	Finished         time.Time `yaml:"finished"`
}

// WriteSummary persists the final run summary as YAML.
func (s *Session) WriteSummary(images int64, bytes int64) error {
	if !s.Ready() {
		return nil
	}

	sum := Summary{
		Title:            s.Title,
		StartURL:         s.StartURL,
		Pages:            len(s.Pages),
		ImagesDownloaded: int(images),
		BytesDownloaded:  bytes,
		Started:          s.Started,
		Finished:         time.Now(),
	}

	data, err := yaml.Marshal(sum)
	if err != nil {
		return err
	}
	return os.WriteFile(s.SummaryPath, data, 0644)
}
