package viewer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateEmptyPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.html")

	for _, pagesJSON := range [][]byte{nil, []byte("null"), []byte("[]")} {
		if err := Generate(path, "Empty Tease", pagesJSON); err != nil {
			t.Fatalf("Generate(%q): %v", pagesJSON, err)
		}

		html, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read viewer: %v", err)
		}
		doc := string(html)

		if !strings.Contains(doc, "const pages = [];") {
			t.Errorf("embedded data for %q should be an empty array", pagesJSON)
		}
		if !strings.Contains(doc, "no images") {
			t.Error("missing no-images placeholder")
		}
	}
}

func TestGenerateEmbedsPagesAndTitle(t *testing.T) {
	records := []map[string]any{
		{"pageNumber": "1", "description": "first", "imageFilename": "first_1.jpg"},
		{"pageNumber": "2", "description": "second", "imageFilename": "second_2.jpg"},
	}
	pagesJSON, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "viewer.html")
	if err := Generate(path, "my_tease", pagesJSON); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	html, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc := string(html)

	for _, want := range []string{
		"<title>my_tease</title>",
		`"imageFilename": "first_1.jpg"`,
		`"description": "second"`,
		"location.hash",
		"requestFullscreen",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("viewer missing %q", want)
		}
	}
}

func TestGenerateOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.html")

	if err := Generate(path, "one", []byte(`[{"pageNumber":"1"}]`)); err != nil {
		t.Fatal(err)
	}
	if err := Generate(path, "two", []byte("[]")); err != nil {
		t.Fatal(err)
	}

	html, _ := os.ReadFile(path)
	if strings.Contains(string(html), `"pageNumber":"1"`) {
		t.Error("second Generate did not overwrite the first document")
	}
	if !strings.Contains(string(html), "<title>two</title>") {
		t.Error("title not updated on overwrite")
	}
}
