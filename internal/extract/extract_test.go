package extract

import "testing"

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Sample Tease</title></head>
<body>
  <div id="tease_content">
    <img id="tease_pic" src="https://media.example.com/timg/abc123.jpg" alt="My First Tease">
    <p class="text">Welcome to page one.</p>
    <a id="continue" href="showtease.php?id=9&amp;p=2#t">Continue</a>
  </div>
</body>
</html>`

func TestImage(t *testing.T) {
	doc, err := Parse(samplePage)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	src, alt, ok := Image(doc)
	if !ok {
		t.Fatal("expected image")
	}
	if src != "https://media.example.com/timg/abc123.jpg" {
		t.Errorf("src = %q", src)
	}
	if alt != "My First Tease" {
		t.Errorf("alt = %q", alt)
	}
}

func TestImageFallsBackToFirstImg(t *testing.T) {
	doc, _ := Parse(`<html><body><img src="/pics/x.png" alt="x"></body></html>`)
	src, _, ok := Image(doc)
	if !ok || src != "/pics/x.png" {
		t.Errorf("src = %q, ok = %v", src, ok)
	}
}

func TestImageMiss(t *testing.T) {
	for _, html := range []string{
		`<html><body><p class="text">no picture here</p></body></html>`,
		`<html><body><img alt="srcless"></body></html>`,
	} {
		doc, _ := Parse(html)
		if _, _, ok := Image(doc); ok {
			t.Errorf("expected miss for %q", html)
		}
	}
}

func TestDescription(t *testing.T) {
	doc, _ := Parse(samplePage)
	text, ok := Description(doc)
	if !ok || text != "Welcome to page one." {
		t.Errorf("description = %q, ok = %v", text, ok)
	}

	doc, _ = Parse(`<html><body><img src="a.jpg"></body></html>`)
	if _, ok := Description(doc); ok {
		t.Error("expected description miss")
	}
}

func TestContinueHref(t *testing.T) {
	doc, _ := Parse(samplePage)
	href, ok := ContinueHref(doc)
	if !ok || href != "showtease.php?id=9&p=2#t" {
		t.Errorf("href = %q, ok = %v", href, ok)
	}

	doc, _ = Parse(`<html><body><a href="next.html">next</a></body></html>`)
	if _, ok := ContinueHref(doc); ok {
		t.Error("anchor without continue id must not match")
	}
}

func TestPageNumber(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/showtease.php?id=9&p=4", "4"},
		{"https://example.com/showtease.php?id=9", "1"},
		{"://bad url", "1"},
		{"https://example.com/?p=12#t", "12"},
	}
	for _, tt := range tests {
		if got := PageNumber(tt.url); got != tt.want {
			t.Errorf("PageNumber(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	base := "https://example.com/webteases/showtease.php?id=9&p=2"
	tests := []struct {
		href string
		want string
	}{
		{"showtease.php?id=9&p=3", "https://example.com/webteases/showtease.php?id=9&p=3"},
		{"/timg/pic.jpg", "https://example.com/timg/pic.jpg"},
		{"https://cdn.example.net/a.png", "https://cdn.example.net/a.png"},
	}
	for _, tt := range tests {
		if got := Resolve(base, tt.href); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/timg/pic.png", ".png"},
		{"https://example.com/timg/pic.jpg?size=big", ".jpg"},
		{"https://example.com/timg/noext", ".jpg"},
	}
	for _, tt := range tests {
		if got := Extension(tt.url); got != tt.want {
			t.Errorf("Extension(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
