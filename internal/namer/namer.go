// Package namer derives short, URL-safe filename stems from page captions
// and sanitizes titles into filesystem-safe tokens.
package namer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/piggiedev/miloscrap/internal/config"
)

// Derive maps a caption and a page number to a filename stem. The page
// number suffix is always appended so filenames stay unique across pages
// even when captions collide or are empty. The result matches
// ^[a-z0-9_]*_<pageNumber>$ and the caption part never exceeds
// config.MaxStemLen characters. Deterministic: identical inputs always
// yield identical output.
func Derive(caption, pageNumber string) string {
	return stem(caption) + "_" + pageNumber
}

func stem(caption string) string {
	cleaned := make([]rune, 0, len(caption))
	for _, r := range strings.ToLower(caption) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			cleaned = append(cleaned, r)
		}
	}

	words := make([]string, 0, config.MaxStemTokens)
	for _, tok := range strings.Fields(string(cleaned)) {
		if len(tok) <= 1 || config.IsStopWord(tok) {
			continue
		}
		words = append(words, tok)
		if len(words) == config.MaxStemTokens {
			break
		}
	}

	joined := strings.Join(words, "_")
	if len(joined) <= config.MaxStemLen {
		return joined
	}

	// Over budget: rebuild token by token, keeping whole tokens while they
	// fit and topping up with a prefix of the first one that does not.
	var b strings.Builder
	for i, w := range words {
		sep := 0
		if i > 0 {
			sep = 1
		}
		if b.Len()+sep+len(w) <= config.MaxStemLen {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteString(w)
			continue
		}
		if remaining := config.MaxStemLen - b.Len() - sep; remaining > 0 {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteString(w[:remaining])
		}
		break
	}
	return b.String()
}

var collapseUnderscores = regexp.MustCompile(`_+`)

// Sanitize lowers a title and reduces it to a filesystem-safe token of
// letters, digits and single underscores. Used for the session output
// directory name.
func Sanitize(s string) string {
	s = strings.ToLower(s)

	repl := []string{
		"•", "_",
		"-", "_",
		"—", "_",
		"–", "_",
		"/", "_",
		"\\", "_",
		".", "_",
		" ", "_",
		"(", "",
		")", "",
	}
	for i := 0; i < len(repl); i += 2 {
		s = strings.ReplaceAll(s, repl[i], repl[i+1])
	}

	clean := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			clean = append(clean, r)
		}
	}
	s = collapseUnderscores.ReplaceAllString(string(clean), "_")

	return strings.Trim(s, "_")
}
