// Package ingest fetches trusted medical pages, cleans their HTML, chunks
// the text, and writes the JSONL corpus files the document store consumes.
package ingest

import (
	"html"
	"regexp"
	"strings"
)

// Tags whose entire content is boilerplate, not page text.
var dropTags = []string{"script", "style", "nav", "aside", "header", "footer"}

var (
	blockRes   = compileBlockRes()
	tagRe      = regexp.MustCompile(`(?s)<[^>]*>`)
	spaceRe    = regexp.MustCompile(`[ \t\r\f]+`)
	blankLines = regexp.MustCompile(`\n{2,}`)
)

func compileBlockRes() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(dropTags))
	for i, tag := range dropTags {
		out[i] = regexp.MustCompile(`(?is)<` + tag + `\b[^>]*>.*?</` + tag + `>`)
	}
	return out
}

// Clean strips markup and boilerplate from an HTML page, returning plain
// text with single newlines between lines.
func Clean(src string) string {
	for _, re := range blockRes {
		src = re.ReplaceAllString(src, " ")
	}
	src = tagRe.ReplaceAllString(src, "\n")
	src = html.UnescapeString(src)

	lines := strings.Split(src, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRe.ReplaceAllString(line, " "))
	}
	out := strings.Join(lines, "\n")
	out = blankLines.ReplaceAllString(out, "\n")
	return strings.Trim(out, "\n ")
}
