// Package answer turns ranked passages into the citation-bearing context
// block, the templated answer text, and the source list for API responses.
package answer

import (
	"fmt"
	"strings"

	"medrag/internal/domain"
)

// Delimiter separates passages inside the formatted context block.
const Delimiter = "\n\n---\n\n"

// maxCited caps how many passages the answer template cites inline.
const maxCited = 2

// Citation is one source reference exposed to API callers.
type Citation struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	ChunkID int    `json:"chunk_id"`
}

// FormatContext renders the ordered passages into one textual block: each as
// its markdown title link followed by the raw passage text, in input order.
// Individual passages are never truncated; callers bound size via k.
func FormatContext(passages []domain.Passage) string {
	parts := make([]string, len(passages))
	for i, p := range passages {
		parts[i] = fmt.Sprintf("[%s](%s) :: %s", title(p), p.Source, p.Text)
	}
	return strings.Join(parts, Delimiter)
}

// Synthesize composes a templated answer citing the top passages. This is a
// placeholder for generation: it gives general guidance and always carries a
// Sources line so the reader can verify against the originals.
func Synthesize(query string, passages []domain.Passage) string {
	var cites []string
	for i, p := range passages {
		if i >= maxCited {
			break
		}
		if p.Source != "" {
			cites = append(cites, fmt.Sprintf("[%s](%s)", title(p), p.Source))
		} else {
			cites = append(cites, title(p))
		}
	}
	srcLine := "Sources: N/A"
	if len(cites) > 0 {
		srcLine = "Sources: " + strings.Join(cites, ", ")
	}
	body := "Here’s what reputable sources say in general terms:\n" +
		"- Summarize key symptoms/causes and when to seek care.\n" +
		"- Provide simple, actionable self-care tips where appropriate.\n" +
		"- Avoid diagnosis; encourage professional guidance if symptoms persist or worsen.\n"
	return body + srcLine
}

// Citations returns the first max passages as source records.
func Citations(passages []domain.Passage, max int) []Citation {
	if max > len(passages) {
		max = len(passages)
	}
	if max < 0 {
		max = 0
	}
	out := make([]Citation, max)
	for i := 0; i < max; i++ {
		p := passages[i]
		out[i] = Citation{Title: title(p), URL: p.Source, ChunkID: p.ChunkID}
	}
	return out
}

// Passages strips scores off ranked results for formatting and citation.
func Passages(scored []domain.ScoredPassage) []domain.Passage {
	out := make([]domain.Passage, len(scored))
	for i, sp := range scored {
		out[i] = sp.Passage
	}
	return out
}

func title(p domain.Passage) string {
	if p.Title == "" {
		return "Source"
	}
	return p.Title
}
