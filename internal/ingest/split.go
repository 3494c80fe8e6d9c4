package ingest

import "strings"

// Default chunking parameters, in characters.
const (
	DefaultChunkSize    = 800
	DefaultChunkOverlap = 120
)

// separators, tried in order: paragraph, line, sentence, word.
var separators = []string{"\n\n", "\n", ". ", " "}

// Split breaks text into chunks of at most size characters with roughly
// overlap characters shared between consecutive chunks. It prefers breaking
// at paragraph boundaries, then lines, sentences, and words, recursing to
// finer separators only when a piece is still too large.
func Split(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
		if overlap >= size {
			overlap = size / 4
		}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	pieces := shatter(text, size, separators)
	return merge(pieces, size, overlap)
}

// shatter recursively splits text until every piece fits in size characters.
func shatter(text string, size int, seps []string) []string {
	if len(text) <= size {
		return []string{text}
	}
	if len(seps) == 0 {
		// No separator left: hard cut.
		var out []string
		for len(text) > size {
			out = append(out, text[:size])
			text = text[size:]
		}
		if text != "" {
			out = append(out, text)
		}
		return out
	}
	sep, rest := seps[0], seps[1:]
	parts := strings.Split(text, sep)
	if len(parts) == 1 {
		return shatter(text, size, rest)
	}
	var out []string
	for i, part := range parts {
		if i < len(parts)-1 {
			part += sep
		}
		if strings.TrimSpace(part) == "" {
			continue
		}
		if len(part) <= size {
			out = append(out, part)
		} else {
			out = append(out, shatter(part, size, rest)...)
		}
	}
	return out
}

// merge greedily packs pieces into chunks up to size characters, seeding each
// new chunk with the trailing pieces of the previous one for overlap.
func merge(pieces []string, size, overlap int) []string {
	var chunks []string
	var buf []string
	bufLen := 0

	flush := func() {
		if bufLen == 0 {
			return
		}
		chunk := strings.TrimSpace(strings.Join(buf, ""))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		// Keep the tail of the buffer as the next chunk's overlap seed.
		var kept []string
		keptLen := 0
		for i := len(buf) - 1; i >= 0; i-- {
			if keptLen+len(buf[i]) > overlap {
				break
			}
			kept = append([]string{buf[i]}, kept...)
			keptLen += len(buf[i])
		}
		buf = kept
		bufLen = keptLen
	}

	for _, piece := range pieces {
		if bufLen > 0 && bufLen+len(piece) > size {
			flush()
			if bufLen > 0 && bufLen+len(piece) > size {
				// Overlap seed plus piece still too large: drop the seed.
				buf, bufLen = nil, 0
			}
		}
		buf = append(buf, piece)
		bufLen += len(piece)
	}
	if bufLen > 0 {
		chunk := strings.TrimSpace(strings.Join(buf, ""))
		if chunk != "" && (len(chunks) == 0 || chunks[len(chunks)-1] != chunk) {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}
