package store

import (
	"strings"
	"unicode/utf8"
)

// Splitter cuts long text into overlapping chunks, preferring to break at
// paragraph, line, sentence, or word boundaries near the window end.
type Splitter struct {
	ChunkSize int
	Overlap   int
}

// NewSplitter builds a splitter with the given size and overlap.
// Zero values take the defaults (1500/300); an overlap at or above the
// chunk size is clamped to size/4 so the window always advances.
func NewSplitter(chunkSize, overlap int) Splitter {
	if chunkSize <= 0 {
		chunkSize = 1500
	}
	if overlap <= 0 {
		overlap = 300
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	return Splitter{ChunkSize: chunkSize, Overlap: overlap}
}

// boundary separators in preference order
var separators = []string{"\n\n", "\n", ". ", " "}

// Split cuts text into chunks of at most ChunkSize bytes where consecutive
// chunks overlap. The cut point snaps backward to the nearest separator
// within Overlap/2 of the window end; the window itself always advances by
// ChunkSize-Overlap so no text is skipped. Chunk edges never split a
// multibyte rune.
func (sp Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= sp.ChunkSize {
		return []string{text}
	}

	step := sp.ChunkSize - sp.Overlap
	var chunks []string
	for start := 0; start < len(text); start += step {
		s := runeStartAfter(text, start)
		if s >= len(text) {
			break
		}
		end := start + sp.ChunkSize
		if end >= len(text) {
			chunks = append(chunks, text[s:])
			break
		}
		cut := sp.snapBoundary(text, s, end)
		if cut == end {
			// hard cut, pull back to a rune boundary
			cut = runeStartBefore(text, cut)
		}
		chunks = append(chunks, text[s:cut])
	}
	return chunks
}

// runeStartAfter advances i to the nearest rune start at or after it. The
// skipped continuation bytes belong to a rune already covered by the
// previous chunk's overlap.
func runeStartAfter(text string, i int) int {
	for i < len(text) && !utf8.RuneStart(text[i]) {
		i++
	}
	return i
}

// runeStartBefore pulls i back to the nearest rune start at or before it.
func runeStartBefore(text string, i int) int {
	for i > 0 && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}

// snapBoundary looks backward from end for the best separator within
// Overlap/2 bytes, returning end unchanged when none is found.
func (sp Splitter) snapBoundary(text string, start, end int) int {
	lookback := sp.Overlap / 2
	floor := end - lookback
	if floor < start+1 {
		floor = start + 1
	}
	for _, sep := range separators {
		if idx := strings.LastIndex(text[floor:end], sep); idx >= 0 {
			return floor + idx + len(sep)
		}
	}
	return end
}
