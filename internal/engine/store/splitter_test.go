package store

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitShortText(t *testing.T) {
	sp := NewSplitter(1500, 300)
	chunks := sp.Split("short text")
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Fatalf("chunks = %v", chunks)
	}
}

func TestSplitEmpty(t *testing.T) {
	sp := NewSplitter(1500, 300)
	if chunks := sp.Split(""); chunks != nil {
		t.Fatalf("chunks = %v, want nil", chunks)
	}
}

func TestSplitChunkCount(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		textLen int
	}{
		{"default sizes", 1500, 300, 10000},
		{"small windows", 100, 20, 1000},
		{"exact multiple", 100, 20, 420},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Repeat("word ", tt.textLen/5)[:tt.textLen]
			sp := NewSplitter(tt.size, tt.overlap)
			chunks := sp.Split(text)

			step := tt.size - tt.overlap
			want := (tt.textLen - tt.overlap + step - 1) / step
			if len(chunks) != want {
				t.Errorf("got %d chunks, want %d", len(chunks), want)
			}
			for i, c := range chunks {
				if len(c) == 0 {
					t.Errorf("chunk %d is empty", i)
				}
				if len(c) > tt.size {
					t.Errorf("chunk %d has %d bytes, max %d", i, len(c), tt.size)
				}
			}
		})
	}
}

func TestSplitPrefersParagraphBoundary(t *testing.T) {
	para := strings.Repeat("a", 90)
	text := para + "\n\n" + strings.Repeat("b", 200)
	sp := NewSplitter(100, 20)
	chunks := sp.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], "\n\n") {
		t.Errorf("first chunk should end at paragraph break, got %q tail", chunks[0][len(chunks[0])-5:])
	}
}

func TestSplitMultibyteRuneBoundaries(t *testing.T) {
	// No spaces or newlines, so every window ends on a hard cut inside
	// three-byte runes.
	text := strings.Repeat("動画の文字起こしを検索します。", 40)
	sp := NewSplitter(100, 20)
	chunks := sp.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks", len(chunks))
	}
	for i, c := range chunks {
		if !utf8.ValidString(c) {
			t.Errorf("chunk %d is not valid UTF-8: %q", i, c)
		}
		if len(c) == 0 || len(c) > sp.ChunkSize {
			t.Errorf("chunk %d has %d bytes, max %d", i, len(c), sp.ChunkSize)
		}
	}
}

func TestSplitOverlapClamped(t *testing.T) {
	sp := NewSplitter(100, 100)
	if sp.Overlap >= sp.ChunkSize {
		t.Fatalf("overlap %d not clamped below size %d", sp.Overlap, sp.ChunkSize)
	}
	// must terminate
	chunks := sp.Split(strings.Repeat("x", 500))
	if len(chunks) == 0 {
		t.Fatal("no chunks")
	}
}
