package video

import (
	"context"
	"errors"
	"testing"
)

func TestCleanURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare url", "https://youtube.com/watch?v=abc12345678", "https://youtube.com/watch?v=abc12345678"},
		{"url in prose", "check this out https://youtu.be/abc12345678 please", "https://youtu.be/abc12345678"},
		{"no url", "not a url at all", "not a url at all"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanURL(tt.input); got != tt.want {
				t.Errorf("CleanURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidURL(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"https://www.youtube.com/watch?v=abc12345678", true},
		{"http://localhost:8080/path", true},
		{"https://192.168.1.1/x", true},
		{"ftp://example.com/file", true},
		{"youtube.com/watch?v=abc", false},
		{"https://", false},
		{"not a url", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidURL(tt.input); got != tt.want {
			t.Errorf("ValidURL(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestResolveExpandsPlaylist(t *testing.T) {
	orig := extractFlat
	defer func() { extractFlat = orig }()

	extractFlat = func(ctx context.Context, rawURL string) (*ExtractedInfo, error) {
		return &ExtractedInfo{
			Entries: []ExtractedEntry{
				{ID: "a", URL: "https://www.youtube.com/watch?v=aaaaaaaaaaa"},
				{ID: "b", URL: "https://www.youtube.com/watch?v=bbbbbbbbbbb"},
			},
		}, nil
	}

	res := Resolve(context.Background(), []string{"https://www.youtube.com/playlist?list=PLx"})
	if len(res.Refs) != 2 {
		t.Fatalf("got %d refs, want 2", len(res.Refs))
	}
	if len(res.Failed) != 0 {
		t.Errorf("got %d failed, want 0", len(res.Failed))
	}
}

func TestResolveSingleVideo(t *testing.T) {
	orig := extractFlat
	defer func() { extractFlat = orig }()

	extractFlat = func(ctx context.Context, rawURL string) (*ExtractedInfo, error) {
		return &ExtractedInfo{WebpageURL: "https://www.youtube.com/watch?v=ccccccccccc"}, nil
	}

	res := Resolve(context.Background(), []string{"https://youtu.be/ccccccccccc"})
	if len(res.Refs) != 1 || res.Refs[0] != "https://www.youtube.com/watch?v=ccccccccccc" {
		t.Fatalf("refs = %v", res.Refs)
	}
}

func TestResolveEntriesWithoutURLsFail(t *testing.T) {
	orig := extractFlat
	defer func() { extractFlat = orig }()

	extractFlat = func(ctx context.Context, rawURL string) (*ExtractedInfo, error) {
		return &ExtractedInfo{
			Entries: []ExtractedEntry{{ID: "a"}, {ID: "b"}},
		}, nil
	}

	input := "https://www.youtube.com/playlist?list=PLempty"
	res := Resolve(context.Background(), []string{input})
	if len(res.Refs) != 0 {
		t.Errorf("refs = %v, want none", res.Refs)
	}
	if len(res.Failed) != 1 || res.Failed[0] != input {
		t.Fatalf("failed = %v, want [%q]", res.Failed, input)
	}
}

func TestResolveBadInputDoesNotSinkBatch(t *testing.T) {
	orig := extractFlat
	defer func() { extractFlat = orig }()

	extractFlat = func(ctx context.Context, rawURL string) (*ExtractedInfo, error) {
		if rawURL == "https://example.com/broken" {
			return nil, errors.New("extraction failed")
		}
		return &ExtractedInfo{WebpageURL: rawURL}, nil
	}

	inputs := []string{
		"https://www.youtube.com/watch?v=aaaaaaaaaaa",
		"not a url",
		"https://example.com/broken",
		"https://www.youtube.com/watch?v=bbbbbbbbbbb",
	}
	res := Resolve(context.Background(), inputs)
	if len(res.Refs) != 2 {
		t.Errorf("got %d refs, want 2", len(res.Refs))
	}
	if len(res.Failed) != 2 {
		t.Errorf("got %d failed, want 2: %v", len(res.Failed), res.Failed)
	}
	if len(res.Refs)+len(res.Failed) != len(inputs) {
		t.Errorf("every input must be accounted for: refs=%d failed=%d inputs=%d",
			len(res.Refs), len(res.Failed), len(inputs))
	}
}
