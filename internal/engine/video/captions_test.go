package video

import (
	"strings"
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url extra params", "https://www.youtube.com/watch?list=PLx&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short url with query", "https://youtu.be/dQw4w9WgXcQ?t=42", "dQw4w9WgXcQ"},
		{"not youtube", "https://vimeo.com/12345", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractVideoID(tt.input); got != tt.want {
				t.Errorf("extractVideoID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPickBestTrack(t *testing.T) {
	manual := captionTrack{BaseURL: "https://x/manual", LanguageCode: "en"}
	asr := captionTrack{BaseURL: "https://x/asr", LanguageCode: "en", Kind: "asr"}
	de := captionTrack{BaseURL: "https://x/de", LanguageCode: "de"}
	poToken := captionTrack{BaseURL: "https://x/pot&exp=xpe", LanguageCode: "en"}

	tests := []struct {
		name    string
		tracks  []captionTrack
		langs   []string
		wantURL string
		wantOK  bool
	}{
		{"manual preferred over asr", []captionTrack{asr, manual}, []string{"en"}, "https://x/manual", true},
		{"asr when no manual", []captionTrack{asr}, []string{"en"}, "https://x/asr", true},
		{"english fallback", []captionTrack{de, asr}, []string{"fr"}, "https://x/asr", true},
		{"potoken track skipped", []captionTrack{poToken}, []string{"en"}, "", false},
		{"no tracks", nil, []string{"en"}, "", false},
		{"no match at all", []captionTrack{de}, []string{"fr"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pickBestTrack(tt.tracks, tt.langs)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.BaseURL != tt.wantURL {
				t.Errorf("url = %q, want %q", got.BaseURL, tt.wantURL)
			}
		})
	}
}

func TestFormatWindows(t *testing.T) {
	tt := &timedText{Lines: []timedLine{
		{Start: 0.5, Dur: 3, Text: "hello"},
		{Start: 5, Dur: 3, Text: "world"},
		{Start: 31, Dur: 2, Text: "second window"},
		{Start: 65, Dur: 2, Text: "third window"},
	}}

	got := formatWindows(tt, 30)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d windows, want 3:\n%s", len(lines), got)
	}
	want := []string{
		"00:00--00:30: hello world",
		"00:30--01:00: second window",
		"01:00--01:30: third window",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("window %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestFormatWindowsEscapedText(t *testing.T) {
	tt := &timedText{Lines: []timedLine{
		{Start: 0, Text: "a &amp; b"},
		{Start: 2, Text: "  "},
	}}
	got := formatWindows(tt, 30)
	if got != "00:00--00:30: a & b\n" {
		t.Errorf("got %q", got)
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", `{"a":1};var x`, `{"a":1}`},
		{"nested", `{"a":{"b":2}}trailing`, `{"a":{"b":2}}`},
		{"braces in string", `{"a":"}{"}rest`, `{"a":"}{"}`},
		{"escaped quote", `{"a":"\"}"}x`, `{"a":"\"}"}`},
		{"not an object", `[1,2]`, ""},
		{"unterminated", `{"a":1`, ""},
		{"empty", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(extractJSON([]byte(tt.input)))
			if got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
