package video

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

func TestTranscribeAudio(t *testing.T) {
	var gotBeamSize, gotWordTS string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotBeamSize = r.FormValue("beam_size")
		gotWordTS = r.FormValue("word_timestamps")
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing file part: %v", err)
		}
		json.NewEncoder(w).Encode(whisperResp{
			Text: "hello world",
			Segments: []Segment{
				{Start: 0, End: 1.5, Text: "hello"},
				{Start: 1.5, End: 3, Text: "world"},
			},
		})
	}))
	defer srv.Close()

	saved := *engine.Cfg
	defer engine.Init(saved)
	engine.Init(engine.Config{
		WhisperURL:      srv.URL,
		WhisperModel:    "base",
		WhisperBeamSize: 5,
		HTTPClient:      srv.Client(),
	})

	audioPath := filepath.Join(t.TempDir(), "a.mp3")
	if err := os.WriteFile(audioPath, []byte("fake audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	segments, err := transcribeAudio(context.Background(), audioPath)
	if err != nil {
		t.Fatalf("transcribeAudio: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}
	if segments[0].Text != "hello" || segments[1].Text != "world" {
		t.Errorf("segments = %+v", segments)
	}
	if gotBeamSize != "5" {
		t.Errorf("beam_size = %q, want 5", gotBeamSize)
	}
	if gotWordTS != "true" {
		t.Errorf("word_timestamps = %q, want true", gotWordTS)
	}
}

func TestTranscribeAudioMissingFile(t *testing.T) {
	saved := *engine.Cfg
	defer engine.Init(saved)
	engine.Init(engine.Config{WhisperURL: "http://127.0.0.1:1", HTTPClient: http.DefaultClient})

	if _, err := transcribeAudio(context.Background(), "/nonexistent/audio.mp3"); err == nil {
		t.Fatal("expected error for missing audio file")
	}
}
