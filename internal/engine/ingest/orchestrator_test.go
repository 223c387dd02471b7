package ingest

import (
	"context"
	"reflect"
	"testing"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/store"
	"github.com/anatolykoptev/go_tube/internal/engine/video"
)

func TestRunAbsorbsPerVideoFailures(t *testing.T) {
	saved := *engine.Cfg
	defer engine.Init(saved)
	engine.Init(engine.Config{}) // zero ingest delay, no limiter

	origAcquire, origWrite := acquire, writeStore
	defer func() { acquire, writeStore = origAcquire, origWrite }()

	acquire = func(ctx context.Context, rawURL string) video.Acquisition {
		if rawURL == "https://www.youtube.com/watch?v=badbadbadba" {
			return video.Acquisition{Source: video.SourceNone, Reason: "no transcript available"}
		}
		return video.Acquisition{Text: "00:00--00:30: hello\n", Source: video.SourceFetched}
	}

	var written []map[string]any
	writeStore = func(ctx context.Context, db *store.DB, content string, metadata map[string]any) (int, error) {
		written = append(written, metadata)
		return 3, nil
	}

	refs := []string{
		"https://www.youtube.com/watch?v=aaaaaaaaaaa",
		"https://www.youtube.com/watch?v=badbadbadba",
		"https://www.youtube.com/watch?v=bbbbbbbbbbb",
	}
	res, err := Run(context.Background(), refs, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if !reflect.DeepEqual(res.Attempted, refs) {
		t.Errorf("attempted = %v, want %v", res.Attempted, refs)
	}
	wantStored := []string{
		"https://www.youtube.com/watch?v=aaaaaaaaaaa",
		"https://www.youtube.com/watch?v=bbbbbbbbbbb",
	}
	if !reflect.DeepEqual(res.Stored, wantStored) {
		t.Errorf("stored = %v, want %v", res.Stored, wantStored)
	}
	if len(res.Failed) != 1 || res.Failed[0] != "https://www.youtube.com/watch?v=badbadbadba" {
		t.Errorf("failed = %v", res.Failed)
	}
	if len(res.Stored)+len(res.Failed) != len(res.Attempted) {
		t.Errorf("every attempted reference must land in stored or failed: %+v", res)
	}
	if res.Summary != "Transcripts created and stored for 2 videos." {
		t.Errorf("summary = %q", res.Summary)
	}

	for _, meta := range written {
		if meta["source"] != "YouTube" {
			t.Errorf("source = %v", meta["source"])
		}
		if meta["document_type"] != "transcript" {
			t.Errorf("document_type = %v", meta["document_type"])
		}
		if u, _ := meta["video_url"].(string); u == "" {
			t.Error("video_url missing from transcript metadata")
		}
	}
}

func TestRunStoreFailureCountsAsFailed(t *testing.T) {
	saved := *engine.Cfg
	defer engine.Init(saved)
	engine.Init(engine.Config{})

	origAcquire, origWrite := acquire, writeStore
	defer func() { acquire, writeStore = origAcquire, origWrite }()

	acquire = func(ctx context.Context, rawURL string) video.Acquisition {
		return video.Acquisition{Text: "text", Source: video.SourceFetched}
	}
	writeStore = func(ctx context.Context, db *store.DB, content string, metadata map[string]any) (int, error) {
		return 0, context.DeadlineExceeded
	}

	res, err := Run(context.Background(), []string{"https://www.youtube.com/watch?v=aaaaaaaaaaa"}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Stored) != 0 || len(res.Failed) != 1 {
		t.Errorf("stored = %v, failed = %v", res.Stored, res.Failed)
	}
}

func TestRunEmptyBatch(t *testing.T) {
	saved := *engine.Cfg
	defer engine.Init(saved)
	engine.Init(engine.Config{})

	res, err := Run(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Attempted) != 0 || len(res.Stored) != 0 {
		t.Errorf("res = %+v", res)
	}
	if res.Summary != "Transcripts created and stored for 0 videos." {
		t.Errorf("summary = %q", res.Summary)
	}
}
