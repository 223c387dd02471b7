// Package ingest drives the transcript pipeline for a batch of resolved
// video references: acquire a transcript per video (cached, fetched, or
// generated), then chunk and store it.
package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/store"
	"github.com/anatolykoptev/go_tube/internal/engine/video"
)

// Result summarizes one ingestion batch by reference: every attempted
// reference lands in either Stored or Failed. The batch itself always runs
// to completion.
type Result struct {
	Attempted []string `json:"attempted"`
	Stored    []string `json:"stored,omitempty"`
	Failed    []string `json:"failed,omitempty"`
	Summary   string   `json:"summary"`
}

// stubbed in tests
var (
	acquire    = video.Acquire
	writeStore = store.Write
)

// Run ingests every reference in refs into db. Per-video failures are
// recorded and skipped, never fatal. Requests to the video platform are
// paced by the configured ingest delay.
func Run(ctx context.Context, refs []string, db *store.DB) (Result, error) {
	engine.IncrIngestBatches()

	res := Result{Attempted: append([]string(nil), refs...)}

	var limiter *rate.Limiter
	if d := engine.Cfg.IngestDelay; d > 0 {
		limiter = rate.NewLimiter(rate.Every(d), 1)
	}

	for _, ref := range refs {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return res, err
			}
		}

		text, cached := engine.TranscriptCacheGet(ctx, ref)
		var info *video.GeneratedTranscript
		if !cached {
			acq := acquire(ctx, ref)
			if !acq.OK() {
				slog.Warn("ingest: no transcript", slog.String("url", ref), slog.String("reason", acq.Reason))
				res.Failed = append(res.Failed, ref)
				continue
			}
			text = acq.Text
			info = acq.Info
			engine.TranscriptCacheSet(ctx, ref, text)
		}

		metadata := map[string]any{
			"source":        "YouTube",
			"video_url":     ref,
			"document_type": "transcript",
		}
		if info != nil {
			if info.VideoID != "" {
				metadata["video_id"] = info.VideoID
			}
			if info.Title != "" {
				metadata["title"] = info.Title
			}
			if info.UploadDate != "" {
				metadata["upload_date"] = info.UploadDate
			}
		}

		n, err := writeStore(ctx, db, text, metadata)
		if err != nil {
			slog.Warn("ingest: store failed", slog.String("url", ref), slog.Any("error", err))
			res.Failed = append(res.Failed, ref)
			continue
		}
		slog.Info("ingest: stored transcript", slog.String("url", ref), slog.Int("chunks", n))
		res.Stored = append(res.Stored, ref)
	}

	res.Summary = fmt.Sprintf("Transcripts created and stored for %d videos.", len(res.Stored))
	return res, nil
}
