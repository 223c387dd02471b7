package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// Write splits content into chunks and stores each with a copy of metadata
// plus its chunk_index. Empty content writes nothing and is not an error.
// Chunks are written independently, one store call each; a failure mid
// sequence leaves the prior chunks persisted and returns their count with
// the error.
//
// Metadata must carry a source; transcripts additionally require video_url
// so retrieval hits can cite their origin.
func Write(ctx context.Context, db *DB, content string, metadata map[string]any) (int, error) {
	if content == "" {
		return 0, nil
	}
	if err := validateMetadata(metadata); err != nil {
		return 0, err
	}

	sp := NewSplitter(engine.Cfg.ChunkSize, engine.Cfg.ChunkOverlap)
	chunks := sp.Split(content)

	written := 0
	for i, chunk := range chunks {
		meta := make(map[string]any, len(metadata)+1)
		for k, v := range metadata {
			meta[k] = v
		}
		meta["chunk_index"] = i

		if err := db.AddTexts(ctx, []string{chunk}, []map[string]any{meta}); err != nil {
			engine.AddChunksWritten(written)
			return written, fmt.Errorf("store chunk %d: %w", i, err)
		}
		written++
	}
	engine.AddChunksWritten(written)
	slog.Debug("stored document", slog.Int("chunks", written))
	return written, nil
}

func validateMetadata(metadata map[string]any) error {
	src, _ := metadata["source"].(string)
	if src == "" {
		return fmt.Errorf("metadata requires a source")
	}
	if dt, _ := metadata["document_type"].(string); dt == "transcript" {
		if u, _ := metadata["video_url"].(string); u == "" {
			return fmt.Errorf("transcript metadata requires video_url")
		}
	}
	return nil
}
