package store

import (
	"context"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// expandQueries is stubbed in tests.
var expandQueries = engine.ExpandRetrievalQueries

// Retrieve answers a query from the chunk store. The query is expanded into
// alternative phrasings, each runs a similarity search, results merge with
// duplicates dropped, and anything scoring below threshold is filtered out.
// Documents without a score pass the filter. Returns the surviving chunk
// texts joined by blank lines; empty string means nothing relevant.
func Retrieve(ctx context.Context, db *DB, query string, threshold float64) (string, error) {
	engine.IncrRetrievalRequests()

	queries := []string{query}
	if n := engine.Cfg.QueryRewrites; n > 0 {
		rewrites, err := expandQueries(ctx, query, n)
		if err != nil {
			slog.Warn("query expansion failed, using original query only", slog.Any("error", err))
		} else {
			queries = append(queries, rewrites...)
		}
	}

	topK := engine.Cfg.RetrievalTopK
	if topK <= 0 {
		topK = 5
	}

	seen := make(map[string]bool)
	var parts []string
	for _, q := range queries {
		results, err := db.Search(ctx, q, topK)
		if err != nil {
			return "", err
		}
		for _, r := range results {
			if r.HasScore && r.Score < threshold {
				continue
			}
			if seen[r.Content] {
				continue
			}
			seen[r.Content] = true
			parts = append(parts, r.Content)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}
