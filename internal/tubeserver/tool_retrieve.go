package tubeserver

import (
	"context"
	"fmt"
	"strconv"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/store"
	"github.com/anatolykoptev/go_tube/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerRetrieveContext(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "retrieve_context",
		Description: "Search stored transcripts for passages relevant to a query. The query is expanded into alternative phrasings, results are merged, deduplicated, and filtered by similarity score. Returns the surviving passages joined by blank lines.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.RetrieveInput) (*mcp.CallToolResult, engine.RetrieveOutput, error) {
		if input.Query == "" {
			return nil, engine.RetrieveOutput{}, fmt.Errorf("query is required")
		}
		threshold := engine.Cfg.SimilarityThreshold
		if input.Threshold != nil {
			threshold = *input.Threshold
		}

		cacheKey := engine.CacheKey("retrieve", input.Query, strconv.FormatFloat(threshold, 'f', -1, 64))
		if out, ok := toolutil.CacheLoadJSON[engine.RetrieveOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		text, err := store.Retrieve(ctx, store.GetDB(), input.Query, threshold)
		if err != nil {
			return nil, engine.RetrieveOutput{}, err
		}

		out := engine.RetrieveOutput{Context: text, Found: text != ""}
		toolutil.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}
