package tubeserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerStoreDocument(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "store_document",
		Description: "Chunk a text document and store it for retrieval. Metadata must include a source; documents of type transcript also need video_url.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.StoreDocumentInput) (*mcp.CallToolResult, engine.StoreDocumentOutput, error) {
		if input.Content == "" {
			return nil, engine.StoreDocumentOutput{}, fmt.Errorf("content is required")
		}
		n, err := store.Write(ctx, store.GetDB(), input.Content, input.Metadata)
		if err != nil {
			return nil, engine.StoreDocumentOutput{}, err
		}
		return nil, engine.StoreDocumentOutput{Chunks: n}, nil
	})
}
