package tubeserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/ingest"
	"github.com/anatolykoptev/go_tube/internal/engine/store"
	"github.com/anatolykoptev/go_tube/internal/engine/video"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerIngestVideos(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ingest_videos",
		Description: "Ingest YouTube videos into the transcript store. Accepts a single video, playlist, or channel URL, or a list of URLs. Existing captions are fetched where available; otherwise the audio is downloaded and transcribed. Per-video failures are reported, not fatal.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.IngestInput) (*mcp.CallToolResult, engine.IngestOutput, error) {
		inputs := input.URLs
		if input.URL != "" {
			inputs = append([]string{input.URL}, inputs...)
		}
		if len(inputs) == 0 {
			return nil, engine.IngestOutput{}, fmt.Errorf("url or urls is required")
		}

		res := video.Resolve(ctx, inputs)
		out, err := ingest.Run(ctx, res.Refs, store.GetDB())
		if err != nil {
			return nil, engine.IngestOutput{}, err
		}

		// unresolvable inputs count as attempted and failed
		return nil, engine.IngestOutput{
			Attempted: append(append([]string(nil), out.Attempted...), res.Failed...),
			Stored:    out.Stored,
			Failed:    append(append([]string(nil), res.Failed...), out.Failed...),
			Summary:   out.Summary,
		}, nil
	})
}
