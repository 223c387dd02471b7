package tubeserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_tube/internal/agent"
	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerEvaluateAnswer(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "evaluate_answer",
		Description: "Score a predicted answer against an expected one by token overlap. Returns the 0..1 score and whether it clears the pass threshold.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.EvaluateInput) (*mcp.CallToolResult, engine.EvaluateOutput, error) {
		if input.Predicted == "" || input.Expected == "" {
			return nil, engine.EvaluateOutput{}, fmt.Errorf("predicted and expected are required")
		}
		threshold := input.Threshold
		if threshold <= 0 {
			threshold = 0.7
		}
		score := agent.TokenOverlapScore(input.Predicted, input.Expected)
		return nil, engine.EvaluateOutput{Score: score, Pass: score >= threshold}, nil
	})
}
