package tubeserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_tube/internal/agent"
	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerAsk(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask a question about previously ingested YouTube videos. The agent searches stored transcripts, may ingest URLs mentioned in the question, and answers with timestamp citations. Conversations keep history; pass conversation_id to continue one.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.AskInput) (*mcp.CallToolResult, engine.AskOutput, error) {
		if input.Question == "" {
			return nil, engine.AskOutput{}, fmt.Errorf("question is required")
		}
		convID := input.ConversationID
		if convID == "" {
			convID = "default"
		}

		answer := agent.GetLoop().Ask(ctx, convID, input.Question)
		return nil, engine.AskOutput{Answer: answer, ConversationID: convID}, nil
	})
}

func registerResetConversation(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "reset_conversation",
		Description: "Clear conversation history. Pass conversation_id to reset one conversation, or nothing to reset all of them.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.ResetInput) (*mcp.CallToolResult, engine.ResetOutput, error) {
		mem := agent.GetLoop().Memory()
		if input.ConversationID != "" {
			mem.Clear(input.ConversationID)
		} else {
			mem.ClearAll()
		}
		return nil, engine.ResetOutput{Status: "Conversation history reset."}, nil
	})
}
