// Package tubeserver registers the video question answering tools on an MCP
// server: conversation (ask, reset_conversation), ingestion (ingest_videos,
// store_document), retrieval (retrieve_context), and answer scoring
// (evaluate_answer).
package tubeserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers every tool on the given MCP server.
func RegisterTools(server *mcp.Server) {
	registerAsk(server)
	registerResetConversation(server)
	registerIngestVideos(server)
	registerRetrieveContext(server)
	registerStoreDocument(server)
	registerEvaluateAnswer(server)
}
