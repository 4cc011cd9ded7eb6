// Package gapserver wires the gap-analysis engine into MCP tools.
package gapserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers all gapsight tools on the given MCP server:
// pain_point_analysis, comment_fetch, video_transcript, gap_compare,
// twitter_pain_points, analysis_history, pain_point_trends.
// Returns the number of tools registered.
func RegisterTools(server *mcp.Server) int {
	registrars := []func(*mcp.Server){
		registerPainPointAnalysis,
		registerCommentFetch,
		registerVideoTranscript,
		registerGapCompare,
		registerTwitterPainPoints,
		registerAnalysisHistory,
		registerPainPointTrends,
	}
	for _, register := range registrars {
		register(server)
	}
	return len(registrars)
}
