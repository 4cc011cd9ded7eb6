package gapserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/anatolykoptev/gapsight/internal/engine"
	"github.com/anatolykoptev/gapsight/internal/engine/gaps"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TrendsOutput is the output of pain_point_trends.
type TrendsOutput struct {
	Days   int                  `json:"days"`
	Trends []gaps.CategoryTrend `json:"trends"`
}

func registerPainPointTrends(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "pain_point_trends",
		Description: "Aggregate pain-point categories across persisted analyses over a trailing window. Requires the Postgres archive (DATABASE_URL); returns per-category analysis counts, total mentions, and average severity.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.TrendsInput) (*mcp.CallToolResult, TrendsOutput, error) {
		archive := gaps.GetArchive()
		if archive == nil {
			return nil, TrendsOutput{}, errors.New("trends require the Postgres archive; set DATABASE_URL")
		}

		days := input.Days
		if days <= 0 {
			days = 30
		}
		if days > 365 {
			days = 365
		}

		trends, err := archive.CategoryTrends(ctx, days)
		if err != nil {
			return nil, TrendsOutput{}, fmt.Errorf("category trends: %w", err)
		}
		return nil, TrendsOutput{Days: days, Trends: trends}, nil
	})
}
