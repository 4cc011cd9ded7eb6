package gapserver

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/anatolykoptev/gapsight/internal/engine"
	"github.com/anatolykoptev/gapsight/internal/engine/gaps"
	"github.com/anatolykoptev/gapsight/internal/engine/sources"
	"github.com/anatolykoptev/gapsight/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTwitterPainPoints(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "twitter_pain_points",
		Description: "Mine Twitter/X posts about a topic for pain points. Searches recent posts (adding feedback terms to the query when it has none), runs the same lexicon analysis as pain_point_analysis, and persists the report to history. Requires configured Twitter accounts.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.TwitterAnalyzeInput) (*mcp.CallToolResult, gaps.Report, error) {
		if input.Query == "" {
			return nil, gaps.Report{}, errors.New("query is required")
		}

		cacheKey := engine.CacheKey("twitter_pain_points", input.Query,
			strconv.Itoa(input.MaxPosts), strconv.FormatBool(input.WithInsights))
		if out, ok := toolutil.CacheLoadJSON[gaps.Report](ctx, cacheKey); ok {
			return nil, out, nil
		}

		posts, err := sources.FetchTwitterPosts(ctx, input.Query, input.MaxPosts)
		if err != nil {
			return nil, gaps.Report{}, err
		}

		report := gaps.BuildReport("twitter", input.Query, "", nil, posts, false)

		if input.WithInsights {
			gaps.EnrichReport(ctx, &report)
		}

		id, err := gaps.SaveAnalysis(ctx, report)
		if err != nil {
			slog.Warn("twitter: history save failed", slog.Any("err", err))
		} else {
			report.ID = id
		}

		toolutil.CacheStoreJSON(ctx, cacheKey, report)
		return nil, report, nil
	})
}
