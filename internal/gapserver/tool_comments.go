package gapserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/anatolykoptev/gapsight/internal/engine"
	"github.com/anatolykoptev/gapsight/internal/engine/sources"
	"github.com/anatolykoptev/gapsight/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CommentFetchOutput is the output of comment_fetch.
type CommentFetchOutput struct {
	Video    *sources.VideoMeta `json:"video,omitempty"`
	Comments []sources.Comment  `json:"comments"`
	Total    int                `json:"total"`
}

func registerCommentFetch(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "comment_fetch",
		Description: "Fetch raw YouTube comments for a video (text, author, likes, reply count) via the Innertube API, with video metadata. Use pain_point_analysis for the mined report.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.CommentFetchInput) (*mcp.CallToolResult, CommentFetchOutput, error) {
		if input.VideoURL == "" {
			return nil, CommentFetchOutput{}, errors.New("video_url is required")
		}
		videoID := sources.ExtractVideoID(input.VideoURL)
		if videoID == "" {
			return nil, CommentFetchOutput{}, fmt.Errorf("could not extract video ID from %q", input.VideoURL)
		}

		cacheKey := engine.CacheKey("comment_fetch", videoID, strconv.Itoa(input.MaxComments))
		if out, ok := toolutil.CacheLoadJSON[CommentFetchOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		video, err := sources.FetchVideoMeta(ctx, videoID)
		if err != nil {
			slog.Warn("comment_fetch: video metadata unavailable", slog.String("id", videoID), slog.Any("err", err))
		}

		comments, err := sources.FetchComments(ctx, videoID, input.MaxComments)
		if err != nil {
			return nil, CommentFetchOutput{}, fmt.Errorf("fetch comments: %w", err)
		}

		out := CommentFetchOutput{Video: video, Comments: comments, Total: len(comments)}
		toolutil.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}
