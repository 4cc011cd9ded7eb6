package gapserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/gapsight/internal/engine"
	"github.com/anatolykoptev/gapsight/internal/engine/sources"
	"github.com/anatolykoptev/gapsight/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TranscriptOutput is the output of video_transcript.
type TranscriptOutput struct {
	VideoID    string `json:"video_id"`
	Transcript string `json:"transcript"`
}

func registerVideoTranscript(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_transcript",
		Description: "Fetch the transcript of a YouTube video. Tries the watch page, the engagement panel API, and the Android player API in order; honors a caption language preference list.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.TranscriptInput) (*mcp.CallToolResult, TranscriptOutput, error) {
		if input.VideoURL == "" {
			return nil, TranscriptOutput{}, errors.New("video_url is required")
		}
		videoID := sources.ExtractVideoID(input.VideoURL)
		if videoID == "" {
			return nil, TranscriptOutput{}, fmt.Errorf("could not extract video ID from %q", input.VideoURL)
		}

		cacheKey := engine.CacheKey("video_transcript", videoID, strings.Join(input.Languages, ","))
		if out, ok := toolutil.CacheLoadJSON[TranscriptOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		transcript, err := sources.FetchTranscript(ctx, videoID, input.Languages)
		if err != nil {
			return nil, TranscriptOutput{}, fmt.Errorf("fetch transcript: %w", err)
		}

		out := TranscriptOutput{VideoID: videoID, Transcript: transcript}
		toolutil.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}
