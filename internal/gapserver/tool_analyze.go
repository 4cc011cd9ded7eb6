package gapserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/anatolykoptev/gapsight/internal/engine"
	"github.com/anatolykoptev/gapsight/internal/engine/gaps"
	"github.com/anatolykoptev/gapsight/internal/engine/sources"
	"github.com/anatolykoptev/gapsight/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// transcriptMaxLen caps the transcript attached to reports.
const transcriptMaxLen = 8000

func registerPainPointAnalysis(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "pain_point_analysis",
		Description: "Analyze YouTube video comments for audience pain points. Fetches comments via the Innertube API, mines them with a categorized keyword lexicon (content quality, pacing, technical issues, feature requests, ...), scores severity, and returns a ranked report. Optionally attaches the video transcript and LLM-generated improvement suggestions. The report is persisted to local history.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.AnalyzeInput) (*mcp.CallToolResult, gaps.Report, error) {
		if input.VideoURL == "" {
			return nil, gaps.Report{}, errors.New("video_url is required")
		}
		videoID := sources.ExtractVideoID(input.VideoURL)
		if videoID == "" {
			return nil, gaps.Report{}, fmt.Errorf("could not extract video ID from %q", input.VideoURL)
		}

		cacheKey := engine.CacheKey("pain_point_analysis", videoID,
			strconv.Itoa(input.MaxComments), engine.NormLang(input.Language),
			strconv.FormatBool(input.WithTranscript), strconv.FormatBool(input.WithInsights),
			strconv.FormatBool(input.AllowSample))
		if out, ok := toolutil.CacheLoadJSON[gaps.Report](ctx, cacheKey); ok {
			return nil, out, nil
		}

		// Video metadata heads the report; its absence is not fatal.
		video, err := sources.FetchVideoMeta(ctx, videoID)
		if err != nil {
			slog.Warn("analyze: video metadata unavailable", slog.String("id", videoID), slog.Any("err", err))
		}

		comments, err := sources.FetchComments(ctx, videoID, input.MaxComments)
		if err != nil && !input.AllowSample {
			return nil, gaps.Report{}, fmt.Errorf("fetch comments: %w", err)
		}

		sampled := false
		if len(comments) == 0 && input.AllowSample {
			comments = sources.SampleComments()
			sampled = true
			slog.Info("analyze: using sample comments", slog.String("id", videoID))
		}

		title := ""
		if video != nil {
			title = video.Title
		}
		report := gaps.BuildReport("youtube", videoID, title, video, comments, sampled)

		if input.WithTranscript {
			langs := []string{"en"}
			if input.Language != "" && input.Language != "all" {
				langs = []string{input.Language, "en"}
			}
			transcript, err := sources.FetchTranscript(ctx, videoID, langs)
			if err != nil {
				slog.Warn("analyze: transcript unavailable", slog.String("id", videoID), slog.Any("err", err))
			} else {
				report.Transcript = engine.TruncateRunes(transcript, transcriptMaxLen, "...")
			}
		}

		if input.WithInsights {
			gaps.EnrichReport(ctx, &report)
		}

		id, err := gaps.SaveAnalysis(ctx, report)
		if err != nil {
			slog.Warn("analyze: history save failed", slog.Any("err", err))
		} else {
			report.ID = id
		}

		toolutil.CacheStoreJSON(ctx, cacheKey, report)
		return nil, report, nil
	})
}
