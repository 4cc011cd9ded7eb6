package gapserver

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/anatolykoptev/gapsight/internal/engine"
	"github.com/anatolykoptev/gapsight/internal/engine/gaps"
	"github.com/anatolykoptev/gapsight/internal/engine/sources"
	"github.com/anatolykoptev/gapsight/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CompareOutput is the output of gap_compare.
type CompareOutput struct {
	Source     string           `json:"source"`
	SourceRef  string           `json:"source_ref"`
	Promises   int              `json:"promises"`
	PainPoints []gaps.PainPoint `json:"pain_points"`
	Coverage   gaps.Coverage    `json:"coverage"`
}

func registerGapCompare(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "gap_compare",
		Description: "Compare audience pain points against a product's promised features. Pain points come from a fresh video analysis (video_url) or a persisted one (analysis_id); promises come from a scraped landing page (page_url) or raw requirements text. Returns a coverage score with addressed and unmatched promise keywords.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.CompareInput) (*mcp.CallToolResult, CompareOutput, error) {
		if (input.VideoURL == "") == (input.AnalysisID == 0) {
			return nil, CompareOutput{}, errors.New("exactly one of video_url or analysis_id is required")
		}
		if (input.PageURL == "") == (input.Requirements == "") {
			return nil, CompareOutput{}, errors.New("exactly one of page_url or requirements is required")
		}

		cacheKey := engine.CacheKey("gap_compare", input.VideoURL,
			strconv.FormatInt(input.AnalysisID, 10), input.PageURL, input.Requirements)
		if out, ok := toolutil.CacheLoadJSON[CompareOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		report, err := compareReport(ctx, input)
		if err != nil {
			return nil, CompareOutput{}, err
		}

		var promises *gaps.PromiseSet
		if input.PageURL != "" {
			promises, err = gaps.FetchPromises(ctx, input.PageURL)
			if err != nil {
				return nil, CompareOutput{}, fmt.Errorf("fetch promises: %w", err)
			}
		} else {
			promises = gaps.PromisesFromText(input.Requirements)
		}

		out := CompareOutput{
			Source:     report.Source,
			SourceRef:  report.SourceRef,
			Promises:   len(promises.Keywords),
			PainPoints: report.PainPoints,
			Coverage:   gaps.ScoreCoverage(promises, report.PainPoints),
		}
		toolutil.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}

// compareReport resolves the pain-point side of the comparison, either from
// history or by running a fresh comment analysis.
func compareReport(ctx context.Context, input engine.CompareInput) (*gaps.Report, error) {
	if input.AnalysisID != 0 {
		report, err := gaps.GetAnalysis(ctx, input.AnalysisID)
		if err != nil {
			return nil, fmt.Errorf("load analysis: %w", err)
		}
		return report, nil
	}

	videoID := sources.ExtractVideoID(input.VideoURL)
	if videoID == "" {
		return nil, fmt.Errorf("could not extract video ID from %q", input.VideoURL)
	}
	comments, err := sources.FetchComments(ctx, videoID, 0)
	if err != nil {
		return nil, fmt.Errorf("fetch comments: %w", err)
	}
	report := gaps.BuildReport("youtube", videoID, "", nil, comments, false)
	return &report, nil
}
