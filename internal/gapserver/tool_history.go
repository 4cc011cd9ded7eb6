package gapserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/anatolykoptev/gapsight/internal/engine"
	"github.com/anatolykoptev/gapsight/internal/engine/gaps"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// HistoryOutput is the output of analysis_history. Exactly one of the
// fields is set depending on the action.
type HistoryOutput struct {
	Analyses []gaps.AnalysisSummary `json:"analyses,omitempty"`
	Report   *gaps.Report           `json:"report,omitempty"`
	Deleted  int64                  `json:"deleted,omitempty"`
}

func registerAnalysisHistory(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analysis_history",
		Description: "Browse persisted analysis reports. action=list returns recent summaries (optionally filtered by source), action=get returns one full report by id, action=delete removes one.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.HistoryListInput) (*mcp.CallToolResult, HistoryOutput, error) {
		action := input.Action
		if action == "" {
			action = "list"
		}

		switch action {
		case "list":
			analyses, err := gaps.ListAnalyses(ctx, input.Source, input.Limit)
			if err != nil {
				return nil, HistoryOutput{}, fmt.Errorf("list analyses: %w", err)
			}
			return nil, HistoryOutput{Analyses: analyses}, nil

		case "get":
			if input.ID == 0 {
				return nil, HistoryOutput{}, errors.New("id is required for get")
			}
			report, err := gaps.GetAnalysis(ctx, input.ID)
			if err != nil {
				return nil, HistoryOutput{}, err
			}
			return nil, HistoryOutput{Report: report}, nil

		case "delete":
			if input.ID == 0 {
				return nil, HistoryOutput{}, errors.New("id is required for delete")
			}
			if err := gaps.DeleteAnalysis(ctx, input.ID); err != nil {
				return nil, HistoryOutput{}, err
			}
			return nil, HistoryOutput{Deleted: input.ID}, nil

		default:
			return nil, HistoryOutput{}, fmt.Errorf("unknown action %q (want list, get, or delete)", action)
		}
	})
}
