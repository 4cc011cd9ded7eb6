package gaps

import (
	"time"

	"github.com/anatolykoptev/gapsight/internal/engine"
	"github.com/anatolykoptev/gapsight/internal/engine/sources"
)

// Report is the full output of one analysis run.
type Report struct {
	ID         int64              `json:"id,omitempty"`
	Source     string             `json:"source"`
	SourceRef  string             `json:"source_ref"`
	Title      string             `json:"title,omitempty"`
	Video      *sources.VideoMeta `json:"video,omitempty"`
	PainPoints []PainPoint        `json:"pain_points"`
	Stats      Stats              `json:"stats"`
	Insights   *Insights          `json:"insights,omitempty"`
	// InsightsSkipped records why insights are absent when they were requested.
	InsightsSkipped string `json:"insights_skipped,omitempty"`
	Transcript string             `json:"transcript,omitempty"`
	Sampled    bool               `json:"sampled,omitempty"`
	CreatedAt  string             `json:"created_at"`
}

// reportTopN caps pain points per report, matching the console report's top 10.
const reportTopN = 10

// BuildReport runs the pain-point analysis over comments and assembles a
// report. Pain points beyond the top 10 are dropped — severity ordering
// means the tail is noise.
func BuildReport(source, sourceRef, title string, video *sources.VideoMeta, comments []sources.Comment, sampled bool) Report {
	engine.IncrAnalysesRun()

	points, stats := Analyze(comments)
	if len(points) > reportTopN {
		points = points[:reportTopN]
	}

	return Report{
		Source:     source,
		SourceRef:  sourceRef,
		Title:      title,
		Video:      video,
		PainPoints: points,
		Stats:      stats,
		Sampled:    sampled,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
}

// TopCategory returns the category of the most severe pain point, or "".
func (r Report) TopCategory() string {
	if len(r.PainPoints) == 0 {
		return ""
	}
	return string(r.PainPoints[0].Category)
}

// TopSeverity returns the severity of the most severe pain point, or 0.
func (r Report) TopSeverity() float64 {
	if len(r.PainPoints) == 0 {
		return 0
	}
	return r.PainPoints[0].Severity
}
