package gaps

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/gapsight/internal/engine"
)

// LLM enrichment of computed pain points. The lexicon analysis supplies the
// numbers; the LLM supplies suggestions and themes. Frequency and severity
// are always overridden with computed values — the LLM is not trusted with
// arithmetic.

// InsightItem is the LLM's guidance for one pain point.
type InsightItem struct {
	Category   string `json:"category"`
	Keyword    string `json:"keyword"`
	Suggestion string `json:"suggestion"`
}

// Insights is the structured LLM output attached to a report.
type Insights struct {
	Themes      []string      `json:"themes"`
	Suggestions []InsightItem `json:"suggestions"`
	Summary     string        `json:"summary"`
}

const insightsPrompt = `You are a content strategist reviewing audience pain points mined from feedback.

COMPUTED PAIN POINTS (frequency and severity are exact, do not change them):
%s

STATS: %d total comments, %d with at least one pain point.

For the pain points above:

1. For each pain point, suggest one concrete improvement the creator can make
   (1-2 sentences, actionable, specific to the category and keyword).

2. Identify 2-4 cross-cutting themes that connect multiple pain points.

3. Write a brief summary (2-3 sentences) of the audience's overall experience
   and the most important gaps to address first.

Return a JSON object with this exact structure:
{
  "themes": ["<theme>", ...],
  "suggestions": [
    {"category": "<category>", "keyword": "<keyword>", "suggestion": "<improvement>"}
  ],
  "summary": "<overall assessment>"
}

Return ONLY the JSON object, no markdown, no explanation.`

// EnrichReport attaches LLM insights to a report. When they cannot be
// produced the reason lands in Report.InsightsSkipped instead of failing
// the analysis.
func EnrichReport(ctx context.Context, r *Report) {
	if !engine.LLMConfigured() {
		r.InsightsSkipped = "llm not configured"
		return
	}
	if len(r.PainPoints) == 0 {
		r.InsightsSkipped = "no pain points detected"
		return
	}
	insights, err := EnrichInsights(ctx, r.PainPoints, r.Stats)
	if err != nil {
		slog.Warn("insights enrichment failed", slog.String("source", r.Source), slog.Any("err", err))
		r.InsightsSkipped = "enrichment failed"
		return
	}
	r.Insights = insights
}

// EnrichInsights asks the LLM for suggestions and themes for the given pain
// points. Callers should treat a nil result as "analysis stands on its own".
func EnrichInsights(ctx context.Context, points []PainPoint, stats Stats) (*Insights, error) {
	if len(points) == 0 {
		return nil, nil
	}

	// Strip related comments from the prompt payload — they blow up token
	// count and the suggestions don't need them verbatim.
	type promptPoint struct {
		Category  Category `json:"category"`
		Keyword   string   `json:"keyword"`
		Frequency int      `json:"frequency"`
		Severity  float64  `json:"severity"`
		Likes     int      `json:"likes"`
	}
	pp := make([]promptPoint, 0, len(points))
	for _, p := range points {
		pp = append(pp, promptPoint{
			Category: p.Category, Keyword: p.Keyword,
			Frequency: p.Frequency, Severity: p.Severity, Likes: p.Likes,
		})
	}
	pointsJSON, err := json.MarshalIndent(pp, "", "  ")
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(insightsPrompt,
		engine.TruncateRunes(string(pointsJSON), 6000, ""),
		stats.TotalComments, stats.CommentsWithPain,
	)

	raw, err := engine.CallLLM(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("insights LLM: %w", err)
	}

	var result Insights
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &result); err != nil {
		return nil, fmt.Errorf("insights parse: %w (raw: %s)", err, engine.TruncateRunes(raw, 200, "..."))
	}
	return &result, nil
}
