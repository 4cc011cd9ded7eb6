package engine

// Tool input types, shared between the engine and the MCP server layer.

// AnalyzeInput is the input for pain_point_analysis.
type AnalyzeInput struct {
	VideoURL       string `json:"video_url" jsonschema:"YouTube video URL (watch, youtu.be, or shorts form)"`
	MaxComments    int    `json:"max_comments,omitempty" jsonschema:"Maximum comments to fetch (default 500, max 1000)"`
	Language       string `json:"language,omitempty" jsonschema:"Language code for transcript preference (default: en)"`
	WithTranscript bool   `json:"with_transcript,omitempty" jsonschema:"Also fetch the video transcript and include it in the analysis corpus"`
	WithInsights   bool   `json:"with_insights,omitempty" jsonschema:"Enrich the report with LLM suggestions and themes (requires LLM_API_KEY)"`
	AllowSample    bool   `json:"allow_sample,omitempty" jsonschema:"Fall back to built-in sample comments when fetching yields nothing (report is marked sampled)"`
}

// CommentFetchInput is the input for comment_fetch.
type CommentFetchInput struct {
	VideoURL    string `json:"video_url" jsonschema:"YouTube video URL"`
	MaxComments int    `json:"max_comments,omitempty" jsonschema:"Maximum comments to fetch (default 500, max 1000)"`
}

// TranscriptInput is the input for video_transcript.
type TranscriptInput struct {
	VideoURL  string   `json:"video_url" jsonschema:"YouTube video URL"`
	Languages []string `json:"languages,omitempty" jsonschema:"Preferred caption language codes in priority order (default: en)"`
}

// CompareInput is the input for gap_compare.
type CompareInput struct {
	VideoURL     string `json:"video_url,omitempty" jsonschema:"YouTube video URL to analyze fresh (alternative to analysis_id)"`
	AnalysisID   int64  `json:"analysis_id,omitempty" jsonschema:"Reuse a persisted analysis instead of refetching comments"`
	PageURL      string `json:"page_url,omitempty" jsonschema:"Product or landing page whose promised features to compare against"`
	Requirements string `json:"requirements,omitempty" jsonschema:"Raw requirements text (alternative to page_url)"`
}

// TwitterAnalyzeInput is the input for twitter_pain_points.
type TwitterAnalyzeInput struct {
	Query        string `json:"query" jsonschema:"Topic or product to search feedback posts for"`
	MaxPosts     int    `json:"max_posts,omitempty" jsonschema:"Maximum posts to fetch (default 50)"`
	WithInsights bool   `json:"with_insights,omitempty" jsonschema:"Enrich the report with LLM suggestions and themes"`
}

// HistoryListInput is the input for analysis_history list action.
type HistoryListInput struct {
	Action string `json:"action,omitempty" jsonschema:"One of: list (default), get, delete"`
	ID     int64  `json:"id,omitempty" jsonschema:"Analysis ID for get/delete"`
	Source string `json:"source,omitempty" jsonschema:"Filter list by source: youtube, twitter"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Max rows for list (default 20)"`
}

// TrendsInput is the input for pain_point_trends.
type TrendsInput struct {
	Days int `json:"days,omitempty" jsonschema:"Trailing window in days (default 30, max 365)"`
}
