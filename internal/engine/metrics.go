package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	InnertubeRequests  atomic.Int64
	CommentPages       atomic.Int64
	TranscriptRequests atomic.Int64
	TwitterRequests    atomic.Int64
	FetchRequests      atomic.Int64
	FetchErrors        atomic.Int64
	LLMCalls           atomic.Int64
	LLMErrors          atomic.Int64
	AnalysesRun        atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"innertube_requests":  metrics.InnertubeRequests.Load(),
		"comment_pages":       metrics.CommentPages.Load(),
		"transcript_requests": metrics.TranscriptRequests.Load(),
		"twitter_requests":    metrics.TwitterRequests.Load(),
		"fetch_requests":      metrics.FetchRequests.Load(),
		"fetch_errors":        metrics.FetchErrors.Load(),
		"llm_calls":           metrics.LLMCalls.Load(),
		"llm_errors":          metrics.LLMErrors.Load(),
		"analyses_run":        metrics.AnalysesRun.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"innertube_requests", "comment_pages", "transcript_requests",
		"twitter_requests",
		"fetch_requests", "fetch_errors",
		"llm_calls", "llm_errors",
		"analyses_run",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for sources/ and gaps/ sub-packages.
func IncrInnertubeRequests()  { metrics.InnertubeRequests.Add(1) }
func IncrCommentPages()       { metrics.CommentPages.Add(1) }
func IncrTranscriptRequests() { metrics.TranscriptRequests.Add(1) }
func IncrTwitterRequests()    { metrics.TwitterRequests.Add(1) }
func IncrAnalysesRun()        { metrics.AnalysesRun.Add(1) }
