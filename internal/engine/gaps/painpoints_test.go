package gaps

import (
	"fmt"
	"sort"
	"testing"

	"github.com/anatolykoptev/gapsight/internal/engine/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMentionsOnePerCategory(t *testing.T) {
	// Two negative-emotion keywords in one comment count once; the first
	// lexicon keyword wins.
	c := sources.Comment{Text: "So frustrating and confusing, and it keeps buffering"}
	mentions := extractMentions(c)

	require.Len(t, mentions, 2)
	assert.Equal(t, CategoryNegativeEmotion, mentions[0].category)
	assert.Equal(t, "frustrat", mentions[0].keyword)
	assert.Equal(t, CategoryTechnicalIssue, mentions[1].category)
	assert.Equal(t, "buffering", mentions[1].keyword)
}

func TestSeverity(t *testing.T) {
	// weight * (1 + 2*count/total), capped at 1.0
	assert.InDelta(t, 0.8, severity(CategoryPacing, 1, 2), 1e-9)
	assert.InDelta(t, 0.48, severity(CategoryPacing, 1, 10), 1e-9)
	assert.Equal(t, 1.0, severity(CategoryNegativeEmotion, 5, 5))
	assert.Equal(t, 1.0, severity(CategoryTechnicalIssue, 10, 10))

	// Zero total falls back to the bare weight.
	assert.Equal(t, 0.4, severity(CategoryPacing, 0, 0))
}

func TestAnalyzeEmpty(t *testing.T) {
	points, stats := Analyze(nil)
	assert.Nil(t, points)
	assert.Equal(t, Stats{}, stats)
}

func TestAnalyzeGroupingAndStats(t *testing.T) {
	comments := []sources.Comment{
		{Text: "Too fast for me", Likes: 10},
		{Text: "way too fast, slow down", Likes: 5},
		{Text: "great video, thanks!", Likes: 100},
		{Text: "the ads are annoying", Likes: 7},
	}
	points, stats := Analyze(comments)

	assert.Equal(t, 4, stats.TotalComments)
	assert.Equal(t, 3, stats.CommentsWithPain)
	// 4 mentions over 4 comments: too fast x2, annoying, ads.
	assert.Equal(t, 1.0, stats.AvgPerComment)

	require.Len(t, points, 3)
	byDesc := make(map[string]PainPoint, len(points))
	for _, p := range points {
		byDesc[p.Description] = p
	}

	pacing, ok := byDesc["pacing: too fast"]
	require.True(t, ok)
	assert.Equal(t, 2, pacing.Frequency)
	assert.Equal(t, 15, pacing.Likes)
	assert.Len(t, pacing.RelatedComments, 2)
	assert.InDelta(t, 0.4*(1+2*2.0/4.0), pacing.Severity, 1e-9)

	emotion, ok := byDesc["negative_emotion: annoying"]
	require.True(t, ok)
	assert.Equal(t, 1, emotion.Frequency)

	// Ordering: severity descending.
	for i := 1; i < len(points); i++ {
		assert.GreaterOrEqual(t, points[i-1].Severity, points[i].Severity)
	}
}

func TestAnalyzeRelatedCommentsCapped(t *testing.T) {
	var comments []sources.Comment
	for i := 0; i < 8; i++ {
		comments = append(comments, sources.Comment{Text: fmt.Sprintf("too fast number %d", i)})
	}
	// Duplicate text must not appear twice in related comments.
	comments = append(comments, sources.Comment{Text: "too fast number 0"})

	points, _ := Analyze(comments)
	require.Len(t, points, 1)
	assert.Equal(t, 9, points[0].Frequency)
	assert.Len(t, points[0].RelatedComments, maxRelatedComments)

	seen := make(map[string]bool)
	for _, rc := range points[0].RelatedComments {
		assert.False(t, seen[rc], "duplicate related comment %q", rc)
		seen[rc] = true
	}
}

func TestAnalyzeDeterministicOrder(t *testing.T) {
	comments := []sources.Comment{
		{Text: "the pdf is missing"}, // feature_request: pdf + content_quality: missing
		{Text: "subtitles please add them"},
		{Text: "won't play on my phone"},
	}
	first, _ := Analyze(comments)
	for i := 0; i < 5; i++ {
		again, _ := Analyze(comments)
		require.Equal(t, first, again)
	}
	assert.True(t, sort.SliceIsSorted(first, func(i, j int) bool {
		return first[i].Severity > first[j].Severity
	}))
}
