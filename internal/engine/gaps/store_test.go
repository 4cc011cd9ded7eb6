package gaps

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetHistory points the singleton at a fresh temp-dir database.
func resetHistory(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	historyDB = nil
	historyErr = nil
	historyOnce = sync.Once{}
}

func testReport(sourceRef string) Report {
	return Report{
		Source:    "youtube",
		SourceRef: sourceRef,
		Title:     "Test Video",
		PainPoints: []PainPoint{
			{Category: CategoryPacing, Keyword: "too fast", Description: "pacing: too fast",
				Frequency: 3, Severity: 0.7, RelatedComments: []string{"too fast for me"}},
		},
		Stats:     Stats{TotalComments: 10, CommentsWithPain: 3, AvgPerComment: 0.3},
		CreatedAt: "2026-01-01T00:00:00Z",
	}
}

func TestSaveGetAnalysis(t *testing.T) {
	resetHistory(t)
	ctx := context.Background()

	id, err := SaveAnalysis(ctx, testReport("vid00000001"))
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	got, err := GetAnalysis(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "youtube", got.Source)
	assert.Equal(t, "vid00000001", got.SourceRef)
	require.Len(t, got.PainPoints, 1)
	assert.Equal(t, CategoryPacing, got.PainPoints[0].Category)
	assert.Equal(t, 10, got.Stats.TotalComments)
}

func TestGetAnalysisNotFound(t *testing.T) {
	resetHistory(t)

	_, err := GetAnalysis(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not found"))
}

func TestListAnalyses(t *testing.T) {
	resetHistory(t)
	ctx := context.Background()

	for _, ref := range []string{"vid00000001", "vid00000002", "vid00000003"} {
		_, err := SaveAnalysis(ctx, testReport(ref))
		require.NoError(t, err)
	}
	tw := testReport("some query")
	tw.Source = "twitter"
	_, err := SaveAnalysis(ctx, tw)
	require.NoError(t, err)

	// Newest first, no filter.
	all, err := ListAnalyses(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "some query", all[0].SourceRef)
	assert.Equal(t, "vid00000003", all[1].SourceRef)
	assert.Equal(t, "pacing", all[0].TopCategory)
	assert.Equal(t, 0.7, all[0].TopSeverity)

	// Source filter.
	yt, err := ListAnalyses(ctx, "youtube", 0)
	require.NoError(t, err)
	require.Len(t, yt, 3)

	// Limit.
	limited, err := ListAnalyses(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestDeleteAnalysis(t *testing.T) {
	resetHistory(t)
	ctx := context.Background()

	id, err := SaveAnalysis(ctx, testReport("vid00000001"))
	require.NoError(t, err)

	require.NoError(t, DeleteAnalysis(ctx, id))

	_, err = GetAnalysis(ctx, id)
	assert.Error(t, err)

	// Deleting again reports not found.
	err = DeleteAnalysis(ctx, id)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not found"))
}
