package gaps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywords(t *testing.T) {
	kw := extractKeywords("Learn Node.js and C++ with the best course. Free trial!")

	assert.True(t, kw["node.js"])
	assert.True(t, kw["c++"])
	assert.True(t, kw["course"])
	assert.True(t, kw["learn"])
	assert.True(t, kw["free"])
	assert.True(t, kw["trial"])

	// Stop words and short tokens are dropped.
	assert.False(t, kw["and"])
	assert.False(t, kw["the"])
	assert.False(t, kw["with"])

	// Trailing sentence dot is stripped, inner dots kept.
	assert.False(t, kw["course."])
}

func TestPromisesFromText(t *testing.T) {
	p := PromisesFromText("Fast rendering, offline support, dark mode")
	assert.True(t, p.Keywords["rendering"])
	assert.True(t, p.Keywords["offline"])
	assert.True(t, p.Keywords["dark"])
	assert.Empty(t, p.Emphasis)
}

func TestEmphasisText(t *testing.T) {
	page := []byte(`<html><head><style>h1{color:red}</style>
<script>var x = "ignored heading";</script></head>
<body>
<h1>Blazing Fast Builds</h1>
<p>Some paragraph text that is not emphasized.</p>
<ul><li>Offline mode</li><li>  </li><li>Live <strong>preview</strong></li></ul>
</body></html>`)

	got := emphasisText(page)
	require.Equal(t, []string{"Blazing Fast Builds", "Offline mode", "Live preview"}, got)
}

func TestScoreCoverage(t *testing.T) {
	promises := &PromiseSet{
		Keywords: map[string]bool{"offline": true, "subtitles": true, "rendering": true},
		Emphasis: map[string]bool{},
	}
	points := []PainPoint{
		{Keyword: "subtitles", RelatedComments: []string{"please add subtitles for the demo"}},
	}

	cov := ScoreCoverage(promises, points)

	// pains: subtitles, please, add, demo. inter=1, union=6.
	require.Equal(t, []string{"subtitles"}, cov.Addressed)
	assert.Equal(t, []string{"add", "demo", "please"}, cov.Unmatched)
	assert.InDelta(t, 16.7, cov.Score, 1e-9)
}

func TestScoreCoverageEmphasisWeighting(t *testing.T) {
	points := []PainPoint{
		{Keyword: "subtitles", RelatedComments: []string{"please add subtitles for the demo"}},
	}
	base := &PromiseSet{
		Keywords: map[string]bool{"offline": true, "subtitles": true, "rendering": true},
		Emphasis: map[string]bool{},
	}
	plain := ScoreCoverage(base, points)

	// A headline keyword the audience complains about doubles its weight in
	// both intersection and union: 2/7 instead of 1/6.
	matched := &PromiseSet{
		Keywords: base.Keywords,
		Emphasis: map[string]bool{"subtitles": true},
	}
	boosted := ScoreCoverage(matched, points)
	assert.Greater(t, boosted.Score, plain.Score)
	assert.InDelta(t, 28.6, boosted.Score, 1e-9)

	// Emphasizing a promise nobody complains about dilutes the overlap.
	unmatched := &PromiseSet{
		Keywords: base.Keywords,
		Emphasis: map[string]bool{"offline": true},
	}
	diluted := ScoreCoverage(unmatched, points)
	assert.Less(t, diluted.Score, plain.Score)
	assert.InDelta(t, 14.3, diluted.Score, 1e-9)
}

func TestScoreCoverageEmpty(t *testing.T) {
	cov := ScoreCoverage(&PromiseSet{Keywords: map[string]bool{}}, nil)
	assert.Equal(t, 0.0, cov.Score)
	assert.Empty(t, cov.Addressed)
	assert.Empty(t, cov.Unmatched)
}
