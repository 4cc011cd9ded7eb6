package gaps

import (
	"sort"
	"strings"

	"github.com/anatolykoptev/gapsight/internal/engine/sources"
)

// Pain-point mining: keyword-lexicon extraction over comments, grouped by
// category+keyword, scored by category weight and mention frequency.

// PainPoint is one aggregated audience complaint.
type PainPoint struct {
	Category        Category `json:"category"`
	Keyword         string   `json:"keyword"`
	Description     string   `json:"description"`
	Frequency       int      `json:"frequency"`
	Severity        float64  `json:"severity"`
	Likes           int      `json:"likes"`
	RelatedComments []string `json:"related_comments"`
}

// Stats summarises an analysis run.
type Stats struct {
	TotalComments    int     `json:"total_comments"`
	CommentsWithPain int     `json:"comments_with_pain"`
	AvgPerComment    float64 `json:"avg_per_comment"`
}

// mention is a single keyword hit inside one comment.
type mention struct {
	category Category
	keyword  string
	comment  sources.Comment
}

const maxRelatedComments = 5

// extractMentions finds pain-point mentions in a single comment.
// At most one mention per category — the first matching keyword wins —
// so a rant doesn't inflate its own category.
func extractMentions(c sources.Comment) []mention {
	text := strings.ToLower(c.Text)
	var out []mention
	for _, cat := range categoryOrder {
		for _, kw := range painLexicon[cat] {
			if strings.Contains(text, kw) {
				out = append(out, mention{category: cat, keyword: kw, comment: c})
				break
			}
		}
	}
	return out
}

// severity combines the category weight with how often the pain shows up:
// weight * (1 + 2*frequency_ratio), capped at 1.0.
func severity(cat Category, count, totalComments int) float64 {
	base := severityWeights[cat]
	if base == 0 {
		base = 0.5
	}
	if totalComments <= 0 {
		return base
	}
	s := base * (1 + 2*float64(count)/float64(totalComments))
	if s > 1.0 {
		return 1.0
	}
	return s
}

// Analyze mines comments for pain points. Results are ordered by severity
// desc, then frequency desc, then category asc — deterministic for equal
// inputs.
func Analyze(comments []sources.Comment) ([]PainPoint, Stats) {
	stats := Stats{TotalComments: len(comments)}
	if len(comments) == 0 {
		return nil, stats
	}

	type group struct {
		category Category
		keyword  string
		count    int
		likes    int
		related  []string
		seen     map[string]bool
	}
	groups := make(map[string]*group)
	totalMentions := 0

	for _, c := range comments {
		mentions := extractMentions(c)
		if len(mentions) > 0 {
			stats.CommentsWithPain++
		}
		totalMentions += len(mentions)

		for _, m := range mentions {
			key := string(m.category) + ": " + m.keyword
			g, ok := groups[key]
			if !ok {
				g = &group{category: m.category, keyword: m.keyword, seen: make(map[string]bool)}
				groups[key] = g
			}
			g.count++
			g.likes += m.comment.Likes
			if !g.seen[m.comment.Text] && len(g.related) < maxRelatedComments {
				g.seen[m.comment.Text] = true
				g.related = append(g.related, m.comment.Text)
			}
		}
	}

	points := make([]PainPoint, 0, len(groups))
	for key, g := range groups {
		points = append(points, PainPoint{
			Category:        g.category,
			Keyword:         g.keyword,
			Description:     key,
			Frequency:       g.count,
			Severity:        severity(g.category, g.count, len(comments)),
			Likes:           g.likes,
			RelatedComments: g.related,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].Severity != points[j].Severity {
			return points[i].Severity > points[j].Severity
		}
		if points[i].Frequency != points[j].Frequency {
			return points[i].Frequency > points[j].Frequency
		}
		if points[i].Category != points[j].Category {
			return points[i].Category < points[j].Category
		}
		return points[i].Keyword < points[j].Keyword
	})

	stats.AvgPerComment = float64(totalMentions) / float64(len(comments))
	stats.AvgPerComment = float64(int(stats.AvgPerComment*100+0.5)) / 100 // 2 decimals

	return points, stats
}
