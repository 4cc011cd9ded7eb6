package sources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anatolykoptev/gapsight/internal/engine"
	twitter "github.com/anatolykoptev/go-twitter"
)

// X/Twitter adapter — maps posts into the shared Comment model so the
// pain-point analyzer runs unchanged on any feedback source.

// feedbackTerms are appended to queries that don't already look like feedback searches.
const feedbackTerms = `problem OR issue OR "doesn't work" OR annoying OR wish`

// isFeedbackQuery returns true if the query already targets complaints or requests.
func isFeedbackQuery(q string) bool {
	lower := strings.ToLower(q)
	for _, term := range []string{"problem", "issue", "bug", "broken", "annoying", "wish", "doesn't work", "hate"} {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// buildFeedbackQuery enhances a query with feedback-related terms if needed.
func buildFeedbackQuery(query string) string {
	if isFeedbackQuery(query) {
		return query
	}
	return query + " " + feedbackTerms
}

// FetchTwitterPosts searches X/Twitter for feedback posts about a topic.
// Returns an error when no Twitter client is configured.
func FetchTwitterPosts(ctx context.Context, query string, limit int) ([]Comment, error) {
	tw := engine.Cfg.TwitterClient
	if tw == nil {
		return nil, errors.New("twitter client not configured")
	}
	engine.IncrTwitterRequests()

	if limit <= 0 {
		limit = 50
	}
	searchQuery := buildFeedbackQuery(query)

	tweets, err := tw.SearchTimeline(ctx, searchQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("twitter search: %w", err)
	}

	slog.Info("twitter feedback search", slog.Int("tweets", len(tweets)), slog.String("query", searchQuery))

	comments := make([]Comment, 0, len(tweets))
	for _, t := range tweets {
		if c, ok := tweetComment(*t); ok {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

// tweetComment maps one tweet into the shared comment model.
// Empty-text tweets (media-only posts) are dropped.
func tweetComment(t twitter.Tweet) (Comment, bool) {
	text := strings.TrimSpace(t.Text)
	if text == "" {
		return Comment{}, false
	}
	return Comment{
		Text:       text,
		Author:     t.AuthorID,
		Likes:      t.Likes,
		Published:  t.CreatedAt.Format(time.RFC3339),
		ReplyCount: t.Retweets, // retweets stand in for thread size
	}, true
}
