package sources

import (
	"strings"
	"testing"
	"time"

	twitter "github.com/anatolykoptev/go-twitter"
)

func TestIsFeedbackQuery(t *testing.T) {
	tests := []struct {
		q    string
		want bool
	}{
		{"myapp problem", true},
		{"MyApp ISSUE with login", true},
		{"editor doesn't work", true},
		{"i hate the new ui", true},
		{"myapp", false},
		{"golang generics", false},
	}
	for _, tt := range tests {
		if got := isFeedbackQuery(tt.q); got != tt.want {
			t.Errorf("isFeedbackQuery(%q) = %v, want %v", tt.q, got, tt.want)
		}
	}
}

func TestTweetComment(t *testing.T) {
	tw := twitter.Tweet{
		Text:      "  the export keeps failing  ",
		AuthorID:  "12345",
		Likes:     7,
		Retweets:  2,
		CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	c, ok := tweetComment(tw)
	if !ok {
		t.Fatal("expected tweet to map to a comment")
	}
	if c.Text != "the export keeps failing" {
		t.Errorf("Text = %q, want trimmed text", c.Text)
	}
	if c.Author != "12345" || c.Likes != 7 || c.ReplyCount != 2 {
		t.Errorf("Author/Likes/ReplyCount = %q/%d/%d", c.Author, c.Likes, c.ReplyCount)
	}
	if c.Published != "2026-03-14T09:30:00Z" {
		t.Errorf("Published = %q, want RFC3339 timestamp", c.Published)
	}

	if _, ok := tweetComment(twitter.Tweet{Text: "   "}); ok {
		t.Error("media-only tweet should be dropped")
	}
}

func TestBuildFeedbackQuery(t *testing.T) {
	// Feedback-looking queries pass through untouched.
	if got := buildFeedbackQuery("myapp bug report"); got != "myapp bug report" {
		t.Errorf("got %q, want passthrough", got)
	}

	// Neutral queries get feedback terms appended.
	got := buildFeedbackQuery("myapp")
	if !strings.HasPrefix(got, "myapp ") {
		t.Errorf("got %q, want myapp prefix", got)
	}
	if !strings.Contains(got, "problem OR issue") {
		t.Errorf("got %q, want feedback terms appended", got)
	}
}
