package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/anatolykoptev/gapsight/internal/engine"
)

// YouTube comment fetching via Innertube /next.
// The watch-next response carries a continuation token for the comment
// section; following it pages through comment threads. Replies are not
// expanded — top-level comments carry the audience signal.

// Comment is a single piece of audience feedback, normalised across sources.
type Comment struct {
	Text       string `json:"text"`
	Author     string `json:"author"`
	Likes      int    `json:"likes"`
	Published  string `json:"published,omitempty"`
	ReplyCount int    `json:"reply_count,omitempty"`
}

// commentSectionRE locates the comment section entry token in a raw /next response.
var commentSectionRE = regexp.MustCompile(`(?s)"sectionIdentifier":"comment-item-section".{0,2000}?"continuationCommand":\{"token":"([^"]+)"`)

// --- /next response types ---

type ytText struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (t ytText) text() string {
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var sb strings.Builder
	for _, r := range t.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

type ytCommentRenderer struct {
	ContentText       ytText `json:"contentText"`
	AuthorText        ytText `json:"authorText"`
	VoteCount         ytText `json:"voteCount"`
	PublishedTimeText ytText `json:"publishedTimeText"`
	ReplyCount        int    `json:"replyCount"`
}

type ytContinuationItem struct {
	ContinuationEndpoint *struct {
		ContinuationCommand *struct {
			Token string `json:"token"`
		} `json:"continuationCommand"`
	} `json:"continuationEndpoint"`
}

// commentEntityPayload is the current comment shape, delivered via
// frameworkUpdates entity mutations instead of renderers.
type commentEntityPayload struct {
	Properties struct {
		Content struct {
			Content string `json:"content"`
		} `json:"content"`
		PublishedTime string `json:"publishedTime"`
	} `json:"properties"`
	Author struct {
		DisplayName string `json:"displayName"`
	} `json:"author"`
	Toolbar struct {
		LikeCountNotliked string `json:"likeCountNotliked"`
		ReplyCount        string `json:"replyCount"`
	} `json:"toolbar"`
}

type ytNextResp struct {
	OnResponseReceivedEndpoints []struct {
		ReloadContinuationItemsCommand *struct {
			ContinuationItems []json.RawMessage `json:"continuationItems"`
		} `json:"reloadContinuationItemsCommand"`
		AppendContinuationItemsAction *struct {
			ContinuationItems []json.RawMessage `json:"continuationItems"`
		} `json:"appendContinuationItemsAction"`
	} `json:"onResponseReceivedEndpoints"`
	FrameworkUpdates *struct {
		EntityBatchUpdate struct {
			Mutations []struct {
				Payload struct {
					CommentEntityPayload *commentEntityPayload `json:"commentEntityPayload"`
				} `json:"payload"`
			} `json:"mutations"`
		} `json:"entityBatchUpdate"`
	} `json:"frameworkUpdates"`
}

// FetchComments fetches up to max top-level comments for a video.
// Pages through /next continuations until max is reached or YouTube stops
// handing out tokens. A video with comments disabled yields an empty slice.
func FetchComments(ctx context.Context, videoID string, max int) ([]Comment, error) {
	if max <= 0 || max > 1000 {
		max = engine.Cfg.MaxComments
		if max <= 0 {
			max = 500
		}
	}

	visitorData := generateVisitorData()

	first, err := postInnerTubeWEB(ctx, ytNextURL, map[string]any{
		"videoId": videoID,
		"context": ytWebContext(visitorData),
	}, visitorData)
	if err != nil {
		return nil, fmt.Errorf("/next: %w", err)
	}

	var comments []Comment
	token := extractCommentSectionToken(first)
	if token == "" {
		// Some responses inline the first comment batch instead.
		pageComments, next := parseCommentPage(first)
		comments = append(comments, pageComments...)
		token = next
		if token == "" {
			return dedupeComments(comments, max), nil
		}
	}

	for token != "" && len(comments) < max {
		engine.IncrCommentPages()
		page, err := postInnerTubeWEB(ctx, ytNextURL, map[string]any{
			"continuation": token,
			"context":      ytWebContext(visitorData),
		}, visitorData)
		if err != nil {
			// Partial results beat none once pagination has started.
			if len(comments) > 0 {
				slog.Warn("comments: pagination stopped early",
					slog.String("video", videoID), slog.Int("got", len(comments)), slog.Any("err", err))
				break
			}
			return nil, fmt.Errorf("/next continuation: %w", err)
		}

		pageComments, next := parseCommentPage(page)
		if len(pageComments) == 0 && next == "" {
			break
		}
		comments = append(comments, pageComments...)
		token = next
	}

	return dedupeComments(comments, max), nil
}

// extractCommentSectionToken finds the comment section continuation in a raw
// watch-next response. Same regex-over-raw-JSON approach as transcript tokens:
// the renderer tree around it is deep and unstable, the token shape is not.
func extractCommentSectionToken(data []byte) string {
	if m := commentSectionRE.FindSubmatch(data); len(m) >= 2 {
		if decoded, err := url.QueryUnescape(string(m[1])); err == nil {
			return decoded
		}
		return string(m[1])
	}
	return ""
}

// parseCommentPage extracts comments and the next continuation token from a
// /next response. Handles both the classic commentThreadRenderer shape and
// the current commentEntityPayload mutations.
func parseCommentPage(data []byte) (comments []Comment, nextToken string) {
	var resp ytNextResp
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, ""
	}

	// Current shape: comment bodies ride in frameworkUpdates mutations.
	fromEntities := 0
	if resp.FrameworkUpdates != nil {
		for _, m := range resp.FrameworkUpdates.EntityBatchUpdate.Mutations {
			p := m.Payload.CommentEntityPayload
			if p == nil || p.Properties.Content.Content == "" {
				continue
			}
			comments = append(comments, Comment{
				Text:       p.Properties.Content.Content,
				Author:     p.Author.DisplayName,
				Likes:      engine.ParseCount(p.Toolbar.LikeCountNotliked),
				Published:  p.Properties.PublishedTime,
				ReplyCount: engine.ParseCount(p.Toolbar.ReplyCount),
			})
			fromEntities++
		}
	}

	for _, ep := range resp.OnResponseReceivedEndpoints {
		var items []json.RawMessage
		if ep.ReloadContinuationItemsCommand != nil {
			items = ep.ReloadContinuationItemsCommand.ContinuationItems
		} else if ep.AppendContinuationItemsAction != nil {
			items = ep.AppendContinuationItemsAction.ContinuationItems
		}

		for _, raw := range items {
			var item map[string]json.RawMessage
			if err := json.Unmarshal(raw, &item); err != nil {
				continue
			}

			// Classic shape: full comment inside the thread renderer. Only
			// consulted when no entity payloads carried the bodies, so
			// unrelated frameworkUpdates mutations don't suppress it.
			if threadRaw, ok := item["commentThreadRenderer"]; ok && fromEntities == 0 {
				if c, ok := parseThreadRenderer(threadRaw); ok {
					comments = append(comments, c)
				}
				continue
			}

			// Pagination: only continuationEndpoint items are page tokens;
			// reply expanders hang off button renderers and are skipped.
			if contRaw, ok := item["continuationItemRenderer"]; ok {
				var cont ytContinuationItem
				if err := json.Unmarshal(contRaw, &cont); err == nil &&
					cont.ContinuationEndpoint != nil &&
					cont.ContinuationEndpoint.ContinuationCommand != nil {
					nextToken = cont.ContinuationEndpoint.ContinuationCommand.Token
				}
			}
		}
	}

	return comments, nextToken
}

func parseThreadRenderer(raw json.RawMessage) (Comment, bool) {
	var thread struct {
		Comment struct {
			CommentRenderer *ytCommentRenderer `json:"commentRenderer"`
		} `json:"comment"`
	}
	if err := json.Unmarshal(raw, &thread); err != nil || thread.Comment.CommentRenderer == nil {
		return Comment{}, false
	}
	r := thread.Comment.CommentRenderer
	text := r.ContentText.text()
	if text == "" {
		return Comment{}, false
	}
	return Comment{
		Text:       text,
		Author:     r.AuthorText.text(),
		Likes:      engine.ParseCount(r.VoteCount.text()),
		Published:  r.PublishedTimeText.text(),
		ReplyCount: r.ReplyCount,
	}, true
}

// dedupeComments drops exact text duplicates (pages can overlap) and caps at max.
func dedupeComments(comments []Comment, max int) []Comment {
	seen := make(map[string]bool, len(comments))
	out := comments[:0]
	for _, c := range comments {
		if seen[c.Text] {
			continue
		}
		seen[c.Text] = true
		out = append(out, c)
		if len(out) >= max {
			break
		}
	}
	return out
}

// SampleComments returns a fixed demo set used only when the caller
// explicitly allows sample data and fetching yields nothing.
func SampleComments() []Comment {
	return []Comment{
		{Text: "This video helped a lot, but I wish there was more on handling edge cases", Author: "user_a", Likes: 45, Published: "2 days ago", ReplyCount: 3},
		{Text: "Clear explanation, but the pace is too fast and I can't keep up", Author: "user_b", Likes: 23, Published: "1 day ago", ReplyCount: 1},
		{Text: "Why is the key part always skipped? The content feels incomplete", Author: "user_c", Likes: 67, Published: "3 days ago", ReplyCount: 5},
		{Text: "As a beginner some concepts are not detailed enough, needs more background first", Author: "user_d", Likes: 89, Published: "1 week ago", ReplyCount: 8},
		{Text: "Great quality, but please add subtitles, the audio is hard to follow", Author: "user_e", Likes: 34, Published: "4 days ago", ReplyCount: 2},
		{Text: "Really useful content but skipping all the ads every time is annoying", Author: "user_f", Likes: 156, Published: "5 days ago", ReplyCount: 12},
		{Text: "Hope there will be a PDF summary, would be great for review", Author: "user_g", Likes: 78, Published: "2 days ago", ReplyCount: 6},
		{Text: "Some details are unclear, the practical demo is missing in the second half", Author: "user_h", Likes: 92, Published: "1 day ago", ReplyCount: 9},
	}
}
