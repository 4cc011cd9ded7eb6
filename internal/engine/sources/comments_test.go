package sources

import "testing"

const classicPage = `{
	"onResponseReceivedEndpoints": [{
		"reloadContinuationItemsCommand": {
			"continuationItems": [
				{"commentThreadRenderer": {"comment": {"commentRenderer": {
					"contentText": {"runs": [{"text": "Audio is "}, {"text": "broken at 4:20"}]},
					"authorText": {"simpleText": "@viewer1"},
					"voteCount": {"simpleText": "1.2K"},
					"publishedTimeText": {"simpleText": "2 days ago"},
					"replyCount": 4
				}}}},
				{"commentThreadRenderer": {"comment": {"commentRenderer": {
					"contentText": {"simpleText": "Too fast, please slow down"},
					"authorText": {"simpleText": "@viewer2"},
					"voteCount": {"simpleText": "88"},
					"publishedTimeText": {"simpleText": "1 week ago"}
				}}}},
				{"continuationItemRenderer": {
					"button": {"buttonRenderer": {"command": {"continuationCommand": {"token": "REPLY_TOKEN"}}}}
				}},
				{"continuationItemRenderer": {
					"continuationEndpoint": {"continuationCommand": {"token": "PAGE_TOKEN_2"}}
				}}
			]
		}
	}]
}`

const entityPage = `{
	"onResponseReceivedEndpoints": [{
		"appendContinuationItemsAction": {
			"continuationItems": [
				{"commentThreadRenderer": {"commentViewModel": {}}},
				{"continuationItemRenderer": {
					"continuationEndpoint": {"continuationCommand": {"token": "PAGE_TOKEN_3"}}
				}}
			]
		}
	}],
	"frameworkUpdates": {"entityBatchUpdate": {"mutations": [
		{"payload": {"commentEntityPayload": {
			"properties": {"content": {"content": "The install step never works on Windows"}, "publishedTime": "3 days ago"},
			"author": {"displayName": "@viewer3"},
			"toolbar": {"likeCountNotliked": "45", "replyCount": "2"}
		}}},
		{"payload": {"commentEntityPayload": {
			"properties": {"content": {"content": ""}}
		}}},
		{"payload": {}}
	]}}
}`

func TestParseCommentPageClassic(t *testing.T) {
	comments, next := parseCommentPage([]byte(classicPage))

	if len(comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(comments))
	}
	if comments[0].Text != "Audio is broken at 4:20" {
		t.Errorf("comment[0].Text = %q", comments[0].Text)
	}
	if comments[0].Likes != 1200 {
		t.Errorf("comment[0].Likes = %d, want 1200", comments[0].Likes)
	}
	if comments[0].ReplyCount != 4 {
		t.Errorf("comment[0].ReplyCount = %d, want 4", comments[0].ReplyCount)
	}
	if comments[1].Author != "@viewer2" {
		t.Errorf("comment[1].Author = %q", comments[1].Author)
	}
	// Reply expander token must be skipped, page token taken.
	if next != "PAGE_TOKEN_2" {
		t.Errorf("next token = %q, want PAGE_TOKEN_2", next)
	}
}

func TestParseCommentPageEntityPayload(t *testing.T) {
	comments, next := parseCommentPage([]byte(entityPage))

	if len(comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(comments))
	}
	c := comments[0]
	if c.Text != "The install step never works on Windows" {
		t.Errorf("Text = %q", c.Text)
	}
	if c.Author != "@viewer3" {
		t.Errorf("Author = %q", c.Author)
	}
	if c.Likes != 45 || c.ReplyCount != 2 {
		t.Errorf("Likes/ReplyCount = %d/%d, want 45/2", c.Likes, c.ReplyCount)
	}
	if next != "PAGE_TOKEN_3" {
		t.Errorf("next token = %q, want PAGE_TOKEN_3", next)
	}
}

func TestParseCommentPageClassicWithUnrelatedUpdates(t *testing.T) {
	// frameworkUpdates without comment payloads (view-count refreshes and
	// the like) must not suppress classic renderer parsing.
	page := `{
		"onResponseReceivedEndpoints": [{
			"reloadContinuationItemsCommand": {
				"continuationItems": [
					{"commentThreadRenderer": {"comment": {"commentRenderer": {
						"contentText": {"simpleText": "Keeps crashing on mobile"},
						"authorText": {"simpleText": "@viewer9"},
						"voteCount": {"simpleText": "12"}
					}}}}
				]
			}
		}],
		"frameworkUpdates": {"entityBatchUpdate": {"mutations": [
			{"payload": {"engagementToolbarStateEntityPayload": {"likeState": "INDIFFERENT"}}}
		]}}
	}`

	comments, _ := parseCommentPage([]byte(page))
	if len(comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(comments))
	}
	if comments[0].Text != "Keeps crashing on mobile" {
		t.Errorf("Text = %q", comments[0].Text)
	}
}

func TestParseCommentPageGarbage(t *testing.T) {
	comments, next := parseCommentPage([]byte("not json"))
	if comments != nil || next != "" {
		t.Errorf("garbage input: got %v, %q", comments, next)
	}
}

func TestExtractCommentSectionToken(t *testing.T) {
	page := `{"engagementPanels":[],"itemSectionRenderer":{"sectionIdentifier":"comment-item-section","contents":[{"continuationItemRenderer":{"continuationEndpoint":{"continuationCommand":{"token":"Eg0SC2RRdzR3OVdnWGNR"}}}}]}}`
	if got := extractCommentSectionToken([]byte(page)); got != "Eg0SC2RRdzR3OVdnWGNR" {
		t.Errorf("token = %q", got)
	}
	if got := extractCommentSectionToken([]byte(`{"no":"comments"}`)); got != "" {
		t.Errorf("expected empty token, got %q", got)
	}
}

func TestDedupeComments(t *testing.T) {
	in := []Comment{
		{Text: "a", Likes: 1},
		{Text: "b"},
		{Text: "a", Likes: 99},
		{Text: "c"},
		{Text: "d"},
	}
	out := dedupeComments(in, 3)
	if len(out) != 3 {
		t.Fatalf("got %d comments, want 3", len(out))
	}
	if out[0].Text != "a" || out[1].Text != "b" || out[2].Text != "c" {
		t.Errorf("unexpected order: %v", out)
	}
	if out[0].Likes != 1 {
		t.Errorf("dedupe kept later duplicate instead of first")
	}
}
