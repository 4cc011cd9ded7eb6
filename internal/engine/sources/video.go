package sources

import (
	"context"
	"errors"
	"regexp"
	"strconv"

	"github.com/anatolykoptev/gapsight/internal/engine"
)

var videoIDRE = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|shorts/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// ExtractVideoID pulls the 11-char video ID from any YouTube URL format,
// including /watch, youtu.be short links, and /shorts.
func ExtractVideoID(rawURL string) string {
	m := videoIDRE.FindStringSubmatch(rawURL)
	if len(m) >= 2 {
		return m[1]
	}
	return ""
}

// VideoMeta describes a YouTube video, used to head analysis reports.
type VideoMeta struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	Views       int64  `json:"views"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
}

// FetchVideoMeta fetches video metadata via the ANDROID Innertube /player endpoint.
func FetchVideoMeta(ctx context.Context, videoID string) (*VideoMeta, error) {
	playerResp, err := postInnerTubeAndroid(ctx, videoID)
	if err != nil {
		return nil, err
	}
	d := playerResp.VideoDetails
	if d == nil {
		if playerResp.PlayabilityStatus != nil && playerResp.PlayabilityStatus.Reason != "" {
			return nil, errors.New("video unavailable: " + playerResp.PlayabilityStatus.Reason)
		}
		return nil, errors.New("no videoDetails in player response")
	}

	views, _ := strconv.ParseInt(d.ViewCount, 10, 64)
	return &VideoMeta{
		ID:          videoID,
		Title:       d.Title,
		Channel:     d.Author,
		Views:       views,
		Description: engine.TruncateRunes(d.ShortDescription, 300, "..."),
		URL:         "https://www.youtube.com/watch?v=" + videoID,
	}, nil
}
