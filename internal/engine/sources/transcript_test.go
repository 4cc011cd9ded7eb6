package sources

import "testing"

func TestNeedsPoToken(t *testing.T) {
	if !needsPoToken("https://www.youtube.com/api/timedtext?v=x&exp=xpe&lang=en") {
		t.Error("expected po-token gate to be detected")
	}
	if needsPoToken("https://www.youtube.com/api/timedtext?v=x&lang=en") {
		t.Error("plain timedtext URL misdetected as gated")
	}
}

func TestPickBestTrack(t *testing.T) {
	manual := func(lang string) captionTrack {
		return captionTrack{BaseURL: "https://yt/tt?lang=" + lang, LanguageCode: lang}
	}
	auto := func(lang string) captionTrack {
		return captionTrack{BaseURL: "https://yt/tt?lang=" + lang + "&kind=asr", LanguageCode: lang, Kind: "asr"}
	}
	gated := captionTrack{BaseURL: "https://yt/tt?lang=en&exp=xpe", LanguageCode: "en"}

	t.Run("manual beats auto in preferred language", func(t *testing.T) {
		track, ok := pickBestTrack([]captionTrack{auto("en"), manual("en")}, []string{"en"})
		if !ok || track.Kind == "asr" {
			t.Errorf("got kind=%q ok=%v, want manual track", track.Kind, ok)
		}
	})

	t.Run("preferred language order", func(t *testing.T) {
		track, ok := pickBestTrack([]captionTrack{manual("de"), manual("fr")}, []string{"fr", "de"})
		if !ok || track.LanguageCode != "fr" {
			t.Errorf("got %q ok=%v, want fr", track.LanguageCode, ok)
		}
	})

	t.Run("auto track when no manual in language", func(t *testing.T) {
		track, ok := pickBestTrack([]captionTrack{manual("de"), auto("en")}, []string{"en"})
		if !ok || track.LanguageCode != "en" || track.Kind != "asr" {
			t.Errorf("got %q/%q ok=%v, want en asr", track.LanguageCode, track.Kind, ok)
		}
	})

	t.Run("english fallback", func(t *testing.T) {
		track, ok := pickBestTrack([]captionTrack{manual("de"), manual("en-GB")}, []string{"ja"})
		if !ok || track.LanguageCode != "en-GB" {
			t.Errorf("got %q ok=%v, want en-GB", track.LanguageCode, ok)
		}
	})

	t.Run("gated tracks are skipped", func(t *testing.T) {
		track, ok := pickBestTrack([]captionTrack{gated, manual("de")}, []string{"en"})
		if !ok || track.LanguageCode != "de" {
			t.Errorf("got %q ok=%v, want de", track.LanguageCode, ok)
		}
	})

	t.Run("all gated returns not ok", func(t *testing.T) {
		_, ok := pickBestTrack([]captionTrack{gated}, []string{"en"})
		if ok {
			t.Error("expected ok=false when every track is gated")
		}
	})
}
