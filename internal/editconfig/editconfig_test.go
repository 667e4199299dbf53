package editconfig_test

import (
	"testing"

	"clipforge/internal/editconfig"
)

func TestNewBuildsDefaultedTree(t *testing.T) {
	tree := editconfig.New("proj-1", "vid-1", "https://example.com/in.mp4", editconfig.VideoMetadata{
		Width:    1920,
		Height:   1080,
		Duration: 42.5,
	})

	if tree.Meta.SchemaVersion != editconfig.SchemaVersion {
		t.Errorf("schema version = %q", tree.Meta.SchemaVersion)
	}
	if tree.Meta.TimeUnit != "seconds" {
		t.Errorf("time unit = %q", tree.Meta.TimeUnit)
	}
	if tree.Timeline.Start != 0 || tree.Timeline.End != 42.5 {
		t.Errorf("timeline = %+v", tree.Timeline)
	}
	if tree.Source.Video.AspectRatio != "16:9" {
		t.Errorf("aspect ratio default = %q", tree.Source.Video.AspectRatio)
	}

	anim := tree.Tracks.Video.Animation
	if anim.FadeIn == nil || anim.FadeIn.Start != 0 || anim.FadeIn.Duration != 0.8 {
		t.Errorf("fadeIn = %+v", anim.FadeIn)
	}
	if anim.FadeOut == nil || anim.FadeOut.Start != 40.5 || anim.FadeOut.Duration != 2.0 {
		t.Errorf("fadeOut = %+v", anim.FadeOut)
	}
	if !tree.Export.BurnCaptions {
		t.Error("burnCaptions should default to true")
	}
}

func TestDefaultFadeOutStartClampsToZero(t *testing.T) {
	if got := editconfig.DefaultFadeOutStart(1.0); got != 0 {
		t.Errorf("fade-out start for a 1s video = %v, want 0", got)
	}
}

func TestCaptionID(t *testing.T) {
	if got := editconfig.CaptionID(0); got != "caption_001" {
		t.Errorf("CaptionID(0) = %q", got)
	}
	if got := editconfig.CaptionID(41); got != "caption_042" {
		t.Errorf("CaptionID(41) = %q", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	tree := editconfig.New("proj-1", "vid-1", "url", editconfig.VideoMetadata{Duration: 10})
	tree.Tracks.Text.Captions = []editconfig.Caption{
		{
			ID:            "caption_001",
			Content:       "hello",
			Start:         0,
			End:           1,
			EmphasisWords: []string{"hello"},
			Animation:     map[string]any{"entry": "fade_in"},
		},
	}
	tree.Tracks.Text.Highlights = []editconfig.Highlight{{CaptionID: "caption_001", WordEndIndex: 1}}

	clone := tree.Clone()
	clone.Tracks.Video.Animation.FadeIn.Duration = 99
	clone.Tracks.Text.Captions[0].Content = "changed"
	clone.Tracks.Text.Captions[0].EmphasisWords[0] = "changed"
	clone.Tracks.Text.Captions[0].Animation["entry"] = "pop_in"
	clone.Tracks.Text.Highlights[0].CaptionID = "caption_999"
	clone.Tracks.Text.GlobalStyle.Padding[0] = 99

	if tree.Tracks.Video.Animation.FadeIn.Duration != 0.8 {
		t.Error("fadeIn shared between clone and original")
	}
	if tree.Tracks.Text.Captions[0].Content != "hello" {
		t.Error("caption content shared")
	}
	if tree.Tracks.Text.Captions[0].EmphasisWords[0] != "hello" {
		t.Error("emphasis words shared")
	}
	if tree.Tracks.Text.Captions[0].Animation["entry"] != "fade_in" {
		t.Error("caption animation map shared")
	}
	if tree.Tracks.Text.Highlights[0].CaptionID != "caption_001" {
		t.Error("highlights shared")
	}
	if tree.Tracks.Text.GlobalStyle.Padding[0] != 12 {
		t.Error("padding shared")
	}
}
