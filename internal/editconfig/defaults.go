package editconfig

import (
	"fmt"
	"time"
)

// Default styling and animation values applied to newly created trees. These
// match the values the front end renders before any edit instruction arrives.
const (
	defaultFontFamily   = "Inter"
	defaultFontSize     = 14
	defaultFontWeight   = 700
	defaultFontColor    = "#ffffff"
	defaultBackground   = "rgba(0,0,0,0.45)"
	defaultBorderRadius = 12
	defaultAnchor       = "bottom_center"
	defaultOffsetY      = -50

	defaultHighlightColor  = "#ffd166"
	defaultHighlightScale  = 1.03
	defaultHighlightWeight = 800

	defaultEntryPreset       = "slide_up_fade"
	defaultEntryDuration     = 0.2
	defaultExitPreset        = "fade_out"
	defaultExitDuration      = 0.2
	defaultHighlightPreset   = "none"
	defaultHighlightDuration = 0.4

	// DefaultFadeInStart and friends are the fade windows reconstructed when a
	// disabled fade is re-enabled without explicit values.
	DefaultFadeInStart     = 0.0
	DefaultFadeInDuration  = 0.8
	DefaultFadeOutDuration = 2.0

	defaultTitleDuration = 3.0
)

// VideoMetadata is the probed description of a source video supplied at
// project creation.
type VideoMetadata struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Duration    float64 `json:"duration"`
	AspectRatio string  `json:"aspect_ratio"`
}

// DefaultFadeOutStart computes where the default fade-out window begins for a
// video of the given duration.
func DefaultFadeOutStart(duration float64) float64 {
	start := duration - DefaultFadeOutDuration
	if start < 0 {
		return 0
	}
	return start
}

// New builds the defaulted configuration tree for a fresh project.
func New(projectID, videoID, videoURL string, meta VideoMetadata) Tree {
	aspect := meta.AspectRatio
	if aspect == "" {
		aspect = "16:9"
	}
	duration := meta.Duration

	return Tree{
		ID: projectID,
		Meta: Meta{
			SchemaVersion: SchemaVersion,
			CreatedAt:     time.Now().UTC().Format(time.RFC3339),
			Duration:      duration,
			TimeUnit:      "seconds",
		},
		Source: Source{
			Video: VideoSource{
				ID:          videoID,
				URL:         videoURL,
				Width:       meta.Width,
				Height:      meta.Height,
				AspectRatio: aspect,
				Duration:    duration,
			},
		},
		Timeline: Timeline{Start: 0, End: duration},
		Tracks: Tracks{
			Video: VideoTrack{
				Animation: VideoAnimation{
					PresetID: "fade_in_out",
					FadeIn:   &Fade{Start: DefaultFadeInStart, Duration: DefaultFadeInDuration},
					FadeOut:  &Fade{Start: DefaultFadeOutStart(duration), Duration: DefaultFadeOutDuration},
				},
			},
			Text: TextTrack{
				GlobalStyle: Style{
					FontFamily:   defaultFontFamily,
					FontSize:     defaultFontSize,
					FontWeight:   defaultFontWeight,
					Color:        defaultFontColor,
					Background:   defaultBackground,
					Padding:      []float64{12, 16},
					BorderRadius: defaultBorderRadius,
					Position:     Position{Anchor: defaultAnchor, OffsetY: defaultOffsetY},
				},
				HighlightStyle: HighlightStyle{
					Color:      defaultHighlightColor,
					Scale:      defaultHighlightScale,
					FontWeight: defaultHighlightWeight,
				},
				Animation: TextAnimation{
					Entry:     AnimationSpec{PresetID: defaultEntryPreset, Duration: defaultEntryDuration},
					Exit:      AnimationSpec{PresetID: defaultExitPreset, Duration: defaultExitDuration},
					Highlight: AnimationSpec{PresetID: defaultHighlightPreset, Duration: defaultHighlightDuration},
				},
				Captions:   []Caption{},
				Highlights: []Highlight{},
			},
		},
		Settings: Settings{
			AutoCaptions:      true,
			DynamicAnimations: true,
			HighlightKeywords: true,
			IntroFadeIn:       true,
			OutroFadeOut:      true,
		},
		Export: Export{
			Resolution:   Resolution{Width: meta.Width, Height: meta.Height},
			Format:       "mp4",
			BurnCaptions: true,
		},
	}
}

// CaptionID derives the deterministic caption id for a zero-based index, as
// regenerated during full-generation merges.
func CaptionID(index int) string {
	return fmt.Sprintf("caption_%03d", index+1)
}

// DefaultCaption builds a freshly defaulted caption block for the given index.
func DefaultCaption(index int) Caption {
	return Caption{ID: CaptionID(index)}
}

// DefaultTitle builds the defaulted title block shown over the opening of the
// video.
func DefaultTitle(content string, duration float64) *Caption {
	end := defaultTitleDuration
	if duration > 0 && duration < end {
		end = duration
	}
	return &Caption{
		ID:      "title_001",
		Content: content,
		Start:   0,
		End:     end,
	}
}
