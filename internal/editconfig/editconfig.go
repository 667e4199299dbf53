package editconfig

// SchemaVersion is the current configuration tree schema version.
const SchemaVersion = "1.1"

// Tree is the root of the edit configuration.
type Tree struct {
	ID       string   `json:"id"`
	Meta     Meta     `json:"meta"`
	Source   Source   `json:"source"`
	Timeline Timeline `json:"timeline"`
	Tracks   Tracks   `json:"tracks"`
	Settings Settings `json:"settings"`
	Export   Export   `json:"export"`
}

// Meta carries schema bookkeeping for a tree.
type Meta struct {
	SchemaVersion string  `json:"schemaVersion"`
	CreatedAt     string  `json:"createdAt"`
	Duration      float64 `json:"duration"`
	TimeUnit      string  `json:"timeUnit"`
}

// Source describes the input media.
type Source struct {
	Video VideoSource `json:"video"`
}

// VideoSource identifies the source video. Immutable after creation except
// through an explicit video replacement.
type VideoSource struct {
	ID          string  `json:"id"`
	URL         string  `json:"url"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio string  `json:"aspectRatio"`
	Duration    float64 `json:"duration"`
}

// Timeline bounds the editable region in seconds.
type Timeline struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Tracks groups the video-level and text-level tracks.
type Tracks struct {
	Video VideoTrack `json:"video"`
	Text  TextTrack  `json:"text"`
}

// VideoTrack holds whole-video effects.
type VideoTrack struct {
	Animation VideoAnimation `json:"animation"`
}

// VideoAnimation selects the video-level preset and its fade windows. A nil
// fade means that fade is disabled.
type VideoAnimation struct {
	PresetID string `json:"presetId"`
	FadeIn   *Fade  `json:"fadeIn,omitempty"`
	FadeOut  *Fade  `json:"fadeOut,omitempty"`
}

// Fade is one fade window in seconds.
type Fade struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// TextTrack holds caption content and shared caption styling.
type TextTrack struct {
	GlobalStyle    Style          `json:"globalStyle"`
	HighlightStyle HighlightStyle `json:"highlightStyle"`
	Animation      TextAnimation  `json:"animation"`
	Captions       []Caption      `json:"captions"`
	Title          *Caption       `json:"title,omitempty"`
	Highlights     []Highlight    `json:"highlights"`
}

// Style is the shared caption style.
type Style struct {
	FontFamily   string    `json:"fontFamily"`
	FontSize     float64   `json:"fontSize"`
	FontWeight   int       `json:"fontWeight"`
	Color        string    `json:"color"`
	Background   string    `json:"background"`
	Padding      []float64 `json:"padding"`
	BorderRadius float64   `json:"borderRadius"`
	Position     Position  `json:"position"`
}

// Position anchors text relative to the frame.
type Position struct {
	Anchor  string  `json:"anchor"`
	OffsetY float64 `json:"offsetY"`
}

// HighlightStyle styles emphasized words.
type HighlightStyle struct {
	Color      string  `json:"color"`
	Scale      float64 `json:"scale"`
	FontWeight int     `json:"fontWeight"`
}

// TextAnimation selects the entry, exit and highlight presets for captions.
type TextAnimation struct {
	Entry     AnimationSpec `json:"entry"`
	Exit      AnimationSpec `json:"exit"`
	Highlight AnimationSpec `json:"highlight"`
}

// AnimationSpec is one preset selection with its duration in seconds.
type AnimationSpec struct {
	PresetID string  `json:"presetId"`
	Duration float64 `json:"duration"`
}

// Caption is a timed text block. Style, Position, Animation and Effects are
// per-caption overrides of the track defaults; generation merges them key by
// key, so they stay open maps rather than fixed structs.
type Caption struct {
	ID            string         `json:"id"`
	Content       string         `json:"content"`
	Start         float64        `json:"start"`
	End           float64        `json:"end"`
	EmphasisWords []string       `json:"emphasis_words,omitempty"`
	Style         map[string]any `json:"style,omitempty"`
	Position      map[string]any `json:"position,omitempty"`
	Animation     map[string]any `json:"animation,omitempty"`
	Effects       map[string]any `json:"effects,omitempty"`
}

// Highlight marks a word range inside a caption for emphasis.
type Highlight struct {
	CaptionID      string `json:"captionId"`
	WordStartIndex int    `json:"wordStartIndex"`
	WordEndIndex   int    `json:"wordEndIndex"`
}

// Settings carries the feature toggles chosen at ingest.
type Settings struct {
	AutoCaptions      bool `json:"autoCaptions"`
	DynamicAnimations bool `json:"dynamicAnimations"`
	HighlightKeywords bool `json:"highlightKeywords"`
	IntroFadeIn       bool `json:"introFadeIn"`
	OutroFadeOut      bool `json:"outroFadeOut"`
}

// Export describes the requested output.
type Export struct {
	Resolution   Resolution `json:"resolution"`
	Format       string     `json:"format"`
	BurnCaptions bool       `json:"burnCaptions"`
}

// Resolution is the export frame size in pixels.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}
