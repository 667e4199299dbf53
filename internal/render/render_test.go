package render_test

import (
	"errors"
	"strings"
	"testing"

	"clipforge/internal/editconfig"
	"clipforge/internal/render"
	"clipforge/internal/services"
)

func testTree() editconfig.Tree {
	tree := editconfig.New("proj-1", "vid-1", "https://example.com/in.mp4", editconfig.VideoMetadata{
		Width:    1920,
		Height:   1080,
		Duration: 30,
	})
	tree.Tracks.Text.Captions = []editconfig.Caption{
		{ID: "caption_001", Content: "Hello world", Start: 1, End: 3.5},
		{ID: "caption_002", Content: "Second line", Start: 4, End: 6},
	}
	return tree
}

func TestSubtitlesDocument(t *testing.T) {
	tree := testTree()
	doc := render.Subtitles(tree)

	for _, want := range []string{
		"[Script Info]",
		"[V4+ Styles]",
		"Style: Default,Inter,14,&H00FFFFFF,",
		"Dialogue: 0,0:00:01.00,0:00:03.50,Default,,0,0,0,,Hello world",
		"Dialogue: 0,0:00:04.00,0:00:06.00,Default,,0,0,0,,Second line",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("subtitle document missing %q\n%s", want, doc)
		}
	}
}

func TestSubtitlesEmptyWithoutCaptions(t *testing.T) {
	tree := testTree()
	tree.Tracks.Text.Captions = nil
	if doc := render.Subtitles(tree); doc != "" {
		t.Fatalf("expected empty document, got %q", doc)
	}
}

func TestSubtitlesColorConversion(t *testing.T) {
	tree := testTree()
	tree.Tracks.Text.GlobalStyle.Color = "#ffd166"
	doc := render.Subtitles(tree)
	if !strings.Contains(doc, "&H0066D1FF") {
		t.Fatalf("expected BGR-ordered color in\n%s", doc)
	}
}

func TestSubtitlesEmphasizesWords(t *testing.T) {
	tree := testTree()
	tree.Tracks.Text.Captions[0].Content = "Hello brave world"
	tree.Tracks.Text.Captions[0].EmphasisWords = []string{"brave"}
	doc := render.Subtitles(tree)

	want := "Hello {\\c&H0066D1FF&}brave{\\c&H00FFFFFF&} world"
	if !strings.Contains(doc, want) {
		t.Fatalf("expected emphasized word span %q in\n%s", want, doc)
	}
	if !strings.Contains(doc, ",Second line\n") {
		t.Errorf("caption without emphasis should stay plain in\n%s", doc)
	}
}

func TestSubtitlesHighlightWordRanges(t *testing.T) {
	tree := testTree()
	tree.Tracks.Text.HighlightStyle.Color = "#ff0000"
	tree.Tracks.Text.Highlights = []editconfig.Highlight{
		{CaptionID: "caption_001", WordStartIndex: 0, WordEndIndex: 0},
	}
	doc := render.Subtitles(tree)

	if !strings.Contains(doc, "{\\c&H000000FF&}Hello{\\c&H00FFFFFF&} world") {
		t.Fatalf("expected highlighted word range in\n%s", doc)
	}
	if !strings.Contains(doc, ",Second line\n") {
		t.Errorf("unreferenced caption should stay plain in\n%s", doc)
	}
}

func TestSubtitlesEmphasisMatchesPunctuatedWords(t *testing.T) {
	tree := testTree()
	tree.Tracks.Text.Captions[1].Content = "Stay tuned."
	tree.Tracks.Text.Captions[1].EmphasisWords = []string{"tuned"}
	doc := render.Subtitles(tree)

	if !strings.Contains(doc, "Stay {\\c&H0066D1FF&}tuned.{\\c&H00FFFFFF&}") {
		t.Fatalf("expected emphasis to match the punctuated word in\n%s", doc)
	}
}

func TestSubtitlesTimeFormat(t *testing.T) {
	tree := testTree()
	tree.Tracks.Text.Captions = []editconfig.Caption{
		{ID: "caption_001", Content: "late", Start: 3661.25, End: 3663},
	}
	doc := render.Subtitles(tree)
	if !strings.Contains(doc, "1:01:01.25") {
		t.Fatalf("timestamp not formatted as H:MM:SS.CC:\n%s", doc)
	}
}

func TestVideoFilters(t *testing.T) {
	tree := testTree()
	filters := render.VideoFilters(tree)
	if len(filters) != 2 {
		t.Fatalf("filters = %v", filters)
	}
	if filters[0] != "fade=t=in:st=0:d=0.8" {
		t.Errorf("fade in = %q", filters[0])
	}
	if filters[1] != "fade=t=out:st=28:d=2" {
		t.Errorf("fade out = %q", filters[1])
	}

	tree.Tracks.Video.Animation.FadeIn = nil
	tree.Tracks.Video.Animation.FadeOut = nil
	if filters := render.VideoFilters(tree); len(filters) != 0 {
		t.Fatalf("disabled fades still produced %v", filters)
	}
}

func TestCaptionFilterExpressions(t *testing.T) {
	tree := testTree()
	filter := render.CaptionFilter(tree, "")

	// Default entry is slide_up_fade: both an opacity ramp and a vertical
	// slide must appear, gated on the caption window.
	for _, want := range []string{
		"drawtext=text='Hello world'",
		"enable='between(t,1,3.5)'",
		"(t-1)/0.2",
		"+50*(1-(t-1)/0.2)",
		"fontcolor=ffffff@",
		"boxcolor=0x72000000",
	} {
		if !strings.Contains(filter, want) {
			t.Errorf("caption filter missing %q\n%s", want, filter)
		}
	}
}

func TestCaptionFilterEscapesText(t *testing.T) {
	tree := testTree()
	tree.Tracks.Text.Captions = []editconfig.Caption{
		{ID: "caption_001", Content: "it's a ratio 16:9", Start: 0, End: 1},
	}
	filter := render.CaptionFilter(tree, "")
	if !strings.Contains(filter, `it\'s a ratio 16\:9`) {
		t.Fatalf("special characters not escaped:\n%s", filter)
	}
}

func TestCompileScalesPreservingAspect(t *testing.T) {
	cases := []struct {
		resolution render.Resolution
		width      int
		height     int
	}{
		{render.Resolution1080p, 1920, 1080},
		{render.Resolution720p, 1280, 720},
		{render.Resolution480p, 854, 480},
	}
	for _, tc := range cases {
		spec, err := render.Compile(testTree(), render.Options{Resolution: tc.resolution})
		if err != nil {
			t.Fatalf("%s: Compile failed: %v", tc.resolution, err)
		}
		if spec.Width != tc.width || spec.Height != tc.height {
			t.Errorf("%s: got %dx%d, want %dx%d", tc.resolution, spec.Width, spec.Height, tc.width, tc.height)
		}
	}
}

func TestCompileOriginalResolutionKeepsSource(t *testing.T) {
	spec, err := render.Compile(testTree(), render.Options{})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if spec.Width != 0 || spec.Height != 0 {
		t.Fatalf("original resolution must not scale, got %dx%d", spec.Width, spec.Height)
	}
}

func TestCompileQualityMapping(t *testing.T) {
	cases := []struct {
		quality render.Quality
		crf     int
		preset  string
	}{
		{render.QualityHigh, 18, "slow"},
		{render.QualityMedium, 23, "medium"},
		{render.QualityLow, 28, "fast"},
	}
	for _, tc := range cases {
		spec, err := render.Compile(testTree(), render.Options{Quality: tc.quality})
		if err != nil {
			t.Fatalf("%s: Compile failed: %v", tc.quality, err)
		}
		if spec.CRF != tc.crf || spec.Preset != tc.preset {
			t.Errorf("%s: got crf %d preset %q", tc.quality, spec.CRF, spec.Preset)
		}
	}
}

func TestCompileRejectsMissingSource(t *testing.T) {
	tree := testTree()
	tree.Source.Video.URL = ""
	if _, err := render.Compile(tree, render.Options{}); !errors.Is(err, services.ErrCompile) {
		t.Fatalf("expected ErrCompile, got %v", err)
	}

	tree = testTree()
	tree.Meta.Duration = 0
	if _, err := render.Compile(tree, render.Options{}); !errors.Is(err, services.ErrCompile) {
		t.Fatalf("expected ErrCompile for zero duration, got %v", err)
	}
}

func TestCompileRejectsUnknownOptions(t *testing.T) {
	if _, err := render.Compile(testTree(), render.Options{Resolution: "4k"}); !errors.Is(err, services.ErrCompile) {
		t.Fatalf("expected ErrCompile for unknown resolution, got %v", err)
	}
	if _, err := render.Compile(testTree(), render.Options{Quality: "ultra"}); !errors.Is(err, services.ErrCompile) {
		t.Fatalf("expected ErrCompile for unknown quality, got %v", err)
	}
}

func TestCompileBurnCaptionsOff(t *testing.T) {
	tree := testTree()
	tree.Export.BurnCaptions = false
	spec, err := render.Compile(tree, render.Options{})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if spec.Subtitles != "" || spec.CaptionFilter != "" {
		t.Fatal("captions compiled despite burnCaptions=false")
	}
}

func TestSpecArgs(t *testing.T) {
	spec, err := render.Compile(testTree(), render.Options{Resolution: render.Resolution720p})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	args := strings.Join(spec.Args("/tmp/subs.ass", "/tmp/out.mp4"), " ")

	for _, want := range []string{
		"-i https://example.com/in.mp4",
		"fade=t=in:st=0:d=0.8,fade=t=out:st=28:d=2,subtitles='/tmp/subs.ass'",
		"-s 1280x720",
		"-crf 18 -preset slow",
		"-c:v libx264 -c:a aac -b:a 192k -movflags +faststart -y /tmp/out.mp4",
	} {
		if !strings.Contains(args, want) {
			t.Errorf("args missing %q\n%s", want, args)
		}
	}
}

func TestSpecArgsDrawtextFallback(t *testing.T) {
	spec, err := render.Compile(testTree(), render.Options{})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	args := strings.Join(spec.Args("", "/tmp/out.mp4"), " ")
	if strings.Contains(args, "subtitles=") {
		t.Fatal("subtitle filter present without a staged file")
	}
	if !strings.Contains(args, "drawtext=text=") {
		t.Fatalf("drawtext fallback missing:\n%s", args)
	}
}
