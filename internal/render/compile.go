package render

import (
	"fmt"
	"strconv"
	"strings"

	"clipforge/internal/editconfig"
	"clipforge/internal/services"
)

// Resolution names an output resolution preset.
type Resolution string

// Output resolution presets. Original keeps the source dimensions.
const (
	ResolutionOriginal Resolution = "original"
	Resolution1080p    Resolution = "1080p"
	Resolution720p     Resolution = "720p"
	Resolution480p     Resolution = "480p"
)

// Quality names an encode quality tier.
type Quality string

// Quality tiers, mapped to x264 CRF and speed presets.
const (
	QualityHigh   Quality = "high"
	QualityMedium Quality = "medium"
	QualityLow    Quality = "low"
)

var targetHeights = map[Resolution]int{
	Resolution1080p: 1080,
	Resolution720p:  720,
	Resolution480p:  480,
}

var qualityParams = map[Quality]struct {
	crf    int
	preset string
}{
	QualityHigh:   {18, "slow"},
	QualityMedium: {23, "medium"},
	QualityLow:    {28, "fast"},
}

// Options selects the output resolution and quality for a compile. Zero
// values mean original resolution at high quality.
type Options struct {
	Resolution Resolution
	Quality    Quality
	FontFile   string
}

// Spec is a compiled render: everything an encoder invocation needs, with
// the subtitle content left for the caller to stage on disk.
type Spec struct {
	InputURL string
	Duration float64

	// Subtitles is the ASS document to burn, empty when the export does not
	// burn captions.
	Subtitles string

	// Filters is the video filter chain exclusive of the subtitle overlay.
	Filters []string

	// CaptionFilter is the drawtext fallback chain, used when the subtitle
	// document cannot be staged as a file.
	CaptionFilter string

	// Width and Height are the output dimensions; zero means keep source.
	Width  int
	Height int

	CRF    int
	Preset string
}

func compileErr(operation, message string) error {
	return services.Wrap(services.ErrCompile, "render", operation, message, nil)
}

// Compile turns a configuration tree into a render spec. The tree is not
// modified; captions and highlights are dropped from the compiled output when
// the export does not burn captions.
func Compile(tree editconfig.Tree, opts Options) (*Spec, error) {
	source := tree.Source.Video
	if strings.TrimSpace(source.URL) == "" {
		return nil, compileErr("compile", "source video has no url")
	}
	if tree.Meta.Duration <= 0 {
		return nil, compileErr("compile", "source video has no duration")
	}

	resolution := opts.Resolution
	if resolution == "" {
		resolution = ResolutionOriginal
	}
	quality := opts.Quality
	if quality == "" {
		quality = QualityHigh
	}
	params, ok := qualityParams[quality]
	if !ok {
		return nil, compileErr("compile", fmt.Sprintf("unknown quality %q", quality))
	}

	spec := &Spec{
		InputURL: source.URL,
		Duration: tree.Meta.Duration,
		Filters:  VideoFilters(tree),
		CRF:      params.crf,
		Preset:   params.preset,
	}

	if resolution != ResolutionOriginal {
		height, ok := targetHeights[resolution]
		if !ok {
			return nil, compileErr("compile", fmt.Sprintf("unknown resolution %q", resolution))
		}
		if source.Width <= 0 || source.Height <= 0 {
			return nil, compileErr("compile", "source video has no dimensions")
		}
		spec.Width, spec.Height = scaleTo(source.Width, source.Height, height)
	}

	if tree.Export.BurnCaptions {
		spec.Subtitles = Subtitles(tree)
		spec.CaptionFilter = CaptionFilter(tree, opts.FontFile)
	}

	return spec, nil
}

// scaleTo computes aspect-preserving output dimensions for a target height,
// rounded up to even values as H.264 requires.
func scaleTo(sourceWidth, sourceHeight, targetHeight int) (int, int) {
	aspect := float64(sourceWidth) / float64(sourceHeight)
	width := int(float64(targetHeight) * aspect)
	if width%2 != 0 {
		width++
	}
	if targetHeight%2 != 0 {
		targetHeight++
	}
	return width, targetHeight
}

// Args assembles the ffmpeg argument list for this spec. subtitlePath is the
// staged ASS file, empty when there are no subtitles to burn; when subtitles
// exist but could not be staged the drawtext fallback chain is used instead.
func (s *Spec) Args(subtitlePath, outputPath string) []string {
	args := []string{"-i", s.InputURL}

	filters := append([]string(nil), s.Filters...)
	switch {
	case subtitlePath != "":
		filters = append(filters, fmt.Sprintf("subtitles='%s'", escapeFilterPath(subtitlePath)))
	case s.CaptionFilter != "":
		filters = append(filters, s.CaptionFilter)
	}
	if len(filters) > 0 {
		args = append(args, "-vf", strings.Join(filters, ","))
	}

	if s.Width > 0 && s.Height > 0 {
		args = append(args, "-s", fmt.Sprintf("%dx%d", s.Width, s.Height))
	}

	args = append(args,
		"-crf", strconv.Itoa(s.CRF),
		"-preset", s.Preset,
		"-c:v", "libx264",
		"-c:a", "aac",
		"-b:a", "192k",
		"-movflags", "+faststart",
		"-y",
		outputPath,
	)
	return args
}

// escapeFilterPath escapes a filesystem path for use inside a filter value.
func escapeFilterPath(path string) string {
	path = strings.ReplaceAll(path, `\`, `\\`)
	path = strings.ReplaceAll(path, `:`, `\:`)
	return path
}
