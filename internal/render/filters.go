package render

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"clipforge/internal/editconfig"
)

// DefaultFontFile is the drawtext font used when the configuration does not
// supply one.
const DefaultFontFile = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"

var rgbaPattern = regexp.MustCompile(`rgba\((\d+),\s*(\d+),\s*(\d+),\s*([\d.]+)\)`)

// VideoFilters builds the fade in/out filter chain for the video track. An
// absent fade contributes nothing.
func VideoFilters(tree editconfig.Tree) []string {
	animation := tree.Tracks.Video.Animation
	var filters []string
	if fade := animation.FadeIn; fade != nil {
		filters = append(filters, fmt.Sprintf("fade=t=in:st=%s:d=%s", ftoa(fade.Start), ftoa(fade.Duration)))
	}
	if fade := animation.FadeOut; fade != nil {
		filters = append(filters, fmt.Sprintf("fade=t=out:st=%s:d=%s", ftoa(fade.Start), ftoa(fade.Duration)))
	}
	return filters
}

// CaptionFilter builds a drawtext filter chain that burns captions directly,
// used when no subtitle renderer is available. Entry and exit presets become
// opacity ramps and vertical offsets gated on the caption's time window.
func CaptionFilter(tree editconfig.Tree, fontFile string) string {
	captions := tree.Tracks.Text.Captions
	if len(captions) == 0 {
		return ""
	}
	if fontFile == "" {
		fontFile = DefaultFontFile
	}
	style := tree.Tracks.Text.GlobalStyle
	animation := tree.Tracks.Text.Animation

	fontColor := strings.TrimPrefix(style.Color, "#")
	boxColor := boxHex(style.Background)
	yPos := anchorExpr(style.Position)

	filters := make([]string, 0, len(captions))
	for _, caption := range captions {
		text := escapeDrawtext(caption.Content)
		alpha := alphaExpr(caption.Start, caption.End, animation)
		y := slideExpr(yPos, caption.Start, animation.Entry)

		filters = append(filters, fmt.Sprintf(
			"drawtext=text='%s':fontfile=%s:fontsize=%s:fontcolor=%s@%s:box=1:boxcolor=%s:boxborderw=10:x=(w-text_w)/2:y=%s:enable='between(t,%s,%s)'",
			text, fontFile, ftoa(style.FontSize), fontColor, alpha, boxColor, y,
			ftoa(caption.Start), ftoa(caption.End)))
	}
	return strings.Join(filters, ",")
}

// alphaExpr composes the per-caption opacity ramp from the entry and exit
// presets. Fade-style presets ramp linearly over their duration; everything
// else holds full opacity inside the window.
func alphaExpr(start, end float64, animation editconfig.TextAnimation) string {
	entryFades := fadesIn(animation.Entry.PresetID)
	exitFades := fadesOut(animation.Exit.PresetID)
	entryEnd := start + animation.Entry.Duration
	fadeStart := end - animation.Exit.Duration

	switch {
	case entryFades && exitFades:
		return fmt.Sprintf("if(lt(t,%s),0,if(lt(t,%s),(t-%s)/%s,if(lt(t,%s),1,if(lt(t,%s),1-(t-%s)/%s,0))))",
			ftoa(start), ftoa(entryEnd), ftoa(start), ftoa(animation.Entry.Duration),
			ftoa(fadeStart), ftoa(end), ftoa(fadeStart), ftoa(animation.Exit.Duration))
	case entryFades:
		return fmt.Sprintf("if(lt(t,%s),0,if(lt(t,%s),(t-%s)/%s,1))",
			ftoa(start), ftoa(entryEnd), ftoa(start), ftoa(animation.Entry.Duration))
	case exitFades:
		return fmt.Sprintf("if(lt(t,%s),1,if(lt(t,%s),1-(t-%s)/%s,0))",
			ftoa(fadeStart), ftoa(end), ftoa(fadeStart), ftoa(animation.Exit.Duration))
	default:
		return "1"
	}
}

// slideExpr offsets the caption vertically during a slide entry, easing back
// to the resting position over the entry duration.
func slideExpr(yPos string, start float64, entry editconfig.AnimationSpec) string {
	entryEnd := start + entry.Duration
	switch {
	case strings.HasPrefix(entry.PresetID, "slide_up"):
		return fmt.Sprintf("if(lt(t,%s),%s+50*(1-(t-%s)/%s),%s)",
			ftoa(entryEnd), yPos, ftoa(start), ftoa(entry.Duration), yPos)
	case strings.HasPrefix(entry.PresetID, "slide_down"):
		return fmt.Sprintf("if(lt(t,%s),%s-50*(1-(t-%s)/%s),%s)",
			ftoa(entryEnd), yPos, ftoa(start), ftoa(entry.Duration), yPos)
	default:
		return yPos
	}
}

func fadesIn(preset string) bool {
	switch preset {
	case "fade_in", "slide_up_fade", "slide_down_fade", "slide_left_fade", "slide_right_fade", "scale_up_fade", "scale_down_fade":
		return true
	}
	return false
}

func fadesOut(preset string) bool {
	switch preset {
	case "fade_out", "slide_up_fade_out", "slide_down_fade_out", "slide_left_fade_out", "slide_right_fade_out", "scale_up_fade_out", "scale_down_fade_out":
		return true
	}
	return false
}

// anchorExpr positions the text block vertically for the configured anchor,
// in drawtext coordinate terms.
func anchorExpr(position editconfig.Position) string {
	offset := fmt.Sprintf("%+d", int(position.OffsetY))
	switch {
	case strings.Contains(position.Anchor, "bottom"):
		return "h-text_h" + offset
	case strings.Contains(position.Anchor, "top"):
		return "0" + offset
	default:
		return "(h-text_h)/2" + offset
	}
}

// boxHex converts a CSS rgba() background into ffmpeg's 0xAARRGGBB form.
// Unrecognized values become semi-transparent black.
func boxHex(background string) string {
	match := rgbaPattern.FindStringSubmatch(background)
	if match == nil {
		return "0x80000000"
	}
	r, _ := strconv.Atoi(match[1])
	g, _ := strconv.Atoi(match[2])
	b, _ := strconv.Atoi(match[3])
	a, _ := strconv.ParseFloat(match[4], 64)
	return fmt.Sprintf("0x%02x%02x%02x%02x", int(a*255), r, g, b)
}

// escapeDrawtext escapes the characters drawtext treats specially inside a
// quoted text value.
func escapeDrawtext(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, `'`, `\'`)
	text = strings.ReplaceAll(text, `:`, `\:`)
	return text
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
