package render

import (
	"fmt"
	"strings"

	"clipforge/internal/editconfig"
)

// Subtitles renders the caption track as an ASS subtitle document. Returns
// the empty string when there are no captions to burn.
func Subtitles(tree editconfig.Tree) string {
	captions := tree.Tracks.Text.Captions
	if len(captions) == 0 {
		return ""
	}
	style := tree.Tracks.Text.GlobalStyle

	var b strings.Builder
	b.WriteString("[Script Info]\n")
	b.WriteString("Title: Video Captions\n")
	b.WriteString("ScriptType: v4.00+\n")
	b.WriteString("WrapStyle: 0\n")
	b.WriteString("PlayResX: 1920\n")
	b.WriteString("PlayResY: 1080\n\n")

	b.WriteString("[V4+ Styles]\n")
	b.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	fmt.Fprintf(&b, "Style: Default,%s,%g,%s,&H000000FF,&H00000000,&H80000000,-1,0,0,0,100,100,0,0,1,2,0,2,10,10,50,1\n\n",
		style.FontFamily, style.FontSize, assColor(style.Color))

	baseColor := assColor(style.Color)
	hlColor := highlightColor(tree.Tracks.Text.HighlightStyle.Color)

	b.WriteString("[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, caption := range captions {
		text := dialogueText(caption, tree.Tracks.Text.Highlights, baseColor, hlColor)
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			assTime(caption.Start), assTime(caption.End), text)
	}
	return b.String()
}

// dialogueText renders a caption's content, wrapping emphasized words in an
// inline color override that resets to the style color afterwards. Words are
// emphasized when a highlight's word range covers them or when they appear in
// the caption's emphasis list.
func dialogueText(caption editconfig.Caption, highlights []editconfig.Highlight, baseColor, hlColor string) string {
	words := strings.Fields(caption.Content)
	marked := emphasizedIndices(caption, highlights, words)
	if len(marked) == 0 {
		return strings.ReplaceAll(caption.Content, "\n", "\\N")
	}

	parts := make([]string, len(words))
	for i, word := range words {
		if marked[i] {
			parts[i] = fmt.Sprintf("{\\c%s&}%s{\\c%s&}", hlColor, word, baseColor)
		} else {
			parts[i] = word
		}
	}
	return strings.Join(parts, " ")
}

func emphasizedIndices(caption editconfig.Caption, highlights []editconfig.Highlight, words []string) map[int]bool {
	marked := make(map[int]bool)
	for _, highlight := range highlights {
		if highlight.CaptionID != caption.ID {
			continue
		}
		for i := highlight.WordStartIndex; i <= highlight.WordEndIndex && i < len(words); i++ {
			if i >= 0 {
				marked[i] = true
			}
		}
	}
	for _, target := range caption.EmphasisWords {
		for i, word := range words {
			if word == target || strings.Trim(word, ".,!?") == target {
				marked[i] = true
			}
		}
	}
	return marked
}

// assTime formats seconds as the ASS H:MM:SS.CC timestamp.
func assTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	centis := int((seconds - float64(total)) * 100)
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centis)
}

// assColor converts a #RRGGBB hex color into the ASS &HAABBGGRR form.
// Anything unparseable falls back to opaque white.
func assColor(color string) string {
	if !strings.HasPrefix(color, "#") || len(color) != 7 {
		return "&H00FFFFFF"
	}
	hex := color[1:]
	r, g, b := hex[0:2], hex[2:4], hex[4:6]
	return fmt.Sprintf("&H00%s%s%s", strings.ToUpper(b), strings.ToUpper(g), strings.ToUpper(r))
}

// highlightColor converts the highlight style color, falling back to the
// default highlight yellow rather than white so emphasis stays visible
// against a white caption style.
func highlightColor(color string) string {
	if strings.HasPrefix(color, "#") && len(color) == 7 {
		return assColor(color)
	}
	return "&H0066D1FF"
}
