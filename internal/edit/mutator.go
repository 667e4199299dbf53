package edit

import (
	"encoding/json"

	"clipforge/internal/editconfig"
)

// Apply applies one validated instruction and returns the resulting tree.
// The input tree is never modified; every call works on a deep copy. An
// instruction with an unknown action is a no-op that returns the tree
// unchanged; unknown actions are the validator's job to catch.
func Apply(tree editconfig.Tree, in Instruction) editconfig.Tree {
	out := tree.Clone()

	switch in.Action {
	case ActionUpdateTextAnimation:
		applyTextAnimation(&out, in)
	case ActionUpdateVideoAnimation:
		out.Tracks.Video.Animation.PresetID = in.PresetID
	case ActionUpdateTextStyle:
		switch in.Target {
		case "globalStyle":
			applyGlobalStyle(&out.Tracks.Text.GlobalStyle, in.Properties)
		case "highlightStyle":
			applyHighlightStyle(&out.Tracks.Text.HighlightStyle, in.Properties)
		}
	case ActionUpdateHighlightStyle:
		applyHighlightStyle(&out.Tracks.Text.HighlightStyle, in.Properties)
	case ActionUpdateTextPosition:
		applyPosition(&out.Tracks.Text.GlobalStyle.Position, in.Properties)
	case ActionUpdateVideoFade:
		applyVideoFade(&out, in)
	case ActionUpdateHighlights:
		applyHighlights(&out, in)
	}
	return out
}

func applyTextAnimation(tree *editconfig.Tree, in Instruction) {
	var spec *editconfig.AnimationSpec
	switch in.Target {
	case "entry":
		spec = &tree.Tracks.Text.Animation.Entry
	case "exit":
		spec = &tree.Tracks.Text.Animation.Exit
	case "highlight":
		spec = &tree.Tracks.Text.Animation.Highlight
	default:
		return
	}
	spec.PresetID = in.PresetID
	if in.Duration != nil {
		spec.Duration = *in.Duration
	}
}

// Style updates are shallow per-key overwrites: only keys present in the
// instruction change, everything else survives untouched.
func applyGlobalStyle(style *editconfig.Style, properties map[string]any) {
	for key, value := range properties {
		switch key {
		case "fontFamily":
			if s, ok := value.(string); ok {
				style.FontFamily = s
			}
		case "fontSize":
			if f, ok := floatValue(value); ok {
				style.FontSize = f
			}
		case "fontWeight":
			if f, ok := floatValue(value); ok {
				style.FontWeight = int(f)
			}
		case "color":
			if s, ok := value.(string); ok {
				style.Color = s
			}
		case "background":
			if s, ok := value.(string); ok {
				style.Background = s
			}
		case "padding":
			if padding, ok := floatSlice(value); ok {
				style.Padding = padding
			}
		case "borderRadius":
			if f, ok := floatValue(value); ok {
				style.BorderRadius = f
			}
		}
	}
}

func applyHighlightStyle(style *editconfig.HighlightStyle, properties map[string]any) {
	for key, value := range properties {
		switch key {
		case "color":
			if s, ok := value.(string); ok {
				style.Color = s
			}
		case "scale":
			if f, ok := floatValue(value); ok {
				style.Scale = f
			}
		case "fontWeight":
			if f, ok := floatValue(value); ok {
				style.FontWeight = int(f)
			}
		}
	}
}

func applyPosition(position *editconfig.Position, properties map[string]any) {
	for key, value := range properties {
		switch key {
		case "anchor":
			if s, ok := value.(string); ok {
				position.Anchor = s
			}
		case "offsetY":
			if f, ok := floatValue(value); ok {
				position.OffsetY = f
			}
		}
	}
}

func applyVideoFade(tree *editconfig.Tree, in Instruction) {
	animation := &tree.Tracks.Video.Animation

	var fade **editconfig.Fade
	switch in.FadeType {
	case "fadeIn":
		fade = &animation.FadeIn
	case "fadeOut":
		fade = &animation.FadeOut
	default:
		return
	}

	if in.Enabled != nil {
		if !*in.Enabled {
			*fade = nil
			return
		}
		if *fade == nil {
			*fade = defaultFade(in.FadeType, tree.Meta.Duration)
		}
	}

	if *fade == nil {
		return
	}
	if in.Duration != nil {
		(*fade).Duration = *in.Duration
	}
	if in.Start != nil {
		(*fade).Start = *in.Start
	}
}

func defaultFade(fadeType string, duration float64) *editconfig.Fade {
	if fadeType == "fadeIn" {
		return &editconfig.Fade{Start: editconfig.DefaultFadeInStart, Duration: editconfig.DefaultFadeInDuration}
	}
	return &editconfig.Fade{Start: editconfig.DefaultFadeOutStart(duration), Duration: editconfig.DefaultFadeOutDuration}
}

func applyHighlights(tree *editconfig.Tree, in Instruction) {
	incoming := make([]editconfig.Highlight, 0, len(in.Highlights))
	for _, h := range in.Highlights {
		highlight := editconfig.Highlight{CaptionID: h.CaptionID}
		if h.WordStartIndex != nil {
			highlight.WordStartIndex = *h.WordStartIndex
		}
		if h.WordEndIndex != nil {
			highlight.WordEndIndex = *h.WordEndIndex
		}
		incoming = append(incoming, highlight)
	}

	existing := tree.Tracks.Text.Highlights
	switch in.Operation {
	case "add":
		tree.Tracks.Text.Highlights = append(existing, incoming...)
	case "remove":
		// Removal is by caption id: every existing entry whose caption id
		// appears anywhere in the instruction's highlight list goes away.
		remove := make(map[string]struct{}, len(incoming))
		for _, h := range incoming {
			remove[h.CaptionID] = struct{}{}
		}
		kept := existing[:0]
		for _, h := range existing {
			if _, ok := remove[h.CaptionID]; !ok {
				kept = append(kept, h)
			}
		}
		tree.Tracks.Text.Highlights = kept
	default: // replace
		tree.Tracks.Text.Highlights = incoming
	}
}

func floatValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func floatSlice(value any) ([]float64, bool) {
	raw, ok := value.([]any)
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, len(raw))
	for _, item := range raw {
		f, ok := floatValue(item)
		if !ok {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}
