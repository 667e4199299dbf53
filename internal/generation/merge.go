package generation

import (
	"clipforge/internal/editconfig"
)

// Merge folds one generation cycle's payload into the base tree and returns
// the result. The base is never modified; on error it is returned unchanged.
//
// Captions merge index-aligned: generated segment i lands on prior caption i
// when one exists, otherwise on a freshly defaulted block. Supplied content,
// timing, and emphasis words overwrite; style, animation and effects maps
// shallow-merge so untouched keys survive. Prior captions beyond the
// generated length are preserved verbatim; generation never deletes
// captions it did not address. Caption ids are regenerated as
// caption_001..N for the merged range; incremental edit instructions use the
// existing ids and never renumber.
func Merge(base editconfig.Tree, payload Payload, firstRun bool) (editconfig.Tree, error) {
	for i, segment := range payload.Segments {
		if err := segment.validate(i); err != nil {
			return base, err
		}
	}

	out := base.Clone()

	mergeTitle(&out, payload, firstRun)
	mergeCaptions(&out, payload.Segments)

	if payload.HighlightedWords != nil {
		out.Tracks.Text.Highlights = append([]editconfig.Highlight(nil), payload.HighlightedWords...)
	}
	if payload.HighlightStyle != nil {
		out.Tracks.Text.HighlightStyle = *payload.HighlightStyle
	}
	return out, nil
}

func mergeTitle(tree *editconfig.Tree, payload Payload, firstRun bool) {
	if payload.Title == nil {
		// Non-first runs keep the previous title untouched when the payload
		// does not mention one. First runs have nothing to build from.
		return
	}
	if firstRun || tree.Tracks.Text.Title == nil {
		tree.Tracks.Text.Title = editconfig.DefaultTitle(*payload.Title, tree.Meta.Duration)
		return
	}
	// Replace the text but preserve id, timing, style, position and
	// animation accumulated on the previous title.
	title := tree.Tracks.Text.Title.Clone()
	title.Content = *payload.Title
	tree.Tracks.Text.Title = &title
}

func mergeCaptions(tree *editconfig.Tree, segments []Segment) {
	prior := tree.Tracks.Text.Captions
	merged := make([]editconfig.Caption, 0, max(len(prior), len(segments)))

	for i, segment := range segments {
		var caption editconfig.Caption
		if i < len(prior) {
			caption = prior[i].Clone()
		} else {
			caption = editconfig.DefaultCaption(i)
		}

		if segment.Content != nil {
			caption.Content = *segment.Content
		}
		if segment.Start != nil {
			caption.Start = *segment.Start
		}
		if segment.End != nil {
			caption.End = *segment.End
		}
		if segment.EmphasisWords != nil {
			caption.EmphasisWords = append([]string(nil), segment.EmphasisWords...)
		}
		caption.Style = overlay(caption.Style, segment.Style)
		caption.Animation = overlay(caption.Animation, segment.Animation)
		caption.Effects = overlay(caption.Effects, segment.Effects)

		caption.ID = editconfig.CaptionID(i)
		merged = append(merged, caption)
	}

	// Additive-safe: surplus trailing captions from the prior list survive
	// verbatim.
	for i := len(segments); i < len(prior); i++ {
		merged = append(merged, prior[i].Clone())
	}

	tree.Tracks.Text.Captions = merged
}

// overlay shallow-merges new keys over old ones; untouched keys survive.
func overlay(old, overrides map[string]any) map[string]any {
	if len(overrides) == 0 {
		return old
	}
	out := make(map[string]any, len(old)+len(overrides))
	for key, value := range old {
		out[key] = value
	}
	for key, value := range overrides {
		out[key] = value
	}
	return out
}
