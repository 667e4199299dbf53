package editconfig

// Clone returns a deep copy of the tree. Mutating the copy never changes the
// receiver, including through nested slices and maps.
func (t Tree) Clone() Tree {
	out := t
	out.Tracks.Video.Animation.FadeIn = cloneFade(t.Tracks.Video.Animation.FadeIn)
	out.Tracks.Video.Animation.FadeOut = cloneFade(t.Tracks.Video.Animation.FadeOut)
	out.Tracks.Text.GlobalStyle.Padding = cloneFloats(t.Tracks.Text.GlobalStyle.Padding)

	if t.Tracks.Text.Captions != nil {
		captions := make([]Caption, len(t.Tracks.Text.Captions))
		for i, caption := range t.Tracks.Text.Captions {
			captions[i] = caption.Clone()
		}
		out.Tracks.Text.Captions = captions
	}
	if t.Tracks.Text.Title != nil {
		title := t.Tracks.Text.Title.Clone()
		out.Tracks.Text.Title = &title
	}
	if t.Tracks.Text.Highlights != nil {
		highlights := make([]Highlight, len(t.Tracks.Text.Highlights))
		copy(highlights, t.Tracks.Text.Highlights)
		out.Tracks.Text.Highlights = highlights
	}
	return out
}

// Clone returns a deep copy of the caption.
func (c Caption) Clone() Caption {
	out := c
	if c.EmphasisWords != nil {
		out.EmphasisWords = make([]string, len(c.EmphasisWords))
		copy(out.EmphasisWords, c.EmphasisWords)
	}
	out.Style = cloneMap(c.Style)
	out.Position = cloneMap(c.Position)
	out.Animation = cloneMap(c.Animation)
	out.Effects = cloneMap(c.Effects)
	return out
}

func cloneFade(fade *Fade) *Fade {
	if fade == nil {
		return nil
	}
	copied := *fade
	return &copied
}

func cloneFloats(values []float64) []float64 {
	if values == nil {
		return nil
	}
	out := make([]float64, len(values))
	copy(out, values)
	return out
}

func cloneMap(values map[string]any) map[string]any {
	if values == nil {
		return nil
	}
	out := make(map[string]any, len(values))
	for key, value := range values {
		out[key] = value
	}
	return out
}
