package generation

import (
	"strings"

	"clipforge/internal/editconfig"
)

// Caption grouping boundaries. A group closes when it reaches maxGroupWords
// words, spans maxGroupDurationMs, is followed by a pause of at least
// pauseThresholdMs, or its last word ends in terminal punctuation once the
// group holds at least minPunctuationWords words.
const (
	maxGroupWords       = 5
	maxGroupDurationMs  = 3000
	pauseThresholdMs    = 300
	minPunctuationWords = 2
)

const terminalPunctuation = ".!?,"

// GroupWords greedily accumulates word-level transcript entries into caption
// blocks. Timestamps convert from milliseconds to seconds here; captions get
// deterministic ids in stream order.
func GroupWords(words []Word) []editconfig.Caption {
	var captions []editconfig.Caption
	var group []Word

	flush := func() {
		if len(group) == 0 {
			return
		}
		texts := make([]string, len(group))
		for i, word := range group {
			texts[i] = word.Text
		}
		captions = append(captions, editconfig.Caption{
			ID:      editconfig.CaptionID(len(captions)),
			Content: strings.Join(texts, " "),
			Start:   float64(group[0].StartMs) / 1000,
			End:     float64(group[len(group)-1].EndMs) / 1000,
		})
		group = group[:0]
	}

	for i, word := range words {
		group = append(group, word)

		switch {
		case len(group) >= maxGroupWords:
			flush()
		case word.EndMs-group[0].StartMs >= maxGroupDurationMs:
			flush()
		case i < len(words)-1 && words[i+1].StartMs-word.EndMs >= pauseThresholdMs:
			flush()
		case endsInTerminalPunctuation(word.Text) && len(group) >= minPunctuationWords:
			flush()
		}
	}
	flush()
	return captions
}

func endsInTerminalPunctuation(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	return strings.ContainsRune(terminalPunctuation, rune(trimmed[len(trimmed)-1]))
}
