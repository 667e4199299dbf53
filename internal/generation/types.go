package generation

import (
	"encoding/json"
	"fmt"

	"clipforge/internal/editconfig"
	"clipforge/internal/services"
)

// Word is one word-level transcript entry from the transcription
// collaborator. Timestamps are milliseconds.
type Word struct {
	Text       string  `json:"text"`
	StartMs    int64   `json:"startMs"`
	EndMs      int64   `json:"endMs"`
	Confidence float64 `json:"confidence"`
}

// Segment is one generated caption segment. Pointer fields distinguish
// "not supplied" from zero; unsupplied fields never overwrite prior caption
// state during a merge.
type Segment struct {
	Content       *string        `json:"content,omitempty"`
	Start         *float64       `json:"start,omitempty"`
	End           *float64       `json:"end,omitempty"`
	EmphasisWords []string       `json:"emphasis_words,omitempty"`
	Style         map[string]any `json:"style,omitempty"`
	Animation     map[string]any `json:"animation,omitempty"`
	Effects       map[string]any `json:"effects,omitempty"`
}

// Payload is one generation cycle's output: an optional title, caption
// segments, and the words to emphasize.
type Payload struct {
	Title            *string                    `json:"title,omitempty"`
	Segments         []Segment                  `json:"segments"`
	HighlightedWords []editconfig.Highlight     `json:"highlightedWords"`
	HighlightStyle   *editconfig.HighlightStyle `json:"highlightStyle,omitempty"`
}

// DecodePayload parses a generation payload, tagging failures as merge
// errors so the caller can report them without touching the tree.
func DecodePayload(data []byte) (Payload, error) {
	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return Payload{}, services.Wrap(services.ErrMerge, "generation", "decode payload", "malformed generated payload", err)
	}
	return payload, nil
}

func (s Segment) validate(index int) error {
	if s.Start != nil && *s.Start < 0 {
		return mergeErr(fmt.Sprintf("segment %d has negative start", index))
	}
	if s.End != nil && *s.End < 0 {
		return mergeErr(fmt.Sprintf("segment %d has negative end", index))
	}
	if s.Start != nil && s.End != nil && *s.Start >= *s.End {
		return mergeErr(fmt.Sprintf("segment %d start %v is not before end %v", index, *s.Start, *s.End))
	}
	return nil
}

func mergeErr(message string) error {
	return services.Wrap(services.ErrMerge, "generation", "merge", message, nil)
}
