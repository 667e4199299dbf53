package edit

import (
	"encoding/json"
	"fmt"
)

// Action tags an edit instruction variant.
type Action string

const (
	ActionUpdateTextAnimation  Action = "update_text_animation"
	ActionUpdateVideoAnimation Action = "update_video_animation"
	ActionUpdateTextStyle      Action = "update_text_style"
	ActionUpdateHighlightStyle Action = "update_highlight_style"
	ActionUpdateTextPosition   Action = "update_text_position"
	ActionUpdateVideoFade      Action = "update_video_fade"
	ActionUpdateHighlights     Action = "update_highlights"
)

// AllowedActions lists every action the validator accepts, in wire order.
var AllowedActions = []Action{
	ActionUpdateTextAnimation,
	ActionUpdateVideoAnimation,
	ActionUpdateTextStyle,
	ActionUpdateHighlightStyle,
	ActionUpdateHighlights,
	ActionUpdateVideoFade,
	ActionUpdateTextPosition,
}

// Instruction is one edit request from the generation collaborator. Each
// action uses only the fields relevant to its variant; pointer fields
// distinguish "absent" from zero values.
type Instruction struct {
	Action     Action         `json:"action"`
	Target     string         `json:"target,omitempty"`
	PresetID   string         `json:"preset_id,omitempty"`
	Duration   *float64       `json:"duration,omitempty"`
	Start      *float64       `json:"start,omitempty"`
	Enabled    *bool          `json:"enabled,omitempty"`
	FadeType   string         `json:"fade_type,omitempty"`
	Operation  string         `json:"operation,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	Highlights []HighlightArg `json:"highlights,omitempty"`
}

// HighlightArg is one highlight element of an update_highlights instruction.
// Index fields are pointers so the validator can tell a missing index from a
// zero index.
type HighlightArg struct {
	CaptionID      string `json:"captionId"`
	WordStartIndex *int   `json:"wordStartIndex"`
	WordEndIndex   *int   `json:"wordEndIndex"`
}

// DecodeBatch parses a JSON array of edit instructions.
func DecodeBatch(data []byte) ([]Instruction, error) {
	var instructions []Instruction
	if err := json.Unmarshal(data, &instructions); err != nil {
		return nil, fmt.Errorf("decode edit instructions: %w", err)
	}
	return instructions, nil
}
