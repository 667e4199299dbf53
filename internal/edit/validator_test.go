package edit_test

import (
	"errors"
	"strings"
	"testing"

	"clipforge/internal/edit"
	"clipforge/internal/services"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestValidateUnknownAction(t *testing.T) {
	err := edit.Validate(edit.Instruction{Action: "delete_everything"})
	if err == nil {
		t.Fatal("expected rejection")
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "Action 'delete_everything' is not allowed") {
		t.Fatalf("unexpected reason: %v", err)
	}
}

func TestValidateTextAnimation(t *testing.T) {
	cases := []struct {
		name    string
		in      edit.Instruction
		wantErr string
	}{
		{
			name: "valid entry preset",
			in:   edit.Instruction{Action: edit.ActionUpdateTextAnimation, Target: "entry", PresetID: "bounce_in"},
		},
		{
			name:    "invalid target",
			in:      edit.Instruction{Action: edit.ActionUpdateTextAnimation, Target: "video", PresetID: "fade_in"},
			wantErr: "Invalid text animation target: video",
		},
		{
			name:    "entry preset outside set",
			in:      edit.Instruction{Action: edit.ActionUpdateTextAnimation, Target: "entry", PresetID: "wobble"},
			wantErr: "Invalid entry animation preset: wobble. Available: fade_in",
		},
		{
			name:    "exit preset from entry set",
			in:      edit.Instruction{Action: edit.ActionUpdateTextAnimation, Target: "exit", PresetID: "slide_up_fade"},
			wantErr: "Invalid exit animation preset: slide_up_fade",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := edit.Validate(tc.in)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected rejection: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("got %v, want reason containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidateRejectionNamesAllowedSet(t *testing.T) {
	err := edit.Validate(edit.Instruction{Action: edit.ActionUpdateVideoAnimation, PresetID: "zoom"})
	if err == nil {
		t.Fatal("expected rejection")
	}
	for _, id := range []string{"none", "fade_in", "fade_out", "fade_in_out"} {
		if !strings.Contains(err.Error(), id) {
			t.Errorf("rejection should list %q: %v", id, err)
		}
	}
}

func TestValidateStyleProperties(t *testing.T) {
	err := edit.Validate(edit.Instruction{
		Action:     edit.ActionUpdateTextStyle,
		Target:     "globalStyle",
		Properties: map[string]any{"fontSize": 24, "opacity": 0.5},
	})
	if err == nil || !strings.Contains(err.Error(), "Property 'opacity' is not allowed for globalStyle") {
		t.Fatalf("got %v", err)
	}

	err = edit.Validate(edit.Instruction{
		Action:     edit.ActionUpdateTextStyle,
		Target:     "highlightStyle",
		Properties: map[string]any{"color": "#fff", "scale": 1.2},
	})
	if err != nil {
		t.Fatalf("valid highlightStyle properties rejected: %v", err)
	}

	err = edit.Validate(edit.Instruction{Action: edit.ActionUpdateTextStyle, Target: "captions"})
	if err == nil || !strings.Contains(err.Error(), "Invalid style target: captions") {
		t.Fatalf("got %v", err)
	}
}

func TestValidatePositionProperties(t *testing.T) {
	err := edit.Validate(edit.Instruction{
		Action:     edit.ActionUpdateTextPosition,
		Properties: map[string]any{"anchor": "top_left", "offsetX": 10},
	})
	if err == nil || !strings.Contains(err.Error(), "Property 'offsetX' is not allowed for position") {
		t.Fatalf("got %v", err)
	}
}

func TestValidateVideoFade(t *testing.T) {
	cases := []struct {
		name    string
		in      edit.Instruction
		wantErr string
	}{
		{
			name: "enable with overrides",
			in: edit.Instruction{
				Action:   edit.ActionUpdateVideoFade,
				FadeType: "fadeOut",
				Enabled:  boolPtr(true),
				Duration: floatPtr(1.5),
				Start:    floatPtr(10),
			},
		},
		{
			name:    "bad fade type",
			in:      edit.Instruction{Action: edit.ActionUpdateVideoFade, FadeType: "crossfade"},
			wantErr: "Invalid fade type: crossfade",
		},
		{
			name:    "zero duration",
			in:      edit.Instruction{Action: edit.ActionUpdateVideoFade, FadeType: "fadeIn", Duration: floatPtr(0)},
			wantErr: "duration must be a positive number",
		},
		{
			name:    "negative start",
			in:      edit.Instruction{Action: edit.ActionUpdateVideoFade, FadeType: "fadeIn", Start: floatPtr(-1)},
			wantErr: "start must be a non-negative number",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := edit.Validate(tc.in)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected rejection: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("got %v, want %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidateHighlights(t *testing.T) {
	err := edit.Validate(edit.Instruction{
		Action:    edit.ActionUpdateHighlights,
		Operation: "add",
		Highlights: []edit.HighlightArg{
			{CaptionID: "caption_001", WordStartIndex: intPtr(0), WordEndIndex: intPtr(2)},
			{CaptionID: "caption_002", WordStartIndex: intPtr(1)},
		},
	})
	if err == nil || !strings.Contains(err.Error(), "Each highlight must have captionId, wordStartIndex, and wordEndIndex") {
		t.Fatalf("got %v", err)
	}
}
