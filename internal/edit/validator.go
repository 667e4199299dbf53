package edit

import (
	"fmt"
	"strings"

	"clipforge/internal/presets"
	"clipforge/internal/services"
)

// Property allow-lists per style target. Anything outside these never reaches
// the tree, whatever the generation collaborator proposes.
var (
	allowedGlobalStyleProps = []string{
		"fontFamily",
		"fontSize",
		"fontWeight",
		"color",
		"background",
		"padding",
		"borderRadius",
	}
	allowedHighlightStyleProps = []string{
		"color",
		"scale",
		"fontWeight",
	}
	allowedPositionProps = []string{
		"anchor",
		"offsetY",
	}
)

// Validate checks a single instruction against the preset registry and the
// property allow-lists. A nil return means the instruction is safe to apply.
// Failures are tagged services.ErrValidation and describe exactly what was
// rejected; they are reported per instruction and never abort a batch.
func Validate(in Instruction) error {
	if !actionAllowed(in.Action) {
		return reject(fmt.Sprintf("Action '%s' is not allowed", in.Action))
	}

	switch in.Action {
	case ActionUpdateTextAnimation:
		category := presets.Category(in.Target)
		switch category {
		case presets.CategoryEntry, presets.CategoryExit, presets.CategoryHighlight:
		default:
			return reject(fmt.Sprintf("Invalid text animation target: %s", in.Target))
		}
		return validatePreset(category, in.PresetID)

	case ActionUpdateVideoAnimation:
		return validatePreset(presets.CategoryVideo, in.PresetID)

	case ActionUpdateTextStyle:
		switch in.Target {
		case "globalStyle":
			return validateProperties(in.Target, in.Properties, allowedGlobalStyleProps)
		case "highlightStyle":
			return validateProperties(in.Target, in.Properties, allowedHighlightStyleProps)
		default:
			return reject(fmt.Sprintf("Invalid style target: %s", in.Target))
		}

	case ActionUpdateHighlightStyle:
		return validateProperties("highlightStyle", in.Properties, allowedHighlightStyleProps)

	case ActionUpdateTextPosition:
		return validateProperties("position", in.Properties, allowedPositionProps)

	case ActionUpdateVideoFade:
		return validateFade(in)

	case ActionUpdateHighlights:
		for _, highlight := range in.Highlights {
			if highlight.CaptionID == "" || highlight.WordStartIndex == nil || highlight.WordEndIndex == nil {
				return reject("Each highlight must have captionId, wordStartIndex, and wordEndIndex")
			}
		}
		return nil
	}
	return nil
}

func actionAllowed(action Action) bool {
	for _, allowed := range AllowedActions {
		if action == allowed {
			return true
		}
	}
	return false
}

func validatePreset(category presets.Category, presetID string) error {
	if !presets.IsValid(category, presetID) {
		return reject(fmt.Sprintf(
			"Invalid %s animation preset: %s. Available: %s",
			category, presetID, strings.Join(presets.IDs(category), ", "),
		))
	}
	return nil
}

func validateProperties(target string, properties map[string]any, allowed []string) error {
	for key := range properties {
		if !contains(allowed, key) {
			return reject(fmt.Sprintf(
				"Property '%s' is not allowed for %s. Allowed: %s",
				key, target, strings.Join(allowed, ", "),
			))
		}
	}
	return nil
}

func validateFade(in Instruction) error {
	if in.FadeType != "fadeIn" && in.FadeType != "fadeOut" {
		return reject(fmt.Sprintf("Invalid fade type: %s", in.FadeType))
	}
	if in.Duration != nil && *in.Duration <= 0 {
		return reject("duration must be a positive number")
	}
	if in.Start != nil && *in.Start < 0 {
		return reject("start must be a non-negative number")
	}
	return nil
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}

func reject(reason string) error {
	return services.Wrap(services.ErrValidation, "edit", "validate", reason, nil)
}
