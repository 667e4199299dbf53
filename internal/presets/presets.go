package presets

// Category identifies one of the animation preset groups.
type Category string

const (
	CategoryEntry     Category = "entry"
	CategoryExit      Category = "exit"
	CategoryHighlight Category = "highlight"
	CategoryVideo     Category = "video"
)

var entryPresets = []string{
	"fade_in",
	"pop_in",
	"slide_up",
	"slide_down",
	"slide_left",
	"slide_right",
	"slide_up_fade",
	"slide_down_fade",
	"slide_left_fade",
	"slide_right_fade",
	"scale_up",
	"scale_down",
	"scale_up_fade",
	"bounce_in",
}

var exitPresets = []string{
	"fade_out",
	"pop_out",
	"slide_up_out",
	"slide_down_out",
	"slide_left_out",
	"slide_right_out",
	"slide_up_fade_out",
	"slide_down_fade_out",
	"slide_left_fade_out",
	"slide_right_fade_out",
	"scale_down_out",
	"scale_down_fade_out",
}

var highlightPresets = []string{
	"none",
	"pulse",
	"pulse_fade",
	"scale_up",
	"bounce_soft",
	"fade_emphasis",
	"color_emphasis",
	"scale_color_pulse",
}

var videoPresets = []string{
	"none",
	"fade_in",
	"fade_out",
	"fade_in_out",
}

var byCategory = map[Category][]string{
	CategoryEntry:     entryPresets,
	CategoryExit:      exitPresets,
	CategoryHighlight: highlightPresets,
	CategoryVideo:     videoPresets,
}

// Categories returns the known preset categories in a stable order.
func Categories() []Category {
	return []Category{CategoryEntry, CategoryExit, CategoryHighlight, CategoryVideo}
}

// IsValid reports whether id belongs to the category's enumerated set.
func IsValid(category Category, id string) bool {
	for _, candidate := range byCategory[category] {
		if candidate == id {
			return true
		}
	}
	return false
}

// IDs returns the ordered preset identifiers for a category. The returned
// slice is a copy; callers may not mutate registry state.
func IDs(category Category) []string {
	ids := byCategory[category]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
