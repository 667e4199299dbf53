package presets_test

import (
	"testing"

	"clipforge/internal/presets"
)

func TestCategoryCounts(t *testing.T) {
	cases := []struct {
		category presets.Category
		want     int
	}{
		{presets.CategoryEntry, 14},
		{presets.CategoryExit, 12},
		{presets.CategoryHighlight, 8},
		{presets.CategoryVideo, 4},
	}
	for _, tc := range cases {
		if got := len(presets.IDs(tc.category)); got != tc.want {
			t.Errorf("%s: expected %d presets, got %d", tc.category, tc.want, got)
		}
	}
}

func TestIsValid(t *testing.T) {
	if !presets.IsValid(presets.CategoryEntry, "slide_up_fade") {
		t.Error("slide_up_fade should be a valid entry preset")
	}
	if !presets.IsValid(presets.CategoryHighlight, "none") {
		t.Error("none should be a valid highlight preset")
	}
	if presets.IsValid(presets.CategoryExit, "slide_up_fade") {
		t.Error("entry preset must not validate as exit")
	}
	if presets.IsValid(presets.CategoryVideo, "bounce_in") {
		t.Error("unknown video preset accepted")
	}
	if presets.IsValid("unknown", "fade_in") {
		t.Error("unknown category accepted")
	}
}

func TestIDsReturnsCopy(t *testing.T) {
	first := presets.IDs(presets.CategoryVideo)
	first[0] = "mutated"
	second := presets.IDs(presets.CategoryVideo)
	if second[0] != "none" {
		t.Fatalf("registry state mutated through IDs result: %q", second[0])
	}
}
