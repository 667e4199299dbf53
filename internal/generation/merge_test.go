package generation_test

import (
	"errors"
	"reflect"
	"testing"

	"clipforge/internal/editconfig"
	"clipforge/internal/generation"
	"clipforge/internal/services"
)

func strPtr(v string) *string { return &v }
func fPtr(v float64) *float64 { return &v }

func baseTree() editconfig.Tree {
	return editconfig.New("proj-1", "vid-1", "https://example.com/in.mp4", editconfig.VideoMetadata{
		Width:    1920,
		Height:   1080,
		Duration: 60,
	})
}

func segment(content string, start, end float64) generation.Segment {
	return generation.Segment{Content: strPtr(content), Start: fPtr(start), End: fPtr(end)}
}

func TestMergeIntoEmptyTree(t *testing.T) {
	tree := baseTree()
	payload := generation.Payload{
		Title: strPtr("My Video"),
		Segments: []generation.Segment{
			segment("first", 0, 2),
			segment("second", 2, 4),
			segment("third", 4, 6),
		},
	}

	out, err := generation.Merge(tree, payload, true)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	captions := out.Tracks.Text.Captions
	if len(captions) != 3 {
		t.Fatalf("expected 3 captions, got %d", len(captions))
	}
	for i, want := range []string{"caption_001", "caption_002", "caption_003"} {
		if captions[i].ID != want {
			t.Errorf("caption %d id = %q, want %q", i, captions[i].ID, want)
		}
	}
	if out.Tracks.Text.Title == nil || out.Tracks.Text.Title.Content != "My Video" {
		t.Errorf("title = %+v", out.Tracks.Text.Title)
	}
}

func TestMergePreservesSurplusPriorCaptions(t *testing.T) {
	tree := baseTree()
	tree.Tracks.Text.Captions = []editconfig.Caption{
		{ID: "caption_001", Content: "one", Start: 0, End: 1},
		{ID: "caption_002", Content: "two", Start: 1, End: 2},
		{ID: "caption_003", Content: "three", Start: 2, End: 3},
	}

	out, err := generation.Merge(tree, generation.Payload{
		Segments: []generation.Segment{segment("ONE", 0, 1.5)},
	}, false)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	captions := out.Tracks.Text.Captions
	if len(captions) != 3 {
		t.Fatalf("expected 3 captions, got %d", len(captions))
	}
	if captions[0].Content != "ONE" || captions[0].End != 1.5 {
		t.Errorf("addressed caption = %+v", captions[0])
	}
	if !reflect.DeepEqual(captions[1], tree.Tracks.Text.Captions[1]) {
		t.Errorf("surplus caption 2 changed: %+v", captions[1])
	}
	if !reflect.DeepEqual(captions[2], tree.Tracks.Text.Captions[2]) {
		t.Errorf("surplus caption 3 changed: %+v", captions[2])
	}
}

func TestMergeShallowMergesAnimation(t *testing.T) {
	tree := baseTree()
	tree.Tracks.Text.Captions = []editconfig.Caption{
		{
			ID:        "caption_001",
			Content:   "hello",
			Start:     0,
			End:       2,
			Animation: map[string]any{"entry": "fade_in", "exit": "fade_out"},
		},
	}

	out, err := generation.Merge(tree, generation.Payload{
		Segments: []generation.Segment{
			{Animation: map[string]any{"entry": "pop_in"}},
		},
	}, false)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	animation := out.Tracks.Text.Captions[0].Animation
	if animation["entry"] != "pop_in" {
		t.Errorf("entry = %v, want overlay applied", animation["entry"])
	}
	if animation["exit"] != "fade_out" {
		t.Errorf("exit = %v, untouched key must survive", animation["exit"])
	}
	if out.Tracks.Text.Captions[0].Content != "hello" {
		t.Error("content overwritten without being supplied")
	}
}

func TestMergeTitleRules(t *testing.T) {
	tree := baseTree()
	withTitle, err := generation.Merge(tree, generation.Payload{Title: strPtr("First")}, true)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	originalID := withTitle.Tracks.Text.Title.ID

	// Second run without a title keeps the previous one.
	unchanged, err := generation.Merge(withTitle, generation.Payload{}, false)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if unchanged.Tracks.Text.Title == nil || unchanged.Tracks.Text.Title.Content != "First" {
		t.Errorf("title should survive a payload without one: %+v", unchanged.Tracks.Text.Title)
	}

	// Second run with a title replaces the text but keeps identity.
	retitled, err := generation.Merge(withTitle, generation.Payload{Title: strPtr("Second")}, false)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	title := retitled.Tracks.Text.Title
	if title.Content != "Second" {
		t.Errorf("title content = %q", title.Content)
	}
	if title.ID != originalID {
		t.Errorf("title id changed from %q to %q", originalID, title.ID)
	}
}

func TestMergeHighlightsReplaceWhenSupplied(t *testing.T) {
	tree := baseTree()
	tree.Tracks.Text.Highlights = []editconfig.Highlight{{CaptionID: "caption_001"}}

	out, err := generation.Merge(tree, generation.Payload{
		HighlightedWords: []editconfig.Highlight{
			{CaptionID: "caption_002", WordStartIndex: 1, WordEndIndex: 2},
		},
	}, false)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	got := out.Tracks.Text.Highlights
	if len(got) != 1 || got[0].CaptionID != "caption_002" {
		t.Fatalf("highlights = %+v", got)
	}
}

func TestMergeMalformedSegmentLeavesBaseUntouched(t *testing.T) {
	tree := baseTree()
	tree.Tracks.Text.Captions = []editconfig.Caption{{ID: "caption_001", Content: "keep", Start: 0, End: 1}}

	out, err := generation.Merge(tree, generation.Payload{
		Segments: []generation.Segment{segment("bad", 5, 2)},
	}, false)
	if err == nil {
		t.Fatal("expected merge error")
	}
	if !errors.Is(err, services.ErrMerge) {
		t.Fatalf("expected ErrMerge, got %v", err)
	}
	if !reflect.DeepEqual(out, tree) {
		t.Fatal("base tree must be returned unchanged on error")
	}
}

func TestDecodePayload(t *testing.T) {
	payload, err := generation.DecodePayload([]byte(`{
		"title": "T",
		"segments": [{"content": "hi", "start": 0, "end": 1}],
		"highlightedWords": [{"captionId": "caption_001", "wordStartIndex": 0, "wordEndIndex": 0}]
	}`))
	if err != nil {
		t.Fatalf("DecodePayload failed: %v", err)
	}
	if payload.Title == nil || *payload.Title != "T" || len(payload.Segments) != 1 {
		t.Fatalf("payload = %+v", payload)
	}

	if _, err := generation.DecodePayload([]byte(`{"segments": "nope"}`)); !errors.Is(err, services.ErrMerge) {
		t.Fatalf("malformed payload should be ErrMerge, got %v", err)
	}
}
