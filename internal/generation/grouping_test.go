package generation_test

import (
	"testing"

	"clipforge/internal/generation"
)

func word(text string, startMs, endMs int64) generation.Word {
	return generation.Word{Text: text, StartMs: startMs, EndMs: endMs, Confidence: 0.99}
}

func TestGroupWordsClosesAtWordCount(t *testing.T) {
	words := []generation.Word{
		word("one", 0, 200),
		word("two", 200, 400),
		word("three", 400, 600),
		word("four", 600, 800),
		word("five", 800, 1000),
	}
	captions := generation.GroupWords(words)
	if len(captions) != 1 {
		t.Fatalf("expected one group, got %d", len(captions))
	}
	c := captions[0]
	if c.ID != "caption_001" {
		t.Errorf("id = %q", c.ID)
	}
	if c.Content != "one two three four five" {
		t.Errorf("content = %q", c.Content)
	}
	if c.Start != 0 || c.End != 1.0 {
		t.Errorf("timing = [%v, %v], want [0, 1] seconds", c.Start, c.End)
	}
}

func TestGroupWordsClosesOnPunctuation(t *testing.T) {
	words := []generation.Word{
		word("hello", 0, 200),
		word("there.", 200, 400),
		word("next", 400, 600),
	}
	captions := generation.GroupWords(words)
	if len(captions) != 2 {
		t.Fatalf("expected two groups, got %d: %+v", len(captions), captions)
	}
	if captions[0].Content != "hello there." {
		t.Errorf("first group = %q", captions[0].Content)
	}
	if captions[1].Content != "next" {
		t.Errorf("second group = %q", captions[1].Content)
	}
}

func TestGroupWordsPunctuationNeedsTwoWords(t *testing.T) {
	words := []generation.Word{
		word("no.", 0, 200),
		word("wait", 200, 400),
	}
	captions := generation.GroupWords(words)
	if len(captions) != 1 {
		t.Fatalf("single punctuated word should not close a group: %+v", captions)
	}
}

func TestGroupWordsClosesOnPause(t *testing.T) {
	words := []generation.Word{
		word("before", 0, 200),
		word("pause", 200, 400),
		word("after", 900, 1100),
	}
	captions := generation.GroupWords(words)
	if len(captions) != 2 {
		t.Fatalf("expected pause to close the group, got %d", len(captions))
	}
}

func TestGroupWordsClosesOnDuration(t *testing.T) {
	words := []generation.Word{
		word("long", 0, 1600),
		word("words", 1601, 3300),
		word("after", 3301, 3500),
	}
	captions := generation.GroupWords(words)
	if len(captions) != 2 {
		t.Fatalf("expected duration boundary to close the group, got %d: %+v", len(captions), captions)
	}
	if captions[0].End != 3.3 {
		t.Errorf("first group end = %v", captions[0].End)
	}
}

func TestGroupWordsEmptyInput(t *testing.T) {
	if captions := generation.GroupWords(nil); len(captions) != 0 {
		t.Fatalf("expected no captions, got %d", len(captions))
	}
}
