package edit_test

import (
	"reflect"
	"strings"
	"testing"

	"clipforge/internal/edit"
)

func TestApplyBatchMixedOutcome(t *testing.T) {
	tree := testTree()
	instructions := []edit.Instruction{
		{Action: edit.ActionUpdateTextAnimation, Target: "entry", PresetID: "pop_in"},
		{Action: edit.ActionUpdateTextAnimation, Target: "entry", PresetID: "wobble"},
		{Action: edit.ActionUpdateVideoAnimation, PresetID: "fade_in"},
	}

	out, result := edit.ApplyBatch(tree, instructions)

	if len(result.Applied) != 2 || len(result.Rejected) != 1 {
		t.Fatalf("applied=%d rejected=%d", len(result.Applied), len(result.Rejected))
	}
	if result.Rejected[0].Index != 1 {
		t.Errorf("rejected index = %d", result.Rejected[0].Index)
	}
	if !strings.Contains(result.Rejected[0].Reason, "Invalid entry animation preset: wobble") {
		t.Errorf("reason = %q", result.Rejected[0].Reason)
	}
	if out.Tracks.Text.Animation.Entry.PresetID != "pop_in" {
		t.Error("first instruction not applied")
	}
	if out.Tracks.Video.Animation.PresetID != "fade_in" {
		t.Error("third instruction not applied despite earlier rejection")
	}
	if !result.AnyApplied() {
		t.Error("AnyApplied should be true")
	}
}

func TestApplyBatchAllRejectedLeavesTreeUnchanged(t *testing.T) {
	tree := testTree()
	out, result := edit.ApplyBatch(tree, []edit.Instruction{
		{Action: "drop_tables"},
		{Action: edit.ActionUpdateVideoAnimation, PresetID: "explode"},
	})

	if result.AnyApplied() {
		t.Fatal("nothing should have applied")
	}
	if len(result.Rejected) != 2 {
		t.Fatalf("rejected = %d", len(result.Rejected))
	}
	if !reflect.DeepEqual(out, tree) {
		t.Fatal("fully rejected batch must leave the tree unchanged")
	}
}

func TestDecodeBatch(t *testing.T) {
	payload := `[
		{"action":"update_text_style","target":"globalStyle","properties":{"fontSize":20}},
		{"action":"update_video_fade","fade_type":"fadeOut","enabled":false}
	]`
	instructions, err := edit.DecodeBatch([]byte(payload))
	if err != nil {
		t.Fatalf("DecodeBatch failed: %v", err)
	}
	if len(instructions) != 2 {
		t.Fatalf("decoded %d instructions", len(instructions))
	}
	if instructions[1].Enabled == nil || *instructions[1].Enabled {
		t.Errorf("enabled = %+v", instructions[1].Enabled)
	}

	if _, err := edit.DecodeBatch([]byte(`{"action":"x"}`)); err == nil {
		t.Error("non-array payload should fail to decode")
	}
}
