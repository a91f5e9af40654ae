package docs

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDocumentPatch_TriStateParent(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantValue   *string
	}{
		{"absent", `{"name":"x"}`, false, nil},
		{"null clears", `{"parent_id":null}`, true, nil},
		{"value moves", `{"parent_id":"folder-1"}`, true, strPtr("folder-1")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var patch DocumentPatch
			if err := json.Unmarshal([]byte(tc.body), &patch); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if patch.ParentID.Present != tc.wantPresent {
				t.Fatalf("Present = %v, want %v", patch.ParentID.Present, tc.wantPresent)
			}
			if (patch.ParentID.Value == nil) != (tc.wantValue == nil) {
				t.Fatalf("Value = %v, want %v", patch.ParentID.Value, tc.wantValue)
			}
			if tc.wantValue != nil && *patch.ParentID.Value != *tc.wantValue {
				t.Fatalf("Value = %q, want %q", *patch.ParentID.Value, *tc.wantValue)
			}
		})
	}
}

func TestDocumentPatch_ApplyMergesOnlyPresentFields(t *testing.T) {
	parent := "folder-1"
	icon := "📄"
	created := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	doc := Document{
		ID:        "doc-1",
		ProjectID: "p1",
		ParentID:  &parent,
		Name:      "original",
		FileType:  FileTypePage,
		Icon:      &icon,
		CreatedAt: created,
	}

	newName := "renamed"
	patch := DocumentPatch{Name: &newName}
	patch.Apply(&doc)

	if doc.Name != "renamed" {
		t.Errorf("name = %q, want %q", doc.Name, "renamed")
	}
	if doc.ParentID == nil || *doc.ParentID != "folder-1" {
		t.Error("absent parent_id field changed the stored parent")
	}
	if doc.Icon == nil || *doc.Icon != "📄" {
		t.Error("absent icon field changed the stored icon")
	}
	if !doc.CreatedAt.Equal(created) {
		t.Error("patch changed created_at")
	}

	clear := DocumentPatch{Icon: NullableString{Present: true, Value: nil}}
	clear.Apply(&doc)
	if doc.Icon != nil {
		t.Error("explicit null did not clear the icon")
	}
}

func strPtr(s string) *string { return &s }
