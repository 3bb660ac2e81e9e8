package games

import (
	"reflect"
	"testing"
)

func TestGameJSONTags(t *testing.T) {
	type fieldCheck struct {
		name string
		tag  string
	}

	gameType := reflect.TypeOf(Game{})
	fields := []fieldCheck{
		{"ID", "id"},
		{"Title", "title"},
		{"ReleaseDate", "releaseDate"},
		{"Genre", "genre"},
	}

	for _, fc := range fields {
		field, ok := gameType.FieldByName(fc.name)
		if !ok {
			t.Fatalf("missing field %s", fc.name)
		}
		if jsonTag := field.Tag.Get("json"); jsonTag != fc.tag {
			t.Fatalf("field %s expected json tag %s, got %s", fc.name, fc.tag, jsonTag)
		}
	}
}

func TestGamePatchIsEmpty(t *testing.T) {
	if !(GamePatch{}).IsEmpty() {
		t.Fatal("expected zero patch to be empty")
	}
	genre := "RPG"
	if (GamePatch{Genre: &genre}).IsEmpty() {
		t.Fatal("expected patch with genre to be non-empty")
	}
}

func TestGamePatchApplyKeepsOmittedFields(t *testing.T) {
	original := Game{ID: "abc", Title: "Super Mario Bros", ReleaseDate: "September 1985", Genre: "Platformer"}
	title := "Super Mario Bros 3"

	got := GamePatch{Title: &title}.Apply(original)

	if got.Title != title {
		t.Fatalf("expected title %q, got %q", title, got.Title)
	}
	if got.ID != original.ID || got.ReleaseDate != original.ReleaseDate || got.Genre != original.Genre {
		t.Fatalf("expected untouched fields preserved, got %+v", got)
	}
	if original.Title != "Super Mario Bros" {
		t.Fatalf("expected original to be unchanged, got %q", original.Title)
	}
}
