package gqlbuilder

import (
	"testing"
)

func TestRender_Scalars(t *testing.T) {
	got := Render(Scalar("__typename"), Scalar("id"))
	want := "{\n  __typename\n  id\n}\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_InlineFragments(t *testing.T) {
	got := Render(
		Scalar("__typename"),
		InlineFragment("User", Scalar("id")),
		InlineFragment("Bot", Scalar("id")),
	)
	want := "{\n  __typename\n  ... on User {\n    id\n  }\n  ... on Bot {\n    id\n  }\n}\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_FieldWithArgsAndSub(t *testing.T) {
	got := Render(Field("issues", []Arg{{Name: "first", Value: 50}},
		Scalar("totalCount"),
	))
	want := "{\n  issues(first: 50) {\n    totalCount\n  }\n}\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_FieldWithAfterArg(t *testing.T) {
	cursorVal := "c1"
	got := Render(Field("issues", []Arg{{Name: "first", Value: 50}, {Name: "after", Value: &cursorVal}}))
	want := "{\n  issues(first: 50, after: \"c1\")\n}\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_FieldWithNullAfterArg(t *testing.T) {
	got := Render(Field("issues", []Arg{{Name: "first", Value: 50}, {Name: "after", Value: (*string)(nil)}}))
	want := "{\n  issues(first: 50, after: null)\n}\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestSortedStrings_DoesNotMutateInput(t *testing.T) {
	in := []string{"Bot", "User", "Actor"}
	out := SortedStrings(in)
	if in[0] != "Bot" {
		t.Errorf("input mutated: %v", in)
	}
	want := []string{"Actor", "Bot", "User"}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("SortedStrings() = %v, want %v", out, want)
		}
	}
}
