package ir

import "testing"

func TestMarshalCanonical_ObjectKeysSortedByUTF16(t *testing.T) {
	obj := IRObject{
		"b": IRString("second"),
		"a": IRString("first"),
	}
	got, err := MarshalCanonical(obj)
	if err != nil {
		t.Fatalf("MarshalCanonical: %v", err)
	}
	want := `{"a":"first","b":"second"}`
	if string(got) != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestMarshalCanonical_NestedArrayAndObject(t *testing.T) {
	obj := IRObject{
		"clauses": IRArray{IRString("Bot"), IRString("User")},
	}
	got, err := MarshalCanonical(obj)
	if err != nil {
		t.Fatalf("MarshalCanonical: %v", err)
	}
	want := `{"clauses":["Bot","User"]}`
	if string(got) != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	obj := IRObject{"name": IRString("A<B>&C")}
	got, err := MarshalCanonical(obj)
	if err != nil {
		t.Fatalf("MarshalCanonical: %v", err)
	}
	want := `{"name":"A<B>&C"}`
	if string(got) != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestMarshalCanonical_DeterministicAcrossMapOrder(t *testing.T) {
	a := IRObject{"x": IRString("1"), "y": IRString("2"), "z": IRString("3")}
	b := IRObject{"z": IRString("3"), "x": IRString("1"), "y": IRString("2")}

	gotA, err := MarshalCanonical(a)
	if err != nil {
		t.Fatalf("MarshalCanonical(a): %v", err)
	}
	gotB, err := MarshalCanonical(b)
	if err != nil {
		t.Fatalf("MarshalCanonical(b): %v", err)
	}
	if string(gotA) != string(gotB) {
		t.Fatalf("expected identical output regardless of map build order, got %s and %s", gotA, gotB)
	}
}
