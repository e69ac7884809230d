package schema

import "testing"

func TestIsSafeIdentifier(t *testing.T) {
	cases := []struct {
		token string
		want  bool
	}{
		{"Repo", true},
		{"issue_count", true},
		{"_leading", true},
		{"bad name", false},
		{"bad-name", false},
		{"bad.name", false},
		{"", false},
		{"dropTable;--", false},
	}

	for _, c := range cases {
		if got := IsSafeIdentifier(c.token); got != c.want {
			t.Errorf("IsSafeIdentifier(%q) = %v, want %v", c.token, got, c.want)
		}
	}
}

func TestValidateIdentifiersRejectsUnsafeTypename(t *testing.T) {
	idx, err := Decompose(Schema{
		"bad name": {
			Name: "bad name",
			Kind: KindObject,
			Fields: []Field{
				{Name: "id", Kind: FieldID},
			},
		},
	})
	if err != nil {
		t.Fatalf("Decompose() failed: %v", err)
	}

	err = ValidateIdentifiers(idx)
	if err == nil {
		t.Fatal("expected UnsafeIdentifier, got nil")
	}
	ui, ok := err.(*UnsafeIdentifier)
	if !ok {
		t.Fatalf("error is not *UnsafeIdentifier: %T", err)
	}
	if ui.Typename != "bad name" || ui.Field != "" {
		t.Errorf("UnsafeIdentifier = %+v, want Typename=%q Field=\"\"", ui, "bad name")
	}
}

func TestValidateIdentifiersRejectsUnsafeFieldname(t *testing.T) {
	idx, err := Decompose(Schema{
		"Repo": {
			Name: "Repo",
			Kind: KindObject,
			Fields: []Field{
				{Name: "id", Kind: FieldID},
				{Name: "bad field", Kind: FieldPrimitive},
			},
		},
	})
	if err != nil {
		t.Fatalf("Decompose() failed: %v", err)
	}

	err = ValidateIdentifiers(idx)
	if err == nil {
		t.Fatal("expected UnsafeIdentifier, got nil")
	}
	ui, ok := err.(*UnsafeIdentifier)
	if !ok {
		t.Fatalf("error is not *UnsafeIdentifier: %T", err)
	}
	if ui.Typename != "Repo" || ui.Field != "bad field" {
		t.Errorf("UnsafeIdentifier = %+v, want Typename=Repo Field=%q", ui, "bad field")
	}
}

func TestValidateIdentifiersAcceptsSafeSchema(t *testing.T) {
	idx, err := Decompose(sampleSchema())
	if err != nil {
		t.Fatalf("Decompose() failed: %v", err)
	}
	if err := ValidateIdentifiers(idx); err != nil {
		t.Errorf("ValidateIdentifiers() = %v, want nil", err)
	}
}
