package schema

import (
	"reflect"
	"sort"
	"testing"
)

func sampleSchema() Schema {
	return Schema{
		"Repo": {
			Name: "Repo",
			Kind: KindObject,
			Fields: []Field{
				{Name: "id", Kind: FieldID},
				{Name: "name", Kind: FieldPrimitive},
				{Name: "owner", Kind: FieldNode, ElementType: "Actor"},
				{Name: "issues", Kind: FieldConnection, ElementType: "Issue"},
			},
		},
		"Issue": {
			Name: "Issue",
			Kind: KindObject,
			Fields: []Field{
				{Name: "id", Kind: FieldID},
				{Name: "title", Kind: FieldPrimitive},
			},
		},
		"Actor": {
			Name:    "Actor",
			Kind:    KindUnion,
			Clauses: []string{"User", "Bot"},
		},
		"User": {
			Name: "User",
			Kind: KindObject,
			Fields: []Field{
				{Name: "id", Kind: FieldID},
				{Name: "login", Kind: FieldPrimitive},
			},
		},
		"Bot": {
			Name: "Bot",
			Kind: KindObject,
			Fields: []Field{
				{Name: "id", Kind: FieldID},
			},
		},
	}
}

func TestDecomposeSplitsFieldsIntoDisjointSequences(t *testing.T) {
	idx, err := Decompose(sampleSchema())
	if err != nil {
		t.Fatalf("Decompose() failed: %v", err)
	}

	repo, ok := idx.Lookup("Repo")
	if !ok {
		t.Fatalf("Repo not found in decomposed index")
	}

	if !reflect.DeepEqual(repo.PrimitiveFieldNames, []string{"name"}) {
		t.Errorf("PrimitiveFieldNames = %v, want [name]", repo.PrimitiveFieldNames)
	}
	if !reflect.DeepEqual(repo.LinkFieldNames, []string{"owner"}) {
		t.Errorf("LinkFieldNames = %v, want [owner]", repo.LinkFieldNames)
	}
	if !reflect.DeepEqual(repo.ConnectionFieldNames, []string{"issues"}) {
		t.Errorf("ConnectionFieldNames = %v, want [issues]", repo.ConnectionFieldNames)
	}
	if _, ok := repo.Fields["id"]; !ok {
		t.Errorf("id field missing from field map")
	}
}

func TestDecomposeUnionClausesOrdered(t *testing.T) {
	idx, err := Decompose(sampleSchema())
	if err != nil {
		t.Fatalf("Decompose() failed: %v", err)
	}

	actor, ok := idx.Lookup("Actor")
	if !ok {
		t.Fatalf("Actor not found")
	}
	if actor.Kind != KindUnion {
		t.Fatalf("Actor.Kind = %v, want KindUnion", actor.Kind)
	}
	if !reflect.DeepEqual(actor.ClauseTypeNames, []string{"User", "Bot"}) {
		t.Errorf("ClauseTypeNames = %v, want [User Bot]", actor.ClauseTypeNames)
	}
}

func TestDecomposeRejectsUnrecognizedFieldKind(t *testing.T) {
	s := Schema{
		"Bad": {
			Name: "Bad",
			Kind: KindObject,
			Fields: []Field{
				{Name: "id", Kind: FieldID},
				{Name: "weird", Kind: FieldKind(99)},
			},
		},
	}

	_, err := Decompose(s)
	if err == nil {
		t.Fatal("expected SchemaError, got nil")
	}
	var serr *SchemaError
	if se, ok := err.(*SchemaError); ok {
		serr = se
	} else {
		t.Fatalf("error is not *SchemaError: %T", err)
	}
	if serr.Typename != "Bad" || serr.Field != "weird" {
		t.Errorf("SchemaError = %+v, want Typename=Bad Field=weird", serr)
	}
}

func TestDecomposeIsPure(t *testing.T) {
	s := sampleSchema()
	idx1, err := Decompose(s)
	if err != nil {
		t.Fatalf("Decompose() failed: %v", err)
	}
	idx2, err := Decompose(s)
	if err != nil {
		t.Fatalf("Decompose() failed: %v", err)
	}

	names1 := make([]string, 0, len(idx1))
	for n := range idx1 {
		names1 = append(names1, n)
	}
	names2 := make([]string, 0, len(idx2))
	for n := range idx2 {
		names2 = append(names2, n)
	}
	sort.Strings(names1)
	sort.Strings(names2)
	if !reflect.DeepEqual(names1, names2) {
		t.Errorf("Decompose is not deterministic across calls: %v vs %v", names1, names2)
	}
}
