// Package schemasrc is a CUE-based alternate entry point for
// authoring the input schema (spec.md §3): instead of building a
// schema.Schema value by hand, a caller can describe object and union
// types in .cue files and load them with LoadSchema. This is purely
// an authoring convenience — it produces the exact same schema.Schema
// shape a Go caller could construct directly, so it carries no
// store-affecting behavior of its own.
package schemasrc

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/roach88/graphmirror/internal/schema"
)

// LoadError reports a problem loading or decoding schema source files.
type LoadError struct {
	Dir     string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading schema from %q: %s", e.Dir, e.Message)
}

// LoadSchema loads every .cue file in dir and decodes the top-level
// `type` field into a schema.Schema. Each entry of `type` is expected
// to be shaped like:
//
//	type: Repo: {
//	    kind: "object"
//	    fields: [
//	        {name: "id", kind: "id"},
//	        {name: "name", kind: "primitive"},
//	        {name: "owner", kind: "node", elementType: "Actor"},
//	        {name: "issues", kind: "connection", elementType: "Issue"},
//	    ]
//	}
//	type: Actor: {
//	    kind: "union"
//	    clauses: ["User", "Bot"]
//	}
func LoadSchema(dir string) (schema.Schema, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &LoadError{Dir: dir, Message: err.Error()}
	}
	if !info.IsDir() {
		return nil, &LoadError{Dir: dir, Message: "not a directory"}
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Dir: dir, Message: fmt.Sprintf("scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return nil, &LoadError{Dir: dir, Message: "no .cue files found"}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Dir: dir, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Dir: dir, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Dir: dir, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	typesVal := value.LookupPath(cue.ParsePath("type"))
	if !typesVal.Exists() {
		return nil, &LoadError{Dir: dir, Message: "no top-level `type` field found"}
	}

	iter, err := typesVal.Fields()
	if err != nil {
		return nil, &LoadError{Dir: dir, Message: fmt.Sprintf("iterating types: %v", err)}
	}

	sch := schema.Schema{}
	for iter.Next() {
		typename := iter.Label()
		t, err := decodeType(typename, iter.Value())
		if err != nil {
			return nil, &LoadError{Dir: dir, Message: err.Error()}
		}
		sch[typename] = t
	}
	return sch, nil
}

func decodeType(typename string, v cue.Value) (schema.Type, error) {
	var raw struct {
		Kind    string   `json:"kind"`
		Clauses []string `json:"clauses"`
		Fields  []struct {
			Name        string `json:"name"`
			Kind        string `json:"kind"`
			ElementType string `json:"elementType"`
		} `json:"fields"`
	}
	if err := v.Decode(&raw); err != nil {
		return schema.Type{}, fmt.Errorf("type %q: %w", typename, err)
	}

	t := schema.Type{Name: typename}
	switch raw.Kind {
	case "object":
		t.Kind = schema.KindObject
		for _, f := range raw.Fields {
			kind, err := decodeFieldKind(f.Kind)
			if err != nil {
				return schema.Type{}, fmt.Errorf("type %q field %q: %w", typename, f.Name, err)
			}
			t.Fields = append(t.Fields, schema.Field{Name: f.Name, Kind: kind, ElementType: f.ElementType})
		}
	case "union":
		t.Kind = schema.KindUnion
		t.Clauses = raw.Clauses
	default:
		return schema.Type{}, fmt.Errorf("type %q: unrecognized kind %q", typename, raw.Kind)
	}
	return t, nil
}

func decodeFieldKind(s string) (schema.FieldKind, error) {
	switch s {
	case "id":
		return schema.FieldID, nil
	case "primitive":
		return schema.FieldPrimitive, nil
	case "node":
		return schema.FieldNode, nil
	case "connection":
		return schema.FieldConnection, nil
	default:
		return 0, fmt.Errorf("unrecognized field kind %q", s)
	}
}

// findCUEFiles lists the .cue files directly inside dir — matching
// CUE's own non-recursive "." load pattern — so a quick pre-check can
// fail fast with a clear error before handing off to load.Instances.
func findCUEFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".cue" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}
