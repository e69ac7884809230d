package schema

import (
	"fmt"
	"sort"

	"github.com/roach88/graphmirror/internal/ir"
)

// ToIRValue converts a Schema into the generic, constrained value shape
// ir.MarshalCanonical knows how to serialize deterministically. It is the
// only thing the schema fingerprint (installer §4.C) depends on.
func (s Schema) ToIRValue() (ir.IRObject, error) {
	obj := make(ir.IRObject, len(s))
	for name, t := range s {
		tv, err := typeToIRValue(t)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", name, err)
		}
		obj[name] = tv
	}
	return obj, nil
}

func typeToIRValue(t Type) (ir.IRValue, error) {
	switch t.Kind {
	case KindUnion:
		clauses := append([]string(nil), t.Clauses...)
		sort.Strings(clauses)
		arr := make(ir.IRArray, len(clauses))
		for i, c := range clauses {
			arr[i] = ir.IRString(c)
		}
		return ir.IRObject{
			"kind":    ir.IRString("UNION"),
			"clauses": arr,
		}, nil

	case KindObject:
		fields := make(ir.IRObject, len(t.Fields))
		for _, f := range t.Fields {
			fv := ir.IRObject{"kind": ir.IRString(f.Kind.String())}
			if f.ElementType != "" {
				fv["elementType"] = ir.IRString(f.ElementType)
			}
			fields[f.Name] = fv
		}
		return ir.IRObject{
			"kind":   ir.IRString("OBJECT"),
			"fields": fields,
		}, nil

	default:
		return nil, fmt.Errorf("unrecognized type kind %v", t.Kind)
	}
}
