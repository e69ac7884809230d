// Package schema decomposes a caller-supplied GraphQL type universe into
// the per-type indices the rest of the mirror programs against, and
// enforces that every identifier the installer will splice into DDL is
// safe to appear unquoted in SQL.
package schema

import "fmt"

// FieldKind enumerates the field shapes §3 of the specification allows.
type FieldKind int

const (
	// FieldID marks the type's identifier field. Exactly one per object type.
	FieldID FieldKind = iota
	// FieldPrimitive is an own-data scalar field.
	FieldPrimitive
	// FieldNode is a singular reference to another object (a "link").
	FieldNode
	// FieldConnection is a Relay-style paginated reference collection.
	FieldConnection
)

func (k FieldKind) String() string {
	switch k {
	case FieldID:
		return "ID"
	case FieldPrimitive:
		return "PRIMITIVE"
	case FieldNode:
		return "NODE"
	case FieldConnection:
		return "CONNECTION"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

// Field describes one field of an object type as the caller declared it.
// ElementType is only meaningful for FieldNode and FieldConnection and
// names the typename the field points at.
type Field struct {
	Name        string
	Kind        FieldKind
	ElementType string
}

// TypeKind distinguishes the two shapes a schema entry can take.
type TypeKind int

const (
	// KindObject is an instantiable type with fields.
	KindObject TypeKind = iota
	// KindUnion is a discriminated union of object-type clauses.
	KindUnion
)

// Type is one entry of the input schema mapping. Fields is ordered and
// meaningful only when Kind == KindObject; Clauses is ordered and
// meaningful only when Kind == KindUnion.
type Type struct {
	Name    string
	Kind    TypeKind
	Fields  []Field
	Clauses []string
}

// Schema is the caller-supplied mapping from typename to type definition.
// It is opaque beyond the shapes Type expresses.
type Schema map[string]Type

// SchemaError reports a structurally invalid schema. It is fatal at open.
type SchemaError struct {
	Typename string
	Field    string
	Reason   string
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("schema error: type %q field %q: %s", e.Typename, e.Field, e.Reason)
	}
	return fmt.Sprintf("schema error: type %q: %s", e.Typename, e.Reason)
}

// Decomposed is the derived index for one schema type, computed once by
// Decompose and consulted by every other component instead of re-walking
// the raw Type on every call.
type Decomposed struct {
	Name    string
	Kind    TypeKind
	Fields  map[string]Field // by name, includes the ID field

	// PrimitiveFieldNames, LinkFieldNames, and ConnectionFieldNames are
	// disjoint ordered sequences over Fields, in declaration order, with
	// the ID field omitted from all three.
	PrimitiveFieldNames  []string
	LinkFieldNames       []string
	ConnectionFieldNames []string

	// ClauseTypeNames is ordered and populated only when Kind == KindUnion.
	ClauseTypeNames []string
}

// IsObject reports whether this type can be instantiated.
func (d Decomposed) IsObject() bool { return d.Kind == KindObject }

// Index is the full decomposed schema, keyed by typename.
type Index map[string]Decomposed

// Decompose flattens every type in the schema into a Decomposed entry.
// It is pure and performs no I/O. It fails with *SchemaError if any field
// kind is unrecognized.
func Decompose(s Schema) (Index, error) {
	idx := make(Index, len(s))
	for name, t := range s {
		d := Decomposed{Name: name, Kind: t.Kind}

		switch t.Kind {
		case KindUnion:
			d.ClauseTypeNames = append([]string(nil), t.Clauses...)

		case KindObject:
			d.Fields = make(map[string]Field, len(t.Fields))
			for _, f := range t.Fields {
				d.Fields[f.Name] = f
				switch f.Kind {
				case FieldID:
					// omitted from all three sequences
				case FieldPrimitive:
					d.PrimitiveFieldNames = append(d.PrimitiveFieldNames, f.Name)
				case FieldNode:
					d.LinkFieldNames = append(d.LinkFieldNames, f.Name)
				case FieldConnection:
					d.ConnectionFieldNames = append(d.ConnectionFieldNames, f.Name)
				default:
					return nil, &SchemaError{Typename: name, Field: f.Name, Reason: fmt.Sprintf("unrecognized field kind %v", f.Kind)}
				}
			}

		default:
			return nil, &SchemaError{Typename: name, Reason: fmt.Sprintf("unrecognized type kind %v", t.Kind)}
		}

		idx[name] = d
	}
	return idx, nil
}

// Lookup returns the decomposed entry for typename, or ok=false if the
// schema has no such type.
func (idx Index) Lookup(typename string) (Decomposed, bool) {
	d, ok := idx[typename]
	return d, ok
}
