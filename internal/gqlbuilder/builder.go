// Package gqlbuilder defines a GraphQL selection-set builder and a
// reference text renderer for it. The Query Synthesizer (§4.G) builds
// Selections with the constructors below and never writes concrete
// syntax itself; turning a Selection into text is left to Render. The
// Selection interface is sealed (its one method is unexported), so only
// this package can render or traverse a Selection.
package gqlbuilder

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Selection is one node of a GraphQL selection set: a field, an inline
// fragment, or a bare scalar selection like __typename.
type Selection interface {
	// render appends this selection's text to b at the given
	// indent depth. Only the reference text renderer in this
	// package implements traversal; other builders (e.g. a test
	// double recording calls) work directly against the
	// constructors below instead of rendering.
	render(b *strings.Builder, depth int)
}

// Arg is one argument to a field, e.g. Arg{Name: "first", Value: 50}.
type Arg struct {
	Name  string
	Value any
}

// scalarField is a leaf selection with no sub-selection, like
// `__typename` or `id`.
type scalarField struct {
	name string
}

// Scalar returns a bare field selection with no arguments or
// sub-selection, such as __typename or id.
func Scalar(name string) Selection {
	return scalarField{name: name}
}

type field struct {
	name string
	args []Arg
	sub  []Selection
}

// Field returns a field selection, optionally with arguments and a
// sub-selection. A Field with no sub and no args is equivalent to
// Scalar(name).
func Field(name string, args []Arg, sub ...Selection) Selection {
	return field{name: name, args: args, sub: sub}
}

type inlineFragment struct {
	typename string
	sub      []Selection
}

// InlineFragment returns `... on <typename> { <sub> }`, used by
// queryShallow to discriminate union clauses.
func InlineFragment(typename string, sub ...Selection) Selection {
	return inlineFragment{typename: typename, sub: sub}
}

func (s scalarField) render(b *strings.Builder, depth int) {
	writeIndent(b, depth)
	b.WriteString(s.name)
	b.WriteByte('\n')
}

func (f field) render(b *strings.Builder, depth int) {
	writeIndent(b, depth)
	b.WriteString(f.name)
	if len(f.args) > 0 {
		b.WriteByte('(')
		for i, a := range f.args {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s: %s", a.Name, renderValue(a.Value))
		}
		b.WriteByte(')')
	}
	if len(f.sub) > 0 {
		b.WriteString(" {\n")
		for _, s := range f.sub {
			s.render(b, depth+1)
		}
		writeIndent(b, depth)
		b.WriteString("}\n")
	} else {
		b.WriteByte('\n')
	}
}

func (fr inlineFragment) render(b *strings.Builder, depth int) {
	writeIndent(b, depth)
	fmt.Fprintf(b, "... on %s {\n", fr.typename)
	for _, s := range fr.sub {
		s.render(b, depth+1)
	}
	writeIndent(b, depth)
	b.WriteString("}\n")
}

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

// renderValue renders an argument value as GraphQL text. Supported
// types cover exactly what the synthesizer passes: integers, strings,
// nil, and *string (a nil *string renders as the bare `null` literal).
// Any other value is written with fmt's %v.
func renderValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case string:
		return strconv.Quote(x)
	case *string:
		if x == nil {
			return "null"
		}
		return strconv.Quote(*x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Render produces the reference GraphQL text for a top-level
// selection set, sorted only in the sense that callers control field
// order — this renderer never reorders a Selection's children.
func Render(sub ...Selection) string {
	var b strings.Builder
	b.WriteString("{\n")
	for _, s := range sub {
		s.render(&b, 1)
	}
	b.WriteString("}\n")
	return b.String()
}

// SortedStrings is a small helper re-exported for callers (the
// synthesizer sorts union clause names before emitting inline
// fragments, per §4.G's "across clauses" ordering requirement).
func SortedStrings(ss []string) []string {
	out := make([]string, len(ss))
	copy(out, ss)
	sort.Strings(out)
	return out
}
