// Package querysynth implements the Query Synthesizer (§4.G): pure
// functions that turn a schema.Index and a few arguments into a
// GraphQL selection set, expressed against internal/gqlbuilder so the
// synthesizer never touches concrete syntax directly.
package querysynth

import (
	"github.com/roach88/graphmirror/internal/cursor"
	"github.com/roach88/graphmirror/internal/gqlbuilder"
	"github.com/roach88/graphmirror/internal/mirrorerr"
	"github.com/roach88/graphmirror/internal/schema"
)

// QueryShallow returns the minimal selection needed to discover an
// object's concrete type and ID: `{ __typename, id }` for an OBJECT
// typename, or `{ __typename, ... on C1 { id }, ... on C2 { id }, … }`
// across sorted clause names for a UNION.
func QueryShallow(idx schema.Index, typename string) ([]gqlbuilder.Selection, error) {
	d, ok := idx[typename]
	if !ok {
		return nil, &mirrorerr.UnknownType{Typename: typename}
	}

	if d.IsObject() {
		return []gqlbuilder.Selection{
			gqlbuilder.Scalar("__typename"),
			gqlbuilder.Scalar("id"),
		}, nil
	}

	sub := []gqlbuilder.Selection{gqlbuilder.Scalar("__typename")}
	for _, clause := range gqlbuilder.SortedStrings(d.ClauseTypeNames) {
		sub = append(sub, gqlbuilder.InlineFragment(clause, gqlbuilder.Scalar("id")))
	}
	return sub, nil
}

// QueryConnection returns the selection for fetching one page of
// fieldname on parentTypename:
//
//	<fieldname>(first: <pageSize>[, after: <endCursor>]) {
//	  totalCount
//	  pageInfo { endCursor, hasNextPage }
//	  nodes { <queryShallow(elementType)> }
//	}
//
// The after argument is included iff endCursor.IsFetched() — an
// Absent cursor omits it entirely, a FetchedNull or FetchedValue
// cursor passes it through (possibly as an explicit null).
func QueryConnection(idx schema.Index, parentTypename, fieldname string, endCursor cursor.State, pageSize int) (gqlbuilder.Selection, error) {
	d, ok := idx[parentTypename]
	if !ok {
		return nil, &mirrorerr.UnknownType{Typename: parentTypename}
	}
	if !d.IsObject() {
		return nil, &mirrorerr.NonObjectType{Typename: parentTypename}
	}

	f, ok := d.Fields[fieldname]
	if !ok {
		return nil, &mirrorerr.UnknownField{Typename: parentTypename, Field: fieldname}
	}
	if f.Kind != schema.FieldConnection {
		return nil, &mirrorerr.NotAConnection{Typename: parentTypename, Field: fieldname}
	}

	elementSel, err := QueryShallow(idx, f.ElementType)
	if err != nil {
		return nil, err
	}

	args := []gqlbuilder.Arg{{Name: "first", Value: pageSize}}
	if endCursor.IsFetched() {
		args = append(args, gqlbuilder.Arg{Name: "after", Value: endCursor.Ptr()})
	}

	sub := []gqlbuilder.Selection{
		gqlbuilder.Scalar("totalCount"),
		gqlbuilder.Field("pageInfo", nil,
			gqlbuilder.Scalar("endCursor"),
			gqlbuilder.Scalar("hasNextPage"),
		),
		gqlbuilder.Field("nodes", nil, elementSel...),
	}

	return gqlbuilder.Field(fieldname, args, sub...), nil
}
