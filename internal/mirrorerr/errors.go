// Package mirrorerr is the error taxonomy shared by every mirror
// component. It is a leaf package (no internal imports) so that the
// store, planner, query synthesizer, and ingestor can all depend on it
// without creating an import cycle through the top-level facade.
package mirrorerr

import "fmt"

// IncompatibleStore reports that an existing store's meta blob does not
// match the fingerprint of the schema the caller opened it with. Fatal
// at open; the transaction that detected it is rolled back, leaving the
// store unchanged.
type IncompatibleStore struct {
	Path string
}

func (e *IncompatibleStore) Error() string {
	return fmt.Sprintf("incompatible store at %q: schema fingerprint does not match", e.Path)
}

// UnknownType reports a typename absent from the schema. Caller bug.
type UnknownType struct {
	Typename string
}

func (e *UnknownType) Error() string {
	return fmt.Sprintf("unknown type %q", e.Typename)
}

// NonObjectType reports an operation that requires an OBJECT type but
// was given a UNION (or other non-instantiable) typename. Caller bug.
type NonObjectType struct {
	Typename string
}

func (e *NonObjectType) Error() string {
	return fmt.Sprintf("type %q is not an object type", e.Typename)
}

// UnknownField reports a fieldname absent from a type's field map.
type UnknownField struct {
	Typename string
	Field    string
}

func (e *UnknownField) Error() string {
	return fmt.Sprintf("type %q has no field %q", e.Typename, e.Field)
}

// NotAConnection reports a fieldname that exists but is not a CONNECTION
// field.
type NotAConnection struct {
	Typename string
	Field    string
}

func (e *NotAConnection) Error() string {
	return fmt.Sprintf("field %q of type %q is not a connection", e.Field, e.Typename)
}

// TypeConflict reports that an object id already exists in the store
// with a different typename than the one now being registered. Caller
// bug or remote inconsistency.
type TypeConflict struct {
	ID       string
	Existing string
	Got      string
}

func (e *TypeConflict) Error() string {
	return fmt.Sprintf("object %q already registered as %q, cannot register as %q", e.ID, e.Existing, e.Got)
}

// UnknownConnection reports that (objectID, fieldname) has no connection
// row — the object was never registered, or fieldname is not one of its
// connection fields.
type UnknownConnection struct {
	ObjectID string
	Field    string
}

func (e *UnknownConnection) Error() string {
	return fmt.Sprintf("no connection %q on object %q", e.Field, e.ObjectID)
}

// UnknownUpdate reports that an updateId referenced by an ingest call
// does not correspond to any row in updates.
type UnknownUpdate struct {
	UpdateID int64
}

func (e *UnknownUpdate) Error() string {
	return fmt.Sprintf("unknown update id %d", e.UpdateID)
}

// AlreadyInTransaction reports an attempt to open a transaction while
// one is already active on the store. Nested transactions are not
// supported; group work with the non-transactional primitives instead.
type AlreadyInTransaction struct{}

func (e *AlreadyInTransaction) Error() string {
	return "a transaction is already active on this store"
}

// InvariantViolation reports that a single-row update did not affect
// exactly one row. This is a bug in the mirror's own bookkeeping (the
// uniformity invariant in §4.D was violated somewhere), never a caller
// mistake.
type InvariantViolation struct {
	Query        string
	RowsAffected int64
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: expected exactly 1 row affected, got %d (query: %s)", e.RowsAffected, e.Query)
}
