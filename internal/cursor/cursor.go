// Package cursor represents the three-valued end-cursor state described
// in §4.F and §9 of the specification: a connection's end cursor is
// either absent (never fetched — pagination starts from the beginning),
// fetched-null (fetched, and the cursor came back null — exhausted or
// empty), or fetched-value (a real pagination token). Collapsing these
// to a plain nullable string would make it impossible for the query
// synthesizer to tell "never fetched" from "fetched, null" — the first
// omits GraphQL's `after:` argument entirely, the second two pass it
// through (possibly as an explicit null).
package cursor

// State is a tagged three-valued cursor. The zero value is Absent.
type State struct {
	fetched bool
	value   *string
}

// Absent represents a connection that has never been fetched.
func Absent() State {
	return State{fetched: false}
}

// Fetched represents a connection that has been fetched at least once.
// value is nil for a fetched-but-null cursor (exhausted or empty page),
// non-nil for a real pagination token.
func Fetched(value *string) State {
	return State{fetched: true, value: value}
}

// FetchedNull is shorthand for Fetched(nil).
func FetchedNull() State {
	return Fetched(nil)
}

// FetchedValue is shorthand for Fetched with a concrete token.
func FetchedValue(v string) State {
	return Fetched(&v)
}

// IsFetched reports whether the connection has been fetched at least
// once (the cursor state is "fetched-null" or "fetched-value", not
// "absent").
func (s State) IsFetched() bool {
	return s.fetched
}

// Value returns the cursor token and true if this is a fetched-value
// state. Returns ("", false) for both Absent and FetchedNull.
func (s State) Value() (string, bool) {
	if !s.fetched || s.value == nil {
		return "", false
	}
	return *s.value, true
}

// Ptr returns the underlying *string: nil for Absent or FetchedNull,
// non-nil for FetchedValue. Useful for storing into a nullable SQL
// column once the caller has already checked IsFetched.
func (s State) Ptr() *string {
	return s.value
}

// FromStoreRow builds a State from the store's representation: whether
// the connection has ever been updated (last_update IS NOT NULL) and
// the stored end_cursor (valid/value pair from a nullable SQL column).
// If the connection has never been updated, the result is Absent
// regardless of endCursorValid/endCursorValue (per the invariant in §3,
// last_update IS NULL implies end_cursor IS NULL too).
func FromStoreRow(everUpdated bool, endCursorValid bool, endCursorValue string) State {
	if !everUpdated {
		return Absent()
	}
	if !endCursorValid {
		return FetchedNull()
	}
	return FetchedValue(endCursorValue)
}
