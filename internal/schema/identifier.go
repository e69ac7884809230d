package schema

import (
	"fmt"
	"regexp"
	"sort"
)

// safeIdentifier matches the conservative identifier grammar the installer
// will accept for typenames and primitive fieldnames before splicing them,
// unquoted or double-quoted, into DDL.
var safeIdentifier = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// IsSafeIdentifier reports whether token is safe to appear in generated SQL
// as a table or column name. This is conservative by design: it rejects
// some identifiers a SQL engine would happily quote, in exchange for never
// needing to reason about quoting/escaping edge cases. It is a precondition
// check, not a sanitizer.
func IsSafeIdentifier(token string) bool {
	return safeIdentifier.MatchString(token)
}

// UnsafeIdentifier reports that a typename or primitive fieldname failed
// IsSafeIdentifier. It is fatal at install time, before any DDL executes.
type UnsafeIdentifier struct {
	Typename string
	Field    string // empty when the typename itself is unsafe
}

func (e *UnsafeIdentifier) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("unsafe identifier: field %q of type %q", e.Field, e.Typename)
	}
	return fmt.Sprintf("unsafe identifier: type %q", e.Typename)
}

// ValidateIdentifiers checks every object typename and every primitive
// fieldname of every object type in idx. It returns the first violation
// found, in a deterministic (map-then-sorted) order, or nil if the whole
// index is safe to install.
func ValidateIdentifiers(idx Index) error {
	for _, name := range sortedKeys(idx) {
		d := idx[name]
		if d.Kind != KindObject {
			continue
		}
		if !IsSafeIdentifier(name) {
			return &UnsafeIdentifier{Typename: name}
		}
		for _, fieldName := range d.PrimitiveFieldNames {
			if !IsSafeIdentifier(fieldName) {
				return &UnsafeIdentifier{Typename: name, Field: fieldName}
			}
		}
	}
	return nil
}

func sortedKeys(idx Index) []string {
	keys := make([]string, 0, len(idx))
	for k := range idx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
