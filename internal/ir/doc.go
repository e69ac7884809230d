// Package ir provides a constrained JSON value representation with a
// deterministic, canonical serialization.
//
// The schema fingerprint is the only consumer: a decomposed schema is
// converted to IRValue and marshaled with MarshalCanonical so that two
// equivalent schemas always produce byte-identical output, regardless
// of map iteration order.
package ir
