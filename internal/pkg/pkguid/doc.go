// Package pkguid provides helpers for recognising, deriving and generating
// unique identifiers.
//
// The core is the UUID Deriver: given any identifying string it returns a
// canonical lower case UUID and tells how it was obtained (copied, extracted
// from an instance URI, hashed, or freshly generated). Hashing is a pure
// function of the input so every process derives the same UUID for the same
// logical entity.
//
// The package also keeps small generators behind interfaces so callers do not
// hard-code a UID strategy:
//   - String IDs (for example UUIDs).
//   - Snowflake IDs, rendered in base 36 for correlation IDs.
package pkguid
