// Package pkgglob matches strings against simple shell-style patterns.
//
// Understood syntax:
//   - '*' any run of characters, including none
//   - '?' exactly one character
//   - '[a-z]' one character in the class; ranges and single bytes may be mixed
//   - '[^a-z]' one character not in the class
//   - '\x' the literal character x
//
// Matching is anchored at both ends. Patterns are compiled once into tokens
// and '*' is matched with a single backtrack point, so neither the pattern nor
// the input length affects stack depth.
package pkgglob
