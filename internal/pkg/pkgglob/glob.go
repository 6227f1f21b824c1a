package pkgglob

import (
	"errors"
	"strings"
)

// ErrBadPattern is returned by Compile for an unterminated character class or
// a trailing backslash. Such a pattern can never match.
var ErrBadPattern = errors.New("syntax error in pattern")

type kind uint8

const (
	kindLiteral kind = iota
	kindAny
	kindClass
	kindStar
)

// charset is a fixed 128-bit table of ASCII bytes.
type charset [2]uint64

func (c *charset) set(b byte) {
	if b < 128 {
		c[b>>6] |= 1 << (b & 63)
	}
}

func (c *charset) has(b byte) bool {
	return b < 128 && c[b>>6]&(1<<(b&63)) != 0
}

type token struct {
	kind    kind
	lit     byte
	class   charset
	negated bool
}

func (t *token) match(b byte) bool {
	switch t.kind {
	case kindLiteral:
		return b == t.lit
	case kindAny:
		return true
	case kindClass:
		if b == 0 {
			return false
		}
		if t.negated {
			return !t.class.has(b)
		}
		return t.class.has(b)
	default:
		return false
	}
}

// Pattern is a compiled glob pattern. It is immutable and safe for concurrent
// use.
type Pattern struct {
	src    string
	tokens []token
}

// Compile parses pattern.
func Compile(pattern string) (*Pattern, error) {
	p := &Pattern{src: pattern}

	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			// consecutive stars behave like one
			if n := len(p.tokens); n == 0 || p.tokens[n-1].kind != kindStar {
				p.tokens = append(p.tokens, token{kind: kindStar})
			}
		case '?':
			p.tokens = append(p.tokens, token{kind: kindAny})
		case '\\':
			if i+1 >= len(pattern) {
				return nil, ErrBadPattern
			}
			i++
			p.tokens = append(p.tokens, token{kind: kindLiteral, lit: pattern[i]})
		case '[':
			// The first byte after '[' always belongs to the class, so "[]]"
			// matches ']'.
			start := i + 1
			end := start + 1
			for end < len(pattern) && pattern[end] != ']' {
				end++
			}
			if start >= len(pattern) || end >= len(pattern) {
				return nil, ErrBadPattern
			}
			p.tokens = append(p.tokens, classToken(pattern[start:end]))
			i = end
		default:
			p.tokens = append(p.tokens, token{kind: kindLiteral, lit: c})
		}
	}

	return p, nil
}

func classToken(body string) token {
	t := token{kind: kindClass}
	if body != "" && body[0] == '^' {
		t.negated = true
		body = body[1:]
	}
	for i := 0; i < len(body); {
		if i+2 < len(body) && body[i+1] == '-' {
			for c := int(body[i]); c <= int(body[i+2]); c++ {
				t.class.set(byte(c))
			}
			i += 3
			continue
		}
		t.class.set(body[i])
		i++
	}
	return t
}

// String returns the source of the pattern.
func (p *Pattern) String() string {
	return p.src
}

// Match reports whether s matches the whole pattern.
func (p *Pattern) Match(s string) bool {
	toks := p.tokens
	ti, si := 0, 0
	star, mark := -1, 0

	for si < len(s) {
		if ti < len(toks) {
			if toks[ti].kind == kindStar {
				star, mark = ti, si
				ti++
				continue
			}
			if toks[ti].match(s[si]) {
				ti++
				si++
				continue
			}
		}
		if star < 0 {
			return false
		}
		// let the last star swallow one more byte and retry
		mark++
		ti, si = star+1, mark
	}

	for ti < len(toks) && toks[ti].kind == kindStar {
		ti++
	}
	return ti == len(toks)
}

// Match reports whether s matches pattern. A malformed pattern matches
// nothing.
func Match(pattern, s string) bool {
	p, err := Compile(pattern)
	if err != nil {
		return false
	}
	return p.Match(s)
}

// HasMeta reports whether s contains a wildcard or the start of a class.
func HasMeta(s string) bool {
	return strings.ContainsAny(s, "*?[")
}
