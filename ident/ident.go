// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ident defines the dense-integer identifiers and the interned
// symbol and path types shared by every later stage of the middle end:
// the source IR, the resolved IR, the codegen type system, and the
// package tree all key their tables off the types in this package.
package ident

import "strings"

// DefId addresses a single definition (item, field, variant or method)
// inside the resolver's flat node table. It is stable for the lifetime of
// a single compilation run and is never reused across runs.
type DefId uint32

// FileId addresses one input file.
type FileId uint32

// TagId addresses one entry in the tag store (see package tags).
type TagId uint32

// FromUsize constructs an id from a plain int, as returned by len() or a
// loop counter when re-deriving an id from serialized state.
func FromUsize[T ~uint32](v int) T { return T(v) }

// AsUsize returns the id as a plain int for use as a slice index.
func AsUsize[T ~uint32](id T) int { return int(id) }

// Counter mints dense, monotonically increasing ids of type T. The zero
// Counter is ready to use and starts at 0.
type Counter[T ~uint32] struct {
	next T
}

// IncOne returns the current counter value and post-increments it, so
// that two successive calls always yield distinct ids.
func (c *Counter[T]) IncOne() T {
	v := c.next
	c.next++
	return v
}

// Len reports how many ids this counter has minted so far.
func (c *Counter[T]) Len() int { return int(c.next) }

// Symbol is an interned identifier string. Two Symbols with the same
// spelling compare equal and hash identically; Symbol is used as a map
// key throughout the resolver.
type Symbol string

// NewSymbol wraps a plain string as a Symbol.
func NewSymbol(s string) Symbol { return Symbol(s) }

// String returns the underlying spelling.
func (s Symbol) String() string { return string(s) }

// SnakeCase returns the snake_case transform of s, used by the resolver's
// fuzzy Protobuf fallback (package resolve) and by field-name
// canonicalization during lowering. The transform lower-cases the symbol
// and inserts an underscore before every interior uppercase letter that
// follows a lowercase letter or digit, or that starts a new acronym run
// before a following lowercase letter.
func (s Symbol) SnakeCase() Symbol {
	in := string(s)
	var b strings.Builder
	runes := []rune(in)
	for i, r := range runes {
		isUpper := r >= 'A' && r <= 'Z'
		if isUpper {
			prevLower := i > 0 && !(runes[i-1] >= 'A' && runes[i-1] <= 'Z') && runes[i-1] != '_'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if i > 0 && (prevLower || (nextLower && !(runes[i-1] == '_'))) {
				if b.Len() > 0 && rune(b.String()[b.Len()-1]) != '_' {
					b.WriteByte('_')
				}
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return Symbol(b.String())
}

// ItemPath is an ordered sequence of Symbols denoting a fully-qualified
// location, e.g. [a, b, Foo]. Equality is segment-wise; the empty path is
// a valid base for package-tree construction but never a valid reference.
type ItemPath []Symbol

// Equal reports whether p and o have identical segments in the same
// order.
func (p ItemPath) Equal(o ItemPath) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Append returns a new ItemPath with sym appended; it never mutates p's
// backing array.
func (p ItemPath) Append(sym Symbol) ItemPath {
	out := make(ItemPath, len(p)+1)
	copy(out, p)
	out[len(p)] = sym
	return out
}

// String renders the path dot-joined, e.g. "a.b.Foo".
func (p ItemPath) String() string {
	ss := make([]string, len(p))
	for i, s := range p {
		ss[i] = string(s)
	}
	return strings.Join(ss, ".")
}
