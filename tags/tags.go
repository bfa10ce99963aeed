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

// Package tags implements the heterogeneous per-entity attribute bag
// (Tags) and the global TagId-addressed store that the resolver
// maintains across a compilation run. Entries are keyed by the runtime
// type identity of the attribute value, so a caller can stash any Go type
// as a "tag" on a node and retrieve it later without a central registry.
package tags

import (
	"reflect"

	"github.com/openidlc/idlc/ident"
)

// Tags is a heterogeneous attribute bag. The zero value is ready to use.
type Tags struct {
	m map[reflect.Type]any
}

// Insert stores v, keyed by its concrete type. A later Insert of the same
// type replaces the previous value.
func Insert[T any](t *Tags, v T) {
	if t.m == nil {
		t.m = map[reflect.Type]any{}
	}
	t.m[reflect.TypeOf(v)] = v
}

// Get returns the value of type T previously stored with Insert, if any.
func Get[T any](t *Tags) (T, bool) {
	var zero T
	if t == nil || t.m == nil {
		return zero, false
	}
	v, ok := t.m[reflect.TypeOf(zero)]
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// Contains reports whether a value of type T is present.
func Contains[T any](t *Tags) bool {
	_, ok := Get[T](t)
	return ok
}

// Len returns the number of distinct attribute types stored.
func (t *Tags) Len() int {
	if t == nil {
		return 0
	}
	return len(t.m)
}

// IsEmpty reports whether the bag holds no attributes.
func (t *Tags) IsEmpty() bool { return t.Len() == 0 }

// Clone returns a shallow copy of t: a new bag holding the same attribute
// values. Used when type lowering (package resolve) carries a source Ty's
// tags forward onto the resolved Ty, per the RIR type-lowering contract.
func (t *Tags) Clone() *Tags {
	out := &Tags{}
	if t == nil || t.m == nil {
		return out
	}
	out.m = make(map[reflect.Type]any, len(t.m))
	for k, v := range t.m {
		out.m[k] = v
	}
	return out
}

// Store is the resolver-owned, append-only mapping from TagId to the Tags
// bag minted for that id. Tag ids are never removed or mutated in place
// once inserted, matching the append-only invariant in the data model.
type Store struct {
	byID []*Tags
}

// New allocates a fresh, empty tag store.
func New() *Store {
	return &Store{}
}

// Insert appends t to the store and returns the TagId assigned to it.
func (s *Store) Insert(t *Tags) ident.TagId {
	id := ident.FromUsize[ident.TagId](len(s.byID))
	s.byID = append(s.byID, t)
	return id
}

// Get returns the Tags bag for id. The second return is false if id was
// never minted by this store, which is always a programmer error given
// the "every TagId referenced is present" invariant.
func (s *Store) Get(id ident.TagId) (*Tags, bool) {
	i := ident.AsUsize(id)
	if i < 0 || i >= len(s.byID) {
		return nil, false
	}
	return s.byID[i], true
}

// Len reports how many tag bags have been minted.
func (s *Store) Len() int { return len(s.byID) }

// Well-known tag marker types. Each is an empty struct used purely as a
// type-identity key into a Tags bag; none carry data of their own.
type (
	// EntryMessage marks a Thrift message as the service's wrapped
	// request/response envelope.
	EntryMessage struct{}

	// OneOf marks a Protobuf field as belonging to a oneof group.
	OneOf struct{}
	// Repeated marks a Protobuf field as repeated (proto3 list semantics
	// distinct from Thrift's Vec, since repeated fields can appear
	// unpacked on the wire).
	Repeated struct{}
	// ClientStreaming marks a Protobuf/gRPC method argument stream.
	ClientStreaming struct{}
	// ServerStreaming marks a Protobuf/gRPC method return stream.
	ServerStreaming struct{}
	// SInt32 marks a Protobuf field as using zigzag-encoded sint32 wire
	// representation rather than plain varint int32.
	SInt32 struct{}
	// SInt64 marks a Protobuf field as using zigzag-encoded sint64.
	SInt64 struct{}
	// Fixed32 marks a Protobuf field as fixed-width 32-bit on the wire.
	Fixed32 struct{}
	// Fixed64 marks a Protobuf field as fixed-width 64-bit on the wire.
	Fixed64 struct{}
	// SFixed32 marks a Protobuf field as fixed-width signed 32-bit.
	SFixed32 struct{}
	// SFixed64 marks a Protobuf field as fixed-width signed 64-bit.
	SFixed64 struct{}
)
