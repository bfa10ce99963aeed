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

// Package ir defines the upstream contract that the (out-of-scope) Thrift
// and Protobuf front ends owe the middle end: a parsed, multi-file,
// unresolved intermediate representation. Every name reference in this
// package is a bare symbol path; resolving those paths into rir.DefIds is
// the job of package resolve.
package ir

import (
	"github.com/openidlc/idlc/ident"
	"github.com/openidlc/idlc/tags"
)

// File is one parsed input schema file, as delivered by the front end.
type File struct {
	ID ident.FileId
	// Package is the file's package/module path, used both as the
	// lowering scope's qualifying prefix and as an input to package-tree
	// construction.
	Package ident.ItemPath
	// Uses maps a local import alias to the FileId it refers to.
	Uses map[ident.Symbol]ident.FileId
	Items []Item
}

// ItemKind discriminates the members of the Item sum type.
type ItemKind int

const (
	KindMessage ItemKind = iota
	KindEnum
	KindService
	KindNewType
	KindConst
	KindMod
	KindUse
)

// String renders the ItemKind for diagnostics.
func (k ItemKind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindEnum:
		return "enum"
	case KindService:
		return "service"
	case KindNewType:
		return "newtype"
	case KindConst:
		return "const"
	case KindMod:
		return "mod"
	case KindUse:
		return "use"
	default:
		return "unknown"
	}
}

// Item is a tagged sum over the top-level-nameable schema constructs.
// Exactly the fields relevant to Kind are populated; this mirrors a
// protoc-style oneof more than a Go interface hierarchy because the
// resolver needs to switch over Kind in several unrelated places (name
// collection, lowering, diagnostics) and a flat struct keeps those
// switches simple.
type Item struct {
	Kind ItemKind
	Name ident.Symbol
	Tags *tags.Tags

	Message *Message
	Enum    *Enum
	Service *Service
	NewType *NewType
	Const   *Const
	Mod     *Mod
	// Use items carry no payload; they are fully described by Name and
	// resolved via the enclosing File.Uses map.
}

// Message is a Thrift/Protobuf struct-like record.
type Message struct {
	Fields []Field
}

// FieldKind distinguishes Thrift's required/optional field qualifiers.
// resolve.lowerField copies the qualifier through unchanged; it does not
// special-case Protobuf fields, so the front end sets the kind it wants.
type FieldKind int

const (
	Required FieldKind = iota
	Optional
)

// Field is one member of a Message, prior to name resolution.
type Field struct {
	ID   int32 // wire tag number from the schema
	Kind FieldKind
	Name ident.Symbol
	Ty   Ty
	Tags *tags.Tags
}

// EnumRepr names the underlying wire representation of an Enum.
type EnumRepr int

const (
	ReprI32 EnumRepr = iota
	ReprI64
)

// Enum is a closed set of named integer variants.
type Enum struct {
	Variants []EnumVariant
	Repr     EnumRepr
}

// EnumVariant is one named, valued member of an Enum.
type EnumVariant struct {
	Name  ident.Symbol
	Value int64
	Tags  *tags.Tags
}

// Service is a named collection of RPC methods, optionally extending
// other services (Thrift service inheritance).
type Service struct {
	Methods []Method
	// Extend holds unresolved references to parent services.
	Extend []UnresolvedPath
}

// Method is one RPC entry point, prior to name resolution.
type Method struct {
	Name       ident.Symbol
	Args       []Arg
	Ret        Ty
	Oneway     bool
	Exceptions *UnresolvedPath
	Tags       *tags.Tags
}

// Arg is one formal parameter of a Method.
type Arg struct {
	Name ident.Symbol
	Ty   Ty
}

// NewType is a named alias over another type (Thrift typedef / Protobuf
// has no direct equivalent but some IDLs synthesize these for aliases).
type NewType struct {
	Ty Ty
}

// Const is a named, typed literal value.
type Const struct {
	Ty  Ty
	Lit Literal
}

// Mod is a named grouping of nested items (Thrift namespaces / Protobuf
// packages modeled as an explicit nesting construct at the IR level).
type Mod struct {
	Items []Item
}

// UnresolvedPath is a dotted reference as written in source, not yet
// resolved to a DefId.
type UnresolvedPath struct {
	Segments []ident.Symbol
}

// LiteralKind discriminates the members of the Literal sum type.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitString
	LitBool
	LitList
	LitMap
)

// Literal is a constant value as written in source.
type Literal struct {
	Kind LiteralKind

	Int    int64
	Float  float64
	Str    string
	Bool   bool
	List   []Literal
	MapKey []Literal
	MapVal []Literal
}

// TyKind discriminates the members of the source-side type sum.
type TyKind int

const (
	TString TyKind = iota
	TVoid
	TU8
	TBool
	TBytes
	TI8
	TI16
	TI32
	TI64
	TUInt32
	TUInt64
	TF32
	TF64
	TVec
	TSet
	TMap
	TArc
	TPath
)

// Ty bundles a TyKind with the source tag bag (see package tags)
// carrying any schema-specific hints attached to this type occurrence.
type Ty struct {
	Kind TyKind
	Tag  *tags.Tags

	// Elem is populated for TVec, TSet, TArc.
	Elem *Ty
	// Key/Val are populated for TMap.
	Key *Ty
	Val *Ty
	// Path is populated for TPath.
	Path *UnresolvedPath
}
