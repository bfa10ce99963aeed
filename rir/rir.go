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

// Package rir defines the resolved intermediate representation produced
// by package resolve: a flat DefId-keyed node table in which every
// cross-reference is an id, never a pointer, so that cyclic schema
// shapes (an enum referring back to its own variants, a service
// extending a service that extends it back through another path) never
// produce cyclic Go values.
package rir

import (
	"github.com/openidlc/idlc/ident"
	"github.com/openidlc/idlc/tags"
)

// DefKind fixes which of the two disjoint namespaces a Path's DefId lives
// in: the set of type-like names (messages, enums, services, newtypes,
// mods) or the set of value-like names (consts).
type DefKind int

const (
	Type DefKind = iota
	Value
)

// Path is a resolved reference: a DefId whose namespace is fixed by Kind.
type Path struct {
	Kind DefKind
	Did  ident.DefId
}

// NodeKind discriminates what a Node's DefId denotes.
type NodeKind int

const (
	NodeItem NodeKind = iota
	NodeField
	NodeVariant
	NodeMethod
)

// Node is the universal RIR envelope. Every DefId minted by the resolver
// has exactly one Node in the node table.
type Node struct {
	Tags   ident.TagId
	Parent *ident.DefId
	FileID ident.FileId
	Kind   NodeKind

	Item    *Item
	Field   *Field
	Variant *EnumVariant
	Method  *Method
}

// ItemKind discriminates the members of the Item sum type. Values match
// ir.ItemKind's Message/Enum/Service/NewType/Const/Mod members; Use items
// never reach the RIR since they contribute zero nodes.
type ItemKind int

const (
	KindMessage ItemKind = iota
	KindEnum
	KindService
	KindNewType
	KindConst
	KindMod
)

// Item is the resolved counterpart of ir.Item. Child definitions (fields,
// variants, methods, nested mod items) are referenced by DefId into the
// node table rather than embedded, so that the table remains the single
// source of truth.
type Item struct {
	Kind ItemKind
	Name ident.Symbol

	Message *Message
	Enum    *Enum
	Service *Service
	NewType *NewType
	Const   *Const
	Mod     *Mod
}

// Message is a resolved struct-like record; Fields holds the DefIds of
// this message's Field nodes, in declaration order.
type Message struct {
	Fields []ident.DefId
}

// Enum is a resolved closed set of variants; Variants holds the DefIds of
// this enum's EnumVariant nodes, in declaration order.
type Enum struct {
	Variants []ident.DefId
	Repr     EnumRepr
}

// EnumRepr names the underlying wire representation of an Enum.
type EnumRepr int

const (
	ReprI32 EnumRepr = iota
	ReprI64
)

// EnumVariant is one resolved, valued member of an Enum.
type EnumVariant struct {
	Did   ident.DefId
	Name  ident.Symbol
	Value int64
}

// Service is a resolved collection of methods, with resolved references
// to any extended parent services.
type Service struct {
	// Methods holds the DefIds of this service's own and inherited Method
	// nodes: inherited methods in extend-list order, followed by this
	// service's own methods in declaration order. A service's own method
	// always wins over an inherited one of the same name, so an override
	// never appears twice.
	Methods []ident.DefId
	Extend  []Path
}

// MethodSource distinguishes a service's own methods from ones
// materialized by flattening an `extend` reference.
type MethodSource int

const (
	Own MethodSource = iota
	Inherited
)

// Method is one resolved RPC entry point.
type Method struct {
	Did        ident.DefId
	Source     MethodSource
	// InheritedFrom is valid (and required to be non-nil) iff
	// Source == Inherited; it names the ancestor service DefId the
	// method was materialized from.
	InheritedFrom *ident.DefId
	Name          ident.Symbol
	Args          []Arg
	Ret           Ty
	Oneway        bool
	Exceptions    *Path
}

// Arg is one resolved formal parameter of a Method.
type Arg struct {
	Name ident.Symbol
	Ty   Ty
}

// NewType is a resolved named alias over another type.
type NewType struct {
	Name ident.Symbol
	Ty   Ty
}

// Const is a resolved named, typed literal value.
type Const struct {
	Name ident.Symbol
	Ty   Ty
	Lit  Literal
}

// Mod is a resolved named grouping of nested items; Items holds the
// DefIds of its direct children, in declaration order.
type Mod struct {
	Name  ident.Symbol
	Items []ident.DefId
}

// Field is one resolved member of a Message.
type Field struct {
	Did  ident.DefId
	ID   int32
	Kind FieldKind
	Name ident.Symbol
	Ty   Ty
}

// FieldKind mirrors ir.FieldKind for the resolved side.
type FieldKind int

const (
	Required FieldKind = iota
	Optional
)

// LiteralKind mirrors ir.LiteralKind for the resolved side; literal
// values themselves need no resolution (no-goals: no type-compatibility
// checking of field values), so this is a direct structural copy.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitString
	LitBool
	LitList
	LitMap
)

// Literal is a resolved constant value.
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

// TyKind discriminates the members of the resolved type sum. It is
// isomorphic to ir.TyKind except TPath now carries a resolved Path.
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

// Ty is a resolved type occurrence.
type Ty struct {
	Kind TyKind
	Tag  ident.TagId

	Elem *Ty
	Key  *Ty
	Val  *Ty
	Path *Path
}

// SymbolTable holds the two disjoint per-scope namespaces: value names
// (consts) and type names (messages, enums, services, newtypes, mods).
// The two maps are never merged, per the namespace-disjointness
// invariant: a type name and a value constant with the same spelling may
// coexist in the same scope.
type SymbolTable struct {
	Value map[ident.Symbol]ident.DefId
	Ty    map[ident.Symbol]ident.DefId
}

// NewSymbolTable returns an empty, ready-to-use SymbolTable.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		Value: map[ident.Symbol]ident.DefId{},
		Ty:    map[ident.Symbol]ident.DefId{},
	}
}

// NodeTable is the flat DefId-keyed map that is the single source of
// truth for every cross-reference in the RIR.
type NodeTable map[ident.DefId]*Node

// ResolveResult is the output of resolve.ResolveFiles: the stable
// contract a downstream codegen emitter walks.
type ResolveResult struct {
	Files map[ident.FileId]FileMeta
	Nodes NodeTable
	Tags  *tags.Store
}

// FileMeta records the per-file metadata the emitter needs without
// re-walking the original ir.File (which the resolver does not retain
// past the lowering pass).
type FileMeta struct {
	Package ident.ItemPath
	// TopLevel holds the DefIds of this file's directly-declared items,
	// in declaration order.
	TopLevel []ident.DefId
}
