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

// Package codegen implements the target-side type lattice (CodegenTy)
// and the two strategies that lower a resolved RIR type into it: the
// default, item-context transformer used for fields and return types,
// and the const-context transformer used for constant declarations.
package codegen

import "github.com/openidlc/idlc/ident"

// Kind discriminates the members of the CodegenTy sum.
type Kind int

const (
	KString Kind = iota
	KStr
	KVoid
	KU8
	KBool
	KI8
	KI16
	KI32
	KI64
	KUInt32
	KUInt64
	KF32
	KF64
	KVec
	KSet
	KMap
	KAdt
	KArc
	KStaticRef
	KLazyStaticRef
)

// AdtKind discriminates the shape of a user-defined adt.
type AdtKind int

const (
	Struct AdtKind = iota
	Enum
	NewType
)

// AdtDef names a user-defined target-language type.
type AdtDef struct {
	Did  ident.DefId
	Kind AdtKind
	// Inner holds the wrapped type when Kind == NewType.
	Inner *Ty
}

// Ty is one occurrence of the target-language-shaped type lattice.
type Ty struct {
	Kind Kind

	Elem *Ty
	Key  *Ty
	Val  *Ty
	Adt  *AdtDef
}

// Options controls the const-context transformer's behavior.
type Options struct {
	// ConstStringsAsRef selects Str (borrowed/static) over String
	// (owned) for string constants. Defaults to true, matching target
	// languages where static string constants must be borrowed.
	ConstStringsAsRef bool
}

// DefaultOptions returns the default Options.
func DefaultOptions() Options {
	return Options{ConstStringsAsRef: true}
}
