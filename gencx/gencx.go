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

// Package gencx implements the ambient codegen context: a process-wide,
// scoped accessor giving the emitter and CodegenTy's own rendering logic
// DefId -> codegen type and DefId -> relative path resolution during
// emission, without the resolver and the emitter having to pass that
// state through every call.
//
// The driver installs a Cx with WithCx immediately before emission and
// it is torn down (restored to whatever was active before, or to none)
// when the callback returns. Accessing the context outside an active
// WithCx scope is a usage error: Current panics, matching the "assert on
// access outside an active scope" guidance for ambient state in a
// language without real thread-locals.
package gencx

import (
	"fmt"

	"github.com/openidlc/idlc/codegen"
	"github.com/openidlc/idlc/ident"
)

// Cx is the ambient codegen context value.
type Cx struct {
	types map[ident.DefId]codegen.Ty
	paths map[ident.DefId]ident.ItemPath
}

// New constructs a Cx from the given DefId->codegen type and
// DefId->package path mappings, typically built by the driver once
// resolution and codegen-type lowering have both completed.
func New(types map[ident.DefId]codegen.Ty, paths map[ident.DefId]ident.ItemPath) *Cx {
	return &Cx{types: types, paths: paths}
}

// CodegenType implements codegen.PathResolver, letting a Cx stand in
// directly as the resolver the item/const transformers consult for
// Path -> CodegenTy lookups.
func (c *Cx) CodegenType(did ident.DefId) (codegen.Ty, bool) {
	ty, ok := c.types[did]
	return ty, ok
}

// CurRelatedItemPath returns the package path the emitter should use
// when referring to did from the item currently being rendered.
func (c *Cx) CurRelatedItemPath(did ident.DefId) (ident.ItemPath, bool) {
	p, ok := c.paths[did]
	return p, ok
}

// current holds the innermost active context. It is package-level,
// rather than goroutine-local, because resolution and emission are both
// single-threaded batch computations; a concurrent emitter would need
// its own synchronization above this package.
var current *Cx

// WithCx installs cx as the active context for the duration of fn,
// restoring whatever was active beforehand (nil, or an outer Cx if
// WithCx calls are nested) once fn returns. Nested installs are
// permitted; the innermost is the one observed by Current.
func WithCx(cx *Cx, fn func()) {
	prev := current
	current = cx
	defer func() { current = prev }()
	fn()
}

// Current returns the innermost active context. It panics if called
// outside any WithCx scope, per the ambient-context usage contract.
func Current() *Cx {
	if current == nil {
		panic(fmt.Sprintf("gencx: Current called outside an active WithCx scope"))
	}
	return current
}
