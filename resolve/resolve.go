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

// Package resolve implements the middle end's central pass: it collects
// every top-level definition across a set of input files into per-scope
// symbol tables, resolves every name reference to a DefId, and lowers
// the source IR into the resolved IR (package rir).
package resolve

import (
	"fmt"

	log "github.com/golang/glog"

	"github.com/openidlc/idlc/diag"
	"github.com/openidlc/idlc/ident"
	"github.com/openidlc/idlc/ir"
	"github.com/openidlc/idlc/rir"
	"github.com/openidlc/idlc/tags"
)

// Options controls resolver behavior. The zero value is the default
// configuration.
type Options struct {
	// HaltOnRedefinition makes a second definition of the same name in
	// the same scope+namespace a fatal error instead of a logged,
	// last-wins overwrite.
	HaltOnRedefinition bool
	// DisableFuzzyProtoResolution turns off the snake_case mod-name
	// fallback that lets an unqualified reference into a module resolve
	// against that module's protobuf-style snake_case alias. Enabled by
	// default.
	DisableFuzzyProtoResolution bool
}

func (o Options) fuzzyEnabled() bool { return !o.DisableFuzzyProtoResolution }

// Resolver owns every counter and table involved in one compilation run.
// A Resolver must not be reused across runs and must not be shared
// between goroutines.
type Resolver struct {
	opts Options

	defs ident.Counter[ident.DefId]

	tagStore *tags.Store
	nodes    rir.NodeTable

	fileSymMap map[ident.FileId]*rir.SymbolTable
	defModules map[ident.DefId]*rir.SymbolTable
	itemDefID  map[*ir.Item]ident.DefId

	fileMeta map[ident.FileId]rir.FileMeta

	// blocks is the scope stack used only during the lowering pass. Its
	// backing SymbolTables are pre-sized before any pointer into them is
	// taken, so a later map growth never invalidates an outstanding
	// reference.
	blocks  []*rir.SymbolTable
	curFile *ir.File

	// serviceOrder records the DefIds of every Service lowered in pass
	// 2, in the order encountered, so that the inheritance-flattening
	// pass (pass 3) has a deterministic traversal order.
	serviceOrder []ident.DefId
	flattened    map[ident.DefId]bool

	diags diag.Errors
}

// NewResolver constructs a Resolver ready to accept ResolveFiles.
func NewResolver(opts Options) *Resolver {
	return &Resolver{
		opts:       opts,
		tagStore:   tags.New(),
		nodes:      rir.NodeTable{},
		fileSymMap: map[ident.FileId]*rir.SymbolTable{},
		defModules: map[ident.DefId]*rir.SymbolTable{},
		itemDefID:  map[*ir.Item]ident.DefId{},
		fileMeta:   map[ident.FileId]rir.FileMeta{},
		flattened:  map[ident.DefId]bool{},
	}
}

// ResolveFiles runs the collection, lowering and service-flattening
// passes over files and returns the fully
// cross-referenced ResolveResult, or a fatal error. Partial results are
// never returned alongside a fatal error.
func ResolveFiles(files []*ir.File, opts Options) (*rir.ResolveResult, error) {
	r := NewResolver(opts)
	return r.Run(files)
}

// Run is the instance form of ResolveFiles, useful when a caller wants to
// hold on to the Resolver (e.g. to inspect diags) after the call.
func (r *Resolver) Run(files []*ir.File) (*rir.ResolveResult, error) {
	log.Infof("resolve: collecting definitions across %d files", len(files))

	// Pre-size fileSymMap before lowering borrows pointers into it, so
	// that no later insertion can trigger a map growth that would
	// invalidate a pointer already pushed onto blocks.
	for _, f := range files {
		r.fileSymMap[f.ID] = rir.NewSymbolTable()
	}
	for _, f := range files {
		r.collectDefFile(f)
	}
	if r.opts.HaltOnRedefinition {
		if err := r.diags.ErrOrNil(); err != nil {
			return nil, fmt.Errorf("resolve: halted on redefinition: %w", err)
		}
	}

	log.Infof("resolve: lowering %d files", len(files))
	for _, f := range files {
		if err := r.lowerFile(f); err != nil {
			return nil, err
		}
	}

	for _, did := range r.serviceOrder {
		r.flattenService(did, map[ident.DefId]bool{})
	}

	return &rir.ResolveResult{
		Files: r.fileMeta,
		Nodes: r.nodes,
		Tags:  r.tagStore,
	}, r.diags.ErrOrNil()
}

// cloneTags mints a fresh TagId and stores a clone of src (or an empty
// bag, if src is nil) under it.
func (r *Resolver) cloneTags(src *tags.Tags) ident.TagId {
	return r.tagStore.Insert(src.Clone())
}
