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

package resolve

import (
	"strings"
	"testing"

	"github.com/openidlc/idlc/ident"
	"github.com/openidlc/idlc/ir"
	"github.com/openidlc/idlc/rir"
	"github.com/openidlc/idlc/tags"
)

func pathTy(segs ...string) ir.Ty {
	symbols := make([]ident.Symbol, len(segs))
	for i, s := range segs {
		symbols[i] = ident.Symbol(s)
	}
	return ir.Ty{Kind: ir.TPath, Path: &ir.UnresolvedPath{Segments: symbols}}
}

func primTy(k ir.TyKind) ir.Ty { return ir.Ty{Kind: k} }

// TestResolveBasicMessageSelfReference exercises the arena-over-pointers
// design: a message field referencing its own enclosing message must not
// require a cyclic Go value, since the reference is just a DefId.
func TestResolveBasicMessageSelfReference(t *testing.T) {
	file := &ir.File{
		ID:      0,
		Package: ident.ItemPath{"pkg"},
		Items: []ir.Item{{
			Kind: ir.KindMessage,
			Name: "Node",
			Message: &ir.Message{Fields: []ir.Field{
				{ID: 1, Kind: ir.Optional, Name: "Next", Ty: pathTy("Node")},
				{ID: 2, Kind: ir.Required, Name: "Value", Ty: primTy(ir.TI32)},
			}},
		}},
	}

	res, err := ResolveFiles([]*ir.File{file}, Options{})
	if err != nil {
		t.Fatalf("ResolveFiles: %v", err)
	}

	meta, ok := res.Files[0]
	if !ok || len(meta.TopLevel) != 1 {
		t.Fatalf("FileMeta = %+v, ok=%v, want one top-level item", meta, ok)
	}
	nodeDid := meta.TopLevel[0]

	node, ok := res.Nodes[nodeDid]
	if !ok || node.Kind != rir.NodeItem || node.Item.Kind != rir.KindMessage {
		t.Fatalf("node for Node = %+v, ok=%v, want a Message item node", node, ok)
	}
	if len(node.Item.Message.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2", len(node.Item.Message.Fields))
	}

	nextDid := node.Item.Message.Fields[0]
	nextField := res.Nodes[nextDid].Field
	if nextField.Name != "next" {
		t.Errorf("field name = %q, want snake_case %q", nextField.Name, "next")
	}
	if nextField.Ty.Path == nil || nextField.Ty.Path.Did != nodeDid {
		t.Errorf("next.Ty.Path = %+v, want Did == %v (self-reference)", nextField.Ty, nodeDid)
	}
}

// TestHaltOnRedefinition checks both halting modes: with halting
// disabled, ResolveFiles still returns a usable result alongside a
// non-nil diagnostics error; with halting enabled, it returns no result.
func TestHaltOnRedefinition(t *testing.T) {
	file := &ir.File{
		ID: 0,
		Items: []ir.Item{
			{Kind: ir.KindConst, Name: "X", Const: &ir.Const{Ty: primTy(ir.TI32), Lit: ir.Literal{Kind: ir.LitInt, Int: 1}}},
			{Kind: ir.KindConst, Name: "X", Const: &ir.Const{Ty: primTy(ir.TI32), Lit: ir.Literal{Kind: ir.LitInt, Int: 2}}},
		},
	}

	res, err := ResolveFiles([]*ir.File{file}, Options{})
	if err == nil {
		t.Fatalf("ResolveFiles with HaltOnRedefinition=false returned nil error, want the collected redefinition diagnostic")
	}
	if res == nil || len(res.Files[0].TopLevel) != 2 {
		t.Fatalf("res = %+v, want a full result alongside the diagnostic", res)
	}

	res, err = ResolveFiles([]*ir.File{file}, Options{HaltOnRedefinition: true})
	if err == nil {
		t.Fatalf("ResolveFiles with HaltOnRedefinition=true returned nil error")
	}
	if res != nil {
		t.Errorf("res = %+v, want nil on a halted run", res)
	}
}

// TestFuzzyProtoResolutionFallback builds the scenario the snake_case
// fallback in resolveSym exists for: a single-segment reference whose
// spelling only matches a mod once snake-cased, and which is then found
// again, verbatim, inside that mod's own namespace.
func TestFuzzyProtoResolutionFallback(t *testing.T) {
	file := &ir.File{
		ID: 0,
		Items: []ir.Item{
			{
				Kind: ir.KindMod,
				Name: "foo_pkg",
				Mod: &ir.Mod{Items: []ir.Item{
					{Kind: ir.KindMessage, Name: "FooPkg", Message: &ir.Message{}},
				}},
			},
			{
				Kind: ir.KindMessage,
				Name: "Ref",
				Message: &ir.Message{Fields: []ir.Field{
					{ID: 1, Kind: ir.Optional, Name: "target", Ty: pathTy("FooPkg")},
				}},
			},
		},
	}

	res, err := ResolveFiles([]*ir.File{file}, Options{})
	if err != nil {
		t.Fatalf("ResolveFiles: %v", err)
	}

	modDid := res.Files[0].TopLevel[0]
	modNode := res.Nodes[modDid]
	nestedDid := modNode.Item.Mod.Items[0]

	refDid := res.Files[0].TopLevel[1]
	field := res.Nodes[res.Nodes[refDid].Item.Message.Fields[0]].Field
	if field.Ty.Path == nil || field.Ty.Path.Did != nestedDid {
		t.Errorf("target.Ty.Path = %+v, want Did == %v (the nested FooPkg message)", field.Ty, nestedDid)
	}
}

// TestFuzzyProtoResolutionDisabled checks that DisableFuzzyProtoResolution
// turns the same reference from TestFuzzyProtoResolutionFallback into an
// undefined-identifier error.
func TestFuzzyProtoResolutionDisabled(t *testing.T) {
	file := &ir.File{
		ID: 0,
		Items: []ir.Item{
			{
				Kind: ir.KindMod,
				Name: "foo_pkg",
				Mod: &ir.Mod{Items: []ir.Item{
					{Kind: ir.KindMessage, Name: "FooPkg", Message: &ir.Message{}},
				}},
			},
			{
				Kind: ir.KindMessage,
				Name: "Ref",
				Message: &ir.Message{Fields: []ir.Field{
					{ID: 1, Kind: ir.Optional, Name: "target", Ty: pathTy("FooPkg")},
				}},
			},
		},
	}

	_, err := ResolveFiles([]*ir.File{file}, Options{DisableFuzzyProtoResolution: true})
	if err == nil {
		t.Fatalf("ResolveFiles with the fuzzy fallback disabled = nil error, want undefined identifier")
	}
	if !strings.Contains(err.Error(), "undefined identifier") {
		t.Errorf("err = %v, want an undefined identifier error", err)
	}
}

// TestUndefinedIdentifierSuggestion checks the did-you-mean suggestion
// built from the trie over in-scope names.
func TestUndefinedIdentifierSuggestion(t *testing.T) {
	file := &ir.File{
		ID: 0,
		Items: []ir.Item{
			{Kind: ir.KindMessage, Name: "Account", Message: &ir.Message{}},
			{
				Kind: ir.KindMessage,
				Name: "Ref",
				Message: &ir.Message{Fields: []ir.Field{
					{ID: 1, Kind: ir.Optional, Name: "target", Ty: pathTy("Accoutn")},
				}},
			},
		},
	}

	_, err := ResolveFiles([]*ir.File{file}, Options{})
	if err == nil {
		t.Fatalf("ResolveFiles = nil error, want undefined identifier for %q", "Accoutn")
	}
	if !strings.Contains(err.Error(), `did you mean "Account"`) {
		t.Errorf("err = %v, want a did-you-mean suggestion for Account", err)
	}
}

// TestFlattenServiceDiamondInheritance builds a diamond: D extends B and
// C, both of which extend A. A method overridden by D itself must win
// over any inherited copy, and the diamond must not duplicate A's
// untouched method.
func TestFlattenServiceDiamondInheritance(t *testing.T) {
	voidTy := primTy(ir.TVoid)
	method := func(name string) ir.Method { return ir.Method{Name: ident.Symbol(name), Ret: voidTy} }
	extend := func(name string) ir.UnresolvedPath {
		return ir.UnresolvedPath{Segments: []ident.Symbol{ident.Symbol(name)}}
	}

	file := &ir.File{
		ID: 0,
		Items: []ir.Item{
			{Kind: ir.KindService, Name: "A", Service: &ir.Service{
				Methods: []ir.Method{method("Shared"), method("OnlyA")},
			}},
			{Kind: ir.KindService, Name: "B", Service: &ir.Service{
				Extend: []ir.UnresolvedPath{extend("A")},
			}},
			{Kind: ir.KindService, Name: "C", Service: &ir.Service{
				Extend: []ir.UnresolvedPath{extend("A")},
			}},
			{Kind: ir.KindService, Name: "D", Service: &ir.Service{
				Extend:  []ir.UnresolvedPath{extend("B"), extend("C")},
				Methods: []ir.Method{method("Shared")}, // D overrides Shared itself.
			}},
		},
	}

	res, err := ResolveFiles([]*ir.File{file}, Options{})
	if err != nil {
		t.Fatalf("ResolveFiles: %v", err)
	}

	var dDid ident.DefId
	for _, did := range res.Files[0].TopLevel {
		if res.Nodes[did].Item.Name == "D" {
			dDid = did
		}
	}

	svc := res.Nodes[dDid].Item.Service
	var names []string
	var ownSharedCount int
	for _, mdid := range svc.Methods {
		m := res.Nodes[mdid].Method
		names = append(names, string(m.Name))
		if m.Name == "Shared" && m.Source == rir.Own {
			ownSharedCount++
		}
	}

	if ownSharedCount != 1 {
		t.Errorf("own Shared method count = %d, want 1 (D's override, not an inherited duplicate)", ownSharedCount)
	}
	wantCount := map[string]int{"Shared": 1, "OnlyA": 1}
	gotCount := map[string]int{}
	for _, n := range names {
		gotCount[n]++
	}
	for name, want := range wantCount {
		if gotCount[name] != want {
			t.Errorf("method %q appears %d times in D, want %d (diamond must not duplicate)", name, gotCount[name], want)
		}
	}
}

// TestResolveSymValuePreference whitebox-tests resolveSym's documented
// value-then-type namespace order directly: when both a value and a type
// definition share a spelling in the same scope, a Value-namespace
// lookup must prefer the value.
func TestResolveSymValuePreference(t *testing.T) {
	r := NewResolver(Options{})
	st := rir.NewSymbolTable()
	st.Value["Foo"] = 10
	st.Ty["Foo"] = 20
	r.blocks = []*rir.SymbolTable{st}

	got, err := r.resolveSym(rir.Value, "Foo")
	if err != nil {
		t.Fatalf("resolveSym(Value, Foo): %v", err)
	}
	if got.kind != rir.Value || got.did != 10 {
		t.Errorf("resolveSym(Value, Foo) = %+v, want the value binding (did=10)", got)
	}

	got, err = r.resolveSym(rir.Type, "Foo")
	if err != nil {
		t.Fatalf("resolveSym(Ty, Foo): %v", err)
	}
	if got.kind != rir.Type || got.did != 20 {
		t.Errorf("resolveSym(Ty, Foo) = %+v, want the type binding (did=20)", got)
	}
}

// TestLowerFieldSnakeCaseCollisionIsUniqued covers two differently-spelled
// source fields that snake-case to the same name: the second must be
// disambiguated via names.MakeUnique rather than silently colliding with
// the first.
func TestLowerFieldSnakeCaseCollisionIsUniqued(t *testing.T) {
	file := &ir.File{
		ID:      0,
		Package: ident.ItemPath{"pkg"},
		Items: []ir.Item{{
			Kind: ir.KindMessage,
			Name: "Msg",
			Message: &ir.Message{Fields: []ir.Field{
				{ID: 1, Kind: ir.Required, Name: "FooBar", Ty: primTy(ir.TI32)},
				{ID: 2, Kind: ir.Required, Name: "foo_bar", Ty: primTy(ir.TI32)},
			}},
		}},
	}

	res, err := ResolveFiles([]*ir.File{file}, Options{})
	if err != nil {
		t.Fatalf("ResolveFiles: %v", err)
	}

	msgDid := res.Files[0].TopLevel[0]
	msg := res.Nodes[msgDid].Item.Message
	if len(msg.Fields) != 2 {
		t.Fatalf("message has %d fields, want 2", len(msg.Fields))
	}
	first := res.Nodes[msg.Fields[0]].Field.Name
	second := res.Nodes[msg.Fields[1]].Field.Name
	if first != "foo_bar" {
		t.Errorf("first field name = %q, want %q", first, "foo_bar")
	}
	if second == first {
		t.Errorf("second field name = %q, want a disambiguated name distinct from %q", second, first)
	}
}

// TestLowerTypeClonesTag verifies that lowering a Ty mints a fresh TagId
// whose backing bag is a clone of the source IR Ty's tag set, rather
// than leaving every resolved Ty at the zero TagId.
func TestLowerTypeClonesTag(t *testing.T) {
	srcTags := &tags.Tags{}
	tags.Insert(srcTags, tags.Repeated{})

	file := &ir.File{
		ID:      0,
		Package: ident.ItemPath{"pkg"},
		Items: []ir.Item{{
			Kind:    ir.KindNewType,
			Name:    "N",
			NewType: &ir.NewType{Ty: ir.Ty{Kind: ir.TI32, Tag: srcTags}},
		}},
	}

	res, err := ResolveFiles([]*ir.File{file}, Options{})
	if err != nil {
		t.Fatalf("ResolveFiles: %v", err)
	}

	did := res.Files[0].TopLevel[0]
	ty := res.Nodes[did].Item.NewType.Ty
	bag, ok := res.Tags.Get(ty.Tag)
	if !ok {
		t.Fatalf("Tags.Get(%v) ok = false, want the cloned tag bag present", ty.Tag)
	}
	if !tags.Contains[tags.Repeated](bag) {
		t.Errorf("cloned tag bag missing the Repeated marker carried on the source Ty")
	}
}
