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
	"fmt"

	"github.com/openidlc/idlc/ident"
	"github.com/openidlc/idlc/ir"
	"github.com/openidlc/idlc/names"
	"github.com/openidlc/idlc/rir"
)

// lowerFile pushes the file's own symbol table as the outermost scope
// and lowers every top-level item in declaration order.
func (r *Resolver) lowerFile(f *ir.File) error {
	st := r.fileSymMap[f.ID]
	prevFile := r.curFile
	r.curFile = f
	r.blocks = append(r.blocks, st)
	defer func() {
		r.blocks = r.blocks[:len(r.blocks)-1]
		r.curFile = prevFile
	}()

	meta := rir.FileMeta{Package: f.Package}
	for i := range f.Items {
		item := &f.Items[i]
		if item.Kind == ir.KindUse {
			continue
		}
		did, err := r.lowerItem(item, f.ID, nil)
		if err != nil {
			return err
		}
		meta.TopLevel = append(meta.TopLevel, did)
	}
	r.fileMeta[f.ID] = meta
	return nil
}

// lowerMod pushes mod's nested symbol table and lowers its items, with
// the mod's own DefId as the new parent.
func (r *Resolver) lowerMod(modDid ident.DefId, items []ir.Item, fileID ident.FileId) ([]ident.DefId, error) {
	nested := r.defModules[modDid]
	r.blocks = append(r.blocks, nested)
	defer func() {
		r.blocks = r.blocks[:len(r.blocks)-1]
	}()

	var children []ident.DefId
	for i := range items {
		item := &items[i]
		if item.Kind == ir.KindUse {
			continue
		}
		did, err := r.lowerItem(item, fileID, &modDid)
		if err != nil {
			return nil, err
		}
		children = append(children, did)
	}
	return children, nil
}

// lowerItem lowers one top-level-nameable item into its Node, reusing
// the DefId minted for it during CollectDef.
func (r *Resolver) lowerItem(item *ir.Item, fileID ident.FileId, parent *ident.DefId) (ident.DefId, error) {
	did, ok := r.itemDefID[item]
	if !ok {
		return 0, fmt.Errorf("internal error: item %q was not collected", item.Name)
	}

	tagID := r.cloneTags(item.Tags)
	rirItem := &rir.Item{Name: item.Name}

	switch item.Kind {
	case ir.KindMessage:
		rirItem.Kind = rir.KindMessage
		msg := &rir.Message{}
		definedFields := map[string]bool{}
		for i := range item.Message.Fields {
			fDid, err := r.lowerField(&item.Message.Fields[i], did, fileID, definedFields)
			if err != nil {
				return 0, err
			}
			msg.Fields = append(msg.Fields, fDid)
		}
		rirItem.Message = msg

	case ir.KindEnum:
		rirItem.Kind = rir.KindEnum
		en := &rir.Enum{Repr: rir.EnumRepr(item.Enum.Repr)}
		for i := range item.Enum.Variants {
			vDid := r.lowerVariant(&item.Enum.Variants[i], did, fileID)
			en.Variants = append(en.Variants, vDid)
		}
		rirItem.Enum = en

	case ir.KindService:
		rirItem.Kind = rir.KindService
		svc := &rir.Service{}
		for _, up := range item.Service.Extend {
			p, err := r.lowerPath(rir.Type, &up)
			if err != nil {
				return 0, err
			}
			svc.Extend = append(svc.Extend, p)
		}
		for i := range item.Service.Methods {
			mDid, err := r.lowerMethod(&item.Service.Methods[i], did, fileID)
			if err != nil {
				return 0, err
			}
			svc.Methods = append(svc.Methods, mDid)
		}
		rirItem.Service = svc
		r.serviceOrder = append(r.serviceOrder, did)

	case ir.KindNewType:
		rirItem.Kind = rir.KindNewType
		ty, err := r.lowerType(item.NewType.Ty)
		if err != nil {
			return 0, err
		}
		rirItem.NewType = &rir.NewType{Name: item.Name, Ty: ty}

	case ir.KindConst:
		rirItem.Kind = rir.KindConst
		ty, err := r.lowerType(item.Const.Ty)
		if err != nil {
			return 0, err
		}
		rirItem.Const = &rir.Const{
			Name: item.Name,
			Ty:   ty,
			Lit:  lowerLiteral(item.Const.Lit),
		}

	case ir.KindMod:
		rirItem.Kind = rir.KindMod
		children, err := r.lowerMod(did, item.Mod.Items, fileID)
		if err != nil {
			return 0, err
		}
		rirItem.Mod = &rir.Mod{Name: item.Name, Items: children}

	default:
		return 0, fmt.Errorf("internal error: unhandled item kind %v", item.Kind)
	}

	r.nodes[did] = &rir.Node{
		Tags:   tagID,
		Parent: parent,
		FileID: fileID,
		Kind:   rir.NodeItem,
		Item:   rirItem,
	}
	return did, nil
}

// lowerField mints a new DefId for f and lowers it into a Field node.
// Field names are canonicalized to snake_case; defined tracks every
// snake-cased name already assigned within the enclosing message so that
// two differently-spelled source fields colliding on the same snake_case
// spelling (e.g. FooBar and foo_bar) are disambiguated via
// names.MakeUnique rather than silently overwriting one another.
func (r *Resolver) lowerField(f *ir.Field, parent ident.DefId, fileID ident.FileId, defined map[string]bool) (ident.DefId, error) {
	did := r.defs.IncOne()
	ty, err := r.lowerType(f.Ty)
	if err != nil {
		return 0, err
	}
	name := names.MakeUnique(string(f.Name.SnakeCase()), defined)
	r.nodes[did] = &rir.Node{
		Tags:   r.cloneTags(f.Tags),
		Parent: &parent,
		FileID: fileID,
		Kind:   rir.NodeField,
		Field: &rir.Field{
			Did:  did,
			ID:   f.ID,
			Kind: rir.FieldKind(f.Kind),
			Name: ident.Symbol(name),
			Ty:   ty,
		},
	}
	return did, nil
}

// lowerVariant mints a new DefId for v and lowers it into a Variant
// node. Variant names are not snake-cased.
func (r *Resolver) lowerVariant(v *ir.EnumVariant, parent ident.DefId, fileID ident.FileId) ident.DefId {
	did := r.defs.IncOne()
	r.nodes[did] = &rir.Node{
		Tags:   r.cloneTags(v.Tags),
		Parent: &parent,
		FileID: fileID,
		Kind:   rir.NodeVariant,
		Variant: &rir.EnumVariant{
			Did:   did,
			Name:  v.Name,
			Value: v.Value,
		},
	}
	return did
}

// lowerMethod mints a new DefId for m and lowers it into a Method node,
// recorded as Source: Own. Inherited copies are materialized later by
// the flattening pass (flatten.go).
func (r *Resolver) lowerMethod(m *ir.Method, parent ident.DefId, fileID ident.FileId) (ident.DefId, error) {
	did := r.defs.IncOne()

	var args []rir.Arg
	for _, a := range m.Args {
		ty, err := r.lowerType(a.Ty)
		if err != nil {
			return 0, err
		}
		args = append(args, rir.Arg{Name: a.Name, Ty: ty})
	}
	ret, err := r.lowerType(m.Ret)
	if err != nil {
		return 0, err
	}

	var exceptions *rir.Path
	if m.Exceptions != nil {
		p, err := r.lowerPath(rir.Type, m.Exceptions)
		if err != nil {
			return 0, err
		}
		exceptions = &p
	}

	r.nodes[did] = &rir.Node{
		Tags:   r.cloneTags(m.Tags),
		Parent: &parent,
		FileID: fileID,
		Kind:   rir.NodeMethod,
		Method: &rir.Method{
			Did:        did,
			Source:     rir.Own,
			Name:       m.Name,
			Args:       args,
			Ret:        ret,
			Oneway:     m.Oneway,
			Exceptions: exceptions,
		},
	}
	return did, nil
}

// lowerType is a structural rewrite of a source Ty into a resolved Ty:
// primitives map 1:1, containers recurse, and Path segments resolve
// against the active scope stack. The produced Ty carries a freshly
// minted TagId cloned from the source tag set.
func (r *Resolver) lowerType(t ir.Ty) (rir.Ty, error) {
	out := rir.Ty{Kind: rir.TyKind(t.Kind), Tag: r.cloneTags(t.Tag)}

	switch t.Kind {
	case ir.TVec, ir.TSet, ir.TArc:
		elem, err := r.lowerType(*t.Elem)
		if err != nil {
			return rir.Ty{}, err
		}
		out.Elem = &elem
	case ir.TMap:
		key, err := r.lowerType(*t.Key)
		if err != nil {
			return rir.Ty{}, err
		}
		val, err := r.lowerType(*t.Val)
		if err != nil {
			return rir.Ty{}, err
		}
		out.Key = &key
		out.Val = &val
	case ir.TPath:
		p, err := r.lowerPath(rir.Type, t.Path)
		if err != nil {
			return rir.Ty{}, err
		}
		out.Path = &p
	}

	return out, nil
}

// lowerLiteral is a structural copy. Literal values are not checked
// against their declared type's shape, so no resolution is needed here.
func lowerLiteral(l ir.Literal) rir.Literal {
	out := rir.Literal{
		Kind:  rir.LiteralKind(l.Kind),
		Int:   l.Int,
		Float: l.Float,
		Str:   l.Str,
		Bool:  l.Bool,
	}
	for _, e := range l.List {
		out.List = append(out.List, lowerLiteral(e))
	}
	for _, e := range l.MapKey {
		out.MapKey = append(out.MapKey, lowerLiteral(e))
	}
	for _, e := range l.MapVal {
		out.MapVal = append(out.MapVal, lowerLiteral(e))
	}
	return out
}
