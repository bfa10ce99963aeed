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

package codegen

import (
	"fmt"

	"github.com/openidlc/idlc/ident"
	"github.com/openidlc/idlc/rir"
)

// PathResolver is the ambient capability the transformers need to turn a
// resolved Path into the CodegenTy the emitter associates with its
// DefId. Package gencx's Cx implements this interface; tests may supply
// a map-backed stub instead.
type PathResolver interface {
	CodegenType(did ident.DefId) (Ty, bool)
}

// unimplementedErr reports one of the RIR TyKinds this codegen stage
// does not yet map to a target-language type: UInt32, UInt64, F32, and
// Arc. Both transformers fail loudly here rather than silently
// substituting a close-enough type.
func unimplementedErr(kind rir.TyKind) error {
	names := map[rir.TyKind]string{
		rir.TUInt32: "UInt32",
		rir.TUInt64: "UInt64",
		rir.TF32:    "F32",
		rir.TArc:    "Arc",
	}
	name, ok := names[kind]
	if !ok {
		name = fmt.Sprintf("TyKind(%d)", kind)
	}
	return fmt.Errorf("codegen: %s has no target-language mapping (not yet implemented)", name)
}

// baseTransformer implements the default, item-context mapping for
// every primitive and container. ItemTransformer uses it unmodified;
// ConstTransformer handles the string and container cases itself and
// hands every other kind to an ItemTransformer, giving "default
// methods, override selectively" behavior through delegation.
type baseTransformer struct {
	resolver PathResolver
}

func (b baseTransformer) lower(ty rir.Ty) (Ty, error) {
	switch ty.Kind {
	case rir.TString:
		return Ty{Kind: KString}, nil
	case rir.TVoid:
		return Ty{Kind: KVoid}, nil
	case rir.TU8:
		return Ty{Kind: KU8}, nil
	case rir.TBool:
		return Ty{Kind: KBool}, nil
	case rir.TBytes:
		// Bytes -> Vec<U8>, so a Bytes field round-trips through the
		// same container handling as any other sequence type.
		elem := Ty{Kind: KU8}
		return Ty{Kind: KVec, Elem: &elem}, nil
	case rir.TI8:
		return Ty{Kind: KI8}, nil
	case rir.TI16:
		return Ty{Kind: KI16}, nil
	case rir.TI32:
		return Ty{Kind: KI32}, nil
	case rir.TI64:
		return Ty{Kind: KI64}, nil
	case rir.TF64:
		return Ty{Kind: KF64}, nil
	case rir.TUInt32, rir.TUInt64, rir.TF32, rir.TArc:
		return Ty{}, unimplementedErr(ty.Kind)
	case rir.TVec:
		elem, err := b.lower(*ty.Elem)
		if err != nil {
			return Ty{}, err
		}
		return Ty{Kind: KVec, Elem: &elem}, nil
	case rir.TSet:
		elem, err := b.lower(*ty.Elem)
		if err != nil {
			return Ty{}, err
		}
		return Ty{Kind: KSet, Elem: &elem}, nil
	case rir.TMap:
		key, err := b.lower(*ty.Key)
		if err != nil {
			return Ty{}, err
		}
		val, err := b.lower(*ty.Val)
		if err != nil {
			return Ty{}, err
		}
		return Ty{Kind: KMap, Key: &key, Val: &val}, nil
	case rir.TPath:
		cgTy, ok := b.resolver.CodegenType(ty.Path.Did)
		if !ok {
			return Ty{}, fmt.Errorf("codegen: no codegen type registered for def %v", ty.Path.Did)
		}
		return cgTy, nil
	default:
		return Ty{}, fmt.Errorf("codegen: unhandled TyKind %v", ty.Kind)
	}
}

// ItemTransformer is the default, item-context strategy used for field
// and return types.
type ItemTransformer struct {
	base baseTransformer
}

// NewItemTransformer constructs an ItemTransformer backed by resolver
// for Path lookups.
func NewItemTransformer(resolver PathResolver) *ItemTransformer {
	return &ItemTransformer{base: baseTransformer{resolver: resolver}}
}

// Lower converts ty using the item-context rules.
func (t *ItemTransformer) Lower(ty rir.Ty) (Ty, error) {
	return t.base.lower(ty)
}

// ConstTransformer is the const-context strategy used for constant
// declarations, where owning containers would fail at compile time in
// the target language.
type ConstTransformer struct {
	item *ItemTransformer
	opts Options
}

// NewConstTransformer constructs a ConstTransformer backed by resolver
// for Path lookups (delegated to its item-context counterpart for every
// kind other than strings and containers).
func NewConstTransformer(resolver PathResolver, opts Options) *ConstTransformer {
	return &ConstTransformer{item: NewItemTransformer(resolver), opts: opts}
}

// Lower converts ty using the const-context rules: strings become
// Str (or String, if configured), and containers are wrapped in a
// StaticRef around a container whose own elements are lowered by
// recursing through Lower again, not through the item-context
// transformer, so a String nested inside a Vec/Set/Map still observes
// ConstStringsAsRef instead of silently reverting to the item-context
// String mapping.
func (t *ConstTransformer) Lower(ty rir.Ty) (Ty, error) {
	switch ty.Kind {
	case rir.TString:
		if t.opts.ConstStringsAsRef {
			return Ty{Kind: KStr}, nil
		}
		return Ty{Kind: KString}, nil
	case rir.TVec:
		elem, err := t.Lower(*ty.Elem)
		if err != nil {
			return Ty{}, err
		}
		inner := Ty{Kind: KVec, Elem: &elem}
		return Ty{Kind: KStaticRef, Elem: &inner}, nil
	case rir.TSet:
		elem, err := t.Lower(*ty.Elem)
		if err != nil {
			return Ty{}, err
		}
		inner := Ty{Kind: KSet, Elem: &elem}
		return Ty{Kind: KStaticRef, Elem: &inner}, nil
	case rir.TMap:
		key, err := t.Lower(*ty.Key)
		if err != nil {
			return Ty{}, err
		}
		val, err := t.Lower(*ty.Val)
		if err != nil {
			return Ty{}, err
		}
		inner := Ty{Kind: KMap, Key: &key, Val: &val}
		return Ty{Kind: KStaticRef, Elem: &inner}, nil
	default:
		return t.item.Lower(ty)
	}
}
