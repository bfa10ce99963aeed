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
	log "github.com/golang/glog"

	"github.com/openidlc/idlc/ident"
	"github.com/openidlc/idlc/ir"
	"github.com/openidlc/idlc/rir"
)

// moduleID is the result of resolveSym: either a definition (did, found
// in namespace kind) or an imported-file handle.
type moduleID struct {
	isFile bool
	did    ident.DefId
	kind   rir.DefKind
	file   ident.FileId
}

// resolveSym resolves a single symbol against the active scope stack,
// innermost block first. Value lookups fall back to Ty on a miss; Ty
// lookups never consult Value. When nothing matches directly and fuzzy
// resolution is enabled, the symbol is snake-cased to look for a
// same-scope module of that name, and the original (non-snake-cased)
// symbol is then looked up inside that module's nested table.
func (r *Resolver) resolveSym(ns rir.DefKind, sym ident.Symbol) (moduleID, error) {
	for i := len(r.blocks) - 1; i >= 0; i-- {
		st := r.blocks[i]

		if ns == rir.Value {
			if did, ok := st.Value[sym]; ok {
				return moduleID{did: did, kind: rir.Value}, nil
			}
			if did, ok := st.Ty[sym]; ok {
				return moduleID{did: did, kind: rir.Type}, nil
			}
		} else {
			if did, ok := st.Ty[sym]; ok {
				return moduleID{did: did, kind: rir.Type}, nil
			}
		}

		if r.opts.fuzzyEnabled() {
			if modDid, ok := st.Ty[sym.SnakeCase()]; ok {
				if nested, ok2 := r.defModules[modDid]; ok2 {
					if ns == rir.Value {
						if did, ok3 := nested.Value[sym]; ok3 {
							return moduleID{did: did, kind: rir.Value}, nil
						}
					}
					if did, ok3 := nested.Ty[sym]; ok3 {
						return moduleID{did: did, kind: rir.Type}, nil
					}
				}
			}
		}
	}

	if r.curFile != nil {
		if fid, ok := r.curFile.Uses[sym]; ok {
			return moduleID{isFile: true, file: fid}, nil
		}
	}

	suggestion := r.suggest(sym)
	log.Errorf("resolve: undefined identifier %q", sym)
	return moduleID{}, errUndefined(sym, suggestion)
}

// step advances cur through a single subsequent path segment: a file
// steps through its top-level table, a mod steps through its nested
// table, and an enum steps through its variant list matched by name. ns
// fixes which
// namespace a file/mod step consults; it is Ty for every non-terminal
// step and the caller's requested namespace for the terminal step.
func (r *Resolver) step(cur moduleID, seg ident.Symbol, ns rir.DefKind, enumName ident.Symbol) (moduleID, error) {
	if cur.isFile {
		st := r.fileSymMap[cur.file]
		if ns == rir.Value {
			if did, ok := st.Value[seg]; ok {
				return moduleID{did: did, kind: rir.Value}, nil
			}
		}
		if did, ok := st.Ty[seg]; ok {
			return moduleID{did: did, kind: rir.Type}, nil
		}
		return moduleID{}, errUndefined(seg, r.suggest(seg))
	}

	node, ok := r.nodes[cur.did]
	if !ok || node.Kind != rir.NodeItem || node.Item == nil {
		return moduleID{}, errInvalidNodeShape(cur.did)
	}

	switch node.Item.Kind {
	case rir.KindMod:
		nested, ok := r.defModules[cur.did]
		if !ok {
			return moduleID{}, errInvalidNodeShape(cur.did)
		}
		if ns == rir.Value {
			if did, ok := nested.Value[seg]; ok {
				return moduleID{did: did, kind: rir.Value}, nil
			}
		}
		if did, ok := nested.Ty[seg]; ok {
			return moduleID{did: did, kind: rir.Type}, nil
		}
		return moduleID{}, errUndefined(seg, r.suggest(seg))
	case rir.KindEnum:
		for _, vd := range node.Item.Enum.Variants {
			vnode := r.nodes[vd]
			if vnode.Variant != nil && vnode.Variant.Name == seg {
				return moduleID{did: vd, kind: rir.Type}, nil
			}
		}
		return moduleID{}, errMissingVariant(enumName, seg)
	default:
		return moduleID{}, errInvalidPathStep(seg, enumName)
	}
}

// lowerPath resolves a multi-segment unresolved reference into a
// rir.Path, terminating in the requested namespace ns.
func (r *Resolver) lowerPath(ns rir.DefKind, up *ir.UnresolvedPath) (rir.Path, error) {
	segs := up.Segments
	if len(segs) == 0 {
		return rir.Path{}, errUndefined("", "")
	}

	firstNs := ns
	cur, err := r.resolveSym(firstNs, segs[0])
	if err != nil {
		return rir.Path{}, err
	}

	for i := 1; i < len(segs); i++ {
		isLast := i == len(segs)-1
		stepNs := rir.Type
		if isLast {
			stepNs = ns
		}
		cur, err = r.step(cur, segs[i], stepNs, segs[i-1])
		if err != nil {
			return rir.Path{}, err
		}
	}

	if cur.isFile {
		return rir.Path{}, errUndefined(segs[len(segs)-1], "")
	}
	return rir.Path{Kind: cur.kind, Did: cur.did}, nil
}
