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

	log "github.com/golang/glog"

	"github.com/openidlc/idlc/ident"
	"github.com/openidlc/idlc/ir"
	"github.com/openidlc/idlc/rir"
)

// collectDefFile runs CollectDef (pass 1) over one file's top-level
// items, populating the file's pre-sized symbol table.
func (r *Resolver) collectDefFile(f *ir.File) {
	st := r.fileSymMap[f.ID]
	r.collectDefItems(f.Items, st, f.ID)
}

// collectDefItems walks items, minting a DefId for each nameable
// definition and inserting it into st under the correct namespace. Mod
// items recurse with a freshly allocated nested SymbolTable as the new
// enclosing scope.
func (r *Resolver) collectDefItems(items []ir.Item, st *rir.SymbolTable, fileID ident.FileId) {
	for i := range items {
		item := &items[i]
		switch item.Kind {
		case ir.KindUse:
			continue
		case ir.KindConst:
			did := r.defs.IncOne()
			r.define(st.Value, item.Name, did, "value")
			r.itemDefID[item] = did
		case ir.KindMod:
			did := r.defs.IncOne()
			r.define(st.Ty, item.Name, did, "type")
			r.itemDefID[item] = did
			nested := r.defModules[did]
			if nested == nil {
				nested = rir.NewSymbolTable()
				r.defModules[did] = nested
			}
			r.collectDefItems(item.Mod.Items, nested, fileID)
		default: // Message, Enum, Service, NewType
			did := r.defs.IncOne()
			r.define(st.Ty, item.Name, did, "type")
			r.itemDefID[item] = did
		}
	}
}

// define inserts name->did into m, recording a non-fatal diagnostic if
// name was already bound in this exact namespace map. Per the
// redefinition policy, the new binding always wins.
func (r *Resolver) define(m map[ident.Symbol]ident.DefId, name ident.Symbol, did ident.DefId, namespace string) {
	if _, exists := m[name]; exists {
		err := fmt.Errorf("redefinition of %s %q in scope", namespace, name)
		log.Errorf("resolve: %v", err)
		r.diags = append(r.diags, err)
	}
	m[name] = did
}
