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
	"github.com/openidlc/idlc/ident"
	"github.com/openidlc/idlc/rir"
)

// flattenService computes the effective, flattened method list for the
// service at did and writes it back onto the service's Node. Flattening
// runs once, after every file has been lowered, which sidesteps any
// declaration-order dependency between a service and the services it
// extends (a service may be declared, and lowered, before a service it
// extends).
//
// visiting guards against a cyclic extends chain; a cycle is not a valid
// schema, but the resolver must not infinite-loop on one.
func (r *Resolver) flattenService(did ident.DefId, visiting map[ident.DefId]bool) []ident.DefId {
	if r.flattened[did] {
		return r.nodes[did].Item.Service.Methods
	}
	if visiting[did] {
		return r.nodes[did].Item.Service.Methods
	}
	visiting[did] = true
	defer delete(visiting, did)

	node := r.nodes[did]
	svc := node.Item.Service
	ownMethods := svc.Methods

	seen := map[string]bool{}
	for _, od := range ownMethods {
		seen[string(r.nodes[od].Method.Name)] = true
	}

	var inherited []ident.DefId
	for _, parent := range svc.Extend {
		parentMethods := r.flattenService(parent.Did, visiting)
		for _, pd := range parentMethods {
			pm := r.nodes[pd].Method
			name := string(pm.Name)
			if seen[name] {
				continue
			}
			seen[name] = true

			newDid := r.defs.IncOne()
			parentDid := parent.Did
			r.nodes[newDid] = &rir.Node{
				Tags:   r.nodes[pd].Tags,
				Parent: &did,
				FileID: node.FileID,
				Kind:   rir.NodeMethod,
				Method: &rir.Method{
					Did:           newDid,
					Source:        rir.Inherited,
					InheritedFrom: &parentDid,
					Name:          pm.Name,
					Args:          pm.Args,
					Ret:           pm.Ret,
					Oneway:        pm.Oneway,
					Exceptions:    pm.Exceptions,
				},
			}
			inherited = append(inherited, newDid)
		}
	}

	final := append(inherited, ownMethods...)
	svc.Methods = final
	r.flattened[did] = true
	return final
}
