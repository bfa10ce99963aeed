// Copyright 2018 Google Inc.
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

// Package pkgtree builds the trie over file package paths that the
// emitter uses to lay out emitted modules hierarchically.
package pkgtree

import "github.com/openidlc/idlc/ident"

// Node is one trie node. Path is the node's full prefix from the root;
// membership at a node does not imply a file was declared exactly
// there.
type Node struct {
	Path     ident.ItemPath
	Children []*Node
}

// FromPackages constructs the package tree for pkgs by grouping on first
// segment (preserving first-appearance order) and recursing on the
// remainder.
func FromPackages(pkgs []ident.ItemPath) []*Node {
	return build(nil, pkgs)
}

// build groups non-empty paths by their first segment, preserving the
// order each distinct segment is first seen, and recurses into each
// group's remainders (dropping length-1 paths, which contribute to the
// grouping but have no children of their own).
func build(base ident.ItemPath, pkgs []ident.ItemPath) []*Node {
	var order []ident.Symbol
	seen := map[ident.Symbol]bool{}
	groups := map[ident.Symbol][]ident.ItemPath{}

	for _, p := range pkgs {
		if len(p) == 0 {
			continue
		}
		head := p[0]
		if !seen[head] {
			seen[head] = true
			order = append(order, head)
		}
		if len(p) > 1 {
			groups[head] = append(groups[head], p[1:])
		}
	}

	nodes := make([]*Node, 0, len(order))
	for _, seg := range order {
		childBase := base.Append(seg)
		nodes = append(nodes, &Node{
			Path:     childBase,
			Children: build(childBase, groups[seg]),
		})
	}
	return nodes
}
