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

package pkgtree

import (
	"strings"

	"github.com/derekparker/trie"

	"github.com/openidlc/idlc/ident"
)

// Index is a flattened, string-keyed lookup over a package tree, built
// with the same prefix-trie library package resolve uses for its
// did-you-mean suggestions (see resolve's suggest). It answers
// membership and prefix-sharing questions in sub-linear time without
// re-walking the Node tree; Node itself remains the structural source of
// truth, and Index is always derived from it, never the other way round.
type Index struct {
	t     *trie.Trie
	byKey map[string]*Node
}

// separator joins ItemPath segments into the Index's flat string keys.
const separator = "\x00"

func key(p ident.ItemPath) string {
	ss := make([]string, len(p))
	for i, s := range p {
		ss[i] = string(s)
	}
	return strings.Join(ss, separator)
}

// BuildIndex flattens every node of roots (and their descendants) into
// an Index.
func BuildIndex(roots []*Node) *Index {
	idx := &Index{t: trie.New(), byKey: map[string]*Node{}}
	var walk func([]*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			k := key(n.Path)
			idx.t.Add(k, nil)
			idx.byKey[k] = n
			walk(n.Children)
		}
	}
	walk(roots)
	return idx
}

// Lookup returns the Node whose Path exactly matches p, if any.
func (idx *Index) Lookup(p ident.ItemPath) (*Node, bool) {
	n, ok := idx.byKey[key(p)]
	return n, ok
}

// SharesPrefix reports every known package path that has p as a prefix
// (including p itself), segment by segment, so that an emitted package
// path colliding with one nested beneath it can be detected.
func (idx *Index) SharesPrefix(p ident.ItemPath) []ident.ItemPath {
	k := key(p)
	matches := idx.t.PrefixSearch(k)
	out := make([]ident.ItemPath, 0, len(matches))
	for _, m := range matches {
		if len(p) > 0 && m != k && !strings.HasPrefix(m, k+separator) {
			continue // a string prefix only, e.g. a.bc for a.b
		}
		out = append(out, idx.byKey[m].Path)
	}
	return out
}
