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

	"github.com/derekparker/trie"

	"github.com/openidlc/idlc/ident"
)

func errUndefined(sym ident.Symbol, suggestion string) error {
	if suggestion == "" {
		return fmt.Errorf("undefined identifier %q", sym)
	}
	return fmt.Errorf("undefined identifier %q (did you mean %q?)", sym, suggestion)
}

func errInvalidPathStep(sym ident.Symbol, into ident.Symbol) error {
	return fmt.Errorf("invalid path step %q: %q cannot contain nested names", sym, into)
}

func errMissingVariant(enumName, variant ident.Symbol) error {
	return fmt.Errorf("enum %q has no variant %q", enumName, variant)
}

func errInvalidNodeShape(did ident.DefId) error {
	return fmt.Errorf("internal error: node %v is not a well-formed Item node", did)
}

// suggest builds a "did you mean" candidate for sym out of every name
// currently visible on the scope stack, using a prefix trie the way the
// ambient stack uses one for conflict detection over path sets: we seed
// the trie with in-scope names and search by sym's leading characters.
func (r *Resolver) suggest(sym ident.Symbol) string {
	t := trie.New()
	for _, st := range r.blocks {
		for name := range st.Value {
			t.Add(string(name), nil)
		}
		for name := range st.Ty {
			t.Add(string(name), nil)
		}
	}
	s := string(sym)
	n := len(s)
	if n > 3 {
		n = 3
	}
	if n == 0 {
		return ""
	}
	matches := t.PrefixSearch(s[:n])
	for _, m := range matches {
		if m != s {
			return m
		}
	}
	return ""
}
