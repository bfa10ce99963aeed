// Copyright 2019 Google Inc.
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

// Package names holds small textual helpers the resolver uses for
// turning schema identifiers into well-formed, unique output names. None of this package participates in
// DefId resolution; it only ever renames the printable surface of an
// already-resolved entity.
package names

import "fmt"

// MakeUnique returns name, or name suffixed with underscores until it is
// not already present in defined. defined is mutated to record the
// returned name.
func MakeUnique(name string, defined map[string]bool) string {
	for {
		if !defined[name] {
			defined[name] = true
			return name
		}
		name = fmt.Sprintf("%s_", name)
	}
}
