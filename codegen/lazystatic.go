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

// ShouldLazyStatic reports whether a constant of the given codegen type
// needs deferred static initialization rather than a plain compile-time
// literal.
func ShouldLazyStatic(ty Ty) bool {
	switch ty.Kind {
	case KString, KStaticRef, KLazyStaticRef, KVec, KMap:
		return true
	case KAdt:
		if ty.Adt != nil && ty.Adt.Kind == NewType && ty.Adt.Inner != nil {
			return ShouldLazyStatic(*ty.Adt.Inner)
		}
		return false
	default:
		return false
	}
}
