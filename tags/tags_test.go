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

package tags

import "testing"

func TestInsertGet(t *testing.T) {
	var bag Tags
	if Contains[OneOf](&bag) {
		t.Fatalf("Contains[OneOf] = true on an empty bag")
	}

	Insert(&bag, OneOf{})
	Insert(&bag, SInt32{})

	if !Contains[OneOf](&bag) {
		t.Errorf("Contains[OneOf] = false after Insert")
	}
	if _, ok := Get[Repeated](&bag); ok {
		t.Errorf("Get[Repeated] ok = true, want false (never inserted)")
	}
	if bag.Len() != 2 {
		t.Errorf("Len() = %d, want 2", bag.Len())
	}
}

func TestInsertReplaces(t *testing.T) {
	var bag Tags
	Insert(&bag, EntryMessage{})
	Insert(&bag, EntryMessage{})
	if bag.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after re-inserting the same type", bag.Len())
	}
}

func TestGetOnNilBag(t *testing.T) {
	var bag *Tags
	if _, ok := Get[OneOf](bag); ok {
		t.Errorf("Get on a nil *Tags returned ok = true")
	}
	if !bag.IsEmpty() {
		t.Errorf("IsEmpty() on a nil *Tags = false")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	var bag Tags
	Insert(&bag, OneOf{})

	clone := bag.Clone()
	Insert(&bag, Repeated{})

	if clone.Len() != 1 {
		t.Errorf("clone.Len() = %d, want 1 (clone must not see later inserts)", clone.Len())
	}
	if !Contains[OneOf](clone) {
		t.Errorf("clone lost the OneOf tag it was cloned with")
	}
}

func TestCloneNilReceiver(t *testing.T) {
	var bag *Tags
	clone := bag.Clone()
	if clone == nil {
		t.Fatalf("Clone() on a nil *Tags returned nil, want an empty, non-nil bag")
	}
	if !clone.IsEmpty() {
		t.Errorf("Clone() of a nil *Tags is not empty")
	}
}

func TestStoreInsertGet(t *testing.T) {
	s := New()
	var a, b Tags
	Insert(&a, OneOf{})
	Insert(&b, Repeated{})

	idA := s.Insert(&a)
	idB := s.Insert(&b)
	if idA == idB {
		t.Fatalf("Insert returned the same TagId twice: %v", idA)
	}

	got, ok := s.Get(idA)
	if !ok || got != &a {
		t.Errorf("Get(idA) = (%v, %v), want (%v, true)", got, ok, &a)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestStoreGetUnknownID(t *testing.T) {
	s := New()
	s.Insert(&Tags{})
	if _, ok := s.Get(99); ok {
		t.Errorf("Get(99) ok = true, want false for an id never minted")
	}
}
