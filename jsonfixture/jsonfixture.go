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

// Package jsonfixture is a stand-in front end and emitter: a small
// self-describing JSON format carrying []*ir.File in and
// *rir.ResolveResult out, in place of a real Thrift/Protobuf parser and
// target-language token emitter, used by cmd/idlc. Package rpc does not
// import it; its JSON codec encodes the same ir and rir types with
// encoding/json directly, so both front doors speak the same wire shape.
//
// The format is a direct JSON rendering of the ir and rir packages'
// exported fields; it carries no schema-level tag payload (tags.Tags has
// no exported state to serialize), which is an accepted, documented loss
// of fidelity for a stub standing in for a real front end.
package jsonfixture

import (
	"encoding/json"
	"fmt"

	"github.com/openidlc/idlc/ir"
	"github.com/openidlc/idlc/rir"
)

// Document is the top-level shape of a fixture file: a list of parsed
// files, in the order the driver should hand them to resolve.ResolveFiles.
type Document struct {
	Files []*ir.File `json:"files"`
}

// Parse decodes a fixture document into the []*ir.File input
// resolve.ResolveFiles expects.
func Parse(data []byte) ([]*ir.File, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("jsonfixture: parse: %w", err)
	}
	return doc.Files, nil
}

// Emit renders a ResolveResult back out as indented JSON, standing in
// for the out-of-scope target-language emitter.
func Emit(res *rir.ResolveResult) ([]byte, error) {
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("jsonfixture: emit: %w", err)
	}
	return out, nil
}
