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

package jsonfixture

import (
	"strings"
	"testing"

	"github.com/openidlc/idlc/ident"
	"github.com/openidlc/idlc/resolve"
	"github.com/openidlc/idlc/rir"
)

const fixture = `{
  "files": [
    {
      "id": 0,
      "package": ["demo"],
      "items": [
        {
          "kind": 0,
          "name": "Greeting",
          "message": {
            "fields": [
              {"id": 1, "kind": 1, "name": "Text", "ty": {"kind": 0}}
            ]
          }
        }
      ]
    }
  ]
}`

func TestParseAndResolveRoundTrip(t *testing.T) {
	files, err := Parse([]byte(fixture))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(files) != 1 || len(files[0].Items) != 1 {
		t.Fatalf("files = %+v, want a single file with a single item", files)
	}

	res, err := resolve.ResolveFiles(files, resolve.Options{})
	if err != nil {
		t.Fatalf("ResolveFiles: %v", err)
	}

	out, err := Emit(res)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(string(out), "Greeting") {
		t.Errorf("Emit() output missing the resolved message name:\n%s", out)
	}
}

func TestParseInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatalf("Parse(invalid) = nil error")
	}
}

func TestEmitProducesValidJSON(t *testing.T) {
	res := &rir.ResolveResult{
		Files: map[ident.FileId]rir.FileMeta{0: {Package: ident.ItemPath{"demo"}}},
		Nodes: rir.NodeTable{},
	}
	out, err := Emit(res)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(string(out), `"demo"`) {
		t.Errorf("Emit() = %s, want the package name present", out)
	}
}
