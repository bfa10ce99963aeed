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

package rpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/openidlc/idlc/ir"
	"github.com/openidlc/idlc/rir"
)

// Resolve invokes the Resolve method over cc, the hand-written
// counterpart of a generated client stub's single method.
func Resolve(ctx context.Context, cc grpc.ClientConnInterface, files []*ir.File) (*rir.ResolveResult, error) {
	in := &ResolveRequest{Files: files}
	out := new(ResolveResponse)
	if err := cc.Invoke(ctx, FullMethod, in, out, grpc.CallContentSubtype(codecName)); err != nil {
		return nil, err
	}
	return out.Result, nil
}
