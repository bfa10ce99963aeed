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

// Package rpc exposes the resolver pipeline as a single unary gRPC
// method. There is no proto front end generating a *_grpc.pb.go
// descriptor here, so the ServiceDesc, request/response types, and wire
// codec below are all hand-written: a small, reflection-free stand-in
// for what `protoc --go-grpc_out` would otherwise produce, wired to a
// plain JSON codec instead of protobuf's binary wire format.
package rpc

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"

	"github.com/openidlc/idlc/ir"
	"github.com/openidlc/idlc/resolve"
	"github.com/openidlc/idlc/rir"
)

// codecName is both the encoding.Codec name and the content-subtype
// clients must request (grpc.CallContentSubtype(codecName)) to have
// requests and responses marshaled as JSON rather than protobuf.
const codecName = "json"

// jsonCodec implements google.golang.org/grpc/encoding.Codec over
// encoding/json, letting this service skip a .proto-generated binary
// wire format entirely.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                               { return codecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// ResolveRequest is the unary method's request message.
type ResolveRequest struct {
	Files []*ir.File `json:"files"`
}

// ResolveResponse is the unary method's response message.
type ResolveResponse struct {
	Result *rir.ResolveResult `json:"result"`
}

const (
	serviceName = "idlc.Resolver"
	methodName  = "Resolve"
	// FullMethod is the fully qualified method name clients invoke.
	FullMethod = "/" + serviceName + "/" + methodName
)

// Server is the handler target RegisterService binds the Resolve method
// to. It exists only to carry the resolve.Options every request is run
// with; it has no other state and is safe to share across requests.
type Server struct {
	Opts resolve.Options
}

// Resolve runs the pipeline for a single request. Context cancellation
// is observed only at the RPC boundary, never mid-pass: a resolve run is
// a single-threaded batch computation with no internal cancellation
// points.
func (s *Server) Resolve(ctx context.Context, in *ResolveRequest) (*ResolveResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}
	res, err := resolve.ResolveFiles(in.Files, s.Opts)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return &ResolveResponse{Result: res}, nil
}

// resolveHandler adapts (*Server).Resolve to grpc's unary method-handler
// shape by hand, since there is no generated *_grpc.pb.go to supply it.
func resolveHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ResolveRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	s := srv.(*Server)
	if interceptor == nil {
		return s.Resolve(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod}
	wrapped := func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.Resolve(ctx, req.(*ResolveRequest))
	}
	return interceptor(ctx, in, info, wrapped)
}

// ServiceDesc is the hand-written analogue of a generated
// grpc.ServiceDesc, naming the single Resolve method.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*interface{})(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: methodName, Handler: resolveHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "idlc/rpc",
}

// Register installs srv onto s under the Resolve method.
func Register(s *grpc.Server, srv *Server) {
	s.RegisterService(&ServiceDesc, srv)
}

// NewServer constructs a *grpc.Server with a Resolve service running
// with opts already registered.
func NewServer(opts resolve.Options, serverOpts ...grpc.ServerOption) *grpc.Server {
	s := grpc.NewServer(serverOpts...)
	Register(s, &Server{Opts: opts})
	return s
}
