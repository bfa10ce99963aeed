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

package main

import (
	"fmt"
	"net"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openidlc/idlc/resolve"
	"github.com/openidlc/idlc/rpc"
)

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serves the resolver pipeline as a single unary gRPC method.",
		RunE:  runServe,
	}

	serveCmd.Flags().String("addr", ":7443", "Address to listen on.")
	serveCmd.Flags().Bool("halt_on_redefinition", false, "Treat a duplicate definition in the same scope as fatal.")
	serveCmd.Flags().Bool("disable_fuzzy_proto_resolution", false, "Disable the snake_case module-name fallback.")

	return serveCmd
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := viper.GetString("addr")
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	opts := resolve.Options{
		HaltOnRedefinition:          viper.GetBool("halt_on_redefinition"),
		DisableFuzzyProtoResolution: viper.GetBool("disable_fuzzy_proto_resolution"),
	}
	srv := rpc.NewServer(opts)

	log.Infof("idlc: serving %s over %s (codec=json)", rpc.FullMethod, addr)
	return srv.Serve(lis)
}
