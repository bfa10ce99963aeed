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

// Command idlc is the reference driver for the resolver/codegen middle
// end: it loads a JSON fixture standing in for a real Thrift/Protobuf
// front end, runs resolve.ResolveFiles, and either prints the
// ResolveResult as JSON or serves the same pipeline over gRPC.
package main

import (
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	Execute()
}

// Execute builds and runs the root idlc command.
func Execute() {
	rootCmd := &cobra.Command{
		Use:   "idlc",
		Short: "idlc resolves IDL schema fixtures into a package-qualified resolved IR",
	}

	cfgFile := rootCmd.PersistentFlags().String("config_file", "", "Path to a YAML/JSON config file.")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *cfgFile != "" {
			viper.SetConfigFile(*cfgFile)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("error reading config: %w", err)
			}
		}
		viper.BindPFlags(cmd.Flags())
		viper.AutomaticEnv()
		return nil
	}

	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		glog.Error(err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
