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
	"os"
	"sort"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openidlc/idlc/ident"
	"github.com/openidlc/idlc/jsonfixture"
	"github.com/openidlc/idlc/pkgtree"
	"github.com/openidlc/idlc/resolve"
	"github.com/openidlc/idlc/rir"
)

func newResolveCmd() *cobra.Command {
	resolveCmd := &cobra.Command{
		Use:   "resolve <fixture.json>",
		Short: "Resolves a JSON schema fixture and prints the resulting ResolveResult as JSON.",
		Args:  cobra.ExactArgs(1),
		RunE:  runResolve,
	}

	resolveCmd.Flags().Bool("halt_on_redefinition", false, "Treat a duplicate definition in the same scope as fatal.")
	resolveCmd.Flags().Bool("disable_fuzzy_proto_resolution", false, "Disable the snake_case module-name fallback.")
	resolveCmd.Flags().String("out", "", "Write output to this path instead of stdout.")

	return resolveCmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading fixture: %w", err)
	}

	files, err := jsonfixture.Parse(data)
	if err != nil {
		return err
	}
	log.Infof("idlc: loaded %d files from %s", len(files), args[0])

	opts := resolve.Options{
		HaltOnRedefinition:          viper.GetBool("halt_on_redefinition"),
		DisableFuzzyProtoResolution: viper.GetBool("disable_fuzzy_proto_resolution"),
	}
	res, err := resolve.ResolveFiles(files, opts)
	if err != nil {
		return err
	}

	tree := pkgtree.FromPackages(packagePaths(res))
	_ = pkgtree.BuildIndex(tree) // exercised here; consumed downstream by the emitter, not by this stub.

	out, err := jsonfixture.Emit(res)
	if err != nil {
		return err
	}

	outPath := viper.GetString("out")
	if outPath == "" {
		_, err = os.Stdout.Write(append(out, '\n'))
		return err
	}
	return os.WriteFile(outPath, out, 0o644)
}

// packagePaths collects the distinct file package paths of a
// ResolveResult, the input pkgtree.FromPackages expects. Files are
// visited in ascending FileId order and each path is kept at its first
// occurrence, so the resulting tree is the same on every run.
func packagePaths(res *rir.ResolveResult) []ident.ItemPath {
	ids := make([]ident.FileId, 0, len(res.Files))
	for id := range res.Files {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	seen := map[string]bool{}
	var paths []ident.ItemPath
	for _, id := range ids {
		meta := res.Files[id]
		k := meta.Package.String()
		if seen[k] {
			continue
		}
		seen[k] = true
		paths = append(paths, meta.Package)
	}
	return paths
}
