// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Command symify is a small front end over the pdbsym library: it loads a
// synthetic fixture PDB via --fixture and prints function or inline-frame
// lookups for one or more RVAs. The --pdb flag for real files is accepted
// but always fails, since no RecordDecoder is bundled.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "symify",
		Short: "Resolve RVAs against a PDB's function and inline-frame information",
	}

	root.AddCommand(newLookupCmd(), newFramesCmd(), newVersionCmd())
	return root
}
