// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/saferwall/pdbsym"
	"github.com/saferwall/pdbsym/internal/fakepdb"
	"github.com/saferwall/pdbsym/log"
	"github.com/spf13/cobra"
)

// commonFlags are shared across the lookup and frames subcommands.
type commonFlags struct {
	pdbPath     string
	fixturePath string
	verbose     bool
	format      string
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.pdbPath, "pdb", "", "path to a real .pdb file (requires a RecordDecoder, not bundled)")
	cmd.Flags().StringVar(&f.fixturePath, "fixture", "", "path to a fakepdb.PDB fixture, JSON- or txtar-encoded (.txtar)")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "log decode steps to stderr")
	cmd.Flags().StringVar(&f.format, "format", "text", "output format: text or json")
}

func (f *commonFlags) newLogger() log.Logger {
	level := log.LevelWarn
	if f.verbose {
		level = log.LevelDebug
	}
	return log.NewFilter(log.NewStdLogger(os.Stderr), log.FilterLevel(level))
}

// newContext loads a Source from whichever of --pdb/--fixture was given and
// builds a default-formatter Context over it.
func (f *commonFlags) newContext() (*pdbsym.Context, error) {
	src, err := f.newSource()
	if err != nil {
		return nil, err
	}

	view, err := pdbsym.NewView(src, &pdbsym.ViewOptions{Logger: f.newLogger()})
	if err != nil {
		return nil, fmt.Errorf("failed to open PDB view: %w", err)
	}

	ctx, err := view.NewContext(pdbsym.FormatterFlags{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build lookup context: %w", err)
	}
	return ctx, nil
}

func (f *commonFlags) newSource() (pdbsym.Source, error) {
	switch {
	case f.fixturePath != "":
		data, err := os.ReadFile(f.fixturePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture %q: %w", f.fixturePath, err)
		}
		var spec fakepdb.PDB
		if strings.HasSuffix(f.fixturePath, ".txtar") {
			spec, err = fakepdb.LoadTxtar(data)
			if err != nil {
				return nil, fmt.Errorf("failed to parse fixture %q: %w", f.fixturePath, err)
			}
		} else if err := json.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("failed to parse fixture %q: %w", f.fixturePath, err)
		}
		return fakepdb.Build(spec), nil
	case f.pdbPath != "":
		return nil, fmt.Errorf("--pdb requires a RecordDecoder implementation, which this command does not bundle; use --fixture instead")
	default:
		return nil, fmt.Errorf("one of --pdb or --fixture is required")
	}
}
