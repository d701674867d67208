// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pdbsym

import (
	"fmt"
	"io"

	"github.com/saferwall/pdbsym/log"
)

// View is the root holder of a PDB's parsed structural streams. It is the
// lifetime anchor for every Context built atop it: a View must outlive all
// Contexts derived from it.
type View struct {
	debugInfo   DebugInformation
	typeInfo    TypeInformation
	idInfo      IDInformation
	addressMap  AddressMap
	stringTable StringTable
	hasStrings  bool

	modules     []ModuleRef
	moduleInfos []ModuleSource // parallel to modules; nil entry = no info

	logger *log.Helper
}

// ViewOptions configures NewView.
type ViewOptions struct {
	// Logger receives diagnostics about tolerated per-module failures.
	// Defaults to a logger that discards all output.
	Logger log.Logger
}

// NewView eagerly loads the four required structural streams (debug info,
// type info, id info, address map) from src and iterates its module list,
// retaining every module's symbol/line/inlinee stream. A missing string
// table is tolerated; any other failure is fatal.
func NewView(src Source, opts *ViewOptions) (*View, error) {
	var logger *log.Helper
	if opts != nil && opts.Logger != nil {
		logger = log.NewHelper(opts.Logger)
	} else {
		logger = log.NewHelper(log.NewFilter(log.NewStdLogger(io.Discard), log.FilterLevel(log.LevelError)))
	}

	debugInfo, err := src.DebugInformation()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDebugInformation, err)
	}
	typeInfo, err := src.TypeInformation()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTypeInformation, err)
	}
	idInfo, err := src.IDInformation()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoIDInformation, err)
	}
	addressMap, err := src.AddressMap()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoAddressMap, err)
	}
	stringTable, hasStrings := src.StringTable()

	v := &View{
		debugInfo:   debugInfo,
		typeInfo:    typeInfo,
		idInfo:      idInfo,
		addressMap:  addressMap,
		stringTable: stringTable,
		hasStrings:  hasStrings,
		logger:      logger,
	}

	modules, err := debugInfo.Modules()
	if err != nil {
		return nil, fmt.Errorf("pdbsym: failed to iterate modules: %w", err)
	}
	v.modules = modules
	v.moduleInfos = make([]ModuleSource, len(modules))

	for i, mod := range modules {
		info, ok, err := debugInfo.ModuleInfo(mod)
		if err != nil {
			return nil, fmt.Errorf("pdbsym: failed to load module info for %q: %w", mod.Name, err)
		}
		if !ok {
			v.logger.Debugf("module %q reports no module info, skipping", mod.Name)
			continue
		}
		v.moduleInfos[i] = info
	}

	return v, nil
}

// NewContext builds a Context over this View. If formatter is nil, a
// built-in defaultFormatter is constructed from flags.
func (v *View) NewContext(flags FormatterFlags, formatter Formatter) (*Context, error) {
	if formatter == nil {
		formatter = newDefaultFormatter(flags)
	}
	return newContext(v, formatter)
}
