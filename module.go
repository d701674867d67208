// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pdbsym

import "fmt"

// extendedModuleFor returns the cached extendedModule for moduleIndex,
// computing it on a miss.
func (c *Context) extendedModuleFor(moduleIndex uint16) (*extendedModule, error) {
	return c.modCache.get(moduleIndex, func() (*extendedModule, error) {
		return c.computeExtendedModule(moduleIndex)
	})
}

func (c *Context) computeExtendedModule(moduleIndex uint16) (*extendedModule, error) {
	info := c.view.moduleInfos[moduleIndex]
	lineProgram, err := info.LineProgram()
	if err != nil {
		return nil, fmt.Errorf("pdbsym: failed to read line program for module %d: %w", moduleIndex, err)
	}

	inlineeIter, err := info.Inlinees()
	if err != nil {
		return nil, fmt.Errorf("pdbsym: failed to read inlinees for module %d: %w", moduleIndex, err)
	}
	inlinees := make(map[IDIndex]Inlinee)
	for {
		inlinee, ok, err := inlineeIter.Next()
		if err != nil {
			return nil, fmt.Errorf("pdbsym: failed to decode inlinee for module %d: %w", moduleIndex, err)
		}
		if !ok {
			break
		}
		inlinees[inlinee.ID] = inlinee
	}

	return &extendedModule{lineProgram: lineProgram, inlinees: inlinees}, nil
}
