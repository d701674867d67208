// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pdbsym

import "sort"

// lookupProc finds the procedure index entry whose [start_rva, end_rva)
// span contains probe, or nil if probe falls in a hole between procedures
// or before the first one.
func (c *Context) lookupProc(probe uint32) *basicProcedure {
	n := len(c.procedures)
	// Greatest index with start_rva <= probe.
	i := sort.Search(n, func(i int) bool { return c.procedures[i].startRVA > probe }) - 1
	if i < 0 {
		return nil
	}
	p := &c.procedures[i]
	if probe >= p.endRVA {
		return nil
	}
	return p
}

// FindFunction resolves the procedure enclosing probe and returns its start
// RVA and formatted name. Returns (nil, nil) when probe falls in a hole.
func (c *Context) FindFunction(probe uint32) (*Procedure, error) {
	proc := c.lookupProc(probe)
	if proc == nil {
		return nil, nil
	}
	return &Procedure{
		ProcedureStartRVA: proc.startRVA,
		Function:          c.procedureName(proc),
	}, nil
}
