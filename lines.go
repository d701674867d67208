// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pdbsym

import "fmt"

// procedureLines returns the cached, decoded outer-body line table for
// proc, computing it on a miss.
func (c *Context) procedureLines(proc *basicProcedure, lineProgram LineProgram) ([]cachedLine, error) {
	return c.procCache.lines(proc.startRVA, func() ([]cachedLine, error) {
		return c.computeProcedureLines(proc, lineProgram)
	})
}

func (c *Context) computeProcedureLines(proc *basicProcedure, lineProgram LineProgram) ([]cachedLine, error) {
	iter := lineProgram.LinesAtOffset(proc.offset)
	var lines []cachedLine
	for {
		li, ok, err := iter.Next()
		if err != nil {
			return nil, fmt.Errorf("pdbsym: failed to decode line entry for procedure at 0x%x: %w", proc.startRVA, err)
		}
		if !ok {
			break
		}
		// In-procedure offsets are assumed to always translate; a violation
		// is a per-procedure decode error, not a silent drop.
		rva, ok := c.view.addressMap.ToRVA(li.Offset)
		if !ok {
			return nil, fmt.Errorf("pdbsym: line entry at offset %+v in procedure at 0x%x did not translate to an RVA", li.Offset, proc.startRVA)
		}
		lines = append(lines, cachedLine{
			startRVA:  rva,
			fileIndex: li.FileIndex,
			lineStart: li.LineStart,
		})
	}
	return lines, nil
}
