// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pdbsym

import (
	"fmt"
	"sort"
	"strings"

	"github.com/saferwall/pdbsym/log"
)

// Context is the immutable lookup handle built atop a View: its procedure
// index is fixed at construction time, and its two caches are the only
// mutable state (guarded internally, see cache.go).
type Context struct {
	view      *View
	formatter Formatter

	procedures []basicProcedure

	modCache  *moduleCache
	procCache *procedureCache

	logger *log.Helper
}

func newContext(v *View, formatter Formatter) (*Context, error) {
	c := &Context{
		view:      v,
		formatter: formatter,
		modCache:  newModuleCache(),
		procCache: newProcedureCache(),
		logger:    v.logger,
	}

	var procedures []basicProcedure
	for modIndex, info := range v.moduleInfos {
		if info == nil {
			continue
		}
		symbols, err := info.Symbols()
		if err != nil {
			return nil, fmt.Errorf("pdbsym: failed to read symbols for module %d: %w", modIndex, err)
		}
		for {
			sym, ok, err := symbols.Next()
			if err != nil {
				return nil, fmt.Errorf("pdbsym: failed to decode symbol in module %d: %w", modIndex, err)
			}
			if !ok {
				break
			}
			proc, ok := sym.AsProcedure()
			if !ok {
				continue
			}
			if proc.Length == 0 {
				continue
			}
			startRVA, ok := v.addressMap.ToRVA(proc.Offset)
			if !ok {
				continue
			}
			procedures = append(procedures, basicProcedure{
				startRVA:     startRVA,
				endRVA:       startRVA + proc.Length,
				moduleIndex:  uint16(modIndex),
				symbolIndex:  sym.Index(),
				endSymbolIdx: proc.End,
				offset:       proc.Offset,
				name:         proc.Name,
				typeIndex:    proc.TypeIndex,
			})
		}
	}

	// Two procedures may share an RVA under identical-code-folding (ICF);
	// the *last* one encountered in the original linear scan must win while
	// ending up at its sorted position. dedup keeps the *first* of a run of
	// equal keys, so reverse first, stable-sort, then dedup.
	for i, j := 0, len(procedures)-1; i < j; i, j = i+1, j-1 {
		procedures[i], procedures[j] = procedures[j], procedures[i]
	}
	sort.SliceStable(procedures, func(i, j int) bool {
		return procedures[i].startRVA < procedures[j].startRVA
	})
	procedures = dedupByStartRVA(procedures)

	c.procedures = procedures
	return c, nil
}

func dedupByStartRVA(procedures []basicProcedure) []basicProcedure {
	if len(procedures) == 0 {
		return procedures
	}
	out := procedures[:1]
	for _, p := range procedures[1:] {
		if p.startRVA == out[len(out)-1].startRVA {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ProcedureCount returns the number of distinct procedures in the index.
func (c *Context) ProcedureCount() int {
	return len(c.procedures)
}

// IterProcedures returns one Procedure per index entry, in ascending
// start_rva order. Names are memoized through the standard per-procedure
// cache, so repeated calls do not re-run the formatter.
func (c *Context) IterProcedures() []Procedure {
	out := make([]Procedure, len(c.procedures))
	for i := range c.procedures {
		out[i] = c.procedureAt(i)
	}
	return out
}

// Procedures is a range-over-func iterator equivalent to IterProcedures,
// for callers that prefer to avoid materializing the full slice.
func (c *Context) Procedures(yield func(Procedure) bool) {
	for i := range c.procedures {
		if !yield(c.procedureAt(i)) {
			return
		}
	}
}

func (c *Context) procedureAt(i int) Procedure {
	proc := &c.procedures[i]
	return Procedure{
		ProcedureStartRVA: proc.startRVA,
		Function:          c.procedureName(proc),
	}
}

func (c *Context) procedureName(proc *basicProcedure) *string {
	return c.procCache.name(proc.startRVA, func() *string {
		var b strings.Builder
		if err := c.formatter.WriteFunction(&b, proc.name, proc.typeIndex); err != nil {
			return nil
		}
		s := b.String()
		return &s
	})
}
