// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pdbsym

import (
	"fmt"
	"sort"
	"strings"
)

// FindFrames reconstructs the full logical call stack at probe, induced by
// inlining, innermost frame first. Returns (nil, nil) when probe falls in
// a hole between procedures.
func (c *Context) FindFrames(probe uint32) (*ProcedureFrames, error) {
	proc := c.lookupProc(probe)
	if proc == nil {
		return nil, nil
	}

	module, err := c.extendedModuleFor(proc.moduleIndex)
	if err != nil {
		return nil, err
	}

	lines, err := c.procedureLines(proc, module.lineProgram)
	if err != nil {
		return nil, err
	}

	var file *string
	var lineNum *uint32
	if idx, ok := searchLines(lines, probe); ok {
		li := lines[idx]
		file = c.resolveFilename(module.lineProgram, li.fileIndex)
		ln := li.lineStart
		lineNum = &ln
	}

	// Seed the output stack with the outer frame; frames accumulate
	// outside-to-inside until the final reversal.
	frames := []Frame{{
		Function: c.procedureName(proc),
		File:     file,
		Line:     lineNum,
	}}

	ranges, err := c.procedureInlineRanges(proc, module)
	if err != nil {
		return nil, err
	}

	remaining := ranges
	currentDepth := uint16(0)
	for {
		idx, ok := searchInlineRange(remaining, currentDepth, probe)
		if !ok {
			break
		}
		r := remaining[idx]

		var name *string
		var b strings.Builder
		if err := c.formatter.WriteID(&b, r.inlinee); err == nil {
			s := b.String()
			name = &s
		}

		var rFile *string
		if r.fileIndex != nil {
			rFile = c.resolveFilename(module.lineProgram, *r.fileIndex)
		}

		frames = append(frames, Frame{
			Function: name,
			File:     rFile,
			Line:     r.lineStart,
		})

		remaining = remaining[idx+1:]
		currentDepth++
	}

	for i, j := 0, len(frames)-1; i < j; i, j = i+1, j-1 {
		frames[i], frames[j] = frames[j], frames[i]
	}

	return &ProcedureFrames{
		ProcedureStartRVA: proc.startRVA,
		Frames:            frames,
	}, nil
}

// searchLines finds the greatest index with lines[idx].startRVA <= probe.
func searchLines(lines []cachedLine, probe uint32) (int, bool) {
	i := sort.Search(len(lines), func(i int) bool { return lines[i].startRVA > probe }) - 1
	if i < 0 {
		return 0, false
	}
	return i, true
}

// searchInlineRange finds a range at exactly callDepth whose [start, end)
// span contains probe. ranges is sorted by (call_depth, start_rva)
// ascending, so a binary search over (depth, containment) is valid.
func searchInlineRange(ranges []inlineRange, callDepth uint16, probe uint32) (int, bool) {
	lo, hi := 0, len(ranges)
	for lo < hi {
		mid := (lo + hi) / 2
		r := ranges[mid]
		switch {
		case r.callDepth > callDepth:
			hi = mid
		case r.callDepth < callDepth:
			lo = mid + 1
		case r.startRVA > probe:
			hi = mid
		case r.endRVA <= probe:
			lo = mid + 1
		default:
			return mid, true
		}
	}
	return 0, false
}

// procedureInlineRanges returns the cached, flattened, depth-sorted inline
// range table for proc, computing it on a miss.
func (c *Context) procedureInlineRanges(proc *basicProcedure, module *extendedModule) ([]inlineRange, error) {
	return c.procCache.inlineRanges(proc.startRVA, func() ([]inlineRange, error) {
		return c.computeProcedureInlineRanges(proc, module)
	})
}

func (c *Context) computeProcedureInlineRanges(proc *basicProcedure, module *extendedModule) ([]inlineRange, error) {
	info := c.view.moduleInfos[proc.moduleIndex]
	symbols, err := info.SymbolsAt(proc.symbolIndex)
	if err != nil {
		return nil, fmt.Errorf("pdbsym: failed to seek symbol stream for procedure at 0x%x: %w", proc.startRVA, err)
	}

	// Consume the procedure symbol itself before walking its nested region.
	if _, _, err := symbols.Next(); err != nil {
		return nil, fmt.Errorf("pdbsym: failed to read procedure symbol at 0x%x: %w", proc.startRVA, err)
	}

	var ranges []inlineRange
	for {
		sym, ok, err := symbols.Next()
		if err != nil {
			return nil, fmt.Errorf("pdbsym: failed to decode symbol in procedure at 0x%x: %w", proc.startRVA, err)
		}
		if !ok || sym.Index() >= proc.endSymbolIdx {
			break
		}
		if nested, ok := sym.AsProcedure(); ok {
			if err := symbols.SkipTo(nested.End); err != nil {
				return nil, fmt.Errorf("pdbsym: failed to skip nested procedure at 0x%x: %w", proc.startRVA, err)
			}
			continue
		}
		if site, ok := sym.AsInlineSite(); ok {
			if _, err := c.processInlineSite(symbols, module, proc.offset, site, 0, &ranges); err != nil {
				return nil, err
			}
		}
	}

	sort.SliceStable(ranges, func(i, j int) bool {
		if ranges[i].callDepth != ranges[j].callDepth {
			return ranges[i].callDepth < ranges[j].callDepth
		}
		return ranges[i].startRVA < ranges[j].startRVA
	})

	return ranges, nil
}

// processInlineSite decodes one InlineSite's own line-annotation coverage,
// recurses into nested inline sites, fills in any gap between this site's
// own coverage and the union of its descendants' coverage, and returns the
// full RVA coverage of this site including descendants.
func (c *Context) processInlineSite(
	symbols SymbolIter,
	module *extendedModule,
	procOffset SectionOffset,
	site InlineSiteSymbol,
	depth uint16,
	out *[]inlineRange,
) (*rangeSet, error) {
	ranges := &rangeSet{}
	var fallbackFile *FileIndex

	if inlinee, ok := module.inlinees[site.Inlinee]; ok && inlinee.Lines != nil {
		iter := inlinee.Lines(procOffset, site)
		for {
			li, ok, err := iter.Next()
			if err != nil {
				return nil, fmt.Errorf("pdbsym: failed to decode inline-site line annotation: %w", err)
			}
			if !ok {
				break
			}
			if li.Length == nil || *li.Length == 0 {
				continue
			}
			startRVA, ok := c.view.addressMap.ToRVA(li.Offset)
			if !ok {
				continue
			}
			endRVA := startRVA + *li.Length
			fi := li.FileIndex
			ls := li.LineStart
			*out = append(*out, inlineRange{
				startRVA:  startRVA,
				endRVA:    endRVA,
				callDepth: depth,
				inlinee:   site.Inlinee,
				fileIndex: &fi,
				lineStart: &ls,
			})
			ranges.add(startRVA, endRVA)
			if fallbackFile == nil {
				fallbackFile = &fi
			}
		}
	}

	calleeRanges := &rangeSet{}
	for {
		sym, ok, err := symbols.Next()
		if err != nil {
			return nil, fmt.Errorf("pdbsym: failed to decode symbol in inline site: %w", err)
		}
		if !ok {
			break
		}
		if sym.Index() >= site.End {
			// The symbol at End follows this site's nested region; move the
			// cursor back to it so the caller's walk still sees it.
			if err := symbols.SkipTo(site.End); err != nil {
				return nil, fmt.Errorf("pdbsym: failed to reposition after inline site: %w", err)
			}
			break
		}
		if nested, ok := sym.AsProcedure(); ok {
			if err := symbols.SkipTo(nested.End); err != nil {
				return nil, fmt.Errorf("pdbsym: failed to skip nested procedure in inline site: %w", err)
			}
			continue
		}
		if childSite, ok := sym.AsInlineSite(); ok {
			childRanges, err := c.processInlineSite(symbols, module, procOffset, childSite, depth+1, out)
			if err != nil {
				return nil, err
			}
			calleeRanges.union(childRanges)
		}
	}

	if !ranges.isSupersetOf(calleeRanges) {
		// Workaround for PDBs that omit a parent inline site's own line
		// annotations while still emitting its children's.
		missing := ranges.difference(calleeRanges)
		for _, s := range missing.spans {
			*out = append(*out, inlineRange{
				startRVA:  s.start,
				endRVA:    s.end,
				callDepth: depth,
				inlinee:   site.Inlinee,
				fileIndex: fallbackFile,
				lineStart: nil,
			})
		}
		ranges.union(missing)
	}

	return ranges, nil
}
