// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pdbsym

// Procedure is the public result of a FindFunction lookup.
type Procedure struct {
	ProcedureStartRVA uint32
	Function          *string
}

// Frame is one logical stack frame: an outer procedure body, or a synthetic
// frame induced by inlining. Function, File and Line are nil when the
// corresponding bit of debug info could not be resolved (formatter error,
// missing string table, missing file info) - these are soft failures, not
// errors.
type Frame struct {
	Function *string
	File     *string
	Line     *uint32
}

// ProcedureFrames is the result of a FindFrames lookup: the full logical
// call stack at one probe RVA, innermost frame first.
type ProcedureFrames struct {
	ProcedureStartRVA uint32
	Frames            []Frame
}

// basicProcedure is one entry in the Context's procedure index, populated
// once at construction time and never mutated again.
type basicProcedure struct {
	startRVA     uint32
	endRVA       uint32
	moduleIndex  uint16
	symbolIndex  SymbolIndex
	endSymbolIdx SymbolIndex
	offset       SectionOffset
	name         string
	typeIndex    TypeIndex
}

// extendedModule is the lazily-decoded per-module state: its line program
// and its inlinee-id lookup table. Pinned in the module cache for the
// Context's lifetime once computed.
type extendedModule struct {
	lineProgram LineProgram
	inlinees    map[IDIndex]Inlinee
}

// cachedLine is one outer-body source line entry, the next entry's startRVA
// implicitly bounds the previous (the underlying length field is not kept).
type cachedLine struct {
	startRVA  uint32
	fileIndex FileIndex
	lineStart uint32
}

// inlineRange is one flattened, depth-tagged span of an inline site's
// coverage (including gap-workaround spans with lineStart == nil).
type inlineRange struct {
	startRVA  uint32
	endRVA    uint32
	callDepth uint16
	inlinee   IDIndex
	fileIndex *FileIndex
	lineStart *uint32
}

// extendedProcedure is the lazily-populated per-procedure cache entry. Each
// field is populated independently and, once set, is never mutated.
type extendedProcedure struct {
	name         *string
	nameSet      bool
	lines        []cachedLine
	linesSet     bool
	inlineRanges []inlineRange
	rangesSet    bool
}
