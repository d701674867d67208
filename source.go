// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pdbsym

// This file enumerates the external collaborator interfaces consumed by the
// symbolication engine. Parsing the raw MSF container and CodeView records is
// out of scope for this module; an adapter library implements these
// interfaces against the actual PDB byte layout. OpenMMapSource (see
// mmapsource.go) only goes as far as giving such an adapter zero-copy access
// to the file bytes.

// TypeIndex identifies an entry in the PDB type stream.
type TypeIndex uint32

// IDIndex identifies an entry in the PDB id stream.
type IDIndex uint32

// FileIndex identifies a source file entry inside a module's line program.
type FileIndex uint32

// SymbolIndex is a byte offset into a module's symbol stream; it is also
// used as a stable cursor for resuming iteration mid-stream.
type SymbolIndex uint32

// SectionOffset is a PDB-internal (1-based section index, byte offset) pair,
// translated to an RVA through an AddressMap.
type SectionOffset struct {
	Section uint16
	Offset  uint32
}

// ModuleRef identifies one compiland/module within the debug-information
// stream. The core reads only its Name, for error and log messages; otherwise
// it is only ever round-tripped back through DebugInformation.ModuleInfo.
type ModuleRef struct {
	Index uint16
	Name  string
}

// Source is the root collaborator: given a PDB file, it must produce the
// four required structural views plus the optional string table.
type Source interface {
	DebugInformation() (DebugInformation, error)
	TypeInformation() (TypeInformation, error)
	IDInformation() (IDInformation, error)
	AddressMap() (AddressMap, error)

	// StringTable returns false if the PDB carries no string table; this is
	// not an error, it only disables source-filename resolution.
	StringTable() (StringTable, bool)
}

// DebugInformation exposes the module table and per-module symbol streams.
type DebugInformation interface {
	Modules() ([]ModuleRef, error)

	// ModuleInfo returns (nil, false, nil) when the module reports no info;
	// the caller must treat that as "skip silently", not an error.
	ModuleInfo(ModuleRef) (ModuleSource, bool, error)
}

// TypeInformation is the type stream. Its record grammar is out of scope;
// it is handed opaquely to whatever Formatter is configured.
type TypeInformation interface{}

// IDInformation is the id stream, handed opaquely to the Formatter.
type IDInformation interface{}

// ModuleSource is one compiland's symbol stream plus its line program and
// inlinee table.
type ModuleSource interface {
	// Symbols iterates the module's symbol stream from the beginning.
	Symbols() (SymbolIter, error)

	// SymbolsAt resumes iteration at a given cursor, inclusive.
	SymbolsAt(SymbolIndex) (SymbolIter, error)

	LineProgram() (LineProgram, error)
	Inlinees() (InlineeIter, error)
}

// SymbolIter walks a module's symbol stream. Next returns (nil, false, nil)
// once exhausted. SkipTo moves the cursor so that the next call to Next
// returns the symbol at the given index, without decoding intervening
// symbols; it is how a nested Procedure record's body is bypassed, and how an
// inline site's walk hands the symbol just past its region back to its caller.
//
// Implementations must have reference semantics (a pointer receiver holding
// the cursor): the inline-range walk in inline.go passes a single SymbolIter
// into recursive calls so a child inline site's consumption of the stream is
// visible to its caller when it resumes - the cursor is never cloned.
type SymbolIter interface {
	Next() (Symbol, bool, error)
	SkipTo(SymbolIndex) error
}

// Symbol is one decoded (or decodable) record in a module's symbol stream.
type Symbol interface {
	Index() SymbolIndex

	// AsProcedure reports whether this record is a procedure symbol and, if
	// so, decodes it.
	AsProcedure() (ProcedureSymbol, bool)

	// AsInlineSite reports whether this record is an inline-site symbol and,
	// if so, decodes it.
	AsInlineSite() (InlineSiteSymbol, bool)
}

// ProcedureSymbol is a decoded S_[GL]PROC32-family record.
type ProcedureSymbol struct {
	Name      string
	Offset    SectionOffset
	Length    uint32
	TypeIndex TypeIndex

	// End is the symbol index one past this procedure's nested region; it is
	// the exclusive upper bound used to skip over a nested procedure.
	End SymbolIndex
}

// InlineSiteSymbol is a decoded S_INLINESITE record.
type InlineSiteSymbol struct {
	Inlinee IDIndex

	// End is the symbol index one past this inline site's nested region.
	End SymbolIndex
}

// AddressMap translates a PDB-internal section offset into an RVA. It
// returns false when the section index has no mapping (e.g. a discarded or
// out-of-range section).
type AddressMap interface {
	ToRVA(SectionOffset) (uint32, bool)
}

// StringTable resolves a file-name reference into its string form.
type StringTable interface {
	String(ref uint32) (string, error)
}

// LineProgram maps code offsets within one module to source (file, line)
// positions.
type LineProgram interface {
	// LinesAtOffset returns the line entries belonging to the procedure that
	// starts at offset, in ascending offset order.
	LinesAtOffset(offset SectionOffset) LineIter

	FileInfo(FileIndex) (FileInfo, error)
}

// FileInfo names a source file referenced by a line program.
type FileInfo struct {
	NameRef uint32
}

// LineIter walks the line entries for one procedure.
type LineIter interface {
	Next() (LineInfo, bool, error)
}

// LineInfo is one (offset, file, line) triple from a line program.
type LineInfo struct {
	Offset    SectionOffset
	FileIndex FileIndex
	LineStart uint32
}

// InlineeIter walks a module's inlinee-id lookup table.
type InlineeIter interface {
	Next() (Inlinee, bool, error)
}

// Inlinee describes one function that was inlined somewhere in its owning
// module, keyed by IDIndex in the module's inlinee table.
type Inlinee struct {
	ID IDIndex

	// Lines returns the line-binary-annotation stream for one call site of
	// this inlinee, relative to the caller procedure's offset.
	Lines func(callerOffset SectionOffset, site InlineSiteSymbol) InlineeLineIter
}

// InlineeLineIter walks the (offset, length, file, line) tuples produced by
// decoding an inline site's binary annotations.
type InlineeLineIter interface {
	Next() (InlineeLineInfo, bool, error)
}

// InlineeLineInfo is one decoded binary-annotation tuple. Length is nil when
// the annotation carries no length, and such entries are skipped by the
// caller rather than treated as zero-width ranges.
type InlineeLineInfo struct {
	Offset    SectionOffset
	Length    *uint32
	FileIndex FileIndex
	LineStart uint32
}
