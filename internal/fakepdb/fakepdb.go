// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package fakepdb builds an in-memory pdbsym.Source from a plain Go
// description of modules, procedures, line tables and inline sites. It
// exists so the symbolication engine can be exercised end to end without a
// real MSF/CodeView decoder, which pdbsym itself does not implement -
// every test fixture and the CLI's --fixture flag are built on top of it.
package fakepdb

import (
	"fmt"

	"github.com/saferwall/pdbsym"
)

// LineEntry is one outer-body source line, given as a byte offset within
// its procedure's section.
type LineEntry struct {
	Offset uint32
	File   string
	Line   uint32
}

// Annotation is one decoded (offset, length, file, line) tuple an inline
// site's line-binary-annotation stream would have produced. Length == 0
// models the "absent length" case that real decoders skip.
type Annotation struct {
	Offset uint32
	Length uint32
	File   string
	Line   uint32
}

// InlineSite describes one inline-call occurrence. Its ID must be unique
// within the owning PDB.
type InlineSite struct {
	ID          uint32
	Name        string
	Annotations []Annotation
	Children    []InlineSite
}

// Proc describes one procedure symbol.
type Proc struct {
	Name        string
	TypeIndex   uint32
	Section     uint16
	Offset      uint32
	Length      uint32
	Lines       []LineEntry
	InlineSites []InlineSite
}

// Module describes one compiland.
type Module struct {
	Name  string
	Procs []Proc

	// NoInfo models a module that reports no module info at all; it must
	// be skipped silently by NewView, not treated as an error.
	NoInfo bool
}

// PDB is the top-level fixture description.
type PDB struct {
	// SectionBases maps a 1-based section index to its RVA base; ToRVA
	// computes base + offset.
	SectionBases map[uint16]uint32

	Modules []Module

	// Files maps a source path to an arbitrary, fixture-local name
	// reference used by the string table.
	Files map[string]uint32

	// NoStringTable models a PDB with no string table at all.
	NoStringTable bool
}

// Build realizes spec as a pdbsym.Source.
func Build(spec PDB) pdbsym.Source {
	return &source{spec: spec}
}

type source struct {
	spec PDB
}

func (s *source) DebugInformation() (pdbsym.DebugInformation, error) {
	return &debugInfo{spec: s.spec}, nil
}

func (s *source) TypeInformation() (pdbsym.TypeInformation, error) { return struct{}{}, nil }
func (s *source) IDInformation() (pdbsym.IDInformation, error)     { return struct{}{}, nil }

func (s *source) AddressMap() (pdbsym.AddressMap, error) {
	return addressMap{bases: s.spec.SectionBases}, nil
}

func (s *source) StringTable() (pdbsym.StringTable, bool) {
	if s.spec.NoStringTable {
		return nil, false
	}
	names := make(map[uint32]string, len(s.spec.Files))
	for path, ref := range s.spec.Files {
		names[ref] = path
	}
	return stringTable{names: names}, true
}

type addressMap struct {
	bases map[uint16]uint32
}

func (a addressMap) ToRVA(so pdbsym.SectionOffset) (uint32, bool) {
	base, ok := a.bases[so.Section]
	if !ok {
		return 0, false
	}
	return base + so.Offset, true
}

type stringTable struct {
	names map[uint32]string
}

func (t stringTable) String(ref uint32) (string, error) {
	name, ok := t.names[ref]
	if !ok {
		return "", fmt.Errorf("fakepdb: no such name reference %d", ref)
	}
	return name, nil
}

type debugInfo struct {
	spec PDB
}

func (d *debugInfo) Modules() ([]pdbsym.ModuleRef, error) {
	refs := make([]pdbsym.ModuleRef, len(d.spec.Modules))
	for i, m := range d.spec.Modules {
		refs[i] = pdbsym.ModuleRef{Index: uint16(i), Name: m.Name}
	}
	return refs, nil
}

func (d *debugInfo) ModuleInfo(ref pdbsym.ModuleRef) (pdbsym.ModuleSource, bool, error) {
	m := d.spec.Modules[ref.Index]
	if m.NoInfo {
		return nil, false, nil
	}
	return newModuleSource(d.spec, m), true, nil
}
