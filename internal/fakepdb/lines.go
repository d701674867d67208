// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fakepdb

import (
	"fmt"
	"sort"

	"github.com/saferwall/pdbsym"
)

type lineProgram struct {
	ms *moduleSource
}

// LinesAtOffset returns the declared lines for the procedure whose section
// offset matches offset exactly - fixtures always query by a procedure's
// own declared offset, matching how Context.computeProcedureLines calls it.
func (lp *lineProgram) LinesAtOffset(offset pdbsym.SectionOffset) pdbsym.LineIter {
	for startIdx, p := range lp.ms.procs {
		if p.Section == offset.Section && p.Offset == offset.Offset {
			entries := append([]LineEntry(nil), lp.ms.lines[uint32(findProcRecIndex(lp.ms, startIdx))]...)
			sort.Slice(entries, func(i, j int) bool { return entries[i].Offset < entries[j].Offset })
			return &lineIter{ms: lp.ms, section: offset.Section, entries: entries}
		}
	}
	return &lineIter{}
}

// findProcRecIndex maps a procedure's position in ms.procs back to its
// symbol-stream index (the key lines is stored under).
func findProcRecIndex(ms *moduleSource, procPos int) int {
	seen := 0
	for i, r := range ms.recs {
		if r.isProc {
			if seen == procPos {
				return i
			}
			seen++
		}
	}
	return -1
}

func (lp *lineProgram) FileInfo(idx pdbsym.FileIndex) (pdbsym.FileInfo, error) {
	return pdbsym.FileInfo{NameRef: uint32(idx)}, nil
}

type lineIter struct {
	ms      *moduleSource
	section uint16
	entries []LineEntry
	pos     int
}

func (it *lineIter) Next() (pdbsym.LineInfo, bool, error) {
	if it.pos >= len(it.entries) {
		return pdbsym.LineInfo{}, false, nil
	}
	e := it.entries[it.pos]
	it.pos++
	fileRef, ok := it.ms.files[e.File]
	if !ok {
		return pdbsym.LineInfo{}, false, fmt.Errorf("fakepdb: file %q not registered in PDB.Files", e.File)
	}
	return pdbsym.LineInfo{
		Offset:    pdbsym.SectionOffset{Section: it.section, Offset: e.Offset},
		FileIndex: pdbsym.FileIndex(fileRef),
		LineStart: e.Line,
	}, true, nil
}

type annotationIter struct {
	annotations []Annotation
	pos         int
	files       map[string]uint32
	section     uint16
}

func (it *annotationIter) Next() (pdbsym.InlineeLineInfo, bool, error) {
	if it.pos >= len(it.annotations) {
		return pdbsym.InlineeLineInfo{}, false, nil
	}
	a := it.annotations[it.pos]
	it.pos++
	var length *uint32
	if a.Length != 0 {
		l := a.Length
		length = &l
	}
	fileRef, ok := it.files[a.File]
	if !ok && a.File != "" {
		return pdbsym.InlineeLineInfo{}, false, fmt.Errorf("fakepdb: file %q not registered in PDB.Files", a.File)
	}
	return pdbsym.InlineeLineInfo{
		Offset:    pdbsym.SectionOffset{Section: it.section, Offset: a.Offset},
		Length:    length,
		FileIndex: pdbsym.FileIndex(fileRef),
		LineStart: a.Line,
	}, true, nil
}

type inlineeIter struct {
	inlinees []pdbsym.Inlinee
	pos      int
}

func (it *inlineeIter) Next() (pdbsym.Inlinee, bool, error) {
	if it.pos >= len(it.inlinees) {
		return pdbsym.Inlinee{}, false, nil
	}
	in := it.inlinees[it.pos]
	it.pos++
	return in, true, nil
}
