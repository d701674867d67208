// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fakepdb

import "github.com/saferwall/pdbsym"

// rec is one flattened symbol-stream entry. Its position in recs is also
// its SymbolIndex, matching how real CodeView symbol streams assign
// monotonically increasing byte-offset indices as they are walked.
type rec struct {
	isProc bool
	isSite bool
	proc   pdbsym.ProcedureSymbol
	site   pdbsym.InlineSiteSymbol
}

type moduleSource struct {
	procs    []Proc
	recs     []rec
	lines    map[uint32][]LineEntry // keyed by the procedure symbol's index
	inlinees map[pdbsym.IDIndex]Annotated
	files    map[string]uint32
}

// Annotated pairs an inlinee's declared name with its annotation replay.
type Annotated struct {
	Name        string
	Annotations []Annotation
}

func newModuleSource(spec PDB, m Module) *moduleSource {
	ms := &moduleSource{
		procs:    m.Procs,
		lines:    make(map[uint32][]LineEntry),
		inlinees: make(map[pdbsym.IDIndex]Annotated),
		files:    spec.Files,
	}

	for _, p := range m.Procs {
		startIdx := uint32(len(ms.recs))
		ms.recs = append(ms.recs, rec{}) // placeholder for the proc symbol itself
		for _, site := range p.InlineSites {
			ms.flattenSite(site)
		}
		ms.recs[startIdx] = rec{
			isProc: true,
			proc: pdbsym.ProcedureSymbol{
				Name:      p.Name,
				Offset:    pdbsym.SectionOffset{Section: p.Section, Offset: p.Offset},
				Length:    p.Length,
				TypeIndex: pdbsym.TypeIndex(p.TypeIndex),
				End:       pdbsym.SymbolIndex(len(ms.recs)),
			},
		}
		ms.lines[startIdx] = p.Lines
	}

	return ms
}

func (ms *moduleSource) flattenSite(site InlineSite) {
	startIdx := uint32(len(ms.recs))
	ms.recs = append(ms.recs, rec{}) // placeholder
	for _, child := range site.Children {
		ms.flattenSite(child)
	}
	ms.recs[startIdx] = rec{
		isSite: true,
		site: pdbsym.InlineSiteSymbol{
			Inlinee: pdbsym.IDIndex(site.ID),
			End:     pdbsym.SymbolIndex(len(ms.recs)),
		},
	}
	ms.inlinees[pdbsym.IDIndex(site.ID)] = Annotated{Name: site.Name, Annotations: site.Annotations}
}

func (ms *moduleSource) Symbols() (pdbsym.SymbolIter, error) {
	return &symbolIter{recs: ms.recs, pos: 0}, nil
}

func (ms *moduleSource) SymbolsAt(idx pdbsym.SymbolIndex) (pdbsym.SymbolIter, error) {
	return &symbolIter{recs: ms.recs, pos: int(idx)}, nil
}

func (ms *moduleSource) LineProgram() (pdbsym.LineProgram, error) {
	return &lineProgram{ms: ms}, nil
}

func (ms *moduleSource) Inlinees() (pdbsym.InlineeIter, error) {
	out := make([]pdbsym.Inlinee, 0, len(ms.inlinees))
	for id, ann := range ms.inlinees {
		ann := ann
		out = append(out, pdbsym.Inlinee{
			ID: id,
			Lines: func(callerOffset pdbsym.SectionOffset, _ pdbsym.InlineSiteSymbol) pdbsym.InlineeLineIter {
				return &annotationIter{annotations: ann.Annotations, files: ms.files, section: callerOffset.Section}
			},
		})
	}
	return &inlineeIter{inlinees: out}, nil
}

type symbolIter struct {
	recs []rec
	pos  int
}

func (it *symbolIter) Next() (pdbsym.Symbol, bool, error) {
	if it.pos >= len(it.recs) {
		return nil, false, nil
	}
	sym := &symbol{index: pdbsym.SymbolIndex(it.pos), rec: it.recs[it.pos]}
	it.pos++
	return sym, true, nil
}

func (it *symbolIter) SkipTo(idx pdbsym.SymbolIndex) error {
	it.pos = int(idx)
	return nil
}

type symbol struct {
	index pdbsym.SymbolIndex
	rec   rec
}

func (s *symbol) Index() pdbsym.SymbolIndex { return s.index }

func (s *symbol) AsProcedure() (pdbsym.ProcedureSymbol, bool) {
	if !s.rec.isProc {
		return pdbsym.ProcedureSymbol{}, false
	}
	return s.rec.proc, true
}

func (s *symbol) AsInlineSite() (pdbsym.InlineSiteSymbol, bool) {
	if !s.rec.isSite {
		return pdbsym.InlineSiteSymbol{}, false
	}
	return s.rec.site, true
}
