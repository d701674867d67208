// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pdbsym

import (
	"testing"

	"github.com/saferwall/pdbsym/internal/fakepdb"
)

func TestFindFramesNonInlinedFunction(t *testing.T) {
	ctx := newTestContext(t, simpleProcSpec())
	pf, err := ctx.FindFrames(0x1005)
	if err != nil {
		t.Fatalf("FindFrames returned error: %v", err)
	}
	if pf == nil {
		t.Fatal("FindFrames returned nil for an address inside a real procedure")
	}
	if len(pf.Frames) != 1 {
		t.Fatalf("expected exactly 1 frame for a non-inlined function, got %d", len(pf.Frames))
	}
	f := pf.Frames[0]
	if f.Function == nil || *f.Function != "First" {
		t.Errorf("Function = %v, want First", f.Function)
	}
	if f.File == nil || *f.File != "a.cpp" {
		t.Errorf("File = %v, want a.cpp", f.File)
	}
	if f.Line == nil || *f.Line != 1 {
		t.Errorf("Line = %v, want 1", f.Line)
	}
}

func TestFindFramesInHoleReturnsNil(t *testing.T) {
	ctx := newTestContext(t, simpleProcSpec())
	pf, err := ctx.FindFrames(0x1025)
	if err != nil {
		t.Fatalf("FindFrames returned error: %v", err)
	}
	if pf != nil {
		t.Errorf("expected nil in a hole between procedures, got %+v", pf)
	}
}

func twoLevelInlineSpec() fakepdb.PDB {
	return fakepdb.PDB{
		SectionBases: map[uint16]uint32{1: 0x2000},
		Files: map[string]uint32{
			"outer.cpp":    1,
			"inlined1.cpp": 2,
			"inlined2.cpp": 3,
		},
		Modules: []fakepdb.Module{{
			Name: "outer.obj",
			Procs: []fakepdb.Proc{{
				Name: "Outer", Section: 1, Offset: 0x0, Length: 0x100,
				Lines: []fakepdb.LineEntry{{Offset: 0x0, File: "outer.cpp", Line: 100}},
				InlineSites: []fakepdb.InlineSite{{
					ID:   1,
					Name: "Inlined1",
					Annotations: []fakepdb.Annotation{
						{Offset: 0x10, Length: 0x10, File: "inlined1.cpp", Line: 200},
					},
					Children: []fakepdb.InlineSite{{
						ID:   2,
						Name: "Inlined2",
						Annotations: []fakepdb.Annotation{
							{Offset: 0x10, Length: 0x8, File: "inlined2.cpp", Line: 300},
						},
					}},
				}},
			}},
		}},
	}
}

func TestFindFramesTwoLevelInlineChain(t *testing.T) {
	ctx := newTestContext(t, twoLevelInlineSpec())

	probe := uint32(0x2000 + 0x12) // inside both site1 [0x10,0x20) and site2 [0x10,0x18)
	pf, err := ctx.FindFrames(probe)
	if err != nil {
		t.Fatalf("FindFrames returned error: %v", err)
	}
	if pf == nil {
		t.Fatal("FindFrames returned nil")
	}
	if len(pf.Frames) != 3 {
		t.Fatalf("expected 3 frames (outer + 2 inline levels), got %d: %+v", len(pf.Frames), pf.Frames)
	}

	// Innermost first.
	if pf.Frames[0].File == nil || *pf.Frames[0].File != "inlined2.cpp" || pf.Frames[0].Line == nil || *pf.Frames[0].Line != 300 {
		t.Errorf("frame 0 (innermost) = %+v, want inlined2.cpp:300", pf.Frames[0])
	}
	if pf.Frames[1].File == nil || *pf.Frames[1].File != "inlined1.cpp" || pf.Frames[1].Line == nil || *pf.Frames[1].Line != 200 {
		t.Errorf("frame 1 = %+v, want inlined1.cpp:200", pf.Frames[1])
	}
	if pf.Frames[2].File == nil || *pf.Frames[2].File != "outer.cpp" || pf.Frames[2].Line == nil || *pf.Frames[2].Line != 100 {
		t.Errorf("frame 2 (outermost) = %+v, want outer.cpp:100", pf.Frames[2])
	}
}

func TestFindFramesSingleLevelOutsideInlineRange(t *testing.T) {
	ctx := newTestContext(t, twoLevelInlineSpec())

	// 0x50 is within Outer but outside both inline sites' coverage.
	pf, err := ctx.FindFrames(0x2050)
	if err != nil {
		t.Fatalf("FindFrames returned error: %v", err)
	}
	if pf == nil {
		t.Fatal("FindFrames returned nil")
	}
	if len(pf.Frames) != 1 {
		t.Fatalf("expected just the outer frame outside inline coverage, got %d: %+v", len(pf.Frames), pf.Frames)
	}
}

// TestFindFramesGapWorkaround exercises a parent inline site that carries no
// line annotations of its own while its nested child does - the decoder
// must synthesize a depth-0 frame for the parent's uncovered span with a nil
// line, rather than skipping straight from Outer to the grandchild.
func TestFindFramesGapWorkaround(t *testing.T) {
	spec := fakepdb.PDB{
		SectionBases: map[uint16]uint32{1: 0x3000},
		Files:        map[string]uint32{"outer.cpp": 1, "child.cpp": 2},
		Modules: []fakepdb.Module{{
			Name: "gap.obj",
			Procs: []fakepdb.Proc{{
				Name: "Outer", Section: 1, Offset: 0x0, Length: 0x100,
				Lines: []fakepdb.LineEntry{{Offset: 0x0, File: "outer.cpp", Line: 1}},
				InlineSites: []fakepdb.InlineSite{{
					ID:          1,
					Name:        "NoAnnotationParent",
					Annotations: nil, // deliberately empty
					Children: []fakepdb.InlineSite{{
						ID:   2,
						Name: "Child",
						Annotations: []fakepdb.Annotation{
							{Offset: 0x10, Length: 0x8, File: "child.cpp", Line: 50},
						},
					}},
				}},
			}},
		}},
	}
	ctx := newTestContext(t, spec)

	probe := uint32(0x3000 + 0x12)
	pf, err := ctx.FindFrames(probe)
	if err != nil {
		t.Fatalf("FindFrames returned error: %v", err)
	}
	if pf == nil {
		t.Fatal("FindFrames returned nil")
	}
	if len(pf.Frames) != 3 {
		t.Fatalf("expected outer + synthesized parent + child, got %d: %+v", len(pf.Frames), pf.Frames)
	}

	gapFrame := pf.Frames[1]
	if gapFrame.File != nil {
		t.Errorf("gap-filled frame should have no resolvable file, got %v", gapFrame.File)
	}
	if gapFrame.Line != nil {
		t.Errorf("gap-filled frame should have no resolvable line, got %v", gapFrame.Line)
	}

	childFrame := pf.Frames[0]
	if childFrame.File == nil || *childFrame.File != "child.cpp" || childFrame.Line == nil || *childFrame.Line != 50 {
		t.Errorf("child frame = %+v, want child.cpp:50", childFrame)
	}
}
