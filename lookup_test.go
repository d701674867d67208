// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pdbsym

import (
	"testing"

	"github.com/saferwall/pdbsym/internal/fakepdb"
)

func TestFindFunctionWithinProcedure(t *testing.T) {
	ctx := newTestContext(t, simpleProcSpec())

	proc, err := ctx.FindFunction(0x1005)
	if err != nil {
		t.Fatalf("FindFunction returned error: %v", err)
	}
	if proc == nil {
		t.Fatal("FindFunction returned nil for an address inside First")
	}
	if proc.ProcedureStartRVA != 0x1000 {
		t.Errorf("ProcedureStartRVA = %#x, want %#x", proc.ProcedureStartRVA, 0x1000)
	}
	if proc.Function == nil || *proc.Function != "First" {
		t.Errorf("Function = %v, want First", proc.Function)
	}
}

func TestFindFunctionAtExactStart(t *testing.T) {
	ctx := newTestContext(t, simpleProcSpec())
	proc, err := ctx.FindFunction(0x1030)
	if err != nil {
		t.Fatalf("FindFunction returned error: %v", err)
	}
	if proc == nil || proc.ProcedureStartRVA != 0x1030 {
		t.Fatalf("expected Second at exact start, got %+v", proc)
	}
}

func TestFindFunctionInHoleBetweenProcedures(t *testing.T) {
	ctx := newTestContext(t, simpleProcSpec())
	// First spans [0x1000, 0x1020); Second starts at 0x1030. 0x1025 is a hole.
	proc, err := ctx.FindFunction(0x1025)
	if err != nil {
		t.Fatalf("FindFunction returned error: %v", err)
	}
	if proc != nil {
		t.Errorf("expected nil in the hole between procedures, got %+v", proc)
	}
}

func TestFindFunctionBeforeFirstProcedure(t *testing.T) {
	ctx := newTestContext(t, simpleProcSpec())
	proc, err := ctx.FindFunction(0x500)
	if err != nil {
		t.Fatalf("FindFunction returned error: %v", err)
	}
	if proc != nil {
		t.Errorf("expected nil before the first procedure, got %+v", proc)
	}
}

func TestFindFunctionAtEnd(t *testing.T) {
	ctx := newTestContext(t, simpleProcSpec())
	// Second spans [0x1030, 0x1040); 0x1040 is one past the end.
	proc, err := ctx.FindFunction(0x1040)
	if err != nil {
		t.Fatalf("FindFunction returned error: %v", err)
	}
	if proc != nil {
		t.Errorf("expected nil at the exclusive end boundary, got %+v", proc)
	}
}

func TestFindFunctionEmptyIndex(t *testing.T) {
	ctx := newTestContext(t, fakepdb.PDB{SectionBases: map[uint16]uint32{1: 0x1000}})
	proc, err := ctx.FindFunction(0x1000)
	if err != nil {
		t.Fatalf("FindFunction returned error: %v", err)
	}
	if proc != nil {
		t.Errorf("expected nil from an empty procedure index, got %+v", proc)
	}
}
