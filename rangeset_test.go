// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pdbsym

import "testing"

func TestRangeSetAddMerges(t *testing.T) {
	r := &rangeSet{}
	r.add(10, 20)
	r.add(20, 30) // adjacent, must merge
	r.add(100, 110)

	if len(r.spans) != 2 {
		t.Fatalf("expected 2 merged spans, got %d: %+v", len(r.spans), r.spans)
	}
	if r.spans[0] != (span{10, 30}) {
		t.Errorf("expected merged span {10,30}, got %+v", r.spans[0])
	}
	if r.spans[1] != (span{100, 110}) {
		t.Errorf("expected span {100,110}, got %+v", r.spans[1])
	}
}

func TestRangeSetAddIgnoresEmpty(t *testing.T) {
	r := &rangeSet{}
	r.add(10, 10)
	r.add(20, 15)
	if len(r.spans) != 0 {
		t.Errorf("expected no spans from empty/inverted input, got %+v", r.spans)
	}
}

func TestRangeSetIsSupersetOf(t *testing.T) {
	r := &rangeSet{}
	r.add(0, 100)

	other := &rangeSet{}
	other.add(10, 20)
	other.add(50, 60)
	if !r.isSupersetOf(other) {
		t.Errorf("expected [0,100) to be a superset of [10,20)+[50,60)")
	}

	other.add(90, 110)
	if r.isSupersetOf(other) {
		t.Errorf("expected [0,100) to not cover [90,110)")
	}
}

func TestRangeSetDifference(t *testing.T) {
	r := &rangeSet{}
	r.add(10, 20)
	r.add(30, 40)

	other := &rangeSet{}
	other.add(0, 50)

	diff := r.difference(other)
	want := []span{{0, 10}, {20, 30}, {40, 50}}
	if len(diff.spans) != len(want) {
		t.Fatalf("expected %d spans, got %d: %+v", len(want), len(diff.spans), diff.spans)
	}
	for i, s := range want {
		if diff.spans[i] != s {
			t.Errorf("span %d: expected %+v, got %+v", i, s, diff.spans[i])
		}
	}
}

func TestRangeSetDifferenceNoOverlap(t *testing.T) {
	r := &rangeSet{}
	other := &rangeSet{}
	other.add(5, 15)

	diff := r.difference(other)
	if len(diff.spans) != 1 || diff.spans[0] != (span{5, 15}) {
		t.Errorf("expected the whole of other back when r is empty, got %+v", diff.spans)
	}
}

func TestRangeSetUnion(t *testing.T) {
	a := &rangeSet{}
	a.add(0, 10)
	b := &rangeSet{}
	b.add(5, 15)
	b.add(20, 25)

	a.union(b)
	want := []span{{0, 15}, {20, 25}}
	if len(a.spans) != len(want) {
		t.Fatalf("expected %d spans, got %d: %+v", len(want), len(a.spans), a.spans)
	}
	for i, s := range want {
		if a.spans[i] != s {
			t.Errorf("span %d: expected %+v, got %+v", i, s, a.spans[i])
		}
	}
}
