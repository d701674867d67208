// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pdbsym

import "sort"

// span is a half-open [start, end) uint32 interval.
type span struct {
	start, end uint32
}

// rangeSet is a sorted, disjoint set of uint32 spans. It backs the
// gap-fill workaround: computing which callee-covered addresses a parent
// inline site failed to annotate itself. A small open-coded sorted merge,
// since no sorted-interval third-party package fits this narrow use.
type rangeSet struct {
	spans []span
}

// add inserts [start, end) and re-normalizes (merges overlapping/adjacent
// spans) so the set stays disjoint and sorted.
func (r *rangeSet) add(start, end uint32) {
	if start >= end {
		return
	}
	r.spans = append(r.spans, span{start, end})
	r.normalize()
}

// union merges other into r.
func (r *rangeSet) union(other *rangeSet) {
	r.spans = append(r.spans, other.spans...)
	r.normalize()
}

func (r *rangeSet) normalize() {
	if len(r.spans) == 0 {
		return
	}
	sort.Slice(r.spans, func(i, j int) bool { return r.spans[i].start < r.spans[j].start })
	merged := r.spans[:1]
	for _, s := range r.spans[1:] {
		last := &merged[len(merged)-1]
		if s.start <= last.end {
			if s.end > last.end {
				last.end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}
	r.spans = merged
}

// isSupersetOf reports whether every span in other is fully covered by r.
func (r *rangeSet) isSupersetOf(other *rangeSet) bool {
	for _, o := range other.spans {
		if !r.covers(o) {
			return false
		}
	}
	return true
}

func (r *rangeSet) covers(s span) bool {
	i := sort.Search(len(r.spans), func(i int) bool { return r.spans[i].end > s.start })
	if i == len(r.spans) {
		return false
	}
	return r.spans[i].start <= s.start && r.spans[i].end >= s.end
}

// difference returns a new rangeSet containing other's coverage minus r's.
func (r *rangeSet) difference(other *rangeSet) *rangeSet {
	out := &rangeSet{}
	for _, o := range other.spans {
		remaining := []span{o}
		for _, s := range r.spans {
			var next []span
			for _, rem := range remaining {
				if s.end <= rem.start || s.start >= rem.end {
					next = append(next, rem)
					continue
				}
				if s.start > rem.start {
					next = append(next, span{rem.start, s.start})
				}
				if s.end < rem.end {
					next = append(next, span{s.end, rem.end})
				}
			}
			remaining = next
		}
		out.spans = append(out.spans, remaining...)
	}
	out.normalize()
	return out
}
