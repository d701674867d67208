// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pdbsym

import "sync"

// moduleCache is the per-Context cache of extendedModule, keyed by module
// index. Entries are inserted once and never evicted or mutated; the
// mutex only guards the insert, never a decode.
type moduleCache struct {
	mu      sync.Mutex
	entries map[uint16]*extendedModule
}

func newModuleCache() *moduleCache {
	return &moduleCache{entries: make(map[uint16]*extendedModule)}
}

// get returns the cached entry for moduleIndex, computing it via compute on
// a miss. Two goroutines racing a miss may both call compute; whichever
// insert wins is kept and returned to both callers, and the losing
// duplicate is discarded.
func (c *moduleCache) get(moduleIndex uint16, compute func() (*extendedModule, error)) (*extendedModule, error) {
	c.mu.Lock()
	if m, ok := c.entries[moduleIndex]; ok {
		c.mu.Unlock()
		return m, nil
	}
	c.mu.Unlock()

	m, err := compute()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if existing, ok := c.entries[moduleIndex]; ok {
		c.mu.Unlock()
		return existing, nil
	}
	c.entries[moduleIndex] = m
	c.mu.Unlock()
	return m, nil
}

// procedureCache is the per-Context cache of extendedProcedure, keyed by a
// procedure's start RVA. Each of its three fields is populated
// independently and lazily.
type procedureCache struct {
	mu      sync.Mutex
	entries map[uint32]*extendedProcedure
}

func newProcedureCache() *procedureCache {
	return &procedureCache{entries: make(map[uint32]*extendedProcedure)}
}

func (c *procedureCache) entry(startRVA uint32) *extendedProcedure {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[startRVA]
	if !ok {
		e = &extendedProcedure{}
		c.entries[startRVA] = e
	}
	return e
}

// name returns the memoized formatted name, computing it via compute on a
// first call. compute must not itself take the cache's lock.
func (c *procedureCache) name(startRVA uint32, compute func() *string) *string {
	e := c.entry(startRVA)
	c.mu.Lock()
	if e.nameSet {
		n := e.name
		c.mu.Unlock()
		return n
	}
	c.mu.Unlock()

	n := compute()

	c.mu.Lock()
	if !e.nameSet {
		e.name = n
		e.nameSet = true
	}
	result := e.name
	c.mu.Unlock()
	return result
}

func (c *procedureCache) lines(startRVA uint32, compute func() ([]cachedLine, error)) ([]cachedLine, error) {
	e := c.entry(startRVA)
	c.mu.Lock()
	if e.linesSet {
		l := e.lines
		c.mu.Unlock()
		return l, nil
	}
	c.mu.Unlock()

	l, err := compute()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if !e.linesSet {
		e.lines = l
		e.linesSet = true
	}
	result := e.lines
	c.mu.Unlock()
	return result, nil
}

func (c *procedureCache) inlineRanges(startRVA uint32, compute func() ([]inlineRange, error)) ([]inlineRange, error) {
	e := c.entry(startRVA)
	c.mu.Lock()
	if e.rangesSet {
		r := e.inlineRanges
		c.mu.Unlock()
		return r, nil
	}
	c.mu.Unlock()

	r, err := compute()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if !e.rangesSet {
		e.inlineRanges = r
		e.rangesSet = true
	}
	result := e.inlineRanges
	c.mu.Unlock()
	return result, nil
}
