// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pdbsym

import "errors"

var (
	// ErrNoDebugInformation is returned when a Source fails to produce a
	// debug-information stream at View construction time.
	ErrNoDebugInformation = errors.New("pdbsym: failed to load debug information stream")

	// ErrNoTypeInformation is returned when a Source fails to produce a
	// type-information stream at View construction time.
	ErrNoTypeInformation = errors.New("pdbsym: failed to load type information stream")

	// ErrNoIDInformation is returned when a Source fails to produce an
	// id-information stream at View construction time.
	ErrNoIDInformation = errors.New("pdbsym: failed to load id information stream")

	// ErrNoAddressMap is returned when a Source fails to produce an address
	// map at View construction time.
	ErrNoAddressMap = errors.New("pdbsym: failed to load address map")

	// ErrDebugDirectoryMismatch is returned by MatchesDebugDirectory callers
	// that choose to treat a mismatch as fatal instead of testing the bool.
	ErrDebugDirectoryMismatch = errors.New("pdbsym: PE debug directory does not match PDB")

	// ErrNoSecurityDirectory is returned by VerifyAuthenticode when the PE
	// carries no certificate table entry at all.
	ErrNoSecurityDirectory = errors.New("pdbsym: PE has no security directory")
)
