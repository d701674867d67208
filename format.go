// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pdbsym

import (
	"strconv"
	"strings"
)

// FormatterFlags configures the bundled defaultFormatter. Each flag toggles
// one facet of the rendered name; the grammar beyond raw-name pass-through
// is intentionally minimal, since decoding the type/id stream record
// grammar needed for a faithful C++-style signature is out of scope here -
// a caller symbolicating real PDBs supplies its own Formatter backed by
// the actual type stream.
type FormatterFlags struct {
	IncludeReturnType      bool
	IncludeArguments       bool
	IncludeScopeQualifiers bool
}

// Formatter renders a procedure or inlinee name from its PDB tokens.
// Implementations may fail; a failure is a soft error at the call site (the
// corresponding Frame/Procedure's Function field becomes nil).
type Formatter interface {
	WriteFunction(out *strings.Builder, rawName string, typeIndex TypeIndex) error
	WriteID(out *strings.Builder, idIndex IDIndex) error
}

// defaultFormatter renders the raw name token as-is, decorated per
// FormatterFlags with the minimal syntax needed to demonstrate that every
// flag has an observable effect. It never fails. IDInformation is an opaque
// blob (see Source), so it has no way to render an id stream entry's real
// name; WriteID always falls back to "id#<N>". A caller that needs real
// inlinee names supplies its own Formatter backed by its own decode of the
// id stream.
type defaultFormatter struct {
	flags FormatterFlags
}

func newDefaultFormatter(flags FormatterFlags) *defaultFormatter {
	return &defaultFormatter{flags: flags}
}

func (f *defaultFormatter) WriteFunction(out *strings.Builder, rawName string, typeIndex TypeIndex) error {
	out.WriteString(rawName)
	if f.flags.IncludeScopeQualifiers && !strings.Contains(rawName, "::") {
		out.WriteString(" (global scope)")
	}
	if f.flags.IncludeArguments {
		out.WriteString("()")
	}
	if f.flags.IncludeReturnType {
		out.WriteString(" -> auto")
	}
	return nil
}

func (f *defaultFormatter) WriteID(out *strings.Builder, idIndex IDIndex) error {
	out.WriteString("id#")
	out.WriteString(strconv.FormatUint(uint64(idIndex), 10))
	return nil
}
