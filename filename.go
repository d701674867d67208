// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pdbsym

// resolveFilename resolves a line program's file index to its source path,
// via the Context's string table. A missing string table, a file-info
// lookup failure, or an undecodable name all soft-degrade to nil rather
// than propagating an error.
func (c *Context) resolveFilename(lineProgram LineProgram, fileIndex FileIndex) *string {
	if !c.view.hasStrings {
		return nil
	}
	info, err := lineProgram.FileInfo(fileIndex)
	if err != nil {
		return nil
	}
	name, err := c.view.stringTable.String(info.NameRef)
	if err != nil {
		return nil
	}
	return &name
}
