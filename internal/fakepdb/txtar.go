// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fakepdb

import (
	"encoding/json"
	"fmt"

	"golang.org/x/tools/txtar"
)

// LoadTxtar decodes a txtar archive into a PDB fixture. The archive's
// comment, if any, is ignored; a file named "pdb.json" must hold the
// fixture's JSON encoding. Additional files may carry source text for
// human inspection alongside the fixture and are otherwise unused.
func LoadTxtar(data []byte) (PDB, error) {
	archive := txtar.Parse(data)
	for _, f := range archive.Files {
		if f.Name != "pdb.json" {
			continue
		}
		var spec PDB
		if err := json.Unmarshal(f.Data, &spec); err != nil {
			return PDB{}, fmt.Errorf("fakepdb: failed to decode pdb.json: %w", err)
		}
		return spec, nil
	}
	return PDB{}, fmt.Errorf("fakepdb: txtar archive carries no pdb.json file")
}
