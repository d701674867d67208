// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pdbsym

import (
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// RecordDecoder is the out-of-scope collaborator that turns the raw bytes
// an MMapSource exposes into the structural views Source promises. This
// module ships no implementation of it - doing so would mean decoding the
// MSF container and CodeView records, which this module deliberately
// leaves to the caller.
type RecordDecoder interface {
	Decode(data []byte) (Source, error)
}

// MMapSource memory-maps a .pdb file for zero-copy byte access and
// delegates to a RecordDecoder for everything past that. It demonstrates
// that the façade can be driven by a real file on disk without the core
// ever parsing a CodeView record itself.
type MMapSource struct {
	f    *os.File
	data mmap.MMap
}

// OpenMMapSource memory-maps path read-only.
func OpenMMapSource(path string) (*MMapSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pdbsym: failed to open %q: %w", path, err)
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("pdbsym: failed to mmap %q: %w", path, err)
	}
	return &MMapSource{f: f, data: data}, nil
}

// Bytes returns the whole mapped file.
func (m *MMapSource) Bytes() []byte {
	return m.data
}

// Decode hands the mapped bytes to decoder and returns the resulting
// Source, ready to pass to NewView.
func (m *MMapSource) Decode(decoder RecordDecoder) (Source, error) {
	return decoder.Decode(m.data)
}

// Close unmaps the file and closes the underlying descriptor.
func (m *MMapSource) Close() error {
	if err := m.data.Unmap(); err != nil {
		m.f.Close()
		return fmt.Errorf("pdbsym: failed to unmap: %w", err)
	}
	return m.f.Close()
}
