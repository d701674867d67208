// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pdbsym

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"go.mozilla.org/pkcs7"
)

// GUID is a 128-bit value, laid out exactly as the CodeView RSDS debug
// directory entry and the PDB info stream both encode it.
type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// CVSignatureRSDS is the CodeView signature for a PDB 7.0 debug directory
// entry ('SDSR' little-endian), the only PDB association format this
// module understands.
const CVSignatureRSDS = 0x53445352

// CodeViewDebugEntry is the decoded CV_INFO_PDB70 block of a PE's
// IMAGE_DEBUG_TYPE_CODEVIEW debug directory entry: the (GUID, age, path)
// triple a loader or crash-reporting pipeline uses to find the matching
// PDB for a binary.
type CodeViewDebugEntry struct {
	Signature   uint32
	GUID        GUID
	Age         uint32
	PDBFileName string
}

// PDBIdentity is the identifying (GUID, age) pair a View's own PDB-info
// stream carries. A real Source's PDB-info-stream loader supplies this;
// it is intentionally not part of the Source interface in source.go since
// every symbolication operation in this module works without it - it only
// matters for binary/PDB association.
type PDBIdentity struct {
	GUID GUID
	Age  uint32
}

// MatchesDebugDirectory reports whether a PE's embedded CodeView debug
// directory entry identifies the PDB behind identity - the check a
// symbolication pipeline must make before trusting an arbitrary PDB file
// for an arbitrary binary. A signature other than CVSignatureRSDS never
// matches (unsupported / legacy PDB 2.0 format).
func MatchesDebugDirectory(identity PDBIdentity, entry CodeViewDebugEntry) bool {
	if entry.Signature != CVSignatureRSDS {
		return false
	}
	return entry.GUID == identity.GUID && entry.Age == identity.Age
}

// SignerInfo is the trimmed subset of an Authenticode signer's certificate
// this module surfaces - enough for a pipeline to log or allow-list a
// publisher without carrying the full x509 structure around.
type SignerInfo struct {
	Subject            string
	SignatureAlgorithm string
}

// VerifyAuthenticode parses the PKCS#7/Authenticode blob embedded in a PE's
// security directory (winCertificate holds the WIN_CERTIFICATE bytes, as
// located by the caller from the optional header's certificate-table data
// directory) and returns its signer's identity. It does not itself chase the
// certificate chain to a trust anchor; it only decodes the signature well
// enough for a pipeline to decide whether to proceed.
func VerifyAuthenticode(winCertificate []byte) (*SignerInfo, error) {
	const winCertHeaderSize = 8 // length(4) + revision(2) + certificate type(2)
	if len(winCertificate) < winCertHeaderSize {
		return nil, ErrNoSecurityDirectory
	}

	var length uint32
	if err := binary.Read(bytes.NewReader(winCertificate[:4]), binary.LittleEndian, &length); err != nil {
		return nil, fmt.Errorf("pdbsym: failed to read WIN_CERTIFICATE header: %w", err)
	}
	if int(length) > len(winCertificate) {
		return nil, fmt.Errorf("pdbsym: WIN_CERTIFICATE length %d exceeds supplied buffer of %d bytes", length, len(winCertificate))
	}

	content := winCertificate[winCertHeaderSize:length]
	p7, err := pkcs7.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("pdbsym: failed to parse Authenticode PKCS#7 blob: %w", err)
	}
	if len(p7.Signers) == 0 {
		return nil, fmt.Errorf("pdbsym: Authenticode signature carries no signer info")
	}

	serialNumber := p7.Signers[0].IssuerAndSerialNumber.SerialNumber
	for _, cert := range p7.Certificates {
		if cert.SerialNumber == nil || serialNumber == nil {
			continue
		}
		if cert.SerialNumber.Cmp(serialNumber) != 0 {
			continue
		}
		return &SignerInfo{
			Subject:            cert.Subject.String(),
			SignatureAlgorithm: cert.SignatureAlgorithm.String(),
		}, nil
	}
	return nil, fmt.Errorf("pdbsym: no certificate in the Authenticode chain matches the signer's serial number")
}
