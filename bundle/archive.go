package bundle

import (
	"archive/zip"
	"bytes"
	"crypto/x509"
	"fmt"
	"io"

	"github.com/walletpass/passkit/crypto"
	"github.com/walletpass/passkit/manifest"
	"github.com/walletpass/passkit/pass"
)

// Archive is the read-back form of a built bundle.
type Archive struct {
	PassJSON     []byte
	ManifestJSON []byte
	Signature    []byte
	Assets       []pass.Asset
}

// Open reads a bundle archive. The pass JSON, manifest and signature
// entries are required; every other entry is treated as an asset.
func Open(r io.ReaderAt, size int64) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	a := &Archive{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open entry %q: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read entry %q: %w", f.Name, err)
		}

		switch f.Name {
		case PassFileName:
			a.PassJSON = data
		case ManifestFileName:
			a.ManifestJSON = data
		case SignatureFileName:
			a.Signature = data
		default:
			a.Assets = append(a.Assets, pass.Asset{Name: f.Name, Data: data})
		}
	}

	switch {
	case a.PassJSON == nil:
		return nil, fmt.Errorf("archive is missing %s", PassFileName)
	case a.ManifestJSON == nil:
		return nil, fmt.Errorf("archive is missing %s", ManifestFileName)
	case a.Signature == nil:
		return nil, fmt.Errorf("archive is missing %s", SignatureFileName)
	}
	return a, nil
}

// OpenBytes is Open over an in-memory archive.
func OpenBytes(data []byte) (*Archive, error) {
	return Open(bytes.NewReader(data), int64(len(data)))
}

// VerifyManifest recomputes the content hash of every archived file
// and compares it against the stored manifest. An entry with a
// mismatched hash, a file absent from the manifest, or a manifest
// entry without a file all fail.
func (a *Archive) VerifyManifest() error {
	m, err := manifest.Parse(a.ManifestJSON)
	if err != nil {
		return err
	}

	got := manifest.Build(a.PassJSON, a.Assets)
	for name, want := range m {
		sum, ok := got[name]
		if !ok {
			return fmt.Errorf("manifest entry %q has no file in the archive", name)
		}
		if sum != want {
			return fmt.Errorf("hash mismatch for %q: manifest has %s, content is %s", name, want, sum)
		}
	}
	for name := range got {
		if _, ok := m[name]; !ok {
			return fmt.Errorf("file %q is not covered by the manifest", name)
		}
	}
	return nil
}

// VerifySignature checks the archived detached signature against the
// archived manifest bytes. Semantics match crypto.Verify.
func (a *Archive) VerifySignature(signerCert *x509.Certificate, format crypto.SignatureFormat, skipChainValidation bool) (bool, error) {
	return crypto.Verify(signerCert, a.ManifestJSON, a.Signature, format, skipChainValidation)
}
