// Package bundle assembles signed, distributable pass archives.
//
// Build drives the whole pipeline: serialize the pass, compute the
// manifest over the serialized JSON and the assets, produce a detached
// signature over the manifest bytes, then package everything into one
// zip archive. Each stage consumes the prior stage's exact output
// bytes; nothing is mutated in between, and nothing is cached across
// builds.
//
// Open reads a built archive back for inspection and re-verification.
package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/walletpass/passkit/crypto"
	"github.com/walletpass/passkit/manifest"
	"github.com/walletpass/passkit/pass"
)

// Fixed entry names inside the archive. Entries are flat, no directory
// nesting.
const (
	PassFileName      = "pass.json"
	ManifestFileName  = "manifest.json"
	SignatureFileName = "signature"
)

// Pipeline stage names, recorded in BuildError.
const (
	StagePass      = "pass"
	StageManifest  = "manifest"
	StageSignature = "signature"
	StageArchive   = "archive"
)

// BuildError wraps a pipeline stage failure with the identity of the
// stage whose input could not be processed.
type BuildError struct {
	Stage string
	Err   error
}

// Error implements the standard error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("bundle build failed at %s stage: %v", e.Stage, e.Err)
}

// Unwrap returns the originating stage error.
func (e *BuildError) Unwrap() error { return e.Err }

// Build serializes, hashes, signs and packages p, writing the archive
// to w. The archive is assembled in memory and written only after
// every stage has succeeded, so w never receives a partial archive.
// The pass and credential material are treated as read-only snapshots
// for the duration of the call.
func Build(p *pass.Pass, creds *crypto.Credentials, w io.Writer) error {
	passJSON, err := p.Serialize()
	if err != nil {
		return &BuildError{Stage: StagePass, Err: err}
	}
	return BuildRaw(passJSON, p.Assets(), creds, w)
}

// BuildBytes is Build returning the archive as a byte slice.
func BuildBytes(p *pass.Pass, creds *crypto.Credentials) ([]byte, error) {
	var buf bytes.Buffer
	if err := Build(p, creds, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildRaw packages pre-serialized pass JSON and assets without going
// through the pass model, for tooling that signs externally authored
// pass directories. The manifest and signature stages are identical to
// Build.
func BuildRaw(passJSON []byte, assets []pass.Asset, creds *crypto.Credentials, w io.Writer) error {
	manifestJSON, err := manifest.Build(passJSON, assets).Bytes()
	if err != nil {
		return &BuildError{Stage: StageManifest, Err: err}
	}

	signature, err := crypto.Sign(manifestJSON, creds)
	if err != nil {
		return &BuildError{Stage: StageSignature, Err: err}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := []pass.Asset{
		{Name: PassFileName, Data: passJSON},
		{Name: ManifestFileName, Data: manifestJSON},
		{Name: SignatureFileName, Data: signature},
	}
	entries = append(entries, assets...)
	for _, entry := range entries {
		f, err := zw.Create(entry.Name)
		if err != nil {
			return &BuildError{Stage: StageArchive, Err: fmt.Errorf("failed to create entry %q: %w", entry.Name, err)}
		}
		if _, err := f.Write(entry.Data); err != nil {
			return &BuildError{Stage: StageArchive, Err: fmt.Errorf("failed to write entry %q: %w", entry.Name, err)}
		}
	}
	if err := zw.Close(); err != nil {
		return &BuildError{Stage: StageArchive, Err: err}
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return &BuildError{Stage: StageArchive, Err: err}
	}
	return nil
}
