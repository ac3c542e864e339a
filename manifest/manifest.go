// Package manifest builds the file-name → content-hash mapping that
// binds every file in a pass bundle, including the serialized pass
// JSON itself under the fixed name "pass.json".
//
// The digest algorithm is SHA-1: historical consumers of the bundle
// format validate manifest entries against SHA-1 digests, so it is an
// external contract constant, not a configuration knob.
//
// The manifest is a derived artifact. Build recomputes it in full from
// the current inputs; it is never patched in place.
package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/walletpass/passkit/pass"
)

// PassEntryName is the synthetic manifest key for the serialized pass
// JSON.
const PassEntryName = "pass.json"

// Manifest maps a bundle file name to the lowercase hex SHA-1 digest of
// its content.
type Manifest map[string]string

// Build computes the manifest for the given serialized pass JSON and
// assets: one "pass.json" entry plus one entry per asset. Assets added
// under the same name earlier have already been replaced by the asset
// store, so each name hashes its latest bytes.
func Build(passJSON []byte, assets []pass.Asset) Manifest {
	m := make(Manifest, len(assets)+1)
	m[PassEntryName] = ComputeHash(passJSON)
	for _, asset := range assets {
		m[asset.Name] = ComputeHash(asset.Data)
	}
	return m
}

// Bytes renders the manifest as JSON. Keys are emitted in lexical
// order, so the same manifest content always renders to the same
// bytes. The signature binds to whatever exact bytes one run produced;
// the stable ordering is what makes reruns reproducible.
func (m Manifest) Bytes() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize manifest: %w", err)
	}
	return data, nil
}

// Parse reads a rendered manifest back from JSON.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return m, nil
}
