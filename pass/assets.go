package pass

import (
	"fmt"
	"io"
)

// Asset is one named binary file attached to a pass.
type Asset struct {
	Name string
	Data []byte
}

// AssetStore is an in-memory collection of named binary assets. Adding
// a name twice replaces the earlier bytes while keeping the original
// position in the listing order.
type AssetStore struct {
	order  []string
	byName map[string][]byte
}

// Add fully reads src into memory and stores it under name. The bytes
// are materialized at add time; src is not retained, so manifest
// hashing and archive assembly both see the same repeatable bytes.
func (s *AssetStore) Add(name string, src io.Reader) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("failed to read asset %q: %w", name, err)
	}
	if s.byName == nil {
		s.byName = make(map[string][]byte)
	}
	if _, exists := s.byName[name]; !exists {
		s.order = append(s.order, name)
	}
	s.byName[name] = data
	return nil
}

// List returns all assets in insertion order.
func (s *AssetStore) List() []Asset {
	assets := make([]Asset, 0, len(s.order))
	for _, name := range s.order {
		assets = append(assets, Asset{Name: name, Data: s.byName[name]})
	}
	return assets
}

// Count returns the number of stored assets.
func (s *AssetStore) Count() int { return len(s.order) }
