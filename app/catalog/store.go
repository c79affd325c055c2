package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

const CurrentVersion = 1

// Store reads and writes the persisted catalog document.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the catalog file. A missing file is not an error; it yields
// an empty catalog so the first run can bootstrap the document.
func (s *Store) Load() (*Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Catalog{Version: CurrentVersion}, nil
		}
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if catalog.Version == 0 {
		catalog.Version = CurrentVersion
	}

	return &catalog, nil
}

// Save rewrites the catalog file in full.
func (s *Store) Save(catalog *Catalog) error {
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	if err := os.WriteFile(s.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}

	return nil
}
