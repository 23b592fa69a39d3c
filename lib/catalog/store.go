package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store reads and rewrites the catalog file. Commit replaces the whole
// file on every call, the driver invokes it after each model it updates so
// a crash mid-run loses at most the in-flight model.
type Store struct {
	path string
}

func NewStore(path string) Store {
	return Store{path: path}
}

// Load reads the catalog. A missing or unparseable file is an error the
// caller must treat as fatal, there is no safe baseline to diff against
// without it.
func (s Store) Load() (Catalog, error) {
	contents, err := os.ReadFile(s.path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog %s: %w", s.path, err)
	}
	var cat Catalog
	err = json.Unmarshal(contents, &cat)
	if err != nil {
		return Catalog{}, fmt.Errorf("parse catalog %s: %w", s.path, err)
	}
	return cat, nil
}

// Commit serializes the catalog and atomically replaces the file by
// writing a sibling temp file and renaming it over the target. A failed
// commit never leaves the catalog truncated.
func (s Store) Commit(cat Catalog) error {
	contents, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	contents = append(contents, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}

	_, err = tmp.Write(contents)
	if err == nil {
		err = tmp.Sync()
	}
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write catalog: %w", err)
	}

	err = os.Rename(tmp.Name(), s.path)
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}
