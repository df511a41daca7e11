// Package filestore keeps one JSON document per concern under a data directory.
// It is the fallback backend used when the remote datastore is unavailable.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// errCorruptDocument marks a file that exists but does not decode.
var errCorruptDocument = errors.New("corrupt document")

const (
	OrdersFileName        = "orders.json"
	KitchenStatusFileName = "kitchen-status.json"
	MenuFileName          = "menu.json"
)

// readJSON decodes path into v. It reports false when the file does not exist yet.
func readJSON(path string, v any) (bool, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("%w: %s: %w", errCorruptDocument, filepath.Base(path), err)
	}
	return true, nil
}

// writeJSON replaces path atomically: readers see the old or the new document, never half of one.
func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(append(raw, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
