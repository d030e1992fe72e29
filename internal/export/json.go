// Package export writes the catalog to disk.
//
// Every writer builds its file under a temporary name in the destination
// directory and renames it into place once complete, so a reader never sees
// a half-written catalog and a failed run leaves the previous one intact.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/inobat/internal/core"
)

// EncodeJSON writes the catalog as indented JSON: 2-space indentation,
// keys in insertion order, non-ASCII and HTML characters written literally.
func EncodeJSON(w io.Writer, db *core.Database) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(db)
}

// StageJSON encodes the catalog fully in memory and writes it to a temp file
// next to path without touching path itself.
func StageJSON(path string, db *core.Database) (*Staged, error) {
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, db); err != nil {
		return nil, fmt.Errorf("write json %s: encode: %w", path, err)
	}

	tmpName, err := stageFile(path, func(f *os.File) error {
		_, err := buf.WriteTo(f)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("write json %s: %w", path, err)
	}
	return &Staged{kind: "json", tmp: tmpName, path: path}, nil
}

// stageFile creates a temp file next to path, lets fill write it, and syncs
// it. The temp file is removed on any failure.
func stageFile(path string, fill func(f *os.File) error) (_ string, err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err = fill(tmp); err != nil {
		return "", err
	}
	if err = tmp.Sync(); err != nil {
		return "", err
	}
	if err = tmp.Close(); err != nil {
		return "", err
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return "", err
	}
	return tmpName, nil
}
