// Package fileutil provides size-limited reads and atomic writes for content files.
package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// DefaultFilePerm is used when replacing a file that does not exist yet.
const DefaultFilePerm fs.FileMode = 0o644

// ReplaceFile atomically replaces the file at path with data, keeping the
// permissions of the existing file. Readers see either the old or the new
// content, never a partial write.
func ReplaceFile(path string, data []byte) error {
	perm := DefaultFilePerm
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "inspecting %s", path)
	}

	// The temp file must live in the same directory for rename to be atomic
	tmp, err := os.CreateTemp(filepath.Dir(path), ".matter-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "replacing %s", path)
	}

	committed = true
	return nil
}
