package store

import (
	"errors"
	"os"
	"path/filepath"
)

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

// WriteFileAtomic writes b to path through a sibling temp file. An existing
// file is refused unless overwrite is set.
func WriteFileAtomic(path string, b []byte, overwrite bool) error {
	path = filepath.Clean(path)
	if path == "" || path == "." {
		return errors.New("write file: missing path")
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return &os.PathError{Op: "write", Path: path, Err: os.ErrExist}
		}
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return atomicWriteFile(dir, "."+filepath.Base(path)+".*.tmp", path, b, 0o644)
}
