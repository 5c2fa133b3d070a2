// Package osfs is the real-disk loader.FileSystem the CLI uses, as
// opposed to memfs's in-memory one used by tests. The teacher's CLI
// layer reads scripts with a bare os.ReadFile; this keeps that same
// shape behind the loader's FileSystem seam.
package osfs

import "os"

// FS reads module source text from the local filesystem, rooted at an
// arbitrary absolute or relative path exactly as given.
type FS struct{}

// New constructs an FS.
func New() FS { return FS{} }

// ReadFile reads the file at path and returns its contents as a string.
func (FS) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
