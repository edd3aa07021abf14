// in: internal/filesystem/filesystem.go
package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Filesystem is the file access the counter needs. Tests swap in an
// in-memory implementation to simulate missing files or failing reads.
type Filesystem interface {
	Open(name string) (fs.File, error)
	Stat(name string) (fs.FileInfo, error)
	Abs(path string) (string, error)
}

// DefaultFS implements the Filesystem interface using the standard `os` and `filepath` packages.
// It represents the real, underlying filesystem of the host operating system.
type DefaultFS struct{}

func (DefaultFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

func (DefaultFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (DefaultFS) Abs(path string) (string, error) {
	return filepath.Abs(path)
}
