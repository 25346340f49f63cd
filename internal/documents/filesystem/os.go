// Package filesystem provides the operating system implementation of shared.FileSystem.
package filesystem

import (
	"errors"
	"io/fs"
	"os"
)

const defaultDocumentPermissionsConstant = fs.FileMode(0o644)

// OSFileSystem implements shared.FileSystem using the operating system primitives.
type OSFileSystem struct{}

// NewOSFileSystem constructs an OSFileSystem.
func NewOSFileSystem() OSFileSystem {
	return OSFileSystem{}
}

// Stat retrieves file metadata.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads file contents.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile replaces the file contents, keeping the permissions of an existing file.
func (fileSystem OSFileSystem) WriteFile(path string, data []byte) error {
	permissions := defaultDocumentPermissionsConstant
	fileInfo, statError := fileSystem.Stat(path)
	switch {
	case statError == nil:
		permissions = fileInfo.Mode().Perm()
	case !errors.Is(statError, fs.ErrNotExist):
		return statError
	}
	return os.WriteFile(path, data, permissions)
}
