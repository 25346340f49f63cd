// Package discovery walks documentation trees and collects markdown files.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/docmaint/internal/documents/shared"
)

const (
	inspectRootErrorTemplateConstant = "unable to inspect document root %s: %w"
)

// ErrRootNotDirectory indicates the discovery root points at something other than a directory.
var ErrRootNotDirectory = errors.New("document root is not a directory")

// FilesystemDocumentDiscoverer locates documents on disk.
type FilesystemDocumentDiscoverer struct{}

// NewFilesystemDocumentDiscoverer constructs a document discoverer backed by filepath.WalkDir.
func NewFilesystemDocumentDiscoverer() *FilesystemDocumentDiscoverer {
	return &FilesystemDocumentDiscoverer{}
}

// DiscoverDocuments walks root and returns every file whose name ends with extension.
// Directories that cannot be listed are reported in SkippedDirectories and their subtree is abandoned.
func (discoverer *FilesystemDocumentDiscoverer) DiscoverDocuments(root string, extension string) (shared.DiscoveryResult, error) {
	rootInfo, statError := os.Stat(root)
	if statError != nil {
		return shared.DiscoveryResult{}, fmt.Errorf(inspectRootErrorTemplateConstant, root, statError)
	}
	if !rootInfo.IsDir() {
		return shared.DiscoveryResult{}, fmt.Errorf("%w: %s", ErrRootNotDirectory, root)
	}

	result := shared.DiscoveryResult{Files: []string{}}
	walkError := filepath.WalkDir(root, func(path string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			if directoryEntry == nil {
				return fmt.Errorf(inspectRootErrorTemplateConstant, path, walkError)
			}
			if directoryEntry.IsDir() {
				result.SkippedDirectories = append(result.SkippedDirectories, shared.SkippedDirectory{Path: path, Error: walkError})
				return fs.SkipDir
			}
			return nil
		}

		if directoryEntry.IsDir() {
			return nil
		}

		if strings.HasSuffix(directoryEntry.Name(), extension) {
			result.Files = append(result.Files, path)
		}
		return nil
	})
	if walkError != nil {
		return shared.DiscoveryResult{}, walkError
	}

	sort.Strings(result.Files)
	return result, nil
}
