// Package shared holds the collaborator contracts and value types used by the
// documentation maintenance tools.
package shared

import (
	"io/fs"
)

const (
	// MarkdownExtensionConstant is the file suffix scanned by default.
	MarkdownExtensionConstant = ".md"
	// LineSeparatorConstant splits and joins document content.
	LineSeparatorConstant = "\n"
)

// Document is a markdown file read into memory.
type Document struct {
	Path    string
	Content string
}

// DocumentRewrite is the replacement content computed for a document.
type DocumentRewrite struct {
	Path    string
	Content string
}

// SkippedDirectory records a subtree that could not be listed during discovery.
type SkippedDirectory struct {
	Path  string
	Error error
}

// DiscoveryResult lists discovered files in lexical order alongside skipped subtrees.
type DiscoveryResult struct {
	Files              []string
	SkippedDirectories []SkippedDirectory
}

// DocumentDiscoverer locates documents rooted under a directory.
type DocumentDiscoverer interface {
	DiscoverDocuments(root string, extension string) (DiscoveryResult, error)
}

// FileSystem exposes the file operations required by the maintenance tools.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}
