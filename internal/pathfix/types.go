package pathfix

import "github.com/temirov/docmaint/internal/documents/shared"

// Options configures a single fix-paths run.
type Options struct {
	Root      string
	OldPath   string
	NewPath   string
	Extension string
	DryRun    bool
}

// FileUpdate records a document containing the old path.
type FileUpdate struct {
	Path         string
	Replacements int
}

// FileFailure records a document that could not be read or written.
type FileFailure struct {
	Path  string
	Error error
}

// RunResult summarizes a fix-paths run.
type RunResult struct {
	FilesScanned       int
	TotalReplacements  int
	Updates            []FileUpdate
	Failures           []FileFailure
	SkippedDirectories []shared.SkippedDirectory
	DryRun             bool
}

// FilesUpdated returns the number of documents rewritten, or that would be rewritten in a dry run.
func (result RunResult) FilesUpdated() int {
	return len(result.Updates)
}

// UnchangedFiles returns the number of scanned documents left untouched without error.
func (result RunResult) UnchangedFiles() int {
	return result.FilesScanned - len(result.Updates) - len(result.Failures)
}
