package audit

import (
	"strings"

	"github.com/temirov/docmaint/internal/documents/shared"
)

// Status classifies a document's checklist against its artifacts section.
type Status string

// Supported checklist statuses.
const (
	StatusNoArtifacts          Status = "no_artifacts"
	StatusMissingChecklist     Status = "missing_checklist"
	StatusNoActualArtifacts    Status = "no_actual_artifacts"
	StatusIncorrectNoArtifacts Status = "incorrect_no_artifacts"
	StatusNeedsSync            Status = "needs_sync"
	StatusCorrect              Status = "correct"
)

const (
	statusGlyphCorrectConstant              = "✅"
	statusGlyphIncorrectNoArtifactsConstant = "❌"
	statusGlyphNeedsSyncConstant            = "⚠️"
	statusGlyphMissingChecklistConstant     = "📝"
	statusGlyphNoArtifactsConstant          = "⚪"
	statusGlyphNoActualArtifactsConstant    = "🔍"
	statusGlyphUnknownConstant              = "❓"
	statusWordSeparatorConstant             = "_"
	statusLabelSeparatorConstant            = " "
)

// NeedsUpdate reports whether documents with this status have their checklist regenerated.
func (status Status) NeedsUpdate() bool {
	switch status {
	case StatusMissingChecklist, StatusIncorrectNoArtifacts, StatusNeedsSync:
		return true
	default:
		return false
	}
}

// Glyph returns the console icon for the status.
func (status Status) Glyph() string {
	switch status {
	case StatusCorrect:
		return statusGlyphCorrectConstant
	case StatusIncorrectNoArtifacts:
		return statusGlyphIncorrectNoArtifactsConstant
	case StatusNeedsSync:
		return statusGlyphNeedsSyncConstant
	case StatusMissingChecklist:
		return statusGlyphMissingChecklistConstant
	case StatusNoArtifacts:
		return statusGlyphNoArtifactsConstant
	case StatusNoActualArtifacts:
		return statusGlyphNoActualArtifactsConstant
	default:
		return statusGlyphUnknownConstant
	}
}

// Label returns the status with underscores replaced by spaces.
func (status Status) Label() string {
	return strings.ReplaceAll(string(status), statusWordSeparatorConstant, statusLabelSeparatorConstant)
}

// ArtifactEntry is a link extracted from an artifacts section.
type ArtifactEntry struct {
	Title        string
	Path         string
	Description  string
	OriginalLine string
}

// FileAnalysis captures the classification of a single document.
type FileAnalysis struct {
	Path     string
	FileName string
	Phase    string
	Title    string
	// ChecklistLine is the zero-based index of the checklist header, or -1 when absent.
	ChecklistLine int
	// Checklist holds the trimmed checklist body lines; nil when the section is absent or empty.
	Checklist []string
	// ArtifactsLine is the zero-based index of the last artifacts header seen, or -1 when absent.
	ArtifactsLine     int
	ArtifactsHeader   string
	Artifacts         []ArtifactEntry
	Status            Status
	NeedsUpdate       bool
	ProposedChecklist []string
}

// Counters aggregates audit statistics.
type Counters struct {
	TotalFiles          int
	CorrectChecklists   int
	IncorrectChecklists int
	MissingChecklists   int
	UpdatedFiles        int
	Errors              []string
}

// AuditResult is the outcome of auditing a set of documents.
type AuditResult struct {
	Analyses []FileAnalysis
	Counters Counters
	Rewrites []shared.DocumentRewrite
}

// FilesNeedingUpdate returns the number of analyses whose checklist will be regenerated.
func (result AuditResult) FilesNeedingUpdate() int {
	return len(result.Rewrites)
}

// Options configures a single audit run.
type Options struct {
	Root      string
	Extension string
	DryRun    bool
}

// RunResult summarizes a completed audit run.
type RunResult struct {
	Audit              AuditResult
	Counters           Counters
	SkippedDirectories []shared.SkippedDirectory
	DryRun             bool
}
