package audit

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/adrg/frontmatter"

	"github.com/temirov/docmaint/internal/documents/shared"
)

const (
	// ChecklistHeaderConstant is the exact header text of the checklist section.
	ChecklistHeaderConstant = "## Output Artifacts Checklist"
	// NoArtifactsMarkerConstant marks a checklist written for a document without artifacts.
	NoArtifactsMarkerConstant        = "No Output Artifacts section found"
	noArtifactsChecklistLineConstant = "- _" + NoArtifactsMarkerConstant + "_"
	checklistItemTemplateConstant    = "- [ ] %s — %s: %s (%s)"
	checklistItemStatusConstant      = "missing"
	headerMarkerConstant             = "#"
	sectionHeaderMarkerConstant      = "##"
	unknownPhaseConstant             = "Unknown"
	missingLineIndexConstant         = -1
	byteOrderMarkConstant            = '\uFEFF'
)

var (
	artifactsHeaderPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^##?\s*Output\s*Arteits?$`),
		regexp.MustCompile(`(?i)^##?\s*Output\s*Artifacts$`),
	}
	artifactLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\(mdc:([^)]+)\)(?:\s*[:-]\s*(.+))?`)
	phasePattern        = regexp.MustCompile(`(?i)Phase\s*(\d+|0\s*:\s*Project\s*Setup)`)
)

type frontMatterFields struct {
	Title string `yaml:"title"`
}

// AnalyzeDocument classifies a document and proposes a checklist when it needs one.
func AnalyzeDocument(document shared.Document) FileAnalysis {
	lines := shared.SplitLines(document.Content)

	analysis := FileAnalysis{
		Path:          document.Path,
		FileName:      filepath.Base(document.Path),
		Phase:         ExtractPhase(document.Path),
		Title:         extractTitle(document.Content),
		ChecklistLine: missingLineIndexConstant,
		ArtifactsLine: missingLineIndexConstant,
		Artifacts:     []ArtifactEntry{},
	}

	findChecklist(lines, &analysis)
	findArtifacts(lines, &analysis)

	analysis.Status = determineStatus(analysis)
	analysis.NeedsUpdate = analysis.Status.NeedsUpdate()
	if analysis.NeedsUpdate {
		analysis.ProposedChecklist = ProposeChecklist(analysis.Artifacts)
	}

	return analysis
}

// ExtractPhase returns the phase label embedded in a document path, or "Unknown".
func ExtractPhase(documentPath string) string {
	phase := phasePattern.FindString(documentPath)
	if len(phase) == 0 {
		return unknownPhaseConstant
	}
	return phase
}

// ProposeChecklist renders one unchecked item per artifact entry.
func ProposeChecklist(artifacts []ArtifactEntry) []string {
	if len(artifacts) == 0 {
		return []string{noArtifactsChecklistLineConstant}
	}

	proposed := make([]string, 0, len(artifacts))
	for _, artifact := range artifacts {
		proposed = append(proposed, formatChecklistItem(artifact))
	}
	return proposed
}

// ChecklistMatchesArtifacts reports whether a checklist counts as synchronized.
// Only the presence of artifacts and the absence of the no-artifacts marker are
// checked; checklist items are not compared with the artifact entries.
func ChecklistMatchesArtifacts(checklist []string, artifacts []ArtifactEntry) bool {
	if checklist == nil || len(artifacts) == 0 {
		return false
	}
	return !containsNoArtifactsMarker(checklist)
}

func formatChecklistItem(artifact ArtifactEntry) string {
	return fmt.Sprintf(checklistItemTemplateConstant, artifact.Path, path.Base(artifact.Path), artifact.Description, checklistItemStatusConstant)
}

func findChecklist(lines []string, analysis *FileAnalysis) {
	for lineIndex, line := range lines {
		if trimLine(line) != ChecklistHeaderConstant {
			continue
		}

		analysis.ChecklistLine = lineIndex
		for bodyIndex := lineIndex + 1; bodyIndex < len(lines) && !strings.HasPrefix(lines[bodyIndex], headerMarkerConstant); bodyIndex++ {
			bodyLine := trimLine(lines[bodyIndex])
			if len(bodyLine) == 0 || strings.HasPrefix(bodyLine, sectionHeaderMarkerConstant) {
				continue
			}
			analysis.Checklist = append(analysis.Checklist, bodyLine)
		}
		return
	}
}

func findArtifacts(lines []string, analysis *FileAnalysis) {
	inArtifactsSection := false
	sectionStart := missingLineIndexConstant

	for lineIndex, rawLine := range lines {
		line := trimLine(rawLine)

		if isArtifactsHeader(line) {
			inArtifactsSection = true
			sectionStart = lineIndex
			analysis.ArtifactsLine = lineIndex
			analysis.ArtifactsHeader = line
			continue
		}

		if !inArtifactsSection {
			continue
		}

		if strings.HasPrefix(line, headerMarkerConstant) && lineIndex > sectionStart+1 {
			return
		}

		if artifact, matched := parseArtifactLine(line); matched {
			analysis.Artifacts = append(analysis.Artifacts, artifact)
		}
	}
}

func isArtifactsHeader(line string) bool {
	for _, headerPattern := range artifactsHeaderPatterns {
		if headerPattern.MatchString(line) {
			return true
		}
	}
	return false
}

func parseArtifactLine(line string) (ArtifactEntry, bool) {
	submatches := artifactLinkPattern.FindStringSubmatch(line)
	if submatches == nil {
		return ArtifactEntry{}, false
	}

	description := submatches[3]
	if len(description) == 0 {
		description = submatches[1]
	}

	return ArtifactEntry{
		Title:        submatches[1],
		Path:         submatches[2],
		Description:  description,
		OriginalLine: line,
	}, true
}

func determineStatus(analysis FileAnalysis) Status {
	switch {
	case analysis.Checklist == nil && len(analysis.Artifacts) == 0:
		return StatusNoArtifacts
	case analysis.Checklist == nil:
		return StatusMissingChecklist
	case len(analysis.Artifacts) == 0:
		return StatusNoActualArtifacts
	case containsNoArtifactsMarker(analysis.Checklist):
		return StatusIncorrectNoArtifacts
	case ChecklistMatchesArtifacts(analysis.Checklist, analysis.Artifacts):
		return StatusCorrect
	default:
		return StatusNeedsSync
	}
}

func containsNoArtifactsMarker(checklist []string) bool {
	for _, checklistLine := range checklist {
		if strings.Contains(checklistLine, NoArtifactsMarkerConstant) {
			return true
		}
	}
	return false
}

// extractTitle reads the title field of a leading front matter block; malformed blocks yield no title.
func extractTitle(content string) string {
	var fields frontMatterFields
	if _, parseError := frontmatter.Parse(strings.NewReader(content), &fields); parseError != nil {
		return ""
	}
	return strings.TrimSpace(fields.Title)
}

func trimLine(line string) string {
	return strings.TrimFunc(line, func(character rune) bool {
		return unicode.IsSpace(character) || character == byteOrderMarkConstant
	})
}
