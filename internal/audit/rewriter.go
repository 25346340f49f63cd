package audit

import (
	"strings"
)

const frontMatterDelimiterConstant = "---"

// RewriteDocument returns lines with the checklist section replaced by the proposed checklist.
// A missing checklist is inserted after the front matter, or at the top when there is none.
// The input slice is not modified.
func RewriteDocument(lines []string, analysis FileAnalysis) []string {
	checklistBlock := make([]string, 0, len(analysis.ProposedChecklist)+2)
	checklistBlock = append(checklistBlock, ChecklistHeaderConstant)
	checklistBlock = append(checklistBlock, analysis.ProposedChecklist...)
	checklistBlock = append(checklistBlock, "")

	var replaceStart, replaceEnd int
	if analysis.ChecklistLine == missingLineIndexConstant || analysis.ChecklistLine >= len(lines) {
		replaceStart = frontMatterEnd(lines)
		replaceEnd = replaceStart
	} else {
		replaceStart = analysis.ChecklistLine
		replaceEnd = checklistSectionEnd(lines, analysis.ChecklistLine)
	}

	rewritten := make([]string, 0, len(lines)-(replaceEnd-replaceStart)+len(checklistBlock))
	rewritten = append(rewritten, lines[:replaceStart]...)
	rewritten = append(rewritten, checklistBlock...)
	rewritten = append(rewritten, lines[replaceEnd:]...)
	return rewritten
}

// frontMatterEnd returns the index following the second delimiter line, or 0 when fewer than two exist.
func frontMatterEnd(lines []string) int {
	delimiterSeen := false
	for lineIndex, line := range lines {
		if trimLine(line) != frontMatterDelimiterConstant {
			continue
		}
		if delimiterSeen {
			return lineIndex + 1
		}
		delimiterSeen = true
	}
	return 0
}

func checklistSectionEnd(lines []string, headerLine int) int {
	endLine := headerLine + 1
	for endLine < len(lines) && !strings.HasPrefix(lines[endLine], headerMarkerConstant) {
		endLine++
	}
	return endLine
}
