package pathfix

import "strings"

// ReplaceLiteral replaces every non-overlapping occurrence of oldPath with newPath.
// Matching is literal and case-sensitive. It returns the rewritten content and the replacement count.
func ReplaceLiteral(content string, oldPath string, newPath string) (string, int) {
	if len(oldPath) == 0 {
		return content, 0
	}

	occurrences := strings.Count(content, oldPath)
	if occurrences == 0 {
		return content, 0
	}

	return strings.ReplaceAll(content, oldPath, newPath), occurrences
}
