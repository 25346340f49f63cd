package shared

import "strings"

// SplitLines splits content on the line separator without dropping a trailing empty line.
func SplitLines(content string) []string {
	return strings.Split(content, LineSeparatorConstant)
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, LineSeparatorConstant)
}
