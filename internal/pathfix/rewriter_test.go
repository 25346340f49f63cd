package pathfix_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/docmaint/internal/pathfix"
)

const (
	subtestNameTemplateConstant = "%d_%s"
	legacyPathConstant          = "01_Machine/04_Documentation/Doc/"
	relocatedPathConstant       = "01_Machine/04_Documentation/vision/"
)

func TestReplaceLiteral(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		content              string
		oldPath              string
		newPath              string
		expectedContent      string
		expectedReplacements int
	}{
		{
			name:                 "replaces_every_occurrence",
			content:              "[a](mdc:" + legacyPathConstant + "a.md) and [b](mdc:" + legacyPathConstant + "b.md)\n",
			oldPath:              legacyPathConstant,
			newPath:              relocatedPathConstant,
			expectedContent:      "[a](mdc:" + relocatedPathConstant + "a.md) and [b](mdc:" + relocatedPathConstant + "b.md)\n",
			expectedReplacements: 2,
		},
		{
			name:                 "leaves_content_without_matches",
			content:              "nothing to see\r\nhere\n",
			oldPath:              legacyPathConstant,
			newPath:              relocatedPathConstant,
			expectedContent:      "nothing to see\r\nhere\n",
			expectedReplacements: 0,
		},
		{
			name:                 "treats_old_path_literally",
			content:              "a.b.c and a*b*c",
			oldPath:              "a.b",
			newPath:              "x",
			expectedContent:      "x.c and a*b*c",
			expectedReplacements: 1,
		},
		{
			name:                 "matches_substrings_without_boundaries",
			content:              "prefix" + legacyPathConstant + "suffix",
			oldPath:              legacyPathConstant,
			newPath:              relocatedPathConstant,
			expectedContent:      "prefix" + relocatedPathConstant + "suffix",
			expectedReplacements: 1,
		},
		{
			name:                 "empty_old_path_is_a_no_op",
			content:              "unchanged",
			oldPath:              "",
			newPath:              relocatedPathConstant,
			expectedContent:      "unchanged",
			expectedReplacements: 0,
		},
		{
			name:                 "non_overlapping_left_to_right",
			content:              "aaa",
			oldPath:              "aa",
			newPath:              "b",
			expectedContent:      "ba",
			expectedReplacements: 1,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(subtestNameTemplateConstant, testCaseIndex, testCase.name), func(subTest *testing.T) {
			rewrittenContent, replacements := pathfix.ReplaceLiteral(testCase.content, testCase.oldPath, testCase.newPath)
			require.Equal(subTest, testCase.expectedContent, rewrittenContent)
			require.Equal(subTest, testCase.expectedReplacements, replacements)
		})
	}
}

func TestReplaceLiteralIsIdempotentWhenNewPathExcludesOldPath(testInstance *testing.T) {
	content := "see " + legacyPathConstant + "intro.md\n"

	firstPass, firstReplacements := pathfix.ReplaceLiteral(content, legacyPathConstant, relocatedPathConstant)
	secondPass, secondReplacements := pathfix.ReplaceLiteral(firstPass, legacyPathConstant, relocatedPathConstant)

	require.Equal(testInstance, 1, firstReplacements)
	require.Equal(testInstance, 0, secondReplacements)
	require.Equal(testInstance, firstPass, secondPass)
}
