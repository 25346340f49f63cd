package pathfix_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/docmaint/internal/pathfix"
)

func TestDefaultConfigurationValues(testInstance *testing.T) {
	values := pathfix.DefaultConfigurationValues("tools.fix_paths")

	require.Equal(testInstance, "01_Machine/01_Workflow", values["tools.fix_paths.root"])
	require.Equal(testInstance, legacyPathConstant, values["tools.fix_paths.old_path"])
	require.Equal(testInstance, relocatedPathConstant, values["tools.fix_paths.new_path"])
	require.Equal(testInstance, ".md", values["tools.fix_paths.extension"])
	require.Equal(testInstance, false, values["tools.fix_paths.dry_run"])
}

func TestCommandConfigurationValidate(testInstance *testing.T) {
	testCases := []struct {
		name              string
		configuration     pathfix.CommandConfiguration
		expectedErrorText string
	}{
		{
			name:          "defaults_are_valid",
			configuration: pathfix.DefaultCommandConfiguration(),
		},
		{
			name: "empty_new_path_is_allowed",
			configuration: pathfix.CommandConfiguration{
				Root:      "docs",
				OldPath:   legacyPathConstant,
				Extension: ".md",
			},
		},
		{
			name: "missing_root",
			configuration: pathfix.CommandConfiguration{
				OldPath:   legacyPathConstant,
				NewPath:   relocatedPathConstant,
				Extension: ".md",
			},
			expectedErrorText: "Root: cannot be blank",
		},
		{
			name: "same_paths",
			configuration: pathfix.CommandConfiguration{
				Root:      "docs",
				OldPath:   legacyPathConstant,
				NewPath:   legacyPathConstant,
				Extension: ".md",
			},
			expectedErrorText: "must differ from old_path",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(subtestNameTemplateConstant, testCaseIndex, testCase.name), func(subTest *testing.T) {
			validationError := testCase.configuration.Validate()
			if len(testCase.expectedErrorText) == 0 {
				require.NoError(subTest, validationError)
				return
			}
			require.ErrorContains(subTest, validationError, testCase.expectedErrorText)
		})
	}
}
