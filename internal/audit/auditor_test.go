package audit_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/docmaint/internal/audit"
	"github.com/temirov/docmaint/internal/documents/shared"
)

const (
	checklistHeaderLine = "## Output Artifacts Checklist"
	firstDocumentPath   = "/workflow/Phase 1/a.md"
	secondDocumentPath  = "/workflow/Phase 1/b.md"
	thirdDocumentPath   = "/workflow/Phase 2/c.md"
	fourthDocumentPath  = "/workflow/Phase 2/d.md"
)

func TestRewriteDocumentScenarios(testInstance *testing.T) {
	testCases := []struct {
		name            string
		content         string
		expectedContent string
	}{
		{
			name:    "inserts_at_top_without_front_matter",
			content: "## Output Artifacts\n" + sampleArtifactLineConstant + "\n",
			expectedContent: checklistHeaderLine + "\n" +
				sampleChecklistItemConstant + "\n" +
				"\n" +
				"## Output Artifacts\n" + sampleArtifactLineConstant + "\n",
		},
		{
			name:    "inserts_after_front_matter",
			content: "---\ntitle: Foo Workflow\n---\n# Heading\n## Output Artifacts\n[A](mdc:docs/a.md) - alpha\n[B](mdc:docs/b.md)\n",
			expectedContent: "---\ntitle: Foo Workflow\n---\n" +
				checklistHeaderLine + "\n" +
				"- [ ] docs/a.md — a.md: alpha (missing)\n" +
				"- [ ] docs/b.md — b.md: B (missing)\n" +
				"\n" +
				"# Heading\n## Output Artifacts\n[A](mdc:docs/a.md) - alpha\n[B](mdc:docs/b.md)\n",
		},
		{
			name:    "single_delimiter_inserts_at_top",
			content: "---\n## Output Artifacts\n[A](mdc:a.md)\n",
			expectedContent: checklistHeaderLine + "\n" +
				"- [ ] a.md — a.md: A (missing)\n" +
				"\n" +
				"---\n## Output Artifacts\n[A](mdc:a.md)\n",
		},
		{
			name:    "replaces_no_artifacts_checklist",
			content: "# Doc\n" + checklistHeaderLine + "\n" + noArtifactsChecklistLine + "\n\n## Output Artifacts\n" + sampleArtifactLineConstant + "\n",
			expectedContent: "# Doc\n" +
				checklistHeaderLine + "\n" +
				sampleChecklistItemConstant + "\n" +
				"\n" +
				"## Output Artifacts\n" + sampleArtifactLineConstant + "\n",
		},
		{
			name:    "reuses_empty_checklist_header",
			content: checklistHeaderLine + "\n\n## Output Artifacts\n[A](mdc:a.md)\n",
			expectedContent: checklistHeaderLine + "\n" +
				"- [ ] a.md — a.md: A (missing)\n" +
				"\n" +
				"## Output Artifacts\n[A](mdc:a.md)\n",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(subtestNameTemplateConstant, testCaseIndex, testCase.name), func(subTest *testing.T) {
			document := shared.Document{Path: firstDocumentPath, Content: testCase.content}
			analysis := audit.AnalyzeDocument(document)
			require.True(subTest, analysis.NeedsUpdate)

			originalLines := shared.SplitLines(testCase.content)
			snapshot := append([]string{}, originalLines...)

			rewrittenLines := audit.RewriteDocument(originalLines, analysis)

			require.Equal(subTest, testCase.expectedContent, shared.JoinLines(rewrittenLines))
			require.Equal(subTest, snapshot, originalLines)
		})
	}
}

func TestAuditAggregatesDocuments(testInstance *testing.T) {
	missingChecklistContent := "## Output Artifacts\n" + sampleArtifactLineConstant + "\n"
	correctContent := checklistHeaderLine + "\n" + sampleChecklistItemConstant + "\n\n## Output Artifacts\n" + sampleArtifactLineConstant + "\n"
	noArtifactsContent := "# Plain document\n"
	incorrectContent := checklistHeaderLine + "\n" + noArtifactsChecklistLine + "\n\n## Output Artifacts\n" + sampleArtifactLineConstant + "\n"

	result := audit.Audit([]shared.Document{
		{Path: firstDocumentPath, Content: missingChecklistContent},
		{Path: secondDocumentPath, Content: correctContent},
		{Path: thirdDocumentPath, Content: noArtifactsContent},
		{Path: fourthDocumentPath, Content: incorrectContent},
	})

	require.Len(testInstance, result.Analyses, 4)
	require.Equal(testInstance, audit.StatusMissingChecklist, result.Analyses[0].Status)
	require.Equal(testInstance, audit.StatusCorrect, result.Analyses[1].Status)
	require.Equal(testInstance, audit.StatusNoArtifacts, result.Analyses[2].Status)
	require.Equal(testInstance, audit.StatusIncorrectNoArtifacts, result.Analyses[3].Status)

	require.Equal(testInstance, 4, result.Counters.TotalFiles)
	require.Equal(testInstance, 1, result.Counters.CorrectChecklists)
	require.Equal(testInstance, 1, result.Counters.IncorrectChecklists)
	require.Equal(testInstance, 1, result.Counters.MissingChecklists)
	require.Equal(testInstance, 0, result.Counters.UpdatedFiles)
	require.Empty(testInstance, result.Counters.Errors)

	expectedRewrite := checklistHeaderLine + "\n" + sampleChecklistItemConstant + "\n\n## Output Artifacts\n" + sampleArtifactLineConstant + "\n"
	require.Equal(testInstance, []shared.DocumentRewrite{
		{Path: firstDocumentPath, Content: expectedRewrite},
		{Path: fourthDocumentPath, Content: expectedRewrite},
	}, result.Rewrites)
	require.Equal(testInstance, 2, result.FilesNeedingUpdate())
}

func TestAuditIsStableAfterRewrite(testInstance *testing.T) {
	firstPass := audit.Audit([]shared.Document{{Path: firstDocumentPath, Content: "---\ntitle: X\n---\n## Output Artifacts\n[A](mdc:a.md): alpha\n"}})
	require.Len(testInstance, firstPass.Rewrites, 1)

	secondPass := audit.Audit([]shared.Document{{Path: firstDocumentPath, Content: firstPass.Rewrites[0].Content}})
	require.Empty(testInstance, secondPass.Rewrites)
	require.Equal(testInstance, audit.StatusCorrect, secondPass.Analyses[0].Status)
}

func TestAuditOfEmptyInput(testInstance *testing.T) {
	result := audit.Audit(nil)
	require.Empty(testInstance, result.Analyses)
	require.Empty(testInstance, result.Rewrites)
	require.Equal(testInstance, 0, result.Counters.TotalFiles)
}
