package audit

import (
	"strings"

	"github.com/temirov/docmaint/internal/documents/shared"
)

const (
	reportRuleWidthConstant               = 60
	reportRuleCharacterConstant           = "="
	auditReportTitleConstant              = "📊 OUTPUT ARTIFACTS CHECKLIST AUDIT REPORT\n"
	summaryStatisticsHeaderConstant       = "\n📈 SUMMARY STATISTICS:\n"
	summaryTotalTemplateConstant          = "   Total Files Analyzed: %d\n"
	summaryCorrectTemplateConstant        = "   ✅ Correct Checklists: %d\n"
	summaryIncorrectTemplateConstant      = "   ❌ Incorrect Checklists: %d\n"
	summaryMissingTemplateConstant        = "   📝 Missing Checklists: %d\n"
	summaryNeedingUpdateTemplateConstant  = "   🔧 Files Needing Updates: %d\n"
	breakdownHeaderConstant               = "\n📋 DETAILED BREAKDOWN:\n"
	breakdownLineTemplateConstant         = "   %s %s: %d files\n"
	updatesHeaderConstant                 = "\n🔧 FILES REQUIRING UPDATES:\n"
	updateFileTemplateConstant            = "   %s %s\n"
	updatePhaseTemplateConstant           = "      Phase: %s\n"
	updateTitleTemplateConstant           = "      Title: %s\n"
	updateStatusTemplateConstant          = "      Status: %s\n"
	updateArtifactsTemplateConstant       = "      Artifacts Found: %d\n"
	updateProposedTemplateConstant        = "      Proposed Checklist: %d items\n"
	errorsHeaderConstant                  = "\n❌ ERRORS ENCOUNTERED:\n"
	errorLineTemplateConstant             = "   • %s\n"
	finalReportTitleConstant              = "✅ AUDIT COMPLETE - FINAL RESULTS\n"
	finalStatisticsHeaderConstant         = "\n📊 FINAL STATISTICS:\n"
	finalProcessedTemplateConstant        = "   Total Files Processed: %d\n"
	finalUpdatedTemplateConstant          = "   Files Updated: %d\n"
	finalErrorsTemplateConstant           = "   Errors Encountered: %d\n"
	finalSuccessMessageConstant           = "\n🎉 SUCCESS: All Output Artifacts Checklists have been audited and updated!\n"
	finalCompletedWithErrorsConstant      = "\n⚠️  COMPLETED WITH ERRORS: Some issues were encountered during the audit.\n"
	finalDryRunMessageConstant            = "\n📝 DRY RUN: checklists were audited; no files were written.\n"
	nextStepsHeaderConstant               = "\n📝 NEXT STEPS:\n"
	reportLineFeedConstant                = "\n"
	reportRuleTemplateConstant            = "%s\n"
	reportLeadingRuleTemplateConstant     = "\n%s\n"
	reportLinePassthroughTemplateConstant = "%s\n"
)

var nextSteps = []string{
	"   1. Review the updated files to ensure accuracy",
	"   2. Verify that all MDC links are working correctly",
	"   3. Update any missing documentation artifacts",
	"   4. Consider running this audit periodically to maintain consistency",
}

type statusCount struct {
	status Status
	count  int
}

// countStatuses tallies analyses by status, ordered by first appearance.
func countStatuses(analyses []FileAnalysis) []statusCount {
	counts := []statusCount{}
	positions := map[Status]int{}
	for _, analysis := range analyses {
		position, seen := positions[analysis.Status]
		if !seen {
			positions[analysis.Status] = len(counts)
			counts = append(counts, statusCount{status: analysis.Status, count: 1})
			continue
		}
		counts[position].count++
	}
	return counts
}

func reportRule() string {
	return strings.Repeat(reportRuleCharacterConstant, reportRuleWidthConstant)
}

// printAuditReport writes the pre-update report.
func printAuditReport(reporter shared.Reporter, result AuditResult) {
	counters := result.Counters
	reporter.Printf(reportLeadingRuleTemplateConstant, reportRule())
	reporter.Printf(auditReportTitleConstant)
	reporter.Printf(reportRuleTemplateConstant, reportRule())

	reporter.Printf(summaryStatisticsHeaderConstant)
	reporter.Printf(summaryTotalTemplateConstant, counters.TotalFiles)
	reporter.Printf(summaryCorrectTemplateConstant, counters.CorrectChecklists)
	reporter.Printf(summaryIncorrectTemplateConstant, counters.IncorrectChecklists)
	reporter.Printf(summaryMissingTemplateConstant, counters.MissingChecklists)
	reporter.Printf(summaryNeedingUpdateTemplateConstant, result.FilesNeedingUpdate())

	reporter.Printf(breakdownHeaderConstant)
	for _, entry := range countStatuses(result.Analyses) {
		reporter.Printf(breakdownLineTemplateConstant, entry.status.Glyph(), entry.status.Label(), entry.count)
	}

	if result.FilesNeedingUpdate() > 0 {
		reporter.Printf(updatesHeaderConstant)
		for _, analysis := range result.Analyses {
			if !analysis.NeedsUpdate {
				continue
			}
			reporter.Printf(updateFileTemplateConstant, analysis.Status.Glyph(), analysis.FileName)
			reporter.Printf(updatePhaseTemplateConstant, analysis.Phase)
			if len(analysis.Title) > 0 {
				reporter.Printf(updateTitleTemplateConstant, analysis.Title)
			}
			reporter.Printf(updateStatusTemplateConstant, analysis.Status)
			reporter.Printf(updateArtifactsTemplateConstant, len(analysis.Artifacts))
			if len(analysis.ProposedChecklist) > 0 {
				reporter.Printf(updateProposedTemplateConstant, len(analysis.ProposedChecklist))
			}
			reporter.Printf(reportLineFeedConstant)
		}
	}

	printErrors(reporter, counters.Errors)
}

// printFinalReport writes the post-update report.
func printFinalReport(reporter shared.Reporter, counters Counters, dryRun bool) {
	reporter.Printf(reportLeadingRuleTemplateConstant, reportRule())
	reporter.Printf(finalReportTitleConstant)
	reporter.Printf(reportRuleTemplateConstant, reportRule())

	reporter.Printf(finalStatisticsHeaderConstant)
	reporter.Printf(finalProcessedTemplateConstant, counters.TotalFiles)
	reporter.Printf(finalUpdatedTemplateConstant, counters.UpdatedFiles)
	reporter.Printf(finalErrorsTemplateConstant, len(counters.Errors))

	switch {
	case len(counters.Errors) > 0:
		reporter.Printf(finalCompletedWithErrorsConstant)
	case dryRun:
		reporter.Printf(finalDryRunMessageConstant)
	default:
		reporter.Printf(finalSuccessMessageConstant)
	}

	reporter.Printf(nextStepsHeaderConstant)
	for _, nextStep := range nextSteps {
		reporter.Printf(reportLinePassthroughTemplateConstant, nextStep)
	}

	reporter.Printf(reportLeadingRuleTemplateConstant, reportRule())
}

func printErrors(reporter shared.Reporter, errors []string) {
	if len(errors) == 0 {
		return
	}
	reporter.Printf(errorsHeaderConstant)
	for _, message := range errors {
		reporter.Printf(errorLineTemplateConstant, message)
	}
}
