package audit

import (
	"github.com/temirov/docmaint/internal/documents/shared"
)

// Audit analyzes documents in order and returns their classifications, counters,
// and the rewritten content of every document needing an update.
func Audit(documents []shared.Document) AuditResult {
	accumulator := newAuditAccumulator()
	for _, document := range documents {
		accumulator.record(document)
	}
	return accumulator.result()
}

type auditAccumulator struct {
	analyses []FileAnalysis
	counters Counters
	rewrites []shared.DocumentRewrite
}

func newAuditAccumulator() *auditAccumulator {
	return &auditAccumulator{
		analyses: []FileAnalysis{},
		counters: Counters{Errors: []string{}},
		rewrites: []shared.DocumentRewrite{},
	}
}

func (accumulator *auditAccumulator) record(document shared.Document) FileAnalysis {
	analysis := AnalyzeDocument(document)
	accumulator.analyses = append(accumulator.analyses, analysis)

	accumulator.counters.TotalFiles++
	switch analysis.Status {
	case StatusCorrect:
		accumulator.counters.CorrectChecklists++
	case StatusIncorrectNoArtifacts, StatusNeedsSync:
		accumulator.counters.IncorrectChecklists++
	case StatusMissingChecklist:
		accumulator.counters.MissingChecklists++
	}

	if analysis.NeedsUpdate {
		rewrittenLines := RewriteDocument(shared.SplitLines(document.Content), analysis)
		accumulator.rewrites = append(accumulator.rewrites, shared.DocumentRewrite{
			Path:    document.Path,
			Content: shared.JoinLines(rewrittenLines),
		})
	}

	return analysis
}

func (accumulator *auditAccumulator) recordError(message string) {
	accumulator.counters.Errors = append(accumulator.counters.Errors, message)
}

func (accumulator *auditAccumulator) result() AuditResult {
	counters := accumulator.counters
	counters.Errors = append([]string{}, accumulator.counters.Errors...)
	return AuditResult{
		Analyses: append([]FileAnalysis{}, accumulator.analyses...),
		Counters: counters,
		Rewrites: append([]shared.DocumentRewrite{}, accumulator.rewrites...),
	}
}
