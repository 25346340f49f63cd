// Package audit reconciles the "Output Artifacts Checklist" section of workflow
// documents with the links listed in their "Output Artifacts" section.
//
// AnalyzeDocument, RewriteDocument, and Audit are pure functions over document
// content. Service drives discovery, reporting, and writes, and CommandBuilder
// exposes the workflow as the audit-checklists Cobra command.
package audit
