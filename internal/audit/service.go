package audit

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/docmaint/internal/documents/shared"
)

const (
	startingMessageConstant            = "🔍 Starting Output Artifacts Checklist Audit...\n\n"
	skippedDirectoryTemplateConstant   = "⚠️  Warning: Could not scan directory %s: %v\n"
	foundFilesTemplateConstant         = "📁 Found %d workflow files to analyze\n\n"
	progressTemplateConstant           = "%s %s - %s\n"
	analysisFailureTemplateConstant    = "❌ Error analyzing %s: %v\n"
	analysisErrorTemplateConstant      = "File analysis error (%s): %v"
	nothingToUpdateMessageConstant     = "\n✅ No files need updates. All checklists are correct!\n"
	updatingHeaderTemplateConstant     = "\n🔧 UPDATING %d FILES...\n\n"
	plannedHeaderTemplateConstant      = "\n📝 DRY RUN: %d FILES WOULD BE UPDATED...\n\n"
	updatedFileTemplateConstant        = "✅ Updated: %s\n"
	plannedFileTemplateConstant        = "📝 Would update: %s\n"
	updateFailureTemplateConstant      = "❌ Failed to update %s: %v\n"
	updateErrorTemplateConstant        = "Update error (%s): %v"
	discoveryErrorTemplateConstant     = "document discovery failed: %w"
	runStartedLogMessageConstant       = "checklist audit started"
	runCompletedLogMessageConstant     = "checklist audit completed"
	documentAnalyzedLogMessageConstant = "document analyzed"
	documentFailedLogMessageConstant   = "document analysis failed"
	documentUpdatedLogMessageConstant  = "checklist rewritten"
	updateFailedLogMessageConstant     = "checklist rewrite failed"
	directorySkippedLogMessageConstant = "directory skipped"
	rootFieldNameConstant              = "root"
	documentFieldNameConstant          = "document"
	directoryFieldNameConstant         = "directory"
	statusFieldNameConstant            = "status"
	artifactsFieldNameConstant         = "artifacts"
	phaseFieldNameConstant             = "phase"
	dryRunFieldNameConstant            = "dry_run"
	totalFilesFieldNameConstant        = "total_files"
	updatedFilesFieldNameConstant      = "updated_files"
	errorCountFieldNameConstant        = "errors"
	discovererMissingMessageConstant   = "document discoverer not configured"
	fileSystemMissingMessageConstant   = "file system not configured"
	rootRequiredMessageConstant        = "workflow root must be provided"
)

var (
	errDiscovererMissing = errors.New(discovererMissingMessageConstant)
	errFileSystemMissing = errors.New(fileSystemMissingMessageConstant)
	errRootRequired      = errors.New(rootRequiredMessageConstant)
)

// ServiceDependencies describes the collaborators required by Service.
type ServiceDependencies struct {
	Discoverer shared.DocumentDiscoverer
	FileSystem shared.FileSystem
	Reporter   shared.Reporter
	Logger     *zap.Logger
}

// Service audits and repairs checklist sections across a workflow tree.
type Service struct {
	discoverer shared.DocumentDiscoverer
	fileSystem shared.FileSystem
	reporter   shared.Reporter
	logger     *zap.Logger
}

// NewService constructs a Service with the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Discoverer == nil {
		return nil, errDiscovererMissing
	}
	if dependencies.FileSystem == nil {
		return nil, errFileSystemMissing
	}

	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil, nil)
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		discoverer: dependencies.Discoverer,
		fileSystem: dependencies.FileSystem,
		reporter:   reporter,
		logger:     logger,
	}, nil
}

// Run discovers documents under options.Root, reports their checklist status, and
// rewrites every checklist that needs an update. Per-document failures are recorded
// in the counters; only discovery failures abort the run.
func (service *Service) Run(_ context.Context, options Options) (RunResult, error) {
	if len(strings.TrimSpace(options.Root)) == 0 {
		return RunResult{}, errRootRequired
	}

	extension := options.Extension
	if len(extension) == 0 {
		extension = shared.MarkdownExtensionConstant
	}

	service.logger.Info(runStartedLogMessageConstant,
		zap.String(rootFieldNameConstant, options.Root),
		zap.Bool(dryRunFieldNameConstant, options.DryRun),
	)
	service.reporter.Printf(startingMessageConstant)

	discoveryResult, discoveryError := service.discoverer.DiscoverDocuments(options.Root, extension)
	if discoveryError != nil {
		return RunResult{}, fmt.Errorf(discoveryErrorTemplateConstant, discoveryError)
	}

	for _, skippedDirectory := range discoveryResult.SkippedDirectories {
		service.reporter.Errorf(skippedDirectoryTemplateConstant, skippedDirectory.Path, skippedDirectory.Error)
		service.logger.Warn(directorySkippedLogMessageConstant,
			zap.String(directoryFieldNameConstant, skippedDirectory.Path),
			zap.Error(skippedDirectory.Error),
		)
	}

	service.reporter.Printf(foundFilesTemplateConstant, len(discoveryResult.Files))

	accumulator := newAuditAccumulator()
	for _, documentPath := range discoveryResult.Files {
		service.analyzeDocument(accumulator, documentPath)
	}

	auditResult := accumulator.result()
	printAuditReport(service.reporter, auditResult)

	counters := service.applyRewrites(auditResult, options.DryRun)

	printFinalReport(service.reporter, counters, options.DryRun)

	service.logger.Info(runCompletedLogMessageConstant,
		zap.Int(totalFilesFieldNameConstant, counters.TotalFiles),
		zap.Int(updatedFilesFieldNameConstant, counters.UpdatedFiles),
		zap.Int(errorCountFieldNameConstant, len(counters.Errors)),
	)

	return RunResult{
		Audit:              auditResult,
		Counters:           counters,
		SkippedDirectories: discoveryResult.SkippedDirectories,
		DryRun:             options.DryRun,
	}, nil
}

func (service *Service) analyzeDocument(accumulator *auditAccumulator, documentPath string) {
	content, readError := service.fileSystem.ReadFile(documentPath)
	if readError != nil {
		service.reporter.Errorf(analysisFailureTemplateConstant, documentPath, readError)
		accumulator.recordError(fmt.Sprintf(analysisErrorTemplateConstant, documentPath, readError))
		service.logger.Warn(documentFailedLogMessageConstant, zap.String(documentFieldNameConstant, documentPath), zap.Error(readError))
		return
	}

	analysis := accumulator.record(shared.Document{Path: documentPath, Content: string(content)})
	service.reporter.Printf(progressTemplateConstant, analysis.Status.Glyph(), analysis.FileName, analysis.Status)
	service.logger.Debug(documentAnalyzedLogMessageConstant,
		zap.String(documentFieldNameConstant, documentPath),
		zap.String(statusFieldNameConstant, string(analysis.Status)),
		zap.String(phaseFieldNameConstant, analysis.Phase),
		zap.Int(artifactsFieldNameConstant, len(analysis.Artifacts)),
	)
}

func (service *Service) applyRewrites(auditResult AuditResult, dryRun bool) Counters {
	updatedCounters := auditResult.Counters
	updatedCounters.Errors = append([]string{}, auditResult.Counters.Errors...)

	if len(auditResult.Rewrites) == 0 {
		service.reporter.Printf(nothingToUpdateMessageConstant)
		return updatedCounters
	}

	if dryRun {
		service.reporter.Printf(plannedHeaderTemplateConstant, len(auditResult.Rewrites))
		for _, rewrite := range auditResult.Rewrites {
			service.reporter.Printf(plannedFileTemplateConstant, filepath.Base(rewrite.Path))
		}
		return updatedCounters
	}

	service.reporter.Printf(updatingHeaderTemplateConstant, len(auditResult.Rewrites))
	for _, rewrite := range auditResult.Rewrites {
		fileName := filepath.Base(rewrite.Path)
		if writeError := service.fileSystem.WriteFile(rewrite.Path, []byte(rewrite.Content)); writeError != nil {
			service.reporter.Errorf(updateFailureTemplateConstant, fileName, writeError)
			updatedCounters.Errors = append(updatedCounters.Errors, fmt.Sprintf(updateErrorTemplateConstant, fileName, writeError))
			service.logger.Warn(updateFailedLogMessageConstant, zap.String(documentFieldNameConstant, rewrite.Path), zap.Error(writeError))
			continue
		}

		updatedCounters.UpdatedFiles++
		service.reporter.Printf(updatedFileTemplateConstant, fileName)
		service.logger.Debug(documentUpdatedLogMessageConstant, zap.String(documentFieldNameConstant, rewrite.Path))
	}

	return updatedCounters
}
