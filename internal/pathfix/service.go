package pathfix

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/docmaint/internal/documents/shared"
)

const (
	startingMessageConstant             = "🔧 Starting documentation path correction...\n"
	scanningDirectoryTemplateConstant   = "📁 Scanning directory: %s\n"
	convertingTemplateConstant          = "🔄 Converting: %s → %s\n"
	skippedDirectoryTemplateConstant    = "⚠️  Warning: Could not scan directory %s: %v\n"
	foundFilesTemplateConstant          = "📄 Found %d markdown files to process\n"
	updatedFileTemplateConstant         = "✅ Updated %s (%d replacements)\n"
	plannedFileTemplateConstant         = "📝 Would update %s (%d replacements)\n"
	processingErrorTemplateConstant     = "❌ Error processing %s: %v\n"
	summaryHeaderConstant               = "\n📊 SUMMARY:\n"
	summaryProcessedTemplateConstant    = "📄 Total files processed: %d\n"
	summaryUpdatedTemplateConstant      = "✅ Files updated: %d\n"
	summaryReplacementsTemplateConstant = "🔄 Total path replacements: %d\n"
	summaryUnchangedTemplateConstant    = "📁 Unchanged files: %d\n"
	summaryErrorsTemplateConstant       = "❌ Errors: %d\n"
	completedMessageConstant            = "\n🎉 Documentation path correction completed successfully!\n"
	completedDetailTemplateConstant     = "All references to \"%s\" have been updated to \"%s\"\n"
	dryRunCompletedMessageConstant      = "\n📝 Dry run: no files were written.\n"
	nothingToDoMessageConstant          = "\n✨ No files needed updating - all paths are already correct!\n"
	readDocumentErrorTemplateConstant   = "unable to read document: %w"
	writeDocumentErrorTemplateConstant  = "unable to write document: %w"
	discoveryErrorTemplateConstant      = "document discovery failed: %w"
	runStartedLogMessageConstant        = "path correction started"
	runCompletedLogMessageConstant      = "path correction completed"
	documentUpdatedLogMessageConstant   = "document rewritten"
	documentUnchangedLogMessageConstant = "no replacements required"
	documentFailedLogMessageConstant    = "document processing failed"
	overlappingPathsLogMessageConstant  = "new path contains old path; repeated runs will keep rewriting"
	directorySkippedLogMessageConstant  = "directory skipped"
	rootFieldNameConstant               = "root"
	oldPathFieldNameConstant            = "old_path"
	newPathFieldNameConstant            = "new_path"
	documentFieldNameConstant           = "document"
	directoryFieldNameConstant          = "directory"
	replacementsFieldNameConstant       = "replacements"
	filesScannedFieldNameConstant       = "files_scanned"
	filesUpdatedFieldNameConstant       = "files_updated"
	failuresFieldNameConstant           = "failures"
	dryRunFieldNameConstant             = "dry_run"
	discovererMissingMessageConstant    = "document discoverer not configured"
	fileSystemMissingMessageConstant    = "file system not configured"
	rootRequiredMessageConstant         = "documentation root must be provided"
	oldPathRequiredMessageConstant      = "old path must be provided"
)

var (
	errDiscovererMissing = errors.New(discovererMissingMessageConstant)
	errFileSystemMissing = errors.New(fileSystemMissingMessageConstant)
	errRootRequired      = errors.New(rootRequiredMessageConstant)
	errOldPathRequired   = errors.New(oldPathRequiredMessageConstant)
)

// ServiceDependencies describes the collaborators required by Service.
type ServiceDependencies struct {
	Discoverer shared.DocumentDiscoverer
	FileSystem shared.FileSystem
	Reporter   shared.Reporter
	Logger     *zap.Logger
}

// Service rewrites path fragments across a documentation tree.
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

// Run scans options.Root and rewrites every document containing options.OldPath.
// Per-document failures are reported and recorded; only discovery failures abort the run.
func (service *Service) Run(_ context.Context, options Options) (RunResult, error) {
	if len(strings.TrimSpace(options.Root)) == 0 {
		return RunResult{}, errRootRequired
	}
	if len(options.OldPath) == 0 {
		return RunResult{}, errOldPathRequired
	}

	extension := options.Extension
	if len(extension) == 0 {
		extension = shared.MarkdownExtensionConstant
	}

	service.logger.Info(runStartedLogMessageConstant,
		zap.String(rootFieldNameConstant, options.Root),
		zap.String(oldPathFieldNameConstant, options.OldPath),
		zap.String(newPathFieldNameConstant, options.NewPath),
		zap.Bool(dryRunFieldNameConstant, options.DryRun),
	)
	if strings.Contains(options.NewPath, options.OldPath) {
		service.logger.Warn(overlappingPathsLogMessageConstant,
			zap.String(oldPathFieldNameConstant, options.OldPath),
			zap.String(newPathFieldNameConstant, options.NewPath),
		)
	}

	service.reporter.Printf(startingMessageConstant)
	service.reporter.Printf(scanningDirectoryTemplateConstant, options.Root)
	service.reporter.Printf(convertingTemplateConstant, options.OldPath, options.NewPath)

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

	result := RunResult{
		FilesScanned:       len(discoveryResult.Files),
		Updates:            []FileUpdate{},
		Failures:           []FileFailure{},
		SkippedDirectories: discoveryResult.SkippedDirectories,
		DryRun:             options.DryRun,
	}

	for _, documentPath := range discoveryResult.Files {
		replacements, processingError := service.processDocument(documentPath, options)
		if processingError != nil {
			result.Failures = append(result.Failures, FileFailure{Path: documentPath, Error: processingError})
			service.reporter.Errorf(processingErrorTemplateConstant, documentPath, processingError)
			service.logger.Warn(documentFailedLogMessageConstant, zap.String(documentFieldNameConstant, documentPath), zap.Error(processingError))
			continue
		}

		if replacements == 0 {
			service.logger.Debug(documentUnchangedLogMessageConstant, zap.String(documentFieldNameConstant, documentPath))
			continue
		}

		result.Updates = append(result.Updates, FileUpdate{Path: documentPath, Replacements: replacements})
		result.TotalReplacements += replacements

		if options.DryRun {
			service.reporter.Printf(plannedFileTemplateConstant, documentPath, replacements)
		} else {
			service.reporter.Printf(updatedFileTemplateConstant, documentPath, replacements)
		}
		service.logger.Debug(documentUpdatedLogMessageConstant,
			zap.String(documentFieldNameConstant, documentPath),
			zap.Int(replacementsFieldNameConstant, replacements),
			zap.Bool(dryRunFieldNameConstant, options.DryRun),
		)
	}

	service.printSummary(result, options)

	service.logger.Info(runCompletedLogMessageConstant,
		zap.Int(filesScannedFieldNameConstant, result.FilesScanned),
		zap.Int(filesUpdatedFieldNameConstant, result.FilesUpdated()),
		zap.Int(replacementsFieldNameConstant, result.TotalReplacements),
		zap.Int(failuresFieldNameConstant, len(result.Failures)),
	)

	return result, nil
}

func (service *Service) processDocument(documentPath string, options Options) (int, error) {
	content, readError := service.fileSystem.ReadFile(documentPath)
	if readError != nil {
		return 0, fmt.Errorf(readDocumentErrorTemplateConstant, readError)
	}

	rewrittenContent, replacements := ReplaceLiteral(string(content), options.OldPath, options.NewPath)
	if replacements == 0 || options.DryRun {
		return replacements, nil
	}

	if writeError := service.fileSystem.WriteFile(documentPath, []byte(rewrittenContent)); writeError != nil {
		return 0, fmt.Errorf(writeDocumentErrorTemplateConstant, writeError)
	}

	return replacements, nil
}

func (service *Service) printSummary(result RunResult, options Options) {
	service.reporter.Printf(summaryHeaderConstant)
	service.reporter.Printf(summaryProcessedTemplateConstant, result.FilesScanned)
	service.reporter.Printf(summaryUpdatedTemplateConstant, result.FilesUpdated())
	service.reporter.Printf(summaryReplacementsTemplateConstant, result.TotalReplacements)
	service.reporter.Printf(summaryUnchangedTemplateConstant, result.UnchangedFiles())
	service.reporter.Printf(summaryErrorsTemplateConstant, len(result.Failures))

	switch {
	case result.FilesUpdated() == 0:
		service.reporter.Printf(nothingToDoMessageConstant)
	case options.DryRun:
		service.reporter.Printf(dryRunCompletedMessageConstant)
	default:
		service.reporter.Printf(completedMessageConstant)
		service.reporter.Printf(completedDetailTemplateConstant, options.OldPath, options.NewPath)
	}
}
