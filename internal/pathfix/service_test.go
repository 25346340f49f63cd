package pathfix_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/docmaint/internal/documents/shared"
	"github.com/temirov/docmaint/internal/pathfix"
)

const (
	serviceRootConstant          = "/docs"
	firstDocumentPathConstant    = "/docs/a.md"
	secondDocumentPathConstant   = "/docs/nested/b.md"
	thirdDocumentPathConstant    = "/docs/nested/c.md"
	skippedDirectoryConstant     = "/docs/locked"
	readFailureMessageConstant   = "read denied"
	writeFailureMessageConstant  = "disk full"
	walkFailureMessageConstant   = "root missing"
	summaryUpdatedLineConstant   = "✅ Files updated: %d\n"
	summaryErrorsLineConstant    = "❌ Errors: %d\n"
	summaryUnchangedLineConstant = "📁 Unchanged files: %d\n"
)

type fakeDocumentDiscoverer struct {
	result         shared.DiscoveryResult
	discoveryError error
	receivedRoot   string
	receivedSuffix string
}

func (discoverer *fakeDocumentDiscoverer) DiscoverDocuments(root string, extension string) (shared.DiscoveryResult, error) {
	discoverer.receivedRoot = root
	discoverer.receivedSuffix = extension
	if discoverer.discoveryError != nil {
		return shared.DiscoveryResult{}, discoverer.discoveryError
	}
	return discoverer.result, nil
}

type fakeFileSystem struct {
	files       map[string]string
	readErrors  map[string]error
	writeErrors map[string]error
	writes      map[string]string
}

func newFakeFileSystem(files map[string]string) *fakeFileSystem {
	return &fakeFileSystem{
		files:       files,
		readErrors:  map[string]error{},
		writeErrors: map[string]error{},
		writes:      map[string]string{},
	}
}

func (fileSystem *fakeFileSystem) Stat(path string) (fs.FileInfo, error) {
	return nil, fs.ErrNotExist
}

func (fileSystem *fakeFileSystem) ReadFile(path string) ([]byte, error) {
	if readError, exists := fileSystem.readErrors[path]; exists {
		return nil, readError
	}
	content, exists := fileSystem.files[path]
	if !exists {
		return nil, fs.ErrNotExist
	}
	return []byte(content), nil
}

func (fileSystem *fakeFileSystem) WriteFile(path string, data []byte) error {
	if writeError, exists := fileSystem.writeErrors[path]; exists {
		return writeError
	}
	fileSystem.writes[path] = string(data)
	fileSystem.files[path] = string(data)
	return nil
}

func TestServiceRunScenarios(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		files                map[string]string
		discovered           []string
		skipped              []shared.SkippedDirectory
		readErrors           map[string]error
		writeErrors          map[string]error
		dryRun               bool
		expectedUpdates      []pathfix.FileUpdate
		expectedFailures     []string
		expectedReplacements int
		expectedWrites       map[string]string
		expectedOutput       []string
		expectedErrorOutput  []string
	}{
		{
			name: "rewrites_only_matching_documents",
			files: map[string]string{
				firstDocumentPathConstant:  "see " + legacyPathConstant + "one.md and " + legacyPathConstant + "two.md\r\n",
				secondDocumentPathConstant: "no references\n",
				thirdDocumentPathConstant:  legacyPathConstant,
			},
			discovered: []string{firstDocumentPathConstant, secondDocumentPathConstant, thirdDocumentPathConstant},
			expectedUpdates: []pathfix.FileUpdate{
				{Path: firstDocumentPathConstant, Replacements: 2},
				{Path: thirdDocumentPathConstant, Replacements: 1},
			},
			expectedReplacements: 3,
			expectedWrites: map[string]string{
				firstDocumentPathConstant: "see " + relocatedPathConstant + "one.md and " + relocatedPathConstant + "two.md\r\n",
				thirdDocumentPathConstant: relocatedPathConstant,
			},
			expectedOutput: []string{
				"📄 Found 3 markdown files to process\n",
				"✅ Updated /docs/a.md (2 replacements)\n",
				"🔄 Total path replacements: 3\n",
				fmt.Sprintf(summaryUpdatedLineConstant, 2),
				fmt.Sprintf(summaryUnchangedLineConstant, 1),
				fmt.Sprintf(summaryErrorsLineConstant, 0),
				"🎉 Documentation path correction completed successfully!",
			},
		},
		{
			name: "dry_run_reports_without_writing",
			files: map[string]string{
				firstDocumentPathConstant: legacyPathConstant + "x.md",
			},
			discovered:           []string{firstDocumentPathConstant},
			dryRun:               true,
			expectedUpdates:      []pathfix.FileUpdate{{Path: firstDocumentPathConstant, Replacements: 1}},
			expectedReplacements: 1,
			expectedWrites:       map[string]string{},
			expectedOutput: []string{
				"📝 Would update /docs/a.md (1 replacements)\n",
				"📝 Dry run: no files were written.",
			},
		},
		{
			name: "continues_after_read_and_write_failures",
			files: map[string]string{
				firstDocumentPathConstant:  legacyPathConstant,
				secondDocumentPathConstant: legacyPathConstant,
				thirdDocumentPathConstant:  legacyPathConstant,
			},
			discovered:           []string{firstDocumentPathConstant, secondDocumentPathConstant, thirdDocumentPathConstant},
			readErrors:           map[string]error{firstDocumentPathConstant: errors.New(readFailureMessageConstant)},
			writeErrors:          map[string]error{secondDocumentPathConstant: errors.New(writeFailureMessageConstant)},
			expectedUpdates:      []pathfix.FileUpdate{{Path: thirdDocumentPathConstant, Replacements: 1}},
			expectedFailures:     []string{firstDocumentPathConstant, secondDocumentPathConstant},
			expectedReplacements: 1,
			expectedWrites:       map[string]string{thirdDocumentPathConstant: relocatedPathConstant},
			expectedOutput: []string{
				fmt.Sprintf(summaryUpdatedLineConstant, 1),
				fmt.Sprintf(summaryErrorsLineConstant, 2),
				fmt.Sprintf(summaryUnchangedLineConstant, 0),
			},
			expectedErrorOutput: []string{
				"❌ Error processing /docs/a.md: unable to read document: " + readFailureMessageConstant,
				"❌ Error processing /docs/nested/b.md: unable to write document: " + writeFailureMessageConstant,
			},
		},
		{
			name:            "reports_skipped_directories_and_empty_trees",
			files:           map[string]string{},
			discovered:      []string{},
			skipped:         []shared.SkippedDirectory{{Path: skippedDirectoryConstant, Error: fs.ErrPermission}},
			expectedUpdates: []pathfix.FileUpdate{},
			expectedWrites:  map[string]string{},
			expectedOutput: []string{
				"📄 Found 0 markdown files to process\n",
				"✨ No files needed updating - all paths are already correct!",
			},
			expectedErrorOutput: []string{
				"⚠️  Warning: Could not scan directory /docs/locked",
			},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(subtestNameTemplateConstant, testCaseIndex, testCase.name), func(subTest *testing.T) {
			fileSystem := newFakeFileSystem(testCase.files)
			for path, readError := range testCase.readErrors {
				fileSystem.readErrors[path] = readError
			}
			for path, writeError := range testCase.writeErrors {
				fileSystem.writeErrors[path] = writeError
			}
			discoverer := &fakeDocumentDiscoverer{result: shared.DiscoveryResult{Files: testCase.discovered, SkippedDirectories: testCase.skipped}}

			outputBuffer := &bytes.Buffer{}
			errorBuffer := &bytes.Buffer{}
			service, serviceError := pathfix.NewService(pathfix.ServiceDependencies{
				Discoverer: discoverer,
				FileSystem: fileSystem,
				Reporter:   shared.NewWriterReporter(outputBuffer, errorBuffer),
			})
			require.NoError(subTest, serviceError)

			result, runError := service.Run(context.Background(), pathfix.Options{
				Root:      serviceRootConstant,
				OldPath:   legacyPathConstant,
				NewPath:   relocatedPathConstant,
				Extension: shared.MarkdownExtensionConstant,
				DryRun:    testCase.dryRun,
			})
			require.NoError(subTest, runError)

			require.Equal(subTest, serviceRootConstant, discoverer.receivedRoot)
			require.Equal(subTest, shared.MarkdownExtensionConstant, discoverer.receivedSuffix)
			require.Equal(subTest, len(testCase.discovered), result.FilesScanned)
			require.Equal(subTest, testCase.expectedUpdates, result.Updates)
			require.Equal(subTest, testCase.expectedReplacements, result.TotalReplacements)
			require.Equal(subTest, testCase.expectedWrites, fileSystem.writes)
			require.Equal(subTest, testCase.dryRun, result.DryRun)

			failedPaths := make([]string, 0, len(result.Failures))
			for _, failure := range result.Failures {
				require.Error(subTest, failure.Error)
				failedPaths = append(failedPaths, failure.Path)
			}
			if testCase.expectedFailures == nil {
				require.Empty(subTest, failedPaths)
			} else {
				require.Equal(subTest, testCase.expectedFailures, failedPaths)
			}

			for _, expectedFragment := range testCase.expectedOutput {
				require.Contains(subTest, outputBuffer.String(), expectedFragment)
			}
			for _, expectedFragment := range testCase.expectedErrorOutput {
				require.Contains(subTest, errorBuffer.String(), expectedFragment)
			}
		})
	}
}

func TestServiceRunIsIdempotent(testInstance *testing.T) {
	fileSystem := newFakeFileSystem(map[string]string{
		firstDocumentPathConstant: "[x](mdc:" + legacyPathConstant + "x.md)\n",
	})
	discoverer := &fakeDocumentDiscoverer{result: shared.DiscoveryResult{Files: []string{firstDocumentPathConstant}}}
	service, serviceError := pathfix.NewService(pathfix.ServiceDependencies{
		Discoverer: discoverer,
		FileSystem: fileSystem,
		Reporter:   shared.NewWriterReporter(&bytes.Buffer{}, &bytes.Buffer{}),
	})
	require.NoError(testInstance, serviceError)

	options := pathfix.Options{Root: serviceRootConstant, OldPath: legacyPathConstant, NewPath: relocatedPathConstant}

	firstResult, firstError := service.Run(context.Background(), options)
	require.NoError(testInstance, firstError)
	require.Equal(testInstance, 1, firstResult.FilesUpdated())

	contentAfterFirstRun := fileSystem.files[firstDocumentPathConstant]

	secondResult, secondError := service.Run(context.Background(), options)
	require.NoError(testInstance, secondError)
	require.Equal(testInstance, 0, secondResult.FilesUpdated())
	require.Equal(testInstance, 0, secondResult.TotalReplacements)
	require.Equal(testInstance, contentAfterFirstRun, fileSystem.files[firstDocumentPathConstant])
}

func TestServiceRunWarnsWhenNewPathContainsOldPath(testInstance *testing.T) {
	logCore, observedLogs := observer.New(zap.WarnLevel)
	discoverer := &fakeDocumentDiscoverer{result: shared.DiscoveryResult{Files: []string{}}}
	service, serviceError := pathfix.NewService(pathfix.ServiceDependencies{
		Discoverer: discoverer,
		FileSystem: newFakeFileSystem(map[string]string{}),
		Reporter:   shared.NewWriterReporter(&bytes.Buffer{}, &bytes.Buffer{}),
		Logger:     zap.New(logCore),
	})
	require.NoError(testInstance, serviceError)

	_, runError := service.Run(context.Background(), pathfix.Options{
		Root:    serviceRootConstant,
		OldPath: "docs/",
		NewPath: "docs/archive/",
	})
	require.NoError(testInstance, runError)
	require.Equal(testInstance, 1, observedLogs.Len())
}

func TestServiceRunFailsWhenDiscoveryFails(testInstance *testing.T) {
	discoveryFailure := errors.New(walkFailureMessageConstant)
	discoverer := &fakeDocumentDiscoverer{discoveryError: discoveryFailure}
	service, serviceError := pathfix.NewService(pathfix.ServiceDependencies{
		Discoverer: discoverer,
		FileSystem: newFakeFileSystem(map[string]string{}),
		Reporter:   shared.NewWriterReporter(&bytes.Buffer{}, &bytes.Buffer{}),
	})
	require.NoError(testInstance, serviceError)

	_, runError := service.Run(context.Background(), pathfix.Options{Root: serviceRootConstant, OldPath: legacyPathConstant})
	require.ErrorIs(testInstance, runError, discoveryFailure)
}

func TestNewServiceRequiresCollaborators(testInstance *testing.T) {
	_, missingDiscovererError := pathfix.NewService(pathfix.ServiceDependencies{FileSystem: newFakeFileSystem(nil)})
	require.Error(testInstance, missingDiscovererError)

	_, missingFileSystemError := pathfix.NewService(pathfix.ServiceDependencies{Discoverer: &fakeDocumentDiscoverer{}})
	require.Error(testInstance, missingFileSystemError)
}
