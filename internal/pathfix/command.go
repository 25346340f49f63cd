package pathfix

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/docmaint/internal/documents/discovery"
	"github.com/temirov/docmaint/internal/documents/filesystem"
	"github.com/temirov/docmaint/internal/documents/shared"
	pathutils "github.com/temirov/docmaint/internal/utils/path"
)

const (
	commandUseConstant                    = "fix-paths"
	commandShortDescriptionConstant       = "Rewrite a relocated documentation path across markdown files"
	commandLongDescriptionConstant        = "fix-paths replaces every literal occurrence of an old documentation path with its new location in all markdown files beneath a root directory."
	commandExecutionErrorTemplateConstant = "path correction failed: %w"
	configurationInvalidTemplateConstant  = "invalid fix-paths configuration: %w"
	unexpectedArgumentsMessageConstant    = "fix-paths does not accept positional arguments"
	flagRootNameConstant                  = "root"
	flagRootDescriptionConstant           = "Directory scanned recursively for markdown files"
	flagOldPathNameConstant               = "old-path"
	flagOldPathDescriptionConstant        = "Path fragment to replace"
	flagNewPathNameConstant               = "new-path"
	flagNewPathDescriptionConstant        = "Replacement path fragment"
	flagExtensionNameConstant             = "extension"
	flagExtensionDescriptionConstant      = "File extension selecting documents"
	flagDryRunNameConstant                = "dry-run"
	flagDryRunDescriptionConstant         = "Report replacements without writing files"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current fix-paths configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the fix-paths cobra command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Discoverer            shared.DocumentDiscoverer
	FileSystem            shared.FileSystem
	DirectoryResolver     *pathutils.DirectoryResolver
}

// Build constructs the fix-paths command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().String(flagRootNameConstant, defaults.Root, flagRootDescriptionConstant)
	command.Flags().String(flagOldPathNameConstant, defaults.OldPath, flagOldPathDescriptionConstant)
	command.Flags().String(flagNewPathNameConstant, defaults.NewPath, flagNewPathDescriptionConstant)
	command.Flags().String(flagExtensionNameConstant, defaults.Extension, flagExtensionDescriptionConstant)
	command.Flags().Bool(flagDryRunNameConstant, defaults.DryRun, flagDryRunDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	configuration, configurationError := builder.resolveCommandConfiguration(command)
	if configurationError != nil {
		return configurationError
	}

	service, serviceError := NewService(ServiceDependencies{
		Discoverer: builder.resolveDiscoverer(),
		FileSystem: builder.resolveFileSystem(),
		Reporter:   shared.NewWriterReporter(command.OutOrStdout(), command.ErrOrStderr()),
		Logger:     builder.resolveLogger(),
	})
	if serviceError != nil {
		return serviceError
	}

	if _, runError := service.Run(command.Context(), configuration.options()); runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}

	return nil
}

func (builder *CommandBuilder) resolveCommandConfiguration(command *cobra.Command) (CommandConfiguration, error) {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	stringOverrides := []struct {
		flagName string
		target   *string
	}{
		{flagName: flagRootNameConstant, target: &configuration.Root},
		{flagName: flagOldPathNameConstant, target: &configuration.OldPath},
		{flagName: flagNewPathNameConstant, target: &configuration.NewPath},
		{flagName: flagExtensionNameConstant, target: &configuration.Extension},
	}
	for _, override := range stringOverrides {
		if !command.Flags().Changed(override.flagName) {
			continue
		}
		flagValue, flagError := command.Flags().GetString(override.flagName)
		if flagError != nil {
			return CommandConfiguration{}, flagError
		}
		*override.target = flagValue
	}

	if command.Flags().Changed(flagDryRunNameConstant) {
		dryRunValue, dryRunFlagError := command.Flags().GetBool(flagDryRunNameConstant)
		if dryRunFlagError != nil {
			return CommandConfiguration{}, dryRunFlagError
		}
		configuration.DryRun = dryRunValue
	}

	configuration = configuration.sanitize()
	configuration.Root = builder.resolveDirectoryResolver().Resolve(configuration.Root)

	if validationError := configuration.Validate(); validationError != nil {
		return CommandConfiguration{}, fmt.Errorf(configurationInvalidTemplateConstant, validationError)
	}

	return configuration, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveDiscoverer() shared.DocumentDiscoverer {
	if builder.Discoverer != nil {
		return builder.Discoverer
	}
	return discovery.NewFilesystemDocumentDiscoverer()
}

func (builder *CommandBuilder) resolveFileSystem() shared.FileSystem {
	if builder.FileSystem != nil {
		return builder.FileSystem
	}
	return filesystem.NewOSFileSystem()
}

func (builder *CommandBuilder) resolveDirectoryResolver() *pathutils.DirectoryResolver {
	if builder.DirectoryResolver != nil {
		return builder.DirectoryResolver
	}
	return pathutils.NewDirectoryResolver()
}
