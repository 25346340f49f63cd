package audit

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
	commandUseConstant                    = "audit-checklists"
	commandShortDescriptionConstant       = "Audit and regenerate Output Artifacts checklists"
	commandLongDescriptionConstant        = "audit-checklists classifies every workflow document by comparing its Output Artifacts Checklist with its Output Artifacts section, reports the results, and regenerates checklists that are missing or out of date."
	commandExecutionErrorTemplateConstant = "checklist audit failed: %w"
	configurationInvalidTemplateConstant  = "invalid audit-checklists configuration: %w"
	unexpectedArgumentsMessageConstant    = "audit-checklists does not accept positional arguments"
	flagRootNameConstant                  = "root"
	flagRootDescriptionConstant           = "Directory scanned recursively for workflow documents"
	flagExtensionNameConstant             = "extension"
	flagExtensionDescriptionConstant      = "File extension selecting documents"
	flagDryRunNameConstant                = "dry-run"
	flagDryRunDescriptionConstant         = "Report checklist changes without writing files"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current audit-checklists configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the audit-checklists cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Discoverer            shared.DocumentDiscoverer
	FileSystem            shared.FileSystem
	DirectoryResolver     *pathutils.DirectoryResolver
}

// Build constructs the cobra command for checklist audits.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().String(flagRootNameConstant, defaults.Root, flagRootDescriptionConstant)
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

	if command.Flags().Changed(flagRootNameConstant) {
		rootValue, rootFlagError := command.Flags().GetString(flagRootNameConstant)
		if rootFlagError != nil {
			return CommandConfiguration{}, rootFlagError
		}
		configuration.Root = rootValue
	}

	if command.Flags().Changed(flagExtensionNameConstant) {
		extensionValue, extensionFlagError := command.Flags().GetString(flagExtensionNameConstant)
		if extensionFlagError != nil {
			return CommandConfiguration{}, extensionFlagError
		}
		configuration.Extension = extensionValue
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
