package audit

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/temirov/docmaint/internal/documents/shared"
)

const (
	configurationRootKeyConstant      = "root"
	configurationExtensionKeyConstant = "extension"
	configurationDryRunKeyConstant    = "dry_run"
	defaultRootConstant               = "01_Machine/01_Workflow"
)

// CommandConfiguration captures persisted settings for the audit-checklists command.
type CommandConfiguration struct {
	Root      string `mapstructure:"root"`
	Extension string `mapstructure:"extension"`
	DryRun    bool   `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration returns the workflow tree audited by default.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Root:      defaultRootConstant,
		Extension: shared.MarkdownExtensionConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for the audit-checklists command under rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationRootKeyConstant:      defaults.Root,
		rootKey + "." + configurationExtensionKeyConstant: defaults.Extension,
		rootKey + "." + configurationDryRunKeyConstant:    defaults.DryRun,
	}
}

// Validate reports missing settings.
func (configuration CommandConfiguration) Validate() error {
	return validation.ValidateStruct(&configuration,
		validation.Field(&configuration.Root, validation.Required),
		validation.Field(&configuration.Extension, validation.Required),
	)
}

func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Root = strings.TrimSpace(configuration.Root)
	sanitized.Extension = strings.TrimSpace(configuration.Extension)
	return sanitized
}

func (configuration CommandConfiguration) options() Options {
	return Options{
		Root:      configuration.Root,
		Extension: configuration.Extension,
		DryRun:    configuration.DryRun,
	}
}
