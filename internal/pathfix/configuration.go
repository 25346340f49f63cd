package pathfix

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/temirov/docmaint/internal/documents/shared"
)

const (
	configurationRootKeyConstant      = "root"
	configurationOldPathKeyConstant   = "old_path"
	configurationNewPathKeyConstant   = "new_path"
	configurationExtensionKeyConstant = "extension"
	configurationDryRunKeyConstant    = "dry_run"
	defaultRootConstant               = "01_Machine/01_Workflow"
	defaultOldPathConstant            = "01_Machine/04_Documentation/Doc/"
	defaultNewPathConstant            = "01_Machine/04_Documentation/vision/"
	pathsMustDifferMessageConstant    = "must differ from old_path"
)

// CommandConfiguration captures persisted settings for the fix-paths command.
type CommandConfiguration struct {
	Root      string `mapstructure:"root"`
	OldPath   string `mapstructure:"old_path"`
	NewPath   string `mapstructure:"new_path"`
	Extension string `mapstructure:"extension"`
	DryRun    bool   `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration returns the documentation tree layout the tool was written for.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Root:      defaultRootConstant,
		OldPath:   defaultOldPathConstant,
		NewPath:   defaultNewPathConstant,
		Extension: shared.MarkdownExtensionConstant,
		DryRun:    false,
	}
}

// DefaultConfigurationValues produces Viper defaults for the fix-paths command under rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationRootKeyConstant:      defaults.Root,
		rootKey + "." + configurationOldPathKeyConstant:   defaults.OldPath,
		rootKey + "." + configurationNewPathKeyConstant:   defaults.NewPath,
		rootKey + "." + configurationExtensionKeyConstant: defaults.Extension,
		rootKey + "." + configurationDryRunKeyConstant:    defaults.DryRun,
	}
}

// Validate reports missing or contradictory settings.
func (configuration CommandConfiguration) Validate() error {
	return validation.ValidateStruct(&configuration,
		validation.Field(&configuration.Root, validation.Required),
		validation.Field(&configuration.OldPath, validation.Required),
		validation.Field(&configuration.NewPath, validation.NotIn(configuration.OldPath).Error(pathsMustDifferMessageConstant)),
		validation.Field(&configuration.Extension, validation.Required),
	)
}

// sanitize trims directory-like values. Path fragments are literal and kept as provided.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Root = strings.TrimSpace(configuration.Root)
	sanitized.Extension = strings.TrimSpace(configuration.Extension)
	return sanitized
}

func (configuration CommandConfiguration) options() Options {
	return Options{
		Root:      configuration.Root,
		OldPath:   configuration.OldPath,
		NewPath:   configuration.NewPath,
		Extension: configuration.Extension,
		DryRun:    configuration.DryRun,
	}
}
