package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/temirov/memdoc/internal/utils"
)

const (
	configCommandNameConstant                 = "config"
	configCommandShortDescriptionConstant     = "Inspect the resolved memdoc configuration"
	configShowCommandNameConstant             = "show"
	configShowCommandShortDescription         = "Print the effective configuration after defaults, files, environment, and flags merge"
	configurationRenderErrorTemplateConstant  = "unable to render configuration: %w"
	configurationSourceCommentTemplateConst   = "# configuration file: %s\n"
	configurationEmbeddedSourceLabelConstant  = "embedded defaults"
	configurationShowOutputTemplateConstant   = "%s"
	configurationShowNoSubcommandErrTemplate  = "config requires a subcommand, e.g. %q"
	configurationShowSubcommandExampleLiteral = "memdoc config show"
)

func (application *Application) newConfigCommand() *cobra.Command {
	configCommand := &cobra.Command{
		Use:   configCommandNameConstant,
		Short: configCommandShortDescriptionConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			return fmt.Errorf(configurationShowNoSubcommandErrTemplate, configurationShowSubcommandExampleLiteral)
		},
	}

	showCommand := &cobra.Command{
		Use:   configShowCommandNameConstant,
		Short: configShowCommandShortDescription,
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runConfigShowCommand(command)
		},
	}

	configCommand.AddCommand(showCommand)
	return configCommand
}

// runConfigShowCommand renders the merged configuration as YAML, prefixed
// with a comment naming the configuration file that contributed to it.
func (application *Application) runConfigShowCommand(command *cobra.Command) error {
	renderedConfiguration, renderError := yaml.Marshal(application.configuration)
	if renderError != nil {
		return fmt.Errorf(configurationRenderErrorTemplateConstant, renderError)
	}

	configurationSource := application.configurationMetadata.ConfigFileUsed
	if len(configurationSource) == 0 {
		configurationSource = configurationEmbeddedSourceLabelConstant
	}

	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())
	fmt.Fprintf(outputWriter, configurationSourceCommentTemplateConst, configurationSource)
	fmt.Fprintf(outputWriter, configurationShowOutputTemplateConstant, string(renderedConfiguration))
	return nil
}
