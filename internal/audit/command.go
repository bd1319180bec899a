package audit

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/memdoc/internal/utils"
	"github.com/temirov/memdoc/internal/utils/flags"
)

const (
	commandNameConstant             = "audit"
	commandShortDescriptionConstant = "Audit memory notes for duplicates, stale markers, and contradictions"
	commandLongDescriptionConstant  = "audit scans the configured memory directory, scores corpus health, and writes Markdown and JSON reports."

	flagDirName                 = "dir"
	flagDirDescription          = "Directory holding the memory notes to audit."
	flagOutName                 = "out"
	flagOutDescription          = "Path for the Markdown report."
	flagJSONName                = "json"
	flagJSONDescription         = "Path for the JSON report."
	flagIgnoreName              = "ignore"
	flagIgnoreDescription       = "Glob patterns excluding documents from the audit (repeatable)."
	flagThresholdName           = "threshold"
	flagThresholdDescription    = "Minimum acceptable health score."
	flagStrictName              = "strict"
	flagStrictDescription       = "Fail the run when the score falls below the threshold."
	flagMemoryFileName          = "memory-file"
	flagMemoryFileDescription   = "Include the top-level MEMORY.md file in the audit."
	flagWeightDuplicateName     = "weight-duplicate"
	flagWeightDuplicateUsage    = "Score deduction per duplicated statement."
	flagWeightStaleName         = "weight-stale"
	flagWeightStaleUsage        = "Score deduction per stale marker."
	flagWeightContradictionName = "weight-contradiction"
	flagWeightContradictionDesc = "Score deduction per contradiction hint."

	errorReportWriterMissingConstant = "report writer not configured"
	reportWriteErrorTemplateConstant = "unable to write reports: %w"
	strictFailureTemplateConstant    = "%w: score %d is below threshold %d"
	summaryScoreTemplateConstant     = "Score: %d/100\n"
	summarySavedTemplateConstant     = "Saved: %s, %s\n"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the resolved audit configuration.
type ConfigurationProvider func() CommandConfiguration

// ReportWriter persists rendered reports for a completed audit.
type ReportWriter interface {
	WriteReports(result AuditResult, markdownPath string, jsonPath string) error
}

// CommandBuilder assembles the audit cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	DocumentSource        DocumentSource
	ReportWriter          ReportWriter
	Clock                 Clock
}

// Build constructs the cobra command for memory audits.
func (builder *CommandBuilder) Build() *cobra.Command {
	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagDirName, "", flagDirDescription)
	command.Flags().String(flagOutName, "", flagOutDescription)
	command.Flags().String(flagJSONName, "", flagJSONDescription)
	command.Flags().StringSlice(flagIgnoreName, nil, flagIgnoreDescription)
	command.Flags().Int(flagThresholdName, 0, flagThresholdDescription)
	command.Flags().Int(flagWeightDuplicateName, 0, flagWeightDuplicateUsage)
	command.Flags().Int(flagWeightStaleName, 0, flagWeightStaleUsage)
	command.Flags().Int(flagWeightContradictionName, 0, flagWeightContradictionDesc)
	flags.AddToggleFlag(command.Flags(), flagStrictName, false, flagStrictDescription)
	flags.AddToggleFlag(command.Flags(), flagMemoryFileName, true, flagMemoryFileDescription)

	return command
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	options, reportPaths, optionsError := builder.parseOptions(command, configuration)
	if optionsError != nil {
		return optionsError
	}

	reportWriter := builder.ReportWriter
	if reportWriter == nil {
		return errors.New(errorReportWriterMissingConstant)
	}

	service := NewService(builder.DocumentSource, builder.Clock, builder.resolveLogger())
	result, runError := service.Run(options)
	if runError != nil {
		return runError
	}

	if writeError := reportWriter.WriteReports(result, reportPaths.markdownPath, reportPaths.jsonPath); writeError != nil {
		return fmt.Errorf(reportWriteErrorTemplateConstant, writeError)
	}

	summaryWriter := utils.NewFlushingWriter(command.OutOrStdout())
	fmt.Fprintf(summaryWriter, summaryScoreTemplateConstant, result.Score)
	fmt.Fprintf(summaryWriter, summarySavedTemplateConstant, reportPaths.markdownPath, reportPaths.jsonPath)

	if result.Outcome == AuditOutcomeStrictFail {
		return fmt.Errorf(strictFailureTemplateConstant, ErrScoreBelowThreshold, result.Score, result.Threshold)
	}

	return nil
}

type reportPathPair struct {
	markdownPath string
	jsonPath     string
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, configuration CommandConfiguration) (CommandOptions, reportPathPair, error) {
	flagSet := command.Flags()

	if flagSet.Changed(flagDirName) {
		configuration.Directory, _ = flagSet.GetString(flagDirName)
	}
	if flagSet.Changed(flagOutName) {
		configuration.ReportPath, _ = flagSet.GetString(flagOutName)
	}
	if flagSet.Changed(flagJSONName) {
		configuration.JSONReportPath, _ = flagSet.GetString(flagJSONName)
	}
	if flagSet.Changed(flagIgnoreName) {
		configuration.IgnorePatterns, _ = flagSet.GetStringSlice(flagIgnoreName)
	}
	if flagSet.Changed(flagThresholdName) {
		configuration.Threshold, _ = flagSet.GetInt(flagThresholdName)
	}
	if flagSet.Changed(flagWeightDuplicateName) {
		configuration.Weights.Duplicate, _ = flagSet.GetInt(flagWeightDuplicateName)
	}
	if flagSet.Changed(flagWeightStaleName) {
		configuration.Weights.Stale, _ = flagSet.GetInt(flagWeightStaleName)
	}
	if flagSet.Changed(flagWeightContradictionName) {
		configuration.Weights.Contradiction, _ = flagSet.GetInt(flagWeightContradictionName)
	}
	if flagSet.Changed(flagStrictName) {
		if strictValue, toggleError := flags.ToggleValue(flagSet, flagStrictName); toggleError == nil {
			configuration.Strict = strictValue
		}
	}
	if flagSet.Changed(flagMemoryFileName) {
		if memoryFileValue, toggleError := flags.ToggleValue(flagSet, flagMemoryFileName); toggleError == nil {
			configuration.MemoryFile = memoryFileValue
		}
	}

	sanitized := configuration.sanitize()

	options := CommandOptions{
		RootDirectory:     sanitized.Directory,
		IncludeMemoryFile: sanitized.MemoryFile,
		IgnorePatterns:    sanitized.IgnorePatterns,
		Weights:           sanitized.Weights.Weights(),
		Threshold:         sanitized.Threshold,
		Strict:            sanitized.Strict,
	}
	reportPaths := reportPathPair{
		markdownPath: sanitized.ReportPath,
		jsonPath:     sanitized.JSONReportPath,
	}

	return options, reportPaths, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
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
