package audit

import "strings"

const (
	defaultRootDirectoryConstant          = "memory"
	defaultReportPathConstant             = "report.md"
	defaultJSONReportPathConstant         = "report.json"
	defaultThresholdConstant              = 70
	configurationKeySeparatorConstant     = "."
	configurationDirKeyConstant           = "dir"
	configurationReportKeyConstant        = "report"
	configurationJSONReportKeyConstant    = "json_report"
	configurationIgnoreKeyConstant        = "ignore"
	configurationMemoryFileKeyConstant    = "memory_file"
	configurationThresholdKeyConstant     = "threshold"
	configurationStrictKeyConstant        = "strict"
	configurationWeightsKeyConstant       = "weights"
	configurationDuplicateKeyConstant     = "duplicate"
	configurationStaleKeyConstant         = "stale"
	configurationContradictionKeyConstant = "contradiction"
)

// WeightsConfiguration captures persisted deduction weights.
type WeightsConfiguration struct {
	Duplicate     int `mapstructure:"duplicate"     yaml:"duplicate"`
	Stale         int `mapstructure:"stale"         yaml:"stale"`
	Contradiction int `mapstructure:"contradiction" yaml:"contradiction"`
}

// Weights converts the persisted representation into engine weights.
func (configuration WeightsConfiguration) Weights() Weights {
	return Weights{
		Duplicate:     configuration.Duplicate,
		Stale:         configuration.Stale,
		Contradiction: configuration.Contradiction,
	}
}

// CommandConfiguration captures persistent settings for the audit command.
type CommandConfiguration struct {
	Directory      string               `mapstructure:"dir"         yaml:"dir"`
	ReportPath     string               `mapstructure:"report"      yaml:"report"`
	JSONReportPath string               `mapstructure:"json_report" yaml:"json_report"`
	IgnorePatterns []string             `mapstructure:"ignore"      yaml:"ignore"`
	MemoryFile     bool                 `mapstructure:"memory_file" yaml:"memory_file"`
	Threshold      int                  `mapstructure:"threshold"   yaml:"threshold"`
	Strict         bool                 `mapstructure:"strict"      yaml:"strict"`
	Weights        WeightsConfiguration `mapstructure:"weights"     yaml:"weights"`
}

// DefaultCommandConfiguration returns baseline configuration values for the audit command.
func DefaultCommandConfiguration() CommandConfiguration {
	defaultWeights := DefaultWeights()
	return CommandConfiguration{
		Directory:      defaultRootDirectoryConstant,
		ReportPath:     defaultReportPathConstant,
		JSONReportPath: defaultJSONReportPathConstant,
		IgnorePatterns: nil,
		MemoryFile:     true,
		Threshold:      defaultThresholdConstant,
		Strict:         false,
		Weights: WeightsConfiguration{
			Duplicate:     defaultWeights.Duplicate,
			Stale:         defaultWeights.Stale,
			Contradiction: defaultWeights.Contradiction,
		},
	}
}

// DefaultConfigurationValues exposes the baseline values as flat viper keys
// beneath rootKey so partial user configuration merges field-by-field.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	weightsKey := joinConfigurationKey(rootKey, configurationWeightsKeyConstant)

	values := map[string]any{}
	values[joinConfigurationKey(rootKey, configurationDirKeyConstant)] = defaults.Directory
	values[joinConfigurationKey(rootKey, configurationReportKeyConstant)] = defaults.ReportPath
	values[joinConfigurationKey(rootKey, configurationJSONReportKeyConstant)] = defaults.JSONReportPath
	values[joinConfigurationKey(rootKey, configurationIgnoreKeyConstant)] = defaults.IgnorePatterns
	values[joinConfigurationKey(rootKey, configurationMemoryFileKeyConstant)] = defaults.MemoryFile
	values[joinConfigurationKey(rootKey, configurationThresholdKeyConstant)] = defaults.Threshold
	values[joinConfigurationKey(rootKey, configurationStrictKeyConstant)] = defaults.Strict
	values[joinConfigurationKey(weightsKey, configurationDuplicateKeyConstant)] = defaults.Weights.Duplicate
	values[joinConfigurationKey(weightsKey, configurationStaleKeyConstant)] = defaults.Weights.Stale
	values[joinConfigurationKey(weightsKey, configurationContradictionKeyConstant)] = defaults.Weights.Contradiction
	return values
}

func joinConfigurationKey(parentKey string, childKey string) string {
	return parentKey + configurationKeySeparatorConstant + childKey
}

// sanitize trims whitespace and drops empty ignore patterns without applying
// implicit defaults.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Directory = strings.TrimSpace(configuration.Directory)
	sanitized.ReportPath = strings.TrimSpace(configuration.ReportPath)
	sanitized.JSONReportPath = strings.TrimSpace(configuration.JSONReportPath)
	sanitized.IgnorePatterns = sanitizePatterns(configuration.IgnorePatterns)

	return sanitized
}

func sanitizePatterns(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
