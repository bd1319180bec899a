package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/memdoc/internal/utils"
)

const (
	loaderConfigurationName    = "config"
	loaderConfigurationType    = "yaml"
	loaderEnvironmentPrefix    = "MEMDOCTEST"
	loaderConfigurationContent = "common:\n  log_level: debug\ntools:\n  audit:\n    threshold: 85\n"
	loaderEmbeddedContent      = "common:\n  log_level: warn\n  log_format: console\n"
	loaderFilePermissions      = 0o644
)

type loaderTestConfiguration struct {
	Common struct {
		LogLevel  string `mapstructure:"log_level"`
		LogFormat string `mapstructure:"log_format"`
	} `mapstructure:"common"`
	Tools struct {
		Audit struct {
			Threshold int `mapstructure:"threshold"`
		} `mapstructure:"audit"`
	} `mapstructure:"tools"`
}

func TestConfigurationLoaderMergesSources(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	configurationPath := filepath.Join(temporaryDirectory, "config.yaml")
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(loaderConfigurationContent), loaderFilePermissions))

	loader := utils.NewConfigurationLoader(
		loaderConfigurationName,
		loaderConfigurationType,
		loaderEnvironmentPrefix,
		[]string{temporaryDirectory},
	)
	loader.SetEmbeddedConfiguration([]byte(loaderEmbeddedContent))

	defaultValues := map[string]any{
		"tools.audit.threshold": 70,
	}

	var configuration loaderTestConfiguration
	metadata, loadError := loader.LoadConfiguration(configurationPath, defaultValues, &configuration)
	require.NoError(testInstance, loadError)

	require.Equal(testInstance, configurationPath, metadata.ConfigFileUsed)
	require.Equal(testInstance, "debug", configuration.Common.LogLevel)
	require.Equal(testInstance, "console", configuration.Common.LogFormat)
	require.Equal(testInstance, 85, configuration.Tools.Audit.Threshold)
}

func TestConfigurationLoaderEmbeddedDefaultsWithoutFile(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()

	loader := utils.NewConfigurationLoader(
		loaderConfigurationName,
		loaderConfigurationType,
		loaderEnvironmentPrefix,
		[]string{temporaryDirectory},
	)
	loader.SetEmbeddedConfiguration([]byte(loaderEmbeddedContent))

	var configuration loaderTestConfiguration
	_, loadError := loader.LoadConfiguration("", map[string]any{"tools.audit.threshold": 70}, &configuration)
	require.NoError(testInstance, loadError)

	require.Equal(testInstance, "warn", configuration.Common.LogLevel)
	require.Equal(testInstance, "console", configuration.Common.LogFormat)
	require.Equal(testInstance, 70, configuration.Tools.Audit.Threshold)
}

func TestConfigurationLoaderRejectsMalformedFile(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	configurationPath := filepath.Join(temporaryDirectory, "config.yaml")
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte("not:\n  - valid\n yaml"), loaderFilePermissions))

	loader := utils.NewConfigurationLoader(
		loaderConfigurationName,
		loaderConfigurationType,
		loaderEnvironmentPrefix,
		[]string{temporaryDirectory},
	)

	var configuration loaderTestConfiguration
	_, loadError := loader.LoadConfiguration(configurationPath, nil, &configuration)
	require.Error(testInstance, loadError)
}
